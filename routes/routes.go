package routes

import (
	"github.com/SOUNDAR42/medicare-backend/authentication"
	"github.com/SOUNDAR42/medicare-backend/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	//creates a new Gin engine instance with default configurations
	r := gin.Default()

	//public routes
	r.POST("/patients/signup", controllers.PatientSignup)
	r.POST("/patients/verify", controllers.UserOtpVerify)
	r.POST("/patients/login", controllers.PatientLogin)
	r.POST("/doctors/signup", controllers.DoctorSignup)
	r.POST("/doctors/verify", controllers.DoctorVerifyOTP)
	r.POST("/doctors/login", controllers.DoctorLogin)
	r.POST("/hospitals/signup", controllers.HospitalSignup)
	r.POST("/hospitals/login", controllers.HospitalLogin)
	r.GET("/hospitals/search", controllers.SearchHospitals)
	r.GET("/specializations", controllers.ListSpecializations)

	//patient routes
	patient := r.Group("/patient")
	patient.Use(authentication.PatientAuthMiddleware())
	{
		patient.GET("/logout", controllers.PatientLogout)
		patient.POST("/triage", controllers.CheckSymptoms)
		patient.GET("/hospitals/rank", controllers.RankHospitals)
		patient.POST("/book", controllers.BookAppointment)
		patient.POST("/appointments/:id/cancel", controllers.CancelAppointment)
		patient.GET("/appointments", controllers.GetAppointmentHistory)
	}

	//hospital routes
	hospital := r.Group("/hospital")
	hospital.Use(authentication.HospitalAuthMiddleware())
	{
		hospital.POST("/invite", controllers.InviteDoctor)
		hospital.GET("/affiliations", controllers.HospitalAffiliations)
		hospital.PATCH("/affiliations/:id/availability", controllers.HospitalToggleAvailability)
		hospital.GET("/appointments", controllers.HospitalAppointments)
		hospital.GET("/stats", controllers.HospitalStats)
	}

	//doctor routes
	doctor := r.Group("/doctor")
	doctor.Use(authentication.DoctorAuthMiddleware())
	{
		doctor.GET("/logout", controllers.DoctorLogout)
		doctor.GET("/invitations", controllers.ListInvitations)
		doctor.POST("/invitations/:id/respond", controllers.RespondInvitation)
		doctor.PATCH("/affiliations/:id/availability", controllers.DoctorToggleAvailability)
		doctor.GET("/queue", controllers.DoctorQueue)
		doctor.PATCH("/appointments/:id/advance", controllers.AdvanceAppointment)
		doctor.POST("/appointments/:id/cancel", controllers.DoctorCancelAppointment)
	}

	return r
}
