package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/SOUNDAR42/medicare-backend/affiliation"
	"github.com/SOUNDAR42/medicare-backend/authentication"
	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/SOUNDAR42/medicare-backend/queue"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HospitalSignup registers a hospital admin account
func HospitalSignup(c *gin.Context) {
	var hospital models.Hospital
	if err := c.BindJSON(&hospital); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validate.Struct(hospital); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	var existingHospital models.Hospital
	if err := configuration.DB.Where("email = ?", hospital.Email).First(&existingHospital).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Hospital already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(hospital.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hospital.Password = string(hashedPassword)

	if err := configuration.DB.Create(&hospital).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hospital"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Hospital registered successfully",
		"data":    hospital,
	})
}

// HospitalLogin
func HospitalLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingHospital models.Hospital
	if err := configuration.DB.Where("email = ?", loginReq.Email).First(&existingHospital).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingHospital.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := authentication.GenerateHospitalToken(existingHospital.Email, existingHospital.HospitalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// InviteDoctor invites a doctor to the hospital's panel. The doctor may be
// identified by id or by contact phone number.
func InviteDoctor(c *gin.Context) {
	hospitalID, ok := c.Get("hospital_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Hospital not authenticated"})
		return
	}

	var req struct {
		DoctorID         uint   `json:"doctor_id"`
		DoctorPhone      string `json:"doctor_phone"`
		SpecializationID uint   `json:"specialization_id"`
		Fee              uint32 `json:"fee"`
		WorkingHours     string `json:"working_hours"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ident affiliation.DoctorIdentifier
	switch {
	case req.DoctorID != 0:
		ident = affiliation.ByID(req.DoctorID)
	case req.DoctorPhone != "":
		ident = affiliation.ByContact(req.DoctorPhone)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor_id or doctor_phone is required"})
		return
	}

	created, err := affiliation.Invite(configuration.DB,
		models.HospitalActor{HospitalID: hospitalID.(uint)}, ident,
		affiliation.InviteParams{
			SpecializationID: req.SpecializationID,
			Fee:              req.Fee,
			WorkingHours:     req.WorkingHours,
		})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	go notifyInvitedDoctor(created.DoctorID, hospitalID.(uint))

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Doctor invited successfully",
		"data":    created,
	})
}

func notifyInvitedDoctor(doctorID, hospitalID uint) {
	var doctor models.Doctor
	if err := configuration.DB.Where("doctor_id = ?", doctorID).First(&doctor).Error; err != nil {
		log.Println("invitation mail: doctor lookup failed:", err)
		return
	}
	var hospital models.Hospital
	if err := configuration.DB.Where("hospital_id = ?", hospitalID).First(&hospital).Error; err != nil {
		log.Println("invitation mail: hospital lookup failed:", err)
		return
	}
	if err := SendInvitationEmail(doctor.Email, doctor.Name, hospital.Name); err != nil {
		log.Println("invitation mail failed:", err)
	}
}

// HospitalAffiliations lists every affiliation of the hospital, any state
func HospitalAffiliations(c *gin.Context) {
	hospitalID, ok := c.Get("hospital_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Hospital not authenticated"})
		return
	}

	affiliations, err := affiliation.ListForHospital(configuration.DB, hospitalID.(uint))
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Affiliations fetched successfully",
		"data":    affiliations,
	})
}

// HospitalToggleAvailability flips a panel doctor's availability
func HospitalToggleAvailability(c *gin.Context) {
	hospitalID, ok := c.Get("hospital_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Hospital not authenticated"})
		return
	}

	affiliationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid affiliation id"})
		return
	}

	updated, err := affiliation.ToggleAvailability(configuration.DB, uint(affiliationID),
		models.HospitalActor{HospitalID: hospitalID.(uint)})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Availability updated",
		"data":    updated,
	})
}

// HospitalAppointments lists all appointments booked into the hospital
func HospitalAppointments(c *gin.Context) {
	hospitalID, ok := c.Get("hospital_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Hospital not authenticated"})
		return
	}

	appointments, err := queue.ListForHospital(configuration.DB, hospitalID.(uint))
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointments fetched successfully",
		"data":    appointments,
	})
}

// HospitalStats reports the hospital's appointment counts by status
func HospitalStats(c *gin.Context) {
	hospitalID, ok := c.Get("hospital_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Hospital not authenticated"})
		return
	}

	counts := gin.H{}
	var total int64
	if err := configuration.DB.Model(&models.Appointment{}).
		Where("hospital_id = ?", hospitalID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to fetch total bookings"})
		return
	}

	statuses := []models.AppointmentStatus{
		models.AppointmentPending,
		models.AppointmentConsulting,
		models.AppointmentCompleted,
		models.AppointmentCancelled,
	}
	for _, status := range statuses {
		var count int64
		if err := configuration.DB.Model(&models.Appointment{}).
			Where("hospital_id = ? AND status = ?", hospitalID, status).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to fetch bookings by status"})
			return
		}
		counts[string(status)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":        "Success",
		"Message":       "Booking details fetched successfully",
		"TotalBookings": total,
		"ByStatus":      counts,
	})
}

// ListSpecializations returns the specialization registry
func ListSpecializations(c *gin.Context) {
	var specializations []models.Specialization
	if err := configuration.DB.Order("specialization_id").Find(&specializations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch specializations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Specializations fetched successfully",
		"data":    specializations,
	})
}
