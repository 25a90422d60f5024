package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/SOUNDAR42/medicare-backend/affiliation"
	"github.com/SOUNDAR42/medicare-backend/authentication"
	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/SOUNDAR42/medicare-backend/queue"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DoctorSignup stages the registration in redis and emails an OTP
func DoctorSignup(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Binding error",
			"data":    err.Error(),
		})
		return
	}

	if err := validate.Struct(doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", doctor.Email).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Email already in use",
			"data":    "Choose another email",
		})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Database error", "data": err.Error()})
		return
	}

	if err := configuration.DB.Where("phone = ?", doctor.Phone).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Phone number already in use",
			"data":    "Choose another phone number",
		})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Database error", "data": err.Error()})
		return
	}

	if err := configuration.DB.Where("license_number = ?", doctor.LicenseNumber).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Licence number already in use",
			"data":    "Choose another Licence number",
		})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Database error", "data": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Failed to hash password", "data": err.Error()})
		return
	}
	doctor.Password = string(hashedPassword)

	otp := authentication.GenerateOTP(6)
	if err := authentication.SendOTPByEmail(otp, doctor.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Failed to send OTP", "data": err.Error()})
		return
	}

	jsonData, err := json.Marshal(doctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Failed to marshal json data", "data": err.Error()})
		return
	}

	if err := configuration.Client.Set(context.Background(), "otp"+doctor.Email, otp, 300*time.Second).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Redis error", "data": err.Error()})
		return
	}
	if err := configuration.Client.Set(context.Background(), "user"+doctor.Email, jsonData, 1200*time.Second).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Redis error", "data": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Go to verification page", "data": nil})
}

// DoctorVerifyOTP completes a staged doctor signup
func DoctorVerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Otp   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Failed", "message": "Binding error", "data": err.Error()})
		return
	}
	if req.Otp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Failed", "message": "OTP not entered", "data": nil})
		return
	}

	otp, err := configuration.Client.Get(context.Background(), "otp"+req.Email).Result()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "Failed", "message": "otp not found", "data": err.Error()})
		return
	}
	if !authentication.ValidateOTP(otp, req.Otp) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "Failed", "message": "Wrong OTP provided", "data": nil})
		return
	}

	user, err := configuration.Client.Get(context.Background(), "user"+req.Email).Result()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "Failed", "message": "User details missing", "data": err.Error()})
		return
	}

	var doctorData models.Doctor
	if err := json.Unmarshal([]byte(user), &doctorData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Error in unmarshaling json data", "data": err.Error()})
		return
	}

	if err := configuration.DB.Create(&doctorData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Failed", "message": "Failed to create doctor", "data": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Signup successful", "data": doctorData})
}

// DoctorLogin
func DoctorLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Error": err.Error()})
		return
	}

	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", loginReq.Email).First(&existingDoctor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingDoctor.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := authentication.GenerateDoctorToken(existingDoctor.Email, existingDoctor.DoctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// DoctorLogout
func DoctorLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}

// ListInvitations returns every affiliation of the doctor, any state
func ListInvitations(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	affiliations, err := affiliation.ListForDoctor(configuration.DB, doctorID.(uint))
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

// RespondInvitation records the doctor's accept or decline decision
func RespondInvitation(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	affiliationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid affiliation id"})
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	decision := affiliation.Decision(req.Decision)
	if decision != affiliation.DecisionAccept && decision != affiliation.DecisionDecline {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be accept or decline"})
		return
	}

	updated, err := affiliation.Respond(configuration.DB, uint(affiliationID),
		models.DoctorActor{DoctorID: doctorID.(uint)}, decision)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Invitation " + req.Decision + "ed",
		"data":    updated,
	})
}

// DoctorToggleAvailability flips the doctor's availability at one hospital
func DoctorToggleAvailability(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	affiliationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid affiliation id"})
		return
	}

	updated, err := affiliation.ToggleAvailability(configuration.DB, uint(affiliationID),
		models.DoctorActor{DoctorID: doctorID.(uint)})
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

// DoctorQueue returns the doctor's queue for a hospital and date, most
// urgent first, earlier tokens first within equal urgency
func DoctorQueue(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	hospitalID, err := strconv.ParseUint(c.Query("hospital_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital id"})
		return
	}
	date, err := time.Parse(queue.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	appointments, err := queue.QueueFor(configuration.DB, uint(hospitalID), doctorID.(uint), date)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Queue fetched successfully",
		"data":    appointments,
	})
}

// AdvanceAppointment moves an appointment one step through the consult
// lifecycle (Pending -> Consulting -> Completed)
func AdvanceAppointment(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	appointment, err := queue.Advance(configuration.DB, c.Param("id"),
		models.DoctorActor{DoctorID: doctorID.(uint)})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment moved to " + string(appointment.Status),
		"data":    appointment,
	})
}

// DoctorCancelAppointment cancels a Pending appointment assigned to the doctor
func DoctorCancelAppointment(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	appointment, err := queue.Cancel(configuration.DB, c.Param("id"),
		models.DoctorActor{DoctorID: doctorID.(uint)})
	if err != nil {
		respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment cancelled",
		"data":    appointment,
	})
}
