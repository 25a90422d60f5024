package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/SOUNDAR42/medicare-backend/authentication"
	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

// PatientSignup stages the registration in redis and sends an SMS OTP. The
// record only reaches the database after OTP verification.
func PatientSignup(c *gin.Context) {
	var patient models.Patient
	if err := c.BindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validate.Struct(patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"Status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(patient.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	patient.Password = string(hashedPassword)

	var existingPatient models.Patient
	if err := configuration.DB.Where("phone = ?", patient.Phone).First(&existingPatient).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Patient already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	if err := SendOTP(patient.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send OTP", "data": err.Error()})
		return
	}

	patientData, err := json.Marshal(&patient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to marshal patient", "data": err.Error()})
		return
	}

	key := fmt.Sprintf("user:%s", patient.Phone)
	if err := configuration.SetRedis(key, patientData, time.Minute*5); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"Message": "Otp generated successfully. Proceed to verification page>>>"})
}

// SendOTP delivers a verification code to the patient's phone via Twilio
func SendOTP(phoneNumber string) error {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTHTOKEN"),
	})

	params := verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")

	_, err := client.VerifyV2.CreateVerification(os.Getenv("TWILIO_SERVICE_ID"), &params)
	return err
}

// UserOtpVerify checks the SMS OTP and creates the staged patient record
func UserOtpVerify(c *gin.Context) {
	var OTPverify models.VerifyOTP
	if err := c.BindJSON(&OTPverify); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Status": false, "Data": nil, "Message": "Failed to parse JSON data"})
		return
	}
	if OTPverify.Otp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"Status": false, "Message": "OTP is required"})
		return
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTHTOKEN"),
	})

	params := verify.CreateVerificationCheckParams{}
	params.SetTo(OTPverify.Phone)
	params.SetCode(OTPverify.Otp)

	response, err := client.VerifyV2.CreateVerificationCheck(os.Getenv("TWILIO_SERVICE_ID"), &params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "error in verifying provided OTP"})
		return
	} else if *response.Status != "approved" {
		c.JSON(http.StatusUnauthorized, gin.H{"Status": false, "Data": nil, "Message": "Wrong OTP provided"})
		return
	}

	key := fmt.Sprintf("user:%s", OTPverify.Phone)
	value, err := configuration.GetRedis(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Signup session expired, please sign up again"})
		return
	}

	var userData models.Patient
	if err := json.Unmarshal([]byte(value), &userData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unmarshal patient", "data": err.Error()})
		return
	}

	if err := configuration.DB.Create(&userData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"Status": false, "Data": nil, "Message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  true,
		"Message": "OTP verified successfully and user has been created. Login to continue...",
	})
}

// PatientLogin handles the patient login process
func PatientLogin(c *gin.Context) {
	var loginReq struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingPatient models.Patient
	if err := configuration.DB.Where("phone = ?", loginReq.Phone).First(&existingPatient).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or phone number is not present"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingPatient.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or password"})
		return
	}

	token, err := authentication.GeneratePatientToken(existingPatient.PatientID, loginReq.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Login successful",
		"token":   token,
	})
}

// PatientLogout
func PatientLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}
