package controllers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/SOUNDAR42/medicare-backend/queue"
	"github.com/SOUNDAR42/medicare-backend/triage"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// BookAppointment books the authenticated patient into a hospital queue. The
// doctor and token assignment happen inside queue.Book; on success a token
// slip PDF is mailed to the hospital's contact for the front desk.
func BookAppointment(c *gin.Context) {
	var req struct {
		HospitalID      uint   `json:"hospital_id" binding:"required"`
		AppointmentDate string `json:"appointment_date" binding:"required"`
		UrgencyScore    int    `json:"urgency_score"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patientID, ok := c.Get("patient_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	date, err := time.Parse(queue.DateLayout, req.AppointmentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment date cannot be in the past"})
		return
	}
	if req.UrgencyScore < 0 || req.UrgencyScore > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Urgency score must be between 0 and 100"})
		return
	}

	appointment, err := queue.Book(configuration.DB, patientID.(int), req.HospitalID, date, req.UrgencyScore)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	// Slip delivery is best effort; the booking stands even if mail fails.
	go sendTokenSlip(*appointment)

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment booked successfully",
		"data":    appointment,
	})
}

// CancelAppointment cancels a Pending appointment owned by the patient
func CancelAppointment(c *gin.Context) {
	patientID, ok := c.Get("patient_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	appointment, err := queue.Cancel(configuration.DB, c.Param("id"), models.PatientActor{PatientID: patientID.(int)})
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

// GetAppointmentHistory lists the authenticated patient's appointments
func GetAppointmentHistory(c *gin.Context) {
	patientID, ok := c.Get("patient_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Patient not authenticated"})
		return
	}

	appointments, err := queue.ListForPatient(configuration.DB, patientID.(int))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if len(appointments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No history found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"Message": "Appointment history fetched successfully",
		"data":    appointments,
	})
}

func sendTokenSlip(appointment models.Appointment) {
	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", appointment.PatientID).First(&patient).Error; err != nil {
		log.Println("token slip: patient lookup failed:", err)
		return
	}
	var doctor models.Doctor
	if err := configuration.DB.Where("doctor_id = ?", appointment.DoctorID).First(&doctor).Error; err != nil {
		log.Println("token slip: doctor lookup failed:", err)
		return
	}
	var hospital models.Hospital
	if err := configuration.DB.Where("hospital_id = ?", appointment.HospitalID).First(&hospital).Error; err != nil {
		log.Println("token slip: hospital lookup failed:", err)
		return
	}

	if patient.Email == "" {
		return
	}

	slip, err := generateTokenSlipPDF(appointment, patient, doctor, hospital)
	if err != nil {
		log.Println("token slip: pdf generation failed:", err)
		return
	}

	msg := fmt.Sprintf("Your appointment at %s on %s is confirmed.\nToken number: %s\nDoctor: %s",
		hospital.Name, appointment.AppointmentDate, appointment.TokenNo, doctor.Name)
	if err := SendEmail("Appointment confirmation", msg, patient.Email, "token-slip.pdf", slip); err != nil {
		log.Println("token slip: mail failed:", err)
	}
}

// generateTokenSlipPDF renders the patient-facing queue slip
func generateTokenSlipPDF(appointment models.Appointment, patient models.Patient, doctor models.Doctor, hospital models.Hospital) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 102, 102)
	pdf.CellFormat(0, 10, "Medicare - Appointment Token Slip", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Appointment Details", "1", 1, "C", false, 0, "")
	addSlipDetail(pdf, "Token Number", appointment.TokenNo, true)
	addSlipDetail(pdf, "Patient Name", patient.Name, false)
	addSlipDetail(pdf, "Doctor Name", doctor.Name, false)
	addSlipDetail(pdf, "Hospital", hospital.Name, false)
	addSlipDetail(pdf, "Date", appointment.AppointmentDate, false)
	urgencyTag := "Routine"
	if appointment.UrgencyScore > triage.UrgentThreshold {
		urgencyTag = "URGENT"
	}
	addSlipDetail(pdf, "Urgency", urgencyTag, false)

	pdf.SetFont("Arial", "", 10)
	pdf.SetY(pdf.GetY() + 10)
	pdf.MultiCell(0, 5, "Please arrive before your token is called. Tokens are served by urgency first, then booking order.", "", "C", false)

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}
	return pdfBuffer.Bytes(), nil
}

// addSlipDetail adds a detail line to the PDF
func addSlipDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
