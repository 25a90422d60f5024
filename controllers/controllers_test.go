package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/SOUNDAR42/medicare-backend/authentication"
	"github.com/SOUNDAR42/medicare-backend/configuration"
	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/SOUNDAR42/medicare-backend/routes"
	"github.com/gin-gonic/gin"
)

var router *gin.Engine

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	gin.SetMode(gin.TestMode)
	configuration.ConfigDB()
	router = routes.SetupRoutes()
	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %s: %v", rec.Body.String(), err)
	}
	return envelope.Data
}

func TestTriageEndpoint(t *testing.T) {
	patient := models.Patient{
		Name: "Meera", Age: 28,
		Phone:    fmt.Sprintf("97%d", time.Now().UnixNano()%1e10),
		Password: "x",
	}
	if err := configuration.DB.Create(&patient).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}
	token, err := authentication.GeneratePatientToken(patient.PatientID, patient.Phone)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	rec := doJSON(t, http.MethodPost, "/patient/triage", token, gin.H{"symptoms": "sudden chest tightness"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["level"] != "High" {
		t.Errorf("level = %v, want High", data["level"])
	}
	if data["score"].(float64) != 90 {
		t.Errorf("score = %v, want 90", data["score"])
	}

	if rec := doJSON(t, http.MethodPost, "/patient/triage", "", gin.H{"symptoms": "x"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}
}

// TestBookingFlow walks the whole surface: a hospital invites a doctor, the
// doctor accepts, a patient books and lands in the doctor's queue, and the
// doctor starts the consult.
func TestBookingFlow(t *testing.T) {
	nano := time.Now().UnixNano()
	db := configuration.DB

	hospital := models.Hospital{Name: "Flow General", Email: fmt.Sprintf("flow%d@test.dev", nano), Password: "x"}
	if err := db.Create(&hospital).Error; err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	doctor := models.Doctor{
		Name: "Dr Flow", Experience: 10,
		Email: fmt.Sprintf("drflow%d@test.dev", nano),
		Phone: fmt.Sprintf("96%d", nano%1e10), LicenseNumber: fmt.Sprintf("FL%d", nano), Password: "x",
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	patient := models.Patient{
		Name: "Flow Patient", Age: 40,
		Phone:    fmt.Sprintf("95%d", nano%1e10),
		Password: "x",
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}

	hospitalToken, err := authentication.GenerateHospitalToken(hospital.Email, hospital.HospitalID)
	if err != nil {
		t.Fatalf("hospital token: %v", err)
	}
	doctorToken, err := authentication.GenerateDoctorToken(doctor.Email, doctor.DoctorID)
	if err != nil {
		t.Fatalf("doctor token: %v", err)
	}
	patientToken, err := authentication.GeneratePatientToken(patient.PatientID, patient.Phone)
	if err != nil {
		t.Fatalf("patient token: %v", err)
	}

	// hospital invites the doctor
	rec := doJSON(t, http.MethodPost, "/hospital/invite", hospitalToken,
		gin.H{"doctor_id": doctor.DoctorID, "fee": 350})
	if rec.Code != http.StatusOK {
		t.Fatalf("invite status = %d body = %s", rec.Code, rec.Body.String())
	}
	affiliationID := decodeData(t, rec)["affiliation_id"].(float64)

	// booking before acceptance fails: no eligible doctor yet
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	rec = doJSON(t, http.MethodPost, "/patient/book", patientToken,
		gin.H{"hospital_id": hospital.HospitalID, "appointment_date": date, "urgency_score": 60})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("premature booking status = %d, want 400", rec.Code)
	}

	// doctor accepts the invitation
	rec = doJSON(t, http.MethodPost, fmt.Sprintf("/doctor/invitations/%.0f/respond", affiliationID),
		doctorToken, gin.H{"decision": "accept"})
	if rec.Code != http.StatusOK {
		t.Fatalf("respond status = %d body = %s", rec.Code, rec.Body.String())
	}

	// patient books and receives the first token of the day
	rec = doJSON(t, http.MethodPost, "/patient/book", patientToken,
		gin.H{"hospital_id": hospital.HospitalID, "appointment_date": date, "urgency_score": 60})
	if rec.Code != http.StatusOK {
		t.Fatalf("book status = %d body = %s", rec.Code, rec.Body.String())
	}
	booked := decodeData(t, rec)
	if booked["token_no"] != "T1" {
		t.Errorf("token = %v, want T1", booked["token_no"])
	}
	appointmentID := booked["appointment_id"].(string)

	// the appointment shows up in the doctor's queue
	rec = doJSON(t, http.MethodGet,
		fmt.Sprintf("/doctor/queue?hospital_id=%d&date=%s", hospital.HospitalID, date), doctorToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("queue status = %d body = %s", rec.Code, rec.Body.String())
	}
	var queueEnvelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &queueEnvelope); err != nil {
		t.Fatalf("decode queue: %v", err)
	}
	if len(queueEnvelope.Data) != 1 || queueEnvelope.Data[0]["appointment_id"] != appointmentID {
		t.Fatalf("queue = %v, want the booked appointment", queueEnvelope.Data)
	}

	// doctor calls the patient in
	rec = doJSON(t, http.MethodPatch, "/doctor/appointments/"+appointmentID+"/advance", doctorToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance status = %d body = %s", rec.Code, rec.Body.String())
	}
	if status := decodeData(t, rec)["status"]; status != "Consulting" {
		t.Errorf("status = %v, want Consulting", status)
	}

	// too late for the patient to cancel
	rec = doJSON(t, http.MethodPost, "/patient/appointments/"+appointmentID+"/cancel", patientToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("cancel of consulting appointment status = %d, want 400", rec.Code)
	}

	// history shows the appointment to its owner
	rec = doJSON(t, http.MethodGet, "/patient/appointments", patientToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("history status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestHospitalSearchIsPublic(t *testing.T) {
	nano := time.Now().UnixNano()
	hospital := models.Hospital{
		Name: "Public Search", Pincode: 682001, Latitude: 9.97, Longitude: 76.28,
		Email: fmt.Sprintf("search%d@test.dev", nano), Password: "x",
	}
	if err := configuration.DB.Create(&hospital).Error; err != nil {
		t.Fatalf("create hospital: %v", err)
	}

	rec := doJSON(t, http.MethodGet, "/hospitals/search?pincode=682001", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, h := range envelope.Data {
		if h["name"] == "Public Search" {
			found = true
		}
	}
	if !found {
		t.Errorf("search did not return the seeded hospital: %s", rec.Body.String())
	}
}
