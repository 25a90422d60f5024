package affiliation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SOUNDAR42/medicare-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:affiliation_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Doctor{}, &models.Hospital{}, &models.Affiliation{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

func seedParties(t *testing.T, db *gorm.DB) (models.Doctor, models.Hospital) {
	t.Helper()
	doctor := models.Doctor{
		Name: "Dr Ravi", Experience: 8,
		Email: fmt.Sprintf("ravi%d@test.dev", time.Now().UnixNano()),
		Phone: fmt.Sprintf("98%d", time.Now().UnixNano()%1e10),
		LicenseNumber: "KA-4471", Password: "x",
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	hospital := models.Hospital{
		Name:  "Lakeview General",
		Email: fmt.Sprintf("lakeview%d@test.dev", time.Now().UnixNano()), Password: "x",
	}
	if err := db.Create(&hospital).Error; err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	return doctor, hospital
}

func TestInviteCreatesInvitedAffiliation(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)

	aff, err := Invite(db, models.HospitalActor{HospitalID: hospital.HospitalID},
		ByID(doctor.DoctorID), InviteParams{Fee: 400, WorkingHours: "9-5"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if aff.State != models.AffiliationInvited {
		t.Errorf("state = %s, want invited", aff.State)
	}
	if aff.Available {
		t.Error("a fresh invitation must not be available")
	}
	if aff.Fee != 400 {
		t.Errorf("fee = %d, want 400", aff.Fee)
	}
}

func TestInviteByContactPhone(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)

	aff, err := Invite(db, models.HospitalActor{HospitalID: hospital.HospitalID},
		ByContact(doctor.Phone), InviteParams{Fee: 250})
	if err != nil {
		t.Fatalf("invite by phone: %v", err)
	}
	if aff.DoctorID != doctor.DoctorID {
		t.Errorf("resolved doctor = %d, want %d", aff.DoctorID, doctor.DoctorID)
	}

	if _, err := Invite(db, models.HospitalActor{HospitalID: hospital.HospitalID},
		ByContact("0000000000"), InviteParams{}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown phone err = %v, want ErrNotFound", err)
	}
}

func TestInviteRejectsLivePair(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)
	hospitalActor := models.HospitalActor{HospitalID: hospital.HospitalID}

	aff, err := Invite(db, hospitalActor, ByID(doctor.DoctorID), InviteParams{})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	// already invited
	if _, err := Invite(db, hospitalActor, ByID(doctor.DoctorID), InviteParams{}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("second invite err = %v, want ErrConflict", err)
	}

	// already accepted
	if _, err := Respond(db, aff.AffiliationID, models.DoctorActor{DoctorID: doctor.DoctorID}, DecisionAccept); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if _, err := Invite(db, hospitalActor, ByID(doctor.DoctorID), InviteParams{}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("invite of accepted pair err = %v, want ErrConflict", err)
	}
}

func TestDeclinedPairCanBeReinvited(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)
	hospitalActor := models.HospitalActor{HospitalID: hospital.HospitalID}
	doctorActor := models.DoctorActor{DoctorID: doctor.DoctorID}

	aff, err := Invite(db, hospitalActor, ByID(doctor.DoctorID), InviteParams{Fee: 300})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	declined, err := Respond(db, aff.AffiliationID, doctorActor, DecisionDecline)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.State != models.AffiliationDeclined {
		t.Fatalf("state = %s, want declined", declined.State)
	}

	// declined is terminal for the decision itself
	if _, err := Respond(db, aff.AffiliationID, doctorActor, DecisionAccept); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("respond after decline err = %v, want ErrInvalidState", err)
	}

	// but the hospital may start over with fresh terms
	again, err := Invite(db, hospitalActor, ByID(doctor.DoctorID), InviteParams{Fee: 450})
	if err != nil {
		t.Fatalf("re-invite: %v", err)
	}
	if again.AffiliationID != aff.AffiliationID {
		t.Errorf("re-invite created a second row for the pair")
	}
	if again.State != models.AffiliationInvited || again.Fee != 450 {
		t.Errorf("re-invite state/fee = %s/%d, want invited/450", again.State, again.Fee)
	}

	if _, err := Respond(db, again.AffiliationID, doctorActor, DecisionAccept); err != nil {
		t.Fatalf("accept after re-invite: %v", err)
	}
}

func TestRespondGuards(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)

	aff, err := Invite(db, models.HospitalActor{HospitalID: hospital.HospitalID},
		ByID(doctor.DoctorID), InviteParams{})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	if _, err := Respond(db, aff.AffiliationID, models.DoctorActor{DoctorID: doctor.DoctorID + 1}, DecisionAccept); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("other doctor err = %v, want ErrForbidden", err)
	}
	if _, err := Respond(db, 99999, models.DoctorActor{DoctorID: doctor.DoctorID}, DecisionAccept); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown affiliation err = %v, want ErrNotFound", err)
	}
	if _, err := Respond(db, aff.AffiliationID, models.DoctorActor{DoctorID: doctor.DoctorID}, Decision("maybe")); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("bogus decision err = %v, want ErrInvalidState", err)
	}
}

func TestAcceptDefaultsToAvailable(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)

	aff, err := Invite(db, models.HospitalActor{HospitalID: hospital.HospitalID},
		ByID(doctor.DoctorID), InviteParams{})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	accepted, err := Respond(db, aff.AffiliationID, models.DoctorActor{DoctorID: doctor.DoctorID}, DecisionAccept)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !accepted.Available {
		t.Error("accepted affiliation must start available")
	}
}

func TestToggleAvailability(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)
	doctorActor := models.DoctorActor{DoctorID: doctor.DoctorID}
	hospitalActor := models.HospitalActor{HospitalID: hospital.HospitalID}

	aff, err := Invite(db, hospitalActor, ByID(doctor.DoctorID), InviteParams{})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	// not toggleable before acceptance
	if _, err := ToggleAvailability(db, aff.AffiliationID, doctorActor); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("toggle while invited err = %v, want ErrInvalidState", err)
	}

	if _, err := Respond(db, aff.AffiliationID, doctorActor, DecisionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	off, err := ToggleAvailability(db, aff.AffiliationID, doctorActor)
	if err != nil {
		t.Fatalf("doctor toggle: %v", err)
	}
	if off.Available {
		t.Error("toggle should have turned availability off")
	}

	on, err := ToggleAvailability(db, aff.AffiliationID, hospitalActor)
	if err != nil {
		t.Fatalf("hospital toggle: %v", err)
	}
	if !on.Available {
		t.Error("toggle should have turned availability back on")
	}

	// strangers to the affiliation cannot toggle it
	if _, err := ToggleAvailability(db, aff.AffiliationID, models.DoctorActor{DoctorID: doctor.DoctorID + 1}); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("other doctor toggle err = %v, want ErrForbidden", err)
	}
	if _, err := ToggleAvailability(db, aff.AffiliationID, models.HospitalActor{HospitalID: hospital.HospitalID + 1}); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("other hospital toggle err = %v, want ErrForbidden", err)
	}
	if _, err := ToggleAvailability(db, aff.AffiliationID, models.PatientActor{PatientID: 1}); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("patient toggle err = %v, want ErrForbidden", err)
	}
}

func TestListAffiliations(t *testing.T) {
	db := setupTestDB(t)
	doctor, hospital := seedParties(t, db)
	other := models.Hospital{Name: "Sunrise Clinic", Email: fmt.Sprintf("sunrise%d@test.dev", time.Now().UnixNano()), Password: "x"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create hospital: %v", err)
	}

	for _, h := range []uint{hospital.HospitalID, other.HospitalID} {
		if _, err := Invite(db, models.HospitalActor{HospitalID: h}, ByID(doctor.DoctorID), InviteParams{}); err != nil {
			t.Fatalf("invite from hospital %d: %v", h, err)
		}
	}

	mine, err := ListForDoctor(db, doctor.DoctorID)
	if err != nil {
		t.Fatalf("ListForDoctor: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("doctor affiliations = %d, want 2", len(mine))
	}

	theirs, err := ListForHospital(db, hospital.HospitalID)
	if err != nil {
		t.Fatalf("ListForHospital: %v", err)
	}
	if len(theirs) != 1 {
		t.Errorf("hospital affiliations = %d, want 1", len(theirs))
	}
}
