package models

// Actor identifies who is performing a mutation. Core operations take an
// explicit actor instead of reading ambient session state so they can be
// called (and tested) without the HTTP layer.
type Actor interface {
	isActor()
}

type PatientActor struct {
	PatientID int
}

type DoctorActor struct {
	DoctorID uint
}

type HospitalActor struct {
	HospitalID uint
}

func (PatientActor) isActor()  {}
func (DoctorActor) isActor()   {}
func (HospitalActor) isActor() {}
