package models

type Specialization struct {
	SpecializationID uint   `gorm:"primaryKey"`
	Name             string `json:"name" gorm:"unique;not null"`
}
