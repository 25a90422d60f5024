package models

import "github.com/golang-jwt/jwt/v5"

type Hospital struct {
	HospitalID   uint    `gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null" validate:"required"`
	Location     string  `json:"location"`
	Address      string  `json:"address"`
	Pincode      int     `json:"pincode"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Contact      string  `json:"contact"`
	WorkingHours string  `json:"working_hours"`
	Email        string  `json:"email" gorm:"unique" validate:"required"`
	Password     string  `json:"password" gorm:"not null" validate:"required"`
}

type HospitalClaims struct {
	Id            uint   `json:"id"`
	HospitalEmail string `json:"email"`
	jwt.RegisteredClaims
}
