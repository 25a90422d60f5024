package models

import "github.com/golang-jwt/jwt/v5"

type Doctor struct {
	DoctorID      uint   `gorm:"primaryKey"`
	Name          string `json:"name" gorm:"not null" validate:"required"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Experience    int    `json:"experience" gorm:"not null"`
	Email         string `json:"email" gorm:"unique" validate:"required"`
	Phone         string `json:"phone" gorm:"unique;not null" validate:"required"`
	LicenseNumber string `json:"license_number" gorm:"not null" validate:"required"`
	Password      string `json:"password" gorm:"not null" validate:"required"`
}

type DoctorClaims struct {
	Id          uint   `json:"id"`
	DoctorEmail string `json:"email"`
	jwt.RegisteredClaims
}
