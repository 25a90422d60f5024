package models

import "github.com/golang-jwt/jwt/v5"

type Patient struct {
	PatientID int    `gorm:"primaryKey"`
	Name      string `json:"name" validate:"required"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Pincode   int    `json:"pincode"`
	Phone     string `json:"phone" gorm:"unique;not null" validate:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" validate:"required"`
}

type VerifyOTP struct {
	Phone string `json:"phone"`
	Otp   string `json:"otp"`
}

type PatientClaims struct {
	PatientID int    `json:"patient_id"`
	Phone     string `json:"phone"`
	jwt.RegisteredClaims
}
