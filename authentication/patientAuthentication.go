package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func patientKey() []byte {
	if key := os.Getenv("PATIENT_JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("patientkey")
}

// Generating jwt token for patient
func GeneratePatientToken(patientID int, phone string) (string, error) {
	claims := &models.PatientClaims{
		PatientID: patientID,
		Phone:     phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(patientKey())
}

// AuthenticatePatient verifies a patient token and returns the claims
func AuthenticatePatient(tokenString string) (string, int, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.PatientClaims{}, func(token *jwt.Token) (interface{}, error) {
		return patientKey(), nil
	})
	if err != nil {
		return "", 0, err
	}
	if claims, ok := token.Claims.(*models.PatientClaims); ok && token.Valid {
		return claims.Phone, claims.PatientID, nil
	}
	return "", 0, errors.New("invalid token")
}

// Patient auth middleware
func PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing the authorization header"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
		phone, patientID, err := AuthenticatePatient(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("patient_id", patientID)
		c.Set("phone", phone)
		c.Next()
	}
}
