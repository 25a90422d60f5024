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

func hospitalKey() []byte {
	if key := os.Getenv("HOSPITAL_JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("hospitalkey")
}

// Generating token for hospital admin sessions
func GenerateHospitalToken(hospitalEmail string, hospitalId uint) (string, error) {
	claims := &models.HospitalClaims{
		Id:            hospitalId,
		HospitalEmail: hospitalEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(hospitalKey())
}

// verify hospital token
func HospitalAuthentication(tokenString string) (string, uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.HospitalClaims{}, func(token *jwt.Token) (interface{}, error) {
		return hospitalKey(), nil
	})
	if err != nil {
		return "", 0, err
	}
	if claims, ok := token.Claims.(*models.HospitalClaims); ok && token.Valid {
		return claims.HospitalEmail, claims.Id, nil
	}
	return "", 0, errors.New("invalid token")
}

// Hospital auth middleware
func HospitalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing the authorization header"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
		email, id, err := HospitalAuthentication(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("email", email)
		c.Set("hospital_id", id)
		c.Next()
	}
}
