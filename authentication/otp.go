package authentication

import (
	"log"
	"math/rand"
	"net/smtp"
	"os"
)

// GenerateOTP returns a numeric one-time code of the given length
func GenerateOTP(length int) string {
	characters := "0123456789"
	otp := make([]byte, length)
	for i := range otp {
		otp[i] = characters[rand.Intn(len(characters))]
	}
	return string(otp)
}

// SendOTPByEmail mails the code to the given address
func SendOTPByEmail(otp, email string) error {
	message := "Subject: Medicare OTP\nHey, your OTP is " + otp

	SMTPemail := os.Getenv("Email")
	SMTPpass := os.Getenv("Password")

	auth := smtp.PlainAuth("", SMTPemail, SMTPpass, "smtp.gmail.com")

	err := smtp.SendMail("smtp.gmail.com:587", auth, SMTPemail, []string{email}, []byte(message))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// ValidateOTP compares the stored and submitted codes
func ValidateOTP(otp, submitted string) bool {
	return otp == submitted
}
