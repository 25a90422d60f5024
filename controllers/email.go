package controllers

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gomail/gomail"
)

// SendEmail sends an email with an optional attachment
func SendEmail(subject, msg, email, attachmentName string, attachmentData []byte) error {
	senderEmail := os.Getenv("Email")
	senderPassword := os.Getenv("Password")

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", msg)

	if attachmentData != nil {
		m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachmentData)
			return err
		}))
	}

	d := gomail.NewDialer("smtp.gmail.com", 587, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

// SendInvitationEmail notifies a doctor that a hospital invited them
func SendInvitationEmail(doctorEmail, doctorName, hospitalName string) error {
	msg := fmt.Sprintf("Hello Dr. %s,\n\n%s has invited you to join their panel. Log in to accept or decline the invitation.", doctorName, hospitalName)
	return SendEmail("Hospital invitation", msg, doctorEmail, "", nil)
}
