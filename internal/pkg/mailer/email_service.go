package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSubmissionNotice(toEmails []string, candidateName, language, category string) error
	SendApprovalNotice(toEmail, candidateName, grade string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendSubmissionNotice(toEmails []string, candidateName, language, category string) error {
	if len(toEmails) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmails...)
	m.SetHeader("Subject", "New broadcast evaluation submission")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New submission awaiting review</h2>
			<p><b>%s</b> submitted a %s / %s broadcast evaluation.</p>
			<p>Open the review dashboard to score it.</p>
		</div>
	`, candidateName, language, category)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send submission notice: %v\n", err)
		return err
	}
	return nil
}

func (s *emailService) SendApprovalNotice(toEmail, candidateName, grade string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your broadcast evaluation result")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Evaluation approved</h2>
			<p>Hello %s, your broadcast evaluation has been approved with grade <b>%s</b>.</p>
		</div>
	`, candidateName, grade)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send approval notice to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
