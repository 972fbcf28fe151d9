package email

import (
	domain "github.com/Tarankalsi/backend-triumphllights/internal/entity"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	gomail "gopkg.in/gomail.v2"
)

// GomailSender delivers transactional mail over SMTP. Callers treat sends
// as best-effort; nothing here retries.
type GomailSender struct {
	dialer *gomail.Dialer
	sender string
}

func NewGomailSender(host string, port int, username, password, sender string) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

var _ usecase.Mailer = (*GomailSender)(nil)

func (s *GomailSender) SendOrderConfirmation(to, fullName string, o *domain.Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Order Confirmation - Triumph Lights")
	m.SetBody("text/plain", confirmationText(fullName, o))
	m.AddAlternative("text/html", confirmationHTML(fullName, o))
	return s.dialer.DialAndSend(m)
}
