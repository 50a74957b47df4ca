package mailer

import (
	"medilink-service/internal/app/config"

	"github.com/go-gomail/gomail"
)

func NewGomailDialer(driverConfig *config.DriverConfig) *gomail.Dialer {
	return gomail.NewDialer(
		driverConfig.SMTP.Host,
		driverConfig.SMTP.Port,
		driverConfig.SMTP.Username,
		driverConfig.SMTP.Password,
	)
}
