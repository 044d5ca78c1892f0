// services/reminder_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"dukahub-backend/config"
	"dukahub-backend/models"
	"dukahub-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// reminderCooldown prevents nagging a customer about the same invoice every
// single day.
const reminderCooldown = 7 * 24 * time.Hour

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler sends overdue-invoice reminders every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		config.Logger.WithError(err).Error("Failed to schedule payment reminders")
		return
	}
	c.Start()
	config.Logger.Info("Payment reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	config.Logger.Info("Starting overdue payment reminder processing...")

	var companies []models.Company
	if err := s.db.Find(&companies).Error; err != nil {
		config.Logger.WithError(err).Error("Failed to fetch companies")
		return
	}

	for _, company := range companies {
		if !company.SMSNotifications && !company.WhatsAppNotifications {
			continue
		}
		s.ProcessCompanyReminders(company)
	}

	config.Logger.Info("Overdue payment reminder processing completed")
}

func (s *ReminderService) ProcessCompanyReminders(company models.Company) {
	sales, err := s.overdueSales(company.ID)
	if err != nil {
		config.Logger.WithError(err).WithField("companyId", company.ID).
			Error("Failed to fetch overdue sales")
		return
	}
	s.sendReminders(company, sales)
}

// overdueSales returns unpaid and partially paid invoices whose payment term
// has elapsed. A customer without a payment term is due immediately.
func (s *ReminderService) overdueSales(companyID uuid.UUID) ([]models.Sale, error) {
	var candidates []models.Sale
	err := s.db.Preload("Customer").Preload("Customer.PaymentTerm").
		Where("company_id = ? AND sale_type = ? AND payment_status IN ?",
			companyID, models.SaleTypeInvoice,
			[]string{models.PaymentStatusUnpaid, models.PaymentStatusPartial}).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var overdue []models.Sale
	for _, sale := range candidates {
		if sale.Customer == nil || sale.Customer.Phone == "" {
			continue
		}
		if sale.Customer.CustomerType == models.CustomerTypeWalkIn {
			continue
		}
		termDays := 0
		if sale.Customer.PaymentTerm != nil {
			termDays = sale.Customer.PaymentTerm.Days
		}
		if utils.DaysBetween(sale.SaleDate, now) > termDays {
			overdue = append(overdue, sale)
		}
	}
	return overdue, nil
}

func (s *ReminderService) sendReminders(company models.Company, sales []models.Sale) {
	for _, sale := range sales {
		customer := sale.Customer

		var recent int64
		if err := s.db.Model(&models.PaymentReminderLog{}).
			Where("company_id = ? AND sale_id = ? AND sent_at > ?",
				company.ID, sale.ID, time.Now().Add(-reminderCooldown)).
			Count(&recent).Error; err != nil {
			config.Logger.WithError(err).Error("Failed to check reminder history")
			continue
		}
		if recent > 0 {
			continue
		}

		message := fmt.Sprintf(
			"Dear %s, your invoice %s from %s has an outstanding balance of %s. Kindly settle it at your earliest convenience.",
			customer.Name, sale.SaleNumber, company.Name,
			utils.FormatMoney(company.Currency, sale.AmountDue))

		channel := "sms"
		to := customer.Phone
		if company.WhatsAppNotifications && strings.HasPrefix(customer.Phone, "+") {
			to = "whatsapp:" + customer.Phone
			channel = "whatsapp"
		} else if !company.SMSNotifications {
			continue
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""
		if err != nil {
			config.Logger.WithError(err).WithField("phone", customer.Phone).
				Error("Failed to send payment reminder")
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			config.Logger.WithField("sid", *resp.Sid).Info("Payment reminder sent")
		}

		reminderLog := models.PaymentReminderLog{
			CompanyID:    company.ID,
			CustomerID:   customer.ID,
			SaleID:       sale.ID,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      channel,
			SentAt:       time.Now(),
		}
		if err := s.db.Create(&reminderLog).Error; err != nil {
			config.Logger.WithError(err).Error("Failed to log payment reminder")
		}
	}
}
