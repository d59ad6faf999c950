package services

import (
	"context"
	"fmt"

	"recharge-transfers/internal/config"
	"recharge-transfers/internal/models"
	"recharge-transfers/internal/utils"
	"recharge-transfers/pkg/logger"
	"recharge-transfers/pkg/sms"
)

// NotificationService sends booking confirmations over SMS or WhatsApp.
// Delivery failures are reported to the caller but must never fail the
// booking itself.
type NotificationService struct {
	provider sms.SMSProvider
	config   *config.SMSConfig
	logger   *logger.Logger
}

func NewNotificationService(provider sms.SMSProvider, cfg *config.SMSConfig, log *logger.Logger) *NotificationService {
	return &NotificationService{
		provider: provider,
		config:   cfg,
		logger:   log,
	}
}

func (s *NotificationService) SendBookingConfirmation(ctx context.Context, booking *models.Booking) error {
	if s.provider == nil || s.config == nil || !s.config.Enabled {
		return nil
	}

	to := booking.ContactPhone
	channel := "sms"
	if s.config.WhatsappEnabled && booking.ContactWhatsapp != "" {
		to = booking.ContactWhatsapp
		channel = "whatsapp"
	}

	message := fmt.Sprintf(
		"Your Recharge Travels transfer is confirmed. Reference: %s. Pickup: %s on %s. Total: %s.",
		booking.BookingNumber,
		booking.PickupLocation.Address,
		booking.PickupDatetime.Format("2 Jan 2006 15:04"),
		utils.FormatCurrency(booking.TotalPrice, utils.DefaultCurrency),
	)

	resp, err := s.provider.SendSMS(ctx, &sms.SMSRequest{
		To:      to,
		Message: message,
		Channel: channel,
	})
	if err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}

	s.logger.WithBookingNumber(booking.BookingNumber).WithFields(map[string]interface{}{
		"message_id": resp.MessageID,
		"channel":    channel,
	}).Info("Booking confirmation sent")

	return nil
}
