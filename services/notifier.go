// services/notifier.go
package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"nailstudio-backend/models"
)

// Notifier sends booking confirmations over Twilio. It is best-effort and
// synchronous: a send failure is logged, never surfaced to the caller, and
// nothing is retried or queued.
type Notifier struct {
	client *twilio.RestClient
	from   string
}

// NewNotifier returns nil when the Twilio credentials are not configured;
// callers treat a nil notifier as disabled.
func NewNotifier(accountSID, authToken, fromNumber string) *Notifier {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil
	}
	return &Notifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: fromNumber,
	}
}

// SendBookingConfirmation messages the client about a freshly booked slot.
func (n *Notifier) SendBookingConfirmation(phone string, appointment *models.Appointment) {
	if n == nil || phone == "" || appointment.Service == nil {
		return
	}

	message := fmt.Sprintf("Your %s appointment is confirmed for %s.",
		appointment.Service.Name,
		appointment.StartTime.Format(time.RFC1123))

	to := phone
	from := n.from
	// WhatsApp when the number is in E.164 form, plain SMS otherwise.
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		from = "whatsapp:" + n.from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send booking confirmation to %s: %v", phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Booking confirmation sent to %s, SID: %s", phone, *resp.Sid)
	}
}
