package models

import "encoding/json"

const CheckoutPaymentStatusPaid = "paid"

// Metadata keys carried on a checkout transaction. They are the only record
// of booking intent between checkout creation and payment completion.
const (
	MetaRetreat           = "retreat"
	MetaAccommodationType = "accommodationType"
	MetaEmail             = "email"
	MetaFirstName         = "firstName"
	MetaLastName          = "lastName"
	MetaGender            = "gender"
	MetaAge               = "age"
	MetaBeenHiking        = "beenHiking"
	MetaHikingExperience  = "hikingExperience"
	MetaFullPrice         = "fullPrice"
	MetaDepositAmount     = "depositAmount"
	MetaRemainingBalance  = "remainingBalance"
)

type CheckoutLineItem struct {
	Name        string
	Description string
	Amount      int64
	Currency    string
}

type CheckoutRequest struct {
	CustomerEmail string
	LineItem      CheckoutLineItem
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// CheckoutSnapshot is the provider-reported state of a checkout transaction.
type CheckoutSnapshot struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	CustomerEmail string            `json:"customer_email"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
	Raw           json.RawMessage   `json:"-"`
}

func (s *CheckoutSnapshot) Paid() bool {
	return s != nil && s.PaymentStatus == CheckoutPaymentStatusPaid
}

type WebhookEvent struct {
	ID      string
	Type    string
	Session *CheckoutSnapshot
}
