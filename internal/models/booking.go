package models

import "time"

const PaymentStatusCompleted = "completed"

type Booking struct {
	ID                int64     `json:"id"`
	StripeSessionID   string    `json:"stripe_session_id"`
	RetreatName       string    `json:"retreat_name"`
	AccommodationType *string   `json:"accommodation_type"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Gender            *string   `json:"gender"`
	Age               *int      `json:"age"`
	BeenHiking        *string   `json:"been_hiking"`
	HikingExperience  *string   `json:"hiking_experience"`
	Participants      int       `json:"participants"`
	AmountPaid        int64     `json:"amount_paid"`
	Currency          string    `json:"currency"`
	FullPrice         *int64    `json:"full_price"`
	RemainingBalance  *int64    `json:"remaining_balance"`
	PaymentStatus     string    `json:"payment_status"`
	CreatedAt         time.Time `json:"created_at"`
}

func (b *Booking) FullName() string {
	return b.FirstName + " " + b.LastName
}

type RetreatStats struct {
	MaxCapacity     int   `json:"maxCapacity"`
	CurrentBookings int   `json:"currentBookings"`
	AvailableSpots  int   `json:"availableSpots"`
	TotalBookings   int   `json:"totalBookings"`
	TotalRevenue    int64 `json:"totalRevenue"`
	SoldOut         bool  `json:"soldOut"`
}

type NotificationResult struct {
	ConfirmationSent bool `json:"confirmationSent"`
	AdminAlertSent   bool `json:"adminAlertSent"`
}
