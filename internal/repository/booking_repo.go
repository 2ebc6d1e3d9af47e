package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
)

// ErrDuplicateBooking is returned when a booking for the same checkout
// session already exists.
var ErrDuplicateBooking = errors.New("booking already recorded for checkout session")

const bookingColumns = `id, stripe_session_id, retreat_name, accommodation_type, first_name, last_name, email,
		gender, age, been_hiking, hiking_experience, participants, amount_paid, currency,
		full_price, remaining_balance, payment_status, created_at`

type CreateBookingInput struct {
	StripeSessionID   string
	RetreatName       string
	AccommodationType *string
	FirstName         string
	LastName          string
	Email             string
	Gender            *string
	Age               *int
	BeenHiking        *string
	HikingExperience  *string
	Participants      int
	AmountPaid        int64
	Currency          string
	FullPrice         *int64
	RemainingBalance  *int64
	PaymentStatus     string
}

type BookingSummary struct {
	Participants int
	Bookings     int
	Revenue      int64
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (
			stripe_session_id, retreat_name, accommodation_type, first_name, last_name, email,
			gender, age, been_hiking, hiking_experience, participants, amount_paid, currency,
			full_price, remaining_balance, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(
		ctx,
		query,
		input.StripeSessionID,
		input.RetreatName,
		input.AccommodationType,
		input.FirstName,
		input.LastName,
		input.Email,
		input.Gender,
		input.Age,
		input.BeenHiking,
		input.HikingExperience,
		input.Participants,
		input.AmountPaid,
		input.Currency,
		input.FullPrice,
		input.RemainingBalance,
		input.PaymentStatus,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE stripe_session_id = $1
	`
	return scanBooking(r.db.QueryRow(ctx, query, sessionID))
}

func (r *BookingRepository) CountCompletedParticipants(ctx context.Context, retreatNames []string) (int, error) {
	query := `
		SELECT COALESCE(SUM(participants), 0)
		FROM bookings
		WHERE retreat_name = ANY($1) AND payment_status = $2
	`
	var total int
	if err := r.db.QueryRow(ctx, query, retreatNames, models.PaymentStatusCompleted).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *BookingRepository) SummarizeCompleted(ctx context.Context, retreatNames []string) (BookingSummary, error) {
	query := `
		SELECT COALESCE(SUM(participants), 0), COUNT(*), COALESCE(SUM(amount_paid), 0)
		FROM bookings
		WHERE retreat_name = ANY($1) AND payment_status = $2
	`
	var summary BookingSummary
	err := r.db.QueryRow(ctx, query, retreatNames, models.PaymentStatusCompleted).Scan(
		&summary.Participants,
		&summary.Bookings,
		&summary.Revenue,
	)
	if err != nil {
		return BookingSummary{}, err
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	err := row.Scan(
		&booking.ID,
		&booking.StripeSessionID,
		&booking.RetreatName,
		&booking.AccommodationType,
		&booking.FirstName,
		&booking.LastName,
		&booking.Email,
		&booking.Gender,
		&booking.Age,
		&booking.BeenHiking,
		&booking.HikingExperience,
		&booking.Participants,
		&booking.AmountPaid,
		&booking.Currency,
		&booking.FullPrice,
		&booking.RemainingBalance,
		&booking.PaymentStatus,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
