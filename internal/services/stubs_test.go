package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/catalog"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/repository"
)

// memoryBookings mimics the bookings table, including the unique index on
// stripe_session_id.
type memoryBookings struct {
	mu       sync.Mutex
	nextID   int64
	bySessID map[string]*models.Booking
	order    []*models.Booking
	createFn func(input repository.CreateBookingInput) error
	countErr error
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{bySessID: make(map[string]*models.Booking)}
}

func (m *memoryBookings) Create(_ context.Context, input repository.CreateBookingInput) (*models.Booking, error) {
	if m.createFn != nil {
		if err := m.createFn(input); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bySessID[input.StripeSessionID]; exists {
		return nil, repository.ErrDuplicateBooking
	}
	m.nextID++
	b := &models.Booking{
		ID:                m.nextID,
		StripeSessionID:   input.StripeSessionID,
		RetreatName:       input.RetreatName,
		AccommodationType: input.AccommodationType,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Gender:            input.Gender,
		Age:               input.Age,
		BeenHiking:        input.BeenHiking,
		HikingExperience:  input.HikingExperience,
		Participants:      input.Participants,
		AmountPaid:        input.AmountPaid,
		Currency:          input.Currency,
		FullPrice:         input.FullPrice,
		RemainingBalance:  input.RemainingBalance,
		PaymentStatus:     input.PaymentStatus,
		CreatedAt:         time.Now(),
	}
	m.bySessID[input.StripeSessionID] = b
	m.order = append(m.order, b)
	return b, nil
}

func (m *memoryBookings) CountCompletedParticipants(ctx context.Context, names []string) (int, error) {
	summary, err := m.SummarizeCompleted(ctx, names)
	return summary.Participants, err
}

func (m *memoryBookings) SummarizeCompleted(_ context.Context, names []string) (repository.BookingSummary, error) {
	if m.countErr != nil {
		return repository.BookingSummary{}, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	var summary repository.BookingSummary
	for _, b := range m.order {
		if _, ok := wanted[b.RetreatName]; !ok || b.PaymentStatus != models.PaymentStatusCompleted {
			continue
		}
		summary.Participants += b.Participants
		summary.Bookings++
		summary.Revenue += b.AmountPaid
	}
	return summary, nil
}

func (m *memoryBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

type stubCapacities struct {
	values  map[string]int
	getErr  error
	upserts map[string]int
}

func (s *stubCapacities) GetMaxCapacity(_ context.Context, name string) (int, error) {
	if s.getErr != nil {
		return 0, s.getErr
	}
	v, ok := s.values[name]
	if !ok {
		return 0, repository.ErrCapacityNotFound
	}
	return v, nil
}

func (s *stubCapacities) UpsertMaxCapacity(_ context.Context, name string, maxCapacity int) error {
	if s.upserts == nil {
		s.upserts = make(map[string]int)
	}
	s.upserts[name] = maxCapacity
	return nil
}

type stubProvider struct {
	mu          sync.Mutex
	createCalls int
	lastRequest models.CheckoutRequest
	createErr   error
	snapshot    *models.CheckoutSnapshot
	getErr      error
}

func (p *stubProvider) CreateCheckoutSession(_ context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createCalls++
	p.lastRequest = req
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &models.CheckoutSession{URL: "https://checkout.example.com/cs_test", SessionID: "cs_test"}, nil
}

func (p *stubProvider) GetCheckoutSession(_ context.Context, _ string) (*models.CheckoutSnapshot, error) {
	return p.snapshot, p.getErr
}

func (p *stubProvider) ParseWebhook(_ []byte, _ string) (*models.WebhookEvent, error) {
	return nil, errors.New("not implemented")
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []*models.Booking
	done  chan struct{}
}

func (n *recordingNotifier) Notify(_ context.Context, booking *models.Booking) models.NotificationResult {
	n.mu.Lock()
	n.calls = append(n.calls, booking)
	n.mu.Unlock()
	if n.done != nil {
		n.done <- struct{}{}
	}
	return models.NotificationResult{ConfirmationSent: true, AdminAlertSent: true}
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func retreatACatalog() *catalog.Catalog {
	cat, err := catalog.New([]catalog.Retreat{
		{Name: "Retreat A", Currency: "gbp", FullPrice: 125000, DepositPrice: 37500},
		{
			Name:                  "Chamonix",
			Aliases:               []string{"Chamonix Retreat"},
			Currency:              "gbp",
			FullPrice:             125000,
			DepositPrice:          25000,
			MaxCapacity:           12,
			RequiresAccommodation: true,
			Accommodations: []catalog.Accommodation{
				{Name: "Double", FullPrice: 175000, DepositPrice: 25000},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return cat
}

func paidSnapshot(sessionID string) *models.CheckoutSnapshot {
	return &models.CheckoutSnapshot{
		ID:            sessionID,
		PaymentStatus: models.CheckoutPaymentStatusPaid,
		CustomerEmail: "jane@example.com",
		AmountTotal:   37500,
		Currency:      "GBP",
		Metadata: map[string]string{
			models.MetaRetreat:           "Retreat A",
			models.MetaAccommodationType: "",
			models.MetaEmail:             "jane@example.com",
			models.MetaFirstName:         "Jane",
			models.MetaLastName:          "Doe",
			models.MetaGender:            "female",
			models.MetaAge:               "34",
			models.MetaBeenHiking:        "yes",
			models.MetaHikingExperience:  "intermediate",
			models.MetaFullPrice:         "125000",
			models.MetaDepositAmount:     "37500",
			models.MetaRemainingBalance:  "87500",
		},
	}
}

func validCheckoutInput() CheckoutInput {
	return CheckoutInput{
		Retreat:          "Retreat A",
		Email:            "jane@example.com",
		FirstName:        "Jane",
		LastName:         "Doe",
		Gender:           "female",
		Age:              "34",
		BeenHiking:       "yes",
		HikingExperience: "intermediate",
	}
}
