package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/meadows123/WildAdventureCoach-sub000/internal/catalog"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/models"
	"github.com/meadows123/WildAdventureCoach-sub000/internal/repository"
	"github.com/sirupsen/logrus"
)

type capacityStore interface {
	GetMaxCapacity(ctx context.Context, retreatName string) (int, error)
	UpsertMaxCapacity(ctx context.Context, retreatName string, maxCapacity int) error
}

type bookingCounter interface {
	CountCompletedParticipants(ctx context.Context, retreatNames []string) (int, error)
	SummarizeCompleted(ctx context.Context, retreatNames []string) (repository.BookingSummary, error)
}

type CapacityService struct {
	catalog         *catalog.Catalog
	capacities      capacityStore
	bookings        bookingCounter
	defaultCapacity int
}

func NewCapacityService(cat *catalog.Catalog, capacities capacityStore, bookings bookingCounter, defaultCapacity int) *CapacityService {
	return &CapacityService{
		catalog:         cat,
		capacities:      capacities,
		bookings:        bookings,
		defaultCapacity: defaultCapacity,
	}
}

// AvailableSpots returns max capacity minus completed participants. The
// result is negative when a race overbooked the retreat; callers treat
// anything below 1 as sold out.
func (s *CapacityService) AvailableSpots(ctx context.Context, retreat string) (int, error) {
	maxCapacity, err := s.maxCapacity(ctx, retreat)
	if err != nil {
		return 0, err
	}

	booked, err := s.bookings.CountCompletedParticipants(ctx, s.catalog.BookingNames(retreat))
	if err != nil {
		return 0, fmt.Errorf("count bookings for %q: %w", retreat, err)
	}
	return maxCapacity - booked, nil
}

func (s *CapacityService) Stats(ctx context.Context, retreat string) (*models.RetreatStats, error) {
	maxCapacity, err := s.maxCapacity(ctx, retreat)
	if err != nil {
		return nil, err
	}

	summary, err := s.bookings.SummarizeCompleted(ctx, s.catalog.BookingNames(retreat))
	if err != nil {
		return nil, fmt.Errorf("summarize bookings for %q: %w", retreat, err)
	}

	return &models.RetreatStats{
		MaxCapacity:     maxCapacity,
		CurrentBookings: summary.Participants,
		AvailableSpots:  maxCapacity - summary.Participants,
		TotalBookings:   summary.Bookings,
		TotalRevenue:    summary.Revenue,
		SoldOut:         summary.Participants >= maxCapacity,
	}, nil
}

// SyncFromCatalog writes every catalog-declared capacity to storage.
func (s *CapacityService) SyncFromCatalog(ctx context.Context) error {
	for _, r := range s.catalog.Retreats() {
		if r.MaxCapacity < 1 {
			continue
		}
		if err := s.capacities.UpsertMaxCapacity(ctx, r.Name, r.MaxCapacity); err != nil {
			return fmt.Errorf("sync capacity for %q: %w", r.Name, err)
		}
		logrus.WithFields(logrus.Fields{
			"retreat":      r.Name,
			"max_capacity": r.MaxCapacity,
		}).Debug("retreat capacity synced")
	}
	return nil
}

func (s *CapacityService) maxCapacity(ctx context.Context, retreat string) (int, error) {
	name := s.catalog.Canonical(retreat)

	maxCapacity, err := s.capacities.GetMaxCapacity(ctx, name)
	if err == nil {
		return maxCapacity, nil
	}
	if !errors.Is(err, repository.ErrCapacityNotFound) {
		return 0, fmt.Errorf("read capacity for %q: %w", name, err)
	}

	fallback := s.defaultCapacity
	if r, ok := s.catalog.Retreat(name); ok && r.MaxCapacity > 0 {
		fallback = r.MaxCapacity
	}
	logrus.WithFields(logrus.Fields{
		"retreat":      name,
		"max_capacity": fallback,
	}).Warn("retreat capacity not configured, using fallback")
	return fallback, nil
}
