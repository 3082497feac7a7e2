package services

import (
	"fmt"
	"sort"
	"time"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"

	"gorm.io/gorm"
)

// DashboardService folds active bookings into the front-desk overview.
// Every number comes from the same resolver the detail screens use.
type DashboardService struct {
	DB       *gorm.DB
	Resolver *engine.Resolver
}

func NewDashboardService(db *gorm.DB, resolver *engine.Resolver) *DashboardService {
	return &DashboardService{DB: db, Resolver: resolver}
}

// Overview is the dashboard payload: aggregate counters plus the resolved
// per-booking views sorted most-urgent first.
type Overview struct {
	Summary  engine.Summary       `json:"summary"`
	Bookings []engine.BookingView `json:"bookings"`
}

func (s *DashboardService) activeBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Room.RoomType").
		Preload("Charges").
		Preload("Payments").
		Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusCheckedOut}).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load active bookings: %w", err)
	}
	return bookings, nil
}

// GetOverview derives the dashboard at the supplied instant. Callers
// re-invoke it on a timer; each call is a complete recomputation.
func (s *DashboardService) GetOverview(now time.Time) (Overview, error) {
	bookings, err := s.activeBookings()
	if err != nil {
		return Overview{}, err
	}

	views := make([]engine.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.Resolver.Resolve(b, b.Charges, b.Payments, now))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].SortPriority > views[j].SortPriority
	})

	return Overview{
		Summary:  s.Resolver.Summarize(bookings, now),
		Bookings: views,
	}, nil
}
