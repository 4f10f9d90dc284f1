package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/ports"
)

const defaultRateType = "DAILY"

// MonthlyRevenue is the revenue of one calendar month.
type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Dashboard is the admin dashboard view model.
type Dashboard struct {
	Stats    domain.DashboardStats `json:"stats"`
	Revenue  []MonthlyRevenue      `json:"revenue"`
	Activity []*ports.AuthEvent    `json:"activity,omitempty"`
}

// CatalogService backs the vehicle, reservation and dashboard pages.
type CatalogService struct {
	backend ports.CatalogBackend
	events  ports.AuthEventRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewCatalogService returns a CatalogService. events may be nil, in which
// case the dashboard has no activity feed.
func NewCatalogService(backend ports.CatalogBackend, events ports.AuthEventRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{backend: backend, events: events, log: log, now: time.Now}
}

// Dashboard fetches every counter in parallel. A failing counter shows as
// zero rather than failing the page.
func (s *CatalogService) Dashboard(ctx context.Context, months int) (*Dashboard, error) {
	var (
		d   Dashboard
		now = s.now()
	)
	if months <= 0 {
		months = 6
	}
	d.Revenue = make([]MonthlyRevenue, months)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Stats.TotalVehicles = s.countOrZero(gctx, "vehicles", s.backend.VehicleCount)
		return nil
	})
	g.Go(func() error {
		d.Stats.AvailableVehicles = s.countOrZero(gctx, "available_vehicles", s.backend.AvailableVehicleCount)
		return nil
	})
	g.Go(func() error {
		d.Stats.ActiveReservations = s.countOrZero(gctx, "active_reservations", s.backend.ActiveReservationCount)
		return nil
	})
	// Step from the first of the month so the 29th-31st never skip a month.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < months; i++ {
		month := first.AddDate(0, -(months - 1 - i), 0)
		g.Go(func() error {
			rev, err := s.backend.MonthlyRevenue(gctx, month.Year(), int(month.Month()))
			if err != nil {
				s.log.Warn().Err(err).Int("year", month.Year()).Int("month", int(month.Month())).Msg("revenue lookup failed")
				rev = 0
			}
			d.Revenue[i] = MonthlyRevenue{Year: month.Year(), Month: int(month.Month()), Revenue: rev}
			return nil
		})
	}
	if s.events != nil {
		g.Go(func() error {
			activity, err := s.events.Recent(gctx, 10)
			if err != nil {
				s.log.Warn().Err(err).Msg("activity lookup failed")
				return nil
			}
			d.Activity = activity
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *CatalogService) countOrZero(ctx context.Context, name string, fn func(context.Context) (int64, error)) int64 {
	n, err := fn(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("counter", name).Msg("statistics lookup failed")
		return 0
	}
	return n
}

// AvailableVehicles lists the vehicles open for booking.
func (s *CatalogService) AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.backend.AvailableVehicles(ctx)
}

// Vehicle returns one vehicle.
func (s *CatalogService) Vehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.backend.Vehicle(ctx, id)
}

// SetVehicleReserved activates or deactivates a vehicle.
func (s *CatalogService) SetVehicleReserved(ctx context.Context, id int64, reserved bool) error {
	return s.backend.SetVehicleReserved(ctx, id, reserved)
}

// UpdateVehicle saves the edited attributes of vehicle id.
func (s *CatalogService) UpdateVehicle(ctx context.Context, id int64, v domain.Vehicle) (*domain.Vehicle, error) {
	v.ID = id
	return s.backend.UpdateVehicle(ctx, v)
}

// DeleteVehicle removes a vehicle.
func (s *CatalogService) DeleteVehicle(ctx context.Context, id int64) error {
	return s.backend.DeleteVehicle(ctx, id)
}

// Customer returns one customer.
func (s *CatalogService) Customer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.backend.Customer(ctx, id)
}

// UpdateCustomer saves the edited fields of customer id.
func (s *CatalogService) UpdateCustomer(ctx context.Context, id int64, in domain.CustomerUpdate) (*domain.Customer, error) {
	return s.backend.UpdateCustomer(ctx, id, in)
}

// DeleteCustomer removes a customer.
func (s *CatalogService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.backend.DeleteCustomer(ctx, id)
}

// MyReservations returns the current user's reservations grouped by status.
func (s *CatalogService) MyReservations(ctx context.Context) (*domain.ReservationSummary, error) {
	return s.backend.ReservationSummary(ctx)
}

// Reservation returns one of the current user's reservations.
func (s *CatalogService) Reservation(ctx context.Context, number int64) (*domain.Reservation, error) {
	r, err := s.backend.Reservation(ctx, number)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewStatusError(http.StatusNotFound, "reservation not found", nil)
	}
	return r, nil
}

// Book creates a reservation. Rental days are derived from the dates and the
// daily rate defaults to the vehicle's.
func (s *CatalogService) Book(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	days, err := domain.RentalDays(req.RentalDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}
	req.RentalDays = days
	if req.RateType == "" {
		req.RateType = defaultRateType
	}
	if req.DailyRate <= 0 {
		v, err := s.backend.Vehicle(ctx, req.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("book: vehicle lookup: %w", err)
		}
		if v == nil {
			return nil, domain.NewStatusError(http.StatusNotFound, "vehicle not found", nil)
		}
		req.DailyRate = v.DailyRate
	}
	return s.backend.CreateReservation(ctx, req)
}

// Cancel cancels one of the current user's reservations.
func (s *CatalogService) Cancel(ctx context.Context, number int64) error {
	return s.backend.CancelReservation(ctx, number)
}
