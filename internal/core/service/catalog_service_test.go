package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/ports"
)

// stubCatalog implements ports.CatalogBackend; unset calls panic through the
// nil embedded interface.
type stubCatalog struct {
	ports.CatalogBackend

	mu       sync.Mutex
	months   [][2]int
	created  *domain.ReservationRequest
	vehicle  *domain.Vehicle
	updated  *domain.Vehicle
	booking  *domain.Reservation
	countErr error
}

func (s *stubCatalog) UpdateVehicle(_ context.Context, v domain.Vehicle) (*domain.Vehicle, error) {
	s.updated = &v
	return &v, nil
}

func (s *stubCatalog) Reservation(_ context.Context, number int64) (*domain.Reservation, error) {
	if s.booking == nil || s.booking.Number != number {
		return nil, nil
	}
	return s.booking, nil
}

func (s *stubCatalog) VehicleCount(context.Context) (int64, error) {
	return 12, nil
}

func (s *stubCatalog) AvailableVehicleCount(context.Context) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return 7, nil
}

func (s *stubCatalog) ActiveReservationCount(context.Context) (int64, error) {
	return 5, nil
}

func (s *stubCatalog) MonthlyRevenue(_ context.Context, year, month int) (float64, error) {
	s.mu.Lock()
	s.months = append(s.months, [2]int{year, month})
	s.mu.Unlock()
	if month == 1 {
		return 0, domain.NewStatusError(http.StatusInternalServerError, "", nil)
	}
	return float64(month) * 100, nil
}

func (s *stubCatalog) Vehicle(context.Context, int64) (*domain.Vehicle, error) {
	return s.vehicle, nil
}

func (s *stubCatalog) CreateReservation(_ context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	s.created = &req
	return &domain.Reservation{Number: 99, VehicleID: req.VehicleID, RentalDays: req.RentalDays, DailyRate: req.DailyRate}, nil
}

type stubEvents struct {
	err error
}

func (s *stubEvents) InsertEvent(context.Context, *ports.AuthEvent) error { return nil }

func (s *stubEvents) Recent(_ context.Context, limit int) ([]*ports.AuthEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*ports.AuthEvent{{Type: ports.EventLogout}}, nil
}

func fixedNow() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

func TestDashboard_CountersAndRevenue(t *testing.T) {
	backend := &stubCatalog{}
	svc := NewCatalogService(backend, &stubEvents{}, zerolog.Nop())
	svc.now = fixedNow

	d, err := svc.Dashboard(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Stats.TotalVehicles != 12 || d.Stats.AvailableVehicles != 7 || d.Stats.ActiveReservations != 5 {
		t.Fatalf("unexpected stats: %+v", d.Stats)
	}

	want := []MonthlyRevenue{
		{Year: 2026, Month: 1, Revenue: 0},
		{Year: 2026, Month: 2, Revenue: 200},
		{Year: 2026, Month: 3, Revenue: 300},
	}
	if len(d.Revenue) != len(want) {
		t.Fatalf("unexpected revenue: %+v", d.Revenue)
	}
	for i := range want {
		if d.Revenue[i] != want[i] {
			t.Fatalf("revenue[%d] = %+v, want %+v", i, d.Revenue[i], want[i])
		}
	}
	if len(d.Activity) != 1 {
		t.Fatalf("expected activity feed, got %d entries", len(d.Activity))
	}
}

func TestDashboard_RevenueWindowFromMonthEnd(t *testing.T) {
	backend := &stubCatalog{}
	svc := NewCatalogService(backend, nil, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 10, 31, 23, 30, 0, 0, time.UTC) }

	d, err := svc.Dashboard(context.Background(), 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, want := range []int{5, 6, 7, 8, 9, 10} {
		got := d.Revenue[i]
		if got.Year != 2026 || got.Month != want {
			t.Fatalf("revenue[%d] = %d/%d, want 2026/%d", i, got.Year, got.Month, want)
		}
	}
}

func TestDashboard_RevenueWindowCrossesYear(t *testing.T) {
	svc := NewCatalogService(&stubCatalog{}, nil, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC) }

	d, err := svc.Dashboard(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][2]int{{2025, 12}, {2026, 1}, {2026, 2}}
	for i, w := range want {
		if d.Revenue[i].Year != w[0] || d.Revenue[i].Month != w[1] {
			t.Fatalf("revenue[%d] = %d/%d, want %d/%d", i, d.Revenue[i].Year, d.Revenue[i].Month, w[0], w[1])
		}
	}
}

func TestDashboard_FailingCounterShowsZero(t *testing.T) {
	backend := &stubCatalog{countErr: errors.New("timeout")}
	svc := NewCatalogService(backend, &stubEvents{err: errors.New("mongo down")}, zerolog.Nop())
	svc.now = fixedNow

	d, err := svc.Dashboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("dashboard must not fail on a counter error: %v", err)
	}
	if d.Stats.AvailableVehicles != 0 || d.Stats.TotalVehicles != 12 {
		t.Fatalf("unexpected stats: %+v", d.Stats)
	}
	if len(d.Revenue) != 6 {
		t.Fatalf("expected 6 months by default, got %d", len(d.Revenue))
	}
	if d.Activity != nil {
		t.Fatal("failed activity lookup should leave the feed empty")
	}
}

func TestDashboard_NoEventStore(t *testing.T) {
	svc := NewCatalogService(&stubCatalog{}, nil, zerolog.Nop())
	svc.now = fixedNow

	d, err := svc.Dashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Activity != nil {
		t.Fatal("expected no activity without an event store")
	}
}

func TestBook_DerivesDaysAndRate(t *testing.T) {
	backend := &stubCatalog{vehicle: &domain.Vehicle{ID: 4, DailyRate: 150}}
	svc := NewCatalogService(backend, nil, zerolog.Nop())

	res, err := svc.Book(context.Background(), domain.ReservationRequest{
		VehicleID:  4,
		RentalDate: "2026-04-10",
		ReturnDate: "2026-04-13",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Number != 99 {
		t.Fatalf("unexpected reservation: %+v", res)
	}
	if backend.created.RentalDays != 3 || backend.created.DailyRate != 150 || backend.created.RateType != "DAILY" {
		t.Fatalf("unexpected request: %+v", backend.created)
	}
}

func TestBook_InvalidDates(t *testing.T) {
	svc := NewCatalogService(&stubCatalog{}, nil, zerolog.Nop())

	_, err := svc.Book(context.Background(), domain.ReservationRequest{
		VehicleID:  4,
		RentalDate: "2026-04-13",
		ReturnDate: "2026-04-10",
	})
	if !errors.Is(err, domain.ErrInvalidReservation) {
		t.Fatalf("expected ErrInvalidReservation, got %v", err)
	}
}

func TestBook_UnknownVehicle(t *testing.T) {
	svc := NewCatalogService(&stubCatalog{}, nil, zerolog.Nop())

	_, err := svc.Book(context.Background(), domain.ReservationRequest{
		VehicleID:  404,
		RentalDate: "2026-04-10",
		ReturnDate: "2026-04-11",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateVehicle_UsesPathID(t *testing.T) {
	backend := &stubCatalog{}
	svc := NewCatalogService(backend, nil, zerolog.Nop())

	v, err := svc.UpdateVehicle(context.Background(), 6, domain.Vehicle{ID: 99, Model: "Argo", DailyRate: 110})
	if err != nil {
		t.Fatalf("UpdateVehicle: %v", err)
	}
	if backend.updated == nil || backend.updated.ID != 6 || v.ID != 6 {
		t.Fatalf("expected id 6 to be sent, got %+v", backend.updated)
	}
}

func TestReservation_MissingIsNotFound(t *testing.T) {
	backend := &stubCatalog{booking: &domain.Reservation{Number: 41, Status: domain.ReservationActive}}
	svc := NewCatalogService(backend, nil, zerolog.Nop())

	r, err := svc.Reservation(context.Background(), 41)
	if err != nil || r.Number != 41 {
		t.Fatalf("unexpected reservation %+v, %v", r, err)
	}

	_, err = svc.Reservation(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
