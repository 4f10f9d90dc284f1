package ports

import (
	"context"

	"github.com/loccar/loccar-web/internal/core/domain"
)

// CatalogBackend is the vehicle, customer, reservation and statistics part of
// the rental REST API.
type CatalogBackend interface {
	AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)
	Vehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	SetVehicleReserved(ctx context.Context, id int64, reserved bool) error
	UpdateVehicle(ctx context.Context, v domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error

	Customer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, in domain.CustomerUpdate) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	ReservationSummary(ctx context.Context) (*domain.ReservationSummary, error)
	Reservation(ctx context.Context, number int64) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, number int64) error

	VehicleCount(ctx context.Context) (int64, error)
	AvailableVehicleCount(ctx context.Context) (int64, error)
	ActiveReservationCount(ctx context.Context) (int64, error)
	MonthlyRevenue(ctx context.Context, year, month int) (float64, error)
}
