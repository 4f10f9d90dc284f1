package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/loccar/loccar-web/internal/core/domain"
)

// AvailableVehicles lists vehicles open for booking.
func (c *Client) AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	vs, err := getData[[]domain.Vehicle](ctx, c, "/vehicle/list/available")
	if err != nil {
		return nil, err
	}
	if vs == nil {
		vs = []domain.Vehicle{}
	}
	return vs, nil
}

// Vehicle returns one vehicle.
func (c *Client) Vehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return getData[*domain.Vehicle](ctx, c, "/vehicle/"+strconv.FormatInt(id, 10))
}

// SetVehicleReserved marks a vehicle reserved (inactive) or available.
func (c *Client) SetVehicleReserved(ctx context.Context, id int64, reserved bool) error {
	path := fmt.Sprintf("/vehicle/reserve/%d?reserved=%t", id, reserved)
	return c.do(ctx, http.MethodPut, path, struct{}{}, nil)
}

// UpdateVehicle replaces a vehicle's attributes. The id travels in the body.
// When the backend echoes the record it wins over v.
func (c *Client) UpdateVehicle(ctx context.Context, v domain.Vehicle) (*domain.Vehicle, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPut, "/vehicle/update", v, &env); err != nil {
		return nil, err
	}
	out := v
	if err := decodeRecord(env.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVehicle removes a vehicle.
func (c *Client) DeleteVehicle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/vehicle/delete/"+strconv.FormatInt(id, 10), nil, nil)
}

// Customer returns one customer.
func (c *Client) Customer(ctx context.Context, id int64) (*domain.Customer, error) {
	return getData[*domain.Customer](ctx, c, "/user/"+strconv.FormatInt(id, 10))
}

type customerUpdateRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellphone"`
	DriverLicense string `json:"driverLicense"`
}

// UpdateCustomer edits a customer's contact and licence data.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, in domain.CustomerUpdate) (*domain.Customer, error) {
	var env envelope
	path := "/user/update/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, customerUpdateRequest(in), &env); err != nil {
		return nil, err
	}
	out := domain.Customer{
		ID:            id,
		Username:      in.Username,
		Email:         in.Email,
		CellPhone:     in.CellPhone,
		DriverLicense: in.DriverLicense,
	}
	if err := decodeRecord(env.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/user/delete/"+strconv.FormatInt(id, 10), nil, nil)
}

// ReservationSummary returns the caller's reservations grouped by status.
func (c *Client) ReservationSummary(ctx context.Context) (*domain.ReservationSummary, error) {
	s, err := getData[*domain.ReservationSummary](ctx, c, "/reservation/summary")
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &domain.ReservationSummary{}
	}
	return s, nil
}

// Reservation returns one reservation by number.
// A null data field comes back as nil.
func (c *Client) Reservation(ctx context.Context, number int64) (*domain.Reservation, error) {
	r, err := getData[*domain.Reservation](ctx, c, "/reservation/"+strconv.FormatInt(number, 10))
	if err != nil || r == nil || r.Number == 0 {
		return nil, err
	}
	return r, nil
}

// CreateReservation books a vehicle.
func (c *Client) CreateReservation(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/reservation/register", req, &env); err != nil {
		return nil, err
	}
	r := &domain.Reservation{
		VehicleID:  req.VehicleID,
		RentalDate: req.RentalDate,
		ReturnDate: req.ReturnDate,
		RentalDays: req.RentalDays,
		DailyRate:  req.DailyRate,
		RateType:   req.RateType,
		Status:     domain.ReservationActive,
	}
	if err := decodeRecord(env.Data, r); err != nil {
		return nil, err
	}
	return r, nil
}

// decodeRecord overlays data onto out when the backend echoed an object.
// Scalar acknowledgements such as true are ignored.
func decodeRecord(data json.RawMessage, out any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.AuthError{Kind: domain.KindServer, Status: http.StatusOK, Message: domain.ErrServer.Message, Err: fmt.Errorf("decode record: %w", err)}
	}
	return nil
}

// CancelReservation cancels a reservation by number.
func (c *Client) CancelReservation(ctx context.Context, number int64) error {
	return c.do(ctx, http.MethodDelete, "/reservation/cancel/"+strconv.FormatInt(number, 10), nil, nil)
}

// VehicleCount is the number of registered vehicles.
func (c *Client) VehicleCount(ctx context.Context) (int64, error) {
	return getData[int64](ctx, c, "/statistics/vehicles/count")
}

// AvailableVehicleCount is the number of vehicles open for booking.
func (c *Client) AvailableVehicleCount(ctx context.Context) (int64, error) {
	return getData[int64](ctx, c, "/statistics/vehicles/available/count")
}

// ActiveReservationCount is the number of reservations in progress.
func (c *Client) ActiveReservationCount(ctx context.Context) (int64, error) {
	return getData[int64](ctx, c, "/statistics/reservations/active/count")
}

// MonthlyRevenue is the revenue billed in one month.
func (c *Client) MonthlyRevenue(ctx context.Context, year, month int) (float64, error) {
	return getData[float64](ctx, c, fmt.Sprintf("/statistics/revenue/monthly/%d/%d", year, month))
}
