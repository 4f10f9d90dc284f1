package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/service"
)

const dashboardMonths = 6

// CatalogService is what the guarded pages need from the service layer.
type CatalogService interface {
	Dashboard(ctx context.Context, months int) (*service.Dashboard, error)
	AvailableVehicles(ctx context.Context) ([]domain.Vehicle, error)
	Vehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	SetVehicleReserved(ctx context.Context, id int64, reserved bool) error
	UpdateVehicle(ctx context.Context, id int64, v domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
	Customer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, in domain.CustomerUpdate) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	MyReservations(ctx context.Context) (*domain.ReservationSummary, error)
	Reservation(ctx context.Context, number int64) (*domain.Reservation, error)
	Book(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error)
	Cancel(ctx context.Context, number int64) error
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type vehicleListResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
	Count    int              `json:"count"`
}

type bookingRequest struct {
	VehicleID  int64   `json:"idVehicle"  validate:"required,gt=0"`
	RentalDate string  `json:"rentalDate" validate:"required,datetime=2006-01-02"`
	ReturnDate string  `json:"returnDate" validate:"required,datetime=2006-01-02"`
	DailyRate  float64 `json:"dailyRate,omitempty"`
	RateType   string  `json:"rateType,omitempty" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
}

type vehicleUpdateRequest struct {
	Brand             string  `json:"brand"             validate:"required"`
	Model             string  `json:"model"             validate:"required"`
	ManufacturingYear int     `json:"manufacturingYear" validate:"required,gte=1950,lte=2100"`
	ModelYear         int     `json:"modelYear"         validate:"required,gtefield=ManufacturingYear"`
	Type              int     `json:"type"              validate:"gte=0,lte=3"`
	DailyRate         float64 `json:"dailyRate"         validate:"required,gt=0"`
	Reserved          bool    `json:"reserved"`
	ImgURL            string  `json:"imgUrl,omitempty"  validate:"omitempty,url"`
}

type customerUpdateRequest struct {
	Username      string `json:"username"      validate:"required,min=2"`
	Email         string `json:"email"         validate:"required,email"`
	CellPhone     string `json:"cellphone"     validate:"required,numeric,min=10,max=11"`
	DriverLicense string `json:"driverLicense" validate:"required,min=11"`
}

// Dashboard returns the admin dashboard.
//
// @Summary      Admin dashboard
// @Tags         staff
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      302
// @Router       /dashboard [get]
func (h *CatalogHandler) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context(), dashboardMonths)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Users describes the user management page.
//
// @Summary      User management page
// @Tags         staff
// @Produce      json
// @Success      200  {object}  page
// @Router       /usuarios [get]
func (h *CatalogHandler) Users(c echo.Context) error {
	return c.JSON(http.StatusOK, page{Page: "users"})
}

// Customer returns one customer.
//
// @Summary      Customer detail
// @Tags         staff
// @Produce      json
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  map[string]string
// @Router       /usuarios/{id} [get]
func (h *CatalogHandler) Customer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cu, err := h.svc.Customer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if cu == nil {
		return domain.ErrNotFound
	}
	return c.JSON(http.StatusOK, cu)
}

// UpdateCustomer edits a customer.
//
// @Summary      Update customer
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Customer id"
// @Param        body  body      customerUpdateRequest  true  "Customer fields"
// @Success      200   {object}  domain.Customer
// @Failure      400   {object}  map[string]string
// @Router       /usuarios/{id} [put]
func (h *CatalogHandler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req customerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cu, err := h.svc.UpdateCustomer(c.Request().Context(), id, domain.CustomerUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cu)
}

// DeleteCustomer removes a customer.
//
// @Summary      Delete customer
// @Tags         staff
// @Param        id   path  int  true  "Customer id"
// @Success      204
// @Router       /usuarios/{id} [delete]
func (h *CatalogHandler) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Vehicles lists the fleet for staff.
//
// @Summary      Vehicle management list
// @Tags         staff
// @Produce      json
// @Success      200  {object}  vehicleListResponse
// @Router       /veiculos [get]
func (h *CatalogHandler) Vehicles(c echo.Context) error {
	return h.listVehicles(c)
}

// Vehicle returns one vehicle.
//
// @Summary      Vehicle detail
// @Tags         staff
// @Produce      json
// @Param        id   path      int  true  "Vehicle id"
// @Success      200  {object}  domain.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /veiculos/{id} [get]
func (h *CatalogHandler) Vehicle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.svc.Vehicle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	return c.JSON(http.StatusOK, v)
}

// UpdateVehicle edits a vehicle.
//
// @Summary      Update vehicle
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Vehicle id"
// @Param        body  body      vehicleUpdateRequest  true  "Vehicle fields"
// @Success      200   {object}  domain.Vehicle
// @Failure      400   {object}  map[string]string
// @Router       /veiculos/{id} [put]
func (h *CatalogHandler) UpdateVehicle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req vehicleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	v, err := h.svc.UpdateVehicle(c.Request().Context(), id, domain.Vehicle{
		Brand:             req.Brand,
		Model:             req.Model,
		ManufacturingYear: req.ManufacturingYear,
		ModelYear:         req.ModelYear,
		Type:              domain.VehicleType(req.Type),
		DailyRate:         req.DailyRate,
		Reserved:          req.Reserved,
		ImgURL:            req.ImgURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SetVehicleReserved toggles a vehicle's availability.
//
// @Summary      Toggle vehicle reservation flag
// @Tags         staff
// @Param        id        path   int   true  "Vehicle id"
// @Param        reserved  query  bool  true  "New flag"
// @Success      204
// @Router       /veiculos/{id}/reserva [put]
func (h *CatalogHandler) SetVehicleReserved(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reserved, err := strconv.ParseBool(c.QueryParam("reserved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reserved must be true or false")
	}
	if err := h.svc.SetVehicleReserved(c.Request().Context(), id, reserved); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteVehicle removes a vehicle.
//
// @Summary      Delete vehicle
// @Tags         staff
// @Param        id   path  int  true  "Vehicle id"
// @Success      204
// @Router       /veiculos/{id} [delete]
func (h *CatalogHandler) DeleteVehicle(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVehicle(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Catalog lists the vehicles a client can book.
//
// @Summary      Available vehicles
// @Tags         client
// @Produce      json
// @Success      200  {object}  vehicleListResponse
// @Router       /veiculos-disponiveis [get]
func (h *CatalogHandler) Catalog(c echo.Context) error {
	return h.listVehicles(c)
}

// Book reserves a vehicle for the current user.
//
// @Summary      Book a vehicle
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        body  body      bookingRequest  true  "Booking"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /veiculos-disponiveis/reservas [post]
func (h *CatalogHandler) Book(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.svc.Book(c.Request().Context(), domain.ReservationRequest{
		VehicleID:  req.VehicleID,
		RentalDate: req.RentalDate,
		ReturnDate: req.ReturnDate,
		DailyRate:  req.DailyRate,
		RateType:   req.RateType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// Reservations returns the current user's reservations.
//
// @Summary      My reservations
// @Tags         client
// @Produce      json
// @Success      200  {object}  domain.ReservationSummary
// @Router       /minhas-reservas [get]
func (h *CatalogHandler) Reservations(c echo.Context) error {
	s, err := h.svc.MyReservations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// Reservation returns one of the current user's reservations.
//
// @Summary      Reservation detail
// @Tags         client
// @Produce      json
// @Param        number  path      int  true  "Reservation number"
// @Success      200     {object}  domain.Reservation
// @Failure      404     {object}  map[string]string
// @Router       /minhas-reservas/{number} [get]
func (h *CatalogHandler) Reservation(c echo.Context) error {
	number, err := pathID(c, "number")
	if err != nil {
		return err
	}
	r, err := h.svc.Reservation(c.Request().Context(), number)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// CancelReservation cancels one of the current user's reservations.
//
// @Summary      Cancel reservation
// @Tags         client
// @Param        number  path  int  true  "Reservation number"
// @Success      204
// @Router       /minhas-reservas/{number} [delete]
func (h *CatalogHandler) CancelReservation(c echo.Context) error {
	number, err := pathID(c, "number")
	if err != nil {
		return err
	}
	if err := h.svc.Cancel(c.Request().Context(), number); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) listVehicles(c echo.Context) error {
	vs, err := h.svc.AvailableVehicles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicleListResponse{Vehicles: vs, Count: len(vs)})
}
