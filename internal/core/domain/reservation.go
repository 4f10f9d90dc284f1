package domain

import (
	"math"
	"time"
)

// ReservationStatus is the lifecycle state reported by the backend.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// ReservationRequest is the booking submitted from the vehicle catalog.
type ReservationRequest struct {
	VehicleID  int64   `json:"idVehicle"`
	RentalDate string  `json:"rentalDate"`
	ReturnDate string  `json:"returnDate"`
	RentalDays int     `json:"rentalDays"`
	DailyRate  float64 `json:"dailyRate"`
	RateType   string  `json:"rateType"`
}

// Reservation is a booking as returned by the backend.
type Reservation struct {
	Number     int64             `json:"reservationnumber"`
	VehicleID  int64             `json:"idVehicle"`
	Brand      string            `json:"vehicleBrand,omitempty"`
	Model      string            `json:"vehicleModel,omitempty"`
	RentalDate string            `json:"rentalDate"`
	ReturnDate string            `json:"returnDate"`
	RentalDays int               `json:"rentalDays"`
	DailyRate  float64           `json:"dailyRate"`
	RateType   string            `json:"rateType,omitempty"`
	Status     ReservationStatus `json:"status,omitempty"`
	TotalCost  float64           `json:"totalCost,omitempty"`
	ImgURL     string            `json:"imgUrl,omitempty"`
}

// ReservationSummary groups the current user's reservations by status.
type ReservationSummary struct {
	ActiveCount    int           `json:"activeCount"`
	CompletedCount int           `json:"completedCount"`
	CancelledCount int           `json:"cancelledCount"`
	Active         []Reservation `json:"activeReservations"`
	Completed      []Reservation `json:"completedReservations"`
	Cancelled      []Reservation `json:"cancelledReservations"`
}

const dateLayout = "2006-01-02"

// RentalDays returns the number of whole days between the two dates, rounded
// up. The return date must be strictly after the rental date.
func RentalDays(rentalDate, returnDate string) (int, error) {
	from, err := time.Parse(dateLayout, rentalDate)
	if err != nil {
		return 0, ErrInvalidReservation
	}
	to, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		return 0, ErrInvalidReservation
	}
	if !to.After(from) {
		return 0, ErrInvalidReservation
	}
	return int(math.Ceil(to.Sub(from).Hours() / 24)), nil
}
