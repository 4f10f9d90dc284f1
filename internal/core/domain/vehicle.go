package domain

// VehicleType mirrors the backend's numeric vehicle category.
type VehicleType int

const (
	VehicleCargo VehicleType = iota
	VehicleMotorcycle
	VehiclePassenger
	VehicleLeisure
)

// Vehicle is a rentable vehicle as listed by the backend.
type Vehicle struct {
	ID                int64       `json:"idVehicle"`
	Brand             string      `json:"brand"`
	Model             string      `json:"model"`
	ManufacturingYear int         `json:"manufacturingYear"`
	ModelYear         int         `json:"modelYear"`
	Type              VehicleType `json:"type"`
	DailyRate         float64     `json:"dailyRate"`
	Reserved          bool        `json:"reserved"`
	ImgURL            string      `json:"imgUrl,omitempty"`
}

// Customer is a user record as managed from the admin area.
type Customer struct {
	ID            int64  `json:"idCustomer"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellphone"`
	DriverLicense string `json:"driverLicense"`
	Created       string `json:"created,omitempty"`
}

// CustomerUpdate is the editable part of a customer record.
type CustomerUpdate struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellphone"`
	DriverLicense string `json:"driverLicense"`
}

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalVehicles      int64 `json:"totalVehicles"`
	ActiveReservations int64 `json:"activeReservations"`
	AvailableVehicles  int64 `json:"availableVehicles"`
}
