package model

import "time"

const (
	StatusPending = "pending"
	StatusAccept  = "accept"
	StatusReject  = "reject"

	PaymentCash = "cash"
	PaymentCard = "card"

	ShiftOverTime = "over_time"
	ShiftInTime   = "in_time"
	ShiftHalfTime = "half_time"

	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)

var (
	AppointmentStatuses = []string{StatusPending, StatusAccept, StatusReject}
	PaymentMethods      = []string{PaymentCash, PaymentCard}
	ShiftTypes          = []string{ShiftOverTime, ShiftInTime, ShiftHalfTime}
	UserTypes           = []string{UserTypeAdmin, UserTypeUser}
)

type Appointment struct {
	ID            string    `json:"id" bson:"_id"`
	CarNumber     string    `json:"carNumber" bson:"carNumber"`
	CarType       string    `json:"carType" bson:"carType"`
	VehicleType   string    `json:"vehicleType" bson:"vehicleType"`
	ServiceType   *string   `json:"serviceType" bson:"serviceType"`
	Date          Date      `json:"date" bson:"date"`
	Time          string    `json:"time" bson:"time"`
	PaymentMethod string    `json:"paymentMethod" bson:"paymentMethod"`
	Price         *float64  `json:"price" bson:"price"`
	Status        string    `json:"status" bson:"status"`
	SlotNumber    string    `json:"slotNumber" bson:"slotNumber"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Employee struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Address   string    `json:"address" bson:"address"`
	NICNumber string    `json:"nicNumber" bson:"nicNumber"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Attendance struct {
	ID            string    `json:"id" bson:"_id"`
	EmployeeID    string    `json:"employeeId" bson:"employeeId"`
	ArrivalTime   string    `json:"arrivalTime" bson:"arrivalTime"`
	DepartureTime string    `json:"departureTime" bson:"departureTime"`
	ShiftType     string    `json:"shiftType" bson:"shiftType"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FuelUser is a station account. PasswordHash never leaves the service;
// responses go through Public.
type FuelUser struct {
	ID           string    `json:"id" bson:"_id"`
	FirstName    string    `json:"firstName" bson:"firstName"`
	LastName     string    `json:"lastName" bson:"lastName"`
	Type         string    `json:"type" bson:"type"`
	Phone        string    `json:"phone" bson:"phone"`
	Email        string    `json:"email" bson:"email"`
	Address      string    `json:"address" bson:"address"`
	PasswordHash string    `json:"passwordHash,omitempty" bson:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

type PublicFuelUser struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Type      string    `json:"type"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u FuelUser) Public() PublicFuelUser {
	return PublicFuelUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Type:      u.Type,
		Phone:     u.Phone,
		Email:     u.Email,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Product struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Category        string    `json:"category" bson:"category"`
	Quantity        int       `json:"quantity" bson:"quantity"`
	PricePerUnit    float64   `json:"pricePerUnit" bson:"pricePerUnit"`
	LastRestockDate Date      `json:"lastRestockDate" bson:"lastRestockDate"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Sale struct {
	ID             string    `json:"id" bson:"_id"`
	ProductID      string    `json:"productId" bson:"productId"`
	Volume         int       `json:"volume" bson:"volume"`
	TotalSalePrice float64   `json:"totalSalePrice" bson:"totalSalePrice"`
	PaymentMethod  string    `json:"paymentMethod" bson:"paymentMethod"`
	Date           Date      `json:"date" bson:"date"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Salary records carry no timestamps.
type Salary struct {
	ID         string  `json:"id" bson:"_id"`
	EmployeeID string  `json:"employeeId,omitempty" bson:"employeeId,omitempty"`
	Name       string  `json:"name" bson:"name"`
	BasePay    float64 `json:"basePay" bson:"basePay"`
	Bonus      float64 `json:"bonus" bson:"bonus"`
	TotalPay   float64 `json:"totalPay" bson:"totalPay"`
	WorkDays   int     `json:"workDays" bson:"workDays"`
	Date       Date    `json:"date" bson:"date"`
	Phone      string  `json:"phone" bson:"phone"`
}

type ServiceType struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type UtilityExpense struct {
	ID          string    `json:"id" bson:"_id"`
	Type        string    `json:"type" bson:"type"`
	Amount      float64   `json:"amount" bson:"amount"`
	Date        Date      `json:"date" bson:"date"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
