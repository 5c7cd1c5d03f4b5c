// Package model содержит доменные сущности сервиса аренды жилья.
package model

import "time"

// ListingStatus описывает статус объявления об аренде.
type ListingStatus string

const (
	ListingStatusAvailable   ListingStatus = "available"
	ListingStatusOccupied    ListingStatus = "occupied"
	ListingStatusMaintenance ListingStatus = "maintenance"
)

// Listing описывает объявление о сдаче квартиры в аренду.
type Listing struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Price      float64       `json:"price"`
	ViewingFee float64       `json:"viewing_fee"`
	Address    string        `json:"address"`
	Sqft       int           `json:"sqft"`
	Bedrooms   int           `json:"bedrooms"`
	Bathrooms  int           `json:"bathrooms"`
	Images     []string      `json:"images"`
	Status     ListingStatus `json:"status"`
	Featured   bool          `json:"featured"`
	CreatedAt  time.Time     `json:"created_at"`
}

// SearchCriteria содержит критерии поиска объявлений.
// Нулевой указатель у числовой границы означает отсутствие ограничения.
type SearchCriteria struct {
	Term        string
	MinPrice    *float64
	MaxPrice    *float64
	MinSqft     *int
	MaxSqft     *int
	MinBedrooms *int
	NearMe      bool
}

// SortKey задаёт поле сортировки результатов поиска.
type SortKey string

const (
	SortByPrice  SortKey = "price"
	SortBySqft   SortKey = "sqft"
	SortByNewest SortKey = "newest"
)

// PaymentPurpose описывает назначение платежа.
type PaymentPurpose string

const (
	PurposeViewing PaymentPurpose = "viewing"
	PurposeRental  PaymentPurpose = "rental"
)

// PaymentMethod описывает способ оплаты.
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodPayPal PaymentMethod = "paypal"
)

// PaymentResult содержит результат успешного платежа.
// Создаётся в момент подтверждения и сбрасывается при возврате к списку объявлений.
type PaymentResult struct {
	ConfirmationID string  `json:"confirmation_id"`
	Amount         float64 `json:"amount"`
}

// TenantStatus описывает статус арендатора.
type TenantStatus string

const (
	TenantStatusCurrent TenantStatus = "current"
	TenantStatusOverdue TenantStatus = "overdue"
	TenantStatusNotice  TenantStatus = "notice"
)

// Tenant описывает арендатора и условия его договора.
type Tenant struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Apartment  string       `json:"apartment"`
	RentAmount float64      `json:"rent_amount"`
	Status     TenantStatus `json:"status"`
	LeaseStart time.Time    `json:"lease_start"`
	LeaseEnd   time.Time    `json:"lease_end"`
}

// PaymentType описывает тип платежа в журнале платежей.
type PaymentType string

const (
	PaymentTypeRent    PaymentType = "rent"
	PaymentTypeViewing PaymentType = "viewing"
)

// PaymentStatus описывает статус платежа в журнале платежей.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusOverdue   PaymentStatus = "overdue"
)

// PaymentRecord описывает запись журнала платежей.
type PaymentRecord struct {
	ID         string        `json:"id"`
	TenantName string        `json:"tenant_name"`
	Apartment  string        `json:"apartment"`
	Type       PaymentType   `json:"type"`
	Amount     float64       `json:"amount"`
	Date       *time.Time    `json:"date,omitempty"`
	Status     PaymentStatus `json:"status"`
	Method     PaymentMethod `json:"method,omitempty"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
}

// MonthStat содержит выручку и заполняемость за один месяц.
type MonthStat struct {
	Month     string  `json:"month"`
	Revenue   float64 `json:"revenue"`
	Occupancy int     `json:"occupancy"`
}

// Activity описывает событие для ленты последних действий панели администратора.
type Activity struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
