package domain

import (
	"math"
	"time"
)

// CommissionStatus represents the payment state of a commission record
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

// Commission комиссия платформы за выполненное бронирование.
// Ровно одна запись на бронирование (уникальность booking_id
// обеспечивается хранилищем). Оплачивается независимо от
// платежного статуса самого бронирования.
type Commission struct {
	ID               int64
	PartnerID        int64
	BookingID        int64
	Amount           float64
	Status           CommissionStatus
	PaidAt           *time.Time
	PaymentReference *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid returns true if the commission has been paid out
func (c *Commission) IsPaid() bool {
	return c.Status == CommissionPaid
}

// CalculateCommission вычисляет комиссию платформы: price * rate%,
// с округлением до копеек
func CalculateCommission(price, rate float64) float64 {
	return math.Round(price*rate) / 100
}
