package models

import (
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
)

// Request модели

// PayCommissionRequest запрос на отметку комиссии оплаченной
type PayCommissionRequest struct {
	PartnerID        int64  `json:"partnerId"`
	PaymentReference string `json:"paymentReference"`
}

// Response модели

// CommissionResponse ответ с данными комиссии
type CommissionResponse struct {
	ID               int64   `json:"id"`
	PartnerID        int64   `json:"partnerId"`
	BookingID        int64   `json:"bookingId"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
	PaidAt           *string `json:"paidAt,omitempty"` // ISO 8601 format
	PaymentReference *string `json:"paymentReference,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommissionListResponse ответ со списком комиссий и суммарными значениями
type CommissionListResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
	TotalAmount float64              `json:"totalAmount"`
	UnpaidCount int                  `json:"unpaidCount"`
}

// Методы конвертации

// FromDomainCommission конвертирует domain модель в DTO
func FromDomainCommission(c *domain.Commission) *CommissionResponse {
	if c == nil {
		return nil
	}

	resp := &CommissionResponse{
		ID:               c.ID,
		PartnerID:        c.PartnerID,
		BookingID:        c.BookingID,
		Amount:           c.Amount,
		Status:           string(c.Status),
		PaymentReference: c.PaymentReference,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}

	if c.PaidAt != nil {
		paidStr := c.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidStr
	}

	return resp
}

// FromDomainCommissionList конвертирует список domain моделей в DTO,
// подсчитывая суммарную задолженность
func FromDomainCommissionList(commissions []*domain.Commission) *CommissionListResponse {
	resp := &CommissionListResponse{
		Commissions: make([]CommissionResponse, 0, len(commissions)),
	}

	for _, c := range commissions {
		if cResp := FromDomainCommission(c); cResp != nil {
			resp.Commissions = append(resp.Commissions, *cResp)
			resp.TotalAmount += c.Amount
			if !c.IsPaid() {
				resp.UnpaidCount++
			}
		}
	}

	return resp
}
