package catalogservice

// Partner модель сервис-партнера из CatalogService
type Partner struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	CommissionRate float64 `json:"commission_rate"` // Процент комиссии платформы (например, 10.0)
	IsActive       bool    `json:"is_active"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID              int64   `json:"id"`
	PartnerID       int64   `json:"partner_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
