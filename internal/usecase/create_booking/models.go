package create_booking

import (
	"time"

	"github.com/fleetops/FPB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID      int64            // ID арендатора
	PartnerID     int64            // ID сервис-партнера
	VehicleID     int64            // ID автомобиля автопарка
	DriverID      *int64           // ID водителя (опционально)
	ServiceID     int64            // ID услуги из каталога
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	CustomerNotes *string          // Комментарий арендатора (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	TenantID      int64            // ID арендатора
	PartnerID     int64            // ID партнера
	VehicleID     int64            // ID автомобиля
	DriverID      *int64           // ID водителя
	ServiceID     int64            // ID услуги
	ScheduledDate time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время окончания
	Status        string           // Статус бронирования
	Price         float64          // Цена услуги, зафиксированная при создании
	PaymentStatus string           // Платежный статус

	// Денормализованные данные
	ServiceName    string  // Название услуги
	CommissionRate float64 // Ставка комиссии, зафиксированная при создании
	CustomerNotes  *string // Комментарий арендатора

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
