package get_available_slots

import (
	"time"

	"github.com/fleetops/FPB-BookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	PartnerID int64     // ID сервис-партнера
	ServiceID int64     // ID услуги из каталога
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	PartnerID int64         // ID партнера
	ServiceID int64         // ID услуги
	Date      time.Time     // Дата, на которую запрашивались слоты
	Slots     []domain.Slot // Все слоты дня с разметкой доступности
}
