package request_booking

import "time"

// Request модель запроса на бронирование
type Request struct {
	UserID      int64     // ID пользователя
	SpaceID     int64     // ID пространства
	Date        time.Time // Дата бронирования (без времени)
	StartTime   string    // Время начала, "10:00"
	EndTime     string    // Время конца, "12:00" (полуинтервал, конец не включается)
	AmountMinor int64     // Сумма бронирования в минорных единицах
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     // ID созданного бронирования
	SpaceID     int64     // ID пространства
	UserID      int64     // ID пользователя
	BookingDate time.Time // Дата бронирования
	StartTime   string    // Время начала
	EndTime     string    // Время конца
	Status      string    // Статус бронирования (pending)
	AmountMinor int64     // Сумма в минорных единицах
	PriceMinor  int64     // Цена слота, в который попал интервал

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
