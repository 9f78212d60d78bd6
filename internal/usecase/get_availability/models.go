package get_availability

import "time"

// Request модель запроса доступности пространства на дату
type Request struct {
	SpaceID int64     // ID пространства
	Date    time.Time // Дата (без времени)
}

// FreeSlot свободный интервал с ценой
type FreeSlot struct {
	Start      string // "09:00"
	End        string // "10:00"
	PriceMinor int64  // Цена за интервал в минорных единицах
}

// Response модель ответа с доступностью на дату
type Response struct {
	SpaceID     int64      // ID пространства
	Date        time.Time  // Запрошенная дата
	IsAvailable bool       // Открыто ли пространство в этот день
	Reason      string     // Причина закрытия (из override), пустая строка если открыто
	FreeSlots   []FreeSlot // Свободные интервалы с учётом бронирований
}
