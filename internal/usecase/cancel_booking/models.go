package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID      int64  // ID бронирования
	UserID         int64  // ID пользователя, инициирующего отмену
	Reason         string // Причина отмены
	IsForceMajeure bool   // Отмена по форс-мажору (партнёрское подтверждение)
	DryRun         bool   // Только расчёт возврата, без отмены
}

// Response модель ответа с результатом отмены
type Response struct {
	BookingID           int64   // ID бронирования
	Status              string  // Статус после операции (cancelled, либо прежний при dryRun)
	RefundAmountMinor   int64   // Сумма возврата в минорных единицах
	CancellationFeeMinor int64  // Удержанная комиссия в минорных единицах
	RefundPercentage    float64 // Фактический процент возврата
	IsRefundable        bool    // Положен ли возврат
	Reason              string  // Машиночитаемая причина решения
	DryRun              bool    // Был ли это предпросмотр

	CancelledAt *time.Time // Время отмены (nil при dryRun)
}
