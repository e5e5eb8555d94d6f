package request

type CreateCheckoutSession struct {
	BookingID string `json:"bookingId" validate:"required,uuid"`
}

// PaymentEvent is a provider event relayed over the message stream. Delivery
// is at-least-once, processing must be idempotent.
type PaymentEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type NotificationPayment struct {
	BookingID string `json:"booking_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}
