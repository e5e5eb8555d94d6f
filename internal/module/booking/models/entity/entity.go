package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const DateFormat = "2006-01-02"

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

const (
	MinRoomNumber = 100
	MaxRoomNumber = 999
)

// Booking is a reserved room-night range for one hotel. Room number and the
// date range are assigned once at creation, only payment_status changes
// afterwards.
type Booking struct {
	ID            uuid.UUID    `db:"id"`
	UserID        string       `db:"user_id"`
	HotelID       uuid.UUID    `db:"hotel_id"`
	CheckIn       time.Time    `db:"check_in"`
	CheckOut      time.Time    `db:"check_out"`
	RoomNumber    int          `db:"room_number"`
	PaymentStatus string       `db:"payment_status"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     sql.NullTime `db:"updated_at"`
}

// BookingStats aggregates one user's bookings regardless of any listing
// filter currently applied.
type BookingStats struct {
	Total    int64 `db:"total"`
	Pending  int64 `db:"pending"`
	Paid     int64 `db:"paid"`
	Failed   int64 `db:"failed"`
	Upcoming int64 `db:"upcoming"`
}

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}
