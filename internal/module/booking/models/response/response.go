package response

type UserServiceValidate struct {
	IsValid bool   `json:"is_valid"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type Hotel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	StripePriceID string  `json:"stripePriceId"`
}

type Booking struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	HotelID       string `json:"hotelId"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	RoomNumber    int    `json:"roomNumber"`
	PaymentStatus string `json:"paymentStatus"`
	CreatedAt     string `json:"createdAt"`
}

// UserBooking is a listing row enriched with the hotel snapshot and the
// derived stay total.
type UserBooking struct {
	Booking
	HotelName     string  `json:"hotelName"`
	HotelLocation string  `json:"hotelLocation"`
	HotelImage    string  `json:"hotelImage"`
	Nights        int     `json:"nights"`
	TotalAmount   float64 `json:"totalAmount"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type BookingStats struct {
	TotalBookings   int64 `json:"totalBookings"`
	PendingPayments int64 `json:"pendingPayments"`
	PaidBookings    int64 `json:"paidBookings"`
	FailedPayments  int64 `json:"failedPayments"`
	UpcomingTrips   int64 `json:"upcomingTrips"`
}

type UserBookings struct {
	Data       []UserBooking `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Stats      BookingStats  `json:"stats"`
}
