package request

type CreateBooking struct {
	HotelID  string `json:"hotelId" validate:"required,uuid"`
	CheckIn  string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
}

type ListBookings struct {
	Status    string `query:"status" validate:"omitempty,oneof=PENDING PAID FAILED"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

type BookingCreated struct {
	BookingID string `json:"booking_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	HotelID   string `json:"hotel_id" validate:"required"`
	CheckIn   string `json:"check_in" validate:"required"`
	CheckOut  string `json:"check_out" validate:"required"`
}
