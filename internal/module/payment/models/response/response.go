package response

import (
	bookingresponse "hotel-booking-service/internal/module/booking/models/response"
)

type CheckoutSession struct {
	ClientSecret string `json:"clientSecret"`
}

type SessionStatus struct {
	BookingID     string                  `json:"bookingId"`
	Booking       bookingresponse.Booking `json:"booking"`
	Hotel         bookingresponse.Hotel   `json:"hotel"`
	Status        string                  `json:"status"`
	PaymentStatus string                  `json:"paymentStatus"`
}
