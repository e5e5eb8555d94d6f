package router

import (
	bookinghandler "hotel-booking-service/internal/module/booking/handler"
	paymenthandler "hotel-booking-service/internal/module/payment/handler"
	"hotel-booking-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerBooking *bookinghandler.BookingHandler, handlerPayment *paymenthandler.PaymentHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	// provider webhook: raw body, signature-verified, no token middleware
	app.Post("/api/v1/payments/webhook", handlerPayment.HandleWebhook)

	Api := app.Group("/api")

	v1 := Api.Group("/v1")
	v1.Post("/bookings", m.ValidateToken, handlerBooking.CreateBooking)
	v1.Get("/bookings", m.ValidateToken, handlerBooking.ShowAllBookings)
	v1.Get("/bookings/user/:userId", m.ValidateToken, handlerBooking.ShowBookingsForUser)
	v1.Get("/bookings/hotels/:hotelId", m.ValidateToken, handlerBooking.ShowBookingsForHotel)
	v1.Get("/bookings/:bookingId", m.ValidateToken, handlerBooking.GetBookingByID)
	v1.Post("/payments/checkout", m.ValidateToken, handlerPayment.CreateCheckoutSession)
	v1.Get("/payments/session-status", m.ValidateToken, handlerPayment.RetrieveSessionStatus)

	return app

}
