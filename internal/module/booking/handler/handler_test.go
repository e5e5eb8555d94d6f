package handler_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"hotel-booking-service/internal/module/booking/handler"
	"hotel-booking-service/internal/module/booking/mocks"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/module/booking/usecases"
	"hotel-booking-service/internal/pkg/errors"
	log_internal "hotel-booking-service/internal/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/valyala/fasthttp"
)

var (
	h             *handler.BookingHandler
	ucm           *mocks.Usecase
	app           *fiber.App
	validatorTest *validator.Validate
)

func setup() {
	ucm = &mocks.Usecase{}
	logMock := log_internal.Setup()
	validatorTest = validator.New()
	h = &handler.BookingHandler{
		Log:       logMock,
		Validator: validatorTest,
		Usecase:   ucm,
	}
	app = fiber.New()
}

func teardown() {
	ucm = nil
	validatorTest = nil
	h = nil
	app = nil
}

func TestCreateBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.CreateBooking{
			HotelID:  "7f0f1a37-47c2-4e0a-bb0a-8f2a3f1f9db2",
			CheckIn:  "2026-09-01",
			CheckOut: "2026-09-03",
		}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Request().SetRequestURI("/api/v1/bookings")
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody(jsonData)
		ctx.Locals("user_id", "user-1")

		ucm.On("CreateBooking", mock.Anything, &payload, "user-1").Return(response.Booking{
			ID:            "b1",
			UserID:        "user-1",
			RoomNumber:    204,
			PaymentStatus: "PENDING",
		}, nil)

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, ctx.Response().StatusCode())
	})

	t.Run("validation failure", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.CreateBooking{
			HotelID:  "not-a-uuid",
			CheckIn:  "2026-09-01",
			CheckOut: "2026-09-03",
		}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Request().SetRequestURI("/api/v1/bookings")
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody(jsonData)
		ctx.Locals("user_id", "user-1")

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, ctx.Response().StatusCode())
		ucm.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("usecase error is mapped", func(t *testing.T) {
		setup()
		defer teardown()

		payload := request.CreateBooking{
			HotelID:  "7f0f1a37-47c2-4e0a-bb0a-8f2a3f1f9db2",
			CheckIn:  "2026-09-01",
			CheckOut: "2026-09-03",
		}
		jsonData, _ := json.Marshal(payload)

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Request().SetRequestURI("/api/v1/bookings")
		ctx.Request().Header.SetContentType("application/json")
		ctx.Request().Header.SetMethod("POST")
		ctx.Request().SetBody(jsonData)
		ctx.Locals("user_id", "user-1")

		ucm.On("CreateBooking", mock.Anything, &payload, "user-1").
			Return(response.Booking{}, errors.NotFoundError("hotel not found"))

		err := h.CreateBooking(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, ctx.Response().StatusCode())
	})
}

func TestGetBookingByID(t *testing.T) {
	setup()
	defer teardown()

	app.Get("/api/v1/bookings/:bookingId", func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return h.GetBookingByID(c)
	})

	ucm.On("GetBookingByID", mock.Anything, "b1").Return(response.Booking{ID: "b1"}, nil)

	httpReq := httptest.NewRequest("GET", "/api/v1/bookings/b1", nil)
	resp, err := app.Test(httpReq)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestShowBookingsForUser(t *testing.T) {
	t.Run("success with filters", func(t *testing.T) {
		setup()
		defer teardown()

		app.Get("/api/v1/bookings/user/:userId", func(c *fiber.Ctx) error {
			c.Locals("user_id", "user-1")
			c.Locals("role", "user")
			return h.ShowBookingsForUser(c)
		})

		expectedFilter := &request.ListBookings{Status: "PAID", Page: 2, Limit: 5}
		ucm.On("ShowBookingsForUser", mock.Anything, "user-1", "user-1", "user", expectedFilter).
			Return(response.UserBookings{}, nil)

		httpReq := httptest.NewRequest("GET", "/api/v1/bookings/user/user-1?status=PAID&page=2&limit=5", nil)
		resp, err := app.Test(httpReq)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		ucm.AssertExpectations(t)
	})

	t.Run("invalid status filter fails validation", func(t *testing.T) {
		setup()
		defer teardown()

		app.Get("/api/v1/bookings/user/:userId", func(c *fiber.Ctx) error {
			c.Locals("user_id", "user-1")
			c.Locals("role", "user")
			return h.ShowBookingsForUser(c)
		})

		httpReq := httptest.NewRequest("GET", "/api/v1/bookings/user/user-1?status=REFUNDED", nil)
		resp, err := app.Test(httpReq)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		ucm.AssertNotCalled(t, "ShowBookingsForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign user is unauthorized", func(t *testing.T) {
		setup()
		defer teardown()

		app.Get("/api/v1/bookings/user/:userId", func(c *fiber.Ctx) error {
			c.Locals("user_id", "intruder")
			c.Locals("role", "user")
			return h.ShowBookingsForUser(c)
		})

		ucm.On("ShowBookingsForUser", mock.Anything, "user-1", "intruder", "user", mock.Anything).
			Return(response.UserBookings{}, errors.UnauthorizedError("not allowed to view these bookings"))

		httpReq := httptest.NewRequest("GET", "/api/v1/bookings/user/user-1", nil)
		resp, err := app.Test(httpReq)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var msg map[string]string
		assert.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "not allowed to view these bookings", msg["message"])
	})
}

func TestShowAllBookings(t *testing.T) {
	t.Run("admin allowed", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Locals("user_id", "admin-1")
		ctx.Locals("role", usecases.RoleAdmin)

		ucm.On("ShowAllBookings", mock.Anything).Return([]response.Booking{{ID: "b1"}}, nil)

		err := h.ShowAllBookings(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, ctx.Response().StatusCode())
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		setup()
		defer teardown()

		ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
		ctx.Locals("user_id", "user-1")
		ctx.Locals("role", "user")

		err := h.ShowAllBookings(ctx)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, ctx.Response().StatusCode())
		ucm.AssertNotCalled(t, "ShowAllBookings", mock.Anything)
	})
}

func TestShowBookingsForHotel(t *testing.T) {
	t.Run("admin allowed", func(t *testing.T) {
		setup()
		defer teardown()

		app.Get("/api/v1/bookings/hotels/:hotelId", func(c *fiber.Ctx) error {
			c.Locals("user_id", "admin-1")
			c.Locals("role", usecases.RoleAdmin)
			return h.ShowBookingsForHotel(c)
		})

		ucm.On("ShowBookingsForHotel", mock.Anything, "h1").Return([]response.Booking{}, nil)

		httpReq := httptest.NewRequest("GET", "/api/v1/bookings/hotels/h1", nil)
		resp, err := app.Test(httpReq)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		setup()
		defer teardown()

		app.Get("/api/v1/bookings/hotels/:hotelId", func(c *fiber.Ctx) error {
			c.Locals("user_id", "user-1")
			c.Locals("role", "user")
			return h.ShowBookingsForHotel(c)
		})

		httpReq := httptest.NewRequest("GET", "/api/v1/bookings/hotels/h1", nil)
		resp, err := app.Test(httpReq)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		ucm.AssertNotCalled(t, "ShowBookingsForHotel", mock.Anything, mock.Anything)
	})
}
