package usecases_test

import (
	"context"
	"testing"
	"time"

	"hotel-booking-service/internal/module/booking/mocks"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/module/booking/usecases"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/log"
	log_internal "hotel-booking-service/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	uc        usecases.Usecase
	repoMock  *mocks.Repositories
	allocMock *mocks.Allocator
	logMock   log.Logger
	p         message.Publisher
)

type mockPublisher struct{}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	return nil
}

func NewMockPublisher() message.Publisher {
	return &mockPublisher{}
}

func setup() {
	repoMock = new(mocks.Repositories)
	allocMock = new(mocks.Allocator)
	p = NewMockPublisher()
	logZap := log_internal.SetupLogger()
	log_internal.Init(logZap)
	logMock = log_internal.GetLogger()
	uc = usecases.New(repoMock, allocMock, logMock, p)
}

func teardown() {
	repoMock = nil
	allocMock = nil
	uc = nil
}

func TestCreateBooking(t *testing.T) {
	hotelID := uuid.New()
	userID := "user-123"
	checkIn := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 2)

	payload := func() *request.CreateBooking {
		return &request.CreateBooking{
			HotelID:  hotelID.String(),
			CheckIn:  checkIn.Format(entity.DateFormat),
			CheckOut: checkOut.Format(entity.DateFormat),
		}
	}

	hotelMock := response.Hotel{
		ID:    hotelID.String(),
		Name:  "Grand Hotel",
		Price: 150,
	}

	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(hotelMock, nil)
		allocMock.On("Allocate", mock.Anything, hotelID, checkIn, checkOut).Return(205, nil)
		repoMock.On("InsertBooking", mock.Anything, mock.Anything).Return(entity.Booking{
			ID:            uuid.New(),
			UserID:        userID,
			HotelID:       hotelID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			RoomNumber:    205,
			PaymentStatus: entity.PaymentStatusPending,
			CreatedAt:     time.Now(),
		}, nil)

		resp, err := uc.CreateBooking(context.Background(), payload(), userID)

		assert.NoError(t, err)
		assert.Equal(t, 205, resp.RoomNumber)
		assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
		assert.Equal(t, checkIn.Format(entity.DateFormat), resp.CheckIn)
		repoMock.AssertExpectations(t)
	})

	t.Run("check-in today is accepted", func(t *testing.T) {
		setup()
		defer teardown()

		today := time.Now().UTC().Truncate(24 * time.Hour)
		tomorrow := today.AddDate(0, 0, 1)
		req := &request.CreateBooking{
			HotelID:  hotelID.String(),
			CheckIn:  today.Format(entity.DateFormat),
			CheckOut: tomorrow.Format(entity.DateFormat),
		}

		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(hotelMock, nil)
		allocMock.On("Allocate", mock.Anything, hotelID, today, tomorrow).Return(101, nil)
		repoMock.On("InsertBooking", mock.Anything, mock.Anything).Return(entity.Booking{
			ID:            uuid.New(),
			UserID:        userID,
			HotelID:       hotelID,
			CheckIn:       today,
			CheckOut:      tomorrow,
			RoomNumber:    101,
			PaymentStatus: entity.PaymentStatusPending,
		}, nil)

		_, err := uc.CreateBooking(context.Background(), req, userID)

		assert.NoError(t, err)
	})

	t.Run("check-in in the past", func(t *testing.T) {
		setup()
		defer teardown()

		req := payload()
		req.CheckIn = time.Now().UTC().AddDate(0, 0, -1).Format(entity.DateFormat)

		_, err := uc.CreateBooking(context.Background(), req, userID)

		assert.Equal(t, errors.BadRequest("check-in date cannot be in the past"), err)
		repoMock.AssertNotCalled(t, "InsertBooking", mock.Anything, mock.Anything)
	})

	t.Run("check-out not after check-in", func(t *testing.T) {
		setup()
		defer teardown()

		req := payload()
		req.CheckOut = req.CheckIn

		_, err := uc.CreateBooking(context.Background(), req, userID)

		assert.Equal(t, errors.BadRequest("check-out date must be after check-in date"), err)
	})

	t.Run("invalid hotel id", func(t *testing.T) {
		setup()
		defer teardown()

		req := payload()
		req.HotelID = "not-a-uuid"

		_, err := uc.CreateBooking(context.Background(), req, userID)

		assert.Equal(t, errors.BadRequest("invalid hotel id"), err)
	})

	t.Run("hotel not found", func(t *testing.T) {
		setup()
		defer teardown()

		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(response.Hotel{}, errors.NotFoundError("hotel not found"))

		_, err := uc.CreateBooking(context.Background(), payload(), userID)

		assert.Equal(t, errors.NotFoundError("hotel not found"), err)
		allocMock.AssertNotCalled(t, "Allocate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("retries allocation on room conflict", func(t *testing.T) {
		setup()
		defer teardown()

		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(hotelMock, nil)
		allocMock.On("Allocate", mock.Anything, hotelID, checkIn, checkOut).Return(310, nil).Once()
		allocMock.On("Allocate", mock.Anything, hotelID, checkIn, checkOut).Return(411, nil).Once()
		repoMock.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
			return b.RoomNumber == 310
		})).Return(entity.Booking{}, repositories.ErrRoomConflict).Once()
		repoMock.On("InsertBooking", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
			return b.RoomNumber == 411
		})).Return(entity.Booking{
			ID:            uuid.New(),
			UserID:        userID,
			HotelID:       hotelID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			RoomNumber:    411,
			PaymentStatus: entity.PaymentStatusPending,
		}, nil).Once()

		resp, err := uc.CreateBooking(context.Background(), payload(), userID)

		assert.NoError(t, err)
		assert.Equal(t, 411, resp.RoomNumber)
		repoMock.AssertExpectations(t)
		allocMock.AssertExpectations(t)
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		setup()
		defer teardown()

		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(hotelMock, nil)
		allocMock.On("Allocate", mock.Anything, hotelID, checkIn, checkOut).Return(500, nil)
		repoMock.On("InsertBooking", mock.Anything, mock.Anything).Return(entity.Booking{}, repositories.ErrRoomConflict)

		_, err := uc.CreateBooking(context.Background(), payload(), userID)

		assert.Error(t, err)
		var respErr *errors.ErrorResp
		assert.ErrorAs(t, err, &respErr)
		assert.Equal(t, 400, respErr.Code)
		repoMock.AssertNumberOfCalls(t, "InsertBooking", 5)
	})
}

func TestGetBookingByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		bookingID := uuid.New()
		repoMock.On("FindBookingByID", mock.Anything, bookingID.String()).Return(entity.Booking{
			ID:            bookingID,
			UserID:        "user-1",
			HotelID:       uuid.New(),
			RoomNumber:    120,
			PaymentStatus: entity.PaymentStatusPaid,
		}, nil)

		resp, err := uc.GetBookingByID(context.Background(), bookingID.String())

		assert.NoError(t, err)
		assert.Equal(t, bookingID.String(), resp.ID)
		assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	})

	t.Run("malformed id reads as absent", func(t *testing.T) {
		setup()
		defer teardown()

		_, err := uc.GetBookingByID(context.Background(), "nope")

		assert.Equal(t, errors.NotFoundError("booking not found"), err)
		repoMock.AssertNotCalled(t, "FindBookingByID", mock.Anything, mock.Anything)
	})
}

func TestShowBookingsForUser(t *testing.T) {
	userID := "user-9"
	hotelID := uuid.New()
	checkIn := time.Now().UTC().AddDate(0, 0, 3).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)

	bookingsMock := []entity.Booking{
		{
			ID:            uuid.New(),
			UserID:        userID,
			HotelID:       hotelID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			RoomNumber:    210,
			PaymentStatus: entity.PaymentStatusPaid,
		},
	}
	statsMock := entity.BookingStats{Total: 4, Pending: 1, Paid: 2, Failed: 1, Upcoming: 2}
	hotelMock := response.Hotel{ID: hotelID.String(), Name: "Seaside", Location: "Bali", Price: 90.5}

	t.Run("success as owner", func(t *testing.T) {
		setup()
		defer teardown()

		filter := &request.ListBookings{Page: 1, Limit: 10}
		repoMock.On("FindBookingsByUserID", mock.Anything, userID, filter).Return(bookingsMock, int64(4), nil)
		repoMock.On("CountBookingStats", mock.Anything, userID).Return(statsMock, nil)
		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(hotelMock, nil)

		resp, err := uc.ShowBookingsForUser(context.Background(), userID, userID, "user", filter)

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, "Seaside", resp.Data[0].HotelName)
		assert.Equal(t, 3, resp.Data[0].Nights)
		assert.Equal(t, 271.5, resp.Data[0].TotalAmount)
		assert.Equal(t, int64(4), resp.Pagination.Total)
		assert.Equal(t, 1, resp.Pagination.TotalPages)
		assert.Equal(t, int64(2), resp.Stats.PaidBookings)
		assert.Equal(t, int64(2), resp.Stats.UpcomingTrips)
	})

	t.Run("admin can view other users", func(t *testing.T) {
		setup()
		defer teardown()

		filter := &request.ListBookings{Page: 1, Limit: 10}
		repoMock.On("FindBookingsByUserID", mock.Anything, userID, filter).Return([]entity.Booking{}, int64(0), nil)
		repoMock.On("CountBookingStats", mock.Anything, userID).Return(entity.BookingStats{}, nil)

		resp, err := uc.ShowBookingsForUser(context.Background(), userID, "someone-else", usecases.RoleAdmin, filter)

		assert.NoError(t, err)
		assert.Empty(t, resp.Data)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		setup()
		defer teardown()

		_, err := uc.ShowBookingsForUser(context.Background(), userID, "intruder", "user", &request.ListBookings{})

		assert.Equal(t, errors.UnauthorizedError("not allowed to view these bookings"), err)
		repoMock.AssertNotCalled(t, "FindBookingsByUserID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		setup()
		defer teardown()

		filter := &request.ListBookings{}
		repoMock.On("FindBookingsByUserID", mock.Anything, userID, mock.MatchedBy(func(f *request.ListBookings) bool {
			return f.Page == 1 && f.Limit == 10
		})).Return([]entity.Booking{}, int64(0), nil)
		repoMock.On("CountBookingStats", mock.Anything, userID).Return(entity.BookingStats{}, nil)

		_, err := uc.ShowBookingsForUser(context.Background(), userID, userID, "user", filter)

		assert.NoError(t, err)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		setup()
		defer teardown()

		_, err := uc.ShowBookingsForUser(context.Background(), userID, userID, "user", &request.ListBookings{Status: "REFUNDED"})

		assert.Equal(t, errors.BadRequest("invalid payment status filter"), err)
	})

	t.Run("missing hotel keeps the row", func(t *testing.T) {
		setup()
		defer teardown()

		filter := &request.ListBookings{Page: 1, Limit: 10}
		repoMock.On("FindBookingsByUserID", mock.Anything, userID, filter).Return(bookingsMock, int64(1), nil)
		repoMock.On("CountBookingStats", mock.Anything, userID).Return(statsMock, nil)
		repoMock.On("FindHotelByID", mock.Anything, hotelID.String()).Return(response.Hotel{}, errors.NotFoundError("hotel not found"))

		resp, err := uc.ShowBookingsForUser(context.Background(), userID, userID, "user", filter)

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Empty(t, resp.Data[0].HotelName)
		assert.Equal(t, float64(0), resp.Data[0].TotalAmount)
	})
}

func TestShowAllBookings(t *testing.T) {
	setup()
	defer teardown()

	repoMock.On("FindAllBookings", mock.Anything).Return([]entity.Booking{
		{ID: uuid.New(), UserID: "a", HotelID: uuid.New(), RoomNumber: 100, PaymentStatus: entity.PaymentStatusPending},
		{ID: uuid.New(), UserID: "b", HotelID: uuid.New(), RoomNumber: 999, PaymentStatus: entity.PaymentStatusFailed},
	}, nil)

	resp, err := uc.ShowAllBookings(context.Background())

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestShowBookingsForHotel(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		setup()
		defer teardown()

		hotelID := uuid.New()
		repoMock.On("FindBookingsByHotelID", mock.Anything, hotelID.String()).Return([]entity.Booking{
			{ID: uuid.New(), UserID: "a", HotelID: hotelID, RoomNumber: 404, PaymentStatus: entity.PaymentStatusPaid},
		}, nil)

		resp, err := uc.ShowBookingsForHotel(context.Background(), hotelID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("invalid hotel id", func(t *testing.T) {
		setup()
		defer teardown()

		_, err := uc.ShowBookingsForHotel(context.Background(), "bad")

		assert.Equal(t, errors.BadRequest("invalid hotel id"), err)
	})
}
