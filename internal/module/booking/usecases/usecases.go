package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"hotel-booking-service/internal/module/booking/allocator"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/helpers"
	"hotel-booking-service/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	// Write-time room conflicts are expected under concurrent creation, so
	// allocation is re-run a handful of times before giving up.
	roomAssignRetries = 5

	defaultPageLimit = 10

	RoleAdmin = "admin"
)

type usecase struct {
	repo    repositories.Repositories
	alloc   allocator.Allocator
	log     log.Logger
	publish message.Publisher
}

type Usecase interface {
	CreateBooking(ctx context.Context, payload *request.CreateBooking, userID string) (response.Booking, error)
	GetBookingByID(ctx context.Context, bookingID string) (response.Booking, error)
	ShowBookingsForUser(ctx context.Context, targetUserID, requesterID, requesterRole string, filter *request.ListBookings) (response.UserBookings, error)
	ShowAllBookings(ctx context.Context) ([]response.Booking, error)
	ShowBookingsForHotel(ctx context.Context, hotelID string) ([]response.Booking, error)
}

func New(repo repositories.Repositories, alloc allocator.Allocator, logger log.Logger, publish message.Publisher) Usecase {
	return &usecase{
		repo:    repo,
		alloc:   alloc,
		log:     logger,
		publish: publish,
	}
}

func (u *usecase) CreateBooking(ctx context.Context, payload *request.CreateBooking, userID string) (response.Booking, error) {
	hotelID, err := uuid.Parse(payload.HotelID)
	if err != nil {
		return response.Booking{}, errors.BadRequest("invalid hotel id")
	}

	checkIn, err := time.Parse(entity.DateFormat, payload.CheckIn)
	if err != nil {
		return response.Booking{}, errors.BadRequest("check-in date is invalid")
	}
	checkOut, err := time.Parse(entity.DateFormat, payload.CheckOut)
	if err != nil {
		return response.Booking{}, errors.BadRequest("check-out date is invalid")
	}

	// Dates are calendar days on the UTC day boundary, today's check-in
	// stays valid until UTC midnight.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return response.Booking{}, errors.BadRequest("check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return response.Booking{}, errors.BadRequest("check-out date must be after check-in date")
	}

	if _, err := u.repo.FindHotelByID(ctx, payload.HotelID); err != nil {
		return response.Booking{}, err
	}

	booking, err := u.allocateAndInsert(ctx, hotelID, userID, checkIn, checkOut)
	if err != nil {
		return response.Booking{}, err
	}

	u.publishBookingCreated(ctx, booking)

	return toBookingResponse(booking), nil
}

// allocateAndInsert runs the probe-then-insert saga step. The store enforces
// the no-overlap invariant at write time, so a conflicting insert just means
// another request won that room and allocation is re-run with a fresh draw.
func (u *usecase) allocateAndInsert(ctx context.Context, hotelID uuid.UUID, userID string, checkIn, checkOut time.Time) (entity.Booking, error) {
	for retry := 0; retry < roomAssignRetries; retry++ {
		roomNumber, err := u.alloc.Allocate(ctx, hotelID, checkIn, checkOut)
		if err != nil {
			return entity.Booking{}, err
		}

		booking := entity.Booking{
			UserID:        userID,
			HotelID:       hotelID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			RoomNumber:    roomNumber,
			PaymentStatus: entity.PaymentStatusPending,
		}

		created, err := u.repo.InsertBooking(ctx, &booking)
		if err == nil {
			return created, nil
		}
		if stderrors.Is(err, repositories.ErrRoomConflict) {
			u.log.Warn(ctx, "room conflict on insert, retrying allocation", roomNumber)
			continue
		}
		return entity.Booking{}, err
	}

	return entity.Booking{}, errors.BadRequest(allocator.ExhaustedMessage)
}

func (u *usecase) publishBookingCreated(ctx context.Context, booking entity.Booking) {
	event := request.BookingCreated{
		BookingID: booking.ID.String(),
		UserID:    booking.UserID,
		HotelID:   booking.HotelID.String(),
		CheckIn:   booking.CheckIn.Format(entity.DateFormat),
		CheckOut:  booking.CheckOut.Format(entity.DateFormat),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		u.log.Error(ctx, "error marshal booking created event", err)
		return
	}
	if err := u.publish.Publish("booking_created", message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		// The booking is already committed, a lost event is log-only.
		u.log.Error(ctx, "error publish booking created event", err)
	}
}

func (u *usecase) GetBookingByID(ctx context.Context, bookingID string) (response.Booking, error) {
	// An unparseable id can never name a booking, it reads as absent.
	if _, err := uuid.Parse(bookingID); err != nil {
		return response.Booking{}, errors.NotFoundError("booking not found")
	}

	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return response.Booking{}, err
	}
	return toBookingResponse(booking), nil
}

func (u *usecase) ShowBookingsForUser(ctx context.Context, targetUserID, requesterID, requesterRole string, filter *request.ListBookings) (response.UserBookings, error) {
	if requesterID != targetUserID && requesterRole != RoleAdmin {
		return response.UserBookings{}, errors.UnauthorizedError("not allowed to view these bookings")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Status != "" && !entity.ValidPaymentStatus(filter.Status) {
		return response.UserBookings{}, errors.BadRequest("invalid payment status filter")
	}

	bookings, total, err := u.repo.FindBookingsByUserID(ctx, targetUserID, filter)
	if err != nil {
		return response.UserBookings{}, err
	}

	stats, err := u.repo.CountBookingStats(ctx, targetUserID)
	if err != nil {
		return response.UserBookings{}, err
	}

	data := make([]response.UserBooking, 0, len(bookings))
	hotels := map[string]response.Hotel{}
	for _, booking := range bookings {
		hotelID := booking.HotelID.String()
		hotel, ok := hotels[hotelID]
		if !ok {
			hotel, err = u.repo.FindHotelByID(ctx, hotelID)
			if err != nil {
				// The hotel may have been removed after booking, keep the row
				// with an empty snapshot rather than failing the listing.
				u.log.Warn(ctx, fmt.Sprintf("error enrich booking with hotel %s", hotelID), err)
				hotel = response.Hotel{ID: hotelID}
			}
			hotels[hotelID] = hotel
		}

		nights := helpers.NightCount(booking.CheckIn, booking.CheckOut)
		data = append(data, response.UserBooking{
			Booking:       toBookingResponse(booking),
			HotelName:     hotel.Name,
			HotelLocation: hotel.Location,
			HotelImage:    hotel.Image,
			Nights:        nights,
			TotalAmount:   helpers.RoundAmount(float64(nights) * hotel.Price),
		})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return response.UserBookings{
		Data: data,
		Pagination: response.Pagination{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		},
		Stats: response.BookingStats{
			TotalBookings:   stats.Total,
			PendingPayments: stats.Pending,
			PaidBookings:    stats.Paid,
			FailedPayments:  stats.Failed,
			UpcomingTrips:   stats.Upcoming,
		},
	}, nil
}

func (u *usecase) ShowAllBookings(ctx context.Context) ([]response.Booking, error) {
	bookings, err := u.repo.FindAllBookings(ctx)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (u *usecase) ShowBookingsForHotel(ctx context.Context, hotelID string) ([]response.Booking, error) {
	if _, err := uuid.Parse(hotelID); err != nil {
		return nil, errors.BadRequest("invalid hotel id")
	}
	bookings, err := u.repo.FindBookingsByHotelID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func toBookingResponse(booking entity.Booking) response.Booking {
	return response.Booking{
		ID:            booking.ID.String(),
		UserID:        booking.UserID,
		HotelID:       booking.HotelID.String(),
		CheckIn:       booking.CheckIn.Format(entity.DateFormat),
		CheckOut:      booking.CheckOut.Format(entity.DateFormat),
		RoomNumber:    booking.RoomNumber,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []entity.Booking) []response.Booking {
	resp := make([]response.Booking, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, toBookingResponse(booking))
	}
	return resp
}
