package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"hotel-booking-service/config"
	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/models/response"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/log"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
)

// ErrRoomConflict surfaces the bookings exclusion constraint: another
// non-failed booking won the same hotel, room and overlapping date range at
// write time. Callers retry allocation with a fresh room.
var ErrRoomConflict = errors.Conflict("room already booked for the selected dates")

const exclusionViolationCode = "23P01"

const hotelCachePrefix = "hotel:"
const webhookEventPrefix = "webhook_event:"

type repositories struct {
	db              *sqlx.DB
	log             log.Logger
	httpClient      *circuit.HTTPClient
	redisClient     *goredis.Client
	cfgUserService  *config.UserServiceConfig
	cfgHotelService *config.HotelServiceConfig
}

type Repositories interface {
	// http
	ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error)
	FindHotelByID(ctx context.Context, hotelID string) (response.Hotel, error)
	// db
	InsertBooking(ctx context.Context, booking *entity.Booking) (entity.Booking, error)
	FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error)
	RoomBookingExists(ctx context.Context, hotelID uuid.UUID, roomNumber int, checkIn, checkOut time.Time) (bool, error)
	FindBookingsByUserID(ctx context.Context, userID string, filter *request.ListBookings) ([]entity.Booking, int64, error)
	CountBookingStats(ctx context.Context, userID string) (entity.BookingStats, error)
	FindBookingsByHotelID(ctx context.Context, hotelID string) ([]entity.Booking, error)
	FindAllBookings(ctx context.Context) ([]entity.Booking, error)
	MarkBookingPaid(ctx context.Context, bookingID string) (bool, error)
	MarkBookingPaidFromAny(ctx context.Context, bookingID string) (bool, error)
	MarkBookingFailed(ctx context.Context, bookingID string) (bool, error)
	// redis
	WebhookEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkWebhookEventProcessed(ctx context.Context, eventID string) (bool, error)
}

func New(
	db *sqlx.DB,
	logger log.Logger,
	httpClient *circuit.HTTPClient,
	redisClient *goredis.Client,
	cfgUserService *config.UserServiceConfig,
	cfgHotelService *config.HotelServiceConfig,
) Repositories {
	return &repositories{
		db:              db,
		log:             logger,
		httpClient:      httpClient,
		redisClient:     redisClient,
		cfgUserService:  cfgUserService,
		cfgHotelService: cfgHotelService,
	}
}

// InsertBooking implements Repositories.
func (r *repositories) InsertBooking(ctx context.Context, booking *entity.Booking) (entity.Booking, error) {
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now().UTC()
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = entity.PaymentStatusPending
	}

	query := `
		INSERT INTO bookings (id, user_id, hotel_id, check_in, check_out, room_number, payment_status, created_at)
		VALUES (:id, :user_id, :hotel_id, :check_in, :check_out, :room_number, :payment_status, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, booking)
	if err != nil {
		if isExclusionViolation(err) {
			return entity.Booking{}, ErrRoomConflict
		}
		r.log.Error(ctx, "error insert booking", err)
		return entity.Booking{}, errors.InternalServerError("error insert booking")
	}

	return *booking, nil
}

// FindBookingByID implements Repositories.
func (r *repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFoundError("booking not found")
	}
	if err != nil {
		r.log.Error(ctx, "error find booking by id", err)
		return entity.Booking{}, errors.InternalServerError("error find booking by id")
	}
	return booking, nil
}

// RoomBookingExists implements Repositories. Failed bookings do not hold a
// room, so they are excluded from the overlap check.
func (r *repositories) RoomBookingExists(ctx context.Context, hotelID uuid.UUID, roomNumber int, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE hotel_id = $1
			  AND room_number = $2
			  AND payment_status <> $3
			  AND check_in < $4
			  AND check_out > $5
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, hotelID, roomNumber, entity.PaymentStatusFailed, checkOut, checkIn)
	if err != nil {
		r.log.Error(ctx, "error check room booking exists", err)
		return false, errors.InternalServerError("error check room booking exists")
	}
	return exists, nil
}

// FindBookingsByUserID implements Repositories. Returns the filtered page
// and the total count of rows matching the filter.
func (r *repositories) FindBookingsByUserID(ctx context.Context, userID string, filter *request.ListBookings) ([]entity.Booking, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND payment_status = $%d`, len(args))
	}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(` AND check_in >= $%d`, len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(` AND check_in <= $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM bookings ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		r.log.Error(ctx, "error count bookings by user id", err)
		return nil, 0, errors.InternalServerError("error count bookings by user id")
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, (filter.Page-1)*filter.Limit)
	offsetPos := len(args)

	query := fmt.Sprintf(
		`SELECT * FROM bookings %s ORDER BY check_in DESC LIMIT $%d OFFSET $%d`,
		where, limitPos, offsetPos,
	)

	bookings := []entity.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		r.log.Error(ctx, "error find bookings by user id", err)
		return nil, 0, errors.InternalServerError("error find bookings by user id")
	}

	return bookings, total, nil
}

// CountBookingStats implements Repositories. Always computed over the whole
// user set, never the filtered page.
func (r *repositories) CountBookingStats(ctx context.Context, userID string) (entity.BookingStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE payment_status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE payment_status = 'PAID') AS paid,
			COUNT(*) FILTER (WHERE payment_status = 'FAILED') AS failed,
			COUNT(*) FILTER (WHERE check_in > now()) AS upcoming
		FROM bookings
		WHERE user_id = $1
	`
	var stats entity.BookingStats
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		r.log.Error(ctx, "error count booking stats", err)
		return entity.BookingStats{}, errors.InternalServerError("error count booking stats")
	}
	return stats, nil
}

// FindBookingsByHotelID implements Repositories.
func (r *repositories) FindBookingsByHotelID(ctx context.Context, hotelID string) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE hotel_id = $1 ORDER BY check_in DESC`
	bookings := []entity.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, hotelID); err != nil {
		r.log.Error(ctx, "error find bookings by hotel id", err)
		return nil, errors.InternalServerError("error find bookings by hotel id")
	}
	return bookings, nil
}

// FindAllBookings implements Repositories.
func (r *repositories) FindAllBookings(ctx context.Context) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings ORDER BY created_at DESC`
	bookings := []entity.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		r.log.Error(ctx, "error find all bookings", err)
		return nil, errors.InternalServerError("error find all bookings")
	}
	return bookings, nil
}

// MarkBookingPaid implements Repositories. The PENDING guard makes repeated
// webhook deliveries converge on the same state.
func (r *repositories) MarkBookingPaid(ctx context.Context, bookingID string) (bool, error) {
	return r.updatePaymentStatus(ctx, bookingID, entity.PaymentStatusPaid, `payment_status = 'PENDING'`)
}

// MarkBookingPaidFromAny implements Repositories. Used only by the session
// status retrieval path, where an authoritative "paid" report may also lift
// a FAILED booking back to PAID. If the room was re-booked in the meantime
// the exclusion constraint rejects the update.
func (r *repositories) MarkBookingPaidFromAny(ctx context.Context, bookingID string) (bool, error) {
	return r.updatePaymentStatus(ctx, bookingID, entity.PaymentStatusPaid, `payment_status <> 'PAID'`)
}

// MarkBookingFailed implements Repositories. Never downgrades a PAID booking.
func (r *repositories) MarkBookingFailed(ctx context.Context, bookingID string) (bool, error) {
	return r.updatePaymentStatus(ctx, bookingID, entity.PaymentStatusFailed, `payment_status = 'PENDING'`)
}

func (r *repositories) updatePaymentStatus(ctx context.Context, bookingID, status, guard string) (bool, error) {
	query := fmt.Sprintf(`UPDATE bookings SET payment_status = $2, updated_at = now() WHERE id = $1 AND %s`, guard)
	res, err := r.db.ExecContext(ctx, query, bookingID, status)
	if err != nil {
		if isExclusionViolation(err) {
			return false, ErrRoomConflict
		}
		r.log.Error(ctx, "error update booking payment status", err)
		return false, errors.InternalServerError("error update booking payment status")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.log.Error(ctx, "error read rows affected", err)
		return false, errors.InternalServerError("error update booking payment status")
	}
	return affected > 0, nil
}

// WebhookEventProcessed implements Repositories. Reports whether the dedup
// marker for an event id exists, without writing anything.
func (r *repositories) WebhookEventProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, webhookEventPrefix+eventID).Result()
	if err != nil {
		return false, errors.InternalServerError("error check webhook event processed")
	}
	return n > 0, nil
}

// MarkWebhookEventProcessed implements Repositories. Written only once an
// event has fully applied. Best effort: the conditional status writes stay
// correct even when the marker is lost.
func (r *repositories) MarkWebhookEventProcessed(ctx context.Context, eventID string) (bool, error) {
	first, err := r.redisClient.SetNX(ctx, webhookEventPrefix+eventID, 1, 24*time.Hour).Result()
	if err != nil {
		return false, errors.InternalServerError("error mark webhook event processed")
	}
	return first, nil
}

// ValidateToken implements Repositories. Resolves the caller identity via
// the user service.
func (r *repositories) ValidateToken(ctx context.Context, token string) (response.UserServiceValidate, error) {
	url := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s", r.cfgUserService.Host, r.cfgUserService.Port, token)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return response.UserServiceValidate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Error(ctx, "invalid token", resp.StatusCode)
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	var respData response.UserServiceValidate
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&respData); err != nil {
		return response.UserServiceValidate{}, err
	}

	if !respData.IsValid {
		r.log.Error(ctx, "invalid token", resp.StatusCode)
		return response.UserServiceValidate{}, errors.UnauthorizedError("invalid token")
	}

	return respData, nil
}

// FindHotelByID implements Repositories. Read-through: redis first, hotel
// service on miss.
func (r *repositories) FindHotelByID(ctx context.Context, hotelID string) (response.Hotel, error) {
	cacheKey := hotelCachePrefix + hotelID
	if cached, err := r.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var hotel response.Hotel
		if err := json.Unmarshal([]byte(cached), &hotel); err == nil {
			return hotel, nil
		}
	} else if !stderrors.Is(err, goredis.Nil) {
		r.log.Warn(ctx, "error read hotel cache", err)
	}

	url := fmt.Sprintf("http://%s:%s/api/v1/hotels/%s", r.cfgHotelService.Host, r.cfgHotelService.Port, hotelID)
	resp, err := r.httpClient.Get(url)
	if err != nil {
		r.log.Error(ctx, "error find hotel by id", err)
		return response.Hotel{}, errors.InternalServerError("error find hotel by id")
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		return response.Hotel{}, errors.NotFoundError("hotel not found")
	}
	if resp.StatusCode != 200 {
		r.log.Error(ctx, "unexpected hotel service status", resp.StatusCode)
		return response.Hotel{}, errors.InternalServerError("error find hotel by id")
	}

	var hotel response.Hotel
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&hotel); err != nil {
		r.log.Error(ctx, "error decode hotel response", err)
		return response.Hotel{}, errors.InternalServerError("error find hotel by id")
	}

	if payload, err := json.Marshal(hotel); err == nil {
		ttl := time.Duration(r.cfgHotelService.CacheTTLSec) * time.Second
		if err := r.redisClient.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
			r.log.Warn(ctx, "error write hotel cache", err)
		}
	}

	return hotel, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolationCode
}
