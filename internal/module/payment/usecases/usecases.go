package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	bookingentity "hotel-booking-service/internal/module/booking/models/entity"
	bookingresponse "hotel-booking-service/internal/module/booking/models/response"
	bookingrepo "hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/module/payment/gateway"
	"hotel-booking-service/internal/module/payment/models/request"
	"hotel-booking-service/internal/module/payment/models/response"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/helpers"
	"hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/redis"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/stripe/stripe-go/v76"
)

type usecase struct {
	repo    bookingrepo.Repositories
	gateway gateway.Gateway
	locker  redis.Locker
	log     log.Logger
	publish message.Publisher
}

type Usecase interface {
	CreateCheckoutSession(ctx context.Context, payload *request.CreateCheckoutSession, userID string) (response.CheckoutSession, error)
	RetrieveSessionStatus(ctx context.Context, sessionID, userID string) (response.SessionStatus, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ApplyPaymentEvent(ctx context.Context, payload *request.PaymentEvent) error
}

func New(repo bookingrepo.Repositories, gw gateway.Gateway, locker redis.Locker, logger log.Logger, publish message.Publisher) Usecase {
	return &usecase{
		repo:    repo,
		gateway: gw,
		locker:  locker,
		log:     logger,
		publish: publish,
	}
}

func (u *usecase) CreateCheckoutSession(ctx context.Context, payload *request.CreateCheckoutSession, userID string) (response.CheckoutSession, error) {
	booking, err := u.repo.FindBookingByID(ctx, payload.BookingID)
	if err != nil {
		return response.CheckoutSession{}, err
	}

	if booking.UserID != userID {
		return response.CheckoutSession{}, errors.ForbiddenError("booking does not belong to the caller")
	}
	if booking.PaymentStatus == bookingentity.PaymentStatusPaid {
		return response.CheckoutSession{}, errors.Conflict("booking is already paid")
	}

	hotel, err := u.repo.FindHotelByID(ctx, booking.HotelID.String())
	if err != nil {
		return response.CheckoutSession{}, err
	}
	if hotel.StripePriceID == "" {
		return response.CheckoutSession{}, errors.BadRequest("hotel has no registered nightly price")
	}

	nights := helpers.NightCount(booking.CheckIn, booking.CheckOut)

	// The booking stays PENDING whatever happens here: a provider timeout
	// just means no session yet, the client may retry.
	session, err := u.gateway.CreateCheckoutSession(ctx, gateway.CreateSessionParams{
		BookingID: booking.ID.String(),
		UserID:    userID,
		PriceID:   hotel.StripePriceID,
		Nights:    int64(nights),
	})
	if err != nil {
		u.log.Error(ctx, "error create checkout session", err)
		return response.CheckoutSession{}, errors.InternalServerError("error create checkout session")
	}

	return response.CheckoutSession{ClientSecret: session.ClientSecret}, nil
}

func (u *usecase) RetrieveSessionStatus(ctx context.Context, sessionID, userID string) (response.SessionStatus, error) {
	if sessionID == "" {
		return response.SessionStatus{}, errors.BadRequest("session id is required")
	}

	session, err := u.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		u.log.Error(ctx, "error retrieve checkout session", err)
		return response.SessionStatus{}, errors.InternalServerError("error retrieve checkout session")
	}

	bookingID := session.Metadata[gateway.MetadataBookingID]
	if bookingID == "" {
		return response.SessionStatus{}, errors.NotFoundError("booking not found")
	}

	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return response.SessionStatus{}, err
	}
	if booking.UserID != userID {
		return response.SessionStatus{}, errors.ForbiddenError("booking does not belong to the caller")
	}

	// A provider "paid" report is authoritative: it may also lift a FAILED
	// booking back to PAID. The conditional write keeps repeats idempotent,
	// and the store rejects the transition if the room was re-booked.
	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid &&
		booking.PaymentStatus != bookingentity.PaymentStatusPaid {
		changed, err := u.repo.MarkBookingPaidFromAny(ctx, booking.ID.String())
		if err != nil {
			if stderrors.Is(err, bookingrepo.ErrRoomConflict) {
				return response.SessionStatus{}, errors.Conflict("room is no longer available for this booking")
			}
			return response.SessionStatus{}, err
		}
		if changed {
			booking.PaymentStatus = bookingentity.PaymentStatusPaid
			u.publishNotification(ctx, booking.ID.String(), booking.UserID, bookingentity.PaymentStatusPaid)
		}
	}

	hotel, err := u.repo.FindHotelByID(ctx, booking.HotelID.String())
	if err != nil {
		return response.SessionStatus{}, err
	}

	return response.SessionStatus{
		BookingID: booking.ID.String(),
		Booking: bookingresponse.Booking{
			ID:            booking.ID.String(),
			UserID:        booking.UserID,
			HotelID:       booking.HotelID.String(),
			CheckIn:       booking.CheckIn.Format(bookingentity.DateFormat),
			CheckOut:      booking.CheckOut.Format(bookingentity.DateFormat),
			RoomNumber:    booking.RoomNumber,
			PaymentStatus: booking.PaymentStatus,
			CreatedAt:     booking.CreatedAt.Format(time.RFC3339),
		},
		Hotel:         hotel,
		Status:        string(session.Status),
		PaymentStatus: booking.PaymentStatus,
	}, nil
}

// HandleWebhook verifies an inbound provider event and drives the booking
// state machine. Signature or payload problems come back as 400-class
// errors with no state mutation.
func (u *usecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.gateway.VerifyEvent(payload, signature)
	if err != nil {
		u.log.Warn(ctx, "webhook signature verification failed", err)
		return errors.BadRequest("webhook signature verification failed")
	}

	sessionID := sessionIDFromEvent(event)
	if sessionID == "" {
		return errors.BadRequest("malformed event payload")
	}

	return u.applyEvent(ctx, event.ID, string(event.Type), sessionID)
}

// ApplyPaymentEvent processes a provider event relayed over the message
// stream. Same state machine, same idempotence.
func (u *usecase) ApplyPaymentEvent(ctx context.Context, payload *request.PaymentEvent) error {
	return u.applyEvent(ctx, payload.ID, payload.Type, payload.SessionID)
}

func (u *usecase) applyEvent(ctx context.Context, eventID, eventType, sessionID string) error {
	switch eventType {
	case string(stripe.EventTypeCheckoutSessionCompleted),
		string(stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded):
		return u.fulfillSession(ctx, eventID, sessionID)
	case string(stripe.EventTypeCheckoutSessionAsyncPaymentFailed),
		string(stripe.EventTypeCheckoutSessionExpired):
		return u.failSession(ctx, eventID, sessionID)
	default:
		// Acknowledge everything else without touching state.
		return nil
	}
}

func (u *usecase) fulfillSession(ctx context.Context, eventID, sessionID string) error {
	if u.seenEvent(ctx, eventID) {
		return nil
	}

	session, err := u.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		u.log.Error(ctx, "error retrieve checkout session", err)
		return errors.InternalServerError("error retrieve checkout session")
	}

	bookingID := session.Metadata[gateway.MetadataBookingID]
	if bookingID == "" {
		return errors.BadRequest("session has no bound booking")
	}

	unlock, err := u.locker.LockBooking(ctx, bookingID)
	if err != nil {
		u.log.Error(ctx, "error lock booking", err)
		return errors.InternalServerError("error lock booking")
	}
	defer unlock()

	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if respErr := asBadRequestable(err); respErr != nil {
			return respErr
		}
		return err
	}

	if booking.PaymentStatus != bookingentity.PaymentStatusPending {
		// Re-delivery after a terminal transition, nothing to do.
		u.markEventProcessed(ctx, eventID)
		return nil
	}
	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		u.markEventProcessed(ctx, eventID)
		return nil
	}

	changed, err := u.repo.MarkBookingPaid(ctx, bookingID)
	if err != nil {
		return err
	}
	if changed {
		u.publishNotification(ctx, bookingID, booking.UserID, bookingentity.PaymentStatusPaid)
	}
	u.markEventProcessed(ctx, eventID)
	return nil
}

func (u *usecase) failSession(ctx context.Context, eventID, sessionID string) error {
	if u.seenEvent(ctx, eventID) {
		return nil
	}

	session, err := u.gateway.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		u.log.Error(ctx, "error retrieve checkout session", err)
		return errors.InternalServerError("error retrieve checkout session")
	}

	bookingID := session.Metadata[gateway.MetadataBookingID]
	if bookingID == "" {
		return errors.BadRequest("session has no bound booking")
	}

	unlock, err := u.locker.LockBooking(ctx, bookingID)
	if err != nil {
		u.log.Error(ctx, "error lock booking", err)
		return errors.InternalServerError("error lock booking")
	}
	defer unlock()

	booking, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		if respErr := asBadRequestable(err); respErr != nil {
			return respErr
		}
		return err
	}

	if booking.PaymentStatus == bookingentity.PaymentStatusPaid {
		// Never downgrade a paid booking on a late failure or expiry.
		u.markEventProcessed(ctx, eventID)
		return nil
	}

	changed, err := u.repo.MarkBookingFailed(ctx, bookingID)
	if err != nil {
		return err
	}
	if changed {
		u.publishNotification(ctx, bookingID, booking.UserID, bookingentity.PaymentStatusFailed)
	}
	u.markEventProcessed(ctx, eventID)
	return nil
}

// seenEvent reports whether this exact event id already ran to completion.
// Best effort only, a marker failure falls through to the conditional write.
func (u *usecase) seenEvent(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return false
	}
	seen, err := u.repo.WebhookEventProcessed(ctx, eventID)
	if err != nil {
		u.log.Warn(ctx, "error check webhook event processed", err)
		return false
	}
	return seen
}

// markEventProcessed records the dedup marker. Only called after the event
// fully applied: a delivery that failed partway leaves no marker, so the
// provider's retry re-runs the whole state machine.
func (u *usecase) markEventProcessed(ctx context.Context, eventID string) {
	if eventID == "" {
		return
	}
	if _, err := u.repo.MarkWebhookEventProcessed(ctx, eventID); err != nil {
		u.log.Warn(ctx, "error mark webhook event processed", err)
	}
}

func (u *usecase) publishNotification(ctx context.Context, bookingID, userID, status string) {
	event := request.NotificationPayment{
		BookingID: bookingID,
		UserID:    userID,
		Status:    status,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		u.log.Error(ctx, "error marshal payment notification", err)
		return
	}
	if err := u.publish.Publish("booking_notification", message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		u.log.Error(ctx, fmt.Sprintf("error publish payment notification for booking %s", bookingID), err)
	}
}

// asBadRequestable converts a missing-booking lookup into a 400-class error
// so the provider stops redelivering an event we can never apply.
func asBadRequestable(err error) error {
	var respErr *errors.ErrorResp
	if stderrors.As(err, &respErr) && respErr.Code == 404 {
		return errors.BadRequest("booking not found for session")
	}
	return nil
}

func sessionIDFromEvent(event stripe.Event) string {
	if event.Data == nil {
		return ""
	}
	sessionID, _ := event.Data.Object["id"].(string)
	return sessionID
}
