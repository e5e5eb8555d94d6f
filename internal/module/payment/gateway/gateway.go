package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hotel-booking-service/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	MetadataBookingID = "booking_id"
	MetadataUserID    = "user_id"
)

type CreateSessionParams struct {
	BookingID string
	UserID    string
	PriceID   string
	Nights    int64
}

// Gateway is the payment-provider boundary. One implementation talks to
// Stripe, tests substitute a mock.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*stripe.CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)
}

type stripeGateway struct {
	client        *client.API
	webhookSecret string
	returnURL     string
}

func NewStripeGateway(cfg *config.StripeConfig) Gateway {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	return &stripeGateway{
		client:        client.New(cfg.SecretKey, stripe.NewBackends(httpClient)),
		webhookSecret: cfg.WebhookSecret,
		returnURL:     cfg.ReturnURL,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*stripe.CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		UIMode: stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		ReturnURL: stripe.String(
			fmt.Sprintf("%s/booking/complete?session_id={CHECKOUT_SESSION_ID}", g.returnURL),
		),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(params.Nights),
			},
		},
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata(MetadataBookingID, params.BookingID)
	sessionParams.AddMetadata(MetadataUserID, params.UserID)

	return g.client.CheckoutSessions.New(sessionParams)
}

func (g *stripeGateway) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	return g.client.CheckoutSessions.Get(sessionID, params)
}

func (g *stripeGateway) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, g.webhookSecret)
}
