package handler

import (
	"context"
	"fmt"

	"hotel-booking-service/internal/module/payment/models/request"
	"hotel-booking-service/internal/module/payment/usecases"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type PaymentHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	Publish   message.Publisher
}

func (h *PaymentHandler) CreateCheckoutSession(ctx *fiber.Ctx) error {
	var req request.CreateCheckoutSession
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(string)

	resp, err := h.Usecase.CreateCheckoutSession(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create checkout session: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusOK, resp)
}

func (h *PaymentHandler) RetrieveSessionStatus(ctx *fiber.Ctx) error {
	sessionID := ctx.Query("session_id")
	userID := ctx.Locals("user_id").(string)

	resp, err := h.Usecase.RetrieveSessionStatus(ctx.UserContext(), sessionID, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error retrieve session status: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusOK, resp)
}

// HandleWebhook receives the raw provider payload. 2xx acknowledges, 4xx
// tells the provider to stop redelivering, 5xx asks for a retry.
func (h *PaymentHandler) HandleWebhook(ctx *fiber.Ctx) error {
	payload := ctx.Body()
	signature := ctx.Get("Stripe-Signature")

	if err := h.Usecase.HandleWebhook(ctx.UserContext(), payload, signature); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error handle webhook: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

func (h *PaymentHandler) ConsumePaymentEventQueue(msg *message.Message) error {
	msg.Ack()
	var req request.PaymentEvent
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error validate message: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	ctx := context.Background()
	if err := h.Usecase.ApplyPaymentEvent(ctx, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume payment event queue: %v", err))
		h.publishPoisoned(msg, err)
		return err
	}

	return nil
}

func (h *PaymentHandler) publishPoisoned(msg *message.Message, cause error) {
	reqPoisoned := request.PoisonedQueue{
		TopicTarget: "payment_events",
		ErrorMsg:    cause.Error(),
		Payload:     msg.Payload,
	}

	jsonPayload, _ := json.Marshal(reqPoisoned)
	if err := h.Publish.Publish("poisoned_queue", message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
	}
}
