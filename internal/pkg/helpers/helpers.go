package helpers

import (
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"hotel-booking-service/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type ErrorMessage struct {
	Message string `json:"message"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, code int, data interface{}) error {
	return ctx.Status(code).JSON(data)
}

// RespError maps the error taxonomy onto HTTP statuses. Unclassified errors
// come back as a generic 500 so internals never leak to the client.
func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var respErr *errors.ErrorResp
	if stderrors.As(err, &respErr) {
		code = respErr.Code
		message = respErr.Message
	} else if log != nil {
		log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("unclassified error: %v", err))
	}

	return ctx.Status(code).JSON(ErrorMessage{Message: message})
}

// NightCount derives the number of billable nights from a stay, never less
// than one night.
func NightCount(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// RoundAmount rounds a monetary amount to two decimals.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}
