package middleware

import (
	"fmt"
	"strings"

	"hotel-booking-service/internal/module/booking/repositories"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Middleware struct {
	Log  *otelzap.Logger
	Repo repositories.Repositories
}

func (m *Middleware) ValidateToken(ctx *fiber.Ctx) error {
	auth := ctx.Get("Authorization")
	if auth == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error get token from header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("missing authorization header"))
	}

	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth || token == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error parse bearer token")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("invalid authorization header"))
	}

	resp, err := m.Repo.ValidateToken(ctx.UserContext(), token)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate token: %v", err))
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	if !resp.IsValid {
		m.Log.Ctx(ctx.UserContext()).Error("error validate token")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("error validate token"))
	}

	ctx.Locals("user_id", resp.UserID)
	ctx.Locals("email_user", resp.Email)
	ctx.Locals("role", resp.Role)

	return ctx.Next()
}
