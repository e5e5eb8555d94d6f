package handler

import (
	"fmt"

	"hotel-booking-service/internal/module/booking/models/request"
	"hotel-booking-service/internal/module/booking/usecases"
	"hotel-booking-service/internal/pkg/errors"
	"hotel-booking-service/internal/pkg/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BookingHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
}

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(string)

	resp, err := h.Usecase.CreateBooking(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusCreated, resp)
}

func (h *BookingHandler) GetBookingByID(ctx *fiber.Ctx) error {
	bookingID := ctx.Params("bookingId")

	resp, err := h.Usecase.GetBookingByID(ctx.UserContext(), bookingID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get booking by id: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusOK, resp)
}

func (h *BookingHandler) ShowBookingsForUser(ctx *fiber.Ctx) error {
	var filter request.ListBookings
	if err := ctx.QueryParser(&filter); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse query: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse query"))
	}

	if err := h.Validator.Struct(filter); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate query: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	targetUserID := ctx.Params("userId")
	requesterID := ctx.Locals("user_id").(string)
	requesterRole, _ := ctx.Locals("role").(string)

	resp, err := h.Usecase.ShowBookingsForUser(ctx.UserContext(), targetUserID, requesterID, requesterRole, &filter)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings for user: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusOK, resp)
}

func (h *BookingHandler) ShowAllBookings(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != usecases.RoleAdmin {
		return helpers.RespError(ctx, h.Log, errors.ForbiddenError("admin role required"))
	}

	resp, err := h.Usecase.ShowAllBookings(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show all bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusOK, resp)
}

func (h *BookingHandler) ShowBookingsForHotel(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != usecases.RoleAdmin {
		return helpers.RespError(ctx, h.Log, errors.ForbiddenError("admin role required"))
	}

	hotelID := ctx.Params("hotelId")

	resp, err := h.Usecase.ShowBookingsForHotel(ctx.UserContext(), hotelID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings for hotel: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, fiber.StatusOK, resp)
}
