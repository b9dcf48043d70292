package routes

import (
	"errors"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/services"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// CreateBooking books an appointment for the authenticated client. New
// bookings always start pending; the requested status, if any, is ignored.
func CreateBooking(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "User not authenticated", ctx)
		return
	}

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startAt, parseErr := time.Parse(time.RFC3339, input.StartAt)
	if parseErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startAt must be an RFC3339 timestamp", ctx)
		return
	}

	booking, err := services.CreateBooking(services.BookingInput{
		ClientID:  userID,
		ServiceID: input.ServiceID,
		BranchID:  input.BranchID,
		StaffID:   input.StaffID,
		StartAt:   startAt,
		Notes:     input.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrDailyLimitReached) {
			utils.CreateError(iris.StatusConflict, "Fully Booked",
				"This branch has reached its booking limit for that day. Please choose another date.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	services.Cache.InvalidateAll()

	go notifyNewBooking(*booking)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// GetMyBookings lists the authenticated client's bookings, newest first.
func GetMyBookings(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "User not authenticated", ctx)
		return
	}

	status := ctx.URLParamDefault("status", "")

	query := storage.DB.
		Preload("Service").Preload("Branch").Preload("Staff").
		Where("client_id = ?", userID).
		Order("start_at DESC")
	if status != "" {
		if !services.ValidBookingStatus(status) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown booking status: "+status, ctx)
			return
		}
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "bookings": bookings})
}

// GetBooking returns a single booking owned by the authenticated client.
func GetBooking(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "User not authenticated", ctx)
		return
	}

	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID", ctx)
		return
	}

	var booking models.Booking
	result := storage.DB.
		Preload("Service").Preload("Branch").Preload("Staff").
		Where("id = ? AND client_id = ?", id, userID).
		Limit(1).Find(&booking)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	ctx.JSON(booking)
}

// CancelBooking lets a client cancel their own booking. Cancellation is a
// status transition, never a delete, and is only legal from pending or
// confirmed.
func CancelBooking(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "User not authenticated", ctx)
		return
	}

	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID", ctx)
		return
	}

	var booking models.Booking
	result := storage.DB.Where("id = ? AND client_id = ?", id, userID).Limit(1).Find(&booking)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	updated, err := services.UpdateBookingStatus(booking.ID, models.BookingStatusCancelled)
	if err != nil {
		writeStatusUpdateError(err, ctx)
		return
	}

	services.Cache.InvalidateAll()

	go notifyBookingStatus(*updated)

	ctx.JSON(updated)
}

// GetBookingSlots returns the candidate appointment times for a day.
// Purely computed; no branch or date context changes the window today.
func GetBookingSlots(ctx iris.Context) {
	ctx.JSON(iris.Map{"slots": services.BookingSlots()})
}

// writeStatusUpdateError maps the booking service's error taxonomy onto HTTP.
// Unknown statuses are the caller's mistake (400), illegal transitions are a
// state conflict (409).
func writeStatusUpdateError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.CreateError(iris.StatusConflict, "Invalid Transition", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

func notifyNewBooking(booking models.Booking) {
	var client models.User
	var service models.Service
	storage.DB.Select("id, first_name, last_name").First(&client, booking.ClientID)
	storage.DB.Select("id, name").First(&service, booking.ServiceID)

	ns := services.NewNotificationService()
	ns.SendNewBookingNotificationToManagers(booking, client.FirstName+" "+client.LastName, service.Name)
}

func notifyBookingStatus(booking models.Booking) {
	var service models.Service
	storage.DB.Select("id, name").First(&service, booking.ServiceID)

	ns := services.NewNotificationService()
	ns.SendBookingStatusNotification(booking, service.Name)
}

type CreateBookingInput struct {
	ServiceID uint   `json:"serviceID" validate:"required"`
	BranchID  uint   `json:"branchID" validate:"required"`
	StaffID   *uint  `json:"staffID"`
	StartAt   string `json:"startAt" validate:"required"`
	Notes     string `json:"notes"`
}
