package routes

import (
	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/services"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// AdminListBookings returns a paged listing of bookings across the salon,
// filterable by status, branch and day.
func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Booking{})

	if status := ctx.URLParamDefault("status", ""); status != "" {
		if !services.ValidBookingStatus(status) {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_status", "Unknown booking status: "+status)
			return
		}
		query = query.Where("status = ?", status)
	}
	if branchID := ctx.URLParamDefault("branchID", ""); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if date := ctx.URLParamDefault("date", ""); date != "" {
		query = query.Where("DATE(start_at) = ?", date)
	}

	var total int64
	query.Count(&total)

	var bookings []models.Booking
	err := query.
		Preload("Client").Preload("Service").Preload("Branch").Preload("Staff").
		Order("start_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// AdminGetBooking returns one booking with its relations.
func AdminGetBooking(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "Invalid booking ID")
		return
	}

	var booking models.Booking
	result := storage.DB.
		Preload("Client").Preload("Service").Preload("Branch").Preload("Staff").
		Limit(1).Find(&booking, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(booking)
}

// AdminUpdateBookingStatus moves a booking through its lifecycle. Illegal
// transitions are rejected, the change is audited, and the dashboard cache is
// dropped so stats reflect the new state on the next read.
func AdminUpdateBookingStatus(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "Invalid booking ID")
		return
	}

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var before models.Booking
	result := storage.DB.Limit(1).Find(&before, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	updated, err := services.UpdateBookingStatus(id, input.Status)
	if err != nil {
		writeStatusUpdateError(err, ctx)
		return
	}

	utils.Audit(ctx, "booking.status_update", "booking", updated.ID,
		iris.Map{"status": before.Status}, iris.Map{"status": updated.Status})

	services.Cache.InvalidateAll()

	go notifyBookingStatus(*updated)

	ctx.JSON(updated)
}

// AdminCancelBooking cancels on behalf of the salon. Same transition rules as
// the client path apply.
func AdminCancelBooking(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "Invalid booking ID")
		return
	}

	var before models.Booking
	result := storage.DB.Limit(1).Find(&before, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	updated, err := services.UpdateBookingStatus(id, models.BookingStatusCancelled)
	if err != nil {
		writeStatusUpdateError(err, ctx)
		return
	}

	utils.Audit(ctx, "booking.cancel", "booking", updated.ID,
		iris.Map{"status": before.Status}, iris.Map{"status": updated.Status})

	services.Cache.InvalidateAll()

	go notifyBookingStatus(*updated)

	ctx.JSON(updated)
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required"`
}
