package routes

import (
	"encoding/json"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GetBranches lists branches, optionally filtered by city or open state.
func GetBranches(ctx iris.Context) {
	query := storage.DB.Preload("Services", "is_active = ?", true)

	if city := ctx.URLParamDefault("city", ""); city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}
	if open := ctx.URLParamDefault("open", ""); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	var branches []models.Branch
	if err := query.Find(&branches).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(branches)
}

// GetBranch returns one branch with its services and staff.
func GetBranch(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid branch ID", ctx)
		return
	}

	var branch models.Branch
	result := storage.DB.
		Preload("Services", "is_active = ?", true).
		Preload("Staff", "is_active = ?", true).
		Preload("Staff.User").
		Limit(1).Find(&branch, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Branch not found", ctx)
		return
	}

	ctx.JSON(branch)
}

// CreateBranch opens a new location under the caller's organization.
func CreateBranch(ctx iris.Context) {
	userID, _ := ctx.Values().Get("userID").(uint)

	var input BranchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil || user.OrganizationID == nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "You must belong to an organization to open a branch.", ctx)
		return
	}

	branch := models.Branch{
		Name:           input.Name,
		Address:        input.Address,
		City:           input.City,
		Phone:          input.Phone,
		OrganizationID: *user.OrganizationID,
	}
	if input.WorkingHours != nil {
		marshalled, marshalErr := json.Marshal(input.WorkingHours)
		if marshalErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		branch.WorkingHours = marshalled
	}

	if err := storage.DB.Create(&branch).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "branch.create", "branch", branch.ID, nil, branch)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(branch)
}

// UpdateBranch patches branch details.
func UpdateBranch(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid branch ID", ctx)
		return
	}

	var branch models.Branch
	result := storage.DB.Limit(1).Find(&branch, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Branch not found", ctx)
		return
	}

	var input BranchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := branch

	if input.Name != "" {
		branch.Name = input.Name
	}
	if input.Address != "" {
		branch.Address = input.Address
	}
	if input.City != "" {
		branch.City = input.City
	}
	if input.Phone != "" {
		branch.Phone = input.Phone
	}
	if input.IsOpen != nil {
		branch.IsOpen = input.IsOpen
	}
	if input.WorkingHours != nil {
		marshalled, marshalErr := json.Marshal(input.WorkingHours)
		if marshalErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		branch.WorkingHours = marshalled
	}

	if err := storage.DB.Save(&branch).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "branch.update", "branch", branch.ID, before, branch)

	ctx.JSON(branch)
}

// RateBranch records a 1-5 star rating against a completed visit and folds it
// into the branch's aggregate.
func RateBranch(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "User not authenticated", ctx)
		return
	}

	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid branch ID", ctx)
		return
	}

	var input RateBranchInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.BookingID != nil {
		var booking models.Booking
		result := storage.DB.Where("id = ? AND client_id = ?", *input.BookingID, userID).Limit(1).Find(&booking)
		if result.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		if result.RowsAffected == 0 {
			utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
			return
		}
		if booking.Status != models.BookingStatusCompleted {
			utils.CreateError(iris.StatusConflict, "Invalid Rating", "Only completed visits can be rated.", ctx)
			return
		}
	}

	rating := models.Rating{
		ClientID:  userID,
		BranchID:  id,
		BookingID: input.BookingID,
		Stars:     input.Stars,
		Comment:   input.Comment,
	}
	if err := storage.DB.Create(&rating).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Fold the new rating into the branch aggregate. Ratings feed no cached
	// dashboard category, so no invalidation is needed here.
	var avg float64
	storage.DB.Model(&models.Rating{}).Where("branch_id = ?", id).
		Select("COALESCE(AVG(stars), 0)").Scan(&avg)
	storage.DB.Model(&models.Branch{}).Where("id = ?", id).Update("rating", avg)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(rating)
}

type BranchInput struct {
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	Phone        string            `json:"phone"`
	IsOpen       *bool             `json:"isOpen"`
	WorkingHours map[string]string `json:"workingHours"`
}

type RateBranchInput struct {
	Stars     int    `json:"stars" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
	BookingID *uint  `json:"bookingID"`
}
