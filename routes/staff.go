package routes

import (
	"encoding/json"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// staffAvailabilityCycle is the rotation order for the availability toggle:
// each tap moves the badge to the next display status.
var staffAvailabilityCycle = []string{"available", "busy", "on_break"}

// GetStaff lists active staff for a branch.
func GetStaff(ctx iris.Context) {
	query := storage.DB.Preload("User").Where("is_active = ?", true)

	if branchID := ctx.URLParamDefault("branchID", ""); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}

	var staff []models.StaffMember
	if err := query.Find(&staff).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(staff)
}

// CreateStaffMember attaches an existing user account to a branch as staff,
// promoting their role when they are still a plain client.
func CreateStaffMember(ctx iris.Context) {
	var input StaffInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	result := storage.DB.Limit(1).Find(&user, input.UserID)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
		return
	}

	member := models.StaffMember{
		UserID:   input.UserID,
		BranchID: input.BranchID,
		Title:    input.Title,
		PhotoURL: input.PhotoURL,
	}
	if input.Specialties != nil {
		marshalled, marshalErr := json.Marshal(input.Specialties)
		if marshalErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		member.Specialties = marshalled
	}

	if err := storage.DB.Create(&member).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if user.Role == "client" || user.Role == "" {
		storage.DB.Model(&user).Update("role", "staff")
	}

	utils.Audit(ctx, "staff.create", "staff_member", member.ID, nil, member)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(member)
}

// RotateStaffAvailability advances a staff member's display status one step
// around the cycle and returns the new value.
func RotateStaffAvailability(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid staff ID", ctx)
		return
	}

	var member models.StaffMember
	result := storage.DB.Limit(1).Find(&member, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Staff member not found", ctx)
		return
	}

	next := staffAvailabilityCycle[0]
	for i, status := range staffAvailabilityCycle {
		if member.Availability == status {
			next = staffAvailabilityCycle[(i+1)%len(staffAvailabilityCycle)]
			break
		}
	}

	if err := storage.DB.Model(&member).Update("availability", next).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"id": member.ID, "availability": next})
}

// UpdateStaffMember patches title, specialties, photo or active flag.
func UpdateStaffMember(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid staff ID", ctx)
		return
	}

	var member models.StaffMember
	result := storage.DB.Limit(1).Find(&member, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Staff member not found", ctx)
		return
	}

	var input UpdateStaffInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := member

	if input.Title != "" {
		member.Title = input.Title
	}
	if input.PhotoURL != "" {
		member.PhotoURL = input.PhotoURL
	}
	if input.IsActive != nil {
		member.IsActive = input.IsActive
	}
	if input.Specialties != nil {
		marshalled, marshalErr := json.Marshal(input.Specialties)
		if marshalErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		member.Specialties = marshalled
	}

	if err := storage.DB.Save(&member).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "staff.update", "staff_member", member.ID, before, member)

	ctx.JSON(member)
}

type StaffInput struct {
	UserID      uint     `json:"userID" validate:"required"`
	BranchID    uint     `json:"branchID" validate:"required"`
	Title       string   `json:"title" validate:"required,max=64"`
	Specialties []string `json:"specialties"`
	PhotoURL    string   `json:"photoURL"`
}

type UpdateStaffInput struct {
	Title       string   `json:"title"`
	Specialties []string `json:"specialties"`
	PhotoURL    string   `json:"photoURL"`
	IsActive    *bool    `json:"isActive"`
}
