package routes

import (
	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

var assignableRoles = []string{"client", "staff", "manager", "admin"}

// AdminListUsers returns a paged user listing, filterable by role and search
// term.
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.User{})

	if role := ctx.URLParamDefault("role", ""); role != "" {
		query = query.Where("role = ?", role)
	}
	if q := ctx.URLParamDefault("q", ""); q != "" {
		search := "%" + q + "%"
		query = query.Where(
			"lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(email) LIKE lower(?)",
			search, search, search)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// AdminUpdateUserRole reassigns a user's role. super_admin can never be
// granted over the API, and the change is audited.
func AdminUpdateUserRole(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "Invalid user ID")
		return
	}

	var input UpdateRoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !slices.Contains(assignableRoles, input.Role) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_role", "Role must be one of: client, staff, manager, admin")
		return
	}

	var user models.User
	result := storage.DB.Limit(1).Find(&user, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if user.Role == "super_admin" {
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "super_admin accounts cannot be modified")
		return
	}

	before := user.Role
	if err := storage.DB.Model(&user).Update("role", input.Role).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.role_update", "user", user.ID,
		iris.Map{"role": before}, iris.Map{"role": input.Role})

	user.Role = input.Role
	ctx.JSON(user)
}

// AdminDeactivateUser soft-deletes an account; gorm keeps the row for history.
func AdminDeactivateUser(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "Invalid user ID")
		return
	}

	var user models.User
	result := storage.DB.Limit(1).Find(&user, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if user.Role == "super_admin" {
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "super_admin accounts cannot be modified")
		return
	}

	if err := storage.DB.Delete(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.deactivate", "user", user.ID, iris.Map{"role": user.Role}, nil)

	ctx.StatusCode(iris.StatusNoContent)
}

// AdminListAuditLogs pages through the audit trail, newest first.
func AdminListAuditLogs(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	query := storage.DB.Model(&models.AuditLog{})
	if resourceType := ctx.URLParamDefault("resourceType", ""); resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	query.Count(&total)

	var logs []models.AuditLog
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&logs).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, logs, page, perPage, total)
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required"`
}
