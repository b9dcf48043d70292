package routes

import (
	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/services"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// GetServices lists active services, optionally filtered by branch and category.
func GetServices(ctx iris.Context) {
	query := storage.DB.Where("is_active = ?", true)

	if branchID := ctx.URLParamDefault("branchID", ""); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if category := ctx.URLParamDefault("category", ""); category != "" {
		query = query.Where("category = ?", category)
	}

	var list []models.Service
	if err := query.Order("name ASC").Find(&list).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(list)
}

// CreateService adds a treatment to a branch's menu.
func CreateService(ctx iris.Context) {
	var input ServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var branch models.Branch
	result := storage.DB.Limit(1).Find(&branch, input.BranchID)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Branch not found", ctx)
		return
	}

	service := models.Service{
		BranchID:        input.BranchID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Category:        input.Category,
	}
	if service.DurationMinutes == 0 {
		service.DurationMinutes = 30
	}

	if err := storage.DB.Create(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service.create", "service", service.ID, nil, service)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(service)
}

// UpdateService patches a service. Price changes invalidate the dashboard
// cache since revenue figures derive from current prices.
func UpdateService(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid service ID", ctx)
		return
	}

	var service models.Service
	result := storage.DB.Limit(1).Find(&service, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Service not found", ctx)
		return
	}

	var input UpdateServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := service
	priceChanged := false

	if input.Name != "" {
		service.Name = input.Name
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.Price != nil && *input.Price != service.Price {
		service.Price = *input.Price
		priceChanged = true
	}
	if input.DurationMinutes != nil && *input.DurationMinutes > 0 {
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.Category != "" {
		service.Category = input.Category
	}
	if input.IsActive != nil {
		service.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service.update", "service", service.ID, before, service)

	if priceChanged {
		services.Cache.InvalidateAll()
	}

	ctx.JSON(service)
}

// DeactivateService retires a service from the menu without losing history.
func DeactivateService(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid service ID", ctx)
		return
	}

	var service models.Service
	result := storage.DB.Limit(1).Find(&service, id)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Service not found", ctx)
		return
	}

	inactive := false
	if err := storage.DB.Model(&service).Update("is_active", &inactive).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service.deactivate", "service", service.ID, iris.Map{"isActive": true}, iris.Map{"isActive": false})

	ctx.StatusCode(iris.StatusNoContent)
}

type ServiceInput struct {
	BranchID        uint    `json:"branchID" validate:"required"`
	Name            string  `json:"name" validate:"required,max=256"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"required,min=0"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category"`
}

type UpdateServiceInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"durationMinutes"`
	Category        string   `json:"category"`
	IsActive        *bool    `json:"isActive"`
}
