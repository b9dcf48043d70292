package routes

import (
	"errors"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

var errNoOrganization = errors.New("user does not belong to an organization")

// GetCurrentOrganization returns the caller's tenant with branches and the
// active subscription.
func GetCurrentOrganization(ctx iris.Context) {
	orgID, orgErr := callerOrganizationID(ctx)
	if orgErr != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "You do not belong to an organization yet.", ctx)
		return
	}

	var org models.Organization
	result := storage.DB.
		Preload("Branches").
		Preload("Subscriptions", "status = ?", "active").
		Limit(1).Find(&org, orgID)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(org)
}

// CreateOrganization provisions a new tenant. The caller becomes its owner and
// is promoted to admin, and a starter subscription starts immediately.
func CreateOrganization(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "User not authenticated", ctx)
		return
	}

	var input OrganizationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if user.OrganizationID != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "You already belong to an organization.", ctx)
		return
	}

	var org models.Organization
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		org = models.Organization{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Address: input.Address,
			City:    input.City,
			Country: input.Country,
			OwnerID: userID,
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		subscription := models.Subscription{
			OrganizationID: org.ID,
			Plan:           "starter",
			StartedAt:      time.Now(),
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"organization_id": org.ID,
			"role":            "admin",
		}).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "organization.create", "organization", org.ID, nil, org)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(org)
}

// UpdateOrganization patches tenant details. Owner or super_admin only.
func UpdateOrganization(ctx iris.Context) {
	userID, _ := ctx.Values().Get("userID").(uint)

	orgID, orgErr := callerOrganizationID(ctx)
	if orgErr != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "You do not belong to an organization yet.", ctx)
		return
	}

	var org models.Organization
	result := storage.DB.Limit(1).Find(&org, orgID)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var user models.User
	storage.DB.First(&user, userID)
	if org.OwnerID != userID && user.Role != "super_admin" {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Only the owner can update the organization.", ctx)
		return
	}

	var input OrganizationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := org

	if input.Name != "" {
		org.Name = input.Name
	}
	if input.Email != "" {
		org.Email = input.Email
	}
	if input.Phone != "" {
		org.Phone = input.Phone
	}
	if input.Address != "" {
		org.Address = input.Address
	}
	if input.City != "" {
		org.City = input.City
	}
	if input.Country != "" {
		org.Country = input.Country
	}

	if err := storage.DB.Save(&org).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "organization.update", "organization", org.ID, before, org)

	ctx.JSON(org)
}

// SwitchOrganization repoints the caller's active tenant. Super admin only;
// used by platform support to operate inside a customer's salon.
func SwitchOrganization(ctx iris.Context) {
	userID, ok := ctx.Values().Get("userID").(uint)
	if !ok {
		claims := jsonWT.Get(ctx).(*utils.AccessToken)
		userID = claims.ID
	}

	var input SwitchOrganizationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var org models.Organization
	result := storage.DB.Limit(1).Find(&org, input.OrganizationID)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Organization not found", ctx)
		return
	}

	if err := storage.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("organization_id", org.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "organization.switch", "organization", org.ID, nil, iris.Map{"userID": userID})

	ctx.JSON(org)
}

// ListOrganizations is the platform-level tenant listing. Super admin only.
func ListOrganizations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Organization{})
	if status := ctx.URLParamDefault("status", ""); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orgs []models.Organization
	err := query.
		Preload("Owner").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orgs).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, orgs, page, perPage, total)
}

// RecordPayment appends a payment ledger entry for a subscription charge.
// Processing happens outside this server; only the outcome lands here.
func RecordPayment(ctx iris.Context) {
	orgID, orgErr := callerOrganizationID(ctx)
	if orgErr != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "You do not belong to an organization yet.", ctx)
		return
	}

	var input PaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	payment := models.Payment{
		OrganizationID: orgID,
		SubscriptionID: input.SubscriptionID,
		Amount:         input.Amount,
		Currency:       input.Currency,
		Method:         input.Method,
		Status:         input.Status,
		Reference:      input.Reference,
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	if payment.Status == "" {
		payment.Status = "pending"
	}

	if err := storage.DB.Create(&payment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "payment.record", "payment", payment.ID, nil, payment)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(payment)
}

type OrganizationInput struct {
	Name    string `json:"name" validate:"required,max=256"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type SwitchOrganizationInput struct {
	OrganizationID uint `json:"organizationID" validate:"required"`
}

type PaymentInput struct {
	SubscriptionID *uint   `json:"subscriptionID"`
	Amount         float64 `json:"amount" validate:"required,min=0"`
	Currency       string  `json:"currency"`
	Method         string  `json:"method"`
	Status         string  `json:"status"`
	Reference      string  `json:"reference"`
}
