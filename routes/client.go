package routes

import (
	"encoding/json"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/services"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// clientSummary is a client row enriched with booking-derived figures. Tier is
// recomputed from completed visits on every read, never stored.
type clientSummary struct {
	models.User
	Profile     *models.ClientProfile `json:"profile,omitempty"`
	VisitCount  int                   `json:"visitCount"`
	TotalSpent  float64               `json:"totalSpent"`
	Tier        string                `json:"tier"`
	LastVisitAt *time.Time            `json:"lastVisitAt"`
}

// GetClients lists clients with derived visit counts, spend and loyalty tier,
// optionally filtered to one tier.
func GetClients(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	tierFilter := ctx.URLParamDefault("tier", "")

	var clients []models.User
	query := storage.DB.Where("role = ?", "client")
	if err := query.Order("created_at DESC").Find(&clients).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var completed []models.Booking
	if err := storage.DB.
		Where("status = ?", models.BookingStatusCompleted).
		Find(&completed).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var allServices []models.Service
	storage.DB.Find(&allServices)
	priceByService := make(map[uint]float64, len(allServices))
	for _, s := range allServices {
		priceByService[s.ID] = s.Price
	}

	visits := make(map[uint]int)
	spent := make(map[uint]float64)
	lastVisit := make(map[uint]time.Time)
	for _, b := range completed {
		visits[b.ClientID]++
		spent[b.ClientID] += priceByService[b.ServiceID]
		if b.StartAt.After(lastVisit[b.ClientID]) {
			lastVisit[b.ClientID] = b.StartAt
		}
	}

	summaries := make([]clientSummary, 0, len(clients))
	for i := range clients {
		c := clients[i]
		tier := services.ClientTier(visits[c.ID])
		if tierFilter != "" && tier != tierFilter {
			continue
		}
		summary := clientSummary{
			User:       c,
			VisitCount: visits[c.ID],
			TotalSpent: spent[c.ID],
			Tier:       tier,
		}
		if last, ok := lastVisit[c.ID]; ok {
			summary.LastVisitAt = &last
		}
		summaries = append(summaries, summary)
	}

	total := int64(len(summaries))
	start := (page - 1) * perPage
	if start > len(summaries) {
		start = len(summaries)
	}
	end := start + perPage
	if end > len(summaries) {
		end = len(summaries)
	}

	utils.JSONPage(ctx, summaries[start:end], page, perPage, total)
}

// GetClient returns one client with profile and derived figures.
func GetClient(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid client ID", ctx)
		return
	}

	var user models.User
	result := storage.DB.Where("id = ? AND role = ?", id, "client").Limit(1).Find(&user)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Client not found", ctx)
		return
	}

	var profile models.ClientProfile
	profileResult := storage.DB.Where("user_id = ?", id).Limit(1).Find(&profile)

	var completed []models.Booking
	storage.DB.Where("client_id = ? AND status = ?", id, models.BookingStatusCompleted).Find(&completed)

	var allServices []models.Service
	storage.DB.Find(&allServices)
	priceByService := make(map[uint]float64, len(allServices))
	for _, s := range allServices {
		priceByService[s.ID] = s.Price
	}

	summary := clientSummary{
		User:       user,
		VisitCount: len(completed),
		TotalSpent: services.Revenue(completed, priceByService),
		Tier:       services.ClientTier(len(completed)),
	}
	if profileResult.RowsAffected > 0 {
		summary.Profile = &profile
	}
	for _, b := range completed {
		if summary.LastVisitAt == nil || b.StartAt.After(*summary.LastVisitAt) {
			visit := b.StartAt
			summary.LastVisitAt = &visit
		}
	}

	ctx.JSON(summary)
}

// UpsertClientProfile creates or updates the salon-facing notes for a client.
func UpsertClientProfile(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid client ID", ctx)
		return
	}

	var input ClientProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var profile models.ClientProfile
	result := storage.DB.Where("user_id = ?", id).Limit(1).Find(&profile)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	profile.UserID = id
	if input.Birthday != nil {
		profile.Birthday = input.Birthday
	}
	if input.Anniversary != nil {
		profile.Anniversary = input.Anniversary
	}
	if input.Notes != "" {
		profile.Notes = input.Notes
	}
	if input.Preferences != nil {
		marshalled, marshalErr := json.Marshal(input.Preferences)
		if marshalErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		profile.Preferences = marshalled
	}

	if err := storage.DB.Save(&profile).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(profile)
}

type ClientProfileInput struct {
	Birthday    *time.Time `json:"birthday"`
	Anniversary *time.Time `json:"anniversary"`
	Notes       string     `json:"notes"`
	Preferences []string   `json:"preferences"`
}
