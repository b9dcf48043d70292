package routes

import (
	"fmt"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/kataras/iris/v12"
)

// UploadImage accepts a base64 image and returns the hosted URL. Used for
// branch photos, staff portraits and avatars.
func UploadImage(ctx iris.Context) {
	userID, _ := ctx.Values().Get("userID").(uint)

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	publicID := fmt.Sprintf("glamqueue/%d_%d", userID, time.Now().UnixNano())
	uploaded := storage.UploadBase64Image(input.Image, publicID)
	if uploaded["url"] == "" {
		utils.CreateError(iris.StatusBadGateway, "Upload Failed", "The image could not be uploaded.", ctx)
		return
	}

	ctx.JSON(uploaded)
}

type UploadImageInput struct {
	Image string `json:"image" validate:"required"`
}
