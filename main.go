package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Allain-afk/GlamQueue-sub000/routes"
	"github.com/Allain-afk/GlamQueue-sub000/storage"
	"github.com/Allain-afk/GlamQueue-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint - CRITICAL for Render
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/register-phone", routes.RegisterPhone)
		user.Post("/login-phone", routes.LoginPhone)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/search", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware, routes.SearchUsers)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
		user.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
		user.Post("/feedback", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateFeedback)
	}

	booking := app.Party("/api/booking")
	{
		booking.Get("/slots", routes.GetBookingSlots)
		booking.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		booking.Get("/mine", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyBookings)
		booking.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetBooking)
		booking.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelBooking)
	}

	branch := app.Party("/api/branch")
	{
		branch.Get("/", routes.GetBranches)
		branch.Get("/{id:uint}", routes.GetBranch)
		branch.Post("/", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.CreateBranch)
		branch.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.UpdateBranch)
		branch.Post("/{id:uint}/rating", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.RateBranch)
	}

	service := app.Party("/api/service")
	{
		service.Get("/", routes.GetServices)
		service.Post("/", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.CreateService)
		service.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.UpdateService)
		service.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.DeactivateService)
	}

	staff := app.Party("/api/staff")
	{
		staff.Get("/", routes.GetStaff)
		staff.Post("/", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.CreateStaffMember)
		staff.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.UpdateStaffMember)
		staff.Post("/{id:uint}/availability", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware, routes.RotateStaffAvailability)
	}

	organization := app.Party("/api/organization")
	{
		organization.Get("/current", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetCurrentOrganization)
		organization.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateOrganization)
		organization.Patch("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateOrganization)
		organization.Post("/switch", accessTokenVerifierMiddleware, utils.SuperAdminOnlyMiddleware, routes.SwitchOrganization)
		organization.Post("/payments", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.RecordPayment)
	}

	campaign := app.Party("/api/campaign", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware)
	{
		campaign.Get("/", routes.GetCampaigns)
		campaign.Post("/", routes.CreateCampaign)
		campaign.Post("/{id:uint}/send", routes.SendCampaign)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", routes.GetMyNotifications)
		notifications.Patch("/{id:uint}/read", routes.MarkNotificationRead)
		notifications.Post("/read-all", routes.MarkAllNotificationsRead)
	}

	upload := app.Party("/api/upload")
	{
		upload.Post("/image", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware, routes.UploadImage)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware)
	{
		admin.Get("/stats", routes.GetDashboardStats)
		admin.Get("/bookings", routes.AdminListBookings)
		admin.Get("/bookings/{id:uint}", routes.AdminGetBooking)
		admin.Patch("/bookings/{id:uint}/status", routes.AdminUpdateBookingStatus)
		admin.Post("/bookings/{id:uint}/cancel", routes.AdminCancelBooking)
		admin.Get("/clients", routes.GetClients)
		admin.Get("/clients/{id:uint}", routes.GetClient)
		admin.Put("/clients/{id:uint}/profile", routes.UpsertClientProfile)
		admin.Get("/users", utils.AdminOnlyMiddleware, routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", utils.AdminOnlyMiddleware, routes.AdminUpdateUserRole)
		admin.Delete("/users/{id:uint}", utils.SuperAdminOnlyMiddleware, routes.AdminDeactivateUser)
		admin.Get("/audit", utils.AdminOnlyMiddleware, routes.AdminListAuditLogs)
		admin.Get("/organizations", utils.SuperAdminOnlyMiddleware, routes.ListOrganizations)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	// Start server
	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
