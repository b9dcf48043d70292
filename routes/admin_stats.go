package routes

import (
	"log"
	"strconv"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/services"
	"github.com/Allain-afk/GlamQueue-sub000/storage"

	"github.com/kataras/iris/v12"
)

const (
	dashboardTopN        = 5
	dashboardTrendMonths = 6
)

// GetDashboardStats serves the admin dashboard aggregate. Results are cached
// per (category, params) for services.DefaultCacheTTL; ?refresh=true drops the
// whole cache first so every card refetches together. The dashboard never
// errors: if aggregation fails it serves zeroed stats and logs the cause.
func GetDashboardStats(ctx iris.Context) {
	branchID := ctx.URLParamDefault("branchID", "")
	refresh, _ := strconv.ParseBool(ctx.URLParamDefault("refresh", "false"))

	if refresh {
		services.Cache.InvalidateAll()
	}

	key := services.CacheKey("dashboard_stats", "branch="+branchID)
	value, err := services.Cache.GetOrFetch(key, services.DefaultCacheTTL, func() (interface{}, error) {
		return computeDashboardStats(branchID, time.Now())
	})
	if err != nil {
		log.Printf("⚠️ Dashboard aggregation failed, serving empty stats: %v", err)
		ctx.JSON(iris.Map{"success": true, "stats": services.EmptyDashboardStats(), "degraded": true})
		return
	}

	ctx.JSON(iris.Map{"success": true, "stats": value})
}

// computeDashboardStats loads the booking window once and derives every card
// from it in memory.
func computeDashboardStats(branchID string, now time.Time) (services.DashboardStats, error) {
	// Everything the dashboard shows lives inside the trailing trend window.
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(dashboardTrendMonths - 1), 0)

	query := storage.DB.Where("start_at >= ? OR created_at >= ?", windowStart, now.Add(-services.ActiveClientWindow))
	if branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return services.EmptyDashboardStats(), err
	}

	var allServices []models.Service
	if err := storage.DB.Find(&allServices).Error; err != nil {
		return services.EmptyDashboardStats(), err
	}

	priceByService := make(map[uint]float64, len(allServices))
	nameByService := make(map[uint]string, len(allServices))
	for _, s := range allServices {
		priceByService[s.ID] = s.Price
		nameByService[s.ID] = s.Name
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	var currentMonth, previousMonth []models.Booking
	var totalBookings, pendingBookings int
	for _, b := range bookings {
		if !b.StartAt.Before(monthStart) {
			currentMonth = append(currentMonth, b)
			totalBookings++
			if b.Status == models.BookingStatusPending {
				pendingBookings++
			}
		} else if !b.StartAt.Before(prevMonthStart) {
			previousMonth = append(previousMonth, b)
		}
	}

	currentRevenue := services.Revenue(currentMonth, priceByService)
	previousRevenue := services.Revenue(previousMonth, priceByService)

	return services.DashboardStats{
		Revenue:         currentRevenue,
		RevenueChange:   services.RevenueChange(previousRevenue, currentRevenue),
		TotalBookings:   totalBookings,
		PendingBookings: pendingBookings,
		ActiveClients:   services.ActiveClients(bookings, now),
		PopularServices: services.PopularServices(bookings, nameByService, dashboardTopN),
		PeakHours:       services.PeakHours(bookings, dashboardTopN),
		MonthlyTrend:    services.MonthlyTrend(bookings, priceByService, now, dashboardTrendMonths),
	}, nil
}
