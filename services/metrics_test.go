package services

import (
	"testing"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"

	"gorm.io/gorm"
)

func bookingAt(clientID, serviceID uint, status string, startAt time.Time) models.Booking {
	return models.Booking{
		Model:     gorm.Model{CreatedAt: startAt},
		ClientID:  clientID,
		ServiceID: serviceID,
		BranchID:  1,
		StartAt:   startAt,
		Status:    status,
	}
}

func TestRevenueCountsCompletedOnly(t *testing.T) {
	now := time.Now()
	prices := map[uint]float64{1: 350, 2: 1500}

	bookings := []models.Booking{
		bookingAt(1, 1, models.BookingStatusCompleted, now),
		bookingAt(2, 2, models.BookingStatusCompleted, now),
		bookingAt(3, 2, models.BookingStatusPending, now),
		bookingAt(4, 1, models.BookingStatusConfirmed, now),
		bookingAt(5, 1, models.BookingStatusCancelled, now),
	}

	if got := Revenue(bookings, prices); got != 1850 {
		t.Fatalf("expected revenue 1850, got %v", got)
	}
}

func TestRevenueChange(t *testing.T) {
	cases := []struct {
		previous, current float64
		want              int
	}{
		{0, 0, 0},
		{0, 500, 100},
		{1000, 1500, 50},
		{1000, 500, -50},
		{1000, 1000, 0},
		{400, 500, 25},
		{300, 400, 33}, // 33.33 rounds down
		{300, 500, 67}, // 66.67 rounds up
	}
	for _, c := range cases {
		if got := RevenueChange(c.previous, c.current); got != c.want {
			t.Errorf("RevenueChange(%v, %v) = %d, want %d", c.previous, c.current, got, c.want)
		}
	}
}

func TestActiveClientsWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		bookingAt(1, 1, models.BookingStatusCompleted, now.Add(-24*time.Hour)),
		bookingAt(1, 1, models.BookingStatusPending, now.Add(-48*time.Hour)), // same client twice
		bookingAt(2, 1, models.BookingStatusCancelled, now.Add(-29*24*time.Hour)),
		bookingAt(3, 1, models.BookingStatusCompleted, now.Add(-31*24*time.Hour)), // outside window
	}

	if got := ActiveClients(bookings, now); got != 2 {
		t.Fatalf("expected 2 active clients, got %d", got)
	}
}

func TestClientTierThresholds(t *testing.T) {
	cases := []struct {
		visits int
		want   string
	}{
		{0, TierBronze},
		{5, TierBronze},
		{6, TierSilver},
		{10, TierSilver},
		{11, TierGold},
		{25, TierGold},
		{26, TierPlatinum},
		{100, TierPlatinum},
	}
	for _, c := range cases {
		if got := ClientTier(c.visits); got != c.want {
			t.Errorf("ClientTier(%d) = %s, want %s", c.visits, got, c.want)
		}
	}
}

func TestClientTierMonotonic(t *testing.T) {
	prev := TierRank(ClientTier(0))
	for visits := 1; visits <= 50; visits++ {
		cur := TierRank(ClientTier(visits))
		if cur < prev {
			t.Fatalf("tier rank dropped from %d to %d at %d visits", prev, cur, visits)
		}
		prev = cur
	}
}

func TestPopularServicesTopN(t *testing.T) {
	now := time.Now()
	names := map[uint]string{1: "Haircut", 2: "Manicure", 3: "Massage"}

	var bookings []models.Booking
	for i := 0; i < 5; i++ {
		bookings = append(bookings, bookingAt(uint(i), 1, models.BookingStatusCompleted, now))
	}
	for i := 0; i < 3; i++ {
		bookings = append(bookings, bookingAt(uint(i), 2, models.BookingStatusCompleted, now))
	}
	bookings = append(bookings, bookingAt(1, 3, models.BookingStatusCompleted, now))
	// Pending bookings never count
	bookings = append(bookings, bookingAt(1, 3, models.BookingStatusPending, now))

	top := PopularServices(bookings, names, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 services, got %d", len(top))
	}
	if top[0].Name != "Haircut" || top[0].Count != 5 {
		t.Errorf("expected Haircut x5 first, got %s x%d", top[0].Name, top[0].Count)
	}
	if top[1].Name != "Manicure" || top[1].Count != 3 {
		t.Errorf("expected Manicure x3 second, got %s x%d", top[1].Name, top[1].Count)
	}
}

func TestPeakHoursOrdering(t *testing.T) {
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	var bookings []models.Booking
	for i := 0; i < 4; i++ {
		bookings = append(bookings, bookingAt(uint(i), 1, models.BookingStatusCompleted, day.Add(14*time.Hour)))
	}
	for i := 0; i < 2; i++ {
		bookings = append(bookings, bookingAt(uint(i), 1, models.BookingStatusCompleted, day.Add(10*time.Hour)))
	}
	bookings = append(bookings, bookingAt(9, 1, models.BookingStatusCompleted, day.Add(16*time.Hour)))

	hours := PeakHours(bookings, 5)
	if len(hours) != 3 {
		t.Fatalf("expected 3 hours, got %d", len(hours))
	}
	if hours[0].Hour != 14 || hours[0].Count != 4 {
		t.Errorf("expected hour 14 x4 first, got %d x%d", hours[0].Hour, hours[0].Count)
	}
	if hours[1].Hour != 10 {
		t.Errorf("expected hour 10 second, got %d", hours[1].Hour)
	}
}

func TestMonthlyTrendZeroFill(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	prices := map[uint]float64{1: 100}

	bookings := []models.Booking{
		bookingAt(1, 1, models.BookingStatusCompleted, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)),
		bookingAt(2, 1, models.BookingStatusCompleted, time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)),
		bookingAt(3, 1, models.BookingStatusPending, time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)),
		// outside the window entirely
		bookingAt(4, 1, models.BookingStatusCompleted, time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)),
	}

	trend := MonthlyTrend(bookings, prices, now, 6)
	if len(trend) != 6 {
		t.Fatalf("expected 6 months, got %d", len(trend))
	}
	if trend[0].Month != "2025-01" {
		t.Errorf("expected oldest month 2025-01, got %s", trend[0].Month)
	}
	if trend[5].Month != "2025-06" {
		t.Errorf("expected newest month 2025-06, got %s", trend[5].Month)
	}

	byMonth := make(map[string]MonthCount)
	for _, m := range trend {
		byMonth[m.Month] = m
	}
	if byMonth["2025-06"].Count != 1 || byMonth["2025-06"].Revenue != 100 {
		t.Errorf("unexpected June bucket: %+v", byMonth["2025-06"])
	}
	if byMonth["2025-04"].Count != 1 {
		t.Errorf("unexpected April bucket: %+v", byMonth["2025-04"])
	}
	// Pending booking contributes nothing
	if byMonth["2025-05"].Count != 0 || byMonth["2025-05"].Revenue != 0 {
		t.Errorf("expected empty May bucket, got %+v", byMonth["2025-05"])
	}
}

func TestMonthlyTrendMonthEndAnchor(t *testing.T) {
	// March 31: naive month subtraction would normalize Feb 31 -> Mar 3 and
	// produce duplicate keys.
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	trend := MonthlyTrend(nil, nil, now, 6)
	if len(trend) != 6 {
		t.Fatalf("expected 6 months, got %d", len(trend))
	}
	seen := make(map[string]bool)
	for _, m := range trend {
		if seen[m.Month] {
			t.Fatalf("duplicate month %s in trend", m.Month)
		}
		seen[m.Month] = true
	}
	if trend[5].Month != "2025-03" || trend[4].Month != "2025-02" {
		t.Errorf("unexpected tail months: %s, %s", trend[4].Month, trend[5].Month)
	}
}

func TestEmptyDashboardStats(t *testing.T) {
	stats := EmptyDashboardStats()

	if stats.Revenue != 0 || stats.TotalBookings != 0 || stats.ActiveClients != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.PopularServices == nil || stats.PeakHours == nil || stats.MonthlyTrend == nil {
		t.Fatal("expected non-nil slices so the dashboard never sees null")
	}
	if len(stats.PopularServices) != 0 || len(stats.PeakHours) != 0 || len(stats.MonthlyTrend) != 0 {
		t.Fatalf("expected empty slices, got %+v", stats)
	}
}
