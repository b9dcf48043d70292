package services

import (
	"math"
	"sort"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
)

// Client loyalty tiers, derived from completed-visit count. The thresholds are
// a step function: 26+ visits Platinum, 11+ Gold, 6+ Silver, everything else
// Bronze. Tier is recomputed on every read and never persisted.
const (
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// ActiveClientWindow is the trailing window used for the active-clients count.
const ActiveClientWindow = 30 * 24 * time.Hour

type ServiceCount struct {
	ServiceID uint   `json:"serviceID"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"` // 0-23, branch-local
	Count int `json:"count"`
}

type MonthCount struct {
	Month   string  `json:"month"` // "2024-06"
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats is the payload behind the admin dashboard. Slices are always
// non-nil so the dashboard never has to guard against null.
type DashboardStats struct {
	Revenue         float64        `json:"revenue"`
	RevenueChange   int            `json:"revenueChange"`
	TotalBookings   int            `json:"totalBookings"`
	PendingBookings int            `json:"pendingBookings"`
	ActiveClients   int            `json:"activeClients"`
	PopularServices []ServiceCount `json:"popularServices"`
	PeakHours       []HourCount    `json:"peakHours"`
	MonthlyTrend    []MonthCount   `json:"monthlyTrend"`
}

// EmptyDashboardStats is what the dashboard gets when aggregation cannot run:
// zeroes and empty arrays, never an error. The dashboard must never crash.
func EmptyDashboardStats() DashboardStats {
	return DashboardStats{
		PopularServices: []ServiceCount{},
		PeakHours:       []HourCount{},
		MonthlyTrend:    []MonthCount{},
	}
}

// Revenue sums the service price of completed bookings. Any other status
// contributes zero.
func Revenue(bookings []models.Booking, priceByService map[uint]float64) float64 {
	var total float64
	for _, b := range bookings {
		if b.Status != models.BookingStatusCompleted {
			continue
		}
		total += priceByService[b.ServiceID]
	}
	return total
}

// RevenueChange returns the percent change from previous to current, rounded
// to the nearest integer. By convention 0 -> 0 yields 0 and 0 -> positive
// yields 100; this mirrors how the dashboard has always displayed a first
// period with no baseline, it is not a mathematical identity.
func RevenueChange(previous, current float64) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round((current - previous) / previous * 100))
}

// ActiveClients counts distinct clients with at least one booking created in
// the trailing 30-day window ending at now.
func ActiveClients(bookings []models.Booking, now time.Time) int {
	cutoff := now.Add(-ActiveClientWindow)
	seen := make(map[uint]bool)
	for _, b := range bookings {
		if b.CreatedAt.Before(cutoff) || b.CreatedAt.After(now) {
			continue
		}
		seen[b.ClientID] = true
	}
	return len(seen)
}

// ClientTier classifies a client by completed-visit count.
func ClientTier(completedVisits int) string {
	switch {
	case completedVisits >= 26:
		return TierPlatinum
	case completedVisits >= 11:
		return TierGold
	case completedVisits >= 6:
		return TierSilver
	default:
		return TierBronze
	}
}

// TierRank orders tiers Bronze < Silver < Gold < Platinum.
func TierRank(tier string) int {
	switch tier {
	case TierPlatinum:
		return 3
	case TierGold:
		return 2
	case TierSilver:
		return 1
	default:
		return 0
	}
}

// PopularServices returns the top n services by completed-booking count,
// sorted descending. Ties break by name so the output is stable.
func PopularServices(bookings []models.Booking, nameByService map[uint]string, n int) []ServiceCount {
	counts := make(map[uint]int)
	for _, b := range bookings {
		if b.Status != models.BookingStatusCompleted {
			continue
		}
		counts[b.ServiceID]++
	}

	out := make([]ServiceCount, 0, len(counts))
	for id, count := range counts {
		out = append(out, ServiceCount{ServiceID: id, Name: nameByService[id], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// PeakHours returns the top n hours of day by completed-booking count.
func PeakHours(bookings []models.Booking, n int) []HourCount {
	counts := make(map[int]int)
	for _, b := range bookings {
		if b.Status != models.BookingStatusCompleted {
			continue
		}
		counts[b.StartAt.Hour()]++
	}

	out := make([]HourCount, 0, len(counts))
	for hour, count := range counts {
		out = append(out, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hour < out[j].Hour
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlyTrend buckets completed bookings into the trailing `months` calendar
// months ending at now, oldest first. Months with no bookings still appear
// with zero counts.
func MonthlyTrend(bookings []models.Booking, priceByService map[uint]float64, now time.Time, months int) []MonthCount {
	if months <= 0 {
		return []MonthCount{}
	}

	type bucket struct {
		count   int
		revenue float64
	}
	buckets := make(map[string]*bucket, months)

	// Anchor to the first of the month so month arithmetic never normalizes
	// a short month into its neighbor.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := make([]MonthCount, 0, months)
	for i := months - 1; i >= 0; i-- {
		key := anchor.AddDate(0, -i, 0).Format("2006-01")
		buckets[key] = &bucket{}
		out = append(out, MonthCount{Month: key})
	}

	for _, b := range bookings {
		if b.Status != models.BookingStatusCompleted {
			continue
		}
		key := b.StartAt.Format("2006-01")
		if bk, ok := buckets[key]; ok {
			bk.count++
			bk.revenue += priceByService[b.ServiceID]
		}
	}

	for i := range out {
		bk := buckets[out[i].Month]
		out[i].Count = bk.count
		out[i].Revenue = bk.revenue
	}
	return out
}
