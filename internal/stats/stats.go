// Package stats computes hour and revenue rollups over the
// Client -> Project -> Entry graph. Everything here is a pure function
// of its input; nothing is cached and inputs are never mutated.
package stats

import (
	"math"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ucielsola/trackit/internal/models"
	"github.com/ucielsola/trackit/internal/types"
)

const (
	SortByName         = "name"
	SortByProjectCount = "project_count"
	SortByCreatedAt    = "created_at"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type ClientWithStats struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       string    `json:"user_id"`
	ProjectCount int       `json:"project_count"`
	TotalHours   *float64  `json:"total_hours,omitempty"`
	TotalRevenue *float64  `json:"total_revenue,omitempty"`
}

type ProjectWithStats struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id"`
	ClientID   *uint     `json:"client_id"`
	HourlyRate *float64  `json:"hourly_rate"`
	Hours      *float64  `json:"total_hours,omitempty"`
	Revenue    *float64  `json:"total_revenue,omitempty"`
}

// RoundCurrency rounds to two decimal places, half away from zero.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// BillableMinutes sums entry durations that count toward revenue
// (billable or paid status).
func BillableMinutes(entries []models.Entry) int {
	minutes := 0

	for _, entry := range entries {
		if types.IsBillableStatus(entry.Status) {
			minutes += entry.DurationMinutes
		}
	}

	return minutes
}

// projectHours returns unrounded billable hours for a project.
func projectHours(project models.Project) float64 {
	return float64(BillableMinutes(project.Entries)) / 60
}

// BuildProjectStats augments a project with its rounded hours and
// revenue. A nil hourly rate counts as zero.
func BuildProjectStats(project models.Project) ProjectWithStats {
	hours := projectHours(project)

	rate := 0.0

	if project.HourlyRate != nil {
		rate = *project.HourlyRate
	}

	roundedHours := RoundCurrency(hours)
	revenue := RoundCurrency(hours * rate)

	return ProjectWithStats{
		ID:         project.ID,
		Name:       project.Name,
		CreatedAt:  project.CreatedAt,
		UserID:     project.UserID,
		ClientID:   project.ClientID,
		HourlyRate: project.HourlyRate,
		Hours:      &roundedHours,
		Revenue:    &revenue,
	}
}

// BuildClientStats reduces a client and its preloaded projects into a
// stats record. With includeStats false only the project count is
// produced (count-only shape); with includeStats true hours and
// revenue totals are summed over projects before rounding, so the
// client total is not a sum of already-rounded project values.
func BuildClientStats(client models.Client, includeStats bool) ClientWithStats {
	result := ClientWithStats{
		ID:           client.ID,
		Name:         client.Name,
		CreatedAt:    client.CreatedAt,
		UserID:       client.UserID,
		ProjectCount: len(client.Projects),
	}

	if !includeStats {
		return result
	}

	totalHours := 0.0
	totalRevenue := 0.0

	for _, project := range client.Projects {
		hours := projectHours(project)

		rate := 0.0

		if project.HourlyRate != nil {
			rate = *project.HourlyRate
		}

		totalHours += hours
		totalRevenue += hours * rate
	}

	roundedHours := RoundCurrency(totalHours)
	roundedRevenue := RoundCurrency(totalRevenue)

	result.TotalHours = &roundedHours
	result.TotalRevenue = &roundedRevenue

	return result
}

// BuildClientsStats maps BuildClientStats over a client collection,
// preserving input order.
func BuildClientsStats(clients []models.Client, includeStats bool) []ClientWithStats {
	results := make([]ClientWithStats, 0, len(clients))

	for _, client := range clients {
		results = append(results, BuildClientStats(client, includeStats))
	}

	return results
}

// nameCollator compares names with the locale-default collation.
var nameCollator = collate.New(language.Und)

// SortClients orders client stats by name or project count. The sort is
// stable: equal keys keep their original relative order.
func SortClients(clients []ClientWithStats, sortBy, order string) {
	desc := order == OrderDesc

	less := func(a, b ClientWithStats) bool {
		return nameCollator.CompareString(a.Name, b.Name) < 0
	}

	if sortBy == SortByProjectCount {
		less = func(a, b ClientWithStats) bool {
			return a.ProjectCount < b.ProjectCount
		}
	}

	sort.SliceStable(clients, func(i, j int) bool {
		if desc {
			return less(clients[j], clients[i])
		}

		return less(clients[i], clients[j])
	})
}

// SortProjects orders project stats by name or creation time, stable.
func SortProjects(projects []ProjectWithStats, sortBy, order string) {
	desc := order == OrderDesc

	less := func(a, b ProjectWithStats) bool {
		return nameCollator.CompareString(a.Name, b.Name) < 0
	}

	if sortBy == SortByCreatedAt {
		less = func(a, b ProjectWithStats) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if desc {
			return less(projects[j], projects[i])
		}

		return less(projects[i], projects[j])
	})
}
