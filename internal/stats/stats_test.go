package stats_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ucielsola/trackit/internal/models"
	"github.com/ucielsola/trackit/internal/stats"
	"github.com/ucielsola/trackit/internal/types"
)

func rate(v float64) *float64 {
	return &v
}

func testClient() models.Client {
	return models.Client{
		Name:   "Acme",
		UserID: "user-1",
		Projects: []models.Project{
			{
				Name:       "Website",
				HourlyRate: rate(50),
				Entries: []models.Entry{
					{DurationMinutes: 60, Status: types.EntryStatusBillable},
					{DurationMinutes: 30, Status: types.EntryStatusPending},
				},
			},
			{
				Name:       "Internal",
				HourlyRate: rate(0),
				Entries: []models.Entry{
					{DurationMinutes: 120, Status: types.EntryStatusPaid},
				},
			},
		},
	}
}

func TestBuildClientStats(t *testing.T) {
	result := stats.BuildClientStats(testClient(), true)

	require.Equal(t, 2, result.ProjectCount)
	require.NotNil(t, result.TotalHours)
	require.NotNil(t, result.TotalRevenue)

	// Pending entry excluded: 60min + 120min = 3h, revenue only from
	// the rated project.
	require.Equal(t, 3.0, *result.TotalHours)
	require.Equal(t, 50.0, *result.TotalRevenue)
}

func TestBuildClientStatsCountOnly(t *testing.T) {
	result := stats.BuildClientStats(testClient(), false)

	require.Equal(t, 2, result.ProjectCount)
	require.Nil(t, result.TotalHours)
	require.Nil(t, result.TotalRevenue)
}

func TestBuildProjectStats(t *testing.T) {
	client := testClient()

	website := stats.BuildProjectStats(client.Projects[0])
	require.Equal(t, 1.0, *website.Hours)
	require.Equal(t, 50.0, *website.Revenue)

	internal := stats.BuildProjectStats(client.Projects[1])
	require.Equal(t, 2.0, *internal.Hours)
	require.Equal(t, 0.0, *internal.Revenue)
}

func TestBuildProjectStatsNilRate(t *testing.T) {
	project := models.Project{
		Name: "Unrated",
		Entries: []models.Entry{
			{DurationMinutes: 90, Status: types.EntryStatusBillable},
		},
	}

	result := stats.BuildProjectStats(project)

	require.Equal(t, 1.5, *result.Hours)
	require.Equal(t, 0.0, *result.Revenue)
}

func TestBillableMinutes(t *testing.T) {
	entries := []models.Entry{
		{DurationMinutes: 10, Status: types.EntryStatusBillable},
		{DurationMinutes: 20, Status: types.EntryStatusPaid},
		{DurationMinutes: 40, Status: types.EntryStatusPending},
		{DurationMinutes: 80, Status: types.EntryStatusNonBillable},
	}

	require.Equal(t, 30, stats.BillableMinutes(entries))
}

func TestRoundCurrency(t *testing.T) {
	require.Equal(t, 0.01, stats.RoundCurrency(0.005))
	require.Equal(t, -0.01, stats.RoundCurrency(-0.005))
	require.Equal(t, 33.33, stats.RoundCurrency(100.0/3))
	require.Equal(t, 2.0, stats.RoundCurrency(2))
}

func TestBuildClientStatsRoundsTotals(t *testing.T) {
	client := models.Client{
		Name: "Rounding",
		Projects: []models.Project{
			{
				HourlyRate: rate(10),
				Entries: []models.Entry{
					// 10 minutes = 0.1666...h, revenue 1.666...
					{DurationMinutes: 10, Status: types.EntryStatusBillable},
				},
			},
		},
	}

	result := stats.BuildClientStats(client, true)

	require.Equal(t, 0.17, *result.TotalHours)
	require.Equal(t, 1.67, *result.TotalRevenue)
}

func TestSortClientsByName(t *testing.T) {
	clients := []stats.ClientWithStats{
		{ID: 1, Name: "delta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "charlie"},
	}

	stats.SortClients(clients, stats.SortByName, stats.OrderAsc)

	require.Equal(t, []uint{2, 3, 1}, ids(clients))

	stats.SortClients(clients, stats.SortByName, stats.OrderDesc)

	require.Equal(t, []uint{1, 3, 2}, ids(clients))
}

func TestSortClientsByProjectCountStable(t *testing.T) {
	clients := []stats.ClientWithStats{
		{ID: 1, Name: "a", ProjectCount: 2},
		{ID: 2, Name: "b", ProjectCount: 5},
		{ID: 3, Name: "c", ProjectCount: 2},
		{ID: 4, Name: "d", ProjectCount: 5},
	}

	stats.SortClients(clients, stats.SortByProjectCount, stats.OrderDesc)

	// Tied counts keep their original relative order.
	require.Equal(t, []uint{2, 4, 1, 3}, ids(clients))

	stats.SortClients(clients, stats.SortByProjectCount, stats.OrderAsc)

	require.Equal(t, []uint{2, 4}, ids(clients)[2:])
	require.Equal(t, []uint{1, 3}, ids(clients)[:2])
}

func TestBuildClientsStatsPreservesOrder(t *testing.T) {
	clients := []models.Client{
		{Name: "z"},
		{Name: "a"},
	}

	results := stats.BuildClientsStats(clients, false)

	require.Len(t, results, 2)
	require.Equal(t, "z", results[0].Name)
	require.Equal(t, "a", results[1].Name)
}

func TestSortProjectsByName(t *testing.T) {
	projects := []stats.ProjectWithStats{
		{ID: 1, Name: "beta"},
		{ID: 2, Name: "Alpha"},
	}

	stats.SortProjects(projects, stats.SortByName, stats.OrderAsc)

	require.Equal(t, uint(2), projects[0].ID)
	require.Equal(t, uint(1), projects[1].ID)
}

func ids(clients []stats.ClientWithStats) []uint {
	out := make([]uint, 0, len(clients))

	for _, c := range clients {
		out = append(out, c.ID)
	}

	return out
}
