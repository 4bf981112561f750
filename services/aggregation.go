package services

import (
	"fmt"
	"math"

	"kpidashboard/models"
)

// The dashboard aggregations below are pure reads. They never re-clamp or
// re-classify: they work on the values as stored.

// RoundHalfUp rounds v to the given number of decimal places, halves away
// from zero.
func RoundHalfUp(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// AnnualTrend averages completion per month of year. It always returns twelve
// entries, January first; an empty month reports 0.
func AnnualTrend(kpis []models.KPI, year int) []models.MonthlyStat {
	var totals [12]float64
	var counts [12]int

	for _, k := range kpis {
		if k.Year != year || k.Month < 1 || k.Month > 12 {
			continue
		}
		totals[k.Month-1] += k.Completion
		counts[k.Month-1]++
	}

	stats := make([]models.MonthlyStat, 12)
	for i := range stats {
		stats[i] = models.MonthlyStat{Month: fmt.Sprintf("T%d", i+1), Count: counts[i]}
		if counts[i] > 0 {
			stats[i].Completion = RoundHalfUp(totals[i]/float64(counts[i]), 2)
		}
	}
	return stats
}

func MonthlyKPIs(kpis []models.KPI, year, month int) []models.KPI {
	out := make([]models.KPI, 0)
	for _, k := range kpis {
		if k.InPeriod(year, month) {
			out = append(out, k)
		}
	}
	return out
}

// TeamFilter keeps the KPIs whose assignee works in department team. An empty
// team keeps everything; a KPI with an unknown assignee never matches a team.
func TeamFilter(kpis []models.KPI, employees []models.Employee, team string) []models.KPI {
	if team == "" {
		return kpis
	}

	members := make(map[string]struct{})
	for _, e := range employees {
		if e.Department == team {
			members[e.ID] = struct{}{}
		}
	}

	out := make([]models.KPI, 0)
	for _, k := range kpis {
		if _, ok := members[k.AssigneeID]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Compare groups the KPIs of one month by assignee name or by assignee
// department and averages each group. Groups keep the order in which they
// first appear; KPIs whose assignee cannot be resolved are dropped.
func Compare(kpis []models.KPI, employees []models.Employee, year, month int, mode models.ComparisonMode, team string) []models.ComparisonEntry {
	byID := indexEmployees(employees)
	filtered := TeamFilter(MonthlyKPIs(kpis, year, month), employees, team)

	type group struct {
		total float64
		count int
	}
	groups := make(map[string]*group)
	var order []string

	for _, k := range filtered {
		e, ok := byID[k.AssigneeID]
		if !ok {
			continue
		}

		key := e.Name
		if mode == models.CompareByTeam {
			key = e.Department
		}

		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.total += k.Completion
		g.count++
	}

	entries := make([]models.ComparisonEntry, 0, len(order))
	for _, key := range order {
		g := groups[key]
		entries = append(entries, models.ComparisonEntry{
			Name:       key,
			Completion: RoundHalfUp(g.total/float64(g.count), 2),
		})
	}
	return entries
}

// StatusDistribution counts the KPIs of one month per evaluation result. All
// four results are present, zero counts included.
func StatusDistribution(kpis []models.KPI, employees []models.Employee, year, month int, team string) []models.StatusCount {
	counts := make(map[models.EvaluationResult]int)
	for _, k := range TeamFilter(MonthlyKPIs(kpis, year, month), employees, team) {
		counts[k.Result]++
	}

	results := models.EvaluationResults()
	out := make([]models.StatusCount, 0, len(results))
	for _, r := range results {
		out = append(out, models.StatusCount{Name: r, Label: r.Label(), Value: counts[r]})
	}
	return out
}

// Headline summarises one month across the whole company: KPIs with dangling
// assignees are still counted.
func Headline(kpis []models.KPI, year, month int) models.HeadlineStats {
	monthly := MonthlyKPIs(kpis, year, month)

	stats := models.HeadlineStats{
		Year:              year,
		Month:             month,
		TotalKPIs:         len(monthly),
		AverageCompletion: "0",
	}

	var total float64
	for _, k := range monthly {
		if k.Result.IsAchieved() {
			stats.AchievedKPIs++
		}
		total += k.Completion
	}
	if len(monthly) > 0 {
		stats.AverageCompletion = fmt.Sprintf("%.2f", RoundHalfUp(total/float64(len(monthly)), 2))
	}
	return stats
}

func indexEmployees(employees []models.Employee) map[string]models.Employee {
	byID := make(map[string]models.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	return byID
}
