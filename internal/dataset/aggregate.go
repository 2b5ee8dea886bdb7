package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// KPIs are the dashboard's headline counters, computed over the
// filtered view.
type KPIs struct {
	Total         int    `json:"total"`
	OpenedToday   int    `json:"opened_today"`
	ResolvedToday int    `json:"resolved_today"`
	Queue         int    `json:"queue"`
	YearToDate    int    `json:"ytd"`
	Variance      string `json:"variance"`
}

// SeriesPoint is one labeled value of a chart series.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthFlow counts tickets opened in a month split by whether they are
// already closed.
type MonthFlow struct {
	Month  string `json:"month"`
	Open   int    `json:"open"`
	Closed int    `json:"closed"`
}

// Charts bundles every chart series derived from the filtered view.
type Charts struct {
	ByMonth         [12]int       `json:"by_month"`
	MonthlyFlow     []MonthFlow   `json:"monthly_flow"`
	ByState         []SeriesPoint `json:"by_state"`
	ByStatus        []SeriesPoint `json:"by_status"`
	ByProject       []SeriesPoint `json:"by_project"`
	BySquad         []SeriesPoint `json:"by_squad"`
	ByAssignee      []SeriesPoint `json:"by_assignee"`
	ByHour          [24]int       `json:"by_hour"`
	HoursByPriority []SeriesPoint `json:"hours_by_priority"`
	HoursByAssignee []SeriesPoint `json:"hours_by_assignee"`
}

// ComputeKPIs derives the headline counters. Every ratio output is 0
// (never NaN) on an empty view.
func ComputeKPIs(tickets []domain.Ticket, now time.Time) KPIs {
	today := TruncateToDay(now)
	k := KPIs{Total: len(tickets), Variance: "0%"}

	for i := range tickets {
		t := &tickets[i]
		if opened, ok := ParseDate(t.OpenedAt); ok {
			day := TruncateToDay(opened)
			if day.Equal(today) {
				k.OpenedToday++
			}
			if day.Before(today) {
				k.YearToDate++
			}
		}
		if closed, ok := ParseDate(t.ClosedAt); ok && TruncateToDay(closed).Equal(today) {
			k.ResolvedToday++
		}
		if _, ok := QueueStates[t.State]; ok {
			k.Queue++
		}
	}

	if k.Total > 0 {
		variance := float64(k.YearToDate-k.Total) / float64(k.Total) * 100
		k.Variance = fmt.Sprintf("%.0f%%", variance)
	}
	return k
}

// ComputeCharts derives every chart series in one pass-per-series over
// the filtered view. Stateless: recomputed fully on each render.
func ComputeCharts(tickets []domain.Ticket) Charts {
	c := Charts{
		ByState:         countBy(tickets, func(t *domain.Ticket) string { return t.State }, false),
		ByStatus:        countBy(tickets, func(t *domain.Ticket) string { return t.Status }, false),
		ByProject:       countBy(tickets, func(t *domain.Ticket) string { return t.Project }, true),
		BySquad:         countByFolded(tickets, func(t *domain.Ticket) string { return t.Squad }),
		ByAssignee:      countBy(tickets, func(t *domain.Ticket) string { return t.Assignee }, true),
		HoursByPriority: sumHoursBy(tickets, func(t *domain.Ticket) string { return t.Priority }, false),
		HoursByAssignee: sumHoursBy(tickets, func(t *domain.Ticket) string { return t.Assignee }, true),
	}

	flow := map[string]*MonthFlow{}
	for i := range tickets {
		t := &tickets[i]
		opened, ok := ParseDate(t.OpenedAt)
		if !ok {
			continue
		}
		c.ByMonth[int(opened.Month())-1]++
		c.ByHour[opened.Hour()]++

		label := opened.Format("01/2006")
		entry, exists := flow[label]
		if !exists {
			entry = &MonthFlow{Month: label}
			flow[label] = entry
		}
		if t.State == "fechado" {
			entry.Closed++
		} else {
			entry.Open++
		}
	}

	c.MonthlyFlow = make([]MonthFlow, 0, len(flow))
	for _, entry := range flow {
		c.MonthlyFlow = append(c.MonthlyFlow, *entry)
	}
	sort.Slice(c.MonthlyFlow, func(i, j int) bool {
		a, _ := time.Parse("01/2006", c.MonthlyFlow[i].Month)
		b, _ := time.Parse("01/2006", c.MonthlyFlow[j].Month)
		return a.Before(b)
	})
	return c
}

// countBy groups tickets by a key, optionally skipping blank and
// "indefinido" groups, and returns the series sorted by label.
func countBy(tickets []domain.Ticket, key func(*domain.Ticket) string, skipUndefined bool) []SeriesPoint {
	counts := map[string]int{}
	for i := range tickets {
		k := key(&tickets[i])
		if skipUndefined && (k == "" || k == "indefinido") {
			continue
		}
		counts[k]++
	}
	return toSeries(counts)
}

// countByFolded groups with case-insensitive, whitespace-insensitive
// key matching, keeping the first spelling seen as the label.
func countByFolded(tickets []domain.Ticket, key func(*domain.Ticket) string) []SeriesPoint {
	counts := map[string]int{}
	labels := map[string]string{}
	for i := range tickets {
		raw := key(&tickets[i])
		if raw == "" || raw == "indefinido" {
			continue
		}
		folded := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := labels[folded]; !ok {
			labels[folded] = strings.TrimSpace(raw)
		}
		counts[folded]++
	}
	out := make([]SeriesPoint, 0, len(counts))
	for folded, count := range counts {
		out = append(out, SeriesPoint{Label: labels[folded], Value: float64(count)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// sumHoursBy totals the numeric time-spent field per group, treating
// non-numeric values as 0. Zero-sum groups are dropped when dropZero is
// set, matching the assignee hours chart.
func sumHoursBy(tickets []domain.Ticket, key func(*domain.Ticket) string, dropZero bool) []SeriesPoint {
	sums := map[string]float64{}
	for i := range tickets {
		t := &tickets[i]
		k := key(t)
		if dropZero && (k == "" || k == "indefinido") {
			continue
		}
		hours, err := strconv.ParseFloat(strings.TrimSpace(t.TimeSpent), 64)
		if err != nil {
			hours = 0
		}
		sums[k] += hours
	}
	out := make([]SeriesPoint, 0, len(sums))
	for label, total := range sums {
		if dropZero && total <= 0 {
			continue
		}
		out = append(out, SeriesPoint{Label: label, Value: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// DistinctValues returns the sorted distinct non-empty values of one
// column across the dataset, used to build filter dropdowns.
func DistinctValues(tickets []domain.Ticket, key func(*domain.Ticket) string) []string {
	seen := map[string]struct{}{}
	for i := range tickets {
		if v := key(&tickets[i]); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func toSeries(counts map[string]int) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(counts))
	for label, count := range counts {
		out = append(out, SeriesPoint{Label: label, Value: float64(count)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
