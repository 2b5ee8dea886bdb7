package dataset

import (
	"testing"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func TestComputeKPIsEmptyDataset(t *testing.T) {
	k := ComputeKPIs(nil, time.Now())

	if k.Total != 0 || k.OpenedToday != 0 || k.ResolvedToday != 0 || k.YearToDate != 0 || k.Queue != 0 {
		t.Errorf("empty dataset KPIs = %+v, want all zero", k)
	}
	if k.Variance != "0%" {
		t.Errorf("empty dataset variance = %q, want 0%% (never NaN)", k.Variance)
	}
}

func TestComputeKPIs(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	tickets := []domain.Ticket{
		{ID: "1", OpenedAt: "15/06/2024 08:00:00", State: "aberto"},
		{ID: "2", OpenedAt: "01/01/2024", ClosedAt: "15/06/2024 09:00:00", State: "fechado"},
		{ID: "3", OpenedAt: "10/06/2024", State: "vencido"},
		{ID: "4", OpenedAt: "N/A", State: "pendente"},
	}

	k := ComputeKPIs(tickets, now)

	if k.Total != 4 {
		t.Errorf("total = %d, want 4", k.Total)
	}
	if k.OpenedToday != 1 {
		t.Errorf("opened today = %d, want 1", k.OpenedToday)
	}
	if k.ResolvedToday != 1 {
		t.Errorf("resolved today = %d, want 1", k.ResolvedToday)
	}
	if k.Queue != 2 {
		t.Errorf("queue = %d, want 2 (aberto + vencido)", k.Queue)
	}
	if k.YearToDate != 2 {
		t.Errorf("ytd = %d, want 2 (opened strictly before today)", k.YearToDate)
	}
	if k.Variance != "-50%" {
		t.Errorf("variance = %q, want -50%%", k.Variance)
	}
}

func TestComputeChartsGroupsAndBuckets(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "1", OpenedAt: "15/06/2024 08:30:00", State: "aberto", Status: "Testes", Project: "Portal", Squad: "Web ", Assignee: "ana"},
		{ID: "2", OpenedAt: "20/06/2024 08:10:00", State: "fechado", Status: "Testes", Project: "Portal", Squad: "web", Assignee: "ana"},
		{ID: "3", OpenedAt: "03/01/2024 22:00:00", State: "aberto", Status: "Ajustes", Project: "indefinido", Squad: "SAP", Assignee: "rui"},
		{ID: "4", OpenedAt: "N/A", State: "aberto", Status: "Ajustes", Project: "", Squad: "", Assignee: ""},
	}

	c := ComputeCharts(tickets)

	if c.ByMonth[5] != 2 || c.ByMonth[0] != 1 {
		t.Errorf("by month = %v, want June=2 January=1", c.ByMonth)
	}
	if c.ByHour[8] != 2 || c.ByHour[22] != 1 {
		t.Errorf("by hour = %v, want 08h=2 22h=1", c.ByHour)
	}

	// Squad grouping folds case and whitespace into one bucket.
	if len(c.BySquad) != 2 {
		t.Fatalf("by squad = %v, want 2 groups", c.BySquad)
	}
	for _, p := range c.BySquad {
		if p.Label == "Web" && p.Value != 2 {
			t.Errorf("web squad count = %v, want 2", p.Value)
		}
	}

	// Blank and "indefinido" projects are dropped from the project series.
	if len(c.ByProject) != 1 || c.ByProject[0].Label != "Portal" || c.ByProject[0].Value != 2 {
		t.Errorf("by project = %v, want only Portal=2", c.ByProject)
	}

	// Both state and status label groupings exist independently.
	if len(c.ByState) != 2 {
		t.Errorf("by state = %v, want aberto/fechado", c.ByState)
	}
	if len(c.ByStatus) != 2 {
		t.Errorf("by status = %v, want Testes/Ajustes", c.ByStatus)
	}

	// Monthly flow splits opened-in-month by closed state.
	if len(c.MonthlyFlow) != 2 {
		t.Fatalf("monthly flow = %v, want 2 months", c.MonthlyFlow)
	}
	june := c.MonthlyFlow[1]
	if june.Month != "06/2024" || june.Open != 1 || june.Closed != 1 {
		t.Errorf("june flow = %+v, want open=1 closed=1", june)
	}
}

func TestHoursAggregation(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "1", Priority: "alta", Assignee: "ana", TimeSpent: "2.5"},
		{ID: "2", Priority: "alta", Assignee: "ana", TimeSpent: "1.5"},
		{ID: "3", Priority: "baixa", Assignee: "rui", TimeSpent: "abc"},
	}

	c := ComputeCharts(tickets)

	foundAlta := false
	for _, p := range c.HoursByPriority {
		if p.Label == "alta" {
			foundAlta = true
			if p.Value != 4 {
				t.Errorf("alta hours = %v, want 4", p.Value)
			}
		}
		if p.Label == "baixa" && p.Value != 0 {
			t.Errorf("baixa hours = %v, want 0 (non-numeric treated as 0)", p.Value)
		}
	}
	if !foundAlta {
		t.Errorf("hours by priority missing alta: %v", c.HoursByPriority)
	}

	// Zero-sum assignees are dropped from the assignee hours series.
	if len(c.HoursByAssignee) != 1 || c.HoursByAssignee[0].Label != "ana" {
		t.Errorf("hours by assignee = %v, want only ana", c.HoursByAssignee)
	}
}

func TestDistinctValues(t *testing.T) {
	tickets := []domain.Ticket{
		{Project: "B"}, {Project: "A"}, {Project: "B"}, {Project: ""},
	}
	got := DistinctValues(tickets, func(t *domain.Ticket) string { return t.Project })
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("DistinctValues = %v, want [A B]", got)
	}
}
