package dataset

import (
	"strings"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// DefaultStateSet is the table view's out-of-the-box state selection.
func DefaultStateSet() []string {
	return []string{
		"concluído", "em andamento", "pendente", "cancelado", "aberto",
		"atribuído", "confirmado", "novo", "admitido", "retorno",
	}
}

// QueueStates are the "active" states counted by the queue KPI.
var QueueStates = map[string]struct{}{
	"iniciado": {}, "aberto": {}, "vencido": {}, "atenção": {},
}

// Query captures one render's filter, sort and paging selections. It is
// immutable from the pipeline's point of view: every stage takes a
// Query and a dataset and returns derived data.
type Query struct {
	Search string

	// Projects is the selected project set; nil means the caller did
	// not constrain projects (the service seeds it with every distinct
	// project on load, so nothing is excluded by default). Squads is a
	// multi-select where an empty selection means "no squad filter".
	Projects []string
	Squads   []string

	// States is the table-view state selection, applied on top of the
	// general filter at render time only. Nil falls back to
	// DefaultStateSet.
	States []string

	// Per-field equality filters; empty string means inactive. Status
	// compares the free-text workflow label, State the normalized
	// lifecycle state.
	Status   string
	State    string
	Category string
	Owner    string
	Assignee string

	// Opening-date range; zero values mean unbounded.
	From time.Time
	To   time.Time

	Sort      Column
	Direction int
	Page      int
	PageSize  int
}

// ExcludedByOwnerRule reports whether the ticket falls under the fixed
// business exclusion: sentinel-category tickets are hidden from every
// view and count unless a current owner is assigned.
func ExcludedByOwnerRule(t *domain.Ticket) bool {
	if strings.ToLower(strings.TrimSpace(t.Category)) != domain.SentinelCategory {
		return false
	}
	return strings.TrimSpace(t.CurrentOwner) == ""
}

// Filter evaluates the composite predicate over the dataset, returning
// the surviving tickets in input order. Conditions short-circuit per
// ticket in the order documented on Query.
func Filter(all []domain.Ticket, q Query) []domain.Ticket {
	projects := newSet(q.Projects)
	squads := newSet(q.Squads)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Ticket, 0, len(all))
	for i := range all {
		t := &all[i]

		if ExcludedByOwnerRule(t) {
			continue
		}
		if q.Projects != nil && !projects.has(t.Project) {
			continue
		}
		if len(q.Squads) > 0 && !squads.has(t.Squad) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if !matchesEquality(t, q) {
			continue
		}
		if !matchesDateRange(t, q.From, q.To) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// FilterByState intersects a filtered view with the selected state set.
// The table view is Filter(...) restricted by this; KPI and chart
// aggregation read the unrestricted filtered view.
func FilterByState(tickets []domain.Ticket, states []string) []domain.Ticket {
	if states == nil {
		states = DefaultStateSet()
	}
	selected := newSet(states)
	out := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if selected.has(tickets[i].State) {
			out = append(out, tickets[i])
		}
	}
	return out
}

func matchesSearch(t *domain.Ticket, search string) bool {
	for _, value := range searchFields(t) {
		if strings.Contains(strings.ToLower(value), search) {
			return true
		}
	}
	return false
}

func searchFields(t *domain.Ticket) []string {
	return []string{
		t.ID, t.Category, t.Project, t.Assignee, t.State, t.OpenedAt,
		t.ClosedAt, t.LastUpdatedAt, t.Summary, t.PlanningOrder,
		t.PromisedDate, t.Squad, t.CurrentOwner, t.Requester, t.Status,
		t.Priority, t.TimeSpent,
	}
}

func matchesEquality(t *domain.Ticket, q Query) bool {
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	if q.State != "" && t.State != q.State {
		return false
	}
	if q.Category != "" && t.Category != q.Category {
		return false
	}
	if q.Owner != "" && t.CurrentOwner != q.Owner {
		return false
	}
	if q.Assignee != "" && t.Assignee != q.Assignee {
		return false
	}
	return true
}

func matchesDateRange(t *domain.Ticket, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	opened, ok := ParseDate(t.OpenedAt)
	if !ok {
		// Any active bound excludes tickets without a usable opening date.
		return false
	}
	day := TruncateToDay(opened)
	if !from.IsZero() && day.Before(TruncateToDay(from)) {
		return false
	}
	if !to.IsZero() && day.After(TruncateToDay(to)) {
		return false
	}
	return true
}

type stringSet map[string]struct{}

func newSet(values []string) stringSet {
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}
