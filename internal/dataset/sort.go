package dataset

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Column identifies a sortable/filterable table column.
type Column string

const (
	// ColumnDefault applies the fixed composite ordering the ticket
	// queue relies on: planning order ascending, last update
	// descending, id descending.
	ColumnDefault       Column = "default"
	ColumnID            Column = "numero"
	ColumnCategory      Column = "categoria"
	ColumnProject       Column = "projeto"
	ColumnSummary       Column = "resumo"
	ColumnSquad         Column = "squad"
	ColumnAssignee      Column = "atribuicao"
	ColumnOwner         Column = "resp_atual"
	ColumnRequester     Column = "solicitante"
	ColumnState         Column = "estado"
	ColumnOpenedAt      Column = "dataAbertura"
	ColumnPromisedDate  Column = "data_prometida"
	ColumnLastUpdatedAt Column = "ultima_atualizacao"
	ColumnPlanningOrder Column = "ordem_plnj"
	ColumnElapsed       Column = "tempoTotal"
	ColumnStatus        Column = "status"
)

// ParseColumn returns the column for a wire identifier, falling back to
// the default composite for unknown values.
func ParseColumn(s string) Column {
	switch Column(s) {
	case ColumnID, ColumnCategory, ColumnProject, ColumnSummary,
		ColumnSquad, ColumnAssignee, ColumnOwner, ColumnRequester,
		ColumnState, ColumnOpenedAt, ColumnPromisedDate,
		ColumnLastUpdatedAt, ColumnPlanningOrder, ColumnElapsed,
		ColumnStatus:
		return Column(s)
	default:
		return ColumnDefault
	}
}

// Sorter orders tickets by one column with a direction multiplier. The
// default pseudo-column ignores direction; explicit columns toggle it
// on repeated selection.
type Sorter struct {
	column    Column
	direction int
	now       time.Time
	coll      *collate.Collator
}

// NewSorter builds a sorter. A direction of 0 is treated as ascending;
// now anchors the elapsed-hours column for tickets still open.
func NewSorter(column Column, direction int, now time.Time) *Sorter {
	if column == "" {
		column = ColumnDefault
	}
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}
	return &Sorter{
		column:    column,
		direction: direction,
		now:       now,
		coll:      collate.New(language.Portuguese),
	}
}

// Sort orders the slice in place, stably so that equal keys keep their
// filtered order.
func (s *Sorter) Sort(tickets []domain.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return s.Compare(&tickets[i], &tickets[j]) < 0
	})
}

// Compare returns a negative, zero or positive value ordering a before,
// equal to, or after b, with the direction multiplier applied.
func (s *Sorter) Compare(a, b *domain.Ticket) int {
	if s.column == ColumnDefault {
		return compareDefault(a, b)
	}
	return s.compareColumn(a, b) * s.direction
}

// compareDefault is the three-key composite queue ordering.
func compareDefault(a, b *domain.Ticket) int {
	if a.PlanningOrder != b.PlanningOrder {
		ordA := parseIntDefault(a.PlanningOrder)
		ordB := parseIntDefault(b.PlanningOrder)
		if ordA != ordB {
			return ordA - ordB
		}
	}

	updA, okA := ParseDate(a.LastUpdatedAt)
	updB, okB := ParseDate(b.LastUpdatedAt)
	switch {
	case okA && okB:
		if !updA.Equal(updB) {
			if updA.After(updB) {
				return -1
			}
			return 1
		}
	case okA:
		return -1
	case okB:
		return 1
	}

	return parseIntDefault(b.ID) - parseIntDefault(a.ID)
}

func (s *Sorter) compareColumn(a, b *domain.Ticket) int {
	switch s.column {
	case ColumnID:
		return parseIntDefault(a.ID) - parseIntDefault(b.ID)
	case ColumnOpenedAt:
		return compareDates(a.OpenedAt, b.OpenedAt)
	case ColumnPromisedDate:
		return compareDates(a.PromisedDate, b.PromisedDate)
	case ColumnLastUpdatedAt:
		return compareDates(a.LastUpdatedAt, b.LastUpdatedAt)
	case ColumnPlanningOrder:
		return parseIntDefault(a.PlanningOrder) - parseIntDefault(b.PlanningOrder)
	case ColumnElapsed:
		hoursA := ElapsedHours(a, s.now)
		hoursB := ElapsedHours(b, s.now)
		switch {
		case hoursA < hoursB:
			return -1
		case hoursA > hoursB:
			return 1
		default:
			return 0
		}
	default:
		return s.coll.CompareString(columnValue(a, s.column), columnValue(b, s.column))
	}
}

// compareDates orders ascending with unparseable values last.
func compareDates(rawA, rawB string) int {
	dateA, okA := ParseDate(rawA)
	dateB, okB := ParseDate(rawB)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	case dateA.Before(dateB):
		return -1
	case dateA.After(dateB):
		return 1
	default:
		return 0
	}
}

// ElapsedHours is the time a ticket has been open, in hours. Closed
// tickets measure to their close date, open ones to now; unparseable
// opening dates yield 0.
func ElapsedHours(t *domain.Ticket, now time.Time) float64 {
	opened, ok := ParseDate(t.OpenedAt)
	if !ok {
		return 0
	}
	end := now
	if closed, okClosed := ParseDate(t.ClosedAt); okClosed {
		end = closed
	}
	return end.Sub(opened).Hours()
}

func columnValue(t *domain.Ticket, col Column) string {
	switch col {
	case ColumnCategory:
		return t.Category
	case ColumnProject:
		return t.Project
	case ColumnSummary:
		return t.Summary
	case ColumnSquad:
		return t.Squad
	case ColumnAssignee:
		return t.Assignee
	case ColumnOwner:
		return t.CurrentOwner
	case ColumnRequester:
		return t.Requester
	case ColumnState:
		return t.State
	case ColumnStatus:
		return t.Status
	default:
		return ""
	}
}

func parseIntDefault(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
