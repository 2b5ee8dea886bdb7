package dataset

import (
	"strconv"
	"testing"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func manyTickets(n int) []domain.Ticket {
	out := make([]domain.Ticket, n)
	for i := range out {
		out[i].ID = strconv.Itoa(i + 1)
	}
	return out
}

func TestPaginateLastPartialPage(t *testing.T) {
	page := Paginate(manyTickets(45), 3, 20)

	if len(page.Tickets) != 5 {
		t.Errorf("page 3 of 45/20 has %d rows, want 5", len(page.Tickets))
	}
	if page.TotalPages != 3 || page.Number != 3 || page.TotalRows != 45 {
		t.Errorf("paging facts = %+v", page)
	}
	if page.Tickets[0].ID != "41" {
		t.Errorf("page 3 starts at %s, want 41", page.Tickets[0].ID)
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	// Page 0 clamps up to 1.
	page := Paginate(manyTickets(45), 0, 20)
	if page.Number != 1 || page.Tickets[0].ID != "1" {
		t.Errorf("page 0 clamped to %d starting %s, want page 1", page.Number, page.Tickets[0].ID)
	}

	// Beyond the last page clamps down.
	page = Paginate(manyTickets(45), 99, 20)
	if page.Number != 3 || len(page.Tickets) != 5 {
		t.Errorf("page 99 clamped to %d with %d rows, want page 3 with 5", page.Number, len(page.Tickets))
	}
}

func TestPaginateEmptyDataset(t *testing.T) {
	page := Paginate(nil, 1, 20)
	if page.Number != 1 || page.TotalPages != 1 || len(page.Tickets) != 0 {
		t.Errorf("empty dataset page = %+v", page)
	}
}

func TestPaginateDefaultsSize(t *testing.T) {
	page := Paginate(manyTickets(25), 1, 0)
	if len(page.Tickets) != DefaultPageSize {
		t.Errorf("default size page has %d rows, want %d", len(page.Tickets), DefaultPageSize)
	}
}
