package dataset

import "github.com/spec-kit/ticket-dashboard/internal/domain"

// DefaultPageSize matches the table's default rows-per-page selection.
const DefaultPageSize = 20

// Page is one table page plus the paging facts the controls need.
type Page struct {
	Tickets    []domain.Ticket `json:"tickets"`
	Number     int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalRows  int             `json:"total_rows"`
}

// Paginate slices the sorted view into fixed-size pages. Out-of-range
// page numbers clamp to the valid range instead of erroring; an empty
// view yields page 1 of 1 with no rows.
func Paginate(tickets []domain.Ticket, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (len(tickets) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > len(tickets) {
		start = len(tickets)
	}
	if end > len(tickets) {
		end = len(tickets)
	}

	return Page{
		Tickets:    tickets[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalRows:  len(tickets),
	}
}
