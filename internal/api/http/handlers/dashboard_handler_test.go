package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/dataset"
)

func parseVia(t *testing.T, target string) dataset.Query {
	t.Helper()
	var got dataset.Query

	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		got = parseQuery(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return got
}

func TestParseQueryDefaults(t *testing.T) {
	q := parseVia(t, "/probe")

	if q.Projects != nil {
		t.Errorf("absent projects param should stay nil, got %v", q.Projects)
	}
	if q.States != nil {
		t.Errorf("absent states param should stay nil, got %v", q.States)
	}
	if len(q.Squads) != 0 {
		t.Errorf("squads = %v, want empty", q.Squads)
	}
	if q.Sort != dataset.ColumnDefault || q.Direction != 1 || q.Page != 1 {
		t.Errorf("defaults = sort %q dir %d page %d", q.Sort, q.Direction, q.Page)
	}
}

func TestParseQueryExplicitSelections(t *testing.T) {
	q := parseVia(t, "/probe?projects=Alfa,Beta&squads=log&states=aberto&sort=ordem_plnj&direction=desc&page=3&from=2024-01-01&to=2024-03-31&search=erro")

	if len(q.Projects) != 2 || q.Projects[0] != "Alfa" {
		t.Errorf("projects = %v", q.Projects)
	}
	if len(q.Squads) != 1 || len(q.States) != 1 {
		t.Errorf("squads = %v, states = %v", q.Squads, q.States)
	}
	if q.Sort != dataset.ColumnPlanningOrder || q.Direction != -1 || q.Page != 3 {
		t.Errorf("sort %q dir %d page %d", q.Sort, q.Direction, q.Page)
	}
	if q.From != time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) || q.To.IsZero() {
		t.Errorf("range = %v .. %v", q.From, q.To)
	}
	if q.Search != "erro" {
		t.Errorf("search = %q", q.Search)
	}
}

func TestParseQueryEmptyProjectsParamExcludesAll(t *testing.T) {
	q := parseVia(t, "/probe?projects=")

	if q.Projects == nil || len(q.Projects) != 0 {
		t.Errorf("explicit empty projects should be non-nil empty, got %#v", q.Projects)
	}
}

func TestParseQueryUnknownSortFallsBack(t *testing.T) {
	q := parseVia(t, "/probe?sort=nonsense")
	if q.Sort != dataset.ColumnDefault {
		t.Errorf("sort = %q, want default", q.Sort)
	}
}
