package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/dataset"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/internal/tracker"
	"github.com/spec-kit/ticket-dashboard/pkg/util"
)

// timestampLayout is the export encoding written back into the local
// dataset after a confirmed remote update.
const timestampLayout = "02/01/2006 15:04:05"

// DashboardService owns the in-memory dataset and coordinates imports,
// rendering queries and tracker write-backs.
type DashboardService struct {
	snapshots  store.SnapshotRepository
	cache      store.SnapshotCache
	tracker    tracker.Client
	fields     config.TrackerConfig
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	pageSize   int
	now        func() time.Time

	// writeMu serializes snapshot writes; mu guards the dataset for
	// readers. Renders only ever see a fully swapped slice.
	writeMu sync.Mutex
	mu      sync.RWMutex
	tickets []domain.Ticket

	capturedAt time.Time
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	SnapshotRepo store.SnapshotRepository
	Cache        store.SnapshotCache
	Tracker      tracker.Client
	TrackerCfg   config.TrackerConfig
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
	PageSize     int
}

// FilterOptions lists the distinct values available per filterable
// column, for building the dashboard's dropdowns.
type FilterOptions struct {
	Projects   []string `json:"projects"`
	Squads     []string `json:"squads"`
	States     []string `json:"states"`
	Statuses   []string `json:"statuses"`
	Categories []string `json:"categories"`
	Owners     []string `json:"owners"`
	Assignees  []string `json:"assignees"`
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = dataset.DefaultPageSize
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		snapshots:  deps.SnapshotRepo,
		cache:      deps.Cache,
		tracker:    deps.Tracker,
		fields:     deps.TrackerCfg,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		pageSize:   pageSize,
		now:        time.Now,
	}
}

// Load hydrates the in-memory dataset from the cache, falling back to
// the snapshot store. Persistence failures degrade to an empty dataset
// so the dashboard still renders. The whole read-and-swap holds the
// write gate: a refresh that started before an import finished must
// not swap the older snapshot back in over the fresh one.
func (s *DashboardService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.cache != nil {
		if snapshot, ok := s.cache.Get(ctx); ok {
			s.swap(snapshot)
			s.logger.Info("dataset loaded from cache", zap.Int("tickets", len(snapshot.Tickets)))
			return nil
		}
	}

	snapshot, err := s.snapshots.LatestSnapshot(ctx)
	if errors.Is(err, store.ErrNoSnapshot) {
		s.swap(domain.Snapshot{})
		return nil
	}
	if err != nil {
		s.swap(domain.Snapshot{})
		s.logger.Warn("snapshot load failed; rendering empty dataset", zap.Error(err))
		return util.NewPersistenceError("load snapshot", err)
	}

	s.swap(snapshot)
	if s.cache != nil {
		s.cache.Set(ctx, snapshot)
	}
	s.logger.Info("dataset loaded from store", zap.Int("tickets", len(snapshot.Tickets)))
	return nil
}

// Import normalizes raw rows into the canonical dataset and replaces
// the previous snapshot wholesale. An import that yields zero records
// from a non-empty file is rejected and leaves the dataset untouched.
func (s *DashboardService) Import(ctx context.Context, rows []map[string]string, filename string) (int, error) {
	tickets := dataset.Normalize(rows)
	if len(tickets) == 0 && len(rows) > 0 {
		return 0, util.NewValidationError("no valid ticket rows in import", map[string]any{
			"rows":     len(rows),
			"filename": filename,
		})
	}

	snapshot := domain.Snapshot{CapturedAt: s.now(), Tickets: tickets}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.snapshots.ReplaceSnapshot(ctx, snapshot); err != nil {
		// The import still lands in memory; only durability is lost.
		s.logger.Warn("snapshot not persisted", zap.Error(err))
	} else if s.cache != nil {
		s.cache.Set(ctx, snapshot)
	}
	s.swap(snapshot)

	s.metrics.RecordSnapshot(len(tickets))
	s.publish(ctx, events.Event{
		Type:    events.EventSnapshotImported,
		Payload: events.SnapshotImportedPayload{Rows: len(tickets), Filename: filename},
	})
	s.logger.Info("snapshot imported",
		zap.Int("tickets", len(tickets)),
		zap.String("filename", filename),
	)
	return len(tickets), nil
}

// TableView renders one page of the ticket table for a query.
func (s *DashboardService) TableView(q dataset.Query) dataset.Page {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	return dataset.Paginate(s.renderView(q), q.Page, pageSize)
}

// renderView is the table pipeline without pagination: filter, state
// selection, sort.
func (s *DashboardService) renderView(q dataset.Query) []domain.Ticket {
	visible := dataset.FilterByState(dataset.Filter(s.dataset(), q), q.States)
	sorter := dataset.NewSorter(q.Sort, q.Direction, s.now())
	sorter.Sort(visible)
	return visible
}

// KPIs computes headline counters over the filtered view. The table's
// state selection does not apply here.
func (s *DashboardService) KPIs(q dataset.Query) dataset.KPIs {
	return dataset.ComputeKPIs(dataset.Filter(s.dataset(), q), s.now())
}

// Charts computes every chart series over the filtered view.
func (s *DashboardService) Charts(q dataset.Query) dataset.Charts {
	return dataset.ComputeCharts(dataset.Filter(s.dataset(), q))
}

// Options derives filter dropdown values from the visible dataset.
func (s *DashboardService) Options() FilterOptions {
	visible := dataset.Filter(s.dataset(), dataset.Query{})
	return FilterOptions{
		Projects:   dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.Project }),
		Squads:     dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.Squad }),
		States:     dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.State }),
		Statuses:   dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.Status }),
		Categories: dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.Category }),
		Owners:     dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.CurrentOwner }),
		Assignees:  dataset.DistinctValues(visible, func(t *domain.Ticket) string { return t.Assignee }),
	}
}

// exportColumns are the canonical column names, in record order.
var exportColumns = []string{
	"numero", "categoria", "projeto", "atribuicao", "estado",
	"data_abertura", "data_fechamento", "ultima_atualizacao", "resumo",
	"ordem_plnj", "data_prometida", "squad", "resp_atual",
	"solicitante", "status", "prioridade", "tempo_total",
}

func exportRecord(t *domain.Ticket) []string {
	return []string{
		t.ID, t.Category, t.Project, t.Assignee, t.State,
		t.OpenedAt, t.ClosedAt, t.LastUpdatedAt, t.Summary,
		t.PlanningOrder, t.PromisedDate, t.Squad, t.CurrentOwner,
		t.Requester, t.Status, t.Priority, t.TimeSpent,
	}
}

// ExportCSV renders the full filtered, sorted view (no pagination) as
// a CSV with canonical column names.
func (s *DashboardService) ExportCSV(q dataset.Query) ([]byte, error) {
	visible := s.renderView(q)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for i := range visible {
		if err := w.Write(exportRecord(&visible[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportExcel renders the same view as ExportCSV into a single-sheet
// XLSX workbook.
func (s *DashboardService) ExportExcel(q dataset.Query) ([]byte, error) {
	visible := s.renderView(q)

	workbook := excelize.NewFile()
	defer workbook.Close()
	sheet := workbook.GetSheetName(0)

	writeRow := func(rowIndex int, record []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(record))
		for i, value := range record {
			row[i] = value
		}
		return workbook.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, exportColumns); err != nil {
		return nil, err
	}
	for i := range visible {
		if err := writeRow(i+2, exportRecord(&visible[i])); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Count returns the current dataset size, exclusion rule not applied.
func (s *DashboardService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// CapturedAt reports when the current dataset was imported.
func (s *DashboardService) CapturedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capturedAt
}

func (s *DashboardService) dataset() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickets
}

func (s *DashboardService) swap(snapshot domain.Snapshot) {
	s.mu.Lock()
	s.tickets = snapshot.Tickets
	s.capturedAt = snapshot.CapturedAt
	s.mu.Unlock()
}

func (s *DashboardService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
