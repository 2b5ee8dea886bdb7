package dataset

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

// Column aliases accepted per canonical field. Exports arrive with the
// tracker's Portuguese headers; the canonical JSON names are accepted
// too so that re-importing an exported dataset is a no-op.
var (
	idAliases            = []string{"Núm", "numero", "Ticket", "ID"}
	categoryAliases      = []string{"Categoria", "categoria"}
	projectAliases       = []string{"Projeto", "projeto"}
	assigneeAliases      = []string{"Atribuído a", "atribuicao"}
	stateAliases         = []string{"Estado", "estado"}
	openedAtAliases      = []string{"Data de Envio", "data_abertura"}
	closedAtAliases      = []string{"Data de Fechamento", "data_fechamento"}
	lastUpdatedAliases   = []string{"Atualizado", "ultima_atualizacao"}
	summaryAliases       = []string{"Resumo", "resumo"}
	planningOrderAliases = []string{"Ordem_Plnj", "ordem_plnj"}
	promisedDateAliases  = []string{"Data_Prometida", "data_prometida"}
	squadAliases         = []string{"Squad", "squad"}
	ownerAliases         = []string{"Resp_atual", "resp_atual"}
	requesterAliases     = []string{"Solicitante", "solicitante"}
	statusAliases        = []string{"Status", "status"}
	priorityAliases      = []string{"Prioridade", "prioridade"}
	timeSpentAliases     = []string{"Tempo_Total_Prioridade", "Tempo Total", "tempo_total"}
)

// friendlyProjectNames rewrites the verbose project identifiers carried
// by the raw export into the short names shown on the dashboard.
var friendlyProjectNames = map[string]string{
	"0012618: Suporte interno XCELiS":                            "Suporte Interno Xcelis",
	"12365392645 - Novartis - Torre de Controle":                 "Novartis - Torre de Controle",
	"3043692983 - PVM - CONTROL TOWER":                           "PVM - CONTROL TOWER",
	"7986703478 - ARCELORMITTAL - CENTRAL DE TRAFEGO":            "ARCELORMITTAL - CENTRAL DE TRAFEGO",
	"8240852371 - SYNGENTA - MONITORAMENTO E PORTAL TRACKING":    "SYNGENTA - MONITORAMENTO E PORTAL TRACKING",
	"11596273519 - C&A - CESSÃO TMS SAAS":                        "C&A - CESSÃO TMS SAAS",
}

// FriendlyProjectName maps a raw project identifier to its display
// name, returning the input unchanged when no mapping exists.
func FriendlyProjectName(raw string) string {
	if friendly, ok := friendlyProjectNames[raw]; ok {
		return friendly
	}
	return raw
}

// Normalize maps raw imported rows into canonical Ticket records. Rows
// lacking an identifier under any accepted alias are dropped silently;
// when the whole input yields zero records a single warning is logged
// so the caller can surface an import notice. The function is pure and
// idempotent: normalizing already-normalized rows returns the same
// records.
func Normalize(rows []map[string]string) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(rows))
	for _, raw := range rows {
		row := trimKeys(raw)

		id := pick(row, idAliases)
		if strings.TrimSpace(id) == "" {
			continue
		}

		tickets = append(tickets, domain.Ticket{
			ID:            id,
			Category:      pick(row, categoryAliases),
			Project:       FriendlyProjectName(pick(row, projectAliases)),
			Assignee:      pick(row, assigneeAliases),
			State:         strings.ToLower(strings.TrimSpace(pick(row, stateAliases))),
			OpenedAt:      pick(row, openedAtAliases),
			ClosedAt:      pick(row, closedAtAliases),
			LastUpdatedAt: pick(row, lastUpdatedAliases),
			Summary:       pick(row, summaryAliases),
			PlanningOrder: pick(row, planningOrderAliases),
			PromisedDate:  pick(row, promisedDateAliases),
			Squad:         pick(row, squadAliases),
			CurrentOwner:  pick(row, ownerAliases),
			Requester:     pick(row, requesterAliases),
			Status:        pick(row, statusAliases),
			Priority:      pick(row, priorityAliases),
			TimeSpent:     pick(row, timeSpentAliases),
		})
	}

	if len(tickets) == 0 && len(rows) > 0 {
		zap.L().Warn("import produced no valid rows: no identifier column found", zap.Int("rows", len(rows)))
	}
	return tickets
}

func trimKeys(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for key, value := range row {
		out[strings.TrimSpace(key)] = value
	}
	return out
}

func pick(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok && value != "" {
			return value
		}
	}
	return ""
}
