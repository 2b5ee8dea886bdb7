package domain

import "time"

// SentinelCategory is the ticket category subject to the owner rule:
// tickets in this category are hidden everywhere unless a current owner
// is assigned.
const SentinelCategory = "suporte informatica"

// Ticket is the canonical record produced by import normalization.
// Date fields keep the raw export encoding; parsing happens on demand
// in the dataset package.
type Ticket struct {
	ID            string `json:"numero"`
	Category      string `json:"categoria"`
	Project       string `json:"projeto"`
	Assignee      string `json:"atribuicao"`
	State         string `json:"estado"`
	OpenedAt      string `json:"data_abertura"`
	ClosedAt      string `json:"data_fechamento"`
	LastUpdatedAt string `json:"ultima_atualizacao"`
	Summary       string `json:"resumo"`
	PlanningOrder string `json:"ordem_plnj"`
	PromisedDate  string `json:"data_prometida"`
	Squad         string `json:"squad"`
	CurrentOwner  string `json:"resp_atual"`
	Requester     string `json:"solicitante"`
	Status        string `json:"status"`
	Priority      string `json:"prioridade"`
	TimeSpent     string `json:"tempo_total"`
}

// Snapshot is one full-replace capture of the imported dataset. The
// store keeps only the most recent one.
type Snapshot struct {
	CapturedAt time.Time `json:"captured_at"`
	Tickets    []Ticket  `json:"tickets"`
}
