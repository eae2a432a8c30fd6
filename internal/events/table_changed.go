package events

import "time"

const TableChangesTopic = "erp.table.changes.v1"

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
	ChangeUpsert ChangeType = "UPSERT"
)

// TableChanged says "something changed in Table". It carries no row data;
// subscribers reload the whole table.
type TableChanged struct {
	EventID    string     `json:"event_id"`
	EventType  string     `json:"event_type"`
	RequestID  string     `json:"request_id,omitempty"`
	Table      string     `json:"table"`
	Change     ChangeType `json:"change"`
	OccurredAt time.Time  `json:"occurred_at"`
}
