package entity

import "time"

// ApprovalRecord is one immutable audit entry in a document's approval
// trail. Records are append-only; they are never updated or deleted.
type ApprovalRecord struct {
	ID            int64     `json:"id"`
	EntityType    string    `json:"entity_type"`
	EntityID      int64     `json:"entity_id"`
	ApprovalLevel int       `json:"approval_level"`
	ActorID       string    `json:"actor_id"`
	Action        string    `json:"action"`
	Comments      string    `json:"comments,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
