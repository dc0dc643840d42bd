package entities

import "time"

// SessionStatus is the lifecycle of a physical inventory count.
type SessionStatus string

const (
	SessionInProgress      SessionStatus = "in_progress"
	SessionPendingApproval SessionStatus = "pending_approval"
	SessionApproved        SessionStatus = "approved"
	SessionRejected        SessionStatus = "rejected"
)

// InventoryCount is one expected-vs-counted row of a session.
type InventoryCount struct {
	PartID   string `json:"part_id"`
	Expected int    `json:"expected"`
	Counted  int    `json:"counted"`
	Reason   string `json:"reason,omitempty"`
}

func (c InventoryCount) Discrepancy() int {
	return c.Counted - c.Expected
}

// InventorySession pairs a location with the counts taken there.
type InventorySession struct {
	ID              string           `json:"id"`
	Location        string           `json:"location,omitempty"`
	Status          SessionStatus    `json:"status"`
	Counts          []InventoryCount `json:"counts"`
	StartedBy       string           `json:"started_by"`
	SubmittedBy     string           `json:"submitted_by,omitempty"`
	DecidedBy       string           `json:"decided_by,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Revision        int64            `json:"revision"`
}

// RowsMissingReason lists the part ids whose discrepancy has no reason.
func (s InventorySession) RowsMissingReason() []string {
	var ids []string
	for _, c := range s.Counts {
		if c.Discrepancy() != 0 && c.Reason == "" {
			ids = append(ids, c.PartID)
		}
	}
	return ids
}

func (s InventorySession) CountIndex(partID string) int {
	for i, c := range s.Counts {
		if c.PartID == partID {
			return i
		}
	}
	return -1
}
