package domain

import "time"

// Financial is a single ledger entry (offering, tithe, expense...) tied to a branch.
type Financial struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	BranchID    string    `json:"branch_id"`
	BranchName  string    `json:"branch_name,omitempty"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
