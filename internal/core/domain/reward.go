package domain

import "time"

type RewardKind string

const (
	RewardOrder   RewardKind = "order-reward"
	RewardSignup  RewardKind = "signup-bonus"
	RewardScratch RewardKind = "scratch-reveal"
)

// RewardLedgerEntry is append-only. After the initial insert the only
// permitted mutation is flipping Consumed; everything else, including
// expiry, is decided at read time.
type RewardLedgerEntry struct {
	ID        uint64
	UserID    uint64
	OrderID   *string
	Kind      RewardKind
	Amount    int64
	IssuedAt  time.Time
	ExpiresAt *time.Time
	Consumed  bool

	// SourceEntryID links a residual entry (the unspent remainder of a
	// partially consumed entry) back to the entry it split from. Residuals
	// are exempt from the per-(order, kind) uniqueness contract.
	SourceEntryID *uint64
}

// Expired reports whether the entry no longer counts toward a balance at
// the given instant. Callers pass a single instant per read so two queries
// of the same moment agree.
func (e *RewardLedgerEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !e.ExpiresAt.After(now)
}

// IssuanceResult is the outcome of an issuance attempt. AlreadyGranted
// marks the benign duplicate case: the unique constraint rejected the
// insert and Entry holds the pre-existing row.
type IssuanceResult struct {
	Granted        bool
	AlreadyGranted bool
	Entry          *RewardLedgerEntry
}
