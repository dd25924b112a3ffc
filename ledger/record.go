package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordType int

const (
	Unknown RecordType = iota
	Transfer
	Delegate
	Undelegate
	Redelegate
	Reward
	IBCTransfer
	Vote
	AuthzExec
)

func (rt RecordType) String() string {
	return [...]string{
		"", "transfer", "delegate", "undelegate", "redelegate",
		"reward", "ibc-transfer", "vote", "authz-exec",
	}[rt]
}

// Record is the canonical ledger entry derived from a single message of a raw
// transaction. Amounts are always non-negative and expressed in the display
// denomination. Timestamps are UTC, truncated to the minute.
type Record struct {
	Hash      string          `json:"hash"`
	Height    int64           `json:"height"`
	Type      RecordType      `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	FeePayer  string          `json:"fee_payer"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
	Success   bool            `json:"success"`

	// Description carries human-readable context for the export row.
	Description string `json:"description,omitempty"`

	// ClaimCount is 1 for plain records and the number of merged claims on a
	// consolidated reward record.
	ClaimCount int `json:"claim_count,omitempty"`

	// FeeHashes lists the transactions whose fees are folded into FeeAmount on
	// a consolidated record. Empty on plain records, whose fee is their own.
	FeeHashes []string `json:"fee_hashes,omitempty"`
}

// identityKey is the structural identity used by the deduplicator. Two records
// with equal keys describe the same on-chain event observed twice. Decimal
// fields go through String() so the key is comparable.
type identityKey struct {
	Hash      string
	Success   bool
	Timestamp time.Time
	Height    int64
	FeePayer  string
	FeeAmount string
	Amount    string
	Type      RecordType
}

func (r Record) identity() identityKey {
	return identityKey{
		Hash:      r.Hash,
		Success:   r.Success,
		Timestamp: r.Timestamp,
		Height:    r.Height,
		FeePayer:  r.FeePayer,
		FeeAmount: r.FeeAmount.String(),
		Amount:    r.Amount.String(),
		Type:      r.Type,
	}
}

// isRewardClaim reports whether the record represents a staking-reward payout,
// the record family subject to daily consolidation. Authz-executed claims are
// rewards in all but message envelope.
func (r Record) isRewardClaim() bool {
	return r.Type == Reward || r.Type == AuthzExec
}
