package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/shopspring/decimal"
)

type consolidationKey struct {
	FeePayer string
	Type     RecordType
	Day      time.Time
}

// Consolidate merges reward-claim records that land on the same UTC calendar
// day for the same wallet into a single daily record. Validator bots claiming
// through authz exec fire many times a day and would otherwise bloat the
// export with dust rows. Amounts and fees are summed exactly, the earliest
// claim of the day supplies the representative hash and timestamp, and the
// merged claim count is kept for the export description. Non-reward records
// pass through untouched, as do days with a single claim. Days with no claims
// produce nothing.
func Consolidate(records []Record) []Record {
	groups := make(map[consolidationKey][]Record)
	passthrough := []Record{}
	passthroughHashes := make(map[string]struct{})

	for _, record := range records {
		if !record.isRewardClaim() {
			passthrough = append(passthrough, record)
			passthroughHashes[record.Hash] = struct{}{}
			continue
		}
		key := consolidationKey{
			FeePayer: record.FeePayer,
			Type:     record.Type,
			Day:      record.Timestamp.UTC().Truncate(24 * time.Hour),
		}
		groups[key] = append(groups[key], record)
	}

	consolidated := passthrough
	for _, group := range groups {
		consolidated = append(consolidated, mergeClaims(group, passthroughHashes))
	}

	sort.Slice(consolidated, func(i, j int) bool {
		if !consolidated[i].Timestamp.Equal(consolidated[j].Timestamp) {
			return consolidated[i].Timestamp.Before(consolidated[j].Timestamp)
		}
		return consolidated[i].Hash < consolidated[j].Hash
	})

	if merged := len(records) - len(consolidated); merged > 0 {
		config.Log.Infof("Consolidated %d reward claims into daily records, %d records remain", len(records), len(consolidated))
	}

	return consolidated
}

func mergeClaims(group []Record, passthroughHashes map[string]struct{}) Record {
	sort.Slice(group, func(i, j int) bool {
		if !group[i].Timestamp.Equal(group[j].Timestamp) {
			return group[i].Timestamp.Before(group[j].Timestamp)
		}
		return group[i].Hash < group[j].Hash
	})

	merged := group[0]
	if len(group) == 1 {
		return merged
	}

	merged.Amount = decimal.Zero
	merged.FeeAmount = decimal.Zero
	merged.ClaimCount = 0
	merged.FeeHashes = nil
	for _, record := range group {
		merged.Amount = merged.Amount.Add(record.Amount)
		merged.ClaimCount += record.ClaimCount

		// A claim sharing its transaction with a non-reward record (an
		// undelegation's auto-withdrawn reward, say) leaves the fee with that
		// record. Summing it here would report the same fee twice.
		if _, shared := passthroughHashes[record.Hash]; shared {
			continue
		}
		merged.FeeAmount = merged.FeeAmount.Add(record.FeeAmount)
		merged.FeeHashes = append(merged.FeeHashes, record.Hash)
	}

	if merged.Type == AuthzExec {
		merged.Description = fmt.Sprintf("Summarised rewards withdrawn in %d separate Authz Exec transactions", merged.ClaimCount)
	} else {
		merged.Description = fmt.Sprintf("Summarised rewards withdrawn in %d separate transactions", merged.ClaimCount)
	}

	return merged
}
