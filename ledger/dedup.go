package ledger

import "github.com/DefiantLabs/cheqd-tax-cli/config"

// Deduplicate removes records describing the same on-chain event observed more
// than once, which happens when overlapping dumps are merged or a fetch is
// replayed. The first occurrence wins and input order is preserved, so the
// operation is idempotent and insensitive to how duplicates are ordered.
func Deduplicate(records []Record) []Record {
	seen := make(map[identityKey]struct{}, len(records))
	deduped := make([]Record, 0, len(records))

	for _, record := range records {
		key := record.identity()
		if _, ok := seen[key]; ok {
			config.Log.Debugf("Dropping duplicate %s record for tx %s", record.Type, record.Hash)
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, record)
	}

	if dropped := len(records) - len(deduped); dropped > 0 {
		config.Log.Infof("Removed %d duplicate records, %d remain", dropped, len(deduped))
	}

	return deduped
}
