package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
	"github.com/DefiantLabs/cheqd-tax-cli/graphql"
)

// TxSource is the page-oriented query surface the fetcher needs. Satisfied by
// *graphql.Client.
type TxSource interface {
	GetTxsByAddressWithRetry(ctx context.Context, address string, limit, offset, retryMaxAttempts int64, retryMaxWaitSeconds uint64) ([]txModule.TxWrapper, error)
}

type Fetcher struct {
	Client          TxSource
	Address         string
	BatchSize       int64
	MaxTransactions int64
	Throttle        time.Duration
	RetryAttempts   int64
	RetryMaxWait    uint64

	Checkpoints *CheckpointStore
	DumpPath    string
}

// FetchAll pulls the address history page by page until the history is
// exhausted or MaxTransactions is reached. After every page the dump file and
// the checkpoint are replaced atomically, in that order, so committed pages
// survive any interruption. On failure the accumulated transactions are
// returned along with the error so callers can still use partial results.
func (f *Fetcher) FetchAll(ctx context.Context) ([]txModule.TxWrapper, error) {
	transactions := []txModule.TxWrapper{}
	var offset int64

	checkpoint, err := f.Checkpoints.Load()
	if err != nil {
		return nil, err
	}
	if checkpoint != nil {
		resumed, err := ReadDump(f.DumpPath)
		if err != nil {
			return nil, fmt.Errorf("cannot resume, checkpoint exists but dump is unreadable: %w", err)
		}
		transactions = resumed
		offset = checkpoint.Cursor
		config.Log.Infof("Found saved progress - Offset: %d, Transactions: %d", offset, len(transactions))
	}

	for int64(len(transactions)) < f.MaxTransactions {
		if err := ctx.Err(); err != nil {
			return transactions, err
		}

		config.Log.Debugf("Fetching batch starting at offset %d", offset)
		page, err := f.Client.GetTxsByAddressWithRetry(ctx, f.Address, f.BatchSize, offset, f.RetryAttempts, f.RetryMaxWait)
		if err != nil {
			return transactions, err
		}

		if len(page) == 0 {
			break
		}

		// Truncate the page rather than overshooting the cap. The cursor
		// advances only by what was actually consumed, so nothing is skipped
		// on a later run with a higher cap.
		spaceRemaining := f.MaxTransactions - int64(len(transactions))
		if int64(len(page)) > spaceRemaining {
			page = page[:spaceRemaining]
		}

		transactions = append(transactions, page...)
		offset += int64(len(page))

		err = WriteDump(f.DumpPath, transactions)
		if err != nil {
			return transactions, err
		}

		err = f.Checkpoints.Save(Checkpoint{
			Cursor:        offset,
			FetchedCount:  int64(len(transactions)),
			LastTimestamp: page[len(page)-1].Transaction.Block.Timestamp,
		})
		if err != nil {
			return transactions, err
		}

		config.Log.Infof("Fetched %d transactions, total %d/%d, current height %d",
			len(page), len(transactions), f.MaxTransactions, page[len(page)-1].Transaction.Block.Height)

		if int64(len(page)) < f.BatchSize {
			break
		}

		if f.Throttle > 0 {
			select {
			case <-time.After(f.Throttle):
			case <-ctx.Done():
				return transactions, ctx.Err()
			}
		}
	}

	// Make sure a short (or empty) history still produces a dump.
	err = WriteDump(f.DumpPath, transactions)
	if err != nil {
		return transactions, err
	}

	err = f.Checkpoints.Clear()
	if err != nil {
		config.Log.Warn("Could not remove checkpoint file after completed fetch", err)
	}

	return transactions, nil
}

// WriteDump atomically replaces the raw transaction dump. The dump is the
// interchange artifact between the fetch and convert stages and must always be
// a complete, parseable JSON array.
func WriteDump(path string, transactions []txModule.TxWrapper) error {
	body, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(path, body)
}

func ReadDump(path string) ([]txModule.TxWrapper, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var transactions []txModule.TxWrapper
	err = json.Unmarshal(body, &transactions)
	if err != nil {
		return nil, fmt.Errorf("malformed transaction dump %s: %w", path, err)
	}

	return transactions, nil
}

// interface conformance
var _ TxSource = (*graphql.Client)(nil)
