package fetcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a fixed history page by page and can be told to fail on a
// specific call to simulate an outage mid-fetch.
type fakeSource struct {
	history    []txModule.TxWrapper
	calls      int
	failOnCall int // 0 means never fail
}

func (s *fakeSource) GetTxsByAddressWithRetry(ctx context.Context, address string, limit, offset, retryMaxAttempts int64, retryMaxWaitSeconds uint64) ([]txModule.TxWrapper, error) {
	s.calls++
	if s.failOnCall != 0 && s.calls == s.failOnCall {
		return nil, errors.New("indexer went away")
	}

	if offset >= int64(len(s.history)) {
		return []txModule.TxWrapper{}, nil
	}

	end := offset + limit
	if end > int64(len(s.history)) {
		end = int64(len(s.history))
	}
	return s.history[offset:end], nil
}

func mkHistory(count int) []txModule.TxWrapper {
	history := make([]txModule.TxWrapper, count)
	for i := range history {
		history[i] = txModule.TxWrapper{
			Transaction: txModule.Transaction{
				Hash:    fmt.Sprintf("HASH%04d", i),
				Height:  int64(1000 + i),
				Success: true,
				Block:   txModule.Block{Height: int64(1000 + i), Timestamp: "2023-04-01T12:30:45"},
			},
		}
	}
	return history
}

func mkFetcher(t *testing.T, source *fakeSource, batchSize, maxTransactions int64) *Fetcher {
	t.Helper()
	dir := t.TempDir()
	return &Fetcher{
		Client:          source,
		Address:         "cheqd1testwallet",
		BatchSize:       batchSize,
		MaxTransactions: maxTransactions,
		Checkpoints:     NewCheckpointStore(filepath.Join(dir, "fetch_progress.json")),
		DumpPath:        filepath.Join(dir, "transactions.json"),
	}
}

func TestFetchAllCompleteHistory(t *testing.T) {
	source := &fakeSource{history: mkHistory(250)}
	f := mkFetcher(t, source, 100, 5000)

	transactions, err := f.FetchAll(context.Background())
	require.Nil(t, err)
	assert.Len(t, transactions, 250)
	assert.Equal(t, source.history, transactions)

	// completed fetch clears the checkpoint and leaves a readable dump
	checkpoint, err := f.Checkpoints.Load()
	require.Nil(t, err)
	assert.Nil(t, checkpoint)

	dumped, err := ReadDump(f.DumpPath)
	require.Nil(t, err)
	assert.Len(t, dumped, 250)
}

func TestFetchAllBatchSizeInvariance(t *testing.T) {
	history := mkHistory(250)

	large := mkFetcher(t, &fakeSource{history: history}, 100, 5000)
	largeTxs, err := large.FetchAll(context.Background())
	require.Nil(t, err)

	small := mkFetcher(t, &fakeSource{history: history}, 37, 5000)
	smallTxs, err := small.FetchAll(context.Background())
	require.Nil(t, err)

	assert.Equal(t, largeTxs, smallTxs, "page size must not change the fetched set")
}

func TestFetchAllMaxTransactionsCap(t *testing.T) {
	source := &fakeSource{history: mkHistory(250)}
	f := mkFetcher(t, source, 100, 150)

	transactions, err := f.FetchAll(context.Background())
	require.Nil(t, err)
	assert.Len(t, transactions, 150, "the final page should be truncated to the cap, not dropped or overshot")
	assert.Equal(t, source.history[:150], transactions)
}

func TestFetchAllEmptyHistory(t *testing.T) {
	f := mkFetcher(t, &fakeSource{history: nil}, 100, 5000)

	transactions, err := f.FetchAll(context.Background())
	require.Nil(t, err)
	assert.Empty(t, transactions)

	// an empty history still produces a parseable dump
	dumped, err := ReadDump(f.DumpPath)
	require.Nil(t, err)
	assert.Empty(t, dumped)
}

func TestFetchAllResumeAfterFailure(t *testing.T) {
	history := mkHistory(250)

	// fails while requesting the third page
	source := &fakeSource{history: history, failOnCall: 3}
	f := mkFetcher(t, source, 50, 5000)

	partial, err := f.FetchAll(context.Background())
	require.NotNil(t, err)
	assert.Len(t, partial, 100, "two committed pages should survive the failure")

	checkpoint, err := f.Checkpoints.Load()
	require.Nil(t, err)
	require.NotNil(t, checkpoint, "failed fetch must leave its checkpoint behind")
	assert.Equal(t, int64(100), checkpoint.Cursor)

	// rerun against the same artifacts once the source recovers
	healed := &fakeSource{history: history}
	resumed := &Fetcher{
		Client:          healed,
		Address:         f.Address,
		BatchSize:       f.BatchSize,
		MaxTransactions: f.MaxTransactions,
		Checkpoints:     f.Checkpoints,
		DumpPath:        f.DumpPath,
	}

	transactions, err := resumed.FetchAll(context.Background())
	require.Nil(t, err)
	assert.Equal(t, history, transactions, "resumed fetch should equal an uninterrupted one")
	assert.Equal(t, 4, healed.calls, "resume should start at the checkpoint cursor, not refetch from zero")

	checkpoint, err = f.Checkpoints.Load()
	require.Nil(t, err)
	assert.Nil(t, checkpoint)
}

func TestFetchAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := mkFetcher(t, &fakeSource{history: mkHistory(10)}, 100, 5000)
	_, err := f.FetchAll(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
