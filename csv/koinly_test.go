package csv

import (
	"strings"
	"testing"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/csv/parsers/koinly"
	"github.com/DefiantLabs/cheqd-tax-cli/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "cheqd1testwallet"

func mkLedgerRecord(hash string, recordType ledger.RecordType, amount string, timestamp time.Time) ledger.Record {
	return ledger.Record{
		Hash:       hash,
		Height:     1000,
		Type:       recordType,
		Timestamp:  timestamp,
		Amount:     decimal.RequireFromString(amount),
		Currency:   "CHEQ",
		FeePayer:   testAddress,
		FeeAmount:  decimal.RequireFromString("0.005"),
		Success:    true,
		ClaimCount: 1,
	}
}

func TestKoinlyRewardRow(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)
	record := mkLedgerRecord("RWD1", ledger.Reward, "2.5", ts)
	record.Description = "Summarised rewards withdrawn in 5 separate Authz Exec transactions"

	rows, headers, err := ParseForAddress(testAddress, []ledger.Record{record}, koinly.ParserKey)
	require.Nil(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, headers, 12)

	cols := rows[0].GetRowForCsv()
	require.Len(t, cols, len(headers))

	parsed, err := time.Parse(koinly.TimeLayout, cols[0])
	require.Nil(t, err, "date column should round-trip through the koinly layout")
	assert.Equal(t, ts, parsed.UTC())

	assert.Equal(t, "2.5", cols[3], "rewards are received amounts")
	assert.Equal(t, "CHEQ", cols[4])
	assert.Equal(t, "0.005", cols[5], "the claim fee rides along on the reward row")
	assert.Equal(t, koinly.Reward.String(), cols[9])
	assert.Contains(t, cols[10], "5 separate Authz Exec")
	assert.Equal(t, "RWD1", cols[11])
}

func TestKoinlyTransferDirection(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	sent := mkLedgerRecord("OUT1", ledger.Transfer, "1", ts)
	sent.Sender = testAddress
	sent.Receiver = "cheqd1recipient"

	received := mkLedgerRecord("IN1", ledger.Transfer, "2", ts.Add(time.Hour))
	received.Sender = "cheqd1friend"
	received.Receiver = testAddress
	received.FeePayer = "cheqd1friend"

	rows, _, err := ParseForAddress(testAddress, []ledger.Record{sent, received}, koinly.ParserKey)
	require.Nil(t, err)
	require.Len(t, rows, 2)

	outCols := rows[0].GetRowForCsv()
	assert.Equal(t, "1", outCols[1], "outgoing transfer fills the sent column")
	assert.Equal(t, "", outCols[3])

	inCols := rows[1].GetRowForCsv()
	assert.Equal(t, "", inCols[1])
	assert.Equal(t, "2", inCols[3], "incoming transfer fills the received column")
	assert.Equal(t, "", inCols[5], "no fee charged when someone else paid it")
}

func TestKoinlyFeeChargedOncePerTx(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	// an undelegation and its auto-withdrawn reward share one tx and one fee
	undelegate := mkLedgerRecord("UND1", ledger.Undelegate, "10", ts)
	reward := mkLedgerRecord("UND1", ledger.Reward, "0.5", ts)

	rows, _, err := ParseForAddress(testAddress, []ledger.Record{undelegate, reward}, koinly.ParserKey)
	require.Nil(t, err)
	require.Len(t, rows, 2)

	var feeColumns []string
	var feeOnlySent int
	for _, row := range rows {
		cols := row.GetRowForCsv()
		if cols[5] != "" {
			feeColumns = append(feeColumns, cols[5])
		}
		if cols[9] == koinly.Cost.String() {
			feeOnlySent++
		}
	}
	assert.Len(t, feeColumns, 0, "the undelegate row consumed the fee as a cost row")
	assert.Equal(t, 1, feeOnlySent)
}

func TestKoinlyFeeConservedThroughConsolidation(t *testing.T) {
	ts := time.Date(2023, 4, 1, 9, 0, 0, 0, time.UTC)

	// a direct claim and a same-day undelegation with its auto-withdrawn
	// reward: two transactions, two fees, three records before consolidation
	directClaim := mkLedgerRecord("CLAIM1", ledger.Reward, "0.002", ts)
	directClaim.FeeAmount = decimal.RequireFromString("0.007")

	undelegate := mkLedgerRecord("UND1", ledger.Undelegate, "10", ts.Add(time.Hour))
	autoReward := mkLedgerRecord("UND1", ledger.Reward, "0.001", ts.Add(time.Hour))

	records := ledger.Consolidate([]ledger.Record{directClaim, undelegate, autoReward})

	rows, _, err := ParseForAddress(testAddress, records, koinly.ParserKey)
	require.Nil(t, err)
	require.Len(t, rows, 2)

	// every fee must appear exactly once, whether in a fee column or as the
	// sent amount of a cost row
	total := decimal.Zero
	for _, row := range rows {
		cols := row.GetRowForCsv()
		if cols[5] != "" {
			total = total.Add(decimal.RequireFromString(cols[5]))
		}
		if cols[9] == koinly.Cost.String() && cols[1] != "" {
			total = total.Add(decimal.RequireFromString(cols[1]))
		}
	}
	assert.Equal(t, "0.012", total.String(), "0.007 + 0.005, each transaction's fee exported exactly once")
}

func TestKoinlyFailedTransaction(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	failed := mkLedgerRecord("FAIL1", ledger.Transfer, "1", ts)
	failed.Success = false

	rows, _, err := ParseForAddress(testAddress, []ledger.Record{failed}, koinly.ParserKey)
	require.Nil(t, err)
	require.Len(t, rows, 1)

	cols := rows[0].GetRowForCsv()
	assert.Equal(t, "0.005", cols[1], "a failed transaction reports only its burnt fee")
	assert.Equal(t, koinly.Cost.String(), cols[9])
}

func TestKoinlyRowsSortedByDate(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

	later := mkLedgerRecord("BBB", ledger.Reward, "1", ts.Add(2*time.Hour))
	earlier := mkLedgerRecord("AAA", ledger.Reward, "2", ts)

	rows, _, err := ParseForAddress(testAddress, []ledger.Record{later, earlier}, koinly.ParserKey)
	require.Nil(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAA", rows[0].GetRowForCsv()[11])
	assert.Equal(t, "BBB", rows[1].GetRowForCsv()[11])
}

func TestToCsv(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)
	record := mkLedgerRecord("RWD1", ledger.Reward, "2.5", ts)

	rows, headers, err := ParseForAddress(testAddress, []ledger.Record{record}, koinly.ParserKey)
	require.Nil(t, err)

	buffer, err := ToCsv(rows, headers)
	require.Nil(t, err)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Date,Sent Amount,Sent Currency"))
	assert.Contains(t, lines[1], "RWD1")
}

func TestGetParser(t *testing.T) {
	assert.NotNil(t, GetParser(koinly.ParserKey))
	assert.Nil(t, GetParser("spreadsheet-of-lies"))
}
