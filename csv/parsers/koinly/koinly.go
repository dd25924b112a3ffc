package koinly

import (
	"sort"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/cheqd"
	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/DefiantLabs/cheqd-tax-cli/csv/parsers"
	"github.com/DefiantLabs/cheqd-tax-cli/ledger"
)

func (p *Parser) TimeLayout() string {
	return TimeLayout
}

// ProcessRecords converts ledger records into Koinly rows. Fees are charged at
// most once per transaction hash: a transaction producing several records (a
// redelegation plus its auto-withdrawn reward, say) attaches its fee to the
// first row only.
func (p *Parser) ProcessRecords(address string, records []ledger.Record) error {
	feeCharged := make(map[string]bool)

	for _, record := range records {
		var newRow Row
		var err error
		feeOnly := false

		switch {
		case !record.Success:
			// Failed transactions still burn their fee.
			failed := record
			if failed.Description == "" {
				failed.Description = "Fee for failed transaction"
			}
			err = newRow.ParseFeeOnly(failed)
			feeOnly = true
		case record.Type == ledger.Reward || record.Type == ledger.AuthzExec:
			err = newRow.ParseReward(record)
		case record.Type == ledger.Transfer || record.Type == ledger.IBCTransfer:
			err = newRow.ParseTransfer(address, record)
		case record.Type == ledger.Delegate || record.Type == ledger.Undelegate ||
			record.Type == ledger.Redelegate || record.Type == ledger.Vote:
			err = newRow.ParseFeeOnly(record)
			feeOnly = true
		default:
			config.Log.Errorf("no koinly row mapping for record type '%v'", record.Type)
			continue
		}

		if err != nil {
			config.Log.Errorf("error building koinly row for record type '%v': %v", record.Type, err)
			continue
		}

		if feeOnly {
			// The fee is the whole row. Nothing to report when the wallet did
			// not pay it, it is zero, or another row of the same tx already
			// carries it.
			if record.FeePayer != address || record.FeeAmount.IsZero() || feeCharged[record.Hash] {
				continue
			}
			feeCharged[record.Hash] = true
			p.Rows = append(p.Rows, newRow)
			continue
		}

		// Consolidated rows already carry the exact fee for the transactions
		// they merged. Mark those hashes, and only those, as charged; a merged
		// claim whose transaction also produced a cost row left its fee there.
		if len(record.FeeHashes) > 0 {
			if record.FeePayer == address && !record.FeeAmount.IsZero() {
				newRow.FeeAmount = record.FeeAmount.String()
				newRow.FeeCurrency = cheqd.DisplayDenom
			}
			for _, hash := range record.FeeHashes {
				feeCharged[hash] = true
			}
			p.Rows = append(p.Rows, newRow)
			continue
		}

		if record.FeePayer == address && !record.FeeAmount.IsZero() && !feeCharged[record.Hash] {
			newRow.FeeAmount = record.FeeAmount.String()
			newRow.FeeCurrency = cheqd.DisplayDenom
			feeCharged[record.Hash] = true
		}

		p.Rows = append(p.Rows, newRow)
	}

	return nil
}

func (p *Parser) GetRows() []parsers.CsvRow {
	// Sort by date
	sort.Slice(p.Rows, func(i int, j int) bool {
		leftDate, err := time.Parse(TimeLayout, p.Rows[i].Date)
		if err != nil {
			config.Log.Error("Error sorting left date.", err)
			return false
		}
		rightDate, err := time.Parse(TimeLayout, p.Rows[j].Date)
		if err != nil {
			config.Log.Error("Error sorting right date.", err)
			return false
		}
		if !leftDate.Equal(rightDate) {
			return leftDate.Before(rightDate)
		}
		return p.Rows[i].TxHash < p.Rows[j].TxHash
	})

	csvRows := make([]parsers.CsvRow, len(p.Rows))
	for i, v := range p.Rows {
		csvRows[i] = v
	}
	return csvRows
}

func (p Parser) GetHeaders() []string {
	return []string{
		"Date", "Sent Amount", "Sent Currency", "Received Amount", "Received Currency", "Fee Amount", "Fee Currency",
		"Net Worth Amount", "Net Worth Currency", "Label", "Description", "TxHash",
	}
}
