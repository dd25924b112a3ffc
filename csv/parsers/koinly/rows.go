package koinly

import (
	"fmt"

	"github.com/DefiantLabs/cheqd-tax-cli/cheqd"
	"github.com/DefiantLabs/cheqd-tax-cli/ledger"
)

func (row Row) GetRowForCsv() []string {
	return []string{
		row.Date,
		row.SentAmount,
		row.SentCurrency,
		row.ReceivedAmount,
		row.ReceivedCurrency,
		row.FeeAmount,
		row.FeeCurrency,
		row.NetWorthAmount,
		row.NetWorthCurrency,
		row.Label.String(),
		row.Description,
		row.TxHash,
	}
}

func (row Row) GetDate() string {
	return row.Date
}

// ParseReward fills the row for a staking-reward payout. Consolidated daily
// records carry their claim summary in the description already.
func (row *Row) ParseReward(record ledger.Record) error {
	row.Date = record.Timestamp.Format(TimeLayout)
	row.ReceivedAmount = record.Amount.String()
	row.ReceivedCurrency = record.Currency
	row.Label = Reward
	row.Description = record.Description
	row.TxHash = record.Hash
	return nil
}

// ParseTransfer fills the row for a bank or IBC transfer. The searched address
// determines the direction; a transfer not touching the address is an error
// since upstream classification should have filtered it.
func (row *Row) ParseTransfer(address string, record ledger.Record) error {
	row.Date = record.Timestamp.Format(TimeLayout)
	row.Description = record.Description
	row.TxHash = record.Hash

	switch address {
	case record.Sender:
		row.SentAmount = record.Amount.String()
		row.SentCurrency = record.Currency
	case record.Receiver:
		row.ReceivedAmount = record.Amount.String()
		row.ReceivedCurrency = record.Currency
	default:
		return fmt.Errorf("transfer in tx %s does not involve address %s", record.Hash, address)
	}

	return nil
}

// ParseFeeOnly fills the row for records whose only tax consequence is the fee
// paid, staking operations and governance votes among them. The fee goes in
// the sent column with the cost label, the way failed transactions are
// reported too.
func (row *Row) ParseFeeOnly(record ledger.Record) error {
	// Fees are always paid in the native token regardless of what the
	// transaction moved.
	row.Date = record.Timestamp.Format(TimeLayout)
	row.SentAmount = record.FeeAmount.String()
	row.SentCurrency = cheqd.DisplayDenom
	row.Label = Cost
	row.Description = record.Description
	row.TxHash = record.Hash
	return nil
}
