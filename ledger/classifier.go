package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/cheqd"
	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/authz"
	"github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/bank"
	"github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/distribution"
	"github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/gov"
	"github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/ibc"
	"github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/staking"
	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
	"github.com/DefiantLabs/cheqd-tax-cli/util"
	"github.com/shopspring/decimal"
)

// Classifier turns raw transactions into canonical ledger records for one
// wallet address. It is stateless between transactions.
type Classifier struct {
	Address string
}

func NewClassifier(address string) *Classifier {
	return &Classifier{Address: address}
}

// ClassifyAll deduplicates the wrappers by transaction hash (the indexer
// returns one wrapper per message-address pair) and classifies each unique
// transaction. Individual message failures are logged and skipped, never
// fatal.
func (c *Classifier) ClassifyAll(wrappers []txModule.TxWrapper) []Record {
	seen := make(map[string]struct{})
	records := []Record{}

	for _, wrapper := range wrappers {
		hash := wrapper.Transaction.Hash
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}

		records = append(records, c.Classify(wrapper.Transaction)...)
	}

	config.Log.Infof("Classified %d unique transactions into %d records", len(seen), len(records))
	return records
}

// Classify produces zero or more records for a single transaction, one per
// recognized message.
func (c *Classifier) Classify(transaction txModule.Transaction) []Record {
	timestamp, err := transaction.BlockTime()
	if err != nil {
		config.Log.Error(fmt.Sprintf("Skipping tx %s, unparseable block timestamp '%s'", transaction.Hash, transaction.Block.Timestamp), err)
		return nil
	}

	base := Record{
		Hash:       transaction.Hash,
		Height:     transaction.Block.Height,
		Timestamp:  timestamp.Truncate(time.Minute),
		Currency:   cheqd.DisplayDenom,
		Success:    transaction.Success,
		ClaimCount: 1,
	}
	base.FeePayer, base.FeeAmount = c.feeFor(transaction)

	records := []Record{}
	for _, rawMsg := range transaction.Messages {
		var envelope txModule.MessageEnvelope
		if err := json.Unmarshal(rawMsg, &envelope); err != nil {
			config.Log.Error(fmt.Sprintf("Skipping malformed message in tx %s", transaction.Hash), err)
			continue
		}

		msgRecords, err := c.classifyMessage(envelope.Type, rawMsg, transaction, base)
		if err != nil {
			if errors.Is(err, txModule.ErrUnknownMessage) {
				config.Log.Debugf("No classifier for message type '%v' in tx %s, skipping", envelope.Type, transaction.Hash)
			} else {
				config.Log.Error(fmt.Sprintf("Error classifying message type '%v' in tx %s", envelope.Type, transaction.Hash), err)
			}
			continue
		}

		records = append(records, msgRecords...)
	}

	return records
}

func (c *Classifier) classifyMessage(msgType string, rawMsg json.RawMessage, transaction txModule.Transaction, base Record) ([]Record, error) {
	switch msgType {
	case bank.MsgSend:
		return c.classifyMsgSend(rawMsg, base)
	case staking.MsgDelegate:
		return c.classifyMsgDelegate(rawMsg, base)
	case staking.MsgUndelegate:
		return c.classifyMsgUndelegate(rawMsg, transaction, base)
	case staking.MsgBeginRedelegate:
		return c.classifyMsgBeginRedelegate(rawMsg, transaction, base)
	case distribution.MsgWithdrawDelegatorReward:
		return c.classifyMsgWithdrawDelegatorReward(rawMsg, transaction, base)
	case ibc.MsgTransfer:
		return c.classifyMsgTransfer(rawMsg, base)
	case gov.MsgVote:
		return c.classifyMsgVote(rawMsg, base)
	case authz.MsgExec:
		return c.classifyMsgExec(rawMsg, transaction, base)
	case ibc.MsgUpdateClient, ibc.MsgCreateClient, ibc.MsgRecvPacket, ibc.MsgAcknowledgement, ibc.MsgTimeout,
		authz.MsgGrant, authz.MsgRevoke,
		distribution.MsgSetWithdrawAddress,
		staking.MsgCreateValidator, staking.MsgEditValidator,
		gov.MsgVoteWeighted, gov.MsgSubmitProposal, gov.MsgDeposit,
		bank.MsgMultiSend:
		// recognized but deliberately not part of the ledger
		return nil, nil
	default:
		return nil, txModule.ErrUnknownMessage
	}
}

func (c *Classifier) classifyMsgSend(rawMsg json.RawMessage, base Record) ([]Record, error) {
	var msg bank.MsgSendEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: bank.MsgSend, Reason: err.Error()}
	}
	if len(msg.Amount) == 0 {
		return nil, &txModule.MessageFormatError{MessageType: bank.MsgSend, Reason: "empty amount array"}
	}

	amount, currency, err := normalizeCoin(msg.Amount[0])
	if err != nil {
		return nil, &txModule.MessageFormatError{MessageType: bank.MsgSend, Reason: err.Error()}
	}

	record := base
	record.Type = Transfer
	record.Amount = amount
	record.Currency = currency
	record.Sender = msg.FromAddress
	record.Receiver = msg.ToAddress
	return []Record{record}, nil
}

func (c *Classifier) classifyMsgDelegate(rawMsg json.RawMessage, base Record) ([]Record, error) {
	var msg staking.MsgDelegateEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: staking.MsgDelegate, Reason: err.Error()}
	}

	amount, currency, err := normalizeCoin(msg.Amount)
	if err != nil {
		return nil, &txModule.MessageFormatError{MessageType: staking.MsgDelegate, Reason: err.Error()}
	}

	record := base
	record.Type = Delegate
	record.Amount = amount
	record.Currency = currency
	record.Sender = msg.DelegatorAddress
	record.Receiver = msg.ValidatorAddress
	record.Description = fmt.Sprintf("Delegated %s %s to %s", amount, currency, msg.ValidatorAddress)
	return []Record{record}, nil
}

func (c *Classifier) classifyMsgUndelegate(rawMsg json.RawMessage, transaction txModule.Transaction, base Record) ([]Record, error) {
	var msg staking.MsgUndelegateEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: staking.MsgUndelegate, Reason: err.Error()}
	}

	amount, currency, err := normalizeCoin(msg.Amount)
	if err != nil {
		return nil, &txModule.MessageFormatError{MessageType: staking.MsgUndelegate, Reason: err.Error()}
	}

	record := base
	record.Type = Undelegate
	record.Amount = amount
	record.Currency = currency
	record.Sender = msg.ValidatorAddress
	record.Receiver = msg.DelegatorAddress
	record.Description = fmt.Sprintf("Undelegated %s %s from %s", amount, currency, msg.ValidatorAddress)

	// Undelegating auto-withdraws any pending rewards from the validator.
	records := []Record{record}
	if reward, ok := c.autoWithdrawnReward(transaction, base, msg.ValidatorAddress); ok {
		records = append(records, reward)
	}
	return records, nil
}

func (c *Classifier) classifyMsgBeginRedelegate(rawMsg json.RawMessage, transaction txModule.Transaction, base Record) ([]Record, error) {
	var msg staking.MsgBeginRedelegateEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: staking.MsgBeginRedelegate, Reason: err.Error()}
	}

	amount, currency, err := normalizeCoin(msg.Amount)
	if err != nil {
		return nil, &txModule.MessageFormatError{MessageType: staking.MsgBeginRedelegate, Reason: err.Error()}
	}

	record := base
	record.Type = Redelegate
	record.Amount = amount
	record.Currency = currency
	record.Sender = msg.ValidatorSrcAddress
	record.Receiver = msg.ValidatorDstAddress
	record.Description = fmt.Sprintf("Redelegated %s %s from %s to %s", amount, currency, msg.ValidatorSrcAddress, msg.ValidatorDstAddress)

	records := []Record{record}
	if reward, ok := c.autoWithdrawnReward(transaction, base, msg.ValidatorSrcAddress); ok {
		records = append(records, reward)
	}
	return records, nil
}

// The withdraw-reward message itself carries no amount. The claimed value is
// recovered from the coin_received events credited to the queried wallet. A
// missing event means there is no reward to report, not an error.
func (c *Classifier) classifyMsgWithdrawDelegatorReward(rawMsg json.RawMessage, transaction txModule.Transaction, base Record) ([]Record, error) {
	var msg distribution.MsgWithdrawDelegatorRewardEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: distribution.MsgWithdrawDelegatorReward, Reason: err.Error()}
	}

	if !transaction.Success {
		return nil, nil
	}

	baseUnits, found := txModule.CoinsReceivedForDenom(c.Address, cheqd.BaseDenom, transaction.Logs)
	if !found || baseUnits.IsZero() {
		config.Log.Debugf("No %s coin_received event for %s in tx %s, no reward to report", cheqd.BaseDenom, c.Address, transaction.Hash)
		return nil, nil
	}

	record := base
	record.Type = Reward
	record.Amount = baseUnits.Shift(-cheqd.Exponent)
	record.Sender = msg.ValidatorAddress
	record.Receiver = msg.DelegatorAddress
	return []Record{record}, nil
}

func (c *Classifier) classifyMsgTransfer(rawMsg json.RawMessage, base Record) ([]Record, error) {
	var msg ibc.MsgTransferEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: ibc.MsgTransfer, Reason: err.Error()}
	}

	amount, currency, err := normalizeCoin(msg.Token)
	if err != nil {
		return nil, &txModule.MessageFormatError{MessageType: ibc.MsgTransfer, Reason: err.Error()}
	}

	record := base
	record.Type = IBCTransfer
	record.Amount = amount
	record.Currency = currency
	record.Sender = msg.Sender
	record.Receiver = msg.Receiver
	return []Record{record}, nil
}

func (c *Classifier) classifyMsgVote(rawMsg json.RawMessage, base Record) ([]Record, error) {
	var msg gov.MsgVoteEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: gov.MsgVote, Reason: err.Error()}
	}

	record := base
	record.Type = Vote
	record.Amount = decimal.Zero
	record.Sender = msg.Voter
	record.Description = fmt.Sprintf("Voted on proposal %s", msg.ProposalID)
	return []Record{record}, nil
}

// Authz exec transactions are how validators batch-claim rewards for their
// delegators. The wrapped messages are not unpacked individually; any reward
// credited to the wallet is recovered from the event log exactly like a
// direct withdraw-reward claim.
func (c *Classifier) classifyMsgExec(rawMsg json.RawMessage, transaction txModule.Transaction, base Record) ([]Record, error) {
	var msg authz.MsgExecEnvelope
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, &txModule.MessageFormatError{MessageType: authz.MsgExec, Reason: err.Error()}
	}

	if !transaction.Success {
		return nil, nil
	}

	baseUnits, found := txModule.CoinsReceivedForDenom(c.Address, cheqd.BaseDenom, transaction.Logs)
	if !found || baseUnits.IsZero() {
		config.Log.Debugf("Authz exec in tx %s credited nothing to %s, skipping", transaction.Hash, c.Address)
		return nil, nil
	}

	record := base
	record.Type = AuthzExec
	record.Amount = baseUnits.Shift(-cheqd.Exponent)
	record.Sender = msg.Grantee
	record.Receiver = c.Address
	return []Record{record}, nil
}

// autoWithdrawnReward builds the reward record implied by a successful
// (re)delegation-family message, which forces a withdrawal of pending rewards.
func (c *Classifier) autoWithdrawnReward(transaction txModule.Transaction, base Record, validator string) (Record, bool) {
	if !transaction.Success {
		return Record{}, false
	}

	baseUnits, found := txModule.CoinsReceivedForDenom(c.Address, cheqd.BaseDenom, transaction.Logs)
	if !found || baseUnits.IsZero() {
		return Record{}, false
	}

	record := base
	record.Type = Reward
	record.Amount = baseUnits.Shift(-cheqd.Exponent)
	record.Sender = validator
	record.Receiver = c.Address
	record.Description = "Rewards auto-withdrawn by staking operation"
	return record, true
}

func (c *Classifier) feeFor(transaction txModule.Transaction) (payer string, amount decimal.Decimal) {
	payer = transaction.Fee.Payer
	if payer == "" {
		payer = c.Address
	}

	if len(transaction.Fee.Amount) == 0 {
		return payer, decimal.Zero
	}

	normalized, _, err := normalizeCoin(transaction.Fee.Amount[0])
	if err != nil {
		config.Log.Debugf("Unparseable fee amount '%v' in tx %s, treating as zero", transaction.Fee.Amount[0].Amount, transaction.Hash)
		return payer, decimal.Zero
	}
	return payer, normalized
}

// normalizeCoin converts a base-denomination coin into display units. Coins in
// foreign denominations (IBC vouchers and the like) keep their raw scale and
// denom, there is no exponent registry to consult for them.
func normalizeCoin(coin txModule.Coin) (decimal.Decimal, string, error) {
	if coin.Denom == cheqd.BaseDenom {
		amount, err := util.ToStandardUnits(coin.Amount, cheqd.Exponent)
		if err != nil {
			return decimal.Decimal{}, "", err
		}
		return amount, cheqd.DisplayDenom, nil
	}

	amount, err := decimal.NewFromString(coin.Amount)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	return amount, coin.Denom, nil
}
