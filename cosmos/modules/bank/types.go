package bank

import (
	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
)

const (
	MsgSend      = "/cosmos.bank.v1beta1.MsgSend"
	MsgMultiSend = "/cosmos.bank.v1beta1.MsgMultiSend" // An explicitly ignored msg for tx parsing purposes
)

// MsgSendEnvelope is the GraphQL JSON shape of a bank send message.
type MsgSendEnvelope struct {
	Type        string          `json:"@type"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Amount      []txModule.Coin `json:"amount"`
}
