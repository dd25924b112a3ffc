package staking

import (
	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
)

const (
	MsgDelegate        = "/cosmos.staking.v1beta1.MsgDelegate"
	MsgUndelegate      = "/cosmos.staking.v1beta1.MsgUndelegate"
	MsgBeginRedelegate = "/cosmos.staking.v1beta1.MsgBeginRedelegate"
	MsgCreateValidator = "/cosmos.staking.v1beta1.MsgCreateValidator" // An explicitly ignored msg for tx parsing purposes
	MsgEditValidator   = "/cosmos.staking.v1beta1.MsgEditValidator"   // An explicitly ignored msg for tx parsing purposes
)

type MsgDelegateEnvelope struct {
	Type             string        `json:"@type"`
	DelegatorAddress string        `json:"delegator_address"`
	ValidatorAddress string        `json:"validator_address"`
	Amount           txModule.Coin `json:"amount"`
}

// MsgUndelegate carries the same fields as MsgDelegate.
type MsgUndelegateEnvelope = MsgDelegateEnvelope

type MsgBeginRedelegateEnvelope struct {
	Type                string        `json:"@type"`
	DelegatorAddress    string        `json:"delegator_address"`
	ValidatorSrcAddress string        `json:"validator_src_address"`
	ValidatorDstAddress string        `json:"validator_dst_address"`
	Amount              txModule.Coin `json:"amount"`
}
