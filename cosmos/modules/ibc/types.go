package ibc

import (
	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
)

const (
	MsgTransfer = "/ibc.applications.transfer.v1.MsgTransfer"

	// Relayer plumbing. Explicitly ignored msgs for tx parsing purposes;
	// MsgUpdateClient in particular floods the history of any address that
	// has ever relayed.
	MsgUpdateClient    = "/ibc.core.client.v1.MsgUpdateClient"
	MsgCreateClient    = "/ibc.core.client.v1.MsgCreateClient"
	MsgRecvPacket      = "/ibc.core.channel.v1.MsgRecvPacket"
	MsgAcknowledgement = "/ibc.core.channel.v1.MsgAcknowledgement"
	MsgTimeout         = "/ibc.core.channel.v1.MsgTimeout"
)

type MsgTransferEnvelope struct {
	Type     string        `json:"@type"`
	Sender   string        `json:"sender"`
	Receiver string        `json:"receiver"`
	Token    txModule.Coin `json:"token"`
}
