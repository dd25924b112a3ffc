package gov

import "encoding/json"

const (
	MsgVote           = "/cosmos.gov.v1beta1.MsgVote"
	MsgVoteWeighted   = "/cosmos.gov.v1beta1.MsgVoteWeighted"   // An explicitly ignored msg for tx parsing purposes
	MsgSubmitProposal = "/cosmos.gov.v1beta1.MsgSubmitProposal" // An explicitly ignored msg for tx parsing purposes
	MsgDeposit        = "/cosmos.gov.v1beta1.MsgDeposit"        // An explicitly ignored msg for tx parsing purposes
)

type MsgVoteEnvelope struct {
	Type       string      `json:"@type"`
	ProposalID json.Number `json:"proposal_id"`
	Voter      string      `json:"voter"`
	Option     string      `json:"option"`
}
