package distribution

const (
	MsgWithdrawDelegatorReward = "/cosmos.distribution.v1beta1.MsgWithdrawDelegatorReward"
	MsgSetWithdrawAddress      = "/cosmos.distribution.v1beta1.MsgSetWithdrawAddress" // An explicitly ignored msg for tx parsing purposes
)

// MsgWithdrawDelegatorRewardEnvelope carries no amount. The claimed reward is
// only visible in the transaction's coin_received log events.
type MsgWithdrawDelegatorRewardEnvelope struct {
	Type             string `json:"@type"`
	DelegatorAddress string `json:"delegator_address"`
	ValidatorAddress string `json:"validator_address"`
}
