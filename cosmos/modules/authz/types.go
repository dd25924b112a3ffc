package authz

import "encoding/json"

const (
	MsgExec   = "/cosmos.authz.v1beta1.MsgExec"
	MsgGrant  = "/cosmos.authz.v1beta1.MsgGrant"  // An explicitly ignored msg for tx parsing purposes
	MsgRevoke = "/cosmos.authz.v1beta1.MsgRevoke" // An explicitly ignored msg for tx parsing purposes
)

// MsgExecEnvelope wraps other messages executed on behalf of a granter,
// commonly batched reward withdrawals issued by a validator's restaking bot.
type MsgExecEnvelope struct {
	Type    string            `json:"@type"`
	Grantee string            `json:"grantee"`
	Msgs    []json.RawMessage `json:"msgs"`
}
