package tx

import (
	"encoding/json"
	"time"
)

// TxWrapper:
// The BigDipper GraphQL messages_by_address action returns one row per
// (message, address) pair, each wrapping the full transaction e.g.
//
//	{
//	  "transaction": {
//	    "hash": "ABC...",
//	    "success": true,
//	    "messages": [ { "@type": "/cosmos.bank.v1beta1.MsgSend", ... } ],
//	    "logs": [ { "events": [ { "type": "coin_received", "attributes": [...] } ] } ],
//	    "fee": { "amount": [ { "denom": "ncheq", "amount": "5000000" } ] },
//	    "block": { "height": 123, "timestamp": "2024-01-02T03:04:05" }
//	  }
//	}
//
// The same transaction therefore appears once per message that touches the
// queried address, and callers must deduplicate by hash.
type TxWrapper struct {
	Transaction Transaction `json:"transaction"`
}

type Transaction struct {
	Hash     string            `json:"hash"`
	Height   int64             `json:"height"`
	Success  bool              `json:"success"`
	Messages []json.RawMessage `json:"messages"`
	Logs     []LogMessage      `json:"logs"`
	Fee      Fee               `json:"fee"`
	Block    Block             `json:"block"`
}

type Block struct {
	Height    int64  `json:"height"`
	Timestamp string `json:"timestamp"`
}

type Fee struct {
	Amount   []Coin `json:"amount"`
	GasLimit string `json:"gas_limit"`
	Payer    string `json:"payer"`
	Granter  string `json:"granter"`
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// This struct just parses the KNOWN fields of a log entry. Events are specific
// to each message type, more specific parsing happens per message handler.
type LogMessage struct {
	MessageIndex int               `json:"msg_index"`
	Events       []LogMessageEvent `json:"events"`
}

type LogMessageEvent struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MessageEnvelope peeks at the polymorphic message type tag without committing
// to a concrete message shape.
type MessageEnvelope struct {
	Type string `json:"@type"`
}

// Block timestamps come back from the indexer either with or without an
// explicit zone suffix. Both forms are UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t Transaction) BlockTime() (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, t.Block.Timestamp)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
