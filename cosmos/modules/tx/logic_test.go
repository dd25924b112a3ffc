package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testReceiver = "cheqd1receiveraddress"

func mkCoinReceivedLogs(receiver, amount string) []LogMessage {
	return []LogMessage{
		{
			MessageIndex: 0,
			Events: []LogMessageEvent{
				{
					Type: EventTypeCoinReceived,
					Attributes: []Attribute{
						{Key: EventAttributeReceiver, Value: receiver},
						{Key: EventAttributeAmount, Value: amount},
					},
				},
			},
		},
	}
}

func TestGetCoinsReceived(t *testing.T) {
	logs := mkCoinReceivedLogs(testReceiver, "1000000ncheq")
	coins := GetCoinsReceived(testReceiver, logs)
	assert.Equal(t, []string{"1000000ncheq"}, coins)

	// comma separated amounts split into individual coins
	logs = mkCoinReceivedLogs(testReceiver, "1000000ncheq,500ibc/ABC123")
	coins = GetCoinsReceived(testReceiver, logs)
	assert.Equal(t, []string{"1000000ncheq", "500ibc/ABC123"}, coins)

	// credits to other addresses are not ours
	coins = GetCoinsReceived("cheqd1someoneelse", logs)
	assert.Empty(t, coins)
}

func TestGetCoinsReceivedMultipleCredits(t *testing.T) {
	logs := []LogMessage{
		{
			Events: []LogMessageEvent{
				{
					Type: EventTypeCoinReceived,
					Attributes: []Attribute{
						{Key: EventAttributeReceiver, Value: "cheqd1validatorwallet"},
						{Key: EventAttributeAmount, Value: "10ncheq"},
						{Key: EventAttributeReceiver, Value: testReceiver},
						{Key: EventAttributeAmount, Value: "2000000000ncheq"},
					},
				},
			},
		},
	}

	coins := GetCoinsReceived(testReceiver, logs)
	assert.Equal(t, []string{"2000000000ncheq"}, coins, "should only pick up the credit paired with our receiver attribute")
}

func TestCoinsReceivedForDenom(t *testing.T) {
	logs := mkCoinReceivedLogs(testReceiver, "1000000ncheq,2000000ncheq,500ibc/ABC123")

	total, found := CoinsReceivedForDenom(testReceiver, "ncheq", logs)
	assert.True(t, found)
	assert.Equal(t, "3000000", total.String(), "credits in the requested denom should be summed")

	// no matching credit is reported as not found, not as zero
	total, found = CoinsReceivedForDenom("cheqd1someoneelse", "ncheq", logs)
	assert.False(t, found)
	assert.True(t, total.IsZero())

	_, found = CoinsReceivedForDenom(testReceiver, "ncheq", nil)
	assert.False(t, found)
}

func TestCoinsReceivedForDenomSuffixCollision(t *testing.T) {
	// a denom ending in ncheq must not be mistaken for the base denom
	logs := mkCoinReceivedLogs(testReceiver, "500xncheq")

	_, found := CoinsReceivedForDenom(testReceiver, "ncheq", logs)
	assert.False(t, found)
}

func TestGetValueForAttribute(t *testing.T) {
	evt := &LogMessageEvent{
		Type: EventTypeWithdrawRewards,
		Attributes: []Attribute{
			{Key: "validator", Value: "cheqdvaloper1abc"},
			{Key: EventAttributeAmount, Value: "123ncheq"},
		},
	}

	value, err := GetValueForAttribute(EventAttributeAmount, evt)
	assert.Nil(t, err)
	assert.Equal(t, "123ncheq", value)

	_, err = GetValueForAttribute("missing-key", evt)
	assert.NotNil(t, err)

	value, err = GetValueForAttribute(EventAttributeAmount, nil)
	assert.Nil(t, err)
	assert.Equal(t, "", value)
}
