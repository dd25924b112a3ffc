package tx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	EventTypeCoinReceived    = "coin_received"
	EventTypeWithdrawRewards = "withdraw_rewards"

	EventAttributeAmount   = "amount"
	EventAttributeReceiver = "receiver"
)

func GetEventsWithType(eventType string, logs []LogMessage) []LogMessageEvent {
	events := []LogMessageEvent{}

	for _, log := range logs {
		for _, logEvent := range log.Events {
			if logEvent.Type == eventType {
				events = append(events, logEvent)
			}
		}
	}

	return events
}

// If order is reversed, the last attribute containing the given key will be returned
// otherwise the first attribute will be returned
func GetValueForAttribute(key string, evt *LogMessageEvent) (string, error) {
	if evt == nil || evt.Attributes == nil {
		return "", nil
	}

	for _, attr := range evt.Attributes {
		if attr.Key == key {
			return attr.Value, nil
		}
	}

	return "", fmt.Errorf("Attribute %s missing from event", key)
}

// GetCoinsReceived collects the raw coin strings (e.g. "123ncheq") credited to
// the receiver across all coin_received events in the transaction logs.
// Receiver/amount attributes appear in adjacent pairs, one pair per credit.
func GetCoinsReceived(receiver string, logs []LogMessage) []string {
	coinsReceived := []string{}

	for _, evt := range GetEventsWithType(EventTypeCoinReceived, logs) {
		for i := 0; i < len(evt.Attributes); i++ {
			attr := evt.Attributes[i]
			if attr.Key == EventAttributeReceiver && attr.Value == receiver {
				attrAmountIdx := i + 1
				if attrAmountIdx < len(evt.Attributes) {
					attrNext := evt.Attributes[attrAmountIdx]
					if attrNext.Key == EventAttributeAmount {
						commaSeperatedCoins := attrNext.Value
						currentCoins := strings.Split(commaSeperatedCoins, ",")
						for _, coin := range currentCoins {
							if coin != "" {
								coinsReceived = append(coinsReceived, coin)
							}
						}
					}
				}
			}
		}
	}

	return coinsReceived
}

// CoinsReceivedForDenom sums the base-unit amounts credited to the receiver
// for a single denomination. The second return value is false when no matching
// credit exists, which callers must treat as "nothing to report" rather than a
// zero amount.
func CoinsReceivedForDenom(receiver string, denom string, logs []LogMessage) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false

	for _, coin := range GetCoinsReceived(receiver, logs) {
		if !strings.HasSuffix(coin, denom) {
			continue
		}
		numeric := strings.TrimSuffix(coin, denom)
		// guard against a denom that is merely a suffix of another (e.g. ncheq vs. xncheq)
		if !isDigits(numeric) {
			continue
		}
		amount, err := decimal.NewFromString(numeric)
		if err != nil {
			continue
		}
		total = total.Add(amount)
		found = true
	}

	return total, found
}

func isDigits(value string) bool {
	for _, char := range value {
		if char < '0' || char > '9' {
			return false
		}
	}
	return len(value) != 0
}
