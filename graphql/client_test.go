package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageBody = `{
	"data": {
		"messagesByAddress": [
			{
				"transaction": {
					"height": 1000,
					"hash": "ABC123",
					"success": true,
					"messages": [{"@type": "/cosmos.bank.v1beta1.MsgSend"}],
					"logs": [],
					"fee": {"amount": [{"denom": "ncheq", "amount": "5000000"}], "gas_limit": "200000"},
					"block": {"height": 1000, "timestamp": "2023-04-01T12:30:45"}
				}
			}
		]
	}
}`

func TestGetTxsByAddress(t *testing.T) {
	var captured Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(pageBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.GetTxsByAddress(context.Background(), "cheqd1testwallet", 100, 0)
	require.Nil(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ABC123", page[0].Transaction.Hash)
	assert.Equal(t, int64(1000), page[0].Transaction.Block.Height)
	assert.Len(t, page[0].Transaction.Messages, 1)

	// the address is interpolated into the query, paging goes through variables
	assert.Contains(t, captured.Query, "{cheqd1testwallet}")
	assert.EqualValues(t, 100, captured.Variables["limit"])
	assert.EqualValues(t, 0, captured.Variables["offset"])
}

func TestGetTxsByAddressGraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "field messages_by_address not found"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetTxsByAddress(context.Background(), "cheqd1testwallet", 100, 0)

	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.False(t, isTransient(err), "schema errors will not fix themselves, retrying is pointless")
}

func TestGetTxsByAddressWithRetryRecovers(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(pageBody))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := client.GetTxsByAddressWithRetry(context.Background(), "cheqd1testwallet", 100, 0, 3, 2)
	require.Nil(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, 3, calls)
}

func TestGetTxsByAddressWithRetryExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetTxsByAddressWithRetry(context.Background(), "cheqd1testwallet", 100, 0, 2, 2)

	var exhausted *RetryExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, int64(3), exhausted.Attempts)

	var reqErr *RequestError
	assert.True(t, errors.As(exhausted.Unwrap(), &reqErr))
	assert.Equal(t, http.StatusServiceUnavailable, reqErr.StatusCode)
}

func TestGetTxsByAddressWithRetryNonTransient(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetTxsByAddressWithRetry(context.Background(), "cheqd1testwallet", 100, 0, 3, 2)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 1, calls, "client errors should fail immediately")
}

func TestGetBackoffDurationForAttempts(t *testing.T) {
	first, maxReached := GetBackoffDurationForAttempts(0, 30*time.Second)
	assert.Equal(t, time.Second, first)
	assert.False(t, maxReached)

	second, _ := GetBackoffDurationForAttempts(1, 30*time.Second)
	assert.True(t, second > first, "backoff should grow between attempts")

	capped, maxReached := GetBackoffDurationForAttempts(50, 30*time.Second)
	assert.Equal(t, 30*time.Second, capped)
	assert.True(t, maxReached)
}
