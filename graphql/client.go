package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
)

// messagesByAddressQuery is the BigDipper Hasura action exposing per-address
// message history. The address is interpolated as an array literal because the
// underlying args type is _text, not a variable-friendly scalar.
const messagesByAddressQuery = `
query GetMessagesByAddress($limit: bigint = 100, $offset: bigint = 0, $types: _text = "{}") {
	messagesByAddress: messages_by_address(
		args: {
			addresses: "{%s}",
			types: $types,
			limit: $limit,
			offset: $offset
		}
	) {
		transaction {
			height
			hash
			success
			messages
			logs
			fee
			block {
				height
				timestamp
			}
		}
	}
}
`

type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GetTxsByAddress requests one page of transactions touching the given address,
// ordered by descending height.
func (c *Client) GetTxsByAddress(ctx context.Context, address string, limit, offset int64) ([]txModule.TxWrapper, error) {
	gqlReq := Request{
		Query: fmt.Sprintf(messagesByAddressQuery, address),
		Variables: map[string]interface{}{
			"limit":  limit,
			"offset": offset,
			"types":  "{}",
		},
	}

	reqBody, err := json.Marshal(gqlReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var result messagesByAddressResponse
	err = json.Unmarshal(body, &result)
	if err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, &QueryError{Errors: result.Errors}
	}

	return result.Data.MessagesByAddress, nil
}

// GetTxsByAddressWithRetry retries the same page on transient failures with
// exponential backoff up to the attempt ceiling. It returns a
// RetryExhaustedError once the ceiling is hit so the caller can persist
// progress and fail the run without truncating silently.
func (c *Client) GetTxsByAddressWithRetry(ctx context.Context, address string, limit, offset, retryMaxAttempts int64, retryMaxWaitSeconds uint64) ([]txModule.TxWrapper, error) {
	if retryMaxAttempts == 0 {
		return c.GetTxsByAddress(ctx, address, limit, offset)
	}

	if retryMaxWaitSeconds < 2 {
		retryMaxWaitSeconds = 2
	}

	var attempts int64
	maxRetryTime := time.Duration(retryMaxWaitSeconds) * time.Second

	currentBackoffDuration, maxReached := GetBackoffDurationForAttempts(attempts, maxRetryTime)

	for {
		resp, err := c.GetTxsByAddress(ctx, address, limit, offset)
		attempts++
		if err != nil && isTransient(err) && attempts <= retryMaxAttempts {
			config.Log.Error("Error getting GraphQL response, backing off and trying again", err)
			config.Log.Debugf("Attempt %d with wait time %+v", attempts, currentBackoffDuration)

			select {
			case <-time.After(currentBackoffDuration):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			// guard against overflow
			if !maxReached {
				currentBackoffDuration, maxReached = GetBackoffDurationForAttempts(attempts, maxRetryTime)
			}

			continue
		}

		if err != nil {
			if isTransient(err) {
				config.Log.Error("Error getting GraphQL response, reached max retry attempts")
				return nil, &RetryExhaustedError{Attempts: attempts, LastErr: err}
			}
			return nil, err
		}

		return resp, nil
	}
}

func GetBackoffDurationForAttempts(numAttempts int64, maxRetryTime time.Duration) (time.Duration, bool) {
	backoffBase := 1.5
	backoffDuration := time.Duration(math.Pow(backoffBase, float64(numAttempts)) * float64(time.Second))

	maxReached := false
	if backoffDuration > maxRetryTime || backoffDuration < 0 {
		maxReached = true
		backoffDuration = maxRetryTime
	}

	return backoffDuration, maxReached
}

// Network failures and retryable HTTP statuses are transient. GraphQL-level
// errors, decode failures and cancellations are not.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Transient()
	}

	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return false
	}

	var jsonErr *json.SyntaxError
	if errors.As(err, &jsonErr) {
		return false
	}

	// url.Error and friends: treat as network trouble
	return true
}
