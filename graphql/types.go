package graphql

import (
	"fmt"
	"strings"

	txModule "github.com/DefiantLabs/cheqd-tax-cli/cosmos/modules/tx"
)

type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type Error struct {
	Message string `json:"message"`
}

type messagesByAddressResponse struct {
	Data struct {
		MessagesByAddress []txModule.TxWrapper `json:"messagesByAddress"`
	} `json:"data"`
	Errors []Error `json:"errors"`
}

// RequestError is returned for non-200 responses. Rate-limit and server-side
// statuses are transient and safe to retry against the same page.
type RequestError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("error getting GraphQL response: Status %s Body %s", e.Status, e.Body)
}

func (e *RequestError) Transient() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// QueryError is returned when the endpoint answers 200 but the GraphQL layer
// reports errors. These are not retried, the same query would fail again.
type QueryError struct {
	Errors []Error
}

func (e *QueryError) Error() string {
	messages := make([]string, len(e.Errors))
	for i, gqlErr := range e.Errors {
		messages[i] = gqlErr.Message
	}
	return fmt.Sprintf("GraphQL errors: %s", strings.Join(messages, "; "))
}

// RetryExhaustedError reports a page that could not be fetched within the
// configured attempt ceiling. Progress committed before this page is intact.
type RetryExhaustedError struct {
	Attempts int64
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.LastErr
}
