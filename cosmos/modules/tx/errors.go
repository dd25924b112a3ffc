package tx

import (
	"errors"
	"fmt"
)

var ErrUnknownMessage = errors.New("no message handler for message type")

type MessageFormatError struct {
	MessageType string
	Reason      string
}

func (e *MessageFormatError) Error() string {
	return fmt.Sprintf("Type: %s could not handle message payload: %s", e.MessageType, e.Reason)
}
