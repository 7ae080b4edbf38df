package firebaseauth

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ErrMalformedResponse matches any *MalformedResponseError.
var ErrMalformedResponse = errors.New("malformed response")

type ErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type ErrorMetadata struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Errors  []ErrorItem `json:"errors"`
}

// ResponseError is the provider's error envelope: {"error": {...}}.
// It is returned as an error value, so callers use errors.As to tell a
// provider-reported failure from a transport one.
type ResponseError struct {
	Err ErrorMetadata `json:"error"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("identity toolkit error %d: %s", e.Err.Code, e.Err.Message)
}

// AsResponseError unwraps err into a provider error if it is one.
func AsResponseError(err error) (*ResponseError, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

// MalformedResponseError reports a success payload that is missing a
// required field or carries it with the wrong JSON type.
type MalformedResponseError struct {
	Field  string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: field %q %s", ErrMalformedResponse, e.Field, e.Reason)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// classifyResponse returns a *ResponseError when the body carries an "error"
// key and nil when it should be treated as a success payload.
func classifyResponse(raw map[string]json.RawMessage) (*ResponseError, error) {
	body, ok := raw["error"]
	if !ok {
		return nil, nil
	}
	fields, err := object(body, "error")
	if err != nil {
		return nil, err
	}
	code, err := requireInt(fields, "code")
	if err != nil {
		return nil, prefixField(err, "error.")
	}
	message, err := requireString(fields, "message")
	if err != nil {
		return nil, prefixField(err, "error.")
	}

	items := make([]ErrorItem, 0)
	if list, ok := fields["errors"]; ok && string(list) != "null" {
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, &MalformedResponseError{Field: "error.errors", Reason: "is not a list of error items"}
		}
		if items == nil {
			items = make([]ErrorItem, 0)
		}
	}

	return &ResponseError{Err: ErrorMetadata{
		Code:    code,
		Message: message,
		Errors:  items,
	}}, nil
}

func prefixField(err error, prefix string) error {
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return &MalformedResponseError{Field: prefix + malformed.Field, Reason: malformed.Reason}
	}
	return err
}
