package errs

import (
	"errors"
)

var (
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	ErrBadProviderResponse = errors.New("identity provider returned an unexpected response")
)
