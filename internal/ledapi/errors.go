package ledapi

import (
	"errors"
	"fmt"
)

// Operations reported in BackendError.Op.
const (
	OpApply  = "setLedStatus"
	OpStatus = "status"
)

var errInvalidJSON = errors.New("response is not valid JSON")

// BackendError describes a failed LedAPI exchange. StatusCode is 0 when no
// response was received.
type BackendError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
