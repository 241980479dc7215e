package session

import (
	"errors"
	"fmt"
)

// ErrNotConnected means an operation needs a session that was never
// established in this process.
var ErrNotConnected = errors.New("no active session, run \"azsub login\" first")

// InvalidSelectionError reports a subscription name that is not in the
// cached account list. The guided CLI builds its choices from the
// cache, so this normally only fires when the guard is bypassed.
type InvalidSelectionError struct {
	Name string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("subscription %q is not in the cached account list, run \"azsub list --refresh\"", e.Name)
}

// RefreshError wraps a failed cache refresh. The previous cache is
// retained; callers usually log this as a warning and carry on.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refreshing subscription list: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}
