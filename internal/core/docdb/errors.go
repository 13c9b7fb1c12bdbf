package docdb

import "fmt"

// ConnectError reports a failed Acquire. The repository treats it as fatal.
type ConnectError struct {
	Address string
	Err     error
}

// Error implements the error interface.
func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to store at %s: %v", e.Address, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectError) Unwrap() error {
	return e.Err
}
