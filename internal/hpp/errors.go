package hpp

import (
	"fmt"
	"strings"
)

// MissingParameterError reports incomplete gateway configuration. It names
// every mandatory setting so a misconfigured deployment fails with one
// actionable message instead of a drip of single-key errors.
type MissingParameterError struct {
	Parameters []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf(
		"the following parameters are required to initialise the gateway: %s",
		strings.Join(e.Parameters, ", "))
}

// MissingFieldError reports a required interaction field that is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("the %s field is missing", e.Field)
}

// UnexpectedFieldError reports a field outside the interaction's contract.
type UnexpectedFieldError struct {
	Field string
}

func (e *UnexpectedFieldError) Error() string {
	return fmt.Sprintf("the %s field is unexpected", e.Field)
}

// InvalidTransactionError reports a redirect whose signature did not verify.
// Treat as a possible tampering attempt, not an ordinary validation failure.
type InvalidTransactionError struct{}

func (e *InvalidTransactionError) Error() string {
	return "the transaction is invalid; this may indicate a fraud attempt"
}
