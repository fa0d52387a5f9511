package types

import (
	"errors"
	"fmt"
)

var (
	ErrCredentials      = errors.New("invalid or missing AWS credentials")
	ErrServiceDisabled  = errors.New("cost explorer is not enabled for this account")
	ErrPermissionDenied = errors.New("permission denied")
	ErrRemoteService    = errors.New("cost explorer request failed")
	ErrDataUnavailable  = errors.New("no cost data available")
)

// QueryError wraps a failed billing query with the operation that issued it and
// the taxonomy sentinel it was classified as. errors.Is matches the sentinel
// through Is and the underlying AWS error through Unwrap.
type QueryError struct {
	Op   string
	Kind error
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Hint returns a short remediation hint for a classified error, empty when
// there is nothing actionable to suggest.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrCredentials):
		return "Check AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY; access key IDs normally start with AKIA and must not carry extra spaces or quotes."
	case errors.Is(err, ErrServiceDisabled):
		return "Enable Cost Explorer in the AWS billing console; data becomes available up to 24 hours after enabling."
	case errors.Is(err, ErrPermissionDenied):
		return "The IAM user needs the ce:GetCostAndUsage and ce:ListCostCategoryDefinitions actions."
	case errors.Is(err, ErrDataUnavailable):
		return "The account reported no cost records for the requested period."
	case errors.Is(err, ErrRemoteService):
		return "Cost Explorer could not be reached; verify network access and AWS_DEFAULT_REGION."
	}
	return ""
}
