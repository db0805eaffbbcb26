package cli

import "github.com/spf13/cobra"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

func analysisError(err error) error {
	return &ExitError{Code: 1, Message: err.Error()}
}

// usageArgs reports argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
