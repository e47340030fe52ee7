package cli

import (
	stderrors "errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/fsctl/internal/constants"
	"github.com/mrz1836/fsctl/internal/errors"
)

// Process exit codes. Usage errors are tagged with errors.ExitCode2Error at
// the point they are raised; everything else that fails is ExitError.
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
)

// Values accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// globalFlagNames lists the persistent flags bound to FSCTL_* variables.
//
//nolint:gochecknoglobals // fixed flag set
var globalFlagNames = []string{"output", "verbose", "quiet"}

// GlobalFlags holds the persistent flags shared by every fsctl command.
type GlobalFlags struct {
	// Output selects text or json results.
	Output string
	// Verbose lowers the log level to debug.
	Verbose bool
	// Quiet raises the log level to warn.
	Quiet bool
}

// AddGlobalFlags registers the persistent flags on root and routes flag
// parsing failures of root and all its subcommands to exit code 2.
func AddGlobalFlags(root *cobra.Command, flags *GlobalFlags) {
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "result format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "log debug details")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.SetFlagErrorFunc(usageError)
}

// BindGlobalFlags binds the root's persistent flags to v so FSCTL_OUTPUT,
// FSCTL_VERBOSE and FSCTL_QUIET are honored.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Lookup through Root() so a subcommand's PersistentPreRunE still
	// finds the flags defined on the root.
	pf := cmd.Root().PersistentFlags()
	for _, name := range globalFlagNames {
		if err := v.BindPFlag(name, pf.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	return nil
}

// validateGlobalFlags checks the flag values cobra does not check before
// PersistentPreRunE runs.
func validateGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) error {
	// Cobra validates flag groups only after the pre-run hooks.
	if err := cmd.ValidateFlagGroups(); err != nil {
		return errors.NewExitCode2Error(err)
	}
	if !IsValidOutputFormat(flags.Output) {
		return errors.NewExitCode2Error(fmt.Errorf("%w: %q must be one of %v",
			errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats()))
	}
	return nil
}

// ValidOutputFormats returns the values accepted by --output.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is accepted by --output.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// usageError tags a cobra flag or argument error as invalid input.
func usageError(_ *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	return errors.NewExitCode2Error(err)
}

// usageArgs wraps a positional-argument validator so its failures exit 2.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(cmd, validate(cmd, args))
	}
}

// ExitCodeForError maps the error returned by Execute to a process exit code.
// Only errors tagged as usage errors, or carrying an input sentinel, exit 2.
// The message text is never inspected, so OS errors such as EINVAL exit 1.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.IsExitCode2Error(err),
		stderrors.Is(err, errors.ErrInvalidOutputFormat),
		stderrors.Is(err, errors.ErrInvalidArgument):
		return ExitInvalidInput
	default:
		return ExitError
	}
}
