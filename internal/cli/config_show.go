package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/fsctl/internal/config"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect fsctl configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	root.AddCommand(cmd)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration after merging, in order of precedence:
  - FSCTL_* environment variables (e.g. FSCTL_STORAGE_SPARSE=true)
  - project config: .fsctl/config.yaml
  - global config: ~/.fsctl/config.yaml, or $FSCTL_HOME/config.yaml
  - built-in defaults

Text output is YAML. Use --output json for JSON.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ec := GetExecutionContext(cmd.Context())
			return runConfigShow(cmd.OutOrStdout(), ec)
		},
	}
}

func runConfigShow(w io.Writer, ec *ExecutionContext) error {
	if ec.OutputFormat == OutputJSON {
		return encodeJSONIndented(w, ec.Config)
	}

	s := newOutputStyles(w)
	_, _ = fmt.Fprintln(w, s.dim.Render("# sources:"))
	if globalPath, err := config.GlobalConfigPath(); err == nil {
		_, _ = fmt.Fprintln(w, s.dim.Render("#   global:  "+globalPath))
	}
	_, _ = fmt.Fprintln(w, s.dim.Render("#   project: "+config.ProjectConfigPath()))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ec.Config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
