// Package cli implements the groups command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"groups/internal/config"
	"groups/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errorOutput(rootCmd) == "json" {
			_ = printJSON(stdout, map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// errorOutput is the format errors are reported in: the --output flag when given,
// else the configured value, else text.
func errorOutput(rootCmd *cobra.Command) string {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("output") {
		output, _ := flags.GetString("output")
		return output
	}
	path, _ := flags.GetString("config")
	if cfg, err := config.Load(path, nil); err == nil {
		return cfg.Output
	}
	return "text"
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "groups",
		Short:         "Split people into groups from who they want and do not want to be with",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $GROUPS_CONFIG or ./groups.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json)")

	rootCmd.AddCommand(
		newSolveCmd(),
		newGenCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"output":     "output",
	"input":      "input",
	"dsn":        "database.dsn",
	"round":      "database.round",
	"group-size": "group_size",
	"desired":    "desired_wanted",
	"iterations": "iterations",
	"groups":     "groups",
	"seed":       "seed",
	"strict":     "strict",
}

// changedOverrides collects the config keys of flags set on the command line.
func changedOverrides(flags *pflag.FlagSet) map[string]any {
	out := map[string]any{}
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, changedOverrides(cmd.Flags()))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	return cfg, log, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
