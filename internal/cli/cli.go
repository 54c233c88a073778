package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/tomeview/internal/app"
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/internal/view"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// TOMEVIEW_MANIFESTS or TOMEVIEW_INDEX_DB.
const EnvPrefix = "TOMEVIEW"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Execute runs the tomeview command line. Output goes to outW; logs and
// cobra's own messages go to errW.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, modules ...registry.Module) error {
	root := NewRootCommand(outW, errW, modules...)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		return usageError("%s", err.Error())
	}
	return err
}

// NewRootCommand builds the command tree. Every invocation gets its own
// viper instance, so commands built for tests do not share state.
func NewRootCommand(outW, errW io.Writer, modules ...registry.Module) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "tomeview",
		Short: "Build and inspect typed topic instances",
		Long: `tomeview loads topic types from HCL manifests, builds topic instances
over tracked trees and prints them as JSON or as a depth-limited inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	// "-h" must already be a boolean flag when cobra resolves the
	// subcommand, or the flag after it is read as a command name.
	root.InitDefaultHelpFlag()
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err.Error())
	})

	pf := root.PersistentFlags()
	pf.StringP("manifests", "m", "", "Path to a topic manifest or a directory of .hcl manifests.")
	pf.String("index-db", "", "SQLite file used to mint and look up topic identities. Empty checks indexes only.")
	pf.String("log-format", app.LogFormatText, "Log output format. Options: 'text' or 'json'.")
	pf.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.Int("depth", view.DefaultInspectDepth, "Nesting depth of the inspect format; -1 prints everything.")
	if err := v.BindPFlags(pf); err != nil {
		slog.Debug("Binding flags to viper failed.", "error", err)
	}

	root.AddCommand(
		newInspectCommand(v, outW, errW, modules),
		newValidateCommand(v, outW, errW, modules),
	)
	return root
}

// loadConfig reads the flag/environment configuration into an app.Config.
func loadConfig(v *viper.Viper) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ManifestPath: v.GetString("manifests"),
		IndexDB:      v.GetString("index-db"),
		LogFormat:    strings.ToLower(v.GetString("log-format")),
		LogLevel:     strings.ToLower(v.GetString("log-level")),
		InspectDepth: v.GetInt("depth"),
	})
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	slog.Debug("CLI configuration resolved.", "config", cfg)
	return cfg, nil
}

func newApp(v *viper.Viper, outW, errW io.Writer, modules []registry.Module) (*app.App, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	return app.NewApp(outW, errW, cfg, modules...)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("%s accepts %d argument(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
