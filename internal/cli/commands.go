package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/tomeview/internal/app"
	"github.com/vk/tomeview/internal/registry"
	"github.com/vk/tomeview/internal/topic"
)

func newInspectCommand(v *viper.Viper, outW, errW io.Writer, modules []registry.Module) *cobra.Command {
	var (
		index    map[string]string
		dataPath string
		format   string
		query    string
	)

	cmd := &cobra.Command{
		Use:   "inspect TOPIC",
		Short: "Build a topic instance and print it",
		Long: `Build an instance of TOPIC and print it. Without --data every declared
field default is seeded; with --data the JSON document is used as-is.`,
		Example: `  tomeview inspect Player -m topics --index playerId=p1
  tomeview inspect Player -m topics -i playerId=p1 -d player.json -f inspect --depth 2
  tomeview inspect Player -m topics -i playerId=p1 -q '$.inventory[*].label'`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != app.FormatJSON && format != app.FormatInspect {
				return usageError("invalid format %q: must be '%s' or '%s'", format, app.FormatJSON, app.FormatInspect)
			}

			a, err := newApp(v, outW, errW, modules)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return a.Inspect(cmd.Context(), app.InspectOptions{
				Topic:    args[0],
				Index:    topic.Index(index),
				DataPath: dataPath,
				Format:   format,
				Query:    query,
			})
		},
	}

	f := cmd.Flags()
	f.StringToStringVarP(&index, "index", "i", nil, "Index values as key=value pairs.")
	f.StringVarP(&dataPath, "data", "d", "", "JSON file holding the topic data.")
	f.StringVarP(&format, "format", "f", app.FormatJSON, "Output format. Options: 'json' or 'inspect'.")
	f.StringVarP(&query, "query", "q", "", "JSONPath expression evaluated against the topic; prints one match per line.")
	return cmd
}

func newValidateCommand(v *viper.Viper, outW, errW io.Writer, modules []registry.Module) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate topic manifests",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(v, outW, errW, modules)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			return a.Validate(cmd.Context())
		},
	}
}
