package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-data-context/internal/app"
	"github.com/MKhiriev/go-data-context/internal/components"
	"github.com/MKhiriev/go-data-context/internal/config"
	"github.com/MKhiriev/go-data-context/internal/identifier"
	"github.com/MKhiriev/go-data-context/internal/instantiate"
	"github.com/MKhiriev/go-data-context/internal/logger"
	"github.com/MKhiriev/go-data-context/internal/notify"
	"github.com/MKhiriev/go-data-context/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// runtimeEnv is populated before every command runs.
type runtimeEnv struct {
	cfg      *config.StructuredConfig
	log      *logger.Logger
	registry *instantiate.Registry
	app      *app.App
}

func main() {
	_ = godotenv.Load() // .env is optional

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:   "datactx",
		Short: "Resolve project configuration, build components and send validation notifications",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.init(cmd)
		},
		SilenceUsage: true,
	}
	root.SetOut(out)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newVersionCmd(env),
		newListCmd(env),
		newSubstituteCmd(env),
		newInstantiateCmd(env),
		newNotifyCmd(env),
	)

	return root
}

func (e *runtimeEnv) init(cmd *cobra.Command) error {
	cfg, err := config.GetStructuredConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	e.cfg = cfg
	e.log = logger.NewLoggerTo(cmd.ErrOrStderr(), "datactx", cfg.App.LogLevel)
	e.log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	e.registry = instantiate.NewRegistry(instantiate.WithLogger(e.log))
	if err = components.Register(e.registry, e.log); err != nil {
		return fmt.Errorf("error registering components: %w", err)
	}

	e.app = app.NewApp(cfg, e.registry, e.log)
	return nil
}

func newVersionCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			printBuildInfo(cmd.OutOrStdout(), env.cfg.App.Version)
		},
	}
}

func newListCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered classes and identifier types",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Available classes:")
			for _, module := range env.registry.Modules() {
				for _, class := range env.registry.Classes(module) {
					fmt.Fprintf(out, "  - %s.%s\n", module, class)
				}
			}

			fmt.Fprintln(out, "\nIdentifier types:")
			for _, keyType := range identifier.KeyTypes() {
				fmt.Fprintf(out, "  - %s\n", keyType)
			}
		},
	}
}

func newSubstituteCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "substitute",
		Short: "Print the project configuration with config variables substituted",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := env.app.LoadProject()
			if err != nil {
				return err
			}

			data, err := app.MarshalProject(project)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newInstantiateCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "instantiate",
		Short: "Build every component declared in the project configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := env.app.Components()
			if err != nil {
				return err
			}

			for _, c := range built {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %T\n", c.Name, c.Instance)
			}
			return nil
		},
	}
}

func newNotifyCmd(env *runtimeEnv) *cobra.Command {
	var resultPath string
	var useActions bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a validation result to Slack",
		Long: `Send a validation result to the configured Slack webhook.

Without --result a "no validation occurred" message is sent. With --actions
every notification action declared in the project runs instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *models.ValidationResult
			if resultPath != "" {
				loaded, err := app.LoadValidationResult(resultPath)
				if err != nil {
					return err
				}
				result = loaded
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			out := cmd.OutOrStdout()
			if useActions {
				statuses, err := env.app.RunActions(ctx, result)
				if err != nil {
					return err
				}
				for _, name := range slices.Sorted(maps.Keys(statuses)) {
					fmt.Fprintf(out, "%s: %s\n", name, describeStatus(statuses[name]))
				}
				return nil
			}

			status, err := env.app.Notify(ctx, result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, describeStatus(status))
			return nil
		},
	}

	cmd.Flags().StringVar(&resultPath, "result", "", "Path to a validation result JSON file")
	cmd.Flags().BoolVar(&useActions, "actions", false, "Run the notification actions declared in the project")

	return cmd
}

func describeStatus(status notify.DeliveryStatus) string {
	switch {
	case status.Delivered:
		return "delivered"
	case status.Skipped:
		return "skipped"
	case status.Err != nil:
		return "not delivered: " + status.Err.Error()
	default:
		return "not delivered"
	}
}

func printBuildInfo(w io.Writer, appVersion string) {
	fmt.Fprint(w, models.NewBuildInfo(appVersion, buildVersion, buildDate, buildCommit))
}
