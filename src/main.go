package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pokeserver/src/server"
	"pokeserver/src/settings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

var args = settings.GetSettings()

var rootCmd = &cobra.Command{
	Use:   "pokeserver",
	Short: "Serve the creature dataset over HTTP",
	Long: `pokeserver loads a creature dataset into memory and serves it over HTTP:
JSON under /pokemon, HTML under /pokemon-pretty, plus the /bugs counter and
the /{verb}/{adjective}/{noun} project-name generator.`,
	Example: `  pokeserver --port=3000
  pokeserver --data=./pokemon.bson --logdir=./log_files
  pokeserver --config=pokeserver.yaml --debug`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       args.Version,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if args.ConfigFile != "" {
			if err := applyConfigFile(cmd.Flags()); err != nil {
				return err
			}
		}
		return settings.Validate(args)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&args.Host, "host", args.Host, "Host name or IP address to listen on")
	flags.IntVar(&args.Port, "port", args.Port, "Port for the HTTP server")
	flags.StringVar(&args.DataFile, "data", "", "Dataset file (.json or .bson); defaults to the embedded dataset")
	flags.StringVar(&args.LogDir, "logdir", "", "Directory to store log files (default: stdout)")
	flags.StringVar(&args.ConfigFile, "config", "", "Path to YAML config file")
	flags.BoolVar(&args.Verbose, "verbose", args.Verbose, "Enable verbose logging")
	flags.BoolVar(&args.Debug, "debug", false, "Enable debug mode")
	flags.BoolVar(&args.PrintToScreen, "print", args.PrintToScreen, "Print log messages to screen when logging to a file")
	flags.DurationVar(&args.ReadTimeout, "read-timeout", args.ReadTimeout, "Maximum duration for reading a request")
	flags.DurationVar(&args.WriteTimeout, "write-timeout", args.WriteTimeout, "Maximum duration for writing a response")
	flags.DurationVar(&args.ShutdownTimeout, "shutdown-timeout", args.ShutdownTimeout, "Graceful shutdown timeout")
}

// applyConfigFile layers the config file between the defaults and any flag
// set explicitly on the command line.
func applyConfigFile(flags *pflag.FlagSet) error {
	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	if err := settings.LoadConfigFile(args.ConfigFile, args); err != nil {
		return err
	}

	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("could not reapply --%s: %w", name, err)
		}
	}
	return nil
}

func run(ctx context.Context) error {
	srv, err := server.InitServer(args)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Wait)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop(context.Background())
	})
	return g.Wait()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
