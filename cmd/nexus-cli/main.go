package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rrf-tools/nexus-cli/cmd/cmdutils"
	"github.com/rrf-tools/nexus-cli/cmd/transfer"
	"github.com/rrf-tools/nexus-cli/internal/style"
	"github.com/rrf-tools/nexus-cli/internal/terminal"
	"github.com/rrf-tools/nexus-cli/util/common/errors"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(cmdutils.NewFactory()).ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func newRootCmd(factory *cmdutils.Factory) *cobra.Command {
	flags := factory.Flags

	rootCmd := &cobra.Command{
		Use:           "nexus-cli",
		Short:         "Upload and download directories as Nexus Maven2 components",
		SilenceUsage:  true,
		SilenceErrors: true, //prevent duplicate printing of errors
		Long: heredoc.Doc(`
			nexus-cli uploads the files of a directory as one Maven2 component
			to a Nexus repository, and downloads them back.

			Credentials come from --login (the password is prompted), or from
			the NEXUS_LOGIN and NEXUS_PASSWD environment variables.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			termInfo := terminal.Detect(flags.NoColor)
			style.Init(termInfo.ColorEnabled)
			setupLogging(flags.Verbose, !termInfo.ColorEnabled)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.Login, "login", "l", "",
		"Nexus login, the password is prompted (default $NEXUS_LOGIN)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "V", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "",
		"Configuration file, YAML or TOML (default ~/.nexus-cli/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.EnvFile, "env-file", "", "Load NEXUS_LOGIN and NEXUS_PASSWD from a dotenv file")
	rootCmd.PersistentFlags().BoolVar(&flags.Insecure, "insecure", false, "Disable TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&flags.Transport, "transport", "",
		"Transfer implementation: curl or http (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")

	rootCmd.AddCommand(transfer.NewUploadCmd(factory))
	rootCmd.AddCommand(transfer.NewDownloadCmd(factory))
	rootCmd.AddCommand(versionCmd())

	style.Init(terminal.Detect(flags.NoColor).ColorEnabled)
	if tpl := style.UsageTemplate(); tpl != "" {
		rootCmd.SetUsageTemplate(tpl)
	}
	return rootCmd
}

// setupLogging writes console logs to stderr, tagged with a per-run run_id.
func setupLogging(verbose, noColor bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	log.Logger = zerolog.New(logWriter).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, style.ErrorLine(err.Error()))
	switch {
	case errors.Is(err, errors.ErrAuthentication):
		fmt.Fprintln(os.Stderr, style.Hint("Use --login, or set NEXUS_LOGIN and NEXUS_PASSWD."))
	case errors.Is(err, errors.ErrConfig):
		fmt.Fprintln(os.Stderr, style.Hint("Check the configuration file and the NEXUS_* environment variables."))
	}
}
