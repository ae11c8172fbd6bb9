package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/apptime/internal/profile"
	"github.com/hrygo/apptime/plugin/aitime"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds what every subcommand shares once flags are parsed.
type app struct {
	v       *viper.Viper
	profile *profile.Profile
	logger  *slog.Logger
	service *aitime.Service
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "apptime",
		Short: "Resolve the booking date and time in a Chinese or English chat message.",
		Long: `apptime extracts a single calendar date and clock time from free-form messages
such as "明天下午3點" or "11/15 16:00 或 11/12 18:00", relative to a reference moment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup(stderr)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of server, can be "prod" or "dev"`)
	flags.String("addr", "", "address of server")
	flags.Int("port", 8081, "port of server")
	flags.String("timezone", "UTC", `IANA timezone reference moments are read in, e.g. "Asia/Hong_Kong"`)
	flags.String("granularity", "minute", `clock precision, "minute" or "second"`)
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}
	a.v.SetEnvPrefix("apptime")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(
		newResolveCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// setup builds the logger, profile and resolver from flags and environment.
func (a *app) setup(stderr io.Writer) error {
	a.profile = &profile.Profile{
		Mode:        a.v.GetString("mode"),
		Addr:        a.v.GetString("addr"),
		Port:        a.v.GetInt("port"),
		Timezone:    a.v.GetString("timezone"),
		Granularity: a.v.GetString("granularity"),
		Version:     version,
	}
	a.profile.FromEnv()
	if err := a.profile.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	logger, err := newLogger(stderr, a.profile.Mode, a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.logger = logger
	a.service = aitime.NewService(a.profile.Location().String(), logger)
	return nil
}

// newLogger returns a text logger in dev mode and a JSON logger in prod.
func newLogger(w io.Writer, mode, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if mode == "prod" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (a *app) granularity() aitime.Granularity {
	g, _ := aitime.ParseGranularity(a.profile.Granularity)
	return g
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		slog.Error("apptime failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
