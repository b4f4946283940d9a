package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/netping/internal/config"
	"github.com/hamed0406/netping/internal/domain"
	"github.com/hamed0406/netping/internal/logging"
	"github.com/hamed0406/netping/internal/metrics"
	"github.com/hamed0406/netping/internal/probe"
)

// errNotAlive makes the process exit non-zero without printing anything extra.
var errNotAlive = errors.New("target not alive")

type options struct {
	cfgFile         string
	timeout         time.Duration
	jsonOut         bool
	logDir          string
	logLevel        string
	metricsTextfile string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "netping",
		Short: "Check whether a host is alive over HTTP, TCP or ICMP",
		Long: `netping performs one bounded reachability check against a target and
reports how long it took or why it failed.

  netping http https://example.com
  netping tcp db.internal --port 5432
  netping icmp 10.0.0.1 --count 3`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&o.cfgFile, "config", "c", "", "YAML config file")
	f.DurationVarP(&o.timeout, "timeout", "t", 5*time.Second, "per-attempt timeout")
	f.BoolVar(&o.jsonOut, "json", false, "print the result as JSON")
	f.StringVar(&o.logDir, "log-dir", "", "write JSON logs to this directory")
	f.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&o.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this textfile")

	root.AddCommand(newHTTPCmd(o), newTCPCmd(o), newICMPCmd(o), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNotAlive) {
			fmt.Fprintln(os.Stderr, "netping:", err)
		}
		os.Exit(1)
	}
}

// setup resolves configuration (defaults, file, env, then flags) and the logger.
func (o *options) setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.Load(o.cfgFile)
		if err != nil {
			return cfg, nil, err
		}
	} else {
		cfg = config.FromEnv()
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = o.logDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = o.metricsTextfile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log, err := logging.NewLogger(cfg.LogDir, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return cfg, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}

// finish prints the report, records metrics and maps the outcome to an error.
func (o *options) finish(cmd *cobra.Command, cfg config.Config, log *zap.Logger, s domain.Strategy, target string, port int, res probe.Result, status int) error {
	rep := domain.NewReport(s, target, port, res)
	rep.StatusCode = status

	log.Info("ping_result",
		zap.String("strategy", string(rep.Strategy)),
		zap.String("target", rep.Target),
		zap.Int("port", rep.Port),
		zap.Bool("alive", rep.Alive),
		zap.String("exception", rep.Exception),
		zap.String("warning", rep.Warning),
	)

	if cfg.MetricsTextfile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(string(s), target, res)
		if err := rec.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("metrics_write_error", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
		}
	}

	out := cmd.OutOrStdout()
	if o.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		printHuman(out, rep)
	}

	if !rep.Alive {
		return errNotAlive
	}
	return nil
}
