package main

import (
	"github.com/spf13/cobra"

	"github.com/hamed0406/netping/internal/domain"
	"github.com/hamed0406/netping/internal/probe"
)

func newTCPCmd(o *options) *cobra.Command {
	var (
		port         int
		serviceCheck bool
	)
	cmd := &cobra.Command{
		Use:   "tcp <host>",
		Short: "Open a TCP connection to host:port",
		Long: `Dial host:port once. Without --service-check a refused connection still
counts as alive, since the host answered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			p := probe.NewTCPProbe(args[0], port, cfg.Timeout)
			p.Logger = log
			p.ServiceCheck = serviceCheck

			p.Ping()
			return o.finish(cmd, cfg, log, domain.StrategyTCP, p.Host, p.Port, p.Result(), 0)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&port, "port", "p", probe.DefaultTCPPort, "port to dial")
	f.BoolVar(&serviceCheck, "service-check", false, "require the port to accept the connection")
	return cmd
}
