package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hamed0406/netping/internal/domain"
	"github.com/hamed0406/netping/internal/probe"
)

func newICMPCmd(o *options) *cobra.Command {
	var (
		count      int
		size       int
		interval   time.Duration
		privileged bool
	)
	cmd := &cobra.Command{
		Use:   "icmp <host>",
		Short: "Send ICMP echo requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			p := probe.NewICMPProbe(args[0], cfg.Timeout)
			p.Logger = log
			p.Count = count
			p.Size = size
			p.Interval = interval
			p.Privileged = privileged

			p.Ping()
			return o.finish(cmd, cfg, log, domain.StrategyICMP, p.Host, 0, p.Result(), 0)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 1, "echo requests to send")
	f.IntVarP(&size, "size", "s", 0, "payload size in bytes (0 keeps the default)")
	f.DurationVarP(&interval, "interval", "i", time.Second, "wait between echo requests")
	f.BoolVar(&privileged, "privileged", false, "use raw sockets (needs root or CAP_NET_RAW)")
	return cmd
}
