package main

import (
	"github.com/spf13/cobra"

	"github.com/hamed0406/netping/internal/domain"
	"github.com/hamed0406/netping/internal/probe"
)

func newHTTPCmd(o *options) *cobra.Command {
	var (
		port          int
		userAgent     string
		redirectLimit int
		noFollow      bool
		insecure      bool
	)
	cmd := &cobra.Command{
		Use:   "http <url>",
		Short: "GET a URL, following redirects",
		Long: `Issue HTTP GET requests to the URL. Any non-redirect response, including
4xx and 5xx, proves the host is alive. Bare host names use http://.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			p := probe.NewHTTPProbe(args[0], port, cfg.Timeout)
			p.Logger = log
			p.UserAgent = cfg.UserAgent
			p.RedirectLimit = cfg.RedirectLimit
			p.FollowRedirect = cfg.FollowRedirect
			if cmd.Flags().Changed("user-agent") {
				p.UserAgent = userAgent
			}
			if cmd.Flags().Changed("redirect-limit") {
				p.RedirectLimit = redirectLimit
			}
			if noFollow {
				p.FollowRedirect = false
			}
			p.InsecureTLS = insecure

			p.Ping()
			return o.finish(cmd, cfg, log, domain.StrategyHTTP, p.URI(), p.Port, p.Result(), p.StatusCode())
		},
	}
	f := cmd.Flags()
	f.IntVarP(&port, "port", "p", 0, "port (default from URL or scheme)")
	f.StringVarP(&userAgent, "user-agent", "A", "", "User-Agent header")
	f.IntVar(&redirectLimit, "redirect-limit", probe.DefaultRedirectLimit, "maximum redirects to follow")
	f.BoolVar(&noFollow, "no-follow", false, "treat any redirect as a failure")
	f.BoolVarP(&insecure, "insecure", "k", false, "skip TLS certificate verification")
	return cmd
}
