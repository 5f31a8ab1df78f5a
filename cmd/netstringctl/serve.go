package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/danmuck/netstring/internal/observability"
	"github.com/danmuck/netstring/internal/transport"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		addr  string
		quiet bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept TCP connections and print every received item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = rt.cfg.ListenAddr
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			var mln net.Listener
			if rt.cfg.MetricsAddr != "" {
				mln, err = net.Listen("tcp", rt.cfg.MetricsAddr)
				if err != nil {
					_ = ln.Close()
					return fmt.Errorf("listen metrics %s: %w", rt.cfg.MetricsAddr, err)
				}
			}

			out := cmd.OutOrStdout()
			srvCfg := transport.DefaultServerConfig()
			srvCfg.ReadChunk = rt.cfg.ReadBufferBytes
			srv := transport.NewServer(srvCfg, rt.codec, func(remote, item string) {
				rt.logger.Debug().Str("remote", remote).Int("len", len(item)).Msg("received")
				if !quiet {
					fmt.Fprintf(out, "%s\t%q\n", remote, item)
				}
			}, rt.logger)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return srv.Serve(ctx, ln)
			})
			if mln != nil {
				g.Go(func() error {
					return observability.ServeMetrics(ctx, mln, "netstringctl", rt.logger)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (defaults to listen_addr)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print received items")
	return cmd
}
