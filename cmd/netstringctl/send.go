package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/netstring/internal/transport"
)

func sendCmd(opts *globalOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "send [item...]",
		Short: "Send items to a netstring server",
		Long:  "Dial the server and send each argument as one frame. With no arguments every stdin line is sent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = rt.cfg.DialAddr
			}

			items := args
			if len(items) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				sc.Buffer(make([]byte, 0, 64*1024), maxLine(rt.codec.Limits()))
				for sc.Scan() {
					items = append(items, sc.Text())
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			if err := transport.Send(cmd.Context(), addr, rt.codec, items); err != nil {
				return err
			}
			rt.logger.Info().Str("addr", addr).Int("items", len(items)).Msg("sent")
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (defaults to dial_addr)")
	return cmd
}
