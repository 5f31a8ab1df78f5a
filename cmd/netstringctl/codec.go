package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danmuck/netstring/internal/netstring"
)

func encodeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [item...]",
		Short: "Encode items as netstrings",
		Long:  "Encode each argument as one frame. With no arguments every stdin line becomes one frame.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			w := netstring.NewWriter(cmd.OutOrStdout(), rt.codec)
			if len(args) > 0 {
				for _, item := range args {
					if err := w.WriteItem(item); err != nil {
						return err
					}
				}
				return w.Flush()
			}

			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), maxLine(rt.codec.Limits()))
			for sc.Scan() {
				if err := w.WriteItem(sc.Text()); err != nil {
					return err
				}
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			return w.Flush()
		},
	}
}

func decodeCmd(opts *globalOptions) *cobra.Command {
	var separator string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a netstring stream from stdin",
		Long:  "Decode frames from stdin and print each item followed by the separator.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			rd := netstring.NewReader(cmd.InOrStdin(), rt.codec, rt.cfg.ReadBufferBytes)
			for {
				item, err := rd.ReadItem()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("decode: %w", err)
				}
				if _, err := out.WriteString(item + separator); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().StringVar(&separator, "sep", "\n", "separator printed after each item")
	return cmd
}

func maxLine(limits netstring.Limits) int {
	if limits.MaxPayloadBytes > 0 {
		return limits.MaxPayloadBytes + 1
	}
	return bufio.MaxScanTokenSize * 1024
}
