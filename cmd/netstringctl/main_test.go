package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/netstring/internal/logging"
	"github.com/danmuck/netstring/internal/netstring"
	"github.com/danmuck/netstring/internal/testutil/testlog"
)

func run(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	return runRaw(t, ctx, stdin, append([]string{"--log-level", "off"}, args...)...)
}

func runRaw(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	testlog.Start(t)
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestEncodeArgs(t *testing.T) {
	out, err := run(t, context.Background(), "", "encode", "hello", "", "a,b:c,d")
	require.NoError(t, err)
	require.Equal(t, "5:hello,0:,7:a,b:c,d,", out)
}

func TestEncodeStdinLines(t *testing.T) {
	out, err := run(t, context.Background(), "hello\nworld\n", "encode")
	require.NoError(t, err)
	require.Equal(t, "5:hello,5:world,", out)
}

func TestDecodeStdin(t *testing.T) {
	out, err := run(t, context.Background(), "5:hello,0:,7:a,b:c,d,", "decode", "--sep", "|")
	require.NoError(t, err)
	require.Equal(t, "hello||a,b:c,d|", out)
}

func TestDecodeFailsOnMalformedStream(t *testing.T) {
	out, err := run(t, context.Background(), "5:hello,ab:xx,", "decode")
	require.ErrorIs(t, err, netstring.ErrMalformedLength)
	require.Equal(t, "hello\n", out)
}

func TestDecodeFailsOnTruncatedStream(t *testing.T) {
	_, err := run(t, context.Background(), "5:hel", "decode")
	require.Error(t, err)
}

func TestEncodeHonorsConfigLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netstring.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_payload_bytes = 3\n"), 0o600))

	_, err := run(t, context.Background(), "", "--config", path, "encode", "hello")
	require.ErrorIs(t, err, netstring.ErrPayloadTooLarge)
}

func TestUnknownLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "encode", "x"})
	require.Error(t, cmd.Execute())
}

func TestEnvLogLevelSurvivesLoad(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "debug")
	_, err := runRaw(t, context.Background(), "", "encode", "x")
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	path := filepath.Join(t.TempDir(), "netstring.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0o600))
	_, err = runRaw(t, context.Background(), "", "--config", path, "encode", "x")
	require.NoError(t, err)
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	_, err = runRaw(t, context.Background(), "", "--config", path, "--log-level", "error", "encode", "x")
	require.NoError(t, err)
	require.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestServeFailsCleanlyWhenMetricsAddrBusy(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	addr := freeAddr(t)
	path := filepath.Join(t.TempDir(), "netstring.toml")
	body := "metrics_addr = \"" + busy.Addr().String() + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	done := make(chan error, 1)
	go func() {
		_, err := run(t, context.Background(), "", "--config", path, "serve", "--addr", addr)
		done <- err
	}()
	select {
	case err := <-done:
		require.ErrorContains(t, err, "listen metrics")
	case <-time.After(5 * time.Second):
		t.Fatalf("serve kept running after metrics listen failure")
	}

	ln, err := net.Listen("tcp", addr)
	require.NoError(t, err, "server listener was not released")
	require.NoError(t, ln.Close())
}

func TestConfigInitPrintsTemplate(t *testing.T) {
	out, err := run(t, context.Background(), "", "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "max_payload_bytes")
}

func TestServeAndSend(t *testing.T) {
	addr := freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveCmd := newRootCmd()
	var serveOut syncBuffer
	serveCmd.SetOut(&serveOut)
	serveCmd.SetErr(&bytes.Buffer{})
	serveCmd.SetArgs([]string{"--log-level", "off", "serve", "--addr", addr})
	done := make(chan error, 1)
	go func() { done <- serveCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		_, err := run(t, context.Background(), "", "send", "--addr", addr, "hello", "a,b:c")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		s := serveOut.String()
		return strings.Contains(s, `"hello"`) && strings.Contains(s, `"a,b:c"`)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
