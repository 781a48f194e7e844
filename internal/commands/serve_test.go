package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"todoweb/internal/commands"
	"todoweb/internal/config"
	"todoweb/internal/exitcode"
	"todoweb/internal/store"
)

func TestServeCommand_RejectsPositionalArgs(t *testing.T) {
	cmd := &commands.ServeCmd{}

	_, stderr, code := runCommand(t, cmd, []string{"extra"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unexpected argument") {
		t.Errorf("expected argument error, got %q", stderr)
	}
}

func TestServeCommand_ShutsDownOnCancel(t *testing.T) {
	cmd := &commands.ServeCmd{}
	cmd.SetAddr("127.0.0.1:0")
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		var out, errOut strings.Builder
		done <- cmd.Run(ctx, cfg, store.NewMemory(), nil, &out, &errOut)
	}()

	// Give the listener a moment, then cancel.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		if code != exitcode.Success {
			t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not shut down after cancel")
	}
}

func TestServeCommand_BadAddr(t *testing.T) {
	cmd := &commands.ServeCmd{}
	cmd.SetAddr("256.256.256.256:99999")
	cfg := &config.Config{Dir: t.TempDir()}

	var out, errOut strings.Builder
	code := cmd.Run(context.Background(), cfg, store.NewMemory(), nil, &out, &errOut)

	if code != exitcode.ServerError {
		t.Errorf("expected exit code %d, got %d", exitcode.ServerError, code)
	}
	if !strings.Contains(errOut.String(), "error:") {
		t.Errorf("expected error output, got %q", errOut.String())
	}
}
