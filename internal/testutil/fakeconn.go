package testutil

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"todoweb/internal/deploy"
)

// FakeConn is an in-memory implementation of deploy.Conn that emulates a
// server with an optional pm2 installation.
type FakeConn struct {
	mu sync.Mutex

	// SupervisorInstalled is the emulated pm2 presence. Installing flips it.
	SupervisorInstalled bool

	// Processes maps process names the supervisor knows about.
	Processes map[string]bool

	// Commands records every command run, in order.
	Commands []string

	// Uploads records uploaded file contents by remote path.
	Uploads map[string][]byte

	// Error injection for testing: a command listed here fails with the
	// given error instead of being emulated.
	FailWith map[string]error

	// PutErr fails every upload when set.
	PutErr error

	// Closed reports whether Close was called.
	Closed bool
}

// NewFakeConn creates a FakeConn with no supervisor and no processes.
func NewFakeConn() *FakeConn {
	return &FakeConn{
		Processes: make(map[string]bool),
		Uploads:   make(map[string][]byte),
		FailWith:  make(map[string]error),
	}
}

// CommandCount returns how many times cmd was run.
func (f *FakeConn) CommandCount(cmd string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Commands {
		if c == cmd {
			n++
		}
	}
	return n
}

// Run implements deploy.Runner by emulating pm2 semantics.
func (f *FakeConn) Run(ctx context.Context, cmd string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Commands = append(f.Commands, cmd)

	if err := f.FailWith[cmd]; err != nil {
		return "", err
	}

	switch cmd {
	case deploy.CheckSupervisorCommand:
		if !f.SupervisorInstalled {
			return "", &deploy.ExitError{Cmd: cmd, Status: 1}
		}
		return "", nil
	case deploy.InstallSupervisorCommand:
		f.SupervisorInstalled = true
		return "", nil
	case deploy.SaveCommand:
		return "", nil
	}

	if name, ok := matchStart(cmd); ok {
		f.Processes[name] = true
		return "", nil
	}
	if name, ok := matchProbe(cmd); ok {
		if !f.Processes[name] {
			return "", &deploy.ExitError{Cmd: cmd, Status: 1}
		}
		return "", nil
	}
	return "", &deploy.ExitError{Cmd: cmd, Status: 127}
}

// matchStart reports whether cmd is a StartCommand and extracts the process
// name. StartCommand has the fixed shape: pm2 start '<path>' --name '<name>'
func matchStart(cmd string) (name string, ok bool) {
	if !strings.HasPrefix(cmd, "pm2 start '") {
		return "", false
	}
	_, quoted, found := strings.Cut(cmd, "--name '")
	if !found {
		return "", false
	}
	return strings.TrimSuffix(quoted, "'"), true
}

// matchProbe matches DescribeCommand and RestartCommand, both of which act
// on a single quoted process name.
func matchProbe(cmd string) (name string, ok bool) {
	for _, prefix := range []string{"pm2 describe '", "pm2 restart '"} {
		if rest, found := strings.CutPrefix(cmd, prefix); found {
			name, _, found := strings.Cut(rest, "'")
			return name, found
		}
	}
	return "", false
}

// Put implements deploy.Uploader.
func (f *FakeConn) Put(ctx context.Context, src io.Reader, remotePath string, mode os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PutErr != nil {
		return f.PutErr
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	f.Uploads[remotePath] = data
	return nil
}

// Close implements deploy.Conn.
func (f *FakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
