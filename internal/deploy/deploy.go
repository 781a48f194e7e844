// Package deploy reconciles the remote process supervisor and the managed
// application process.
//
// The supervisor is pm2: it restarts named processes and persists its process
// table across reboots via `pm2 save`. Reconciliation is explicit: observe the
// remote state, compare with the desired state, apply the difference. Every
// step is fail-fast; there is no retry and no rollback.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Runner executes a shell command on the server.
type Runner interface {
	// Run executes cmd and returns its combined output. A command that ran
	// and exited non-zero returns *ExitError; transport failures return
	// other errors.
	Run(ctx context.Context, cmd string) (string, error)
}

// Uploader copies a file to the server.
type Uploader interface {
	Put(ctx context.Context, src io.Reader, remotePath string, mode os.FileMode) error
}

// Conn is the remote end of a deployment: command execution plus file upload.
type Conn interface {
	Runner
	Uploader
	Close() error
}

// ExitError reports a remote command that ran and exited non-zero.
type ExitError struct {
	Cmd    string
	Status int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("remote command %q exited %d", e.Cmd, e.Status)
}

// Desired describes the state the server should be in after a deployment.
type Desired struct {
	// AppName is the process name registered with the supervisor.
	AppName string

	// AppPath is the remote path of the application binary.
	AppPath string
}

// Observed is the remote state relevant to reconciliation.
type Observed struct {
	// SupervisorPresent reports whether pm2 is installed.
	SupervisorPresent bool

	// ProcessKnown reports whether the supervisor knows the named process.
	// Always false when the supervisor is absent.
	ProcessKnown bool
}

// Report describes the actions a reconciliation took.
type Report struct {
	// InstalledSupervisor is true if pm2 had to be installed.
	InstalledSupervisor bool

	// ProcessAction is "started" or "restarted".
	ProcessAction string
}

// Process actions reported by Ensure.
const (
	ActionStarted   = "started"
	ActionRestarted = "restarted"
)

// Observe inspects the server and returns the state relevant to d.
func Observe(ctx context.Context, r Runner, d Desired) (Observed, error) {
	var obs Observed

	present, err := check(ctx, r, CheckSupervisorCommand)
	if err != nil {
		return Observed{}, fmt.Errorf("check supervisor: %w", err)
	}
	obs.SupervisorPresent = present
	if !present {
		return obs, nil
	}

	known, err := check(ctx, r, DescribeCommand(d.AppName))
	if err != nil {
		return Observed{}, fmt.Errorf("check process %s: %w", d.AppName, err)
	}
	obs.ProcessKnown = known
	return obs, nil
}

// Plan returns the steps Ensure would take for the observed state, one line
// per step, for dry-run output.
func Plan(obs Observed, d Desired) []string {
	var steps []string
	if obs.SupervisorPresent {
		steps = append(steps, "supervisor present, skipping install")
	} else {
		steps = append(steps, "install supervisor (pm2)")
	}
	if obs.ProcessKnown {
		steps = append(steps, fmt.Sprintf("restart %s", d.AppName))
	} else {
		steps = append(steps, fmt.Sprintf("start %s from %s", d.AppName, d.AppPath))
	}
	steps = append(steps, "save process table")
	return steps
}

// Ensure reconciles the server with d. A missing supervisor is installed
// exactly once; a known process is restarted rather than started again, so
// re-running a deployment never duplicates it. The process table is saved
// after every successful reconciliation.
func Ensure(ctx context.Context, r Runner, d Desired) (Report, error) {
	obs, err := Observe(ctx, r, d)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	if !obs.SupervisorPresent {
		if _, err := r.Run(ctx, InstallSupervisorCommand); err != nil {
			return Report{}, fmt.Errorf("install supervisor: %w", err)
		}
		rep.InstalledSupervisor = true
	}

	if obs.ProcessKnown {
		if _, err := r.Run(ctx, RestartCommand(d.AppName)); err != nil {
			return Report{}, fmt.Errorf("restart %s: %w", d.AppName, err)
		}
		rep.ProcessAction = ActionRestarted
	} else {
		if _, err := r.Run(ctx, StartCommand(d.AppPath, d.AppName)); err != nil {
			return Report{}, fmt.Errorf("start %s: %w", d.AppName, err)
		}
		rep.ProcessAction = ActionStarted
	}

	if _, err := r.Run(ctx, SaveCommand); err != nil {
		return Report{}, fmt.Errorf("save process table: %w", err)
	}
	return rep, nil
}

// Upload copies the local binary to the remote app path with mode 0755.
func Upload(ctx context.Context, u Uploader, localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()
	if err := u.Put(ctx, f, remotePath, 0755); err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}
	return nil
}

// check runs a probe command. Exit zero means true, non-zero means false,
// anything else is a transport error.
func check(ctx context.Context, r Runner, cmd string) (bool, error) {
	_, err := r.Run(ctx, cmd)
	if err == nil {
		return true, nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, err
}
