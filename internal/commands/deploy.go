package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoweb/internal/config"
	"todoweb/internal/deploy"
	"todoweb/internal/exitcode"
	"todoweb/internal/output"
	"todoweb/internal/store"
)

func init() {
	Register(&DeployCmd{})
}

// Dialer opens a connection to the deployment target.
type Dialer func(ctx context.Context, settings config.DeploySettings) (deploy.Conn, error)

// DeployCmd uploads the binary and reconciles the supervisor and managed
// process on the server.
type DeployCmd struct {
	binary string
	dryRun bool
	dial   Dialer
}

// SetDialer overrides the SSH dialer (for testing).
func (c *DeployCmd) SetDialer(d Dialer) {
	c.dial = d
}

// SetBinary sets the local binary path (for testing).
func (c *DeployCmd) SetBinary(path string) {
	c.binary = path
}

// SetDryRun enables dry-run mode (for testing).
func (c *DeployCmd) SetDryRun(v bool) {
	c.dryRun = v
}

func (c *DeployCmd) Name() string      { return "deploy" }
func (c *DeployCmd) Aliases() []string { return nil }
func (c *DeployCmd) Synopsis() string  { return "Deploy the app to the server" }
func (c *DeployCmd) Usage() string {
	return "todoweb deploy [--binary <path>] [--dry-run]"
}
func (c *DeployCmd) NeedsStore() bool { return false }

func (c *DeployCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.binary, "binary", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *DeployCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	settings, err := cfg.DeploySettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: deploy config: %v\n", err)
		return exitcode.ConfigError
	}

	dial := c.dial
	if dial == nil {
		dial = func(ctx context.Context, settings config.DeploySettings) (deploy.Conn, error) {
			return deploy.Dial(ctx, settings)
		}
	}

	conn, err := dial(ctx, settings)
	if err != nil {
		fmt.Fprintf(errOut, "error: connect: %v\n", err)
		return exitcode.DeployError
	}
	defer conn.Close()

	desired := deploy.Desired{
		AppName: settings.AppName,
		AppPath: settings.AppPath,
	}

	if c.dryRun {
		obs, err := deploy.Observe(ctx, conn, desired)
		if err != nil {
			fmt.Fprintf(errOut, "error: observe: %v\n", err)
			return exitcode.DeployError
		}
		output.FormatPlan(out, deploy.Plan(obs, desired))
		return exitcode.Success
	}

	if c.binary != "" {
		if err := deploy.Upload(ctx, conn, c.binary, settings.AppPath); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.DeployError
		}
	}

	rep, err := deploy.Ensure(ctx, conn, desired)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.DeployError
	}

	if !cfg.Quiet {
		output.FormatReport(out, rep, settings.AppName)
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
