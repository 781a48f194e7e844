package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoweb/internal/config"
	"todoweb/internal/exitcode"
	"todoweb/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todoweb help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todoweb serve [common flags] [--addr <host:port>]   Run the web server
  todoweb deploy [common flags] [--binary <path>] [--dry-run]
  todoweb infra [common flags] [--file <decl.cue>]
  todoweb help
  todoweb version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Deploy environment (.env or repository secrets):
  DEPLOY_HOST         Server address (required)
  DEPLOY_USER         Login user (required)
  DEPLOY_KEY          PEM private key (or DEPLOY_KEY_FILE)
  DEPLOY_PORT         SSH port (default 22)
  DEPLOY_KNOWN_HOSTS  known_hosts file for host key verification
  DEPLOY_APP_NAME     Supervisor process name (default todoweb)
  DEPLOY_APP_PATH     Remote binary path (default /srv/todoweb/todoweb)
`
