package deploy

import (
	"fmt"
	"strings"
)

// Shell commands issued during reconciliation. Exported so tests can emulate
// the supervisor without parsing.
const (
	CheckSupervisorCommand   = "command -v pm2 >/dev/null 2>&1"
	InstallSupervisorCommand = "npm install --global pm2"
	SaveCommand              = "pm2 save"
)

// DescribeCommand probes whether the supervisor knows the named process.
func DescribeCommand(name string) string {
	return fmt.Sprintf("pm2 describe %s >/dev/null 2>&1", shellQuote(name))
}

// StartCommand registers and starts the binary under the given name.
func StartCommand(path, name string) string {
	return fmt.Sprintf("pm2 start %s --name %s", shellQuote(path), shellQuote(name))
}

// RestartCommand restarts an already-registered process.
func RestartCommand(name string) string {
	return fmt.Sprintf("pm2 restart %s", shellQuote(name))
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
