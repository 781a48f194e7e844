// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid declaration).
	UserError = 1

	// ConfigError indicates missing or invalid deploy configuration.
	ConfigError = 2

	// DeployError indicates a remote-execution failure during deployment.
	DeployError = 3

	// ServerError indicates the web server failed to start or run.
	ServerError = 4
)
