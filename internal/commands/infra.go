package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoweb/internal/config"
	"todoweb/internal/exitcode"
	"todoweb/internal/infra"
	"todoweb/internal/output"
	"todoweb/internal/store"
)

func init() {
	Register(&InfraCmd{})
}

// InfraCmd validates the infrastructure declaration and prints the declared
// resources.
type InfraCmd struct {
	file string
}

// SetFile sets the declaration file path (for testing).
func (c *InfraCmd) SetFile(path string) {
	c.file = path
}

func (c *InfraCmd) Name() string      { return "infra" }
func (c *InfraCmd) Aliases() []string { return nil }
func (c *InfraCmd) Synopsis() string  { return "Validate and print the infrastructure declaration" }
func (c *InfraCmd) Usage() string     { return "todoweb infra [--file <decl.cue>]" }
func (c *InfraCmd) NeedsStore() bool  { return false }

func (c *InfraCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "")
	fs.StringVar(&c.file, "f", "", "")
}

func (c *InfraCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var decl infra.Declaration
	var err error
	if c.file != "" {
		decl, err = infra.LoadFile(c.file)
	} else {
		decl, err = infra.Load()
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid declaration: %v\n", err)
		return exitcode.UserError
	}

	output.FormatInstance(out, decl.Instance)
	output.FormatBucket(out, decl.Bucket)
	return exitcode.Success
}
