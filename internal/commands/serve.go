package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"todoweb/internal/config"
	"todoweb/internal/exitcode"
	"todoweb/internal/logging"
	"todoweb/internal/store"
	"todoweb/internal/web"
)

const shutdownTimeout = 5 * time.Second

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs the web server until the context is cancelled.
type ServeCmd struct {
	addr string
}

// SetAddr sets the listen address (for testing).
func (c *ServeCmd) SetAddr(addr string) {
	c.addr = addr
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Run the web server" }
func (c *ServeCmd) Usage() string     { return "todoweb serve [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", ":8080", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	logger := logging.New(errOut, cfg.Debug)
	server := &http.Server{
		Addr:    c.addr,
		Handler: web.New(st, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", c.addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ServerError
	}

	logger.Info("shut down")
	return exitcode.Success
}
