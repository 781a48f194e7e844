package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"todoweb/internal/config"
)

// dialTimeout bounds the TCP+handshake phase of Dial.
const dialTimeout = 15 * time.Second

// Client runs commands and uploads files over a single SSH connection.
// It implements Conn.
type Client struct {
	ssh  *ssh.Client
	sftp *sftp.Client
}

// Dial connects to the server described by the deploy settings.
// Host keys are verified against the known_hosts file when one is
// configured; otherwise they are accepted blindly, which is only
// appropriate for throwaway tutorial servers.
func Dial(ctx context.Context, settings config.DeploySettings) (*Client, error) {
	signer, err := ssh.ParsePrivateKey(settings.Key)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if settings.KnownHostsFile != "" {
		hostKeyCallback, err = knownhosts.New(settings.KnownHostsFile)
		if err != nil {
			return nil, fmt.Errorf("load known_hosts: %w", err)
		}
	}

	clientConfig := &ssh.ClientConfig{
		User:            settings.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	addr := net.JoinHostPort(settings.Host, settings.Port)
	conn, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	sftpClient, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp: %w", err)
	}

	return &Client{ssh: conn, sftp: sftpClient}, nil
}

// Run implements Runner. Cancelling ctx closes the session, which aborts the
// remote command.
func (c *Client) Run(ctx context.Context, cmd string) (string, error) {
	session, err := c.ssh.NewSession()
	if err != nil {
		return "", fmt.Errorf("new session: %w", err)
	}
	defer session.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()

	output, err := session.CombinedOutput(cmd)
	close(done)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return string(output), ctxErr
	}
	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return string(output), &ExitError{
				Cmd:    cmd,
				Status: exitErr.ExitStatus(),
				Output: string(output),
			}
		}
		return string(output), fmt.Errorf("run %q: %w", cmd, err)
	}
	return string(output), nil
}

// Put implements Uploader. Parent directories are created as needed.
func (c *Client) Put(ctx context.Context, src io.Reader, remotePath string, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := path.Dir(remotePath); dir != "." && dir != "/" {
		if err := c.sftp.MkdirAll(dir); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	f, err := c.sftp.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", remotePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", remotePath, err)
	}

	if err := c.sftp.Chmod(remotePath, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", remotePath, err)
	}
	return nil
}

// Close releases the SFTP and SSH connections.
func (c *Client) Close() error {
	sftpErr := c.sftp.Close()
	sshErr := c.ssh.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return sshErr
}
