package config

import (
	"fmt"
	"os"
)

// Environment variables consumed by the deploy command. The pipeline passes
// them from repository secrets; locally they come from the .env file.
const (
	EnvDeployHost       = "DEPLOY_HOST"
	EnvDeployPort       = "DEPLOY_PORT"
	EnvDeployUser       = "DEPLOY_USER"
	EnvDeployKey        = "DEPLOY_KEY"
	EnvDeployKeyFile    = "DEPLOY_KEY_FILE"
	EnvDeployKnownHosts = "DEPLOY_KNOWN_HOSTS"
	EnvDeployAppName    = "DEPLOY_APP_NAME"
	EnvDeployAppPath    = "DEPLOY_APP_PATH"
)

// Defaults for optional deploy settings.
const (
	DefaultDeployPort    = "22"
	DefaultDeployAppName = "todoweb"
	DefaultDeployAppPath = "/srv/todoweb/todoweb"
)

// DeploySettings holds everything the deploy command needs to reach the
// server: address, login user, private key material, and the identity of
// the managed process.
type DeploySettings struct {
	// Host is the server address.
	Host string

	// Port is the SSH port.
	Port string

	// User is the login user.
	User string

	// Key is the PEM-encoded private key.
	Key []byte

	// KnownHostsFile is an optional known_hosts file for host key
	// verification. Empty means host keys are not verified.
	KnownHostsFile string

	// AppName is the process name registered with the supervisor.
	AppName string

	// AppPath is the remote path of the application binary.
	AppPath string
}

// DeploySettings reads deploy settings from the environment.
// Host, user and key are required; the rest have defaults.
func (c *Config) DeploySettings() (DeploySettings, error) {
	s := DeploySettings{
		Host:           os.Getenv(EnvDeployHost),
		Port:           os.Getenv(EnvDeployPort),
		User:           os.Getenv(EnvDeployUser),
		KnownHostsFile: os.Getenv(EnvDeployKnownHosts),
		AppName:        os.Getenv(EnvDeployAppName),
		AppPath:        os.Getenv(EnvDeployAppPath),
	}
	if s.Host == "" {
		return DeploySettings{}, fmt.Errorf("%s not set", EnvDeployHost)
	}
	if s.User == "" {
		return DeploySettings{}, fmt.Errorf("%s not set", EnvDeployUser)
	}
	if s.Port == "" {
		s.Port = DefaultDeployPort
	}
	if s.AppName == "" {
		s.AppName = DefaultDeployAppName
	}
	if s.AppPath == "" {
		s.AppPath = DefaultDeployAppPath
	}

	if key := os.Getenv(EnvDeployKey); key != "" {
		s.Key = []byte(key)
	} else if keyFile := os.Getenv(EnvDeployKeyFile); keyFile != "" {
		data, err := os.ReadFile(keyFile)
		if err != nil {
			return DeploySettings{}, fmt.Errorf("read %s: %w", EnvDeployKeyFile, err)
		}
		s.Key = data
	} else {
		return DeploySettings{}, fmt.Errorf("%s or %s must be set", EnvDeployKey, EnvDeployKeyFile)
	}

	return s, nil
}
