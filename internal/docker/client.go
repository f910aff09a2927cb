package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/mtik00/sysmon/internal/model"
)

// defaultPingTimeout bounds the Docker daemon ping used by the check
// command. 5 seconds covers Docker Desktop's slower VM-backed socket.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client. The wrapper exists so the
// rest of the daemon deals in sysmon's error codes and so socket
// detection lives in one place.
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client with automatic socket detection.
//
// Detection order:
//  1. DOCKER_HOST environment variable, used as-is if set
//  2. Platform default sockets: /var/run/docker.sock on Linux, the same
//     plus ~/.docker/run/docker.sock on macOS, and the named pipe on
//     Windows
//
// Returns a model.CLIError with ExitDockerNotRunning when no socket is
// found or the SDK client cannot be created.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		detected, err := detectDockerHost()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitDockerNotRunning, "Docker socket not found", err)
		}
		host = detected
	}

	inner, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create Docker client for host %q", host), err)
	}

	return &Client{inner: inner}, nil
}

// detectDockerHost probes the known Docker socket locations for the
// current platform and returns the connection string for the first one
// that exists. Existence does not guarantee a responsive daemon; Ping
// handles that.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{"/var/run/docker.sock"})

	case "darwin":
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(paths)

	case "windows":
		// os.Stat does not work on Windows named pipes; a short dial is
		// the only reliable existence probe.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, 1*time.Second)
		if err == nil {
			conn.Close()
			return "npipe://" + pipePath, nil
		}
		return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the Docker host URI for the first socket path
// that exists on the filesystem, in the given order.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of: %v — is Docker running?", paths)
}

// Ping verifies that the Docker daemon is reachable and responsive,
// bounded by defaultPingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitDockerNotRunning,
			"Docker daemon is not responding — is Docker running?", err)
	}
	return nil
}

// Close releases the client's underlying HTTP connection. Safe to call
// multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner exposes the underlying SDK client for API calls the wrapper does
// not cover.
func (c *Client) Inner() *client.Client {
	return c.inner
}
