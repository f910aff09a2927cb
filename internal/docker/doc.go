// Package docker implements the optional per-container stats collector.
//
// When enabled (APP_DOCKER_STATS or the config file's docker.enabled),
// sysmon samples CPU and memory usage for every running container via
// the Docker Engine API and folds the readings into the same sysmon
// measurement as the host metrics.
//
// The package wraps the Docker Engine SDK client with automatic socket
// detection across platforms, so the daemon works unmodified whether it
// runs on bare metal or inside a container with the socket mounted.
package docker
