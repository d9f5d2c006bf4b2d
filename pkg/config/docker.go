package config

import (
	"net/url"
	"os"
	"sync"
)

var (
	isDockerOnce   sync.Once
	isDockerResult bool
)

// IsRunningInDocker returns true if the process is running inside a Docker
// container. Detection is based on the presence of the /.dockerenv file
// which exists in all Docker containers. The result is cached after the
// first call.
func IsRunningInDocker() bool {
	isDockerOnce.Do(func() {
		_, err := os.Stat("/.dockerenv")
		isDockerResult = err == nil
	})
	return isDockerResult
}

// ResolveDSNHost rewrites a URL-style DSN that points at localhost so it
// reaches the host machine when tablint itself runs inside a container.
// Keyword-format DSNs and non-loopback hosts are returned unchanged, as is
// everything when not running in Docker.
func ResolveDSNHost(dsn string) string {
	if !IsRunningInDocker() {
		return dsn
	}
	return rewriteLoopbackHost(dsn)
}

func rewriteLoopbackHost(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}

	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return dsn
	}

	if port := u.Port(); port != "" {
		u.Host = "host.docker.internal:" + port
	} else {
		u.Host = "host.docker.internal"
	}
	return u.String()
}
