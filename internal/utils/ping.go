package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ProbeTimeout bounds a single server probe
const ProbeTimeout = 1500 * time.Millisecond

// ServerURL is the loopback base URL of the journal API on port
func ServerURL(port string) string {
	return "http://" + net.JoinHostPort("127.0.0.1", port)
}

// PingServer asks the journal API on the loopback port for /health.
// Any HTTP answer below 500, or 503 from an unhealthy store, means the server is up.
func PingServer(ctx context.Context, port string) error {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ServerURL(port)+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("journal API not reachable on port %s: %w", port, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError && resp.StatusCode != http.StatusServiceUnavailable {
		return fmt.Errorf("journal API on port %s answered %d", port, resp.StatusCode)
	}
	return nil
}

// WaitForServer retries PingServer until it succeeds or maxWait elapses
func WaitForServer(ctx context.Context, port string, maxWait time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = maxWait

	return backoff.Retry(func() error {
		return PingServer(ctx, port)
	}, backoff.WithContext(policy, ctx))
}
