package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/logger"
)

// statusResponse is the agent's /status payload.
type statusResponse struct {
	Running bool   `json:"running"`
	App     string `json:"app,omitempty"`
	PID     int    `json:"pid,omitempty"`
}

// Driver implements core.Backend against a bridge agent.
type Driver struct {
	client *client
}

// New creates a bridge backend talking to the agent at baseURL.
func New(baseURL string) *Driver {
	return &Driver{client: newClient(baseURL)}
}

// Connect implements core.Backend. It polls the agent until the application
// reports running or ctx expires.
func (d *Driver) Connect(ctx context.Context) error {
	for {
		var status statusResponse
		err := d.client.get("/status", &status)
		if err == nil && status.Running {
			logger.Info("bridge connected to %q (pid %d)", status.App, status.PID)
			return nil
		}
		if err != nil {
			logger.Debug("bridge not reachable yet: %v", err)
		}

		select {
		case <-ctx.Done():
			if err == nil {
				err = fmt.Errorf("application not running")
			}
			return &core.EnvironmentError{Op: "connect", Err: err}
		case <-time.After(time.Second):
		}
	}
}

// TopWindows implements core.Backend. Each call fetches a fresh tree
// snapshot from the agent.
func (d *Driver) TopWindows() ([]core.Element, error) {
	var nodes []*node
	if err := d.client.get("/windows", &nodes); err != nil {
		return nil, err
	}
	out := make([]core.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &element{node: n, client: d.client})
	}
	return out, nil
}

// WaitForIdle implements core.Backend.
func (d *Driver) WaitForIdle(timeout time.Duration) error {
	return d.client.post(fmt.Sprintf("/wait-idle?timeoutMs=%d", timeout.Milliseconds()), nil, nil)
}

// Screenshot implements core.Backend.
func (d *Driver) Screenshot() ([]byte, error) {
	return d.client.getRaw("/screenshot")
}

// Hierarchy implements core.Backend.
func (d *Driver) Hierarchy() ([]byte, error) {
	return d.client.getRaw("/hierarchy")
}

// ProcessRunning implements core.Backend.
func (d *Driver) ProcessRunning() bool {
	var status statusResponse
	if err := d.client.get("/status", &status); err != nil {
		return false
	}
	return status.Running
}

// Close implements core.Backend. The agent terminates the application on
// shutdown; an unreachable agent means there is nothing left to close.
func (d *Driver) Close() error {
	err := d.client.post("/shutdown", nil, nil)
	if err != nil {
		logger.Debug("bridge shutdown: %v", err)
	}
	d.client.httpClient.CloseIdleConnections()
	return nil
}
