// internal/installation/remote.go
package installation

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/tamzrod/extcontrol/internal/contribution"
	"github.com/tamzrod/extcontrol/internal/endpoint"
)

const (
	defaultRemoteTimeout = 2 * time.Second
	maxScriptBytes       = 1 << 20

	requestProgram = "request_program\n"
)

// Remote fetches the control loop from the master it is pointed at.
// Stateless: 1 request = 1 connection. No retries.
type Remote struct {
	name    string
	master  func() endpoint.Descriptor
	timeout time.Duration
}

var _ contribution.Installation = (*Remote)(nil)

// RemoteConfig describes a Remote installation.
// Master is read on every request so a newly selected master is used at once.
type RemoteConfig struct {
	Name    string
	Master  func() endpoint.Descriptor
	Timeout time.Duration
}

// NewRemote validates cfg.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.Master == nil {
		return nil, errors.New("installation: remote needs a master source")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRemoteTimeout
	}
	return &Remote{
		name:    cfg.Name,
		master:  cfg.Master,
		timeout: cfg.Timeout,
	}, nil
}

func (r *Remote) Name() string { return r.name }

// ControlLoop sends "request_program\n" and returns everything the master
// writes back until it closes the connection.
func (r *Remote) ControlLoop(contribution.ScriptWriter) (string, error) {
	m := r.master()
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("installation: no usable master: %w", err)
	}
	addr := net.JoinHostPort(m.Address, m.Port)

	conn, err := net.DialTimeout("tcp", addr, r.timeout)
	if err != nil {
		return "", fmt.Errorf("installation: dial %s: %w", addr, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(r.timeout))
	if err := writeAll(conn, []byte(requestProgram)); err != nil {
		return "", fmt.Errorf("installation: request program: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(r.timeout))
	body, err := io.ReadAll(io.LimitReader(conn, maxScriptBytes+1))
	if err != nil {
		return "", fmt.Errorf("installation: read program: %w", err)
	}
	if len(body) > maxScriptBytes {
		return "", fmt.Errorf("installation: program from %s exceeds %d bytes", addr, maxScriptBytes)
	}
	return string(body), nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
