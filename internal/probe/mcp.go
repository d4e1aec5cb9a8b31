// Package probe implements tool-server reachability checks over the
// model context protocol. A server is considered reachable when an MCP
// session can be established and it answers tools/list within the
// caller's deadline.
package probe

import (
	"context"
	"os/exec"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"noesis/internal/core/domain"
	"noesis/internal/platform/errors"
	"noesis/internal/platform/logx"
)

// MCPProber implements ports.Prober. Stdio launch specs are spawned for
// the duration of the probe; HTTP endpoints are dialed with the
// streamable transport.
type MCPProber struct {
	logger logx.Logger
	impl   *sdkmcp.Implementation
}

// New creates an MCPProber.
func New(logger logx.Logger) *MCPProber {
	return &MCPProber{
		logger: logger.With("component", "mcp-prober"),
		impl:   &sdkmcp.Implementation{Name: "noesis-probe", Version: "dev"},
	}
}

// Probe connects to the described server and lists its tools. The returned
// detail names the advertised tools; any failure collapses into an
// Unreachable error for the registry to record.
func (p *MCPProber) Probe(ctx context.Context, desc domain.ToolServerDescriptor) (string, error) {
	transport, err := p.transportFor(ctx, desc)
	if err != nil {
		return "", err
	}
	return p.probeTransport(ctx, transport)
}

// transportFor builds the client transport matching the descriptor's
// launch spec.
func (p *MCPProber) transportFor(ctx context.Context, desc domain.ToolServerDescriptor) (sdkmcp.Transport, error) {
	if len(desc.Command) > 0 {
		cmd := exec.CommandContext(ctx, desc.Command[0], desc.Command[1:]...)
		return &sdkmcp.CommandTransport{Command: cmd}, nil
	}
	if desc.Endpoint != "" {
		return &sdkmcp.StreamableClientTransport{Endpoint: desc.Endpoint}, nil
	}
	return nil, errors.Wrapf(errors.ErrConfiguration, "server %q has no launch spec", desc.Name)
}

// probeTransport runs the handshake and tools/list over an established
// transport. Split out so tests can drive it with in-memory transports.
func (p *MCPProber) probeTransport(ctx context.Context, transport sdkmcp.Transport) (string, error) {
	client := sdkmcp.NewClient(p.impl, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnreachable, "connect: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnreachable, "tools/list: %v", err)
	}

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	if len(names) == 0 {
		return "no tools advertised", nil
	}
	return "tools: " + strings.Join(names, ", "), nil
}
