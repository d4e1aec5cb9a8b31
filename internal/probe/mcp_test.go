package probe

import (
	"context"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"noesis/internal/core/domain"
	"noesis/internal/platform/errors"
	"noesis/internal/platform/logx"
	"noesis/internal/testutil"
)

type echoInput struct {
	Text string `json:"text" jsonschema:"text to echo back"`
}

type echoOutput struct {
	Text string `json:"text"`
}

func handleEcho(_ context.Context, _ *sdkmcp.CallToolRequest, input echoInput) (*sdkmcp.CallToolResult, echoOutput, error) {
	return nil, echoOutput{Text: input.Text}, nil
}

func newTestServer(t *testing.T, toolNames ...string) *sdkmcp.Server {
	t.Helper()
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test-server", Version: "v0.0.1"}, nil)
	for _, name := range toolNames {
		sdkmcp.AddTool(srv, &sdkmcp.Tool{
			Name:        name,
			Description: "test tool",
		}, handleEcho)
	}
	return srv
}

func newTestProber(t *testing.T) *MCPProber {
	t.Helper()
	return New(logx.NewWithWriter(testWriter{t}, logx.LevelError))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func TestProbeTransport_ListsTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := newTestServer(t, "search_web", "fetch_page")
	t1, t2 := sdkmcp.NewInMemoryTransports()
	if _, err := srv.Connect(ctx, t1, nil); err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	p := newTestProber(t)
	detail, err := p.probeTransport(ctx, t2)
	testutil.AssertNoError(t, err, "probe")

	if !strings.Contains(detail, "search_web") || !strings.Contains(detail, "fetch_page") {
		t.Errorf("detail missing tool names: %q", detail)
	}
}

func TestProbeTransport_NoTools(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := newTestServer(t)
	t1, t2 := sdkmcp.NewInMemoryTransports()
	if _, err := srv.Connect(ctx, t1, nil); err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	p := newTestProber(t)
	detail, err := p.probeTransport(ctx, t2)
	testutil.AssertNoError(t, err, "probe")
	testutil.AssertEqual(t, detail, "no tools advertised", "detail")
}

func TestProbeTransport_NoServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Client side of an in-memory pair that no server ever connects to.
	_, t2 := sdkmcp.NewInMemoryTransports()

	p := newTestProber(t)
	_, err := p.probeTransport(ctx, t2)
	testutil.AssertError(t, err, "probe with no server")
	testutil.AssertTrue(t, errors.IsUnreachable(err), "unreachable sentinel")
}

func TestTransportFor(t *testing.T) {
	p := newTestProber(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		desc    domain.ToolServerDescriptor
		wantErr bool
	}{
		{
			name: "command spec",
			desc: domain.ToolServerDescriptor{
				Name:       "search",
				Capability: domain.CapabilitySearch,
				Command:    []string{"python", "search_server.py"},
				Enabled:    true,
			},
		},
		{
			name: "endpoint spec",
			desc: domain.ToolServerDescriptor{
				Name:       "remote",
				Capability: domain.CapabilitySearch,
				Endpoint:   "http://localhost:9900/mcp",
				Enabled:    true,
			},
		},
		{
			name:    "no launch spec",
			desc:    domain.ToolServerDescriptor{Name: "broken", Capability: domain.CapabilitySearch},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := p.transportFor(ctx, tt.desc)
			if tt.wantErr {
				testutil.AssertError(t, err, "transportFor")
				testutil.AssertTrue(t, errors.IsConfiguration(err), "configuration sentinel")
				return
			}
			testutil.AssertNoError(t, err, "transportFor")
			if transport == nil {
				t.Fatal("expected non-nil transport")
			}
		})
	}
}

func TestTransportFor_CommandWins(t *testing.T) {
	// Validate rejects descriptors carrying both specs, but transportFor
	// resolves deterministically if handed one anyway.
	p := newTestProber(t)
	desc := domain.ToolServerDescriptor{
		Name:       "both",
		Capability: domain.CapabilitySearch,
		Command:    []string{"python", "srv.py"},
		Endpoint:   "http://localhost:9900/mcp",
	}
	transport, err := p.transportFor(context.Background(), desc)
	testutil.AssertNoError(t, err, "transportFor")
	if _, ok := transport.(*sdkmcp.CommandTransport); !ok {
		t.Errorf("expected CommandTransport, got %T", transport)
	}
}
