// internal/platform/registry/server_registry.go
package registry

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"noesis/internal/core/domain"
	"noesis/internal/core/ports"
	"noesis/internal/platform/errors"
	"noesis/internal/platform/logx"
)

// ServerRegistry tracks the configured tool servers, their liveness and
// capabilities. Descriptors are immutable after registration; health state
// lives inside the registry and is updated only by its own check methods.
type ServerRegistry struct {
	mu      sync.RWMutex
	order   []string // registration order, for stable listings
	servers map[string]domain.ToolServerDescriptor
	health  map[string]domain.HealthStatus

	prober  ports.Prober
	timeout time.Duration
	logger  logx.Logger
	now     func() time.Time // injectable clock for tests
}

// Options configures a ServerRegistry.
type Options struct {
	Prober       ports.Prober
	ProbeTimeout time.Duration
	Logger       logx.Logger
}

// New creates an empty registry.
func New(opts Options) *ServerRegistry {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &ServerRegistry{
		servers: make(map[string]domain.ToolServerDescriptor),
		health:  make(map[string]domain.HealthStatus),
		prober:  opts.Prober,
		timeout: opts.ProbeTimeout,
		logger:  opts.Logger.With("component", "server-registry"),
		now:     time.Now,
	}
}

// Register adds a descriptor. An invalid descriptor or a duplicate name is
// a Configuration error and does not mutate state.
func (r *ServerRegistry) Register(desc domain.ToolServerDescriptor) error {
	if err := desc.Validate(); err != nil {
		return errors.Wrapf(errors.ErrConfiguration, "server %q: %v", desc.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.servers[desc.Name]; exists {
		return errors.Wrapf(errors.ErrConfiguration, "server %q: %v", desc.Name, domain.ErrDuplicateServer)
	}

	r.servers[desc.Name] = desc
	r.order = append(r.order, desc.Name)
	r.logger.Debug("server registered",
		"name", desc.Name,
		"capability", desc.Capability.String(),
		"enabled", desc.Enabled,
	)
	return nil
}

// List returns enabled descriptors in registration order, optionally
// filtered by capability. This is the dispatch view: disabled servers
// never appear here.
func (r *ServerRegistry) List(caps ...domain.Capability) []domain.ToolServerDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ToolServerDescriptor, 0, len(r.order))
	for _, name := range r.order {
		desc := r.servers[name]
		if !desc.Enabled {
			continue
		}
		if len(caps) > 0 && !hasCapability(desc.Capability, caps) {
			continue
		}
		out = append(out, desc)
	}
	return out
}

// ListAll returns every descriptor, disabled ones included, in registration
// order. This is the diagnostics view.
func (r *ServerRegistry) ListAll() []domain.ToolServerDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ToolServerDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.servers[name])
	}
	return out
}

// Get returns the descriptor with the given name.
func (r *ServerRegistry) Get(name string) (domain.ToolServerDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.servers[name]
	return desc, ok
}

// CheckHealth probes one server with a bounded timeout. Probe failure or
// timeout yields Reachable=false, never an error; the only error case is
// an unregistered name. Disabled servers are reported without probing.
func (r *ServerRegistry) CheckHealth(ctx context.Context, name string) (domain.HealthStatus, error) {
	r.mu.RLock()
	desc, ok := r.servers[name]
	r.mu.RUnlock()

	if !ok {
		return domain.HealthStatus{}, errors.Wrapf(domain.ErrServerNotFound, "%s", name)
	}

	status := r.probe(ctx, desc)

	r.mu.Lock()
	r.health[name] = status
	r.mu.Unlock()

	return status, nil
}

// CheckAll probes every registered server concurrently and returns the
// mapping name -> HealthStatus. Probes fail independently; CheckAll itself
// never fails.
func (r *ServerRegistry) CheckAll(ctx context.Context) map[string]domain.HealthStatus {
	descs := r.ListAll()

	statuses := make([]domain.HealthStatus, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	for i, desc := range descs {
		g.Go(func() error {
			statuses[i] = r.probe(gctx, desc)
			return nil
		})
	}
	g.Wait() // probes never return errors

	out := make(map[string]domain.HealthStatus, len(descs))
	r.mu.Lock()
	for i, desc := range descs {
		r.health[desc.Name] = statuses[i]
		out[desc.Name] = statuses[i]
	}
	r.mu.Unlock()

	return out
}

// Health returns the latest observed statuses without probing.
func (r *ServerRegistry) Health() map[string]domain.HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.HealthStatus, len(r.health))
	for name, status := range r.health {
		out[name] = status
	}
	return out
}

// probe runs one bounded reachability check. Liveness is advisory: every
// failure mode collapses into Reachable=false with a detail string.
func (r *ServerRegistry) probe(ctx context.Context, desc domain.ToolServerDescriptor) domain.HealthStatus {
	status := domain.HealthStatus{
		Server:      desc.Name,
		LastChecked: r.now(),
	}

	if !desc.Enabled {
		status.Detail = "disabled"
		return status
	}
	if r.prober == nil {
		status.Detail = "no prober configured"
		return status
	}

	probeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	detail, err := r.prober.Probe(probeCtx, desc)
	if err != nil {
		status.Detail = err.Error()
		r.logger.Warn("health probe failed",
			"server", desc.Name,
			"error", err.Error(),
		)
		return status
	}

	status.Reachable = true
	status.Detail = detail
	r.logger.Debug("health probe ok", "server", desc.Name, "detail", detail)
	return status
}

func hasCapability(c domain.Capability, caps []domain.Capability) bool {
	for _, want := range caps {
		if c == want {
			return true
		}
	}
	return false
}
