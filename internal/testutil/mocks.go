// internal/testutil/mocks.go
package testutil

import (
	"context"
	"sync"

	"noesis/internal/core/domain"
)

// MockProber implements ports.Prober for registry tests.
type MockProber struct {
	mu        sync.Mutex
	ProbeFunc func(ctx context.Context, desc domain.ToolServerDescriptor) (string, error)
	Probed    []string
}

func (m *MockProber) Probe(ctx context.Context, desc domain.ToolServerDescriptor) (string, error) {
	m.mu.Lock()
	m.Probed = append(m.Probed, desc.Name)
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, desc)
	}
	return "ok", nil
}

// ProbedNames returns a copy of the probed server names.
func (m *MockProber) ProbedNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Probed))
	copy(out, m.Probed)
	return out
}

// MockArtifactReader implements ports.ArtifactReader with canned values.
type MockArtifactReader struct {
	Structured     []domain.SearchRecord
	StructuredDiag string
	Summary        string
	Images         []string
	ImagesDiag     string
}

func (m *MockArtifactReader) ReadStructured() ([]domain.SearchRecord, string) {
	return m.Structured, m.StructuredDiag
}

func (m *MockArtifactReader) ReadSummary() string {
	return m.Summary
}

func (m *MockArtifactReader) ListImages() ([]string, string) {
	return m.Images, m.ImagesDiag
}

// MockInvoker implements ports.Invoker returning a canned run.
type MockInvoker struct {
	Run     *domain.PipelineRun
	Err     error
	Invoked []string
}

func (m *MockInvoker) Invoke(ctx context.Context, topic string) (*domain.PipelineRun, error) {
	m.Invoked = append(m.Invoked, topic)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Run != nil {
		return m.Run, nil
	}
	return &domain.PipelineRun{Topic: topic}, nil
}

// MockPresenter implements ports.Presenter recording what was shown.
type MockPresenter struct {
	Started  []string
	Finished []*domain.PipelineRun
	Results  []*domain.PipelineResult
	Health   []map[string]domain.HealthStatus
}

func (m *MockPresenter) RunStarted(topic string)             { m.Started = append(m.Started, topic) }
func (m *MockPresenter) RunFinished(run *domain.PipelineRun) { m.Finished = append(m.Finished, run) }
func (m *MockPresenter) ShowResult(result *domain.PipelineResult) {
	m.Results = append(m.Results, result)
}
func (m *MockPresenter) ShowHealth(statuses map[string]domain.HealthStatus) {
	m.Health = append(m.Health, statuses)
}
