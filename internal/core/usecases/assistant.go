// Package usecases wires the research flow together: health-check the
// tool servers, run the pipeline for a topic, and extract whatever the
// run produced into a normalized result.
package usecases

import (
	"context"
	"strconv"

	"noesis/internal/core/domain"
	"noesis/internal/core/ports"
	"noesis/internal/platform/errors"
	"noesis/internal/platform/logx"
)

// ResearchAssistant coordinates one research request end to end.
type ResearchAssistant struct {
	directory ports.ServerDirectory
	invoker   ports.Invoker
	extractor ports.Extractor
	presenter ports.Presenter
	logger    logx.Logger
}

// AssistantOptions configures a ResearchAssistant. All fields except
// Logger are required.
type AssistantOptions struct {
	Directory ports.ServerDirectory
	Invoker   ports.Invoker
	Extractor ports.Extractor
	Presenter ports.Presenter
	Logger    logx.Logger
}

// NewResearchAssistant creates the assistant.
func NewResearchAssistant(opts AssistantOptions) *ResearchAssistant {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &ResearchAssistant{
		directory: opts.Directory,
		invoker:   opts.Invoker,
		extractor: opts.Extractor,
		presenter: opts.Presenter,
		logger:    opts.Logger.With("component", "assistant"),
	}
}

// Research runs the full flow for a topic. The only hard failures are
// configuration ones (empty topic, unlaunchable pipeline); unreachable
// servers, run failures, and missing artifacts all degrade into
// warnings on the returned result.
func (a *ResearchAssistant) Research(ctx context.Context, topic string) (*domain.PipelineResult, error) {
	if topic == "" {
		return nil, errors.Wrap(errors.ErrConfiguration, domain.ErrEmptyTopic.Error())
	}

	preWarnings := a.checkServers(ctx)

	a.presenter.RunStarted(topic)
	run, err := a.invoker.Invoke(ctx, topic)
	if err != nil {
		return nil, err
	}
	a.presenter.RunFinished(run)

	result := a.extractor.Extract(run, topic)

	if run.TimedOut() {
		preWarnings = append(preWarnings, "pipeline timed out after "+run.Duration.String())
	} else if !run.Succeeded() {
		preWarnings = append(preWarnings, "pipeline exited with code "+strconv.Itoa(run.ExitCode))
	}

	if len(preWarnings) > 0 {
		result.Warnings = append(preWarnings, result.Warnings...)
	}

	a.presenter.ShowResult(result)
	return result, nil
}

// Diagnose probes every configured server, including disabled ones, and
// renders the health table.
func (a *ResearchAssistant) Diagnose(ctx context.Context) map[string]domain.HealthStatus {
	statuses := a.directory.CheckAll(ctx)
	a.presenter.ShowHealth(statuses)
	return statuses
}

// checkServers sweeps the registry before a run and converts every
// unreachable dispatch server into a warning. The run proceeds
// regardless; the pipeline's own agents decide what to do without a
// tool.
func (a *ResearchAssistant) checkServers(ctx context.Context) []string {
	statuses := a.directory.CheckAll(ctx)

	var warnings []string
	for _, desc := range a.directory.List() {
		status, ok := statuses[desc.Name]
		if !ok {
			continue
		}
		if !status.Reachable {
			a.logger.Warn("tool server unreachable",
				"server", desc.Name,
				"detail", status.Detail,
			)
			warnings = append(warnings, "tool server "+desc.Name+" unreachable: "+status.Detail)
		}
	}
	return warnings
}

