// Package pipeline launches the research pipeline as a subprocess and
// captures its outcome. Run failures are data, not errors: a nonzero
// exit or a timeout comes back inside the PipelineRun so the extraction
// layer can still mine whatever the process printed.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"noesis/internal/core/domain"
	platformerrors "noesis/internal/platform/errors"
	"noesis/internal/platform/logx"
)

// Invoker runs the configured pipeline command once per call, appending
// the topic as the final argument. Concurrent calls for the same topic
// serialize; distinct topics run in parallel.
type Invoker struct {
	command []string
	workDir string
	timeout time.Duration
	logger  logx.Logger

	mu     sync.Mutex
	topics map[string]*sync.Mutex
}

// Options configures an Invoker.
type Options struct {
	// Command is the pipeline launch spec, e.g. ["python", "main.py"].
	Command []string
	// WorkDir is the directory the subprocess runs in. Empty means the
	// current directory.
	WorkDir string
	// Timeout bounds a single run. Zero or negative disables the bound.
	Timeout time.Duration
	Logger  logx.Logger
}

// New creates an Invoker. The command must have at least a program name.
func New(opts Options) (*Invoker, error) {
	if len(opts.Command) == 0 {
		return nil, platformerrors.Wrap(platformerrors.ErrConfiguration, domain.ErrMissingPipeline.Error())
	}
	logger := opts.Logger
	if logger == nil {
		logger = logx.New()
	}
	return &Invoker{
		command: opts.Command,
		workDir: opts.WorkDir,
		timeout: opts.Timeout,
		logger:  logger.With("component", "invoker"),
		topics:  make(map[string]*sync.Mutex),
	}, nil
}

// Invoke runs the pipeline for topic and waits for it to finish. The
// only error conditions are an empty topic and a command that cannot be
// started at all; everything the process does after starting, including
// dying with a nonzero status or overrunning the timeout, is recorded
// in the returned PipelineRun.
func (inv *Invoker) Invoke(ctx context.Context, topic string) (*domain.PipelineRun, error) {
	if topic == "" {
		return nil, platformerrors.Wrap(platformerrors.ErrConfiguration, domain.ErrEmptyTopic.Error())
	}

	lock := inv.topicLock(topic)
	lock.Lock()
	defer lock.Unlock()

	runCtx := ctx
	var cancel context.CancelFunc
	if inv.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(inv.command))
	args = append(args, inv.command[1:]...)
	args = append(args, topic)
	cmd := exec.CommandContext(runCtx, inv.command[0], args...)
	cmd.Dir = inv.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	inv.logger.Info("starting pipeline",
		"command", inv.command[0],
		"topic", topic,
		"timeout", inv.timeout.String(),
	)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, platformerrors.Wrapf(platformerrors.ErrConfiguration, "start pipeline: %v", err)
	}

	waitErr := cmd.Wait()
	run := &domain.PipelineRun{
		Topic:     topic,
		StartTime: start,
		Duration:  time.Since(start),
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
	}

	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		run.ExitCode = domain.TimeoutExitCode
		inv.logger.Warn("pipeline timed out",
			"topic", topic,
			"after", run.Duration.String(),
		)
	case waitErr != nil:
		run.ExitCode = exitCode(waitErr)
		inv.logger.Warn("pipeline exited with error",
			"topic", topic,
			"exit_code", run.ExitCode,
			"duration", run.Duration.String(),
		)
	default:
		inv.logger.Info("pipeline completed",
			"topic", topic,
			"duration", run.Duration.String(),
		)
	}

	return run, nil
}

// topicLock returns the mutex guarding runs for a topic, creating it on
// first use. The map only grows; topics are short strings and runs are
// rare enough that reclaiming entries is not worth the bookkeeping.
func (inv *Invoker) topicLock(topic string) *sync.Mutex {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	lock, ok := inv.topics[topic]
	if !ok {
		lock = &sync.Mutex{}
		inv.topics[topic] = lock
	}
	return lock
}

func exitCode(waitErr error) int {
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	// Wait failed for a reason other than process exit status.
	return -1
}
