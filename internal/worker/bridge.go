// Package worker bridges to the external generation worker process.
// The worker is an opaque collaborator: it receives a command token and a
// JSON document as argv, writes exactly one JSON document to stdout, and
// signals failure through its exit code. Prompt construction and model
// calls live entirely on the other side of this boundary.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
)

// Command tokens recognized by the worker.
const (
	CommandGenerateTripPlan     = "generate_trip_plan"
	CommandGenerateDayItinerary = "generate_day_itinerary"
)

// Invoker is the narrow RPC surface the orchestrator depends on. Modeling
// the call as command + payload in, JSON-or-typed-error out means the
// generation logic can later run in-process without touching any caller.
type Invoker interface {
	Invoke(ctx context.Context, command string, payload any) (json.RawMessage, error)
}

// ProcessBridge runs the worker as a subprocess per invocation.
type ProcessBridge struct {
	// Program is the interpreter or binary to execute, e.g. "python3".
	Program string
	// Args are fixed leading arguments, e.g. the wrapper script path.
	// The command token and payload JSON are appended after these.
	Args []string
}

// NewProcessBridge constructs a bridge for the given program and fixed args.
func NewProcessBridge(program string, args ...string) *ProcessBridge {
	return &ProcessBridge{Program: program, Args: args}
}

// Invoke serializes the payload, runs the worker, and returns its stdout as
// validated JSON. Stdout and stderr are buffered separately; stderr is
// diagnostic only and is attached to failures. The context bounds the
// caller's wait — on expiry the subprocess is killed and the call fails
// with ErrTimeout, leaving whatever the caller had stored untouched.
func (b *ProcessBridge) Invoke(ctx context.Context, command string, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("worker.ProcessBridge.Invoke: marshal payload: %w", err)
	}

	args := append(append([]string{}, b.Args...), command, string(data))
	cmd := exec.CommandContext(ctx, b.Program, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		slog.Warn("generation worker timed out", "command", command, "elapsed", elapsed)
		return nil, fmt.Errorf("worker.ProcessBridge.Invoke: %s after %s: %w",
			command, elapsed.Round(time.Millisecond), domain.ErrTimeout)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			slog.Error("generation worker exited non-zero",
				"command", command, "code", exitErr.ExitCode(), "stderr", trimDiag(stderr.String()))
			return nil, fmt.Errorf("worker.ProcessBridge.Invoke: %s exited %d: %s: %w",
				command, exitErr.ExitCode(), trimDiag(stderr.String()), domain.ErrWorkerFailed)
		}
		return nil, fmt.Errorf("worker.ProcessBridge.Invoke: start %s: %v: %w",
			b.Program, runErr, domain.ErrWorkerFailed)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(stdout.Bytes(), &raw); err != nil {
		slog.Error("generation worker wrote non-JSON output",
			"command", command, "bytes", stdout.Len())
		return nil, fmt.Errorf("worker.ProcessBridge.Invoke: %s: %w", command, domain.ErrMalformedOutput)
	}

	if err := ValidateResponse(command, raw); err != nil {
		return nil, fmt.Errorf("worker.ProcessBridge.Invoke: %s: %w", command, err)
	}

	slog.Info("generation worker finished", "command", command, "elapsed", elapsed.Round(time.Millisecond))
	return raw, nil
}

// trimDiag keeps failure messages readable when the worker dumps a long
// traceback to stderr.
func trimDiag(s string) string {
	s = strings.TrimSpace(s)
	const max = 512
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
