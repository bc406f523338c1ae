package worker_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/worker"
)

// shBridge builds a bridge that runs the given shell script instead of the
// real worker. The script still receives the command token and payload as
// $0-relative positional args, which these tests ignore.
func shBridge(t *testing.T, script string) *worker.ProcessBridge {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bridge tests drive /bin/sh")
	}
	return worker.NewProcessBridge("sh", "-c", script, "worker")
}

const validPlanJSON = `{
	"dailyItinerary": [{"day": 1, "date": "2025-06-01", "activities": [], "meals": [], "transportation": []}],
	"totalCost": {"flights": 0, "accommodation": 0, "activities": 0, "transportation": 0, "meals": 0, "total": 100}
}`

func TestInvoke_Success(t *testing.T) {
	b := shBridge(t, `echo '`+validPlanJSON+`'`)

	raw, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, map[string]any{"destination": "Paris"})

	require.NoError(t, err)
	assert.Contains(t, string(raw), "dailyItinerary")
}

func TestInvoke_NonZeroExit(t *testing.T) {
	b := shBridge(t, `echo 'model quota exceeded' >&2; exit 1`)

	_, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, nil)

	require.ErrorIs(t, err, domain.ErrWorkerFailed)
	assert.ErrorContains(t, err, "model quota exceeded", "stderr diagnostics must surface")
}

func TestInvoke_NonZeroExitIgnoresStdout(t *testing.T) {
	// Exit code wins regardless of stdout content.
	b := shBridge(t, `echo '`+validPlanJSON+`'; exit 3`)

	_, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, nil)

	assert.ErrorIs(t, err, domain.ErrWorkerFailed)
}

func TestInvoke_MalformedOutput(t *testing.T) {
	b := shBridge(t, `echo 'Traceback (most recent call last):'`)

	_, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, nil)

	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
}

func TestInvoke_EmptyOutput(t *testing.T) {
	b := shBridge(t, `true`)

	_, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, nil)

	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
}

func TestInvoke_Timeout(t *testing.T) {
	b := shBridge(t, `sleep 5`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := b.Invoke(ctx, worker.CommandGenerateTripPlan, nil)

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Less(t, time.Since(start), 3*time.Second, "caller wait must be bounded by the context")
}

func TestInvoke_StartFailure(t *testing.T) {
	b := worker.NewProcessBridge("/nonexistent/tripweaver-worker")

	_, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, nil)

	assert.ErrorIs(t, err, domain.ErrWorkerFailed)
}

func TestInvoke_ValidationRunsBeforeSuccess(t *testing.T) {
	b := shBridge(t, `echo '{"dailyItinerary": [], "totalCost": {"total": 100}}'`)

	_, err := b.Invoke(context.Background(), worker.CommandGenerateTripPlan, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
}

func TestInvoke_DayCommandValidated(t *testing.T) {
	b := shBridge(t, `echo '{"dayItinerary": {"day": 2, "date": "2025-06-02", "activities": []}}'`)

	raw, err := b.Invoke(context.Background(), worker.CommandGenerateDayItinerary, nil)

	require.NoError(t, err)
	assert.Contains(t, string(raw), "dayItinerary")
}
