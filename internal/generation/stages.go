package generation

// Stage is the externally visible progress state of a generation request.
// The middle stages (processing through finalizing) are cosmetic: they
// advance on a fixed interval while the worker call is in flight and carry
// no information about actual completion. Only complete and failed are
// real terminal signals.
type Stage string

const (
	StageFetching    Stage = "fetching"
	StageContacting  Stage = "contacting"
	StageProcessing  Stage = "processing"
	StageAnalyzing   Stage = "analyzing"
	StageCreating    Stage = "creating"
	StageCalculating Stage = "calculating"
	StageFinalizing  Stage = "finalizing"
	StageComplete    Stage = "complete"
	StageFailed      Stage = "failed"
)

// tickedStages are advanced through by the progress ticker, in order,
// while a full regeneration is outstanding.
var tickedStages = []Stage{
	StageProcessing,
	StageAnalyzing,
	StageCreating,
	StageCalculating,
	StageFinalizing,
}

// Terminal reports whether the stage ends a generation request.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageFailed
}

// Message returns the user-facing progress text for the stage.
func (s Stage) Message() string {
	switch s {
	case StageFetching:
		return "Fetching current trip details..."
	case StageContacting:
		return "Contacting AI for travel suggestions..."
	case StageProcessing:
		return "Processing AI recommendations..."
	case StageAnalyzing:
		return "Analyzing destination data..."
	case StageCreating:
		return "Creating your detailed itinerary..."
	case StageCalculating:
		return "Calculating trip costs..."
	case StageFinalizing:
		return "Finalizing your personalized travel plan..."
	case StageComplete:
		return "Plan generated successfully!"
	case StageFailed:
		return "Plan generation failed."
	default:
		return string(s)
	}
}
