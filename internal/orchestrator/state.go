package orchestrator

// State is the lifecycle phase of a mint or transfer attempt. An orchestrator
// is a single-goroutine reducer: callers drive it from one session loop, so
// state transitions need no locking.
type State string

const (
	// StateEditing - collecting input, nothing submitted
	StateEditing State = "editing"
	// StateValidating - checking input before any side effect
	StateValidating State = "validating"
	// StateUploading - pushing the artwork asset to hosting
	StateUploading State = "uploading"
	// StatePublishingMetadata - publishing the tokenURI document
	StatePublishingMetadata State = "publishing_metadata"
	// StateAwaitingSignature - transaction built, waiting for the wallet to sign
	StateAwaitingSignature State = "awaiting_signature"
	// StateConfirming - transaction broadcast, waiting for it to be mined
	StateConfirming State = "confirming"
	// StateSucceeded - confirmed and persisted
	StateSucceeded State = "succeeded"
	// StateFailed - the attempt ended with an error
	StateFailed State = "failed"
)

// progressLabels are the user-facing descriptions shown while an attempt runs
var progressLabels = map[State]string{
	StateEditing:            "",
	StateValidating:         "Checking your input...",
	StateUploading:          "Uploading artwork...",
	StatePublishingMetadata: "Publishing metadata...",
	StateAwaitingSignature:  "Waiting for wallet signature...",
	StateConfirming:         "Waiting for confirmation...",
	StateSucceeded:          "Done",
	StateFailed:             "Failed",
}

// ProgressLabel returns the user-facing description of a state
func (s State) ProgressLabel() string {
	return progressLabels[s]
}

// InFlight reports whether an attempt is between its first side effect and its
// terminal state. Dialogs must not be dismissed while in flight.
func (s State) InFlight() bool {
	switch s {
	case StateValidating, StateUploading, StatePublishingMetadata, StateAwaitingSignature, StateConfirming:
		return true
	default:
		return false
	}
}
