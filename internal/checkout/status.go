package checkout

// ComposeState tracks source resolution: Idle -> Resolving -> Resolved or
// Failed. Until Resolved, consumers treat the checkout page as loading.
type ComposeState string

const (
	ComposeIdle      ComposeState = "IDLE"
	ComposeResolving ComposeState = "RESOLVING"
	ComposeResolved  ComposeState = "RESOLVED"
	ComposeFailed    ComposeState = "FAILED"
)

func (s ComposeState) String() string { return string(s) }

// SubmitState tracks order submission: Idle -> Submitting -> Succeeded or
// Failed. Failed permits re-submission; Succeeded is terminal.
type SubmitState string

const (
	SubmitIdle       SubmitState = "IDLE"
	SubmitSubmitting SubmitState = "SUBMITTING"
	SubmitSucceeded  SubmitState = "SUCCEEDED"
	SubmitFailed     SubmitState = "FAILED"
)

func (s SubmitState) String() string { return string(s) }

func (s SubmitState) canSubmit() bool {
	return s == SubmitIdle || s == SubmitFailed
}
