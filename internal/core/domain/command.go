package domain

// ExecutionPath identifies which channel satisfied a dual-path command.
type ExecutionPath string

const (
	PathPrimary   ExecutionPath = "primary"
	PathSecondary ExecutionPath = "secondary"
	PathNone      ExecutionPath = "none"
)

// Classification is the tagged fallback decision made once, immediately after
// the primary attempt. Only availability failures are fallback-eligible;
// application rejections are terminal.
type Classification string

const (
	FallbackEligible Classification = "fallback_eligible"
	Terminal         Classification = "terminal"
)

// CommandResult is the uniform, transient outcome of a dual-path command.
// It is returned to the caller and never persisted.
type CommandResult struct {
	Success   bool          `json:"success"`
	Path      ExecutionPath `json:"path"`
	CreatedID string        `json:"createdID,omitempty"`
	Err       error         `json:"-"`
}
