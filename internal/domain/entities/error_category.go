package entities

// ErrorCategory groups git sync failures into actionable buckets.
type ErrorCategory string

const (
	CategoryNetwork        ErrorCategory = "NETWORK"
	CategoryAuthentication ErrorCategory = "AUTHENTICATION"
	CategoryRepoAccess     ErrorCategory = "REPOSITORY_ACCESS"
	CategoryBranch         ErrorCategory = "BRANCH_DETECTION"
	CategoryMergeConflict  ErrorCategory = "MERGE_CONFLICT"
	CategoryCorruption     ErrorCategory = "REPOSITORY_CORRUPTION"
	CategoryConfiguration  ErrorCategory = "CONFIGURATION"
	CategoryUnknown        ErrorCategory = "UNKNOWN"
)

// RecoveryAction is the strategy associated with an error category.
type RecoveryAction string

const (
	ActionRetry              RecoveryAction = "RETRY"
	ActionFallback           RecoveryAction = "FALLBACK"
	ActionUserActionRequired RecoveryAction = "USER_ACTION_REQUIRED"
	ActionAbort              RecoveryAction = "ABORT"
	ActionReinitialize       RecoveryAction = "REINITIALIZE"
)

// ErrorResolution describes how a category of failure is surfaced to the
// user and how automatic recovery behaves. There is exactly one resolution
// per category, registered statically by the recovery engine.
type ErrorResolution struct {
	Category         ErrorCategory
	Action           RecoveryAction
	UserMessage      string
	TechnicalMessage string
	ResolutionSteps  []string
	RetryDelay       float64 // seconds between recovery attempts
	MaxRetries       int
}
