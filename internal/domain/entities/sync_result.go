package entities

// Error codes carried by failed SyncResults. They are stable strings so
// callers (and the error classifier) can switch on them.
const (
	CodeCommandFailed     = "GIT_COMMAND_FAILED"
	CodeCommandTimeout    = "GIT_COMMAND_TIMEOUT"
	CodeCommandUnexpected = "GIT_COMMAND_UNEXPECTED_ERROR"
	CodeSyncDisabled      = "GIT_SYNC_DISABLED"
	CodeNotInitialized    = "GIT_SYNC_NOT_INITIALIZED"
	CodeSyncShutDown      = "GIT_SYNC_SHUT_DOWN"
	CodeUserActionNeeded  = "RECOVERY_USER_ACTION_REQUIRED"
	CodeRecoveryAborted   = "RECOVERY_ABORTED"
	CodeRecoveryFailed    = "RECOVERY_FAILED"
	CodeIntegrityFailed   = "REPOSITORY_INTEGRITY_FAILED"
)

// SyncResult is the outcome of a sync engine operation. It is fully
// constructed at creation and never mutated after being returned; a result
// with Success=true never carries an ErrorCode.
type SyncResult struct {
	Success        bool
	Message        string
	Operation      string
	Attempts       int
	ErrorCode      string
	RepositoryInfo *RepositoryInfo
	BranchUsed     string
}

// NewSuccessResult builds a successful result for the given operation.
func NewSuccessResult(operation, message string, attempts int) SyncResult {
	return SyncResult{
		Success:   true,
		Message:   message,
		Operation: operation,
		Attempts:  attempts,
	}
}

// NewFailureResult builds a failed result carrying a stable error code.
func NewFailureResult(operation, message, errorCode string, attempts int) SyncResult {
	return SyncResult{
		Success:   false,
		Message:   message,
		Operation: operation,
		Attempts:  attempts,
		ErrorCode: errorCode,
	}
}

// WithRepositoryInfo returns a copy of the result annotated with a
// repository snapshot. The receiver is not modified.
func (r SyncResult) WithRepositoryInfo(info *RepositoryInfo) SyncResult {
	r.RepositoryInfo = info
	return r
}

// WithBranch returns a copy of the result annotated with the branch the
// operation acted on. The receiver is not modified.
func (r SyncResult) WithBranch(branch string) SyncResult {
	r.BranchUsed = branch
	return r
}
