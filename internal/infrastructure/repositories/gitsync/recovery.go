package gitsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/recallkit/recall/internal/domain/entities"
)

// RecoveryFunc is one recovery strategy invocation.
type RecoveryFunc func(ctx context.Context) entities.SyncResult

// RecoveryEngine owns error-to-resolution mapping, recovery retry loops and
// corruption detection/repair. The reinitialize hook is provided by the
// manager so the engine can rebuild the repository after a destructive reset
// without depending on the facade.
type RecoveryEngine struct {
	repoDir      string
	executor     *CommandExecutor
	resolutions  map[entities.ErrorCategory]entities.ErrorResolution
	reinitialize RecoveryFunc
	sleep        func(time.Duration)
}

// NewRecoveryEngine creates a recovery engine with the static resolution
// table.
func NewRecoveryEngine(repoDir string, executor *CommandExecutor) *RecoveryEngine {
	return &RecoveryEngine{
		repoDir:     repoDir,
		executor:    executor,
		resolutions: newResolutionTable(),
		sleep:       time.Sleep,
	}
}

// SetReinitializer installs the hook used to rebuild the repository after a
// destructive metadata reset.
func (e *RecoveryEngine) SetReinitializer(fn RecoveryFunc) {
	e.reinitialize = fn
}

// Resolution returns the resolution registered for a category, synthesizing
// the generic one when the category is not registered.
func (e *RecoveryEngine) Resolution(category entities.ErrorCategory) entities.ErrorResolution {
	if resolution, ok := e.resolutions[category]; ok {
		return resolution
	}
	return genericResolution()
}

// HandleError categorizes a failure and converts it into a structured, fully
// user-displayable SyncResult: explanation, ordered resolution steps, retry
// notice when applicable, and the raw technical detail.
func (e *RecoveryEngine) HandleError(message, operation, code string) entities.SyncResult {
	category := Categorize(message, code)
	resolution := e.Resolution(category)

	logger.Warnf("Operation %q failed with category %s, recovery action %s",
		operation, category, resolution.Action)

	var sb strings.Builder
	sb.WriteString(resolution.UserMessage)
	sb.WriteString("\n\nResolution steps:\n")
	for i, step := range resolution.ResolutionSteps {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
	}
	if resolution.Action == entities.ActionRetry {
		fmt.Fprintf(&sb, "\nThe operation will be retried automatically (up to %d times).\n",
			resolution.MaxRetries)
	}
	fmt.Fprintf(&sb, "\nTechnical details: %s", message)

	if code == "" {
		code = string(category) + "_ERROR"
	}
	return entities.NewFailureResult(operation, sb.String(), code, 1)
}

// AttemptRecovery runs the recovery strategy registered for the category.
// USER_ACTION_REQUIRED and ABORT return immediately without invoking the
// function; otherwise it is called up to MaxRetries+1 times with RetryDelay
// sleeps between attempts (never before the first).
func (e *RecoveryEngine) AttemptRecovery(ctx context.Context, category entities.ErrorCategory, recoveryFn RecoveryFunc) entities.SyncResult {
	resolution := e.Resolution(category)

	switch resolution.Action {
	case entities.ActionUserActionRequired:
		return entities.NewFailureResult(
			"attempt-recovery",
			fmt.Sprintf("%s Automatic recovery is not possible.", resolution.UserMessage),
			entities.CodeUserActionNeeded, 1)
	case entities.ActionAbort:
		return entities.NewFailureResult(
			"attempt-recovery",
			fmt.Sprintf("%s Recovery aborted.", resolution.UserMessage),
			entities.CodeRecoveryAborted, 1)
	}

	var last entities.SyncResult
	attempts := resolution.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			e.sleep(time.Duration(resolution.RetryDelay * float64(time.Second)))
		}
		last = recoveryFn(ctx)
		if last.Success {
			logger.Infof("Recovery for category %s succeeded on attempt %d", category, attempt)
			return last
		}
		logger.Warnf("Recovery attempt %d/%d for category %s failed: %s",
			attempt, attempts, category, last.Message)
	}

	return entities.NewFailureResult(
		"attempt-recovery",
		fmt.Sprintf("recovery for category %s failed after %d attempts: %s",
			category, attempts, last.Message),
		entities.CodeRecoveryFailed, attempts)
}

// ValidateRepositoryIntegrity runs a full consistency check over the
// repository object store.
func (e *RecoveryEngine) ValidateRepositoryIntegrity(ctx context.Context) entities.SyncResult {
	result, _ := e.executor.Run(ctx, commandSpec{
		args:        []string{"fsck", "--full"},
		operation:   "validate-integrity",
		dir:         e.repoDir,
		maxAttempts: 1,
		timeout:     defaultCommandTimeout,
	})
	if !result.Success {
		return entities.NewFailureResult(
			"validate-integrity",
			fmt.Sprintf("repository integrity check failed: %s", result.Message),
			entities.CodeIntegrityFailed, result.Attempts)
	}
	return entities.NewSuccessResult("validate-integrity", "repository integrity verified", result.Attempts)
}

// RecoverCorruptedRepository repairs a corrupted repository. It first tries
// a non-destructive repack/prune and re-validates; when the object store is
// still broken it removes the metadata store entirely and reinitializes it.
// Working files (the memory records) are preserved either way, but local
// history is lost on the destructive path, and the result says so.
func (e *RecoveryEngine) RecoverCorruptedRepository(ctx context.Context) entities.SyncResult {
	logger.Warn("Attempting repository corruption recovery")

	gc, _ := e.executor.Run(ctx, commandSpec{
		args:        []string{"gc", "--prune=now"},
		operation:   "repack-repository",
		dir:         e.repoDir,
		maxAttempts: 1,
		timeout:     longCommandTimeout,
	})
	if gc.Success {
		if check := e.ValidateRepositoryIntegrity(ctx); check.Success {
			return entities.NewSuccessResult(
				"recover-repository",
				"repository repaired non-destructively via repack/prune",
				gc.Attempts)
		}
	}

	logger.Warn("Non-destructive repair failed; reinitializing repository metadata")

	gitDir := filepath.Join(e.repoDir, ".git")
	if err := os.RemoveAll(gitDir); err != nil {
		return entities.NewFailureResult(
			"recover-repository",
			fmt.Sprintf("failed to remove corrupted metadata store %s: %v", gitDir, err),
			entities.CodeRecoveryFailed, 1)
	}

	if e.reinitialize == nil {
		return entities.NewFailureResult(
			"recover-repository",
			"metadata store removed but no reinitializer is configured",
			entities.CodeRecoveryFailed, 1)
	}

	reinit := e.reinitialize(ctx)
	if !reinit.Success {
		return reinit
	}
	return entities.NewSuccessResult(
		"recover-repository",
		"repository metadata was reinitialized from scratch; memory files were preserved but local git history was lost",
		reinit.Attempts)
}
