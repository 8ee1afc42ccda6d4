package gitsync

import "github.com/recallkit/recall/internal/domain/entities"

// newResolutionTable builds the static resolution registry: exactly one
// resolution per error category. Retry counts and propagation follow the
// error handling design (network retried with backoff, credentials and
// configuration left to the user, corruption repaired destructively).
func newResolutionTable() map[entities.ErrorCategory]entities.ErrorResolution {
	return map[entities.ErrorCategory]entities.ErrorResolution{
		entities.CategoryNetwork: {
			Category:         entities.CategoryNetwork,
			Action:           entities.ActionRetry,
			UserMessage:      "The memory repository remote could not be reached.",
			TechnicalMessage: "network failure while contacting the git remote",
			ResolutionSteps: []string{
				"Check your internet connection",
				"Verify the remote URL is reachable (firewall, VPN, proxy)",
				"Try again in a few minutes",
			},
			RetryDelay: 2.0,
			MaxRetries: 3,
		},
		entities.CategoryAuthentication: {
			Category:         entities.CategoryAuthentication,
			Action:           entities.ActionUserActionRequired,
			UserMessage:      "Git rejected the credentials for the memory repository remote.",
			TechnicalMessage: "authentication failure against the git remote",
			ResolutionSteps: []string{
				"Verify the credential embedded in sync.remote_url (or its ${ENV_VAR})",
				"Check that the token has not expired and grants push access",
				"Update your SSH key or personal access token if needed",
			},
			MaxRetries: 0,
		},
		entities.CategoryRepoAccess: {
			Category:         entities.CategoryRepoAccess,
			Action:           entities.ActionUserActionRequired,
			UserMessage:      "The remote memory repository could not be accessed.",
			TechnicalMessage: "remote repository missing or inaccessible",
			ResolutionSteps: []string{
				"Verify sync.remote_url points at an existing repository",
				"Check that your account has access to the repository",
				"Create the repository on the remote host if it does not exist yet",
			},
			MaxRetries: 1,
		},
		entities.CategoryBranch: {
			Category:         entities.CategoryBranch,
			Action:           entities.ActionFallback,
			UserMessage:      "The remote's default branch could not be determined.",
			TechnicalMessage: "default branch detection failed; falling back to the default",
			ResolutionSteps: []string{
				"Verify the remote repository has at least one branch",
				"Push an initial commit to the remote if it is empty",
			},
			RetryDelay: 1.0,
			MaxRetries: 2,
		},
		entities.CategoryMergeConflict: {
			Category:         entities.CategoryMergeConflict,
			Action:           entities.ActionFallback,
			UserMessage:      "Local and remote memory history diverged; the remote copy wins.",
			TechnicalMessage: "merge conflict resolved by preferring remote content",
			ResolutionSteps: []string{
				"Review the repository history if local-only changes matter to you",
				"Re-store any memory that was overwritten by the remote copy",
			},
			MaxRetries: 1,
		},
		entities.CategoryCorruption: {
			Category:         entities.CategoryCorruption,
			Action:           entities.ActionReinitialize,
			UserMessage:      "The local memory repository metadata is corrupted.",
			TechnicalMessage: "git object store failed integrity checks",
			ResolutionSteps: []string{
				"A non-destructive repack will be attempted first",
				"If that fails, the repository metadata is reinitialized; memory files are preserved",
			},
			MaxRetries: 1,
		},
		entities.CategoryConfiguration: {
			Category:         entities.CategoryConfiguration,
			Action:           entities.ActionUserActionRequired,
			UserMessage:      "The sync configuration is invalid.",
			TechnicalMessage: "invalid sync configuration",
			ResolutionSteps: []string{
				"Review the sync section of your recall configuration file",
				"Check sync.remote_url, sync.retry_attempts and storage.repo_dir",
			},
			MaxRetries: 0,
		},
		entities.CategoryUnknown: genericResolution(),
	}
}

// genericResolution is synthesized for categories with no registered entry
// as well as for UNKNOWN itself.
func genericResolution() entities.ErrorResolution {
	return entities.ErrorResolution{
		Category:         entities.CategoryUnknown,
		Action:           entities.ActionUserActionRequired,
		UserMessage:      "Memory synchronization failed for an unrecognized reason.",
		TechnicalMessage: "unclassified git sync failure",
		ResolutionSteps: []string{
			"Inspect the technical details below",
			"Run 'recall status' to check the repository state",
			"Run 'recall recover' to validate and repair the repository",
		},
		MaxRetries: 0,
	}
}
