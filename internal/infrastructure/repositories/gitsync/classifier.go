package gitsync

import (
	"strings"

	"github.com/recallkit/recall/internal/domain/entities"
)

// classificationRule maps a lowercase message substring to a category.
type classificationRule struct {
	substring string
	category  entities.ErrorCategory
}

// classificationRules is matched in order against the lowercased failure
// message; the first hit wins. The group order (network, authentication,
// repository access, branch detection, merge conflict, corruption) is part
// of the contract and covered by tests; do not reorder casually.
var classificationRules = []classificationRule{
	// network
	{"connection refused", entities.CategoryNetwork},
	{"connection timed out", entities.CategoryNetwork},
	{"could not resolve host", entities.CategoryNetwork},
	{"network is unreachable", entities.CategoryNetwork},
	{"failed to connect", entities.CategoryNetwork},
	{"operation timed out", entities.CategoryNetwork},
	// authentication
	{"authentication failed", entities.CategoryAuthentication},
	{"permission denied", entities.CategoryAuthentication},
	{"invalid credentials", entities.CategoryAuthentication},
	{"could not read username", entities.CategoryAuthentication},
	{"could not read password", entities.CategoryAuthentication},
	// repository access
	{"repository not found", entities.CategoryRepoAccess},
	{"does not appear to be a git repository", entities.CategoryRepoAccess},
	{"remote repository is unavailable", entities.CategoryRepoAccess},
	// branch detection
	{"couldn't find remote ref", entities.CategoryBranch},
	{"unknown revision or path", entities.CategoryBranch},
	{"invalid refspec", entities.CategoryBranch},
	{"not a valid branch", entities.CategoryBranch},
	// merge conflict
	{"merge conflict", entities.CategoryMergeConflict},
	{"automatic merge failed", entities.CategoryMergeConflict},
	{"non-fast-forward", entities.CategoryMergeConflict},
	{"fix conflicts", entities.CategoryMergeConflict},
	// repository corruption
	{"not a git repository", entities.CategoryCorruption},
	{"bad object", entities.CategoryCorruption},
	{"loose object", entities.CategoryCorruption},
	{"object file", entities.CategoryCorruption},
	{"index file corrupt", entities.CategoryCorruption},
	{"corrupt", entities.CategoryCorruption},
}

// Categorize maps a failure message and error code to a category. The
// message is matched first; when nothing matches, the code is inspected for
// coarse hints; everything else is UNKNOWN.
func Categorize(message, code string) entities.ErrorCategory {
	msg := strings.ToLower(message)
	if msg != "" {
		for _, rule := range classificationRules {
			if strings.Contains(msg, rule.substring) {
				return rule.category
			}
		}
	}

	c := strings.ToLower(code)
	switch {
	case strings.Contains(c, "timeout"):
		return entities.CategoryNetwork
	case strings.Contains(c, "auth"), strings.Contains(c, "permission"):
		return entities.CategoryAuthentication
	case strings.Contains(c, "branch"):
		return entities.CategoryBranch
	case strings.Contains(c, "conflict"):
		return entities.CategoryMergeConflict
	}
	return entities.CategoryUnknown
}
