package entities

// RepositoryState classifies the local/remote repository pair.
type RepositoryState string

const (
	// StateNewLocal means no local repository exists and no remote is reachable.
	StateNewLocal RepositoryState = "NEW_LOCAL"
	// StateExistingLocal means a local repository exists but is not fully
	// wired to (or in sync with) the remote.
	StateExistingLocal RepositoryState = "EXISTING_LOCAL"
	// StateExistingRemote means no local repository exists but a configured
	// remote is reachable and can be cloned.
	StateExistingRemote RepositoryState = "EXISTING_REMOTE"
	// StateSynchronized means the local repository tracks the remote and
	// their tips match.
	StateSynchronized RepositoryState = "SYNCHRONIZED"
)

// ClassifyRepositoryState derives the repository state from the observed
// facts. It is a pure function so the classification can be tested without
// touching a real repository.
func ClassifyRepositoryState(localExists, remoteExists, trackingConfigured, needsSync bool) RepositoryState {
	switch {
	case !localExists && remoteExists:
		return StateExistingRemote
	case !localExists:
		return StateNewLocal
	case trackingConfigured && !needsSync:
		return StateSynchronized
	default:
		return StateExistingLocal
	}
}

// RepositoryInfo is an immutable snapshot of the local/remote repository
// pair, computed on demand and cached by the state manager.
type RepositoryInfo struct {
	State              RepositoryState
	LocalExists        bool
	RemoteExists       bool
	RemoteURL          string
	DefaultBranch      string
	LocalBranch        string
	TrackingConfigured bool
	NeedsSync          bool
}

// RepositoryStatus is the status snapshot exposed to the surrounding
// application by the sync manager facade.
type RepositoryStatus struct {
	Initialized      bool
	SyncEnabled      bool
	RepositoryExists bool
	RemoteConfigured bool
	RemoteURL        string
	LastError        string
}
