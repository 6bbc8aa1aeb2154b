package ports

import "context"

// Notifier is the best-effort desktop notification and chime collaborator.
// Failures are logged and swallowed by callers, never propagated to the core.
type Notifier interface {
	// Notify displays a desktop notification.
	Notify(title, body string) error

	// Chime plays the session-complete sound.
	Chime() error
}

// GitInfo is the workspace context attached to logged sessions.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector detects git context for the working directory.
type GitDetector interface {
	// Detect returns the current branch and short commit hash.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether a git repository is reachable.
	IsAvailable() bool
}
