package domain

// LaunchSpec is the fully resolved handoff to the runtime entry point.
// It is built incrementally by the orchestrator and immutable once
// passed to launch.
type LaunchSpec struct {
	PrimaryPath      string
	MainClass        string
	ClasspathEntries []string
	Args             []string
}
