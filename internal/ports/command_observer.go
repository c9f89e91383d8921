package ports

// CommandObserver is told about every planner command outcome.
type CommandObserver interface {
	CommandApplied(command string, err error)
	SnapshotSaveFailed(command string)
}
