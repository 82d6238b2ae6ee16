package domain

// BuildResult is what the builder reports for one submission.
type BuildResult struct {
	TaskID int64
	State  ComponentState
	Reason string
	NVR    string
}

// Task is a task known to the external builder.
type Task struct {
	ID      int64
	Package string
	Source  string
	State   TaskState
}

// TaskCompletion is published by asynchronous builders when a task finishes.
type TaskCompletion struct {
	TaskID int64
	State  ComponentState
	Reason string
	NVR    string
}
