package sheet

// EventType identifies a pipeline progress event.
type EventType int

const (
	// EventFrameRendered fires after each frame render completes.
	EventFrameRendered EventType = iota
	// EventSheetSaved fires once an animation's sheet is on disk.
	EventSheetSaved
	// EventSkipped fires for animations with an empty frame range.
	EventSkipped
	// EventFailed fires when an animation aborts the run.
	EventFailed
)

// Event reports pipeline progress for one animation.
type Event struct {
	Type      EventType
	Animation string
	Frame     int // frames completed so far
	Total     int
	Path      string
	Err       error
}
