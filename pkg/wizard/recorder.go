package wizard

// Direction names a navigation attempt.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Submission outcomes reported to the Recorder.
const (
	SubmissionAccepted            = "accepted"
	SubmissionConfirmationMissing = "confirmation_missing"
)

// Recorder receives controller events for metrics. Implementations must be
// cheap; they run inline with every event.
type Recorder interface {
	Transition(direction Direction, moved bool)
	ValidationFailed(step int)
	EntryAdded(group string)
	EntryRemoved(group string)
	Submission(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Transition(Direction, bool) {}
func (nopRecorder) ValidationFailed(int)       {}
func (nopRecorder) EntryAdded(string)          {}
func (nopRecorder) EntryRemoved(string)        {}
func (nopRecorder) Submission(string)          {}
