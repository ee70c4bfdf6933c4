package resource

// Status is the collapsed view of an accessor's cells.
type Status int

const (
	Idle    Status = iota // No operation has completed yet
	Loading               // An operation is outstanding
	Success               // The last completed operation succeeded
	Failure               // The last completed operation failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}
