package store

// Operation identifies a family of store operations. Each family carries its
// own tracked status, so a failing delete cannot be mistaken for a failing
// list just because they overlapped in flight.
type Operation string

const (
	OpList           Operation = "list"
	OpGet            Operation = "get"
	OpCreate         Operation = "create"
	OpUpdate         Operation = "update"
	OpUpdateLocation Operation = "update_location"
	OpDelete         Operation = "delete"
	OpETA            Operation = "eta"
)

// Phase is the lifecycle of a dispatched operation. Begin always precedes
// exactly one terminal phase.
type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// OpStatus is the tracked state of one operation family. Err is only set in
// the Failed phase.
type OpStatus struct {
	Phase Phase
	Err   string
}
