package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Actor is the already-authenticated caller of a core operation. The
// boundary layer builds one per request from the verified token; services
// never consult ambient state for identity.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// PunchTypes is the fixed clock-in order; the first type missing for the
// day is the next one to record.
var PunchTypes = []string{
	PunchEntry,
	PunchBreakStart,
	PunchBreakEnd,
	PunchExit,
}

const (
	PunchEntry      = "entry"
	PunchBreakStart = "break_start"
	PunchBreakEnd   = "break_end"
	PunchExit       = "exit"
)

func ValidPunchType(t string) bool {
	switch t {
	case PunchEntry, PunchBreakStart, PunchBreakEnd, PunchExit:
		return true
	default:
		return false
	}
}
