package mutation

// Outcome is the resolution of one mutation. Optimistic is the in-flight
// state between a local apply and the backend's answer; a finished mutation
// is always Confirmed or RolledBack.
type Outcome int

const (
	Optimistic Outcome = iota
	Confirmed
	RolledBack
)

func (o Outcome) String() string {
	switch o {
	case Optimistic:
		return "OPTIMISTIC"
	case Confirmed:
		return "CONFIRMED"
	case RolledBack:
		return "ROLLED_BACK"
	default:
		return "UNKNOWN"
	}
}

// run executes one mutation under either discipline. An optimistic op
// passes apply/revert: apply runs before the call goes out, revert runs
// only on failure. A confirm-after-write op passes nil for both and commits
// local state solely through confirm, after the backend has answered.
func run(apply, revert func(), call func() error, confirm func()) (Outcome, error) {
	if apply != nil {
		apply()
	}
	if err := call(); err != nil {
		if revert != nil {
			revert()
		}
		return RolledBack, err
	}
	if confirm != nil {
		confirm()
	}
	return Confirmed, nil
}
