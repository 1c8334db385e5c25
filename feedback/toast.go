package feedback

import "time"

// DefaultToastTTL is how long a toast stays up before it dismisses itself.
const DefaultToastTTL = 3 * time.Second

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

type Phase int

const (
	Idle Phase = iota
	Showing
	Dismissing
)

func (p Phase) String() string {
	switch p {
	case Showing:
		return "showing"
	case Dismissing:
		return "dismissing"
	default:
		return "idle"
	}
}

// Toast is a transient notification. It moves Idle -> Showing on Show,
// Showing -> Dismissing on Dismiss or once TTL has elapsed, and
// Dismissing -> Idle on the following Tick. Showing again restarts the timer.
type Toast struct {
	Message string
	Kind    Kind
	Phase   Phase
	ShownAt time.Time
	TTL     time.Duration
}

func NewToast(ttl time.Duration) Toast {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return Toast{TTL: ttl}
}

func (t *Toast) Show(message string, kind Kind, now time.Time) {
	if message == "" {
		return
	}
	if t.TTL <= 0 {
		t.TTL = DefaultToastTTL
	}
	t.Message = message
	t.Kind = kind
	t.Phase = Showing
	t.ShownAt = now
}

func (t *Toast) Success(message string, now time.Time) { t.Show(message, Success, now) }

func (t *Toast) Error(message string, now time.Time) { t.Show(message, Error, now) }

func (t *Toast) Dismiss() {
	if t.Phase == Showing {
		t.Phase = Dismissing
	}
}

// Tick advances the toast to now.
func (t *Toast) Tick(now time.Time) {
	switch t.Phase {
	case Showing:
		if now.Sub(t.ShownAt) >= t.TTL {
			t.Phase = Dismissing
		}
	case Dismissing:
		t.Message = ""
		t.Kind = ""
		t.Phase = Idle
	}
}

func (t Toast) Visible() bool {
	return t.Phase == Showing
}

// Remaining is how long the toast has left on screen at now.
func (t Toast) Remaining(now time.Time) time.Duration {
	if t.Phase != Showing {
		return 0
	}
	left := t.TTL - now.Sub(t.ShownAt)
	if left < 0 {
		return 0
	}
	return left
}
