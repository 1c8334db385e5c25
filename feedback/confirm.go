package feedback

// Confirm is the blocking "are you sure?" modal in front of a destructive action.
// It is either closed, or open holding the id of the item awaiting confirmation.
type Confirm struct {
	Title  string
	target int64
	open   bool
}

// Request opens the modal for id, replacing any earlier pending target.
func (c *Confirm) Request(id int64) {
	c.target = id
	c.open = true
}

func (c *Confirm) Cancel() {
	c.target = 0
	c.open = false
}

// Take closes the modal and returns the confirmed target. ok is false when nothing was pending.
func (c *Confirm) Take() (id int64, ok bool) {
	if !c.open {
		return 0, false
	}
	id = c.target
	c.Cancel()
	return id, true
}

func (c Confirm) Open() bool { return c.open }

// Pending returns the target awaiting confirmation without closing the modal.
func (c Confirm) Pending() (int64, bool) {
	return c.target, c.open
}

// Target is the pending id, 0 when the modal is closed.
func (c Confirm) Target() int64 { return c.target }
