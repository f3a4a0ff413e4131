package particle

import (
	"math"
)

// Pending is the interaction an interaction module has scheduled for a
// candidate: which channel will occur and how much further the candidate
// travels before it does.
type Pending struct {
	Channel  int
	Distance float64
	valid    bool
}

// Candidate is a particle being propagated. Current is the particle's present
// state and Initial is a snapshot taken at creation which is never modified.
//
// A Candidate carries one pending-interaction slot per interaction module.
// Slots are indexed by the integer which a scheduler assigns to each module
// when it is built.
type Candidate struct {
	Current, Initial State

	TrajectoryLength float64
	Redshift         float64
	// NextStep is the largest step the candidate may take next. Modules and
	// schedulers lower it, steppers consume it.
	NextStep float64
	Detected bool
	// Steps counts the steps taken so far.
	Steps int

	active      bool
	pending     []Pending
	secondaries []*Candidate
}

// NewCandidate returns an active candidate whose current and initial states
// are both s. slots is the number of interaction modules it will meet.
func NewCandidate(s State, z float64, slots int) *Candidate {
	return &Candidate{
		Current:  s,
		Initial:  s,
		Redshift: z,
		NextStep: math.MaxFloat64,
		active:   true,
		pending:  make([]Pending, slots),
	}
}

// IsActive returns false once the candidate has reached a terminal state.
func (c *Candidate) IsActive() bool { return c.active }

// Deactivate puts the candidate into its terminal state and clears every
// pending interaction.
func (c *Candidate) Deactivate() {
	c.active = false
	c.ClearPending()
}

// Slots returns the number of pending-interaction slots.
func (c *Candidate) Slots() int { return len(c.pending) }

// Pending returns the interaction pending in the given slot and whether there
// is one.
func (c *Candidate) Pending(slot int) (Pending, bool) {
	p := c.pending[slot]
	return p, p.valid
}

// SetPending schedules an interaction in the given slot.
func (c *Candidate) SetPending(slot, channel int, distance float64) {
	c.pending[slot] = Pending{Channel: channel, Distance: distance, valid: true}
}

// TakePending returns the interaction pending in the given slot and clears
// the slot.
func (c *Candidate) TakePending(slot int) (Pending, bool) {
	p, ok := c.Pending(slot)
	c.pending[slot] = Pending{}
	return p, ok
}

// ClearPending clears every slot.
func (c *Candidate) ClearPending() {
	for i := range c.pending {
		c.pending[i] = Pending{}
	}
}

// Advance reduces every pending distance by step.
func (c *Candidate) Advance(step float64) {
	for i := range c.pending {
		if c.pending[i].valid {
			c.pending[i].Distance -= step
		}
	}
}

// LimitNextStep lowers NextStep to step if step is smaller.
func (c *Candidate) LimitNextStep(step float64) {
	if step < c.NextStep {
		c.NextStep = step
	}
}

// AddSecondary creates a new candidate with the given identity and energy at
// the current position and direction of c, inheriting its redshift. It is
// owned by c until TakeSecondaries is called.
func (c *Candidate) AddSecondary(id ID, energy float64) *Candidate {
	s := c.Current
	s.ID = id
	s.Energy = energy

	sec := NewCandidate(s, c.Redshift, len(c.pending))
	sec.TrajectoryLength = c.TrajectoryLength
	c.secondaries = append(c.secondaries, sec)
	return sec
}

// Secondaries returns the secondaries which c still owns.
func (c *Candidate) Secondaries() []*Candidate { return c.secondaries }

// TakeSecondaries transfers ownership of every secondary to the caller.
func (c *Candidate) TakeSecondaries() []*Candidate {
	secs := c.secondaries
	c.secondaries = nil
	return secs
}
