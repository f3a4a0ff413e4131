/*package propagation drives candidates through interaction modules.

Every interaction module keeps at most one pending interaction per candidate:
a channel and the distance left until it happens. Free paths are only drawn
when a module has nothing pending, so a rare channel with a long free path is
not redrawn (and thereby suppressed) every step. Steps are shortened so that
no candidate travels past its nearest pending interaction.
*/
package propagation

import (
	"log"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/particle"
)

// DefaultMaxSteps is the default per-candidate step limit.
const DefaultMaxSteps = 1000000

// Interaction is a stochastic process which changes candidates.
//
// Propose draws the next interaction of c and stores it in c's pending slot,
// returning false if there is nothing to draw. Commit performs the
// interaction stored in the slot and clears it. Implementations must be safe
// for concurrent use with distinct candidates and random number generators.
type Interaction interface {
	Name() string
	Propose(c *particle.Candidate, slot int, rng *rand.Rand) bool
	Commit(c *particle.Candidate, slot int, rng *rand.Rand)
}

// Observer is called after every step. Calls are serialized.
type Observer func(c *particle.Candidate)

// Stats summarizes a call to Run.
type Stats struct {
	Candidates   int            `yaml:"candidates"`
	Secondaries  int            `yaml:"secondaries"`
	Detected     int            `yaml:"detected"`
	Truncated    int            `yaml:"truncated"`
	Steps        int            `yaml:"steps"`
	Rounds       int            `yaml:"rounds"`
	Interactions map[string]int `yaml:"interactions"`
}

// Scheduler propagates candidates through a fixed list of interaction
// modules. Module i owns pending slot i of every candidate, so candidates
// must be made with NewCandidate or have Slots() pending slots.
type Scheduler struct {
	// Workers is the number of goroutines used by Run.
	Workers int
	// Seed seeds the generator of worker i with Seed + i.
	Seed int64
	// MaxSteps deactivates candidates after this many steps. Zero means no
	// limit.
	MaxSteps int
	Observer Observer

	stepper    Stepper
	conditions []Condition
	modules    []Interaction

	log bool
	mu  sync.Mutex
}

// Worker holds the state a single goroutine needs to call Step: its own
// random number generator and the buffers that are merged at the end of a
// round.
type Worker struct {
	ID           int
	Rng          *rand.Rand
	Secondaries  []*particle.Candidate
	Interactions []int
	Steps        int
	Truncated    int
}

// NewScheduler creates a scheduler. Slots are assigned to modules in the
// order they are given.
func NewScheduler(
	stepper Stepper, conditions []Condition, modules ...Interaction,
) *Scheduler {
	return &Scheduler{
		Workers:    runtime.NumCPU(),
		MaxSteps:   DefaultMaxSteps,
		stepper:    stepper,
		conditions: conditions,
		modules:    modules,
	}
}

// Log turns progress logging on or off.
func (s *Scheduler) Log(flag bool) { s.log = flag }

// Slots returns the number of pending slots a candidate needs.
func (s *Scheduler) Slots() int { return len(s.modules) }

// NewCandidate returns a candidate with one pending slot per module.
func (s *Scheduler) NewCandidate(state particle.State, z float64) *particle.Candidate {
	return particle.NewCandidate(state, z, len(s.modules))
}

// NewWorker returns a worker whose generator is seeded with Seed + id.
func (s *Scheduler) NewWorker(id int) *Worker {
	return &Worker{
		ID:           id,
		Rng:          rand.New(rand.NewSource(s.Seed + int64(id))),
		Interactions: make([]int, len(s.modules)),
	}
}

// Step moves c forward by one step:
//
//  1. Every module without a pending interaction proposes one.
//  2. The step is limited to the nearest pending interaction.
//  3. The candidate is moved and every pending distance is reduced.
//  4. The interaction which has been reached is committed and every other
//     pending interaction is cleared.
//  5. Secondaries are moved into w and the conditions are applied.
//
// Inactive candidates are left alone.
func (s *Scheduler) Step(c *particle.Candidate, w *Worker) {
	if !c.IsActive() {
		return
	}
	if c.Slots() != len(s.modules) {
		fault.Internal(
			"candidate has %d pending slots, but there are %d modules",
			c.Slots(), len(s.modules),
		)
	}

	c.NextStep = math.MaxFloat64
	for i, m := range s.modules {
		p, ok := c.Pending(i)
		if !ok {
			if !m.Propose(c, i, w.Rng) {
				continue
			}
			p, _ = c.Pending(i)
		}
		c.LimitNextStep(p.Distance)
	}
	for _, cond := range s.conditions {
		if lim, ok := cond.(StepLimiter); ok {
			lim.LimitStep(c)
		}
	}

	step := s.stepper.Step(c, c.NextStep)
	c.Advance(step)
	c.Steps++
	w.Steps++

	slot, nearest := -1, math.Inf(+1)
	for i := range s.modules {
		if p, ok := c.Pending(i); ok && p.Distance <= 0 && p.Distance < nearest {
			slot, nearest = i, p.Distance
		}
	}
	if slot >= 0 {
		s.modules[slot].Commit(c, slot, w.Rng)
		c.ClearPending()
		w.Interactions[slot]++
	}
	w.Secondaries = append(w.Secondaries, c.TakeSecondaries()...)

	for _, cond := range s.conditions {
		if !c.IsActive() {
			break
		}
		cond.Process(c)
	}
	if c.IsActive() && s.MaxSteps > 0 && c.Steps >= s.MaxSteps {
		c.Deactivate()
		w.Truncated++
	}

	if s.Observer != nil {
		s.mu.Lock()
		s.Observer(c)
		s.mu.Unlock()
	}
}

// Run propagates candidates, and every secondary they produce, until all of
// them are inactive. Propagation proceeds in rounds: in each round every
// active candidate takes one step, with candidates split between Workers
// goroutines. Secondaries join the active set at the end of the round.
//
// Run returns every candidate in the order it became inactive, along with
// summary statistics.
func (s *Scheduler) Run(candidates []*particle.Candidate) ([]*particle.Candidate, Stats) {
	nWorkers := s.Workers
	if nWorkers < 1 {
		nWorkers = 1
	}
	workers := make([]*Worker, nWorkers)
	for i := range workers {
		workers[i] = s.NewWorker(i)
	}

	stats := Stats{Candidates: len(candidates)}
	var active, finished []*particle.Candidate
	for _, c := range candidates {
		if c.IsActive() {
			active = append(active, c)
		} else {
			finished = append(finished, c)
		}
	}

	for len(active) > 0 {
		s.round(active, workers)

		next := make([]*particle.Candidate, 0, len(active))
		for _, c := range active {
			if c.IsActive() {
				next = append(next, c)
			} else {
				finished = append(finished, c)
			}
		}
		for _, w := range workers {
			for _, sec := range w.Secondaries {
				if sec.IsActive() {
					next = append(next, sec)
				} else {
					finished = append(finished, sec)
				}
			}
			stats.Secondaries += len(w.Secondaries)
			w.Secondaries = w.Secondaries[:0]
		}

		stats.Rounds++
		if s.log {
			log.Printf(
				"Round %d: %d active candidates, %d finished",
				stats.Rounds, len(next), len(finished),
			)
		}
		active = next
	}

	stats.Candidates += stats.Secondaries
	stats.Interactions = map[string]int{}
	for _, w := range workers {
		stats.Steps += w.Steps
		stats.Truncated += w.Truncated
		for i, m := range s.modules {
			stats.Interactions[m.Name()] += w.Interactions[i]
		}
	}
	for _, c := range finished {
		if c.Detected {
			stats.Detected++
		}
	}

	return finished, stats
}

// round steps every candidate in cs once. Worker i gets the i-th contiguous
// share of cs.
func (s *Scheduler) round(cs []*particle.Candidate, workers []*Worker) {
	n := len(workers)
	if len(cs) < n {
		n = len(cs)
	}
	per, rem := len(cs)/n, len(cs)%n

	var wg sync.WaitGroup
	wg.Add(n)
	start := 0
	for i := 0; i < n; i++ {
		count := per
		if i < rem {
			count++
		}
		go func(w *Worker, shard []*particle.Candidate) {
			defer wg.Done()
			for _, c := range shard {
				s.Step(c, w)
			}
		}(workers[i], cs[start:start+count])
		start += count
	}
	wg.Wait()
}
