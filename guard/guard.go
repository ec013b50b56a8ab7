// Package guard decides whether a full crash report should be skipped.
//
// Host applications register predicates describing states where full
// diagnostics would mislead or re-trigger failure (for example, already
// recovering from a known-bad persisted state). The guard is a pure
// decision point: it performs no I/O beyond the predicate calls.
package guard

// Predicate is one pre-capture sanity check.
type Predicate struct {
	// Name identifies the predicate in logs and metrics.
	Name string
	// Reason is the human-readable explanation reported when tripped.
	Reason string
	// Check reports whether the unsafe state is present.
	Check func() bool
}

// Decision is the guard outcome: proceed normally, or skip full reporting
// with a short explanation.
type Decision struct {
	Skip   bool
	Reason string
}

// Guard consults an ordered set of predicates.
type Guard struct {
	preds []Predicate
}

// New creates a guard with the given predicates, consulted in order.
func New(preds ...Predicate) *Guard {
	return &Guard{preds: preds}
}

// Add appends a predicate. Not safe to call after handlers are armed.
func (g *Guard) Add(p Predicate) {
	g.preds = append(g.preds, p)
}

// Decide returns the first tripped predicate's skip decision, or a proceed
// decision when none trip. Runs on the crash path: a predicate that panics
// is treated as not tripped, never escalated.
func (g *Guard) Decide() Decision {
	for _, p := range g.preds {
		if p.Check == nil {
			continue
		}
		if tripped(p.Check) {
			reason := p.Reason
			if reason == "" {
				reason = p.Name
			}
			return Decision{Skip: true, Reason: reason}
		}
	}
	return Decision{}
}

func tripped(check func() bool) (result bool) {
	defer func() {
		if recover() != nil {
			result = false
		}
	}()
	return check()
}
