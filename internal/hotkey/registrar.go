// Package hotkey implements the global hotkey engine: claim
// registration against the OS, the per-binding state machine, and the
// manager that owns the ordered binding collection and dispatches
// triggers to bound actions.
package hotkey

import (
	"github.com/Dregu/volume-control/internal/keys"
)

// ID identifies one binding's claim slot. IDs are allocated from a
// monotonic counter and never reused while the owning binding exists;
// they are not persisted.
type ID int

// Registrar is the process-wide claim primitive for key combinations.
// Register and Unregister are synchronous and must be called from the
// goroutine that owns the dispatch loop; a false result from Register
// is the normal outcome for a contended combination, not a fault.
// Allocate alone is safe from any goroutine.
type Registrar interface {
	Allocate() ID
	Register(id ID, combo keys.Combination) bool
	Unregister(id ID) bool

	// Triggers delivers the id of each claimed combination as the OS
	// reports its press. The channel closes when the registrar closes.
	Triggers() <-chan ID

	Close() error
}
