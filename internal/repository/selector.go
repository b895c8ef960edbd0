package repository

import (
	"fmt"
	"sync/atomic"

	"gorm.io/gorm"
)

// Mode selects which Store implementation serves the next call.
type Mode int32

const (
	// ModeOrm composes GORM query expressions (the default).
	ModeOrm Mode = iota
	// ModeProcedure invokes server-side routines and views.
	ModeProcedure
)

func (m Mode) String() string {
	if m == ModeProcedure {
		return "procedure"
	}
	return "orm"
}

// ParseMode maps a mode name from config to a Mode, defaulting to ModeOrm.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "orm":
		return ModeOrm, nil
	case "procedure":
		return ModeProcedure, nil
	default:
		return ModeOrm, fmt.Errorf("unknown repository mode %q", s)
	}
}

// Selector holds both strategy instances and a process-wide mode flag. The
// flag is a single atomic value with relaxed consistency: a read concurrent
// with a switch may observe either mode, which is fine: switching is an
// operational toggle, not a correctness-critical value. Callers grab the
// active Store once per request, so in-flight calls finish under the mode
// they started with.
type Selector struct {
	orm  Store
	proc Store
	mode atomic.Int32
}

func NewSelector(orm, proc Store, initial Mode) *Selector {
	s := &Selector{orm: orm, proc: proc}
	s.mode.Store(int32(initial))
	return s
}

// Current returns the strategy instance for the active mode.
func (s *Selector) Current() Store {
	if Mode(s.mode.Load()) == ModeProcedure {
		return s.proc
	}
	return s.orm
}

func (s *Selector) Mode() Mode {
	return Mode(s.mode.Load())
}

// SetMode switches the active strategy for every subsequent call.
func (s *Selector) SetMode(m Mode) {
	s.mode.Store(int32(m))
}

var defaultSelector *Selector

// Init builds both strategies over the shared connection and installs the
// process-wide selector. The procedure strategy runs on the raw database/sql
// handle underneath the GORM connection, so both talk to the same pool.
func Init(db *gorm.DB, initial Mode) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	InitWith(NewOrmStore(db), NewProcStore(sqlDB), initial)
	return nil
}

// InitWith installs a selector over explicit Store implementations. Tests use
// this to substitute fakes.
func InitWith(orm, proc Store, initial Mode) {
	defaultSelector = NewSelector(orm, proc, initial)
}

// Active returns the Store for the current process-wide mode.
func Active() Store {
	return defaultSelector.Current()
}

// CurrentMode reports the process-wide mode.
func CurrentMode() Mode {
	return defaultSelector.Mode()
}

// SwitchMode changes the process-wide mode at runtime.
func SwitchMode(m Mode) {
	defaultSelector.SetMode(m)
}
