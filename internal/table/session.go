package table

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
	"github.com/Akashdeep-Patra/zgrid/internal/history"
)

// Session owns the table being edited. It applies the grid engine's
// updaters, records undo snapshots, tracks unsaved changes and talks to the
// Service for load and save.
type Session struct {
	svc     Service
	cur     *Table
	hist    *history.Stack[*Table]
	ids     *grid.Sequence
	dirty   bool
	batch   int
	batched bool
	version int
	savedAt time.Time

	frameVersion int
	frame        grid.Frame
}

// NewSession starts a session on t. A nil t starts from an empty table.
func NewSession(svc Service, t *Table, historyLimit int) *Session {
	if t == nil {
		t = New("untitled")
	}
	s := &Session{
		svc:          svc,
		cur:          t,
		hist:         history.New[*Table](historyLimit),
		ids:          grid.NewSequence(""),
		frameVersion: -1,
	}
	if svc != nil {
		s.savedAt, _ = svc.ModTime()
	}
	return s
}

// Open loads the document behind svc, falling back to an empty table named
// after the file when it does not exist yet.
func Open(svc Service, historyLimit int) (*Session, error) {
	t, err := svc.Load()
	switch {
	case errors.Is(err, ErrNotFound):
		log.Printf("table: %s does not exist, starting empty", svc.Path())
		t = New(nameFromPath(svc.Path()))
	case err != nil:
		return nil, err
	}
	return NewSession(svc, t, historyLimit), nil
}

// Table returns the current snapshot. Callers must not modify it.
func (s *Session) Table() *Table { return s.cur }

// Path returns the document path, or "" for an unsaved session.
func (s *Session) Path() string {
	if s.svc == nil {
		return ""
	}
	return s.svc.Path()
}

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Version increases on every change, including undo, redo and reload.
func (s *Session) Version() int { return s.version }

// IDs returns the session id generator.
func (s *Session) IDs() grid.IDGen { return s.ids }

// Frame returns the filtered rows and visible columns the grid indexes into.
// It is recomputed only after a change.
func (s *Session) Frame() grid.Frame {
	if s.frameVersion != s.version {
		s.frame = grid.Frame{
			Rows:    grid.FilterRows(s.cur.Rows, s.cur.Filter, s.cur.Meta),
			Columns: s.cur.VisibleColumns(),
		}
		s.frameVersion = s.version
	}
	return s.frame
}

// Structure returns the column structure the controller validates against.
func (s *Session) Structure() grid.Structure {
	return grid.Structure{Order: s.cur.Order, Visibility: s.cur.Visibility, Meta: s.cur.Meta}
}

// record pushes the current table onto the undo stack. Inside a batch only
// the first change records.
func (s *Session) record() {
	if s.batch > 0 {
		if s.batched {
			return
		}
		s.batched = true
	}
	s.hist.Record(s.cur)
}

func (s *Session) apply(fn func(t *Table)) {
	next := s.cur.Clone()
	fn(next)
	s.replace(next)
	s.dirty = true
}

// Update applies fn to a clone of the current table as one undoable change.
func (s *Session) Update(fn func(t *Table)) {
	history.Wrap(s.record, s.apply)(fn)
}

// Batch groups every change made inside fn into a single undo step.
func (s *Session) Batch(fn func()) {
	if s.batch == 0 {
		s.batched = false
	}
	s.batch++
	defer func() { s.batch-- }()
	fn()
}

// Mutations returns the callbacks handed to the grid controller. Each
// records an undo snapshot before it applies its updater.
func (s *Session) Mutations() grid.Mutations {
	mutate := history.Wrap(s.record, s.apply)
	return grid.Mutations{
		SetData: func(u func([]grid.Row) []grid.Row) {
			mutate(func(t *Table) { t.Rows = u(t.Rows) })
		},
		SetColumnMeta: func(u func(grid.ColumnMeta) grid.ColumnMeta) {
			mutate(func(t *Table) { t.Meta = u(t.Meta) })
		},
		SetColumnOrder: func(u func([]string) []string) {
			mutate(func(t *Table) { t.Order = u(t.Order) })
		},
		SetColumnVisibility: func(u func(map[string]bool) map[string]bool) {
			mutate(func(t *Table) {
				t.Visibility = u(t.Visibility)
				t.Freeze = grid.ClampFreeze(t.Freeze, len(t.VisibleColumns()))
			})
		},
	}
}

func (s *Session) replace(t *Table) {
	s.cur = t
	s.version++
}

// Undo restores the previous snapshot.
func (s *Session) Undo() bool {
	prev, ok := s.hist.Undo(s.cur)
	if !ok {
		return false
	}
	s.replace(prev)
	s.dirty = true
	return true
}

// Redo reapplies the last undone snapshot.
func (s *Session) Redo() bool {
	next, ok := s.hist.Redo(s.cur)
	if !ok {
		return false
	}
	s.replace(next)
	s.dirty = true
	return true
}

// CanUndo reports whether Undo has anything to restore.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo has anything to reapply.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Save writes the current table and clears the dirty flag.
func (s *Session) Save() error {
	if s.svc == nil {
		return fmt.Errorf("save: no file")
	}
	if err := s.svc.Save(s.cur); err != nil {
		return err
	}
	s.dirty = false
	s.savedAt, _ = s.svc.ModTime()
	log.Printf("table: saved %s (%d rows)", s.svc.Path(), len(s.cur.Rows))
	return nil
}

// ChangedOnDisk reports whether the file was modified by someone else
// since it was last loaded or saved by this session. It always checks the
// file itself.
func (s *Session) ChangedOnDisk() bool {
	s.refresh()
	return s.OutOfDate()
}

// OutOfDate is ChangedOnDisk as of the service's last look at the file. It
// is cheap enough to call on every render.
func (s *Session) OutOfDate() bool {
	if s.svc == nil {
		return false
	}
	mod, err := s.svc.ModTime()
	if err != nil {
		return false
	}
	return !mod.Equal(s.savedAt)
}

func (s *Session) refresh() {
	if r, ok := s.svc.(Refresher); ok {
		r.Refresh()
	}
}

// Reload replaces the table with the file's contents and drops history.
func (s *Session) Reload() error {
	if s.svc == nil {
		return nil
	}
	s.refresh()
	t, err := s.svc.Load()
	if err != nil {
		return err
	}
	s.replace(t)
	s.hist.Reset()
	s.dirty = false
	s.savedAt, _ = s.svc.ModTime()
	log.Printf("table: reloaded %s", s.svc.Path())
	return nil
}
