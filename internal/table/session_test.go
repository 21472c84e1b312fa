package table

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	tbl := New("t")
	tbl.Meta["qty"] = grid.Column{ID: "qty", Name: "Qty", Type: grid.TypeNumber}
	tbl.Order = append(tbl.Order, "qty")
	tbl.Rows = []grid.Row{
		{ID: "r1", Cells: map[string]grid.Value{"name": grid.Text("a"), "qty": grid.Number(1)}},
		{ID: "r2", Cells: map[string]grid.Value{"name": grid.Text("b"), "qty": grid.Number(9)}},
	}
	svc := NewFileService(filepath.Join(t.TempDir(), "t.json"))
	return NewSession(svc, tbl, 10)
}

func TestSessionMutationsAreUndoable(t *testing.T) {
	s := newTestSession(t)
	m := s.Mutations()

	m.SetData(func(prev []grid.Row) []grid.Row {
		next := append([]grid.Row(nil), prev...)
		next[0] = next[0].With("name", grid.Text("changed"))
		return next
	})
	if !s.Dirty() {
		t.Fatal("expected dirty after mutation")
	}
	if got := s.Table().Rows[0].Get("name"); !got.Equal(grid.Text("changed")) {
		t.Fatalf("got %v", got)
	}

	if !s.Undo() {
		t.Fatal("expected Undo=true")
	}
	if got := s.Table().Rows[0].Get("name"); !got.Equal(grid.Text("a")) {
		t.Fatalf("undo: got %v, want a", got)
	}
	if !s.Redo() {
		t.Fatal("expected Redo=true")
	}
	if got := s.Table().Rows[0].Get("name"); !got.Equal(grid.Text("changed")) {
		t.Fatalf("redo: got %v, want changed", got)
	}
}

func TestSessionBatchIsOneUndoStep(t *testing.T) {
	s := newTestSession(t)
	m := s.Mutations()
	s.Batch(func() {
		m.SetColumnMeta(func(prev grid.ColumnMeta) grid.ColumnMeta {
			next := grid.ColumnMeta{}
			for k, v := range prev {
				next[k] = v
			}
			next["x"] = grid.Column{ID: "x", Name: "X", Type: grid.TypeText}
			return next
		})
		m.SetColumnOrder(func(prev []string) []string { return append(append([]string(nil), prev...), "x") })
	})
	if len(s.Table().Order) != 3 {
		t.Fatalf("got %d columns, want 3", len(s.Table().Order))
	}
	s.Undo()
	if len(s.Table().Order) != 2 {
		t.Fatalf("got %d columns after one undo, want 2", len(s.Table().Order))
	}
	if s.CanUndo() {
		t.Fatal("batch recorded more than one snapshot")
	}
}

func TestSessionFrameAppliesFilter(t *testing.T) {
	s := newTestSession(t)
	if n := len(s.Frame().Rows); n != 2 {
		t.Fatalf("got %d rows, want 2", n)
	}
	s.Update(func(tbl *Table) {
		f := grid.Leaf(grid.Condition{FieldID: "qty", Operator: grid.OpGt, Value: "5"})
		tbl.Filter = &f
	})
	f := s.Frame()
	if len(f.Rows) != 1 || f.Rows[0].ID != "r2" {
		t.Fatalf("got %v", f.Rows)
	}
	if len(f.Columns) != 2 {
		t.Fatalf("got %d columns, want 2", len(f.Columns))
	}
}

func TestSessionWithController(t *testing.T) {
	s := newTestSession(t)
	c := grid.NewController(grid.Options{
		Keys:      grid.DefaultKeyMap(),
		Mutations: s.Mutations(),
		IDs:       s.IDs(),
		Frame:     s.Frame,
		Structure: s.Structure,
	})
	c.Sync()
	s.Batch(func() { c.Paste("x\t5\ty") })
	s.Batch(func() { c.ResolvePaste(false) })

	if got := len(s.Table().Order); got != 3 {
		t.Fatalf("got %d columns, want 3", got)
	}
	if got := s.Table().Rows[0].Get("qty"); !got.Equal(grid.Number(5)) {
		t.Fatalf("got %v, want 5", got)
	}
	s.Undo()
	if got := len(s.Table().Order); got != 2 {
		t.Fatalf("undo left %d columns, want 2", got)
	}
}

func TestSessionSaveReload(t *testing.T) {
	s := newTestSession(t)
	s.Update(func(tbl *Table) { tbl.Name = "renamed" })
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Fatal("dirty after save")
	}
	if s.ChangedOnDisk() {
		t.Fatal("own save reported as external change")
	}
	s.Update(func(tbl *Table) { tbl.Name = "unsaved" })
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Table().Name != "renamed" || s.Dirty() || s.CanUndo() {
		t.Fatalf("reload: name=%q dirty=%v", s.Table().Name, s.Dirty())
	}
}

func TestOpenMissingFile(t *testing.T) {
	svc := NewFileService(filepath.Join(t.TempDir(), "fresh.json"))
	s, err := Open(svc, 5)
	if err != nil {
		t.Fatal(err)
	}
	if s.Table().Name != "fresh" || len(s.Table().Order) != 1 {
		t.Fatalf("got %+v", s.Table())
	}
}

func TestSessionReusesCachedModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	inner := &countingService{Service: NewFileService(path)}
	if err := inner.Save(New("t")); err != nil {
		t.Fatal(err)
	}
	s, err := Open(NewCachedService(inner, time.Hour), 5)
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		if s.OutOfDate() {
			t.Fatal("fresh session reported out of date")
		}
	}
	if inner.stats != 1 {
		t.Fatalf("got %d stats, want 1", inner.stats)
	}

	s.Update(func(tbl *Table) { tbl.Name = "mine" })
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.OutOfDate() || s.ChangedOnDisk() {
		t.Fatal("own save reported as an outside change")
	}
	stats := inner.stats

	other := NewFileService(path)
	theirs := New("theirs")
	if err := other.Save(theirs); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if s.OutOfDate() {
		t.Fatal("cached check saw the change before its TTL")
	}
	if inner.stats != stats {
		t.Fatalf("got %d stats, want %d", inner.stats, stats)
	}
	if !s.ChangedOnDisk() {
		t.Fatal("outside change not detected")
	}
	if !s.OutOfDate() {
		t.Fatal("refreshed check still up to date")
	}

	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Table().Name != "theirs" || s.ChangedOnDisk() {
		t.Fatalf("reload: name=%q", s.Table().Name)
	}
	if inner.loads != 2 {
		t.Fatalf("got %d loads, want 2", inner.loads)
	}
}
