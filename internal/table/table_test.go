package table

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
)

const sampleDoc = `{
  "name": "inventory",
  "columns": [
    {"id": "title", "name": "Title", "type": "text", "width": 20},
    {"id": "qty", "name": "Qty", "type": "number"},
    {"id": "due", "name": "Due", "type": "date", "hidden": true},
    {"id": "stage", "name": "Stage", "type": "select", "options": [{"id": "o", "label": "Open"}]}
  ],
  "freeze": 9,
  "rules": [
    {"id": "r1", "scope": "row", "color": "#ff0000", "condition": {"fieldId": "qty", "operator": "gt", "value": "5"}}
  ],
  "rows": [
    {"id": "a", "title": "apple", "qty": "12", "due": "2024-01-02", "stage": "Open"},
    {"id": "b", "title": "pear", "qty": 3}
  ]
}`

func TestUnmarshalNormalizes(t *testing.T) {
	var tbl Table
	if err := json.Unmarshal([]byte(sampleDoc), &tbl); err != nil {
		t.Fatal(err)
	}
	if got := len(tbl.Order); got != 4 {
		t.Fatalf("got %d columns, want 4", got)
	}
	if grid.IsVisible(tbl.Visibility, "due") {
		t.Fatal("hidden column is visible")
	}
	if tbl.Widths["title"] != 20 {
		t.Fatalf("got width %d, want 20", tbl.Widths["title"])
	}
	if tbl.Freeze != 3 {
		t.Fatalf("got freeze %d, want 3 (clamped to visible)", tbl.Freeze)
	}
	if got := tbl.Rows[0].Get("qty"); !got.Equal(grid.Number(12)) {
		t.Fatalf("qty not coerced: %v", got)
	}
	if got := tbl.Rows[0].Get("due"); got.Kind() != grid.KindDate {
		t.Fatalf("due not coerced: %v", got)
	}
	if got := tbl.Rows[0].Get("stage"); !got.Equal(grid.RefOf(grid.Ref{ID: "o", Label: "Open"})) {
		t.Fatalf("stage not coerced: %v", got)
	}
	if !tbl.Rules[0].Enabled {
		t.Fatal("rule should default to enabled")
	}
}

func TestUnmarshalRejectsBadRule(t *testing.T) {
	doc := `{"columns":[{"id":"a"}],"rules":[{"id":"x","scope":"row","color":"red"}],"rows":[]}`
	var tbl Table
	if err := json.Unmarshal([]byte(doc), &tbl); err == nil {
		t.Fatal("expected invalid color error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	var tbl Table
	if err := json.Unmarshal([]byte(sampleDoc), &tbl); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(&tbl)
	if err != nil {
		t.Fatal(err)
	}
	var back Table
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Rows) != 2 || back.Name != "inventory" {
		t.Fatalf("got %+v", back)
	}
	for i, r := range tbl.Rows {
		for col, v := range r.Cells {
			if got := back.Rows[i].Get(col); !got.Equal(v) {
				t.Fatalf("row %s col %s: got %v, want %v", r.ID, col, got, v)
			}
		}
	}
	if grid.IsVisible(back.Visibility, "due") {
		t.Fatal("hidden flag lost")
	}
}

func TestFileServiceSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	svc := NewFileService(path)

	if _, err := svc.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	tbl := New("")
	tbl.Rows = []grid.Row{{ID: "r1", Cells: map[string]grid.Value{"name": grid.Text("Ada")}}}
	if err := svc.Save(tbl); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("got %d files, want 1 (temp file left behind?)", len(entries))
	}

	got, err := svc.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "people" {
		t.Fatalf("got name %q, want people", got.Name)
	}
	if v := got.Rows[0].Get("name"); !v.Equal(grid.Text("Ada")) {
		t.Fatalf("got %v", v)
	}
}

type countingService struct {
	Service
	loads int
	stats int
}

func (c *countingService) Load() (*Table, error) {
	c.loads++
	return c.Service.Load()
}

func (c *countingService) ModTime() (time.Time, error) {
	c.stats++
	return c.Service.ModTime()
}

func TestCachedService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	inner := &countingService{Service: NewFileService(path)}
	if err := inner.Save(New("t")); err != nil {
		t.Fatal(err)
	}
	c := NewCachedService(inner, time.Hour)

	first, err := c.ModTime()
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if got, _ := c.ModTime(); !got.Equal(first) {
			t.Fatalf("got %v, want cached %v", got, first)
		}
	}
	if inner.stats != 1 {
		t.Fatalf("got %d stats, want 1", inner.stats)
	}

	later := first.Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.ModTime(); !got.Equal(first) {
		t.Fatal("cache expired early")
	}
	c.Refresh()
	if got, _ := c.ModTime(); !got.Equal(later) {
		t.Fatalf("got %v after refresh, want %v", got, later)
	}

	if err := c.Save(New("t")); err != nil {
		t.Fatal(err)
	}
	stats := inner.stats
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := c.ModTime(); !got.Equal(info.ModTime()) || inner.stats != stats {
		t.Fatalf("save did not prime: got %v, stats %d -> %d", got, stats, inner.stats)
	}

	for range 2 {
		if _, err := c.Load(); err != nil {
			t.Fatal(err)
		}
	}
	if inner.loads != 2 {
		t.Fatalf("got %d loads, want 2", inner.loads)
	}
}
