package grid

import (
	"fmt"
	"strings"
)

// Clipboard is the system clipboard. Implementations may fail; the engine
// treats every failure as best-effort and ignores it.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// ParseClipboard splits pasted text into a matrix of strings. Lines split on
// tabs when any line contains a tab, otherwise on commas. One trailing empty
// line, as spreadsheet applications emit, is dropped.
func ParseClipboard(text string) [][]string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	sep := ","
	for _, l := range lines {
		if strings.Contains(l, "\t") {
			sep = "\t"
			break
		}
	}
	matrix := make([][]string, len(lines))
	for i, l := range lines {
		matrix[i] = strings.Split(strings.TrimSuffix(l, "\r"), sep)
	}
	return matrix
}

// SerializeRange renders rows [top..bottom] x columns [left..right] of the
// frame as TSV. Out-of-range bounds are clipped to the frame.
func SerializeRange(f Frame, top, left, bottom, right int) (string, int) {
	top, left = max(top, 0), max(left, 0)
	bottom, right = min(bottom, len(f.Rows)-1), min(right, len(f.Columns)-1)
	if top > bottom || left > right {
		return "", 0
	}
	var b strings.Builder
	for r := top; r <= bottom; r++ {
		if r > top {
			b.WriteByte('\n')
		}
		row := f.Rows[r]
		for c := left; c <= right; c++ {
			if c > left {
				b.WriteByte('\t')
			}
			col := f.Columns[c]
			b.WriteString(FormatCell(row.Get(col.ID), col.Type))
		}
	}
	return b.String(), (bottom - top + 1) * (right - left + 1)
}

// CopyText serializes the selection range, or the whole visible table when
// there is no range.
func CopyText(f Frame, rng Range) (string, int) {
	if top, left, bottom, right, ok := rng.Bounds(); ok {
		return SerializeRange(f, top, left, bottom, right)
	}
	return SerializeRange(f, 0, 0, len(f.Rows)-1, len(f.Columns)-1)
}

// IDGen synthesizes session-unique ids for rows and columns created by paste.
type IDGen interface {
	RowID() string
	ColumnID() string
}

// PendingPaste is a parsed paste awaiting the header decision.
type PendingPaste struct {
	Matrix    [][]string
	AnchorRow int
	AnchorCol int
}

// HeaderPrompt returns the question to show the user.
func (p PendingPaste) HeaderPrompt() string {
	return fmt.Sprintf("Use the first pasted row (%s) as column names?", previewRow(p.Matrix))
}

func previewRow(m [][]string) string {
	if len(m) == 0 {
		return ""
	}
	s := strings.Join(m[0], ", ")
	if r := []rune(s); len(r) > 40 {
		s = string(r[:39]) + "…"
	}
	return s
}

// newColumnNames are the default name prefixes for inferred column types.
var newColumnNames = map[ColumnType]string{
	TypeNumber: "数字",
	TypeDate:   "日期",
	TypeTime:   "时间",
	TypeText:   "文本",
}

// defaultColumnName numbers a new column after existing columns sharing its prefix.
func defaultColumnName(t ColumnType, taken map[string]bool) string {
	prefix := newColumnNames[t]
	if prefix == "" {
		prefix = newColumnNames[TypeText]
	}
	n := 1
	for taken[fmt.Sprintf("%s%d", prefix, n)] {
		n++
	}
	return fmt.Sprintf("%s%d", prefix, n)
}

// pastePlan is the complete effect of a resolved paste.
type pastePlan struct {
	renames    map[string]string
	newColumns []Column
	write      func(prev []Row) []Row
	cells      int
}

// planPaste computes renames, new columns and the row updater for a paste of
// matrix at (anchorRow, anchorCol) of frame f.
func planPaste(f Frame, meta ColumnMeta, matrix [][]string, anchorRow, anchorCol int, useHeader bool, ids IDGen) pastePlan {
	plan := pastePlan{renames: map[string]string{}}
	if len(matrix) == 0 {
		return plan
	}
	anchorCol = clamp(anchorCol, 0, max(len(f.Columns)-1, 0))
	anchorRow = max(anchorRow, 0)

	width := 0
	for _, line := range matrix {
		width = max(width, len(line))
	}
	avail := max(len(f.Columns)-anchorCol, 0)

	data := matrix
	var header []string
	if useHeader {
		header = matrix[0]
		data = matrix[1:]
		for j := 0; j < min(len(header), avail); j++ {
			// A blank header cell keeps the column's name.
			if name := strings.TrimSpace(header[j]); name != "" {
				plan.renames[f.Columns[anchorCol+j].ID] = name
			}
		}
	}

	taken := make(map[string]bool, len(meta))
	for _, c := range meta {
		taken[c.Name] = true
	}
	for j := avail; j < width; j++ {
		samples := make([]string, 0, len(data))
		for _, line := range data {
			if j < len(line) {
				samples = append(samples, line[j])
			}
		}
		t := InferType(samples)
		name := ""
		if j < len(header) {
			name = strings.TrimSpace(header[j])
		}
		if name == "" {
			name = defaultColumnName(t, taken)
		}
		taken[name] = true
		plan.newColumns = append(plan.newColumns, Column{ID: ids.ColumnID(), Name: name, Type: t})
	}

	targets := make([]Column, 0, width)
	for j := 0; j < width; j++ {
		if j < avail {
			targets = append(targets, f.Columns[anchorCol+j])
		} else {
			targets = append(targets, plan.newColumns[j-avail])
		}
	}

	// Visible rows map to ids; anything past the visible end becomes a new row.
	rowIDs := make([]string, len(data))
	fresh := map[string]bool{}
	for i := range data {
		if vi := anchorRow + i; vi < len(f.Rows) {
			rowIDs[i] = f.Rows[vi].ID
		} else {
			rowIDs[i] = ids.RowID()
			fresh[rowIDs[i]] = true
		}
	}

	existing := make([]Column, 0, len(meta))
	for _, c := range meta {
		existing = append(existing, c)
	}
	newCols := plan.newColumns

	plan.write = func(prev []Row) []Row {
		next := make([]Row, 0, len(prev)+len(fresh))
		pos := make(map[string]int, len(prev)+len(fresh))
		for _, r := range prev {
			r = r.Clone()
			if r.Cells == nil {
				r.Cells = map[string]Value{}
			}
			for _, c := range newCols {
				r.Cells[c.ID] = DefaultValue(c.Type)
			}
			pos[r.ID] = len(next)
			next = append(next, r)
		}
		for _, id := range rowIDs {
			if !fresh[id] {
				continue
			}
			r := Row{ID: id, Cells: make(map[string]Value, len(existing)+len(newCols))}
			for _, c := range existing {
				if c.ID != IDColumn {
					r.Cells[c.ID] = DefaultValue(c.Type)
				}
			}
			for _, c := range newCols {
				r.Cells[c.ID] = DefaultValue(c.Type)
			}
			pos[id] = len(next)
			next = append(next, r)
		}
		for i, line := range data {
			at, ok := pos[rowIDs[i]]
			if !ok {
				continue
			}
			for j, raw := range line {
				col := targets[j]
				if col.Type.ReadOnly() || col.ID == IDColumn {
					continue
				}
				if v, ok := ParseCell(raw, col); ok {
					next[at].Cells[col.ID] = v
				}
			}
		}
		return next
	}

	for _, line := range data {
		plan.cells += len(line)
	}
	return plan
}
