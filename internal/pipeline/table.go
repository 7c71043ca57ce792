package pipeline

import "strings"

// tableSeparatorMarker must appear on the second line of a pipe run
// for the run to be promoted to a table.
const tableSeparatorMarker = "---"

// TableTransformer defines the contract for the table block stage.
type TableTransformer interface {
	TransformTables(content string) string
}

// PipeTableTransformer turns pipe-delimited runs into styled tables.
type PipeTableTransformer struct {
	theme Theme
}

// NewPipeTableTransformer creates a PipeTableTransformer styled by theme.
func NewPipeTableTransformer(theme Theme) *PipeTableTransformer {
	return &PipeTableTransformer{theme: theme}
}

// TransformTables replaces each maximal run of lines containing "|" with a
// single-line table, provided the run's second line is a separator row.
// Other runs are returned untouched.
func (t *PipeTableTransformer) TransformTables(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !strings.Contains(lines[i], "|") {
			out = append(out, lines[i])
			i++
			continue
		}

		end := i
		for end < len(lines) && strings.Contains(lines[end], "|") {
			end++
		}

		run := lines[i:end]
		if isTableRun(run) {
			out = append(out, t.renderTable(run))
		} else {
			out = append(out, run...)
		}
		i = end
	}

	return strings.Join(out, "\n")
}

// isTableRun reports whether a pipe run has a separator as its second line.
func isTableRun(run []string) bool {
	return len(run) >= 2 && strings.Contains(run[1], tableSeparatorMarker)
}

// renderTable emits the header row, skips the separator and emits body rows.
// Rows keep however many cells they have.
func (t *PipeTableTransformer) renderTable(run []string) string {
	var b strings.Builder
	b.WriteString(`<section style="` + t.theme.TableWrapper + `">`)
	b.WriteString(`<table style="` + t.theme.Table + `"><tbody>`)
	t.writeRow(&b, run[0], t.theme.TableHeaderCell)
	for _, line := range run[2:] {
		t.writeRow(&b, line, t.theme.TableBodyCell)
	}
	b.WriteString(`</tbody></table></section>`)
	return b.String()
}

func (t *PipeTableTransformer) writeRow(b *strings.Builder, line, cellStyle string) {
	b.WriteString("<tr>")
	for _, cell := range splitRow(line) {
		b.WriteString(`<td style="` + cellStyle + `">` + cell + `</td>`)
	}
	b.WriteString("</tr>")
}

// splitRow splits a row on "|" and trims each cell. The empty cells produced
// by a leading or trailing pipe are dropped; interior empty cells are kept.
func splitRow(line string) []string {
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
