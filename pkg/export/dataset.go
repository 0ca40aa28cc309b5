package export

import "fmt"

// Dataset defines tabular export content.
// Preamble rows are written above the table and Summary rows below it,
// under a "Summary" heading.
type Dataset struct {
	Title    string
	Preamble [][]string
	Headers  []string
	Rows     []map[string]string
	Summary  [][]string
}

// SummaryHeading labels the block of summary rows.
const SummaryHeading = "Summary"

func (d Dataset) validate(kind string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	return nil
}

// record projects a row onto the header order.
func (d Dataset) record(row map[string]string) []string {
	out := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		out[i] = row[header]
	}
	return out
}

// Lines flattens the dataset into the row sequence shared by the CSV and
// XLSX renderings: preamble, blank, header, rows, blank, summary block.
func (d Dataset) Lines() [][]string {
	lines := make([][]string, 0, len(d.Preamble)+len(d.Rows)+len(d.Summary)+4)
	lines = append(lines, d.Preamble...)
	if len(d.Preamble) > 0 {
		lines = append(lines, []string{""})
	}
	lines = append(lines, d.Headers)
	for _, row := range d.Rows {
		lines = append(lines, d.record(row))
	}
	if len(d.Summary) > 0 {
		lines = append(lines, []string{""}, []string{SummaryHeading})
		lines = append(lines, d.Summary...)
	}
	return lines
}
