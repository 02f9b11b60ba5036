package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the report as three ';'-delimited tables headed "Lifts:",
// "Time (µs):" and "Outcome V0:". Each table has a header row naming the
// strategies and one row per game. Outcome cells are 1 when vertex 0 is won
// by odd and 0 otherwise.
func WriteCSV(w io.Writer, r *Report) error {
	tables := []struct {
		title string
		cell  func(Result) string
	}{
		{"Lifts:", func(res Result) string { return strconv.Itoa(res.Lifts) }},
		{"Time (µs):", func(res Result) string { return strconv.FormatInt(res.Duration.Microseconds(), 10) }},
		{"Outcome V0:", func(res Result) string {
			if res.OddWinsFirst() {
				return "1"
			}
			return "0"
		}},
	}

	header := make([]string, 0, len(r.Strategies)+1)
	header = append(header, "path")
	for _, st := range r.Strategies {
		header = append(header, string(st))
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, t := range tables {
		cw.Flush()
		if _, err := fmt.Fprintln(w, t.title); err != nil {
			return err
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, row := range r.Rows {
			record := make([]string, 0, len(row.Results)+1)
			record = append(record, row.Game)
			for _, res := range row.Results {
				record = append(record, t.cell(res))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
