package search

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteSeriesCSV writes the cost series as CSV with a step,cost header.
// The format matches what external plotting tools expect.
func WriteSeriesCSV(w io.Writer, series []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "cost"}); err != nil {
		return err
	}
	for _, s := range series {
		if err := cw.Write([]string{strconv.Itoa(s.Step), strconv.Itoa(s.Cost)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
