package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// PlainFormatter formats the report as aligned plain text. No colors or
// styling are applied.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	switch {
	case r.Run != nil:
		s := r.Run
		if s.Err != "" {
			fmt.Fprintf(tw, "error\t%s\n", s.Err)
			break
		}
		fmt.Fprintf(tw, "total\t%d\n", s.Total)
		fmt.Fprintf(tw, "processed\t%d\n", s.Processed)
		fmt.Fprintf(tw, "succeeded\t%d\n", s.Succeeded)
		fmt.Fprintf(tw, "failed\t%d\n", s.Failed)
		fmt.Fprintf(tw, "skipped\t%d\n", s.Skipped)
		fmt.Fprintf(tw, "bytes\t%d\n", s.BytesMoved)
	case r.Undo != nil:
		s := r.Undo
		fmt.Fprintf(tw, "total\t%d\n", s.Total)
		fmt.Fprintf(tw, "succeeded\t%d\n", s.Succeeded)
		fmt.Fprintf(tw, "failed\t%d\n", s.Failed)
	}

	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
