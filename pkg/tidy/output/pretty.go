package output

import (
	"bytes"
	"fmt"
)

// PrettyFormatter renders a styled, human-friendly report using lipgloss.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	switch {
	case r.Run != nil:
		f.formatRun(w, r)
	case r.Undo != nil:
		f.formatUndo(w, r)
	}
	return nil
}

func (f *PrettyFormatter) formatRun(w *bytes.Buffer, r *Report) {
	s := r.Run

	if s.Err != "" {
		fmt.Fprintln(w, DangerStyle.Render("Error: "+s.Err))
		return
	}

	title := "Organize complete"
	if r.DryRun {
		title = "Organize (dry run)"
	}
	fmt.Fprintln(w, TitleStyle.Render(title))
	fmt.Fprintf(w, "%s %s -> %s\n", LabelStyle.Render("Path:"), r.Source, r.Dest)
	fmt.Fprintf(w, "%s %s, %s\n", LabelStyle.Render("Policy:"), r.Mode, r.Action)

	fmt.Fprintf(w, "%s %d discovered, %d processed\n",
		LabelStyle.Render("Files:"), s.Total, s.Processed)
	fmt.Fprintf(w, "%s %s  %s  %s\n",
		LabelStyle.Render("Result:"),
		SuccessStyle.Render(fmt.Sprintf("%d succeeded", s.Succeeded)),
		DangerStyle.Render(fmt.Sprintf("%d failed", s.Failed)),
		WarningStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)))
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render("Transferred:"), s.HumanBytes())

	if s.Cancelled() {
		fmt.Fprintln(w, WarningStyle.Render("Run was cancelled before completing."))
	}
	if r.DryRun {
		fmt.Fprintln(w, WarningStyle.Render("No files were modified."))
	}
}

func (f *PrettyFormatter) formatUndo(w *bytes.Buffer, r *Report) {
	s := r.Undo

	fmt.Fprintln(w, TitleStyle.Render("Undo complete"))
	if s.Total == 0 {
		fmt.Fprintln(w, LabelStyle.Render("Nothing to revert."))
		return
	}
	fmt.Fprintf(w, "%s %d records, %s, %s\n",
		LabelStyle.Render("Result:"),
		s.Total,
		SuccessStyle.Render(fmt.Sprintf("%d restored", s.Succeeded)),
		DangerStyle.Render(fmt.Sprintf("%d failed", s.Failed)))
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
