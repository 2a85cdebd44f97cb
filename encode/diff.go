package encode

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff from a to b, or "" if they are equal. Kept
// lines are prefixed with "  ", deleted lines with "- " and inserted lines
// with "+ ". If colors is not nil, deleted and inserted lines are colored.
func Diff(a, b string, colors *Colors) string {
	if a == b {
		return ""
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	ins, del := colorDefault, colorDefault
	if colors != nil {
		ins, del = colors.Inserted, colors.Deleted
	}
	var sb strings.Builder
	for _, d := range diffs {
		for _, ln := range splitLines(d.Text) {
			switch d.Type {
			case diffpatch.DiffInsert:
				sb.WriteString(ins("+ " + ln))
			case diffpatch.DiffDelete:
				sb.WriteString(del("- " + ln))
			case diffpatch.DiffEqual:
				sb.WriteString("  " + ln)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
