package differ

import "strings"

// SplitLines splits text on line-terminator boundaries, retaining the
// terminator on each produced line. A final line lacking a terminator is
// returned as-is; an empty string produces an empty slice rather than a
// phantom trailing line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}

	return lines
}

// JoinLines concatenates lines produced by SplitLines back into a single
// string, byte-exact with the original input.
func JoinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
	}
	return sb.String()
}
