package reporter

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/snapdiff/snapdiff/internal/differ"
)

// GetReportTemplateFunctions returns the function map used by the HTML report template.
func GetReportTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"statusClass": func(status differ.ChangeStatus) string {
			switch status {
			case differ.StatusAdded:
				return "status-added"
			case differ.StatusDeleted:
				return "status-deleted"
			default:
				return "status-modified"
			}
		},
		"runClass": func(kind differ.RunKind) string {
			switch kind {
			case differ.RunAdded:
				return "line-added"
			case differ.RunRemoved:
				return "line-removed"
			default:
				return "line-context"
			}
		},
		"runPrefix": func(kind differ.RunKind) string {
			return runPrefix(kind)
		},
		"trimNewline": func(s string) string {
			return strings.TrimRight(s, "\n")
		},
		"lineStats": func(added, removed int) string {
			return fmt.Sprintf("+%d -%d", added, removed)
		},
	}
}
