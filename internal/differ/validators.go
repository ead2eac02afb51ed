package differ

import (
	"fmt"

	"github.com/snapdiff/snapdiff/internal/common"
)

// ContentSizeValidator validates content size against limits
type ContentSizeValidator struct {
	maxSizeBytes int64
}

// NewContentSizeValidator creates a new content size validator. A
// non-positive limit disables the check.
func NewContentSizeValidator(maxSizeMB int) *ContentSizeValidator {
	return &ContentSizeValidator{
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// ValidateSize checks if both versions' sizes are within limits
func (csv *ContentSizeValidator) ValidateSize(original, modified string) error {
	if err := csv.validateSingleContent(original, "original"); err != nil {
		return err
	}
	return csv.validateSingleContent(modified, "modified")
}

// validateSingleContent validates a single version's size
func (csv *ContentSizeValidator) validateSingleContent(content string, fieldName string) error {
	if csv.maxSizeBytes > 0 && int64(len(content)) > csv.maxSizeBytes {
		return common.NewValidationError(fieldName, len(content),
			fmt.Sprintf("%s too large (%d bytes > %d bytes limit)",
				fieldName, len(content), csv.maxSizeBytes))
	}
	return nil
}
