package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/envelope/backup"
	"github.com/robinvdvleuten/envelope/budget"
)

// renderError formats a load failure for the terminal. Validation failures
// expand into one line per underlying error; record failures carry their
// collection and index so the offending row can be found in the file.
func renderError(err error) string {
	var validationErrors *budget.ValidationErrors
	if errors.As(err, &validationErrors) {
		var buf strings.Builder
		for i, e := range validationErrors.Errors {
			if i > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(errorStyle.Render(e.Error()))
		}
		return buf.String()
	}

	var recordErr *backup.RecordError
	if errors.As(err, &recordErr) {
		location := dimStyle.Render(fmt.Sprintf("%s[%d]", recordErr.Collection, recordErr.Index))
		return fmt.Sprintf("%s %s", location, errorStyle.Render(recordErr.Underlying.Error()))
	}

	var missingErr *backup.MissingCollectionError
	if errors.As(err, &missingErr) {
		return errorStyle.Render(missingErr.Error())
	}

	return errorStyle.Render(err.Error())
}
