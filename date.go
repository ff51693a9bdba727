package mdpress

import (
	"time"

	"github.com/alnah/go-mdpress/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for footer date values.
//   - "auto" resolves to the current date in YYYY-MM-DD format
//   - "auto:FORMAT" resolves using a custom format (e.g. "auto:DD/MM/YYYY")
//   - "auto:preset" resolves using a named preset (iso, european, us, long)
//   - any other value is returned unchanged
//
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	return dateutil.ResolveDate(value, t)
}
