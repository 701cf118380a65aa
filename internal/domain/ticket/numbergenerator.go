package ticket

import (
	"context"
	"fmt"
	"time"
)

// NumberGenerator issues ticket numbers of the form T-YYYYMMDD-NNNN
// where NNNN restarts at 0001 each day.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// FormatNumber builds the canonical ticket number for a date and
// per-day sequence value.
func FormatNumber(t time.Time, seq int) string {
	return fmt.Sprintf("T-%s-%04d", t.Format("20060102"), seq)
}
