package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pgrid/sudoku/internal/grid"
)

// ConsoleSink prints reported solutions to a writer. Output is serialized
// under an internal lock; workers may call Report concurrently.
type ConsoleSink struct {
	mu        sync.Mutex
	w         io.Writer
	printer   *message.Printer
	lastAt    time.Time
	lastTotal uint64

	// now is swappable for tests.
	now func() time.Time
}

// NewConsoleSink writes to w with English digit grouping (1,234,567).
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{
		w:       w,
		printer: message.NewPrinter(language.English),
		now:     time.Now,
	}
}

// Report renders the grid and, when withStats is set, the running total
// and the solution rate since the previous report. The rate line is
// omitted on the first report, which has no interval to measure.
func (c *ConsoleSink) Report(p grid.Puzzle, total uint64, withStats bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprint(c.w, p.String())
	if withStats {
		c.printer.Fprintf(c.w, "solutions = %d (%s)\n", total, Humanize(total))
		at := c.now()
		if !c.lastAt.IsZero() && at.After(c.lastAt) {
			interval := at.Sub(c.lastAt).Seconds()
			rate := uint64(float64(total-c.lastTotal) / interval)
			c.printer.Fprintf(c.w, "rate      = %s / sec\n", Humanize(rate))
		}
		c.lastAt, c.lastTotal = at, total
	}
	fmt.Fprintln(c.w)
}

// Humanize renders a count the way the summary lines do: plain below a
// thousand, then scaled with three decimals.
func Humanize(v uint64) string {
	switch {
	case v < 1_000:
		return fmt.Sprintf("%d", v)
	case v < 1_000_000:
		return fmt.Sprintf("%.3f thousand", float64(v)/1_000)
	case v < 1_000_000_000:
		return fmt.Sprintf("%.3f million", float64(v)/1_000_000)
	default:
		return fmt.Sprintf("%.3f billion", float64(v)/1_000_000_000)
	}
}
