package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jmylchreest/silcolour/internal/batch"
)

// progressBar redraws a single "Recolouring  n/total" line on a terminal.
// It is driven by the batch aggregator, so it needs no locking.
type progressBar struct {
	out   io.Writer
	total int
}

var _ batch.Progress = (*progressBar)(nil)

// newProgress returns a progressBar when out is a terminal and progress is
// wanted, otherwise nil.
func newProgress(out io.Writer, quiet bool) batch.Progress {
	if quiet || !isTerminal(out) {
		return nil
	}
	return &progressBar{out: out}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *progressBar) Start(total int) {
	p.total = total
	p.draw(0)
}

func (p *progressBar) Advance(done int, _ batch.Outcome) {
	p.draw(done)
}

func (p *progressBar) Finish() {
	fmt.Fprintln(p.out)
}

func (p *progressBar) draw(done int) {
	fmt.Fprintf(p.out, "\rRecolouring  %d/%d", done, p.total)
}
