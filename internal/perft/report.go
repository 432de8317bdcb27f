package perft

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints res in the usual divide layout: one "move: nodes" line
// per root move, then the total. Numbers use English digit grouping.
func WriteReport(w io.Writer, res Result) error {
	p := message.NewPrinter(language.English)
	for _, e := range res.Divide {
		if _, err := p.Fprintf(w, "%s: %d\n", moveText(e.Move), e.Nodes); err != nil {
			return err
		}
	}
	if len(res.Divide) > 0 {
		if _, err := p.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "depth %d: %d nodes in %s (%d nps)\n",
		res.Depth, res.Nodes, res.Elapsed.Round(time.Millisecond).String(), nps(res))
	return err
}

func nps(res Result) uint64 {
	secs := res.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return uint64(float64(res.Nodes) / secs)
}
