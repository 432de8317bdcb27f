// Package output writes game records as PGN or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/store"
)

// SevenTagRoster is the ordered set of tags every exported PGN game carries.
var SevenTagRoster = [...]string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// OutputWriter handles formatted output with line length control. The first
// write error is kept and later writes are skipped.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}

	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

// Result derives the PGN result of a record: a win for the side that
// delivered mate, a draw for stalemate, otherwise "*".
func Result(rec *store.Record) string {
	switch {
	case rec.Flags.InCheckmate(chess.White):
		return "0-1"
	case rec.Flags.InCheckmate(chess.Black):
		return "1-0"
	}
	if b, err := engine.NewBoardFromFEN(rec.FEN); err == nil && engine.IsStalemate(b, b.ToMove) {
		return "1/2-1/2"
	}
	return "*"
}

// Tags returns the PGN tags of a record in output order. Games that do not
// start from the initial position carry SetUp and FEN.
func Tags(rec *store.Record) [][2]string {
	date := "????.??.??"
	if !rec.Updated.IsZero() {
		date = rec.Updated.Format("2006.01.02")
	}
	event := "?"
	if rec.ID != "" {
		event = rec.ID
	}
	values := map[string]string{
		"Event":  event,
		"Date":   date,
		"Result": Result(rec),
	}

	tags := make([][2]string, 0, len(SevenTagRoster)+3)
	for _, name := range SevenTagRoster {
		v := values[name]
		if v == "" {
			v = "?"
		}
		tags = append(tags, [2]string{name, v})
	}
	if rec.StartFEN != "" && rec.StartFEN != engine.InitialFEN {
		tags = append(tags, [2]string{"SetUp", "1"}, [2]string{"FEN", rec.StartFEN})
	}
	tags = append(tags, [2]string{"PlyCount", fmt.Sprint(len(rec.SAN))})
	return tags
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// ply is one half-move of a record with its numbering.
type ply struct {
	number int
	colour chess.Colour
	san    string
	uci    string
}

// plies numbers the moves of rec from its starting position.
func plies(rec *store.Record) []ply {
	board, err := engine.NewBoardFromFEN(rec.StartFEN)
	if err != nil {
		board = engine.NewInitialBoard()
	}
	number, colour := int(board.MoveNumber), board.ToMove

	out := make([]ply, len(rec.SAN))
	for i, san := range rec.SAN {
		out[i] = ply{number: number, colour: colour, san: san}
		if i < len(rec.Moves) {
			out[i].uci = rec.Moves[i]
		}
		if colour == chess.Black {
			number++
		}
		colour = colour.Opposite()
	}
	return out
}

// OutputGame writes rec as one PGN game followed by a blank line.
func OutputGame(w io.Writer, rec *store.Record, lineLength int) error {
	for _, tag := range Tags(rec) {
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag[0], escapeTagValue(tag[1])); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	ow := NewOutputWriter(w, lineLength)
	for i, p := range plies(rec) {
		switch {
		case p.colour == chess.White:
			ow.Write(fmt.Sprintf("%d.", p.number))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", p.number))
		}
		ow.Write(p.san)
	}
	ow.Write(Result(rec))
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}
