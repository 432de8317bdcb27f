package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// renderBoard draws the board from white's side, rank 8 first. Squares in
// marks are highlighted, or shown as '*' when empty and colour is off.
func renderBoard(w io.Writer, b *chess.Board, useColour bool, marks []chess.Square) error {
	marked := make(map[chess.Square]bool, len(marks))
	for _, sq := range marks {
		marked[sq] = true
	}

	for row := 0; row < chess.BoardSize; row++ {
		if _, err := fmt.Fprintf(w, "%d ", chess.BoardSize-row); err != nil {
			return err
		}
		for col := 0; col < chess.BoardSize; col++ {
			sq := chess.SquareAt(col, row)
			cell := " " + string(squareLetter(b.At(sq), marked[sq], useColour)) + " "
			if !useColour {
				if _, err := io.WriteString(w, cell); err != nil {
					return err
				}
				continue
			}
			c := squareColour(col, row, marked[sq])
			c.EnableColor()
			if p := b.At(sq); !p.IsEmpty() && p.Colour == chess.White {
				c = c.Add(color.Bold)
			}
			if _, err := c.Fprint(w, cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "   a  b  c  d  e  f  g  h\n")
	return err
}

func squareLetter(p chess.Piece, marked, useColour bool) byte {
	switch {
	case !p.IsEmpty():
		return p.FENLetter()
	case marked && !useColour:
		return '*'
	case useColour:
		return ' '
	}
	return '.'
}

// squareColour returns a fresh Color so callers may add attributes.
func squareColour(col, row int, marked bool) *color.Color {
	switch {
	case marked:
		return color.New(color.BgYellow, color.FgBlack)
	case (col+row)%2 == 0:
		return color.New(color.BgHiWhite, color.FgBlack)
	}
	return color.New(color.BgGreen, color.FgBlack)
}
