package output

import (
	"strings"

	"github.com/lgbarn/localchess-go/internal/store"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID         string            `json:"id,omitempty"`
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	FinalFEN   string            `json:"finalFEN,omitempty"`
	InitialFEN string            `json:"initialFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a record to JSON form.
func GameToJSON(rec *store.Record) *JSONGame {
	jg := &JSONGame{
		ID:         rec.ID,
		Tags:       make(map[string]string),
		Result:     Result(rec),
		PlyCount:   len(rec.SAN),
		FinalFEN:   rec.FEN,
		InitialFEN: rec.StartFEN,
	}
	for _, tag := range Tags(rec) {
		jg.Tags[tag[0]] = tag[1]
	}
	for _, p := range plies(rec) {
		jg.Moves = append(jg.Moves, convertMove(p))
	}
	return jg
}

func convertMove(p ply) JSONMove {
	m := JSONMove{
		MoveNumber: p.number,
		Color:      strings.ToLower(p.colour.String()),
		SAN:        p.san,
		UCI:        p.uci,
	}
	if len(p.uci) >= 4 {
		m.From, m.To = p.uci[:2], p.uci[2:4]
	}
	if len(p.uci) == 5 {
		m.Promotion = p.uci[4:]
	}
	return m
}
