// Package errors provides sentinel errors and error types for the rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates an algebraic square name or index off the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMoveText indicates move text that is neither SAN nor UCI.
	ErrInvalidMoveText = errors.New("invalid move text")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrUnresolvedMove indicates move text that matches no legal move.
	ErrUnresolvedMove = errors.New("move does not match any legal move")

	// ErrAmbiguousMove indicates move text that matches several legal moves.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound indicates a missing stored game.
	ErrNotFound = errors.New("not found")

	// ErrOutOfOrder indicates a recorded move that does not follow the last
	// stored ply.
	ErrOutOfOrder = errors.New("move out of order")
)

// MoveError wraps errors with move context: the text the caller supplied,
// the squares it resolved to (if any) and the ply it was played on.
type MoveError struct {
	Err  error  // The underlying error
	Text string // The move text (if the move came from text)
	From string // Origin square name (if known)
	To   string // Destination square name (if known)
	Ply  int    // Ply number where the error occurred (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Text != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Text))
	}
	if e.From != "" && e.To != "" {
		parts = append(parts, fmt.Sprintf("%s -> %s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a rejected piece of text input, such as a FEN field.
type ParseError struct {
	Err   error  // The underlying error
	Input string // The full input (if useful for diagnosis)
	Field string // Which part of the input was rejected
	Got   string // What was found instead
}

// Error returns a formatted error message with field context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}
	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.Input))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
