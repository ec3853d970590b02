package game

import (
	"errors"
	"fmt"
)

// Kind classifies a player-facing failure so transports and tests can react
// to the category without parsing message text.
type Kind string

const (
	// KindInvalidState rejects an operation that is not legal in the
	// player's current activity state.
	KindInvalidState Kind = "invalid_state"
	// KindNotFound reports a missing player, item, map, or NPC.
	KindNotFound Kind = "not_found"
	// KindInsufficient reports a shortage of gold, potions, or items.
	KindInsufficient Kind = "insufficient_resource"
	// KindInvalidArgument reports malformed or out-of-range input.
	KindInvalidArgument Kind = "invalid_argument"
	// KindConflict reports a clash with another pending interaction.
	KindConflict Kind = "conflict"
)

// Error carries a machine-readable kind alongside a message that is safe to
// show to the player verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// E builds a classified player-facing error.
func E(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from err. The second return is false
// for unclassified errors, which callers must treat as internal faults
// rather than player mistakes.
func KindOf(err error) (Kind, bool) {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}
