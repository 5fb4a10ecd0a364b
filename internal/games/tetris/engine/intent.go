package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIntent is returned when decoding an intent code that does not exist.
var ErrUnknownIntent = errors.New("engine: unknown intent")

// Intent is a discrete player request applied during a tick.
type Intent int

const (
	IntentMoveLeft Intent = iota
	IntentMoveRight
	IntentSoftDrop
	IntentRotate
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentSoftDrop:
		return "SoftDrop"
	case IntentRotate:
		return "Rotate"
	default:
		return "Unknown"
	}
}

// Code returns the single-letter code used in replay journals.
func (i Intent) Code() byte {
	switch i {
	case IntentMoveLeft:
		return 'L'
	case IntentMoveRight:
		return 'R'
	case IntentSoftDrop:
		return 'D'
	case IntentRotate:
		return 'U'
	default:
		return '?'
	}
}

// IntentFromCode is the inverse of Intent.Code.
func IntentFromCode(code byte) (Intent, error) {
	switch code {
	case 'L':
		return IntentMoveLeft, nil
	case 'R':
		return IntentMoveRight, nil
	case 'D':
		return IntentSoftDrop, nil
	case 'U':
		return IntentRotate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, code)
}

// EncodeIntents packs an ordered intent list into a string of codes.
func EncodeIntents(intents []Intent) string {
	var sb strings.Builder
	sb.Grow(len(intents))
	for _, in := range intents {
		sb.WriteByte(in.Code())
	}
	return sb.String()
}

// DecodeIntents unpacks a string produced by EncodeIntents.
func DecodeIntents(s string) ([]Intent, error) {
	if s == "" {
		return nil, nil
	}
	out := make([]Intent, 0, len(s))
	for i := 0; i < len(s); i++ {
		in, err := IntentFromCode(s[i])
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}
