package export

import (
	"fmt"
	"strings"

	"github.com/nhle/notemail/internal/model"
)

// Policy is a size policy for note bodies. Lengths are counted in
// characters (Unicode code points).
type Policy struct {
	// Name identifies the policy on the command line.
	Name string

	// Warn is the length above which a warning is shown before sending.
	// Zero disables the warning.
	Warn int

	// Max is the length at or above which the note is not sent.
	Max int

	// ClipboardFallback copies the note's path to the clipboard when the
	// note is too large.
	ClipboardFallback bool

	// OfferHTML adds the "as HTML" menu entry.
	OfferHTML bool
}

// RichPolicy warns on large notes, refuses very large ones with a
// clipboard fallback, and offers HTML conversion.
var RichPolicy = Policy{
	Name:              model.PolicyRich,
	Warn:              100_000,
	Max:               500_000,
	ClipboardFallback: true,
	OfferHTML:         true,
}

// SimplePolicy has one hard limit sized for conservative mail clients and
// sends plain text only.
var SimplePolicy = Policy{
	Name: model.PolicySimple,
	Max:  16_000,
}

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", model.PolicyRich:
		return RichPolicy, nil
	case model.PolicySimple:
		return SimplePolicy, nil
	default:
		return Policy{}, fmt.Errorf("unknown size policy %q", name)
	}
}

// SizeClass is the result of checking a length against a Policy.
type SizeClass int

const (
	SizeOK SizeClass = iota
	SizeWarn
	SizeTooLarge
)

// Classify places length in its size class.
func (p Policy) Classify(length int) SizeClass {
	switch {
	case p.Max > 0 && length >= p.Max:
		return SizeTooLarge
	case p.Warn > 0 && length > p.Warn:
		return SizeWarn
	default:
		return SizeOK
	}
}
