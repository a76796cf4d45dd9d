// Package decode implements the process-wide decoder registry and the
// driver that tries every registered Decoder against every plausible
// reading of a piece of user input.
package decode

import (
	"sync"

	"github.com/btcsuite/btclog"

	"github.com/txray/txray/annotate"
	"github.com/txray/txray/binaryenc"
	"github.com/txray/txray/tree"
)

// Decoder recognizes one binary format. Guard restricts which Binary
// variants are worth trying (e.g. only Bech32 with a given HRP); Parse
// does the actual work. A decoder contributes a Candidate iff Guard
// returns true, Parse succeeds, and Parse consumes every byte of the
// input.
type Decoder struct {
	// Title is the human-readable name of what this decoder produces,
	// e.g. "Bitcoin block header".
	Title string

	// Group and Symbol form a stable identifier pair external tools can
	// filter decoders on, e.g. group "btc", symbol "block-header".
	Group  string
	Symbol string

	// Guard reports whether b is worth attempting. A nil Guard accepts
	// every Binary.
	Guard func(b binaryenc.Binary) bool

	// Parse runs the decoder's combinator chain over the span built from
	// the candidate's bytes.
	Parse func(annotate.Span) (annotate.Span, error)
}

var (
	registryMu sync.Mutex
	registry   []Decoder
)

// Register adds d to the process-wide registry. Decoder packages call this
// from an init func, the same static-registration idiom as
// image.RegisterFormat or database/sql.Register: every decoder package is
// imported for its side effect, and no central wiring lists them by name.
func Register(d Decoder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, d)
	log.Debugf("registered decoder %s/%s (%s)", d.Group, d.Symbol, d.Title)
}

// AllDecoders returns every registered decoder, in registration order.
func AllDecoders() []Decoder {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Decoder, len(registry))
	copy(out, registry)
	return out
}

// Candidate is one successful decoding result.
type Candidate struct {
	Decoder Decoder
	Tree    tree.Tree
	Data    binaryenc.Binary
}

// DecodeInput expands input into every plausible Binary reading of it and
// returns every Candidate that results from applying every registered
// decoder to every one of those readings. It never panics and may return
// an empty slice.
func DecodeInput(input binaryenc.Input) []Candidate {
	return DecodeBinaries(binaryenc.InputToBinaries(input))
}

// DecodeBinaries applies every registered decoder to every binary, in
// binaries order then registration order, collecting every success.
func DecodeBinaries(binaries []binaryenc.Binary) []Candidate {
	decoders := AllDecoders()
	var out []Candidate
	for _, b := range binaries {
		for _, d := range decoders {
			if d.Guard != nil && !d.Guard(b) {
				continue
			}
			t, ok := tryDecode(d, b)
			if !ok {
				continue
			}
			out = append(out, Candidate{Decoder: d, Tree: t, Data: b})
		}
	}
	return out
}

// tryDecode runs d.Parse over b's bytes and accepts the result only if
// parsing succeeded and left no residual bytes: per the error-handling
// design, residual bytes are treated identically to a parse failure.
func tryDecode(d Decoder, b binaryenc.Binary) (tree.Tree, bool) {
	span := annotate.New(b.Bytes())
	final, err := d.Parse(span)
	if err != nil {
		return tree.Tree{}, false
	}
	if len(final.Remaining()) != 0 {
		log.Tracef("decoder %s/%s: %s (%d bytes)", d.Group, d.Symbol,
			annotate.ErrResidualBytes, len(final.Remaining()))
		return tree.Tree{}, false
	}
	return final.Annotations(), true
}

var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-wide logger, following the same
// SubLogger-injection convention the rest of this module's CLI uses.
func UseLogger(l btclog.Logger) { log = l }
