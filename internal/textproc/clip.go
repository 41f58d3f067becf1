// Package textproc implements the pure text algorithms of the pipeline:
// whole-line output clipping and fenced code block extraction. It has no
// dependencies on terminal, network, or process concerns; highlighting is
// injected as a plain string function.
package textproc

import "strings"

// SnipMarker is appended where clipped text was cut.
const SnipMarker = " ...(snip)... "

// Clip bounds text to at most maxChars bytes plus the fixed marker, cutting
// only on line boundaries except when the first newline already lies beyond
// maxChars, in which case the cut is a hard truncation at maxChars.
//
// Empty input yields a single newline. Output always ends with exactly one
// trailing newline. Clipping is not idempotent: re-clipping clipped text may
// truncate further, since the marker and trailing newline count toward the
// next pass's budget.
func Clip(text string, maxChars int) string {
	if text == "" {
		return "\n"
	}
	if maxChars < 0 {
		maxChars = 0
	}

	if len(text) <= maxChars {
		if !strings.HasSuffix(text, "\n") {
			return text + "\n"
		}
		return text
	}

	pos := strings.IndexByte(text, '\n')
	if pos < 0 || pos > maxChars {
		return text[:maxChars] + SnipMarker + "\n"
	}

	// Advance while the next boundary still fits, then cut after the last
	// safe boundary.
	for {
		next := strings.IndexByte(text[pos+1:], '\n')
		if next < 0 {
			break
		}
		next += pos + 1
		if next > maxChars {
			break
		}
		pos = next
	}
	return text[:pos+1] + SnipMarker + "\n"
}
