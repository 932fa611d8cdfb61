package media

import (
	"strconv"
	"strings"
)

// RangeSpec is a validated inclusive byte interval within a file.
// Invariant: 0 <= Start <= End < total size. Specs are only ever built by
// ResolveRange, never constructed out of bounds.
type RangeSpec struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r RangeSpec) Length() int64 { return r.End - r.Start + 1 }

// ResolveRange parses a single-range HTTP Range header value against the
// total size. It returns (nil, nil) for full content, a spec for a
// satisfiable partial request, or a RangeNotSatisfiableError.
//
// Malformed headers (wrong unit, multiple ranges, garbage offsets) are
// deliberately treated as if no Range was sent. Browsers and proxies emit
// all sorts of junk here and answering 200 with the full body is the
// conservative server behavior.
func ResolveRange(header string, size int64) (*RangeSpec, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, nil
	}

	unit, spec, ok := strings.Cut(header, "=")
	if !ok || !strings.EqualFold(strings.TrimSpace(unit), "bytes") {
		return nil, nil
	}
	spec = strings.TrimSpace(spec)
	if strings.Contains(spec, ",") {
		// Multi-range requests are out of scope; serve the full body.
		return nil, nil
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, nil
	}
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	var start, end int64
	switch {
	case startStr == "" && endStr == "":
		return nil, nil
	case startStr == "":
		// bytes=-N: the last N bytes.
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n < 0 {
			return nil, nil
		}
		start = size - n
		if start < 0 {
			start = 0
		}
		end = size - 1
	case endStr == "":
		// bytes=N-: from N to the end.
		n, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || n < 0 {
			return nil, nil
		}
		start = n
		end = size - 1
	default:
		a, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || a < 0 {
			return nil, nil
		}
		b, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || b < 0 {
			return nil, nil
		}
		start = a
		end = b
		if end > size-1 {
			end = size - 1
		}
	}

	if start > end || start >= size {
		return nil, &RangeNotSatisfiableError{Size: size}
	}
	return &RangeSpec{Start: start, End: end}, nil
}
