// Package edgelist loads the el64 binary edge-list file format: a single
// text header line of space-separated "--key=value"/"--flag" fields,
// followed by num_edges 16-byte records (two little-endian int64: src,
// dst).
package edgelist

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/paperwasp/hybridbfs/errs"
)

// Header describes the file's header line.
type Header struct {
	NumVertices int64
	NumEdges    int64
	IsSorted    bool
	IsDeduped   bool
	IsPermuted  bool
	IsDirected  bool
	IsUndirected bool
	Format      string

	// Length is the number of bytes the header line occupied in the
	// file, including the trailing newline — the body begins here.
	Length int64
}

// ParseHeader reads one newline-terminated header line from r and parses
// its --key=value/--flag fields.
func ParseHeader(r *bufio.Reader) (Header, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return Header{}, errs.Wrap(errs.KindFileFormat, "reading edge list header", err)
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		return Header{}, errs.New(errs.KindFileFormat, "edge list header must end with a newline")
	}

	h := Header{NumVertices: -1, NumEdges: -1, Length: int64(len(line))}
	trimmed := strings.TrimSuffix(line, "\n")
	if len(trimmed) > 0 {
		for _, field := range strings.Split(trimmed, " ") {
			if field == "" {
				continue
			}
			if err := applyField(&h, field); err != nil {
				return Header{}, err
			}
		}
	}
	return h, nil
}

func applyField(h *Header, field string) error {
	field = strings.TrimPrefix(field, "--")
	key, value, hasValue := strings.Cut(field, "=")
	switch key {
	case "num_vertices":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || !hasValue {
			return errs.Newf(errs.KindFileFormat, "invalid num_vertices field %q", field)
		}
		h.NumVertices = n
	case "num_edges":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || !hasValue {
			return errs.Newf(errs.KindFileFormat, "invalid num_edges field %q", field)
		}
		h.NumEdges = n
	case "is_sorted":
		h.IsSorted = true
	case "is_deduped":
		h.IsDeduped = true
	case "is_permuted":
		h.IsPermuted = true
	case "is_directed":
		h.IsDirected = true
	case "is_undirected":
		h.IsUndirected = true
	case "format":
		if !hasValue {
			return errs.Newf(errs.KindFileFormat, "invalid format field %q", field)
		}
		h.Format = value
	default:
		return errs.Newf(errs.KindFileFormat, "unrecognized edge list header field %q", field)
	}
	return nil
}

// Validate enforces the subset of formats this loader supports: only
// "el64", deduped, with a valid size.
func (h Header) Validate() error {
	if h.NumVertices <= 0 || h.NumEdges <= 0 {
		return errs.New(errs.KindFileFormat, "invalid graph size in header")
	}
	if h.Format != "el64" {
		return errs.Newf(errs.KindFileFormat, "unsupported edge list format %q", h.Format)
	}
	if !h.IsDeduped {
		return errs.New(errs.KindFileFormat, "edge list must be deduped")
	}
	return nil
}
