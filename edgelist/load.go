package edgelist

import (
	"bufio"
	"context"
	"encoding/binary"
	"os"

	"github.com/paperwasp/hybridbfs/errs"
	"github.com/paperwasp/hybridbfs/nodelet"
	"github.com/paperwasp/hybridbfs/parallel"
	"github.com/paperwasp/hybridbfs/region"
)

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	regions *region.Timer
}

// WithRegionTimer attaches a region.Timer so Load records the scatter
// phase's duration under the name scatter_edge_list.
func WithRegionTimer(t *region.Timer) Option { return func(c *loadConfig) { c.regions = t } }

const edgeRecordSize = 16 // two little-endian int64: src, dst

// EdgeList is the distributed edge list: NumVertices/NumEdges plus Src/Dst
// striped across a Runtime's nodelets, the analogue of `replicated
// dist_edge_list EL`.
type EdgeList struct {
	NumVertices int64
	NumEdges    int64
	Src         *nodelet.StripedLongs
	Dst         *nodelet.StripedLongs
}

type localEdge struct{ src, dst int64 }

func readLocalBody(f *os.File, header Header) ([]localEdge, error) {
	if _, err := f.Seek(header.Length, 0); err != nil {
		return nil, errs.Wrap(errs.KindFileFormat, "seeking past edge list header", err)
	}
	edges := make([]localEdge, header.NumEdges)
	br := bufio.NewReaderSize(f, 1<<20)
	buf := make([]byte, edgeRecordSize)
	for i := range edges {
		if _, err := io_ReadFull(br, buf); err != nil {
			return nil, errs.Wrap(errs.KindFileFormat, "reading edge record", err)
		}
		edges[i] = localEdge{
			src: int64(binary.LittleEndian.Uint64(buf[0:8])),
			dst: int64(binary.LittleEndian.Uint64(buf[8:16])),
		}
	}
	return edges, nil
}

// io_ReadFull reads from r until buf is full, like io.ReadFull, except that
// a short read returns the reader's own error (io.EOF) rather than
// io.ErrUnexpectedEOF.
func io_ReadFull(r *bufio.Reader, buf []byte) (int, error) {
	read := 0
	for read < len(buf) {
		n, err := r.Read(buf[read:])
		read += n
		if err != nil {
			return read, err
		}
	}
	return read, nil
}

// Load reads filename in full on the calling goroutine, then scatters the
// decoded edges into a striped EdgeList, the analogue of load_edge_list
// (local load + scatter_edges).
func Load(ctx context.Context, rt *nodelet.Runtime, filename string, opts ...Option) (*EdgeList, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, errs.Wrap(errs.KindFileFormat, "opening edge list file", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := ParseHeader(br)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	edges, err := readLocalBody(f, header)
	if err != nil {
		return nil, err
	}

	el := &EdgeList{
		NumVertices: header.NumVertices,
		NumEdges:    header.NumEdges,
		Src:         nodelet.NewStripedLongs(rt, header.NumEdges),
		Dst:         nodelet.NewStripedLongs(rt, header.NumEdges),
	}

	scatter := func() error {
		grain := parallel.GrainMin(header.NumEdges, 256)
		return parallel.LocalFor(ctx, 0, header.NumEdges, grain, func(_ context.Context, begin, end int64) error {
			for i := begin; i < end; i++ {
				el.Src.Set(i, edges[i].src)
				el.Dst.Set(i, edges[i].dst)
			}
			return nil
		})
	}
	if cfg.regions != nil {
		span := cfg.regions.Begin("scatter_edge_list")
		err = scatter()
		span.End()
	} else {
		err = scatter()
	}
	if err != nil {
		return nil, err
	}
	return el, nil
}

// LoadDistributed reads filename without materializing the whole file in
// one local buffer: each nodelet opens its own file handle, reads one
// contiguous slice of the edge records, and stores each record into its
// striped slot of Src/Dst (which may be on any nodelet's shard), the
// analogue of load_edge_list_distributed / buffered_edge_list_reader.
func LoadDistributed(ctx context.Context, rt *nodelet.Runtime, filename string) (*EdgeList, error) {
	header, err := readHeaderOnly(filename)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	el := &EdgeList{
		NumVertices: header.NumVertices,
		NumEdges:    header.NumEdges,
		Src:         nodelet.NewStripedLongs(rt, header.NumEdges),
		Dst:         nodelet.NewStripedLongs(rt, header.NumEdges),
	}

	p := int64(rt.NumNodelets())
	chunk := (header.NumEdges + p - 1) / p

	err = parallel.ApplyStriped(ctx, rt, func(_ context.Context, n int) error {
		begin := int64(n) * chunk
		end := begin + chunk
		if end > header.NumEdges {
			end = header.NumEdges
		}
		if begin >= end {
			return nil
		}
		return readNodeletShard(filename, header, el, begin, end)
	})
	if err != nil {
		return nil, err
	}
	return el, nil
}

func readHeaderOnly(filename string) (Header, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Header{}, errs.Wrap(errs.KindFileFormat, "opening edge list file", err)
	}
	defer f.Close()
	return ParseHeader(bufio.NewReader(f))
}

func readNodeletShard(filename string, header Header, el *EdgeList, begin, end int64) error {
	f, err := os.Open(filename)
	if err != nil {
		return errs.Wrap(errs.KindFileFormat, "opening edge list file", err)
	}
	defer f.Close()

	offset := header.Length + edgeRecordSize*begin
	if _, err := f.Seek(offset, 0); err != nil {
		return errs.Wrap(errs.KindFileFormat, "seeking to nodelet shard", err)
	}

	br := bufio.NewReaderSize(f, 1<<20)
	buf := make([]byte, edgeRecordSize)
	for i := begin; i < end; i++ {
		if _, err := io_ReadFull(br, buf); err != nil {
			return errs.Wrap(errs.KindFileFormat, "reading edge record", err)
		}
		el.Src.Set(i, int64(binary.LittleEndian.Uint64(buf[0:8])))
		el.Dst.Set(i, int64(binary.LittleEndian.Uint64(buf[8:16])))
	}
	return nil
}
