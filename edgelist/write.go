package edgelist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// WriteEl64 encodes edges in el64 format to w: a header line declaring
// numVertices/len(edges)/is_deduped/format=el64, followed by each edge as
// two little-endian int64. It exists primarily to build fixtures for
// tests and for a --dump_graph-style round trip; production loads come
// from externally generated files.
func WriteEl64(w io.Writer, numVertices int64, edges [][2]int64) error {
	bw := bufio.NewWriter(w)
	header := fmt.Sprintf("--num_vertices=%d --num_edges=%d --is_sorted --is_deduped --format=el64\n",
		numVertices, len(edges))
	if _, err := bw.WriteString(header); err != nil {
		return err
	}
	buf := make([]byte, edgeRecordSize)
	for _, e := range edges {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(e[0]))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(e[1]))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
