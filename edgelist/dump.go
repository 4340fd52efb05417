package edgelist

import "fmt"

// Dump writes one "src -> dst" line per edge to w, the analogue of
// dump_edge_list, used by the --dump_edge_list CLI flag.
func (el *EdgeList) Dump(w interface{ Write([]byte) (int, error) }) {
	for i := int64(0); i < el.NumEdges; i++ {
		fmt.Fprintf(w, "%d -> %d\n", el.Src.Get(i), el.Dst.Get(i))
	}
}
