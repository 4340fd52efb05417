package graph

import "fmt"

// NumHeavyVertices returns how many vertices were classified heavy, the
// analogue of count_num_heavy_vertices.
func (g *Graph) NumHeavyVertices() int64 {
	var n int64
	for v := int64(0); v < g.numVertices; v++ {
		if g.IsHeavy(v) {
			n++
		}
	}
	return n
}

// NumEdges returns the undirected edge count: the sum of all degrees
// (each undirected edge counted once per endpoint) divided by two.
func (g *Graph) NumEdges() int64 {
	var total int64
	for v := int64(0); v < g.numVertices; v++ {
		total += g.Degree(v)
	}
	return total / 2
}

// PrintDistribution writes a short human-readable summary of the graph's
// size and heavy/light split, the analogue of print_graph_distribution.
func (g *Graph) PrintDistribution(w interface{ Write([]byte) (int, error) }) {
	heavy := g.NumHeavyVertices()
	fmt.Fprintf(w, "num_vertices %d num_edges %d heavy_threshold %d heavy_vertices %d (%.4f%%)\n",
		g.numVertices, g.NumEdges(), g.heavyThreshold, heavy, 100*float64(heavy)/float64(g.numVertices))
}

// Dump writes every vertex's neighbor list, the analogue of dump_graph.
func (g *Graph) Dump(w interface{ Write([]byte) (int, error) }) {
	for v := int64(0); v < g.numVertices; v++ {
		fmt.Fprintf(w, "%d:", v)
		g.ForEachNeighbor(v, func(n int64) {
			fmt.Fprintf(w, " %d", n)
		})
		fmt.Fprintln(w)
	}
}
