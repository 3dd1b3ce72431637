package domain

import "go.trai.ch/zerr"

// ImportGraph tracks the edges discovered by the source-tree hasher's
// traversal (spec §4.C) so that a circular import can be reported as a
// deterministic error instead of recursing forever. Edges are added as the
// walker visits each file's imports; Validate runs a standard white/grey/black
// DFS cycle check over the edges added so far.
type ImportGraph struct {
	edges map[string][]string
}

// NewImportGraph creates an empty graph.
func NewImportGraph() *ImportGraph {
	return &ImportGraph{edges: make(map[string][]string)}
}

// AddEdge records that the file at fromAbsolutePath imports toAbsolutePath.
func (g *ImportGraph) AddEdge(fromAbsolutePath, toAbsolutePath string) {
	g.edges[fromAbsolutePath] = append(g.edges[fromAbsolutePath], toAbsolutePath)
}

// Validate reports ErrImportCycle, with the cycle's file path chain as
// metadata, if the edges added so far contain a cycle reachable from root.
func (g *ImportGraph) Validate(root string) error {
	visited := make(map[string]int) // 0 unvisited, 1 in-progress, 2 done
	var path []string

	var visit func(node string) error
	visit = func(node string) error {
		visited[node] = 1
		path = append(path, node)

		for _, next := range g.edges[node] {
			switch visited[next] {
			case 1:
				return g.buildCycleError(path, next)
			case 0:
				if err := visit(next); err != nil {
					return err
				}
			}
		}

		visited[node] = 2
		path = path[:len(path)-1]
		return nil
	}

	return visit(root)
}

func (g *ImportGraph) buildCycleError(path []string, closesAt string) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == closesAt {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += closesAt
	return zerr.With(ErrImportCycle, "cycle", cyclePath)
}
