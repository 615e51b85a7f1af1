package depgraph

import "migration-advisor/src/model"

// dfsFrame is one suspended node visit on the explicit DFS stack
type dfsFrame struct {
	node string
	next int // index of the next neighbor to scan
}

// DetectCycles finds cyclic dependency chains with a depth-first search over
// the type graph. When a neighbor already on the recursion stack is seen, the
// sub-path from that neighbor's first occurrence through the current node is
// emitted as one chain (closed by repeating the entry node) and the current
// node's remaining neighbors are abandoned. At most one cycle is reported per
// DFS branch, which keeps densely cyclic graphs from exploding combinatorially.
//
// The search uses an explicit work stack rather than recursion, so chains
// thousands of types deep cannot overflow the goroutine stack. Every node is
// used as a DFS root exactly once unless a previous traversal reached it;
// roots are taken in sorted node order, making the output deterministic.
func DetectCycles(g *model.DependencyGraph) []model.CycleChain {
	visited := make(map[string]bool, len(g.Nodes))
	onStack := make(map[string]int) // node -> index in path
	var cycles []model.CycleChain

	for _, root := range g.Nodes {
		if visited[root] {
			continue
		}

		visited[root] = true
		onStack[root] = 0
		path := []string{root}
		stack := []dfsFrame{{node: root}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			neighbors := g.Adjacency[f.node]

			if f.next >= len(neighbors) {
				delete(onStack, f.node)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			nb := neighbors[f.next]
			f.next++

			if entry, ok := onStack[nb]; ok {
				chain := make([]string, 0, len(path)-entry+1)
				chain = append(chain, path[entry:]...)
				chain = append(chain, nb)
				cycles = append(cycles, model.CycleChain{Path: chain})
				f.next = len(neighbors) // abandon this branch
				continue
			}

			if !visited[nb] {
				visited[nb] = true
				onStack[nb] = len(path)
				path = append(path, nb)
				stack = append(stack, dfsFrame{node: nb})
			}
		}
	}
	return cycles
}
