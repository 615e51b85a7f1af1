package depgraph

import (
	"sort"

	"migration-advisor/src/model"
)

// TransitiveClosure computes, for every node, the full set of nodes reachable
// by following directed edges, as a sorted list. A node appears in its own
// closure exactly when it lies on a cycle.
//
// Each start node gets its own visited set and an explicit work stack;
// already-visited nodes contribute nothing further, so traversal terminates
// on arbitrary cyclic input.
func TransitiveClosure(g *model.DependencyGraph) map[string][]string {
	closure := make(map[string][]string, len(g.Nodes))

	for _, start := range g.Nodes {
		visited := make(map[string]bool)
		stack := append([]string(nil), g.Adjacency[start]...)

		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[node] {
				continue
			}
			visited[node] = true
			stack = append(stack, g.Adjacency[node]...)
		}

		reachable := make([]string, 0, len(visited))
		for node := range visited {
			reachable = append(reachable, node)
		}
		sort.Strings(reachable)
		closure[start] = reachable
	}
	return closure
}
