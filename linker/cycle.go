package linker

import (
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
)

// detectCycles finds the strongly connected components among the
// functions still in unlinked, per spec.md §4.3.1: depth-first traversal
// from every unresolved function in lexicographic order, recording the
// path suffix whenever a dependency already on the path is encountered,
// then merging any two candidate cycles that share a node until no
// further merge is possible.
func detectCycles(entries map[string]*funcEntry, unlinked *treeset.Set) ([][]string, error) {
	unresolved := make(map[string]bool)
	for _, v := range unlinked.Values() {
		unresolved[v.(string)] = true
	}

	var candidates [][]string
	for _, v := range unlinked.Values() {
		start := v.(string)
		onPath := make(map[string]int)
		visitForCycles(start, entries, unresolved, nil, onPath, &candidates)
	}

	merged := mergeCycles(candidates)
	sort.Slice(merged, func(i, j int) bool { return merged[i][0] < merged[j][0] })
	return merged, nil
}

func visitForCycles(name string, entries map[string]*funcEntry, unresolved map[string]bool, path []string, onPath map[string]int, candidates *[][]string) {
	if idx, ok := onPath[name]; ok {
		cycle := append([]string(nil), path[idx:]...)
		*candidates = append(*candidates, cycle)
		return
	}
	onPath[name] = len(path)
	path = append(path, name)
	for _, dep := range entries[name].deps {
		if !unresolved[dep] {
			continue
		}
		visitForCycles(dep, entries, unresolved, path, onPath, candidates)
	}
	delete(onPath, name)
}

func mergeCycles(candidates [][]string) [][]string {
	merged := append([][]string(nil), candidates...)
	for {
		i, j, found := findMergePair(merged)
		if !found {
			break
		}
		merged[i] = fuseCycles(merged[i], merged[j])
		merged = append(merged[:j], merged[j+1:]...)
	}
	return merged
}

func findMergePair(cycles [][]string) (int, int, bool) {
	for i := 0; i < len(cycles); i++ {
		for j := i + 1; j < len(cycles); j++ {
			if cyclesShareNode(cycles[i], cycles[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func cyclesShareNode(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, n := range a {
		set[n] = true
	}
	for _, n := range b {
		if set[n] {
			return true
		}
	}
	return false
}

// fuseCycles preserves a's order and appends b's members not already
// present in a.
func fuseCycles(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := append([]string(nil), a...)
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}
