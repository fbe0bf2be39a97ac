package core

import (
	"fmt"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

// PathKind classifies a pathfinder result.
type PathKind int

const (
	PathNotFound PathKind = iota
	PathFound
	PathEscaped
)

func (k PathKind) String() string {
	switch k {
	case PathNotFound:
		return "not_found"
	case PathFound:
		return "found"
	case PathEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// PathResult is the outcome of FindPath.
//
// PathEscaped: Target is an escape coordinate adjacent to the start.
// PathFound: Steps leads from a start neighbor to an escape coordinate,
// start excluded, escape included.
// PathNotFound: no escape is reachable.
type PathResult struct {
	Kind   PathKind
	Target hexgrid.Coord
	Steps  []hexgrid.Coord
}

func (r PathResult) String() string {
	switch r.Kind {
	case PathEscaped:
		return fmt.Sprintf("escaped%v", r.Target)
	case PathFound:
		return fmt.Sprintf("found%v", r.Steps)
	default:
		return r.Kind.String()
	}
}

// Contains reports whether c is a step of a found path.
func (r PathResult) Contains(c hexgrid.Coord) bool {
	for _, s := range r.Steps {
		if s == c {
			return true
		}
	}
	return false
}

// Walkable reports whether the piece may stand on c.
type Walkable func(c hexgrid.Coord) bool

// FindPath runs a breadth-first search from start towards any escape target
// of the grid. Neighbors are visited in Neighbors order, so the result only
// depends on its inputs.
func FindPath(start hexgrid.Coord, size hexgrid.GridSize, walkable Walkable) PathResult {
	escapes := hexgrid.EscapeSet(size)
	startNeighbors := hexgrid.Neighbors(start)

	for _, n := range startNeighbors {
		if _, ok := escapes[n]; ok {
			return PathResult{Kind: PathEscaped, Target: n}
		}
	}

	cameFrom := map[hexgrid.Coord]parent{start: {}}
	queue := make([]hexgrid.Coord, 0, size.Count())

	for _, n := range startNeighbors {
		if _, seen := cameFrom[n]; seen || !walkable(n) {
			continue
		}
		cameFrom[n] = parent{from: start, valid: true}
		queue = append(queue, n)
	}

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		for _, n := range hexgrid.Neighbors(current) {
			if _, ok := escapes[n]; ok {
				cameFrom[n] = parent{from: current, valid: true}
				return PathResult{Kind: PathFound, Target: n, Steps: reconstruct(cameFrom, n, start)}
			}
			if _, seen := cameFrom[n]; seen || !walkable(n) {
				continue
			}
			cameFrom[n] = parent{from: current, valid: true}
			queue = append(queue, n)
		}
	}

	return PathResult{Kind: PathNotFound}
}

// parent records how the search reached a coordinate. The start has none.
type parent struct {
	from  hexgrid.Coord
	valid bool
}

// reconstruct walks back from end and returns the path without start.
func reconstruct(cameFrom map[hexgrid.Coord]parent, end, start hexgrid.Coord) []hexgrid.Coord {
	var steps []hexgrid.Coord
	for cur := end; cur != start; {
		steps = append(steps, cur)
		p := cameFrom[cur]
		if !p.valid {
			break
		}
		cur = p.from
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
