package skillgraph

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the curriculum skill DAG with precomputed indices.
// It is immutable after construction.
type Graph struct {
	skills     []Skill
	byID       map[string]*Skill
	byUnit     map[Unit][]Skill
	roots      []Skill
	dependents map[string][]string
	topoOrder  []Skill
	topoIndex  map[string]int
}

// NewGraph constructs a graph from a slice of skills, validating structure
// (unique IDs, resolvable acyclic prerequisites) and building all indices
// including a deterministic topological order (Kahn's algorithm).
func NewGraph(skills []Skill) (*Graph, error) {
	if err := validateSkills(skills); err != nil {
		return nil, err
	}

	g := &Graph{
		skills:     slices.Clone(skills),
		byID:       make(map[string]*Skill, len(skills)),
		byUnit:     make(map[Unit][]Skill),
		dependents: make(map[string][]string),
		topoIndex:  make(map[string]int, len(skills)),
	}

	for i := range g.skills {
		g.byID[g.skills[i].ID] = &g.skills[i]
	}

	// Reverse edges.
	for i := range g.skills {
		for _, prereqID := range g.skills[i].Prerequisites {
			g.dependents[prereqID] = append(g.dependents[prereqID], g.skills[i].ID)
		}
	}

	// Topological sort; initial queue and dependent lists are sorted so the
	// order is stable across runs.
	inDegree := make(map[string]int, len(skills))
	for i := range g.skills {
		inDegree[g.skills[i].ID] = len(g.skills[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		g.topoOrder = append(g.topoOrder, *g.byID[id])

		deps := slices.Clone(g.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}
	for i, s := range g.topoOrder {
		g.topoIndex[s.ID] = i
	}

	for i := range g.skills {
		if len(g.skills[i].Prerequisites) == 0 {
			g.roots = append(g.roots, g.skills[i])
		}
	}

	// Group by unit, ordered by topological position within the unit.
	for i := range g.skills {
		s := g.skills[i]
		g.byUnit[s.Unit] = append(g.byUnit[s.Unit], s)
	}
	for unit, us := range g.byUnit {
		sorted := slices.Clone(us)
		sort.Slice(sorted, func(i, j int) bool {
			return g.topoIndex[sorted[i].ID] < g.topoIndex[sorted[j].ID]
		})
		g.byUnit[unit] = sorted
	}

	return g, nil
}

// Skill returns a skill by ID, or an error if not found.
func (g *Graph) Skill(id string) (Skill, error) {
	s, ok := g.byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", id)
	}
	return *s, nil
}

// Has reports whether the graph contains the given skill ID.
func (g *Graph) Has(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// All returns all skills in the graph.
func (g *Graph) All() []Skill {
	return slices.Clone(g.skills)
}

// Len returns the number of skills.
func (g *Graph) Len() int {
	return len(g.skills)
}

// ByUnit returns all skills in a unit, ordered topologically.
func (g *Graph) ByUnit(unit Unit) []Skill {
	return slices.Clone(g.byUnit[unit])
}

// Roots returns all skills with no prerequisites.
func (g *Graph) Roots() []Skill {
	return slices.Clone(g.roots)
}

// Prerequisites returns the direct prerequisite skills of the given skill ID.
func (g *Graph) Prerequisites(id string) []Skill {
	s, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Skill, 0, len(s.Prerequisites))
	for _, prereqID := range s.Prerequisites {
		if p, ok := g.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns skills that directly depend on the given skill ID.
func (g *Graph) Dependents(id string) []Skill {
	depIDs := g.dependents[id]
	result := make([]Skill, 0, len(depIDs))
	for _, depID := range depIDs {
		if s, ok := g.byID[depID]; ok {
			result = append(result, *s)
		}
	}
	return result
}

// TopologicalOrder returns all skills in a valid topological order.
func (g *Graph) TopologicalOrder() []Skill {
	return slices.Clone(g.topoOrder)
}

// Eligible reports whether a skill may be scheduled: every prerequisite must
// have at least one recorded attempt. attempted maps skill ID → has the user
// attempted it at least once.
func (g *Graph) Eligible(id string, attempted map[string]bool) bool {
	s, ok := g.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range s.Prerequisites {
		if !attempted[prereqID] {
			return false
		}
	}
	return true
}

// EligibleSkills returns all skills whose prerequisites all have at least one
// attempt, in topological order.
func (g *Graph) EligibleSkills(attempted map[string]bool) []Skill {
	var result []Skill
	for _, s := range g.topoOrder {
		if g.Eligible(s.ID, attempted) {
			result = append(result, s)
		}
	}
	return result
}

// BlockedSkills returns all skills with at least one never-attempted
// prerequisite, in topological order.
func (g *Graph) BlockedSkills(attempted map[string]bool) []Skill {
	var result []Skill
	for _, s := range g.topoOrder {
		if !g.Eligible(s.ID, attempted) {
			result = append(result, s)
		}
	}
	return result
}
