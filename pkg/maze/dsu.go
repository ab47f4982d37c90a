package maze

// DisjointSet is a union-find forest over the integers [0, n).
// A member is a root iff it is its own parent.
//
// Find does not compress paths and Union does not balance by rank. Which
// edges Kruskal accepts depends only on the partition, so neither would
// change the generated maze.
type DisjointSet struct {
	parent []int
	roots  int
}

// NewDisjointSet returns a forest of n singleton sets.
// It fails with OUT_OF_MEMORY if the parent array cannot be allocated.
func NewDisjointSet(n int) (*DisjointSet, error) {
	parent, err := makeSlice[int](n, "disjoint set")
	if err != nil {
		return nil, err
	}
	for i := range parent {
		parent[i] = i
	}
	return &DisjointSet{parent: parent, roots: n}, nil
}

// Find returns the root of the set containing member.
func (d *DisjointSet) Find(member int) int {
	for d.parent[member] != member {
		member = d.parent[member]
	}
	return member
}

// Union merges the sets containing a and b by re-pointing b's root at a's
// root. It returns false if a and b already share a root.
func (d *DisjointSet) Union(a, b int) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}
	d.parent[rb] = ra
	d.roots--
	return true
}

// Roots returns the number of disjoint sets.
func (d *DisjointSet) Roots() int { return d.roots }

// Len returns the number of members.
func (d *DisjointSet) Len() int { return len(d.parent) }
