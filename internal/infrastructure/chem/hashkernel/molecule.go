package hashkernel

import (
	"fmt"
	"sync/atomic"
)

type atom struct {
	symbol   string
	aromatic bool
	charge   int
	isotope  int
	// hydrogens is the explicit bracket H count, or -1 for organic-subset
	// atoms whose hydrogens are implicit.
	hydrogens int
	bracket   bool
}

type edge struct {
	to    int
	order bondOrder
}

// Molecule is the hydrogen-suppressed graph of a parsed SMILES string.
type Molecule struct {
	smiles string
	atoms  []atom
	adj    [][]edge
	bonds  int

	// Derived by finalize.
	totalH     []int
	ringBond   map[[2]int]bool
	ringSize   []int // smallest ring through each atom, 0 when acyclic
	ringSizes  map[int]int
	components int

	released atomic.Bool
}

// SMILES returns the input the molecule was parsed from.
func (m *Molecule) SMILES() string { return m.smiles }

// NumAtoms returns the number of heavy atoms.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the number of bonds between heavy atoms.
func (m *Molecule) NumBonds() int { return m.bonds }

// Release marks the molecule as no longer in use.  Kernel calls on a released
// molecule fail.
func (m *Molecule) Release() { m.released.Store(true) }

func (m *Molecule) implicitOrder(a, b int) bondOrder {
	if m.atoms[a].aromatic && m.atoms[b].aromatic {
		return bondAromatic
	}
	return bondSingle
}

func (m *Molecule) addBond(a, b int, order bondOrder) error {
	if a == b {
		return fmt.Errorf("atom %d bonded to itself", a)
	}
	for _, e := range m.adj[a] {
		if e.to == b {
			return fmt.Errorf("duplicate bond between atoms %d and %d", a, b)
		}
	}
	m.adj[a] = append(m.adj[a], edge{to: b, order: order})
	m.adj[b] = append(m.adj[b], edge{to: a, order: order})
	m.bonds++
	return nil
}

func bondKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func (m *Molecule) degree(i int) int { return len(m.adj[i]) }

func (m *Molecule) bondOrder(a, b int) bondOrder {
	for _, e := range m.adj[a] {
		if e.to == b {
			return e.order
		}
	}
	return 0
}

func (m *Molecule) inRing(i int) bool { return m.ringSize[i] > 0 }

func (m *Molecule) isRingBond(a, b int) bool { return m.ringBond[bondKey(a, b)] }

// piCount approximates the number of pi electrons an atom contributes.
func (m *Molecule) piCount(i int) int {
	n := 0
	for _, e := range m.adj[i] {
		switch e.order {
		case bondDouble:
			n++
		case bondTriple:
			n += 2
		}
	}
	if m.atoms[i].aromatic {
		n++
	}
	return n
}

// finalize derives implicit hydrogens, ring membership and connectivity.
func (m *Molecule) finalize() {
	n := len(m.atoms)
	m.totalH = make([]int, n)
	for i, a := range m.atoms {
		if a.hydrogens >= 0 {
			m.totalH[i] = a.hydrogens
			continue
		}
		valence, ok := defaultValence[a.symbol]
		if !ok {
			continue
		}
		// Aromatic bonds count as one and a half.
		halves := 0
		for _, e := range m.adj[i] {
			if e.order == bondAromatic {
				halves += 3
			} else {
				halves += 2 * int(e.order)
			}
		}
		used := (halves + 1) / 2
		if h := valence - used; h > 0 {
			m.totalH[i] = h
		}
	}
	m.findRingBonds()
	m.findRingSizes()
	m.components = m.countComponents()
}

// findRingBonds marks every bond that is not a bridge.
func (m *Molecule) findRingBonds() {
	n := len(m.atoms)
	m.ringBond = make(map[[2]int]bool)
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	timer := 0
	var visit func(u, parent int)
	visit = func(u, parent int) {
		disc[u] = timer
		low[u] = timer
		timer++
		for _, e := range m.adj[u] {
			v := e.to
			if v == parent {
				continue
			}
			if disc[v] >= 0 {
				m.ringBond[bondKey(u, v)] = true
				if disc[v] < low[u] {
					low[u] = disc[v]
				}
				continue
			}
			visit(v, u)
			if low[v] < low[u] {
				low[u] = low[v]
			}
			if low[v] <= disc[u] {
				m.ringBond[bondKey(u, v)] = true
			}
		}
	}
	for i := 0; i < n; i++ {
		if disc[i] < 0 {
			visit(i, -1)
		}
	}
}

// findRingSizes computes, for each ring bond, the smallest cycle through it.
func (m *Molecule) findRingSizes() {
	m.ringSize = make([]int, len(m.atoms))
	m.ringSizes = make(map[int]int)
	seen := make(map[int]map[[2]int]bool)
	for key := range m.ringBond {
		size := m.shortestPathAvoiding(key[0], key[1]) + 1
		if size < 3 {
			continue
		}
		for _, a := range key {
			if m.ringSize[a] == 0 || size < m.ringSize[a] {
				m.ringSize[a] = size
			}
		}
		if seen[size] == nil {
			seen[size] = make(map[[2]int]bool)
		}
		seen[size][key] = true
	}
	// A ring of size k contributes k bonds; fused rings share some.
	for size, keys := range seen {
		m.ringSizes[size] = (len(keys) + size - 1) / size
	}
}

// shortestPathAvoiding returns the bond count of the shortest a→b path that
// does not use the a-b bond, or -1.
func (m *Molecule) shortestPathAvoiding(a, b int) int {
	dist := make([]int, len(m.atoms))
	for i := range dist {
		dist[i] = -1
	}
	dist[a] = 0
	queue := []int{a}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range m.adj[u] {
			if u == a && e.to == b {
				continue
			}
			if dist[e.to] >= 0 {
				continue
			}
			dist[e.to] = dist[u] + 1
			if e.to == b {
				return dist[b]
			}
			queue = append(queue, e.to)
		}
	}
	return -1
}

func (m *Molecule) countComponents() int {
	seen := make([]bool, len(m.atoms))
	count := 0
	for i := range m.atoms {
		if seen[i] {
			continue
		}
		count++
		stack := []int{i}
		seen[i] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range m.adj[u] {
				if !seen[e.to] {
					seen[e.to] = true
					stack = append(stack, e.to)
				}
			}
		}
	}
	return count
}

// ringCount is the cyclomatic number: the size of the smallest set of
// smallest rings.
func (m *Molecule) ringCount() int {
	return m.bonds - len(m.atoms) + m.components
}

// distances returns all-pairs topological distances; unreachable pairs are -1.
func (m *Molecule) distances() [][]int {
	n := len(m.atoms)
	out := make([][]int, n)
	for src := 0; src < n; src++ {
		d := make([]int, n)
		for i := range d {
			d[i] = -1
		}
		d[src] = 0
		queue := []int{src}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, e := range m.adj[u] {
				if d[e.to] < 0 {
					d[e.to] = d[u] + 1
					queue = append(queue, e.to)
				}
			}
		}
		out[src] = d
	}
	return out
}

// walkPaths calls fn for every simple path with between minBonds and maxBonds
// bonds, once per direction.  It stops after limit paths and reports whether
// enumeration completed.
func (m *Molecule) walkPaths(minBonds, maxBonds, limit int, fn func(path []int)) bool {
	if maxBonds < minBonds || maxBonds < 0 {
		return true
	}
	visited := make([]bool, len(m.atoms))
	path := make([]int, 0, maxBonds+1)
	count := 0
	var extend func(u int) bool
	extend = func(u int) bool {
		bonds := len(path) - 1
		if bonds >= minBonds {
			count++
			if count > limit {
				return false
			}
			fn(path)
		}
		if bonds == maxBonds {
			return true
		}
		for _, e := range m.adj[u] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			path = append(path, e.to)
			ok := extend(e.to)
			path = path[:len(path)-1]
			visited[e.to] = false
			if !ok {
				return false
			}
		}
		return true
	}
	for start := range m.atoms {
		visited[start] = true
		path = append(path[:0], start)
		ok := extend(start)
		visited[start] = false
		if !ok {
			return false
		}
	}
	return true
}

//Personal.AI order the ending
