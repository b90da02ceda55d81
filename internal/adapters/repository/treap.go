package repository

import (
	"math/rand/v2"

	"github.com/okian/tabellone/internal/domain/standings"
)

// Treap ordered by standings.Compare. In-order traversal yields the table from
// first to last place; subtree sizes give positions in O(log n).

// key is the part of a row that decides its place in the table.
type key struct {
	points int
	gd     int
	gf     int
	team   string
}

func keyOf(s *standings.Standing) key {
	return key{points: s.Points, gd: s.GoalDifference, gf: s.GoalsFor, team: s.Team}
}

// row rebuilds the ordering fields of a standing from k.
func (k key) row() standings.Standing {
	return standings.Standing{Team: k.team, Points: k.points, GoalDifference: k.gd, GoalsFor: k.gf}
}

// before reports whether a ranks above b.
func before(a, b key) bool {
	return standings.Compare(a.row(), b.row()) < 0
}

type node struct {
	key   key
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, k key) *node {
	if n == nil {
		return &node{key: k, prio: rand.Uint64(), size: 1}
	}
	if before(k, n.key) {
		n.left = insert(n.left, k)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, k)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func remove(n *node, k key) *node {
	if n == nil {
		return nil
	}
	switch {
	case k == n.key:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, k)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, k)
		}
	case before(k, n.key):
		n.left = remove(n.left, k)
	default:
		n.right = remove(n.right, k)
	}
	fix(n)
	return n
}

// position returns the 1-based place of k, or 0 when k is absent.
func position(n *node, k key) int {
	above := 0
	for n != nil {
		switch {
		case k == n.key:
			return above + nsize(n.left) + 1
		case before(k, n.key):
			n = n.left
		default:
			above += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collect appends up to limit teams in table order.
func collect(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.key.team)
	}
	if len(*out) < limit {
		collect(n.right, limit, out)
	}
}
