package dedupe

// unionFind is a disjoint-set forest over utterance indices with
// path-halving find and union-by-size. Clustering operates purely on
// integer indices into the speaker's utterance slice.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

// find returns the root of x, halving the path as it walks.
func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union joins the sets containing x and y. The larger set's root survives;
// on equal sizes the root of x wins. Root identity never affects which
// utterances end up together, only which index names the cluster.
func (u *unionFind) union(x, y int) {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return
	}
	if u.size[rx] < u.size[ry] {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	u.size[rx] += u.size[ry]
}

// clusterSize reports the current size of the set containing x.
func (u *unionFind) clusterSize(x int) int {
	return u.size[u.find(x)]
}
