package inode

const nilNode = -1

type node[V any] struct {
	key     Key
	val     V
	present bool
	prio    uint64
	left    int
	right   int
}

// Cache is an ordered map from Key to V.
//
// Nodes live in a slice and reference each other by index; every operation is
// iterative. Insertion keeps the tree balanced in expectation with treap
// priorities derived from the key, so sequential inode numbers do not
// degenerate into a list. Deleting a value keeps its node: the key slot stays
// in the tree and a later Set reuses it.
type Cache[V any] struct {
	nodes []node[V]
	root  int
	count int
	path  []int
}

// NewCache returns an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{root: nilNode}
}

func (c *Cache[V]) find(k Key) int {
	i := c.root
	for i != nilNode {
		n := &c.nodes[i]
		switch {
		case k < n.key:
			i = n.left
		case k > n.key:
			i = n.right
		default:
			return i
		}
	}
	return nilNode
}

// Get returns the value stored under k.
func (c *Cache[V]) Get(k Key) (V, bool) {
	if i := c.find(k); i != nilNode && c.nodes[i].present {
		return c.nodes[i].val, true
	}
	var zero V
	return zero, false
}

// Contains reports whether k currently holds a value.
func (c *Cache[V]) Contains(k Key) bool {
	_, ok := c.Get(k)
	return ok
}

// Len returns the number of keys holding a value.
func (c *Cache[V]) Len() int {
	return c.count
}

// Set inserts or overwrites the value under k.
func (c *Cache[V]) Set(k Key, v V) {
	path := c.path[:0]
	defer func() { c.path = path[:0] }()

	i := c.root
	for i != nilNode {
		n := &c.nodes[i]
		if k == n.key {
			if !n.present {
				c.count++
			}
			n.val = v
			n.present = true
			return
		}
		path = append(path, i)
		if k < n.key {
			i = n.left
		} else {
			i = n.right
		}
	}

	idx := len(c.nodes)
	c.nodes = append(c.nodes, node[V]{
		key:     k,
		val:     v,
		present: true,
		prio:    priority(k),
		left:    nilNode,
		right:   nilNode,
	})
	c.count++

	if len(path) == 0 {
		c.root = idx
		return
	}

	parent := path[len(path)-1]
	if k < c.nodes[parent].key {
		c.nodes[parent].left = idx
	} else {
		c.nodes[parent].right = idx
	}

	for len(path) > 0 {
		p := path[len(path)-1]
		path = path[:len(path)-1]
		if c.nodes[idx].prio <= c.nodes[p].prio {
			break
		}

		if c.nodes[p].left == idx {
			c.nodes[p].left = c.nodes[idx].right
			c.nodes[idx].right = p
		} else {
			c.nodes[p].right = c.nodes[idx].left
			c.nodes[idx].left = p
		}

		if len(path) == 0 {
			c.root = idx
			continue
		}
		g := path[len(path)-1]
		if c.nodes[g].left == p {
			c.nodes[g].left = idx
		} else {
			c.nodes[g].right = idx
		}
	}
}

// Delete drops the value under k. The key slot is kept.
func (c *Cache[V]) Delete(k Key) {
	i := c.find(k)
	if i == nilNode || !c.nodes[i].present {
		return
	}
	var zero V
	c.nodes[i].val = zero
	c.nodes[i].present = false
	c.count--
}

// ForEach visits every key holding a value in ascending key order and stores
// the value returned by f. When f returns false the value is dropped.
func (c *Cache[V]) ForEach(f func(Key, V) (V, bool)) {
	stack := make([]int, 0, 32)
	i := c.root
	for i != nilNode || len(stack) > 0 {
		for i != nilNode {
			stack = append(stack, i)
			i = c.nodes[i].left
		}
		i = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &c.nodes[i]
		if n.present {
			v, keep := f(n.key, n.val)
			if keep {
				n.val = v
			} else {
				var zero V
				n.val = zero
				n.present = false
				c.count--
			}
		}
		i = n.right
	}
}

// priority scrambles the key (splitmix64 finaliser) so that treap priorities
// are independent of key order.
func priority(k Key) uint64 {
	z := uint64(k) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
