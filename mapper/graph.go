package mapper

// Graph maps entity graphs that may contain cycles. Each entity is mapped
// once per Map call: the DTO shell is registered before its fields are
// filled, so a back reference resolves to the DTO under construction.
//
// D is normally a pointer type.
type Graph[K comparable, E, D any] struct {
	key  func(E) K
	init func(E) D
	fill func(g *Graph[K, E, D], e E, d D)
	seen map[K]D
}

// NewGraph creates a graph mapper. init allocates the DTO for an entity and
// fill populates it, calling Resolve for referenced entities.
func NewGraph[K comparable, E, D any](key func(E) K, init func(E) D, fill func(g *Graph[K, E, D], e E, d D)) *Graph[K, E, D] {
	return &Graph[K, E, D]{key: key, init: init, fill: fill}
}

// Map maps root with a fresh visited set.
func (g *Graph[K, E, D]) Map(root E) D {
	g.seen = make(map[K]D)
	return g.Resolve(root)
}

// MapAll maps every root, sharing the visited set between them.
func (g *Graph[K, E, D]) MapAll(roots []E) []D {
	g.seen = make(map[K]D)
	out := make([]D, 0, len(roots))
	for _, e := range roots {
		out = append(out, g.Resolve(e))
	}
	return out
}

// Resolve returns the DTO of e, mapping it on first visit.
func (g *Graph[K, E, D]) Resolve(e E) D {
	if g.seen == nil {
		g.seen = make(map[K]D)
	}
	k := g.key(e)
	if d, ok := g.seen[k]; ok {
		return d
	}
	d := g.init(e)
	g.seen[k] = d
	if g.fill != nil {
		g.fill(g, e, d)
	}
	return d
}
