// Package mapper converts entities into transfer objects.
//
// Mappers are small interfaces so any type with the right method can serve;
// Func adapts plain functions. Graph handles object graphs with cycles.
package mapper

// EntityMapper maps an entity to its DTO.
type EntityMapper[E, D any] interface {
	FromEntity(e E) D
}

// RelationshipMapper additionally maps the relationship values of an
// entity-keyed map.
type RelationshipMapper[E, R, D, RO any] interface {
	EntityMapper[E, D]
	FromRelationship(r R) RO
}

// SimpleMapper maps one DTO shape to another.
type SimpleMapper[S, D any] interface {
	FromDTO(s S) D
}

// IDMapper maps an entity that needs its owner id.
type IDMapper[I, E, D any] interface {
	FromEntity(id I, e E) D
}

// Func adapts a function to EntityMapper and SimpleMapper.
type Func[E, D any] func(E) D

// FromEntity implements EntityMapper.
func (f Func[E, D]) FromEntity(e E) D { return f(e) }

// FromDTO implements SimpleMapper.
func (f Func[E, D]) FromDTO(e E) D { return f(e) }

// MapAll maps every entity. The result is never nil.
func MapAll[E, D any](m EntityMapper[E, D], entities []E) []D {
	out := make([]D, 0, len(entities))
	for _, e := range entities {
		out = append(out, m.FromEntity(e))
	}
	return out
}

// MapDTOs maps every DTO. The result is never nil.
func MapDTOs[S, D any](m SimpleMapper[S, D], dtos []S) []D {
	out := make([]D, 0, len(dtos))
	for _, s := range dtos {
		out = append(out, m.FromDTO(s))
	}
	return out
}

// MapRelationships maps both keys and values of rel.
func MapRelationships[E comparable, R any, D comparable, RO any](m RelationshipMapper[E, R, D, RO], rel map[E]R) map[D]RO {
	out := make(map[D]RO, len(rel))
	for e, r := range rel {
		out[m.FromEntity(e)] = m.FromRelationship(r)
	}
	return out
}

// MapAllWithID maps every entity owned by id. The result is never nil.
func MapAllWithID[I, E, D any](m IDMapper[I, E, D], id I, entities []E) []D {
	out := make([]D, 0, len(entities))
	for _, e := range entities {
		out = append(out, m.FromEntity(id, e))
	}
	return out
}
