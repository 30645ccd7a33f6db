package memory

import "github.com/mesh-intelligence/crm/pkg/types"

// Get is the typed form of Store.Get.
//
//	lead, ok := memory.Get[*types.Lead](s, id)
func Get[T types.Entity](s *Store, id string) (T, bool) {
	var zero T
	e, ok := s.Get(zero.EntityType(), id)
	if !ok {
		return zero, false
	}
	v, ok := e.(T)
	return v, ok
}

// List is the typed form of Store.List.
func List[T types.Entity](s *Store) []T {
	var zero T
	all := s.List(zero.EntityType())
	out := make([]T, 0, len(all))
	for _, e := range all {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Create is the typed form of Store.Create.
func Create[T types.Entity](s *Store, e T) (T, error) {
	var zero T
	got, err := s.Create(e)
	if err != nil {
		return zero, err
	}
	return got.(T), nil
}
