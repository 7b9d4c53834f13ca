package buildfile

// registry is a name-keyed store that preserves insertion order. Inserting
// under an existing name replaces the value in place without moving it.
type registry[T any] struct {
	names   []string
	entries map[string]T
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{entries: make(map[string]T)}
}

func (r *registry[T]) get(name string) (T, bool) {
	v, ok := r.entries[name]
	return v, ok
}

func (r *registry[T]) insert(name string, value T) {
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = value
}

// Names returns the registered names in insertion order. The returned
// slice is a copy.
func (r *registry[T]) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *registry[T]) len() int {
	return len(r.names)
}
