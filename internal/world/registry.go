package world

// ID ranges (convention):
//
//	0x00000000:              invalid / no entity
//	0x10000000 - 0x1FFFFFFF: heroes
//	0x20000000 - 0x2FFFFFFF: enemies
//	0x30000000 - 0x3FFFFFFF: projectiles
const (
	heroBase       uint32 = 0x10000000
	enemyBase      uint32 = 0x20000000
	projectileBase uint32 = 0x30000000
)

// Range selects the id range an object is allocated from.
type Range uint8

const (
	RangeHero Range = iota
	RangeEnemy
	RangeProjectile
)

// Registry assigns ids to battle objects and resolves ids back to them.
// One registry per battle: ids restart from the range base after Reset, so
// independent battles never share an id space.
//
// Not safe for concurrent use.
type Registry[T any] struct {
	next    [3]uint32
	objects map[uint32]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	r := &Registry[T]{}
	r.Reset()
	return r
}

// Reset forgets every object and restarts id allocation.
func (r *Registry[T]) Reset() {
	r.next = [3]uint32{heroBase, enemyBase, projectileBase}
	r.objects = make(map[uint32]T)
}

// NextID allocates the next id of a range without registering anything.
func (r *Registry[T]) NextID(rg Range) uint32 {
	r.next[rg]++
	return r.next[rg]
}

// Add allocates an id from rg, builds the object with it and registers it.
func (r *Registry[T]) Add(rg Range, build func(id uint32) T) T {
	id := r.NextID(rg)
	obj := build(id)
	r.objects[id] = obj
	return obj
}

// Put registers obj under an id previously returned by NextID.
func (r *Registry[T]) Put(id uint32, obj T) {
	r.objects[id] = obj
}

// Lookup resolves an id. Returns false for unknown or zero ids.
func (r *Registry[T]) Lookup(id uint32) (T, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Len returns the number of registered objects.
func (r *Registry[T]) Len() int { return len(r.objects) }

// IsHero reports whether the id was allocated from the hero range.
func IsHero(id uint32) bool { return id > heroBase && id < enemyBase }

// IsEnemy reports whether the id was allocated from the enemy range.
func IsEnemy(id uint32) bool { return id > enemyBase && id < projectileBase }
