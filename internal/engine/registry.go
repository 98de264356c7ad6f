package engine

import "github.com/piwi3910/splitgrid/internal/model"

// registry is an arena of faces indexed by id. Dead slots are nil and ids
// are handed out monotonically, so a live id is never reused.
type registry struct {
	faces []*model.Face
	live  int
}

func (r *registry) next() int { return len(r.faces) }

// alloc creates a new face and returns its id.
func (r *registry) alloc() int {
	id := len(r.faces)
	r.faces = append(r.faces, &model.Face{ID: id})
	r.live++
	return id
}

// ensure registers id as live, growing the arena if needed.
func (r *registry) ensure(id int) {
	for len(r.faces) <= id {
		r.faces = append(r.faces, nil)
	}
	if r.faces[id] == nil {
		r.faces[id] = &model.Face{ID: id}
		r.live++
	}
}

// reserve grows the arena so the next allocated id is at least n.
func (r *registry) reserve(n int) {
	for len(r.faces) < n {
		r.faces = append(r.faces, nil)
	}
}

func (r *registry) get(id int) (*model.Face, bool) {
	if id < 0 || id >= len(r.faces) || r.faces[id] == nil {
		return nil, false
	}
	return r.faces[id], true
}

func (r *registry) has(id int) bool {
	_, ok := r.get(id)
	return ok
}

func (r *registry) remove(id int) {
	if r.has(id) {
		r.faces[id] = nil
		r.live--
	}
}

// ids returns the live ids in ascending order.
func (r *registry) ids() []int {
	out := make([]int, 0, r.live)
	for id, f := range r.faces {
		if f != nil {
			out = append(out, id)
		}
	}
	return out
}

func (r *registry) reset() {
	r.faces = nil
	r.live = 0
}
