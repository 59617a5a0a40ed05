package models

type Identifier interface {
	GetId() int
}

// HasId is embedded by sub-entity inputs. Id 0 means the row was added in
// this session and the store has not assigned an identity yet.
type HasId struct {
	Id int `json:"id"`
}

func (h HasId) GetId() int { return h.Id }

func (h *HasId) SetId(id int) { h.Id = id }

// HasDestroy is embedded by sub-entity inputs. A true `_destroy` on an entry
// that also carries an id instructs the lease store to delete that row; it is
// the only deletion signal the wire format has.
type HasDestroy struct {
	Destroy bool `json:"_destroy,omitempty"`
}

func (h HasDestroy) IsDeleted() bool { return h.Destroy }

func (h *HasDestroy) MarkDestroyed() { h.Destroy = true }

// SubCollection tracks incremental edits to an ordered list of sub-entities
// (parking rows, agreement services) during one edit session. Rows removed
// after they were persisted keep their identity in a removed set, so that an
// update payload can carry the destroy markers; rows that never had an
// identity simply vanish. The zero value is an empty, usable collection.
type SubCollection[T Identifier] struct {
	items   []T
	removed []int
}

// Seed loads persisted rows into the collection and resets the removed set.
// Used when a stored lease is opened for editing.
func (c *SubCollection[T]) Seed(items []T) {
	c.items = append([]T(nil), items...)
	c.removed = nil
}

func (c *SubCollection[T]) Add(item T) {
	c.items = append(c.items, item)
}

func (c *SubCollection[T]) Len() int { return len(c.items) }

func (c *SubCollection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

func (c *SubCollection[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(c.items) {
		return zero, false
	}
	return c.items[index], true
}

// UpdateAt applies patch to the row at index. The row's identity survives the
// patch no matter what the patch writes.
func (c *SubCollection[T]) UpdateAt(index int, patch func(*T)) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	prevId := c.items[index].GetId()
	patch(&c.items[index])
	if s, ok := any(&c.items[index]).(interface{ SetId(int) }); ok {
		s.SetId(prevId)
	}
	return true
}

// RemoveAt deletes the row at index. If the row has an identity it is
// recorded for destruction; the slice always shrinks by exactly one.
func (c *SubCollection[T]) RemoveAt(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	if id := c.items[index].GetId(); id > 0 {
		c.removed = append(c.removed, id)
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return true
}

// Removed returns the identities accumulated by RemoveAt calls this session.
func (c *SubCollection[T]) Removed() []int {
	return append([]int(nil), c.removed...)
}

// WirePayload renders the collection as a single attributes array: live rows
// first, then one destroy marker per removed identity. Adds, edits and
// deletes all travel in this one list.
func (c *SubCollection[T]) WirePayload() []T {
	out := append([]T(nil), c.items...)
	for _, id := range c.removed {
		var marker T
		if s, ok := any(&marker).(interface{ SetId(int) }); ok {
			s.SetId(id)
		}
		if s, ok := any(&marker).(interface{ MarkDestroyed() }); ok {
			s.MarkDestroyed()
		}
		out = append(out, marker)
	}
	return out
}
