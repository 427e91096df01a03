package bango

// callbackEntry pairs a registered function with the id its handle refers to.
type callbackEntry[F any] struct {
	id uint32
	fn F
}

// callbackList is an ordered, id-addressed list of callbacks. Removal is by
// registration id, never by function value, so two registrations of the same
// function are independent.
type callbackList[F any] struct {
	entries []callbackEntry[F]
	nextID  uint32
}

func (l *callbackList[F]) add(fn F) CallbackHandle {
	l.nextID++
	l.entries = append(l.entries, callbackEntry[F]{id: l.nextID, fn: fn})
	return CallbackHandle{id: l.nextID, list: l}
}

// remove drops the entry with the given id. Unknown ids are ignored.
// The entry is removed from the slice to avoid nil iteration waste.
func (l *callbackList[F]) remove(id uint32) {
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			var zero callbackEntry[F]
			l.entries[len(l.entries)-1] = zero
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

func (l *callbackList[F]) has(id uint32) bool {
	for i := range l.entries {
		if l.entries[i].id == id {
			return true
		}
	}
	return false
}

func (l *callbackList[F]) len() int {
	return len(l.entries)
}

func (l *callbackList[F]) clear() {
	clear(l.entries)
	l.entries = l.entries[:0]
}

// each calls visit for every entry registered at the time of the call.
// Entries removed by an earlier callback in the same pass are skipped;
// entries added during the pass are not visited.
func (l *callbackList[F]) each(visit func(F)) {
	switch len(l.entries) {
	case 0:
		return
	case 1:
		visit(l.entries[0].fn)
		return
	}
	snapshot := make([]callbackEntry[F], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if l.has(e.id) {
			visit(e.fn)
		}
	}
}

type callbackRemover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback or event listener.
// The zero value is valid and Remove on it is a no-op.
type CallbackHandle struct {
	id   uint32
	list callbackRemover
}

// Remove unregisters this callback so it no longer fires. Calling Remove more
// than once, or after the owner was torn down, is a no-op.
func (h CallbackHandle) Remove() {
	if h.list == nil {
		return
	}
	h.list.remove(h.id)
}
