package buddy

// Allocation is the caller-facing handle for one granted block: the
// block's arena offset and its actual granted size, which may exceed the
// requested byte count.
//
// A handle exclusively owns its block. Transfer ownership with Move;
// copying a handle and releasing both copies is a contract violation the
// allocator does not detect. The zero Allocation is empty and inert.
type Allocation struct {
	addr  uint64
	size  uint64
	owner *Allocator
}

// Valid reports whether the handle still owns a block.
func (a *Allocation) Valid() bool {
	return a.owner != nil
}

// Addr returns the block's offset within the arena.
func (a *Allocation) Addr() uint64 {
	return a.addr
}

// Size returns the granted block size.
func (a *Allocation) Size() uint64 {
	return a.size
}

// Bytes returns the granted memory as a slice into the arena. The slice
// is valid until the handle is released, and must be re-fetched after
// the owning allocator grows.
func (a *Allocation) Bytes() []byte {
	if a.owner == nil {
		return nil
	}
	return a.owner.mem.Bytes()[a.addr : a.addr+a.size]
}

// Release returns the block to the allocator and empties the handle.
// Releasing an empty handle is a no-op, so a deferred Release pairs
// safely with an earlier explicit one. Release never fails.
func (a *Allocation) Release() {
	if a.owner == nil {
		return
	}
	owner, addr, size := a.owner, a.addr, a.size
	a.owner, a.addr, a.size = nil, 0, 0
	owner.free(addr, size)
}

// Move transfers ownership of the block to the returned handle and
// empties the receiver.
func (a *Allocation) Move() Allocation {
	moved := *a
	a.owner, a.addr, a.size = nil, 0, 0
	return moved
}
