package buddy

import "encoding/binary"

// nilAddr terminates a free list. Offset 0 is a valid block address, so
// the all-ones pattern plays the role of the null link.
const nilAddr = ^uint64(0)

// linkWordSize is the number of bytes of a free block occupied by its
// intrusive next link. MinBlock can never be smaller than this.
const linkWordSize = 8

// freeList is an intrusive LIFO list of the free blocks of one size
// class. The link to the next free block lives in the first eight bytes
// of the free memory itself, so the list costs nothing beyond its head
// word. Links are block addresses (arena offsets), encoded little-endian.
//
// The list trusts its caller: push requires a currently-unowned block of
// exactly this class's size, and no bounds checking is performed.
type freeList struct {
	head uint64
}

func readLink(data []byte, addr uint64) uint64 {
	return binary.LittleEndian.Uint64(data[addr : addr+linkWordSize])
}

func writeLink(data []byte, addr, next uint64) {
	binary.LittleEndian.PutUint64(data[addr:addr+linkWordSize], next)
}

func (l *freeList) empty() bool {
	return l.head == nilAddr
}

// push makes addr the new head.
func (l *freeList) push(data []byte, addr uint64) {
	writeLink(data, addr, l.head)
	l.head = addr
}

// pop unlinks and returns the head. Requires a non-empty list.
func (l *freeList) pop(data []byte) uint64 {
	addr := l.head
	l.head = readLink(data, addr)
	return addr
}

// remove unlinks addr if present and reports whether it was found.
// Linear scan; used only by the coalescing path to claim a buddy.
func (l *freeList) remove(data []byte, addr uint64) bool {
	if l.head == nilAddr {
		return false
	}
	if l.head == addr {
		l.head = readLink(data, addr)
		return true
	}
	for prev := l.head; ; {
		next := readLink(data, prev)
		if next == nilAddr {
			return false
		}
		if next == addr {
			writeLink(data, prev, readLink(data, addr))
			return true
		}
		prev = next
	}
}

// FreeIterator walks the blocks of one free list without mutating it.
// Create a fresh iterator to restart the walk. The iterator is only
// valid until the next allocator operation.
type FreeIterator struct {
	data []byte
	addr uint64
}

func (l *freeList) blocks(data []byte) *FreeIterator {
	return &FreeIterator{data: data, addr: l.head}
}

// Next returns the next free block address, or false when the list is
// exhausted.
func (it *FreeIterator) Next() (uint64, bool) {
	if it.addr == nilAddr {
		return 0, false
	}
	addr := it.addr
	it.addr = readLink(it.data, addr)
	return addr, true
}
