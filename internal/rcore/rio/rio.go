// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     rio
// Description: In-memory address space engine tracking virtual to physical
//              mappings
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

// Package rio keeps the virtual to physical mappings of a session. It does
// no memory I/O; it only tracks which virtual ranges are bound where.
package rio

import (
	"iter"
	"math"
	"sort"
	"sync"

	rairerror "github.com/msto63/rair/foundation/core/error"
	"github.com/msto63/rair/internal/rcore/core"
)

// Engine failures. They carry no code so each one only matches itself; the
// map commands report them under CodeMappingOperationFailure.
var (
	ErrZeroSize   = rairerror.New("Cannot map a region of size zero.").WithOperation("rio")
	ErrOutOfRange = rairerror.New("Region exceeds the 64-bit address space.").WithOperation("rio")
	ErrOverlap    = rairerror.New("Virtual region overlaps an existing mapping.").WithOperation("rio")
	ErrNotMapped  = rairerror.New("Virtual region is not mapped.").WithOperation("rio")
)

// RIO implements core.AddressSpace. Mappings are kept sorted by virtual
// address and never overlap.
type RIO struct {
	maps  []core.Mapping
	mutex sync.RWMutex
}

// New creates an empty address space
func New() *RIO {
	return &RIO{}
}

// Map binds [vir, vir+size) to [phy, phy+size)
func (r *RIO) Map(phy, vir, size uint64) error {
	if err := checkRange(phy, vir, size); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.search(vir)
	if i > 0 && end(r.maps[i-1]) > vir {
		return ErrOverlap
	}
	if i < len(r.maps) && r.maps[i].VirtAddr < vir+size {
		return ErrOverlap
	}

	r.maps = append(r.maps, core.Mapping{})
	copy(r.maps[i+1:], r.maps[i:])
	r.maps[i] = core.Mapping{VirtAddr: vir, PhyAddr: phy, Size: size}
	return nil
}

// Unmap removes [vir, vir+size). The whole range must be mapped; mappings
// only partly inside it are split.
func (r *RIO) Unmap(vir, size uint64) error {
	if err := checkRange(0, vir, size); err != nil {
		return err
	}
	last := vir + size

	r.mutex.Lock()
	defer r.mutex.Unlock()

	first := r.search(vir)
	if first > 0 && end(r.maps[first-1]) > vir {
		first--
	}

	// the range must be covered without gaps
	cursor := vir
	stop := first
	for stop < len(r.maps) && cursor < last {
		m := r.maps[stop]
		if m.VirtAddr > cursor {
			return ErrNotMapped
		}
		cursor = end(m)
		stop++
	}
	if cursor < last {
		return ErrNotMapped
	}

	var kept []core.Mapping
	for _, m := range r.maps[first:stop] {
		if m.VirtAddr < vir {
			kept = append(kept, core.Mapping{VirtAddr: m.VirtAddr, PhyAddr: m.PhyAddr, Size: vir - m.VirtAddr})
		}
		if e := end(m); e > last {
			offset := last - m.VirtAddr
			kept = append(kept, core.Mapping{VirtAddr: last, PhyAddr: m.PhyAddr + offset, Size: e - last})
		}
	}

	tail := append(kept, r.maps[stop:]...)
	r.maps = append(r.maps[:first], tail...)
	return nil
}

// Maps yields the mappings in ascending virtual address order. It iterates
// over a snapshot, so the loop body may change the address space.
func (r *RIO) Maps() iter.Seq[core.Mapping] {
	r.mutex.RLock()
	snapshot := make([]core.Mapping, len(r.maps))
	copy(snapshot, r.maps)
	r.mutex.RUnlock()

	return func(yield func(core.Mapping) bool) {
		for _, m := range snapshot {
			if !yield(m) {
				return
			}
		}
	}
}

// Len returns the number of mappings
func (r *RIO) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.maps)
}

// Reset removes every mapping
func (r *RIO) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.maps = nil
}

// search returns the index of the first mapping starting at or after vir
func (r *RIO) search(vir uint64) int {
	return sort.Search(len(r.maps), func(i int) bool {
		return r.maps[i].VirtAddr >= vir
	})
}

func checkRange(phy, vir, size uint64) error {
	if size == 0 {
		return ErrZeroSize
	}
	if phy > math.MaxUint64-size || vir > math.MaxUint64-size {
		return ErrOutOfRange
	}
	return nil
}

func end(m core.Mapping) uint64 {
	return m.VirtAddr + m.Size
}
