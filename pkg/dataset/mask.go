package dataset

import (
	"math/bits"
)

// Mask is a bit vector over row positions. Bit = 1 means the row is selected.
type Mask struct {
	words  []uint64
	length int
}

// NewMask creates a mask with all bits initially clear.
func NewMask(length int) *Mask {
	numWords := (length + 63) / 64
	return &Mask{
		words:  make([]uint64, numWords),
		length: length,
	}
}

// NewFullMask creates a mask with every row selected.
func NewFullMask(length int) *Mask {
	m := NewMask(length)
	for i := range m.words {
		m.words[i] = ^uint64(0)
	}
	if length > 0 {
		remainder := length % 64
		if remainder != 0 {
			m.words[len(m.words)-1] &= (uint64(1) << remainder) - 1
		}
	}
	return m
}

// Len returns the number of row positions the mask covers.
func (m *Mask) Len() int {
	return m.length
}

// Set selects the row at position i.
func (m *Mask) Set(i int) {
	if i < 0 || i >= m.length {
		return
	}
	m.words[i/64] |= uint64(1) << (i % 64)
}

// Clear deselects the row at position i.
func (m *Mask) Clear(i int) {
	if i < 0 || i >= m.length {
		return
	}
	m.words[i/64] &^= uint64(1) << (i % 64)
}

// IsSet reports whether the row at position i is selected.
func (m *Mask) IsSet(i int) bool {
	if i < 0 || i >= m.length {
		return false
	}
	return (m.words[i/64] & (uint64(1) << (i % 64))) != 0
}

// Count returns the number of selected rows.
func (m *Mask) Count() int {
	count := 0
	for i, word := range m.words {
		if i == len(m.words)-1 && m.length%64 != 0 {
			mask := (uint64(1) << (m.length % 64)) - 1
			count += bits.OnesCount64(word & mask)
		} else {
			count += bits.OnesCount64(word)
		}
	}
	return count
}

// And returns a new mask selecting rows selected in both m and other.
func (m *Mask) And(other *Mask) *Mask {
	length := m.length
	if other.length < length {
		length = other.length
	}
	result := NewMask(length)
	for i := range result.words {
		if i < len(m.words) && i < len(other.words) {
			result.words[i] = m.words[i] & other.words[i]
		}
	}
	return result
}

// Not returns a new mask with the selection inverted.
func (m *Mask) Not() *Mask {
	result := NewMask(m.length)
	for i := range result.words {
		result.words[i] = ^m.words[i]
	}
	if m.length > 0 {
		remainder := m.length % 64
		if remainder != 0 {
			result.words[len(result.words)-1] &= (uint64(1) << remainder) - 1
		}
	}
	return result
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	result := NewMask(m.length)
	copy(result.words, m.words)
	return result
}
