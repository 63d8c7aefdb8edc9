package internal

import (
	"encoding/binary"
	"io"
)

type poolTag byte

const (
	tagUtf8        poolTag = 1
	tagInteger     poolTag = 3
	tagClass       poolTag = 7
	tagString      poolTag = 8
	tagFieldRef    poolTag = 9
	tagMethodRef   poolTag = 10
	tagNameAndType poolTag = 12
)

// poolKey is the full identity of a constant pool entry; reference entries
// store the indices of the entries they point at.
type poolKey struct {
	tag  poolTag
	text string
	num  int32
	a, b uint16
}

// constantPool deduplicates entries: adding the same constant twice yields
// the same 1-based index.
type constantPool struct {
	index   map[poolKey]uint16
	entries []poolKey
}

func newConstantPool() *constantPool {
	return &constantPool{index: make(map[poolKey]uint16)}
}

func (cp *constantPool) getOrInsert(k poolKey) uint16 {
	if idx, ok := cp.index[k]; ok {
		return idx
	}
	cp.entries = append(cp.entries, k)
	idx := uint16(len(cp.entries))
	cp.index[k] = idx
	return idx
}

func (cp *constantPool) addUtf8(s string) uint16 {
	return cp.getOrInsert(poolKey{tag: tagUtf8, text: s})
}

func (cp *constantPool) addInteger(n int32) uint16 {
	return cp.getOrInsert(poolKey{tag: tagInteger, num: n})
}

func (cp *constantPool) addString(s string) uint16 {
	utf8 := cp.addUtf8(s)
	return cp.getOrInsert(poolKey{tag: tagString, a: utf8})
}

func (cp *constantPool) addClass(name string) uint16 {
	utf8 := cp.addUtf8(name)
	return cp.getOrInsert(poolKey{tag: tagClass, a: utf8})
}

func (cp *constantPool) addNameAndType(name, descriptor string) uint16 {
	n := cp.addUtf8(name)
	d := cp.addUtf8(descriptor)
	return cp.getOrInsert(poolKey{tag: tagNameAndType, a: n, b: d})
}

func (cp *constantPool) addMethodRef(class, method, descriptor string) uint16 {
	c := cp.addClass(class)
	nat := cp.addNameAndType(method, descriptor)
	return cp.getOrInsert(poolKey{tag: tagMethodRef, a: c, b: nat})
}

func (cp *constantPool) addFieldRef(class, field, descriptor string) uint16 {
	c := cp.addClass(class)
	nat := cp.addNameAndType(field, descriptor)
	return cp.getOrInsert(poolKey{tag: tagFieldRef, a: c, b: nat})
}

// count is the value of the class file's constant_pool_count field, which
// is one larger than the number of entries.
func (cp *constantPool) count() uint16 {
	return uint16(len(cp.entries)) + 1
}

func (cp *constantPool) write(w io.Writer) error {
	for _, e := range cp.entries {
		if err := binary.Write(w, binary.BigEndian, byte(e.tag)); err != nil {
			return err
		}
		switch e.tag {
		case tagUtf8:
			if err := binary.Write(w, binary.BigEndian, uint16(len(e.text))); err != nil {
				return err
			}
			if _, err := w.Write([]byte(e.text)); err != nil {
				return err
			}
		case tagInteger:
			if err := binary.Write(w, binary.BigEndian, e.num); err != nil {
				return err
			}
		case tagClass, tagString:
			if err := binary.Write(w, binary.BigEndian, e.a); err != nil {
				return err
			}
		case tagNameAndType, tagMethodRef, tagFieldRef:
			if err := binary.Write(w, binary.BigEndian, e.a); err != nil {
				return err
			}
			if err := binary.Write(w, binary.BigEndian, e.b); err != nil {
				return err
			}
		}
	}
	return nil
}
