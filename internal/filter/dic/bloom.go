package dic

import (
	"github.com/spaolacci/murmur3"
)

// Filter is a bloom filter using murmur3 double hashing.
type Filter struct {
	bits []uint64
	m    uint64
	k    uint64
	keys uint64
}

// NewFilter allocates m bits (rounded up to 64) probed k times per key.
func NewFilter(m uint64, k uint64) *Filter {
	if m < 64 {
		m = 64
	}
	if k == 0 {
		k = 1
	}
	words := (m + 63) / 64
	return &Filter{
		bits: make([]uint64, words),
		m:    words * 64,
		k:    k,
	}
}

func (f *Filter) locations(data []byte) []uint64 {
	h1, h2 := murmur3.Sum128(data)
	loc := make([]uint64, f.k)
	for i := uint64(0); i < f.k; i++ {
		loc[i] = (h1 + i*h2) % f.m
	}
	return loc
}

func (f *Filter) Add(data []byte) {
	for _, l := range f.locations(data) {
		f.bits[l/64] |= 1 << (l % 64)
	}
	f.keys++
}

func (f *Filter) AddString(s string) {
	f.Add([]byte(s))
}

func (f *Filter) Test(data []byte) bool {
	for _, l := range f.locations(data) {
		if f.bits[l/64]&(1<<(l%64)) == 0 {
			return false
		}
	}
	return true
}

func (f *Filter) TestString(s string) bool {
	return f.Test([]byte(s))
}

// KeySize is the number of keys added.
func (f *Filter) KeySize() uint64 {
	return f.keys
}
