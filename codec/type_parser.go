// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// TypeParser maps a 32-bit type ID (an op-code) to the decoder of the
// object registered under it.
type TypeParser[T any] struct {
	typeToIndex    map[string]uint32
	indexToDecoder map[uint32]func(*Packer) (T, error)
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		typeToIndex:    map[string]uint32{},
		indexToDecoder: map[uint32]func(*Packer) (T, error){},
	}
}

// Register adds [o] under [id]. Both the id and the Go type of [o] must be
// unique within the parser.
func (p *TypeParser[T]) Register(id uint32, o T, f func(*Packer) (T, error)) error {
	k := fmt.Sprintf("%T", o)
	if _, ok := p.typeToIndex[k]; ok {
		return fmt.Errorf("%w: type %s", ErrDuplicateItem, k)
	}
	if _, ok := p.indexToDecoder[id]; ok {
		return fmt.Errorf("%w: id %d", ErrDuplicateItem, id)
	}
	p.typeToIndex[k] = id
	p.indexToDecoder[id] = f
	return nil
}

func (p *TypeParser[T]) LookupType(o T) (uint32, func(*Packer) (T, error), bool) {
	index, ok := p.typeToIndex[fmt.Sprintf("%T", o)]
	if !ok {
		return 0, nil, false
	}
	return index, p.indexToDecoder[index], true
}

func (p *TypeParser[T]) LookupIndex(index uint32) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}

// Indexes returns every registered id in ascending order.
func (p *TypeParser[T]) Indexes() []uint32 {
	indexes := maps.Keys(p.indexToDecoder)
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	return indexes
}
