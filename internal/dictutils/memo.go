// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dictutils provides the dictionary tracking state shared by the
// stream and file codecs: the assignment of dictionary ids to schema
// positions, and the accumulation of dictionary batches (including deltas)
// as they are produced or consumed.
package dictutils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Kind classifies a dictionary batch relative to what a peer has
// already seen for the same id.
type Kind int8

const (
	// KindNew is the first dictionary sent for an id.
	KindNew Kind = iota
	// KindDelta appends values to the dictionary previously sent for the id.
	KindDelta
	// KindReplacement discards the dictionary previously sent for the id.
	KindReplacement
)

// FieldPos tracks the path from the schema root to a field while
// walking a nested type tree. The zero of each level is the index of
// the child within its parent.
type FieldPos struct {
	parent *FieldPos
	index  int32
	depth  int32
}

func NewFieldPos() FieldPos { return FieldPos{index: -1} }

func (f *FieldPos) Child(index int32) FieldPos {
	return FieldPos{parent: f, index: index, depth: f.depth + 1}
}

func (f *FieldPos) Path() []int32 {
	path := make([]int32, f.depth)
	cur := f
	for i := f.depth - 1; i >= 0; i-- {
		path[i] = cur.index
		cur = cur.parent
	}
	return path
}

func pathKey(path []int32) string {
	var sb strings.Builder
	for i, p := range path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatInt(int64(p), 10))
	}
	return sb.String()
}

// PosFromPath rebuilds a FieldPos from a root-relative child index path.
func PosFromPath(path []int32) FieldPos {
	cur := NewFieldPos()
	p := &cur
	for _, idx := range path {
		next := p.Child(idx)
		p = &next
	}
	return *p
}

// Mapper assigns dictionary ids to schema positions. Ids are allocated
// in depth-first schema order starting from 0, so both peers derive the
// same assignment from the same schema and ids never appear in the
// schema metadata itself.
type Mapper struct {
	pathToID map[string]int64
	idToPath map[int64][]int32
}

func (m *Mapper) NumFields() int { return len(m.pathToID) }

func (m *Mapper) NumDicts() int {
	unique := make(map[int64]struct{}, len(m.pathToID))
	for _, id := range m.pathToID {
		unique[id] = struct{}{}
	}
	return len(unique)
}

// AddField maps the field at fieldPath to the dictionary id.
func (m *Mapper) AddField(id int64, fieldPath []int32) error {
	key := pathKey(fieldPath)
	if _, dup := m.pathToID[key]; dup {
		return fmt.Errorf("%w: field already mapped to id", arrow.ErrKey)
	}
	if m.pathToID == nil {
		m.pathToID = make(map[string]int64)
		m.idToPath = make(map[int64][]int32)
	}
	m.pathToID[key] = id
	if _, seen := m.idToPath[id]; !seen {
		m.idToPath[id] = fieldPath
	}
	return nil
}

func (m *Mapper) GetFieldID(fieldPath []int32) (int64, error) {
	id, ok := m.pathToID[pathKey(fieldPath)]
	if !ok {
		return -1, fmt.Errorf("%w: dictionary for field at %v not found", arrow.ErrKey, fieldPath)
	}
	return id, nil
}

// PathForID returns the schema path of a field encoded with the
// dictionary id. When several fields share the id, the first one
// registered is returned; they all carry the same value type.
func (m *Mapper) PathForID(id int64) ([]int32, error) {
	path, ok := m.idToPath[id]
	if !ok {
		return nil, fmt.Errorf("%w: no field mapped to dictionary id=%d", arrow.ErrKey, id)
	}
	return path, nil
}

// InsertPath assigns the next available id to the field at pos.
func (m *Mapper) InsertPath(pos FieldPos) {
	if m.pathToID == nil {
		m.pathToID = make(map[string]int64)
		m.idToPath = make(map[int64][]int32)
	}
	id := int64(len(m.pathToID))
	path := pos.Path()
	m.pathToID[pathKey(path)] = id
	if _, seen := m.idToPath[id]; !seen {
		m.idToPath[id] = path
	}
}

func (m *Mapper) ImportField(pos FieldPos, field *arrow.Field) {
	dt := field.Type
	if dt.ID() == arrow.EXTENSION {
		dt = dt.(arrow.ExtensionType).StorageType()
	}
	if dt.ID() == arrow.DICTIONARY {
		m.InsertPath(pos)
		// import the value type of a dictionary: it may itself
		// contain dictionary-encoded children.
		dt = dt.(*arrow.DictionaryType).ValueType
	}
	if nested, ok := dt.(arrow.NestedType); ok {
		m.importFields(pos, nested.Fields())
	}
}

func (m *Mapper) importFields(pos FieldPos, fields []arrow.Field) {
	for i := range fields {
		m.ImportField(pos.Child(int32(i)), &fields[i])
	}
}

func (m *Mapper) ImportSchema(schema *arrow.Schema) {
	m.pathToID = make(map[string]int64)
	m.idToPath = make(map[int64][]int32)
	m.importFields(NewFieldPos(), schema.Fields())
}

// Memo tracks the dictionaries seen for each id. On the read side a
// dictionary may arrive in several pieces (an initial batch plus
// deltas); the pieces are kept separate until the dictionary is
// requested, at which point they are concatenated once and memoized.
type Memo struct {
	Mapper Mapper

	dict2id map[arrow.ArrayData]int64
	id2dict map[int64][]arrow.ArrayData
	id2type map[int64]arrow.DataType
}

func NewMemo() Memo {
	return Memo{
		dict2id: make(map[arrow.ArrayData]int64),
		id2dict: make(map[int64][]arrow.ArrayData),
		id2type: make(map[int64]arrow.DataType),
	}
}

// Len returns the number of ids with a dictionary in the memo.
func (memo *Memo) Len() int { return len(memo.id2dict) }

func (memo *Memo) Clear() {
	for id, v := range memo.id2dict {
		delete(memo.id2dict, id)
		for _, data := range v {
			delete(memo.dict2id, data)
			data.Release()
		}
	}
}

// AddType records the value type the schema declares for a dictionary
// id. Fields sharing an id must agree on the value type.
func (memo *Memo) AddType(id int64, typ arrow.DataType) error {
	if existing, dup := memo.id2type[id]; dup && !arrow.TypeEqual(existing, typ) {
		return fmt.Errorf("%w: conflicting dictionary types for id %d", arrow.ErrInvalid, id)
	}
	memo.id2type[id] = typ
	return nil
}

func (memo *Memo) Type(id int64) (arrow.DataType, bool) {
	typ, ok := memo.id2type[id]
	return typ, ok
}

// Dict returns the dictionary for id, concatenating any accumulated
// deltas. The returned data is owned by the memo.
func (memo *Memo) Dict(id int64, mem memory.Allocator) (arrow.ArrayData, error) {
	v, ok := memo.id2dict[id]
	if !ok {
		return nil, fmt.Errorf("%w: no dictionary with id=%d", arrow.ErrKey, id)
	}
	if len(v) == 1 {
		return v[0], nil
	}
	// a delta chain: concatenate once and keep the combined result.
	chunks := make([]arrow.Array, len(v))
	for i, data := range v {
		chunks[i] = array.MakeFromData(data)
	}
	combined, err := array.Concatenate(chunks, mem)
	for _, c := range chunks {
		c.Release()
	}
	if err != nil {
		return nil, err
	}
	data := combined.Data()
	data.Retain()
	combined.Release()
	for _, old := range v {
		delete(memo.dict2id, old)
		old.Release()
	}
	memo.id2dict[id] = []arrow.ArrayData{data}
	memo.dict2id[data] = id
	return data, nil
}

func (memo *Memo) HasDict(v arrow.ArrayData) bool {
	_, ok := memo.dict2id[v]
	return ok
}

func (memo *Memo) HasID(id int64) bool {
	_, ok := memo.id2dict[id]
	return ok
}

// Add records the first dictionary for id. It panics if the id is
// already present.
func (memo *Memo) Add(id int64, v arrow.ArrayData) {
	if _, dup := memo.id2dict[id]; dup {
		panic(fmt.Errorf("ipc: duplicate id=%d", id))
	}
	v.Retain()
	memo.id2dict[id] = []arrow.ArrayData{v}
	memo.dict2id[v] = id
}

// AddDelta appends v to the dictionary already recorded for id. The
// caller must have verified the id is known.
func (memo *Memo) AddDelta(id int64, v arrow.ArrayData) {
	v.Retain()
	memo.id2dict[id] = append(memo.id2dict[id], v)
}

// AddOrReplace records v as the dictionary for id, discarding any
// previously accumulated state. It reports whether an existing
// dictionary was replaced.
func (memo *Memo) AddOrReplace(id int64, v arrow.ArrayData) bool {
	v.Retain()
	old, replaced := memo.id2dict[id]
	for _, data := range old {
		delete(memo.dict2id, data)
		data.Release()
	}
	memo.id2dict[id] = []arrow.ArrayData{v}
	memo.dict2id[v] = id
	return replaced
}

// Dict pairs a dictionary id with the dictionary data collected from a
// record column.
type Dict struct {
	ID   int64
	Data arrow.ArrayData
}

type dictCollector struct {
	dicts  []Dict
	mapper *Mapper
}

func (dc *dictCollector) visit(pos FieldPos, data arrow.ArrayData) error {
	typ := data.DataType()
	if typ.ID() == arrow.EXTENSION {
		typ = typ.(arrow.ExtensionType).StorageType()
	}
	if typ.ID() == arrow.DICTIONARY {
		id, err := dc.mapper.GetFieldID(pos.Path())
		if err != nil {
			return err
		}
		dict := data.Dictionary()
		if dict == nil {
			return fmt.Errorf("%w: dictionary-encoded column at %v has no dictionary", arrow.ErrInvalid, pos.Path())
		}
		// the dictionary values may themselves be dictionary-encoded.
		// inner dictionaries are collected first so they are written
		// before the batches whose value data references them.
		if err := dc.visitChildren(pos, dict); err != nil {
			return err
		}
		dict.Retain()
		dc.dicts = append(dc.dicts, Dict{ID: id, Data: dict})
		return nil
	}
	return dc.visitChildren(pos, data)
}

func (dc *dictCollector) visitChildren(pos FieldPos, data arrow.ArrayData) error {
	for i, c := range data.Children() {
		if err := dc.visit(pos.Child(int32(i)), c); err != nil {
			return err
		}
	}
	return nil
}

// CollectDictionaries walks the columns of rec and returns the
// dictionary data for every dictionary-encoded field, paired with the
// id the mapper assigned to its position. The returned data are
// retained; the caller releases them.
func CollectDictionaries(rec arrow.Record, mapper *Mapper) (out []Dict, err error) {
	dc := dictCollector{mapper: mapper}
	pos := NewFieldPos()
	for i, col := range rec.Columns() {
		if err = dc.visit(pos.Child(int32(i)), col.Data()); err != nil {
			for _, d := range dc.dicts {
				d.Data.Release()
			}
			return nil, err
		}
	}
	return dc.dicts, nil
}

// ResolveFieldDict attaches the memoized dictionary to every
// dictionary-encoded node reachable from data.
func ResolveFieldDict(memo *Memo, data arrow.ArrayData, pos FieldPos, mem memory.Allocator) error {
	typ := data.DataType()
	if typ.ID() == arrow.EXTENSION {
		typ = typ.(arrow.ExtensionType).StorageType()
	}
	if typ.ID() == arrow.DICTIONARY {
		id, err := memo.Mapper.GetFieldID(pos.Path())
		if err != nil {
			return err
		}
		dictData, err := memo.Dict(id, mem)
		if err != nil {
			return err
		}
		data.(*array.Data).SetDictionary(dictData)
		if err := ResolveFieldDict(memo, dictData, pos, mem); err != nil {
			return err
		}
	}
	for i, c := range data.Children() {
		if err := ResolveFieldDict(memo, c, pos.Child(int32(i)), mem); err != nil {
			return err
		}
	}
	return nil
}

// ResolveDictionaries attaches memoized dictionaries to the given
// top-level columns, recursing into nested children.
func ResolveDictionaries(memo *Memo, cols []arrow.ArrayData, parentPos FieldPos, mem memory.Allocator) error {
	for i, c := range cols {
		if c == nil {
			continue
		}
		if err := ResolveFieldDict(memo, c, parentPos.Child(int32(i)), mem); err != nil {
			return err
		}
	}
	return nil
}
