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

package ipc // import "github.com/colstream/ipc"

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/bitutil"
	"github.com/apache/arrow/go/v17/arrow/memory"
	flatbuffers "github.com/google/flatbuffers/go"
	"golang.org/x/sync/errgroup"

	"github.com/colstream/ipc/internal/dictutils"
	"github.com/colstream/ipc/internal/flatbuf"
)

// PayloadWriter is an interface for injecting a different payload writer
// than the one writing to an io.Writer with the stream framing.
type PayloadWriter interface {
	Start() error
	WritePayload(Payload) error
	Close() error
}

type swriter struct {
	w      io.Writer
	pos    int64
	legacy bool
	align  int32
}

func (w *swriter) Start() error { return nil }

func (w *swriter) Close() error {
	// end of stream marker: a 0 metadata length, preceded by the
	// continuation indicator unless writing the legacy framing.
	var eos [8]byte
	binary.LittleEndian.PutUint32(eos[:4], kIPCContToken)
	if w.legacy {
		_, err := w.Write(eos[4:])
		return err
	}
	_, err := w.Write(eos[:])
	return err
}

func (w *swriter) WritePayload(p Payload) error {
	_, err := writeIPCPayload(w, p, w.align, w.legacy)
	return err
}

func (w *swriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

// Writer is a writer for the Arrow streaming binary format.
type Writer struct {
	w io.Writer

	mem memory.Allocator
	pw  PayloadWriter

	started         bool
	schema          *arrow.Schema
	codec           flatbuf.CompressionType
	compressNP      int
	minSpaceSavings *float64
	version         MetadataVersion
	maxDepth        int64
	align           int32
	emitDictDeltas  bool
	unifyDicts      bool

	// file writers reject dictionary replacements.
	allowDictReplacement bool

	mapper           dictutils.Mapper
	lastWrittenDicts map[int64]arrow.Array

	stats Stats
}

// NewWriterWithPayloadWriter constructs a writer with a custom payload
// writer instead of the default stream framing.
func NewWriterWithPayloadWriter(pw PayloadWriter, opts ...Option) *Writer {
	cfg := newConfig(opts...)
	return &Writer{
		mem:                  cfg.alloc,
		pw:                   pw,
		schema:               cfg.schema,
		codec:                cfg.codec,
		compressNP:           cfg.compressNP,
		minSpaceSavings:      cfg.minSpaceSavings,
		version:              cfg.version,
		maxDepth:             cfg.maxRecursionDepth,
		align:                cfg.alignment,
		emitDictDeltas:       cfg.emitDictDeltas,
		unifyDicts:           cfg.unifyDicts,
		allowDictReplacement: true,
	}
}

// NewWriter returns a writer that writes records to the provided output
// stream.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cfg := newConfig(opts...)
	wr := NewWriterWithPayloadWriter(
		&swriter{w: w, legacy: cfg.legacy, align: cfg.alignment},
		opts...,
	)
	wr.w = w
	return wr
}

// Stats reports what has been written so far.
func (w *Writer) Stats() Stats { return w.stats }

func (w *Writer) Close() error {
	if !w.started {
		if err := w.start(); err != nil {
			return err
		}
	}

	if w.pw == nil {
		return nil
	}

	if err := w.pw.Close(); err != nil {
		return fmt.Errorf("ipc: could not close payload writer: %w", err)
	}
	w.pw = nil

	for _, d := range w.lastWrittenDicts {
		d.Release()
	}
	w.lastWrittenDicts = nil

	return nil
}

func (w *Writer) Write(rec arrow.Record) (err error) {
	defer func() {
		if pErr := recover(); pErr != nil {
			switch e := pErr.(type) {
			case error:
				err = fmt.Errorf("ipc: unknown error while writing: %w", e)
			default:
				err = fmt.Errorf("ipc: unknown error while writing: %v", e)
			}
		}
	}()

	if !w.started {
		if err := w.start(); err != nil {
			return err
		}
	}

	schema := rec.Schema()
	if schema == nil || !schemaEqualsModuloMetadata(schema, w.schema) {
		return errInconsistentSchema
	}

	if err := w.writeDictionaries(rec); err != nil {
		return err
	}

	var (
		data = Payload{msg: MessageRecordBatch}
		enc  = w.newEncoder()
	)
	defer data.Release()

	if err := enc.encode(&data, rec); err != nil {
		return err
	}

	w.stats.NumMessages++
	w.stats.NumRecordBatches++
	return w.pw.WritePayload(data)
}

// WriteTable writes the table out as a sequence of records of at most
// chunkSize rows.
func (w *Writer) WriteTable(tbl arrow.Table, chunkSize int64) error {
	if w.unifyDicts {
		unified, err := unifyTableDicts(w.mem, tbl)
		if err != nil {
			return err
		}
		defer unified.Release()
		tbl = unified
	}

	tr := array.NewTableReader(tbl, chunkSize)
	defer tr.Release()

	for tr.Next() {
		if err := w.Write(tr.Record()); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) newEncoder() *recordEncoder {
	enc := newRecordEncoder(w.mem, 0, w.maxDepth, true, w.codec, w.compressNP, w.minSpaceSavings)
	enc.version = w.version
	return enc
}

func (w *Writer) start() error {
	w.started = true

	switch w.version {
	case MetadataV4, MetadataV5:
	default:
		return fmt.Errorf("%w: can only write metadata versions 4 and 5, got %v", arrow.ErrInvalid, w.version)
	}
	if err := validateCodec(w.codec); err != nil {
		return err
	}
	if err := validateAlignment(w.align); err != nil {
		return err
	}
	if w.schema == nil {
		return fmt.Errorf("%w: writer must be created with a schema (use WithSchema)", arrow.ErrInvalid)
	}

	w.mapper.ImportSchema(w.schema)
	w.lastWrittenDicts = make(map[int64]arrow.Array)

	if err := w.pw.Start(); err != nil {
		return err
	}

	ps := payloadsFromSchema(w.schema, w.mem, &w.mapper, w.version)
	defer ps.Release()

	for _, data := range ps {
		if err := w.pw.WritePayload(data); err != nil {
			return err
		}
		w.stats.NumMessages++
	}

	return nil
}

func (w *Writer) writeDictionaries(rec arrow.Record) error {
	dicts, err := dictutils.CollectDictionaries(rec, &w.mapper)
	if err != nil {
		return err
	}
	defer func() {
		for _, d := range dicts {
			d.Data.Release()
		}
	}()

	for _, pair := range dicts {
		dict := array.MakeFromData(pair.Data)

		var (
			last, exists = w.lastWrittenDicts[pair.ID]
			isDelta      = false
			emit         = true
		)
		if exists {
			switch {
			case last.Data() == pair.Data:
				// same data object: nothing new to write
				emit = false
			case array.Equal(last, dict):
				emit = false
			case w.emitDictDeltas && !hasNestedDicts(dict.DataType()) && last.Len() < dict.Len():
				prefix := array.NewSlice(dict, 0, int64(last.Len()))
				isDelta = array.Equal(last, prefix)
				prefix.Release()
			}
			// the file format indexes dictionary blocks by id with no
			// notion of ordering, so neither replacements nor deltas can
			// be represented there.
			if emit && !w.allowDictReplacement {
				dict.Release()
				return fmt.Errorf("%w: a dictionary changed between record batches; "+
					"the Arrow file format supports only a single dictionary per field",
					arrow.ErrInvalid)
			}
		}

		if !emit {
			dict.Release()
			continue
		}

		var data Payload
		enc := w.newEncoder()
		emitted := dict
		if isDelta {
			emitted = array.NewSlice(dict, int64(last.Len()), int64(dict.Len()))
		}
		err := enc.encodeDictionary(&data, pair.ID, isDelta, emitted)
		if isDelta {
			emitted.Release()
		}
		if err != nil {
			data.Release()
			dict.Release()
			return err
		}

		if err := w.pw.WritePayload(data); err != nil {
			data.Release()
			dict.Release()
			return err
		}
		data.Release()

		w.stats.NumMessages++
		w.stats.NumDictionaryBatches++
		switch {
		case isDelta:
			w.stats.NumDictionaryDeltas++
		case exists:
			w.stats.NumReplacedDictionaries++
		}

		if last != nil {
			last.Release()
		}
		w.lastWrittenDicts[pair.ID] = dict
	}

	return nil
}

func schemaEqualsModuloMetadata(a, b *arrow.Schema) bool {
	if a.NumFields() != b.NumFields() {
		return false
	}
	for i := 0; i < a.NumFields(); i++ {
		af, bf := a.Field(i), b.Field(i)
		if af.Name != bf.Name || af.Nullable != bf.Nullable || !arrow.TypeEqual(af.Type, bf.Type) {
			return false
		}
	}
	return true
}

func hasNestedDicts(dt arrow.DataType) bool {
	if dict, ok := dt.(*arrow.DictionaryType); ok {
		dt = dict.ValueType
	}
	nested, ok := dt.(arrow.NestedType)
	if !ok {
		return false
	}
	for _, f := range nested.Fields() {
		if f.Type.ID() == arrow.DICTIONARY || hasNestedDicts(f.Type) {
			return true
		}
	}
	return false
}

// unifyTableDicts rewrites the dictionary-encoded columns of a table so
// that all chunks of a column share a single dictionary.
func unifyTableDicts(mem memory.Allocator, tbl arrow.Table) (arrow.Table, error) {
	schema := tbl.Schema()
	cols := make([]arrow.Column, tbl.NumCols())
	defer func() {
		for i := range cols {
			cols[i].Release()
		}
	}()

	for i := 0; i < int(tbl.NumCols()); i++ {
		chunked := tbl.Column(i).Data()
		dictType, ok := schema.Field(i).Type.(*arrow.DictionaryType)
		switch {
		case !ok:
			if hasNestedDicts(schema.Field(i).Type) {
				return nil, fmt.Errorf("%w: unification of nested dictionaries", arrow.ErrNotImplemented)
			}
			chunked.Retain()
			cols[i] = *arrow.NewColumn(schema.Field(i), chunked)
			continue
		case len(chunked.Chunks()) <= 1:
			chunked.Retain()
			cols[i] = *arrow.NewColumn(schema.Field(i), chunked)
			continue
		}

		unified, err := unifyChunkedDicts(mem, dictType, chunked)
		if err != nil {
			return nil, err
		}
		cols[i] = *arrow.NewColumn(schema.Field(i), unified)
		unified.Release()
	}

	return array.NewTable(schema, cols, tbl.NumRows()), nil
}

func unifyChunkedDicts(mem memory.Allocator, dictType *arrow.DictionaryType, chunked *arrow.Chunked) (*arrow.Chunked, error) {
	unifier, err := array.NewDictionaryUnifier(mem, dictType.ValueType)
	if err != nil {
		return nil, err
	}
	defer unifier.Release()

	transposes := make([]*memory.Buffer, len(chunked.Chunks()))
	defer func() {
		for _, t := range transposes {
			if t != nil {
				t.Release()
			}
		}
	}()

	for i, chunk := range chunked.Chunks() {
		dictArr, ok := chunk.(*array.Dictionary)
		if !ok {
			return nil, fmt.Errorf("%w: unification of %s column chunks", arrow.ErrInvalid, chunk.DataType())
		}
		transposes[i], err = unifier.UnifyAndTranspose(dictArr.Dictionary())
		if err != nil {
			return nil, err
		}
	}

	unifiedDict, err := unifier.GetResultWithIndexType(dictType.IndexType)
	if err != nil {
		return nil, err
	}
	defer unifiedDict.Release()

	chunks := make([]arrow.Array, len(chunked.Chunks()))
	defer func() {
		for _, c := range chunks {
			if c != nil {
				c.Release()
			}
		}
	}()
	for i, chunk := range chunked.Chunks() {
		dictArr := chunk.(*array.Dictionary)
		transposed := arrow.Int32Traits.CastFromBytes(transposes[i].Bytes())
		chunks[i], err = transposeDictIndices(mem, dictType, dictArr, unifiedDict, transposed)
		if err != nil {
			return nil, err
		}
	}

	return arrow.NewChunked(dictType, chunks), nil
}

// transposeDictIndices remaps the indices of a dictionary array onto the
// unified dictionary.
func transposeDictIndices(mem memory.Allocator, dictType *arrow.DictionaryType, arr *array.Dictionary, dict arrow.Array, transpose []int32) (arrow.Array, error) {
	idxBldr := array.NewBuilder(mem, dictType.IndexType)
	defer idxBldr.Release()

	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			idxBldr.AppendNull()
			continue
		}
		old := arr.GetValueIndex(i)
		if old < 0 || old >= len(transpose) {
			return nil, fmt.Errorf("%w: dictionary index %d out of range", arrow.ErrInvalid, old)
		}
		if err := appendDictIndex(idxBldr, int64(transpose[old])); err != nil {
			return nil, err
		}
	}

	indices := idxBldr.NewArray()
	defer indices.Release()

	return array.NewDictionaryArray(dictType, indices, dict), nil
}

func appendDictIndex(bldr array.Builder, idx int64) error {
	switch b := bldr.(type) {
	case *array.Int8Builder:
		b.Append(int8(idx))
	case *array.Int16Builder:
		b.Append(int16(idx))
	case *array.Int32Builder:
		b.Append(int32(idx))
	case *array.Int64Builder:
		b.Append(idx)
	case *array.Uint8Builder:
		b.Append(uint8(idx))
	case *array.Uint16Builder:
		b.Append(uint16(idx))
	case *array.Uint32Builder:
		b.Append(uint32(idx))
	case *array.Uint64Builder:
		b.Append(uint64(idx))
	default:
		return fmt.Errorf("%w: invalid dictionary index builder %T", arrow.ErrInvalid, bldr)
	}
	return nil
}

type recordEncoder struct {
	mem memory.Allocator

	fields []fieldMetadata
	meta   []bufferMetadata

	depth           int64
	start           int64
	allow64b        bool
	codec           flatbuf.CompressionType
	compressNP      int
	minSpaceSavings *float64
	version         MetadataVersion
}

func newRecordEncoder(mem memory.Allocator, startOffset, maxDepth int64, allow64b bool, codec flatbuf.CompressionType, compressNP int, minSpaceSavings *float64) *recordEncoder {
	return &recordEncoder{
		mem:             mem,
		start:           startOffset,
		depth:           maxDepth,
		allow64b:        allow64b,
		codec:           codec,
		compressNP:      compressNP,
		minSpaceSavings: minSpaceSavings,
		version:         currentMetadataVersion,
	}
}

func (w *recordEncoder) reset() {
	w.fields = nil
	w.meta = nil
}

func (w *recordEncoder) compressBodyBuffers(p *Payload) error {
	compress := func(idx int, codec compressor) error {
		if p.body[idx] == nil {
			return nil
		}
		raw := p.body[idx]

		compressed := memory.NewResizableBuffer(w.mem)
		compressed.Resize(codec.MaxCompressedLen(raw.Len()) + arrow.Int64SizeBytes)
		bw := &bufferWriter{buf: compressed, pos: arrow.Int64SizeBytes}

		codec.Reset(bw)
		if _, err := codec.Write(raw.Bytes()); err != nil {
			compressed.Release()
			return err
		}
		if err := codec.Close(); err != nil {
			compressed.Release()
			return err
		}
		compressed.Resize(bw.pos)
		binary.LittleEndian.PutUint64(compressed.Bytes(), uint64(raw.Len()))

		if w.minSpaceSavings != nil && raw.Len() > 0 {
			savings := 1.0 - float64(compressed.Len()-arrow.Int64SizeBytes)/float64(raw.Len())
			if savings < *w.minSpaceSavings {
				// not worth keeping: store the bytes as-is, flagged by a
				// length prefix of -1.
				compressed.Resize(raw.Len() + arrow.Int64SizeBytes)
				copy(compressed.Bytes()[arrow.Int64SizeBytes:], raw.Bytes())
				binary.LittleEndian.PutUint64(compressed.Bytes(), ^uint64(0))
			}
		}

		raw.Release()
		p.body[idx] = compressed
		return nil
	}

	if w.compressNP <= 1 {
		codec := getCompressor(w.codec)
		for idx := range p.body {
			if err := compress(idx, codec); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		g      errgroup.Group
		codecs = sync.Pool{New: func() interface{} { return getCompressor(w.codec) }}
	)
	g.SetLimit(w.compressNP)
	for idx := range p.body {
		idx := idx
		g.Go(func() error {
			codec := codecs.Get().(compressor)
			defer codecs.Put(codec)
			return compress(idx, codec)
		})
	}
	return g.Wait()
}

func (w *recordEncoder) encode(p *Payload, rec arrow.Record) error {
	if err := w.checkMinSpaceSavings(); err != nil {
		return err
	}

	p.msg = MessageRecordBatch
	w.reset()

	for i, col := range rec.Columns() {
		if err := w.visit(p, col); err != nil {
			return fmt.Errorf("ipc: could not encode column %d (%q): %w", i, rec.ColumnName(i), err)
		}
	}

	if err := w.encodeBody(p); err != nil {
		return err
	}
	return w.encodeMetadata(p, rec.NumRows())
}

func (w *recordEncoder) encodeDictionary(p *Payload, id int64, isDelta bool, dict arrow.Array) error {
	if err := w.checkMinSpaceSavings(); err != nil {
		return err
	}

	p.msg = MessageDictionaryBatch
	w.reset()

	if err := w.visit(p, dict); err != nil {
		return fmt.Errorf("ipc: could not encode dictionary id=%d: %w", id, err)
	}
	if err := w.encodeBody(p); err != nil {
		return err
	}

	b := flatbuffers.NewBuilder(0)
	recFB := w.recordBatchFB(b, int64(dict.Len()))
	flatbuf.DictionaryBatchStart(b)
	flatbuf.DictionaryBatchAddId(b, id)
	flatbuf.DictionaryBatchAddData(b, recFB)
	flatbuf.DictionaryBatchAddIsDelta(b, isDelta)
	dictFB := flatbuf.DictionaryBatchEnd(b)

	p.meta = writeMessageFB(b, w.mem, flatbuf.MessageHeaderDictionaryBatch, dictFB, p.size, w.version)
	return nil
}

func (w *recordEncoder) checkMinSpaceSavings() error {
	if w.minSpaceSavings != nil {
		if pct := *w.minSpaceSavings; pct < 0 || pct > 1 {
			return fmt.Errorf("%w: minSpaceSavings not in range [0,1]: %v", arrow.ErrInvalid, pct)
		}
	}
	return nil
}

// encodeBody compresses the collected buffers if requested, and lays
// them out, 8-byte aligned, relative to the start of the body.
func (w *recordEncoder) encodeBody(p *Payload) error {
	if w.codec != -1 {
		if err := w.compressBodyBuffers(p); err != nil {
			return err
		}
	}

	offset := w.start
	w.meta = make([]bufferMetadata, len(p.body))
	for i, buf := range p.body {
		var size int64
		if buf != nil {
			size = int64(buf.Len())
		}
		padding := bitutil.CeilByte64(size) - size
		w.meta[i] = bufferMetadata{Offset: offset, Len: size}
		offset += size + padding
	}
	p.size = offset - w.start

	return nil
}

func (w *recordEncoder) recordBatchFB(b *flatbuffers.Builder, nrows int64) flatbuffers.UOffsetT {
	flatbuf.RecordBatchStartNodesVector(b, len(w.fields))
	for i := len(w.fields) - 1; i >= 0; i-- {
		fm := w.fields[i]
		flatbuf.CreateFieldNode(b, fm.Len, fm.Nulls)
	}
	nodesFB := b.EndVector(len(w.fields))

	flatbuf.RecordBatchStartBuffersVector(b, len(w.meta))
	for i := len(w.meta) - 1; i >= 0; i-- {
		bufm := w.meta[i]
		flatbuf.CreateBuffer(b, bufm.Offset, bufm.Len)
	}
	buffersFB := b.EndVector(len(w.meta))

	var compressFB flatbuffers.UOffsetT
	if w.codec != -1 {
		flatbuf.BodyCompressionStart(b)
		flatbuf.BodyCompressionAddCodec(b, w.codec)
		flatbuf.BodyCompressionAddMethod(b, flatbuf.BodyCompressionMethodBUFFER)
		compressFB = flatbuf.BodyCompressionEnd(b)
	}

	flatbuf.RecordBatchStart(b)
	flatbuf.RecordBatchAddLength(b, nrows)
	flatbuf.RecordBatchAddNodes(b, nodesFB)
	flatbuf.RecordBatchAddBuffers(b, buffersFB)
	if compressFB != 0 {
		flatbuf.RecordBatchAddCompression(b, compressFB)
	}
	return flatbuf.RecordBatchEnd(b)
}

func (w *recordEncoder) encodeMetadata(p *Payload, nrows int64) error {
	b := flatbuffers.NewBuilder(0)
	recFB := w.recordBatchFB(b, nrows)
	p.meta = writeMessageFB(b, w.mem, flatbuf.MessageHeaderRecordBatch, recFB, p.size, w.version)
	return nil
}

func (w *recordEncoder) visit(p *Payload, arr arrow.Array) error {
	if w.depth <= 0 {
		return errMaxRecursion
	}

	if w.version < MetadataV5 {
		switch arr.DataType().ID() {
		case arrow.LARGE_BINARY, arrow.LARGE_STRING, arrow.LARGE_LIST:
			return fmt.Errorf("%w: metadata version V4 does not support the large types", arrow.ErrInvalid)
		}
	}

	switch arr.DataType().ID() {
	case arrow.EXTENSION:
		return w.visit(p, arr.(array.ExtensionArray).Storage())
	case arrow.DICTIONARY:
		// only the indices travel with the record batch; the dictionary
		// itself is written in separate dictionary batches.
		return w.visit(p, arr.(*array.Dictionary).Indices())
	}

	// add a field node for this array
	w.fields = append(w.fields, fieldMetadata{
		Len:    int64(arr.Len()),
		Nulls:  int64(arr.NullN()),
		Offset: 0,
	})

	if arr.DataType().ID() == arrow.NULL {
		// null arrays carry no buffers
		return nil
	}

	switch arr.DataType().ID() {
	case arrow.SPARSE_UNION, arrow.DENSE_UNION:
		// unions have no validity bitmap
	default:
		switch {
		case arr.NullN() > 0:
			data := arr.Data()
			bitmap := newTruncatedBitmap(w.mem, int64(data.Offset()), int64(arr.Len()), data.Buffers()[0])
			p.body = append(p.body, bitmap)
		default:
			p.body = append(p.body, nil)
		}
	}

	switch dtype := arr.DataType().(type) {
	case *arrow.BooleanType:
		var data *memory.Buffer
		if buf := arr.Data().Buffers()[1]; buf != nil {
			data = newTruncatedBitmap(w.mem, int64(arr.Data().Offset()), int64(arr.Len()), buf)
		}
		p.body = append(p.body, data)

	case *arrow.BinaryType:
		arr := arr.(*array.Binary)
		voffsets, err := w.getZeroBasedValueOffsets(arr)
		if err != nil {
			return err
		}
		var beg, end int64
		if voffsets != nil {
			offsets := arr.ValueOffsets()
			beg, end = int64(offsets[0]), int64(offsets[len(offsets)-1])
		}
		p.body = append(p.body, voffsets)
		p.body = append(p.body, w.valuesBuffer(arr.Data(), voffsets != nil, beg, end))

	case *arrow.StringType:
		arr := arr.(*array.String)
		voffsets, err := w.getZeroBasedValueOffsets(arr)
		if err != nil {
			return err
		}
		var beg, end int64
		if voffsets != nil {
			beg, end = int64(arr.ValueOffset(0)), int64(arr.ValueOffset(arr.Len()))
		}
		p.body = append(p.body, voffsets)
		p.body = append(p.body, w.valuesBuffer(arr.Data(), voffsets != nil, beg, end))

	case *arrow.LargeBinaryType:
		arr := arr.(*array.LargeBinary)
		voffsets, err := w.getZeroBasedValueOffsets(arr)
		if err != nil {
			return err
		}
		var beg, end int64
		if voffsets != nil {
			offsets := arr.ValueOffsets()
			beg, end = offsets[0], offsets[len(offsets)-1]
		}
		p.body = append(p.body, voffsets)
		p.body = append(p.body, w.valuesBuffer(arr.Data(), voffsets != nil, beg, end))

	case *arrow.LargeStringType:
		arr := arr.(*array.LargeString)
		voffsets, err := w.getZeroBasedValueOffsets(arr)
		if err != nil {
			return err
		}
		var beg, end int64
		if voffsets != nil {
			beg, end = arr.ValueOffset(0), arr.ValueOffset(arr.Len())
		}
		p.body = append(p.body, voffsets)
		p.body = append(p.body, w.valuesBuffer(arr.Data(), voffsets != nil, beg, end))

	case arrow.FixedWidthDataType:
		data := arr.Data()
		values := data.Buffers()[1]
		typeWidth := int64(dtype.BitWidth() / 8)
		minLength := paddedLength(int64(arr.Len())*typeWidth, kArrowAlignment)

		switch {
		case values == nil:
			p.body = append(p.body, values)
		case data.Offset() != 0 || minLength < int64(values.Len()):
			// non-zero offset: slice the buffer
			offset := int64(data.Offset()) * typeWidth
			length := minI64(bitutil.CeilByte64(int64(arr.Len())*typeWidth), int64(values.Len())-offset)
			p.body = append(p.body, memory.SliceBuffer(values, int(offset), int(length)))
		default:
			values.Retain()
			p.body = append(p.body, values)
		}

	case *arrow.ListType:
		return w.visitVarLenList(p, arr.(array.ListLike))

	case *arrow.LargeListType:
		return w.visitVarLenList(p, arr.(array.ListLike))

	case *arrow.MapType:
		return w.visitVarLenList(p, arr.(array.ListLike))

	case *arrow.FixedSizeListType:
		arr := arr.(*array.FixedSizeList)
		size := int64(dtype.Len())
		beg := int64(arr.Offset()) * size
		end := int64(arr.Offset()+arr.Len()) * size

		values := array.NewSlice(arr.ListValues(), beg, end)
		defer values.Release()

		w.depth--
		err := w.visit(p, values)
		w.depth++
		if err != nil {
			return err
		}

	case *arrow.StructType:
		arr := arr.(*array.Struct)
		w.depth--
		for i := 0; i < arr.NumField(); i++ {
			fld := arr.Field(i)
			if arr.Offset() != 0 || arr.Len() != fld.Len() {
				sliced := array.NewSlice(fld, int64(arr.Offset()), int64(arr.Offset()+arr.Len()))
				err := w.visit(p, sliced)
				sliced.Release()
				if err != nil {
					w.depth++
					return err
				}
				continue
			}
			if err := w.visit(p, fld); err != nil {
				w.depth++
				return err
			}
		}
		w.depth++

	case *arrow.SparseUnionType:
		arr := arr.(*array.SparseUnion)
		data := arr.Data()
		p.body = append(p.body, w.truncatedBuffer(data.Buffers()[1], int64(data.Offset()), int64(arr.Len()), 1))

		w.depth--
		for i := 0; i < arr.NumFields(); i++ {
			fld := arr.Field(i)
			if data.Offset() != 0 || arr.Len() != fld.Len() {
				sliced := array.NewSlice(fld, int64(data.Offset()), int64(data.Offset()+arr.Len()))
				err := w.visit(p, sliced)
				sliced.Release()
				if err != nil {
					w.depth++
					return err
				}
				continue
			}
			if err := w.visit(p, fld); err != nil {
				w.depth++
				return err
			}
		}
		w.depth++

	case *arrow.DenseUnionType:
		arr := arr.(*array.DenseUnion)
		data := arr.Data()
		p.body = append(p.body, w.truncatedBuffer(data.Buffers()[1], int64(data.Offset()), int64(arr.Len()), 1))
		// the value offsets keep referring to the unsliced children, so
		// the children are written whole.
		p.body = append(p.body, w.truncatedBuffer(data.Buffers()[2], int64(data.Offset()), int64(arr.Len()), arrow.Int32SizeBytes))

		w.depth--
		for i := 0; i < arr.NumFields(); i++ {
			if err := w.visit(p, arr.Field(i)); err != nil {
				w.depth++
				return err
			}
		}
		w.depth++

	default:
		return fmt.Errorf("%w: data type %v", arrow.ErrNotImplemented, dtype)
	}

	return nil
}

// valuesBuffer slices the values buffer of a binary-like array down to
// the range [beg, end) actually referenced by its offsets.
func (w *recordEncoder) valuesBuffer(data arrow.ArrayData, hasOffsets bool, beg, end int64) *memory.Buffer {
	values := data.Buffers()[2]
	if values == nil {
		return nil
	}
	if !hasOffsets {
		values.Retain()
		return values
	}
	if beg != 0 || end != int64(values.Len()) {
		return memory.SliceBuffer(values, int(beg), int(end-beg))
	}
	values.Retain()
	return values
}

// truncatedBuffer slices a fixed-stride buffer to the window starting at
// offset, retaining it untouched when no truncation applies.
func (w *recordEncoder) truncatedBuffer(buf *memory.Buffer, offset, length int64, stride int) *memory.Buffer {
	if buf == nil {
		return nil
	}
	beg := offset * int64(stride)
	n := length * int64(stride)
	if beg != 0 || n < int64(buf.Len()) {
		return memory.SliceBuffer(buf, int(beg), int(n))
	}
	buf.Retain()
	return buf
}

func (w *recordEncoder) visitVarLenList(p *Payload, arr array.ListLike) error {
	voffsets, err := w.getZeroBasedValueOffsets(arr)
	if err != nil {
		return err
	}
	p.body = append(p.body, voffsets)

	w.depth--
	defer func() { w.depth++ }()

	var (
		values      = arr.ListValues()
		mustRelease = false
	)
	if arr.Len() > 0 && voffsets != nil {
		beg, _ := arr.ValueOffsets(0)
		_, end := arr.ValueOffsets(arr.Len() - 1)
		if beg != 0 || end != int64(values.Len()) {
			values = array.NewSlice(values, beg, end)
			mustRelease = true
		}
	}
	err = w.visit(p, values)
	if mustRelease {
		values.Release()
	}
	return err
}

func (w *recordEncoder) getZeroBasedValueOffsets(arr arrow.Array) (*memory.Buffer, error) {
	data := arr.Data()
	voffsets := data.Buffers()[1]
	if voffsets == nil || voffsets.Len() == 0 {
		return nil, nil
	}

	offsetByteWidth := int64(arrow.Int32SizeBytes)
	switch data.DataType().ID() {
	case arrow.LARGE_BINARY, arrow.LARGE_STRING, arrow.LARGE_LIST:
		offsetByteWidth = int64(arrow.Int64SizeBytes)
	}
	if offsetByteWidth == int64(arrow.Int64SizeBytes) && !w.allow64b {
		return nil, fmt.Errorf("%w: 64-bit value offsets", arrow.ErrNotImplemented)
	}

	required := offsetByteWidth * int64(arr.Len()+1)
	switch {
	case data.Offset() != 0 || required < int64(voffsets.Len()):
		// if we have a non-zero offset, the value offsets do not start
		// at zero: rebase them on zero and drop the values outside the
		// slice.
		shifted := memory.NewResizableBuffer(w.mem)
		shifted.Resize(int(required))
		switch offsetByteWidth {
		case int64(arrow.Int32SizeBytes):
			dest := arrow.Int32Traits.CastFromBytes(shifted.Bytes())
			offsets := arrow.Int32Traits.CastFromBytes(voffsets.Bytes())[data.Offset() : data.Offset()+arr.Len()+1]
			start := offsets[0]
			for i, o := range offsets {
				dest[i] = o - start
			}
		default:
			dest := arrow.Int64Traits.CastFromBytes(shifted.Bytes())
			offsets := arrow.Int64Traits.CastFromBytes(voffsets.Bytes())[data.Offset() : data.Offset()+arr.Len()+1]
			start := offsets[0]
			for i, o := range offsets {
				dest[i] = o - start
			}
		}
		voffsets = shifted
	default:
		voffsets.Retain()
	}

	return voffsets, nil
}

func newTruncatedBitmap(mem memory.Allocator, offset, length int64, input *memory.Buffer) *memory.Buffer {
	if input == nil {
		return nil
	}

	minLength := paddedLength(bitutil.BytesForBits(length), kArrowAlignment)
	switch {
	case offset != 0 || minLength < int64(input.Len()):
		// with a sliced array / non-zero offset, we must copy the bitmap
		// so we do not write out unwanted bytes.
		buf := memory.NewResizableBuffer(mem)
		buf.Resize(int(minLength))
		bitutil.CopyBitmap(input.Bytes(), int(offset), int(length), buf.Bytes(), 0)
		return buf
	default:
		input.Retain()
		return input
	}
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
