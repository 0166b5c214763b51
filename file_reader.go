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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/endian"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/colstream/ipc/internal/dictutils"
	"github.com/colstream/ipc/internal/flatbuf"
)

// FileReader is an Arrow file reader.
type FileReader struct {
	r ReadAtSeeker

	footer struct {
		offset int64
		buffer *memory.Buffer
		data   *flatbuf.Footer
	}

	// guards the one-time load of the dictionary batches.
	loadDictsOnce sync.Once
	loadDictsErr  error

	memo   dictutils.Memo
	schema *arrow.Schema
	record arrow.Record

	irec  int   // current record index for sequential Read calls
	anext int64 // next record index handed out by AsyncNext.
	err   error

	mem memory.Allocator

	swapEndianness bool
	includedFields []int
	maxDepth       int64
	version        MetadataVersion

	stats Stats
}

// NewFileReader opens an Arrow file using the provided reader r.
func NewFileReader(r ReadAtSeeker, opts ...Option) (*FileReader, error) {
	var (
		cfg = newConfig(opts...)
		err error

		f = FileReader{
			r:              r,
			memo:           dictutils.NewMemo(),
			mem:            cfg.alloc,
			includedFields: cfg.includedFields,
			maxDepth:       cfg.maxRecursionDepth,
		}
	)

	if cfg.footer.offset <= 0 {
		cfg.footer.offset, err = r.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("ipc: could retrieve footer offset: %w", err)
		}
	}
	f.footer.offset = cfg.footer.offset

	err = f.readFooter()
	if err != nil {
		return nil, fmt.Errorf("ipc: could not decode footer: %w", err)
	}

	err = f.readSchema(cfg.schema, cfg.ensureNativeEndian)
	if err != nil {
		return nil, fmt.Errorf("ipc: could not decode schema: %w", err)
	}

	return &f, err
}

func (f *FileReader) readFooter() error {
	var err error

	if f.footer.offset <= int64(len(Magic)*2+4) {
		return fmt.Errorf("ipc: file too small (size=%d)", f.footer.offset)
	}

	eof := int64(len(Magic) + 4)
	buf := make([]byte, eof)
	n, err := f.r.ReadAt(buf, f.footer.offset-eof)
	if err != nil {
		return fmt.Errorf("ipc: could not read footer: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("ipc: could not read %d bytes from end of file", len(buf))
	}

	if !bytes.Equal(buf[4:], Magic) {
		return errNotArrowFile
	}

	size := int64(binary.LittleEndian.Uint32(buf[:4]))
	if size <= 0 || size+int64(len(Magic)*2+4) > f.footer.offset {
		return errInconsistentFileMetadata
	}

	buf = make([]byte, size)
	n, err = f.r.ReadAt(buf, f.footer.offset-size-eof)
	if err != nil {
		return fmt.Errorf("ipc: could not read footer data: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("ipc: could not read %d bytes from footer data", len(buf))
	}

	f.footer.buffer = memory.NewBufferBytes(buf)
	f.footer.data = flatbuf.GetRootAsFooter(buf, 0)
	return checkFBVersion(f.footer.data.Version())
}

func (f *FileReader) readSchema(schema *arrow.Schema, ensureNativeEndian bool) error {
	var err error
	f.version = MetadataVersion(f.footer.data.Version())

	schemaFB := f.footer.data.Schema(nil)
	if schemaFB == nil {
		return fmt.Errorf("%w: could not load schema from flatbuffer data", arrow.ErrInvalid)
	}
	f.schema, err = schemaFromFB(schemaFB, &f.memo)
	if err != nil {
		return fmt.Errorf("%w: could not read schema: %w", arrow.ErrInvalid, err)
	}

	if schema != nil && !schema.Equal(f.schema) {
		return fmt.Errorf("%w: tried to read file with different schema", arrow.ErrInvalid)
	}

	if ensureNativeEndian && !f.schema.IsNativeEndian() {
		f.swapEndianness = true
		f.schema = f.schema.WithEndianness(endian.NativeEndian)
	}

	return nil
}

func (f *FileReader) block(i int) (fileBlock, error) {
	var blk flatbuf.Block
	if !f.footer.data.RecordBatches(&blk, i) {
		return fileBlock{}, fmt.Errorf("%w: could not extract file block %d", arrow.ErrInvalid, i)
	}

	return fileBlock{
		Offset: blk.Offset(),
		Meta:   blk.MetaDataLength(),
		Body:   blk.BodyLength(),
		r:      f.r,
	}, nil
}

func (f *FileReader) dict(i int) (fileBlock, error) {
	var blk flatbuf.Block
	if !f.footer.data.Dictionaries(&blk, i) {
		return fileBlock{}, fmt.Errorf("%w: could not extract dictionary block %d", arrow.ErrInvalid, i)
	}

	return fileBlock{
		Offset: blk.Offset(),
		Meta:   blk.MetaDataLength(),
		Body:   blk.BodyLength(),
		r:      f.r,
	}, nil
}

func (f *FileReader) Schema() *arrow.Schema {
	return f.schema
}

func (f *FileReader) NumDictionaries() int {
	if f.footer.data == nil {
		return 0
	}
	return f.footer.data.DictionariesLength()
}

func (f *FileReader) NumRecords() int {
	return f.footer.data.RecordBatchesLength()
}

func (f *FileReader) Version() MetadataVersion {
	return f.version
}

// Metadata returns the custom metadata attached to the file footer.
func (f *FileReader) Metadata() arrow.Metadata {
	if f.footer.data == nil {
		return arrow.Metadata{}
	}
	var (
		keys = make([]string, 0, f.footer.data.CustomMetadataLength())
		vals = make([]string, 0, f.footer.data.CustomMetadataLength())
		kv   flatbuf.KeyValue
	)
	for i := 0; i < f.footer.data.CustomMetadataLength(); i++ {
		if !f.footer.data.CustomMetadata(&kv, i) {
			continue
		}
		keys = append(keys, string(kv.Key()))
		vals = append(vals, string(kv.Value()))
	}
	return arrow.NewMetadata(keys, vals)
}

// Stats reports what has been read from the file so far. It is safe to
// call while records are being read concurrently.
func (f *FileReader) Stats() Stats {
	return Stats{
		NumMessages:             atomic.LoadInt64(&f.stats.NumMessages),
		NumRecordBatches:        atomic.LoadInt64(&f.stats.NumRecordBatches),
		NumDictionaryBatches:    atomic.LoadInt64(&f.stats.NumDictionaryBatches),
		NumDictionaryDeltas:     atomic.LoadInt64(&f.stats.NumDictionaryDeltas),
		NumReplacedDictionaries: atomic.LoadInt64(&f.stats.NumReplacedDictionaries),
	}
}

// Close cleans up resources used by the File.
// Close does not close the underlying reader.
func (f *FileReader) Close() error {
	if f.footer.buffer != nil {
		f.footer.buffer.Release()
		f.footer.buffer = nil
	}
	if f.record != nil {
		f.record.Release()
		f.record = nil
	}
	f.memo.Clear()
	return nil
}

// loadDictionaries reads all dictionary batches referenced by the
// footer and reifies any delta chains, so subsequent record loads can
// run concurrently against a read-only memo.
func (f *FileReader) loadDictionaries() error {
	f.loadDictsOnce.Do(func() {
		f.loadDictsErr = f.doLoadDictionaries()
	})
	return f.loadDictsErr
}

func (f *FileReader) doLoadDictionaries() error {
	ids := make(map[int64]struct{})
	for i := 0; i < f.NumDictionaries(); i++ {
		blk, err := f.dict(i)
		if err != nil {
			return err
		}

		msg, err := blk.NewMessage()
		if err != nil {
			return err
		}

		if msg.Type() != MessageDictionaryBatch {
			msg.Release()
			return fmt.Errorf("%w: invalid message type (got=%v, want=%v)", arrow.ErrInvalid, msg.Type(), MessageDictionaryBatch)
		}

		id, kind, err := readDictionaryWithID(&f.memo, msg.meta, msg.body, f.swapEndianness, f.mem)
		msg.Release()
		if err != nil {
			return err
		}
		ids[id] = struct{}{}

		atomic.AddInt64(&f.stats.NumMessages, 1)
		atomic.AddInt64(&f.stats.NumDictionaryBatches, 1)
		switch kind {
		case dictutils.KindDelta:
			atomic.AddInt64(&f.stats.NumDictionaryDeltas, 1)
		case dictutils.KindReplacement:
			atomic.AddInt64(&f.stats.NumReplacedDictionaries, 1)
		}
	}

	for id := range ids {
		if _, err := f.memo.Dict(id, f.mem); err != nil {
			return err
		}
	}
	return nil
}

// Record returns the i-th record from the file.
// The returned value is valid until the next call to Record.
// Users need to call Retain on that Record to keep it valid for longer.
func (f *FileReader) Record(i int) (arrow.Record, error) {
	record, err := f.RecordAt(i)
	if err != nil {
		return nil, err
	}

	if f.record != nil {
		f.record.Release()
	}

	f.record = record
	return record, nil
}

// RecordAt returns the i-th record from the file. Ownership is
// transferred to the caller and must be released.
func (f *FileReader) RecordAt(i int) (arrow.Record, error) {
	if i < 0 || i >= f.NumRecords() {
		return nil, fmt.Errorf("%w: record index out of bounds (i=%d, valid=[0, %d])", arrow.ErrInvalid, i, f.NumRecords()-1)
	}

	if err := f.loadDictionaries(); err != nil {
		return nil, err
	}

	blk, err := f.block(i)
	if err != nil {
		return nil, err
	}

	msg, err := f.recordMessage(blk)
	if err != nil {
		return nil, err
	}
	defer msg.Release()

	if msg.Type() != MessageRecordBatch {
		return nil, fmt.Errorf("%w: invalid message type (got=%v, want=%v)", arrow.ErrInvalid, msg.Type(), MessageRecordBatch)
	}

	atomic.AddInt64(&f.stats.NumMessages, 1)
	atomic.AddInt64(&f.stats.NumRecordBatches, 1)

	return newRecord(f.schema, &f.memo, msg.meta, msg.body, f.swapEndianness, f.includedFields, f.version, f.maxDepth, f.mem)
}

// Read reads the current record from the underlying stream and an error, if any.
// When the Reader reaches the end of the underlying stream, it returns (nil, io.EOF).
//
// The returned record value is valid until the next call to Read.
// Users need to call Retain on that Record to keep it valid for longer.
func (f *FileReader) Read() (rec arrow.Record, err error) {
	if f.irec == f.NumRecords() {
		return nil, io.EOF
	}
	rec, f.err = f.Record(f.irec)
	f.irec++
	return rec, f.err
}

// ReadAt reads the i-th record from the underlying stream and an error, if any.
func (f *FileReader) ReadAt(i int64) (arrow.Record, error) {
	return f.Record(int(i))
}

// RecordResult is the result of an asynchronous record read.
type RecordResult struct {
	Record arrow.Record
	Err    error
}

// AsyncNext schedules the read of the next record in file order and
// returns a channel the result is delivered on. Results arrive in the
// order the reads were scheduled. At end of file the result carries a
// nil Record and io.EOF. The caller owns any returned record.
func (f *FileReader) AsyncNext() <-chan RecordResult {
	ch := make(chan RecordResult, 1)
	i := atomic.AddInt64(&f.anext, 1) - 1
	go func() {
		defer close(ch)
		if i >= int64(f.NumRecords()) {
			ch <- RecordResult{Err: io.EOF}
			return
		}
		rec, err := f.RecordAt(int(i))
		ch <- RecordResult{Record: rec, Err: err}
	}()
	return ch
}

// recordMessage reads the message for a record batch block. With a
// column projection configured, only the metadata and the byte ranges
// of the selected columns' buffers are fetched from the underlying
// reader; ranges closer than the buffer alignment are coalesced into a
// single read.
func (f *FileReader) recordMessage(blk fileBlock) (*Message, error) {
	included, err := normalizeIncludedFields(f.includedFields, f.schema.NumFields())
	if err != nil {
		return nil, err
	}
	if included == nil {
		return blk.NewMessage()
	}

	meta, err := blk.readMeta()
	if err != nil {
		return nil, err
	}

	msg := flatbuf.GetRootAsMessage(meta.Bytes(), 0)
	if MessageType(msg.HeaderType()) != MessageRecordBatch {
		// not a record batch: fall back to the full read so the caller
		// can report the type mismatch.
		meta.Release()
		return blk.NewMessage()
	}
	var batchMeta flatbuf.RecordBatch
	initFB(&batchMeta, msg.Header)

	ranges, err := projectedBufferRanges(&batchMeta, f.schema, included, blk.Body)
	if err != nil {
		meta.Release()
		return nil, err
	}

	body := make([]byte, blk.Body)
	for _, rng := range ranges {
		if _, err := blk.r.ReadAt(body[rng.off:rng.end], blk.Offset+int64(blk.Meta)+rng.off); err != nil {
			meta.Release()
			return nil, fmt.Errorf("ipc: could not read message body: %w", err)
		}
	}

	return NewMessage(meta, memory.NewBufferBytes(body)), nil
}

type byteRange struct {
	off, end int64
}

// projectedBufferRanges computes the body byte ranges covering the
// buffers of the included top-level columns. Buffers are laid out in
// field order, so the per-column ranges come out sorted and only need
// coalescing.
func projectedBufferRanges(batchMeta *flatbuf.RecordBatch, schema *arrow.Schema, included map[int]struct{}, bodyLen int64) ([]byteRange, error) {
	var (
		ranges []byteRange
		bufmd  flatbuf.Buffer
		cursor int
	)
	for i, field := range schema.Fields() {
		_, nbufs := fieldNodeAndBufferCount(field.Type)
		if _, ok := included[i]; !ok {
			cursor += nbufs
			continue
		}
		for j := cursor; j < cursor+nbufs; j++ {
			if !batchMeta.Buffers(&bufmd, j) {
				return nil, fmt.Errorf("%w: buffer index %d out of bounds", arrow.ErrInvalid, j)
			}
			if bufmd.Length() == 0 {
				continue
			}
			off, end := bufmd.Offset(), bufmd.Offset()+bufmd.Length()
			if off < 0 || end > bodyLen {
				return nil, fmt.Errorf("%w: buffer %d extends past the message body (offset=%d, length=%d, body=%d)",
					arrow.ErrInvalid, j, off, bufmd.Length(), bodyLen)
			}
			if n := len(ranges); n > 0 && off <= ranges[n-1].end+kArrowAlignment {
				if end > ranges[n-1].end {
					ranges[n-1].end = end
				}
				continue
			}
			ranges = append(ranges, byteRange{off: off, end: end})
		}
		cursor += nbufs
	}
	return ranges, nil
}

func readDictionary(memo *dictutils.Memo, meta, body *memory.Buffer, swap bool, mem memory.Allocator) (dictutils.Kind, error) {
	_, kind, err := readDictionaryWithID(memo, meta, body, swap, mem)
	return kind, err
}

func readDictionaryWithID(memo *dictutils.Memo, meta, body *memory.Buffer, swap bool, mem memory.Allocator) (int64, dictutils.Kind, error) {
	msg := flatbuf.GetRootAsMessage(meta.Bytes(), 0)
	var dictBatchFB flatbuf.DictionaryBatch
	initFB(&dictBatchFB, msg.Header)

	id := dictBatchFB.Id()
	valueType, ok := memo.Type(id)
	if !ok {
		return id, dictutils.KindNew, fmt.Errorf("%w: no dictionary type for id=%d", arrow.ErrKey, id)
	}

	batchMeta := dictBatchFB.Data(nil)
	if batchMeta == nil {
		return id, dictutils.KindNew, fmt.Errorf("%w: no data in dictionary batch id=%d", arrow.ErrInvalid, id)
	}

	isDelta := dictBatchFB.IsDelta()

	// the dictionary is a record batch with a single column of the
	// value type.
	codec, err := decompressorFor(batchMeta)
	if err != nil {
		return id, dictutils.KindNew, err
	}
	if codec != nil {
		defer codec.Close()
	}
	ctx := &arrayLoaderContext{
		src: ipcSource{
			meta:  batchMeta,
			codec: codec,
			body:  body,
			mem:   mem,
		},
		memo:    memo,
		max:     kMaxNestingDepth,
		version: MetadataVersion(msg.Version()),
	}

	data, err := loadArrayData(ctx, valueType)
	if err != nil {
		return id, dictutils.KindNew, err
	}
	defer data.Release()

	if swap {
		if err := swapEndianArrayData(data.(*array.Data)); err != nil {
			return id, dictutils.KindNew, err
		}
	}

	// dictionary values may themselves be dictionary-encoded; their ids
	// are registered relative to the encoded field's own position.
	fieldPath, err := memo.Mapper.PathForID(id)
	if err != nil {
		return id, dictutils.KindNew, err
	}
	if err := dictutils.ResolveFieldDict(memo, data, dictutils.PosFromPath(fieldPath), mem); err != nil {
		return id, dictutils.KindNew, err
	}

	if isDelta {
		if !memo.HasID(id) {
			return id, dictutils.KindNew, fmt.Errorf("%w: dictionary delta with no base dictionary id=%d", arrow.ErrKey, id)
		}
		if hasNestedDicts(valueType) {
			return id, dictutils.KindNew, fmt.Errorf("%w: delta dictionaries with nested dictionaries", arrow.ErrInvalid)
		}
		memo.AddDelta(id, data)
		return id, dictutils.KindDelta, nil
	}

	if memo.AddOrReplace(id, data) {
		return id, dictutils.KindReplacement, nil
	}
	return id, dictutils.KindNew, nil
}

func newRecord(schema *arrow.Schema, memo *dictutils.Memo, meta, body *memory.Buffer, swapEndianness bool, includedFields []int, version MetadataVersion, maxDepth int64, mem memory.Allocator) (arrow.Record, error) {
	msg := flatbuf.GetRootAsMessage(meta.Bytes(), 0)
	var batchMeta flatbuf.RecordBatch
	initFB(&batchMeta, msg.Header)

	included, err := normalizeIncludedFields(includedFields, schema.NumFields())
	if err != nil {
		return nil, err
	}

	codec, err := decompressorFor(&batchMeta)
	if err != nil {
		return nil, err
	}
	if codec != nil {
		defer codec.Close()
	}
	ctx := &arrayLoaderContext{
		src: ipcSource{
			meta:  &batchMeta,
			codec: codec,
			body:  body,
			mem:   mem,
		},
		memo:    memo,
		max:     maxDepth,
		version: version,
	}

	cols := make([]arrow.ArrayData, schema.NumFields())
	defer func() {
		for _, col := range cols {
			if col != nil {
				col.Release()
			}
		}
	}()

	fields := make([]arrow.Field, 0, schema.NumFields())
	for i, field := range schema.Fields() {
		if included != nil {
			if _, ok := included[i]; !ok {
				ctx.skipField(field.Type)
				continue
			}
		}
		data, err := loadArrayData(ctx, field.Type)
		if err != nil {
			return nil, fmt.Errorf("ipc: could not load column %d (%q): %w", i, field.Name, err)
		}
		if swapEndianness {
			if err := swapEndianArrayData(data.(*array.Data)); err != nil {
				data.Release()
				return nil, err
			}
		}
		cols[i] = data
		fields = append(fields, field)
	}

	if err := dictutils.ResolveDictionaries(memo, cols, dictutils.NewFieldPos(), mem); err != nil {
		return nil, err
	}

	outSchema := schema
	if included != nil {
		md := schema.Metadata()
		outSchema = arrow.NewSchema(fields, &md)
	}

	arrs := make([]arrow.Array, 0, len(fields))
	defer func() {
		for _, arr := range arrs {
			arr.Release()
		}
	}()
	for _, col := range cols {
		if col == nil {
			continue
		}
		arrs = append(arrs, array.MakeFromData(col))
	}

	return array.NewRecord(outSchema, arrs, batchMeta.Length()), nil
}

// normalizeIncludedFields sorts and de-duplicates the requested field
// indices. A nil result means all fields are included.
func normalizeIncludedFields(indices []int, nfields int) (map[int]struct{}, error) {
	if indices == nil {
		return nil, nil
	}
	out := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= nfields {
			return nil, fmt.Errorf("%w: included field index %d out of range [0, %d)", arrow.ErrInvalid, idx, nfields)
		}
		out[idx] = struct{}{}
	}
	return out, nil
}

func decompressorFor(meta *flatbuf.RecordBatch) (decompressor, error) {
	compression := meta.Compression(nil)
	if compression == nil {
		return nil, nil
	}
	if compression.Method() != flatbuf.BodyCompressionMethodBUFFER {
		return nil, fmt.Errorf("%w: compression method %d", arrow.ErrNotImplemented, compression.Method())
	}
	if err := validateCodec(compression.Codec()); err != nil {
		return nil, err
	}
	return getDecompressor(compression.Codec()), nil
}

type ipcSource struct {
	meta  *flatbuf.RecordBatch
	codec decompressor
	body  *memory.Buffer
	mem   memory.Allocator
}

func (src *ipcSource) buffer(i int) *memory.Buffer {
	var bufmeta flatbuf.Buffer
	if !src.meta.Buffers(&bufmeta, i) {
		panic(fmt.Errorf("%w: buffer index %d out of bounds", arrow.ErrInvalid, i))
	}

	if bufmeta.Length() == 0 {
		return memory.NewBufferBytes(nil)
	}

	raw := memory.SliceBuffer(src.body, int(bufmeta.Offset()), int(bufmeta.Length()))
	if src.codec == nil {
		return raw
	}
	defer raw.Release()

	if raw.Len() < arrow.Int64SizeBytes {
		panic(fmt.Errorf("%w: compressed buffer is missing its length prefix", arrow.ErrInvalid))
	}
	uncompressedSize := int64(binary.LittleEndian.Uint64(raw.Bytes()))
	if uncompressedSize == -1 {
		// stored uncompressed because compressing did not help
		return memory.SliceBuffer(raw, arrow.Int64SizeBytes, raw.Len()-arrow.Int64SizeBytes)
	}

	out := memory.NewResizableBuffer(src.mem)
	out.Resize(int(uncompressedSize))
	if err := src.codec.Reset(bytes.NewReader(raw.Bytes()[arrow.Int64SizeBytes:])); err != nil {
		out.Release()
		panic(fmt.Errorf("ipc: could not reset decompressor: %w", err))
	}
	if _, err := io.ReadFull(src.codec, out.Bytes()); err != nil {
		out.Release()
		panic(fmt.Errorf("ipc: could not decompress buffer: %w", err))
	}
	return out
}

func (src *ipcSource) fieldMetadata(i int) *flatbuf.FieldNode {
	var node flatbuf.FieldNode
	if !src.meta.Nodes(&node, i) {
		panic(fmt.Errorf("%w: field metadata index %d out of bounds", arrow.ErrInvalid, i))
	}
	return &node
}

type arrayLoaderContext struct {
	src     ipcSource
	ifield  int
	ibuffer int
	max     int64
	memo    *dictutils.Memo
	version MetadataVersion
}

func (ctx *arrayLoaderContext) field() *flatbuf.FieldNode {
	field := ctx.src.fieldMetadata(ctx.ifield)
	ctx.ifield++
	return field
}

func (ctx *arrayLoaderContext) buffer() *memory.Buffer {
	buf := ctx.src.buffer(ctx.ibuffer)
	ctx.ibuffer++
	return buf
}

// loadArrayData builds the array data for dt from the loader context,
// converting loader panics into errors.
func loadArrayData(ctx *arrayLoaderContext, dt arrow.DataType) (data arrow.ArrayData, err error) {
	defer func() {
		if pErr := recover(); pErr != nil {
			switch e := pErr.(type) {
			case error:
				err = e
			default:
				err = fmt.Errorf("ipc: unknown error while reading: %v", e)
			}
		}
	}()
	return ctx.loadArray(dt), nil
}

func (ctx *arrayLoaderContext) loadArray(dt arrow.DataType) arrow.ArrayData {
	switch dt := dt.(type) {
	case *arrow.NullType:
		return ctx.loadNull()

	case *arrow.BooleanType,
		*arrow.Int8Type, *arrow.Int16Type, *arrow.Int32Type, *arrow.Int64Type,
		*arrow.Uint8Type, *arrow.Uint16Type, *arrow.Uint32Type, *arrow.Uint64Type,
		*arrow.Float16Type, *arrow.Float32Type, *arrow.Float64Type,
		*arrow.Decimal128Type, *arrow.Decimal256Type,
		*arrow.Time32Type, *arrow.Time64Type,
		*arrow.TimestampType,
		*arrow.Date32Type, *arrow.Date64Type,
		*arrow.MonthIntervalType, *arrow.DayTimeIntervalType, *arrow.MonthDayNanoIntervalType,
		*arrow.DurationType:
		return ctx.loadPrimitive(dt)

	case *arrow.FixedSizeBinaryType:
		return ctx.loadFixedSizeBinary(dt)

	case *arrow.BinaryType, *arrow.StringType, *arrow.LargeBinaryType, *arrow.LargeStringType:
		return ctx.loadBinary(dt)

	case *arrow.ListType:
		return ctx.loadList(dt)

	case *arrow.LargeListType:
		return ctx.loadList(dt)

	case *arrow.FixedSizeListType:
		return ctx.loadFixedSizeList(dt)

	case *arrow.StructType:
		return ctx.loadStruct(dt)

	case *arrow.MapType:
		return ctx.loadMap(dt)

	case arrow.UnionType:
		return ctx.loadUnion(dt)

	case *arrow.DictionaryType:
		indices := ctx.loadPrimitive(dt.IndexType)
		defer indices.Release()
		return array.NewData(dt, indices.Len(), indices.Buffers(), indices.Children(), indices.NullN(), indices.Offset())

	case arrow.ExtensionType:
		storage := ctx.loadArray(dt.StorageType())
		defer storage.Release()
		return array.NewData(dt, storage.Len(), storage.Buffers(), storage.Children(), storage.NullN(), storage.Offset())

	default:
		panic(fmt.Errorf("%w: array type %T", arrow.ErrNotImplemented, dt))
	}
}

func (ctx *arrayLoaderContext) loadCommon(typ arrow.Type, nbufs int) (*flatbuf.FieldNode, []*memory.Buffer) {
	buffers := make([]*memory.Buffer, 0, nbufs)
	field := ctx.field()

	var buf *memory.Buffer
	switch field.NullCount() {
	case 0:
		ctx.ibuffer++
	default:
		buf = ctx.buffer()
	}
	buffers = append(buffers, buf)

	return field, buffers
}

func (ctx *arrayLoaderContext) loadChild(dt arrow.DataType) arrow.ArrayData {
	if ctx.max == 0 {
		panic(errMaxRecursion)
	}
	ctx.max--
	sub := ctx.loadArray(dt)
	ctx.max++
	return sub
}

func (ctx *arrayLoaderContext) loadNull() arrow.ArrayData {
	field := ctx.field()
	return array.NewData(arrow.Null, int(field.Length()), nil, nil, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadPrimitive(dt arrow.DataType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 2)

	switch field.Length() {
	case 0:
		buffers = append(buffers, nil)
		ctx.ibuffer++
	default:
		buffers = append(buffers, ctx.buffer())
	}

	defer releaseBuffers(buffers)

	return array.NewData(dt, int(field.Length()), buffers, nil, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadBinary(dt arrow.DataType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 3)
	buffers = append(buffers, ctx.buffer(), ctx.buffer())
	defer releaseBuffers(buffers)

	return array.NewData(dt, int(field.Length()), buffers, nil, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadFixedSizeBinary(dt *arrow.FixedSizeBinaryType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 2)
	buffers = append(buffers, ctx.buffer())
	defer releaseBuffers(buffers)

	return array.NewData(dt, int(field.Length()), buffers, nil, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadMap(dt *arrow.MapType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 2)
	buffers = append(buffers, ctx.buffer())
	defer releaseBuffers(buffers)

	sub := ctx.loadChild(dt.Elem())
	defer sub.Release()

	return array.NewData(dt, int(field.Length()), buffers, []arrow.ArrayData{sub}, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadList(dt arrow.VarLenListLikeType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 2)
	buffers = append(buffers, ctx.buffer())
	defer releaseBuffers(buffers)

	sub := ctx.loadChild(dt.Elem())
	defer sub.Release()

	return array.NewData(dt, int(field.Length()), buffers, []arrow.ArrayData{sub}, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadFixedSizeList(dt *arrow.FixedSizeListType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 1)
	defer releaseBuffers(buffers)

	sub := ctx.loadChild(dt.Elem())
	defer sub.Release()

	return array.NewData(dt, int(field.Length()), buffers, []arrow.ArrayData{sub}, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadStruct(dt *arrow.StructType) arrow.ArrayData {
	field, buffers := ctx.loadCommon(dt.ID(), 1)
	defer releaseBuffers(buffers)

	subs := make([]arrow.ArrayData, dt.NumFields())
	for i, f := range dt.Fields() {
		subs[i] = ctx.loadChild(f.Type)
	}
	defer func() {
		for i := range subs {
			subs[i].Release()
		}
	}()

	return array.NewData(dt, int(field.Length()), buffers, subs, int(field.NullCount()), 0)
}

func (ctx *arrayLoaderContext) loadUnion(dt arrow.UnionType) arrow.ArrayData {
	field := ctx.field()
	if field.NullCount() > 0 && ctx.version < MetadataV5 {
		panic(fmt.Errorf("%w: cannot read pre-1.0.0 union array with top-level nulls", arrow.ErrInvalid))
	}

	// pre-1.0 implementations wrote a validity bitmap for unions.
	if ctx.version < MetadataV5 {
		ctx.ibuffer++
	}

	buffers := []*memory.Buffer{nil, ctx.buffer()}
	if dt.Mode() == arrow.DenseMode {
		buffers = append(buffers, ctx.buffer())
	}
	defer releaseBuffers(buffers)

	subs := make([]arrow.ArrayData, len(dt.Fields()))
	for i, f := range dt.Fields() {
		subs[i] = ctx.loadChild(f.Type)
	}
	defer func() {
		for i := range subs {
			subs[i].Release()
		}
	}()

	return array.NewData(dt, int(field.Length()), buffers, subs, 0, 0)
}

// skipField advances the loader past a field that is not included in
// the projection, without materializing its buffers.
func (ctx *arrayLoaderContext) skipField(dt arrow.DataType) {
	nodes, buffers := fieldNodeAndBufferCount(dt)
	ctx.ifield += nodes
	ctx.ibuffer += buffers
}

// fieldNodeAndBufferCount returns the number of field nodes and buffer
// metadata entries a serialized field of type dt occupies.
func fieldNodeAndBufferCount(dt arrow.DataType) (nodes, buffers int) {
	switch dt := dt.(type) {
	case *arrow.NullType:
		return 1, 0
	case *arrow.DictionaryType:
		return fieldNodeAndBufferCount(dt.IndexType)
	case arrow.ExtensionType:
		return fieldNodeAndBufferCount(dt.StorageType())
	case *arrow.BinaryType, *arrow.StringType, *arrow.LargeBinaryType, *arrow.LargeStringType:
		return 1, 3
	case *arrow.ListType, *arrow.LargeListType:
		n, b := fieldNodeAndBufferCount(dt.(arrow.VarLenListLikeType).Elem())
		return 1 + n, 2 + b
	case *arrow.MapType:
		n, b := fieldNodeAndBufferCount(dt.Elem())
		return 1 + n, 2 + b
	case *arrow.FixedSizeListType:
		n, b := fieldNodeAndBufferCount(dt.Elem())
		return 1 + n, 1 + b
	case *arrow.StructType:
		nodes, buffers = 1, 1
		for _, f := range dt.Fields() {
			n, b := fieldNodeAndBufferCount(f.Type)
			nodes += n
			buffers += b
		}
		return nodes, buffers
	case arrow.UnionType:
		nodes, buffers = 1, 1
		if dt.Mode() == arrow.DenseMode {
			buffers = 2
		}
		for _, f := range dt.Fields() {
			n, b := fieldNodeAndBufferCount(f.Type)
			nodes += n
			buffers += b
		}
		return nodes, buffers
	default:
		// remaining types are fixed-width primitives
		return 1, 2
	}
}

func releaseBuffers(buffers []*memory.Buffer) {
	for _, b := range buffers {
		if b != nil {
			b.Release()
		}
	}
}
