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

package ipc_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colstream/ipc"
	"github.com/colstream/ipc/internal/arrdata"
)

func makeDictRecord(t *testing.T, mem memory.Allocator, values, indices string) arrow.Record {
	t.Helper()

	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.BinaryTypes.String}
	schema := arrow.NewSchema([]arrow.Field{{Name: "d", Type: dt, Nullable: true}}, nil)

	dict, _, err := array.FromJSON(mem, dt.ValueType, strings.NewReader(values))
	require.NoError(t, err)
	defer dict.Release()

	idx, _, err := array.FromJSON(mem, dt.IndexType, strings.NewReader(indices))
	require.NoError(t, err)
	defer idx.Release()

	arr := array.NewDictionaryArray(dt, idx, dict)
	defer arr.Release()

	return array.NewRecord(schema, []arrow.Array{arr}, int64(arr.Len()))
}

func TestStreamStatsDictionaries(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	recs := []arrow.Record{
		makeDictRecord(t, mem, `["a", "b"]`, `[0, 1, 0]`),
		// grows the previous dictionary by appending: eligible for a delta
		makeDictRecord(t, mem, `["a", "b", "c"]`, `[2, 0]`),
		// unrelated dictionary: forces a replacement
		makeDictRecord(t, mem, `["x", "y"]`, `[0, 1]`),
	}
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(recs[0].Schema()),
		ipc.WithDictionaryDeltas(true))
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	want := ipc.Stats{
		NumMessages:             7, // schema + 3 dictionaries + 3 records
		NumRecordBatches:        3,
		NumDictionaryBatches:    3,
		NumDictionaryDeltas:     1,
		NumReplacedDictionaries: 1,
	}
	assert.Equal(t, want, w.Stats())

	r, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Release()

	n := 0
	for r.Next() {
		assert.Truef(t, array.RecordEqual(r.Record(), recs[n]), "records[%d] differ", n)
		n++
	}
	require.NoError(t, r.Err())
	assert.Equal(t, len(recs), n)
	assert.Equal(t, want, r.Stats())
}

func TestStreamStatsNoDeltas(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	recs := []arrow.Record{
		makeDictRecord(t, mem, `["a", "b"]`, `[0, 1, 0]`),
		makeDictRecord(t, mem, `["a", "b", "c"]`, `[2, 0]`),
	}
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(recs[0].Schema()))
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	// without WithDictionaryDeltas the growing dictionary is replaced
	assert.EqualValues(t, 0, w.Stats().NumDictionaryDeltas)
	assert.EqualValues(t, 1, w.Stats().NumReplacedDictionaries)
}

func TestFileRejectsDictionaryReplacement(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec1 := makeDictRecord(t, mem, `["a", "b"]`, `[0, 1, 0]`)
	defer rec1.Release()
	rec2 := makeDictRecord(t, mem, `["x", "y"]`, `[0, 1]`)
	defer rec2.Release()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(rec1.Schema()))
	require.NoError(t, err)

	require.NoError(t, w.Write(rec1))
	err = w.Write(rec2)
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "single dictionary per field")

	// closing after the rejection still produces a valid file and
	// releases the tracked dictionaries.
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, 1, r.NumRecords())
}

func TestFileRejectsDictionaryDelta(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec1 := makeDictRecord(t, mem, `["a", "b"]`, `[0, 1, 0]`)
	defer rec1.Release()
	rec2 := makeDictRecord(t, mem, `["a", "b", "c"]`, `[2, 0]`)
	defer rec2.Release()

	// deltas are representable in streams but not in the file footer,
	// which indexes dictionary blocks by id only.
	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(rec1.Schema()),
		ipc.WithDictionaryDeltas(true))
	require.NoError(t, err)

	require.NoError(t, w.Write(rec1))
	err = w.Write(rec2)
	assert.ErrorIs(t, err, arrow.ErrInvalid)
	assert.ErrorContains(t, err, "single dictionary per field")
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, 1, r.NumRecords())
	require.Equal(t, 1, r.NumDictionaries())
}

func TestWriterRejectsInvalidAlignment(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "i64", Type: arrow.PrimitiveTypes.Int64}}, nil)

	for _, align := range []int32{0, -8, 3, 128} {
		w := ipc.NewWriter(io.Discard, ipc.WithAllocator(mem), ipc.WithSchema(schema),
			ipc.WithAlignment(align))
		err := w.Close()
		assert.ErrorIs(t, err, arrow.ErrInvalid, "alignment %d", align)
		assert.ErrorContains(t, err, "alignment")

		_, err = ipc.NewFileWriter(io.Discard, ipc.WithAllocator(mem), ipc.WithSchema(schema),
			ipc.WithAlignment(align))
		assert.ErrorIs(t, err, arrow.ErrInvalid, "alignment %d", align)
	}
}

func TestLegacyStreamFormat(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "i64", Type: arrow.PrimitiveTypes.Int64}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3, 4}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema),
		ipc.WithLegacyIPCFormat(true))
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	// the legacy framing has no continuation indicator before the
	// metadata size
	prefix := binary.LittleEndian.Uint32(buf.Bytes()[:4])
	assert.NotEqual(t, uint32(0xFFFFFFFF), prefix)

	r, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Release()

	require.True(t, r.Next())
	assert.True(t, array.RecordEqual(rec, r.Record()))
	assert.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestStreamAlignment(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "f64", Type: arrow.PrimitiveTypes.Float64}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Float64Builder).AppendValues([]float64{1.5, 2.5, 3.5}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	for _, align := range []int32{8, 64} {
		var buf bytes.Buffer
		w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema),
			ipc.WithAlignment(align))
		require.NoError(t, w.Write(rec))
		require.NoError(t, w.Close())

		r, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
		require.NoError(t, err)

		require.True(t, r.Next())
		assert.True(t, array.RecordEqual(rec, r.Record()))
		r.Release()
	}
}

func TestFileMetadataVersion(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "i32", Type: arrow.PrimitiveTypes.Int32}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int32Builder).AppendValues([]int32{1, 2, 3}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema),
		ipc.WithMetadataVersion(ipc.MetadataV4))
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, ipc.MetadataV4, r.Version())
	got, err := r.Record(0)
	require.NoError(t, err)
	assert.True(t, array.RecordEqual(rec, got))
}

func TestFileFooterMetadata(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "i32", Type: arrow.PrimitiveTypes.Int32}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int32Builder).AppendValues([]int32{42}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	meta := arrow.NewMetadata([]string{"writer", "revision"}, []string{"colstream", "deadbeef"})

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema),
		ipc.WithFooterMetadata(meta))
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Close()

	got := r.Metadata()
	require.Equal(t, meta.Len(), got.Len())
	assert.Equal(t, meta.Keys(), got.Keys())
	assert.Equal(t, meta.Values(), got.Values())
}

func TestFileAsyncNext(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{{Name: "i64", Type: arrow.PrimitiveTypes.Int64}}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	const numRecords = 5
	recs := make([]arrow.Record, numRecords)
	for i := range recs {
		b.Field(0).(*array.Int64Builder).AppendValues([]int64{int64(i), int64(i + 1)}, nil)
		recs[i] = b.NewRecord()
	}
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema))
	require.NoError(t, err)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Close()

	chans := make([]<-chan ipc.RecordResult, numRecords+1)
	for i := range chans {
		chans[i] = r.AsyncNext()
	}

	for i := 0; i < numRecords; i++ {
		res := <-chans[i]
		require.NoError(t, res.Err)
		assert.Truef(t, array.RecordEqual(recs[i], res.Record), "records[%d] differ", i)
		res.Record.Release()
	}
	res := <-chans[numRecords]
	assert.ErrorIs(t, res.Err, io.EOF)
}

func TestWriteTableUnifiedDictionaries(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec1 := makeDictRecord(t, mem, `["a", "b"]`, `[0, 1, 0]`)
	defer rec1.Release()
	rec2 := makeDictRecord(t, mem, `["b", "c"]`, `[1, 0]`)
	defer rec2.Release()

	tbl := array.NewTableFromRecords(rec1.Schema(), []arrow.Record{rec1, rec2})
	defer tbl.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(rec1.Schema()),
		ipc.WithUnifyDictionaries(true))
	require.NoError(t, w.WriteTable(tbl, 3))
	require.NoError(t, w.Close())

	// one unified dictionary serves every chunk
	assert.EqualValues(t, 1, w.Stats().NumDictionaryBatches)
	assert.EqualValues(t, 0, w.Stats().NumReplacedDictionaries)

	r, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Release()

	// unification remaps indices, never values: rec2's [1, 0] over
	// ["b", "c"] decodes to "c", "b" before and after.
	want := []string{"a", "b", "a", "c", "b"}
	i := 0
	for r.Next() {
		col := r.Record().Column(0).(*array.Dictionary)
		for j := 0; j < col.Len(); j++ {
			assert.Equal(t, want[i], col.ValueStr(j))
			i++
		}
	}
	require.NoError(t, r.Err())
	assert.Equal(t, len(want), i)
}

func TestReaderIncludedFields(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "f0", Type: arrow.PrimitiveTypes.Int64},
		{Name: "f1", Type: arrow.BinaryTypes.String},
		{Name: "f2", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"a", "b", "c"}, nil)
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{1.5, 2.5, 3.5}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema))
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	// duplicates are discarded; selection keeps the original field order
	r, err := ipc.NewReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem),
		ipc.WithIncludedFields(2, 0, 0))
	require.NoError(t, err)
	defer r.Release()

	require.True(t, r.Next())
	got := r.Record()
	require.EqualValues(t, 2, got.NumCols())
	assert.Equal(t, "f0", got.Schema().Field(0).Name)
	assert.Equal(t, "f2", got.Schema().Field(1).Name)
	assert.True(t, array.Equal(rec.Column(0), got.Column(0)))
	assert.True(t, array.Equal(rec.Column(2), got.Column(1)))

	// out of range indices are rejected
	r2, err := ipc.NewReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem),
		ipc.WithIncludedFields(3))
	require.NoError(t, err)
	defer r2.Release()

	assert.False(t, r2.Next())
	assert.ErrorIs(t, r2.Err(), arrow.ErrInvalid)
}

func TestFileReaderIncludedFields(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "f0", Type: arrow.PrimitiveTypes.Int32},
		{Name: "f1", Type: arrow.PrimitiveTypes.Int32},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int32Builder).AppendValues([]int32{1, 2}, nil)
	b.Field(1).(*array.Int32Builder).AppendValues([]int32{3, 4}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema))
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem),
		ipc.WithIncludedFields(1))
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Record(0)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.NumCols())
	assert.Equal(t, "f1", got.Schema().Field(0).Name)
	assert.True(t, array.Equal(rec.Column(1), got.Column(0)))
}

// countingReaderAt tallies the bytes fetched through ReadAt so tests
// can observe how much of a file a reader actually touches.
type countingReaderAt struct {
	*bytes.Reader
	bytesRead int64
}

func (c *countingReaderAt) ReadAt(p []byte, off int64) (int, error) {
	n, err := c.Reader.ReadAt(p, off)
	c.bytesRead += int64(n)
	return n, err
}

func TestFileReaderProjectionReadsLess(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "small", Type: arrow.PrimitiveTypes.Int32},
		{Name: "wide", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

	const nrows = 4096
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for i := 0; i < nrows; i++ {
		b.Field(0).(*array.Int32Builder).Append(int32(i))
		b.Field(1).(*array.Int64Builder).Append(int64(i))
	}
	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema))
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	readAll := func(opts ...ipc.Option) int64 {
		src := &countingReaderAt{Reader: bytes.NewReader(buf.Bytes())}
		r, err := ipc.NewFileReader(src, append([]ipc.Option{ipc.WithAllocator(mem)}, opts...)...)
		require.NoError(t, err)
		defer r.Close()
		for i := 0; i < r.NumRecords(); i++ {
			got, err := r.RecordAt(i)
			require.NoError(t, err)
			require.EqualValues(t, nrows, got.NumRows())
			got.Release()
		}
		return src.bytesRead
	}

	full := readAll()
	projected := readAll(ipc.WithIncludedFields(0))

	// the excluded column's data buffer is never fetched
	require.LessOrEqual(t, projected+int64(nrows*arrow.Int64SizeBytes), full)
}

func TestFileNestedDictionaries(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	recs := arrdata.Records["nested_dictionaries"]

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(recs[0].Schema()))
	require.NoError(t, err)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	r, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Close()

	// the outer dictionary and the one nested in its values resolve at
	// their own schema positions.
	require.Equal(t, 2, r.NumDictionaries())
	require.Equal(t, len(recs), r.NumRecords())
	for i, want := range recs {
		got, err := r.RecordAt(i)
		require.NoError(t, err)
		assert.True(t, array.RecordEqual(want, got), "record %d differs", i)
		got.Release()
	}
}

func TestStreamMissingInitialDictionaries(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec := makeDictRecord(t, mem, `["a", "b"]`, `[0, 1]`)
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(rec.Schema()))
	require.NoError(t, w.Close())

	// replace the end-of-stream marker with a second schema message, so
	// the reader finds a non-dictionary message where the dictionaries
	// are required.
	payload := buf.Bytes()[:buf.Len()-8]
	stream := append(append([]byte{}, payload...), payload...)

	r, err := ipc.NewReader(bytes.NewReader(stream), ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Release()

	require.False(t, r.Next())
	assert.ErrorIs(t, r.Err(), arrow.ErrInvalid)
	assert.ErrorContains(t, r.Err(), "dictionaries at the start of the stream")
}

func TestReaderMaxRecursionDepth(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	dt := arrow.ListOf(arrow.ListOf(arrow.PrimitiveTypes.Int32))
	arr, _, err := array.FromJSON(mem, dt, strings.NewReader(`[[[1, 2], [3]], [[4]]]`))
	require.NoError(t, err)
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "nested", Type: dt}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, int64(arr.Len()))
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithAllocator(mem), ipc.WithSchema(schema))
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	r, err := ipc.NewReader(bytes.NewReader(buf.Bytes()), ipc.WithAllocator(mem),
		ipc.WithMaxRecursionDepth(1))
	require.NoError(t, err)
	defer r.Release()

	assert.False(t, r.Next())
	require.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "max recursion depth reached")
}

func TestReaderMalformedInputs(t *testing.T) {
	t.Run("empty stream", func(t *testing.T) {
		_, err := ipc.NewReader(bytes.NewReader(nil))
		assert.True(t, errors.Is(err, io.EOF))
	})

	t.Run("garbage stream", func(t *testing.T) {
		data := bytes.Repeat([]byte("not an arrow stream "), 16)
		_, err := ipc.NewReader(bytes.NewReader(data))
		assert.Error(t, err)
	})

	t.Run("file too small", func(t *testing.T) {
		_, err := ipc.NewFileReader(bytes.NewReader([]byte("ARROW1")))
		assert.ErrorContains(t, err, "file too small")
	})

	t.Run("not an arrow file", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x42}, 64)
		_, err := ipc.NewFileReader(bytes.NewReader(data))
		assert.ErrorContains(t, err, "not an Arrow file")
	})
}
