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
	"fmt"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colstream/ipc"
)

func encodeStream(t *testing.T, mem memory.Allocator, opts ...ipc.Option) (*arrow.Schema, []arrow.Record, []byte) {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "i64", Type: arrow.PrimitiveTypes.Int64},
		{Name: "str", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	const numRecords = 3
	recs := make([]arrow.Record, numRecords)
	for i := range recs {
		b.Field(0).(*array.Int64Builder).AppendValues([]int64{int64(i), int64(i * 10)}, nil)
		b.Field(1).(*array.StringBuilder).AppendValues([]string{"a", ""}, []bool{true, false})
		recs[i] = b.NewRecord()
	}

	var buf bytes.Buffer
	wopts := append([]ipc.Option{ipc.WithAllocator(mem), ipc.WithSchema(schema)}, opts...)
	w := ipc.NewWriter(&buf, wopts...)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	return schema, recs, buf.Bytes()
}

func checkCollected(t *testing.T, c *ipc.RecordCollector, schema *arrow.Schema, recs []arrow.Record) {
	t.Helper()

	assert.True(t, c.Done())
	require.NotNil(t, c.Schema())
	assert.True(t, schema.Equal(c.Schema()))
	require.Len(t, c.Records(), len(recs))
	for i, rec := range c.Records() {
		assert.Truef(t, array.RecordEqual(recs[i], rec), "records[%d] differ", i)
	}
}

func TestStreamDecoderConsumeWhole(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema, recs, data := encodeStream(t, mem)
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var collector ipc.RecordCollector
	defer collector.Release()

	dec := ipc.NewStreamDecoder(&collector, ipc.WithAllocator(mem))
	require.NoError(t, dec.Consume(data))

	checkCollected(t, &collector, schema, recs)
	assert.EqualValues(t, len(recs), dec.Stats().NumRecordBatches)
	assert.EqualValues(t, len(recs)+1, dec.Stats().NumMessages)

	// bytes past the end-of-stream marker are ignored
	require.NoError(t, dec.Consume([]byte("trailing garbage")))
	assert.Len(t, collector.Records(), len(recs))
}

func TestStreamDecoderConsumeChunked(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema, recs, data := encodeStream(t, mem)
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	for _, chunk := range []int{1, 3, 7, 64} {
		t.Run(fmt.Sprintf("chunk=%d", chunk), func(t *testing.T) {
			var collector ipc.RecordCollector
			defer collector.Release()

			dec := ipc.NewStreamDecoder(&collector, ipc.WithAllocator(mem))
			for i := 0; i < len(data); i += chunk {
				end := i + chunk
				if end > len(data) {
					end = len(data)
				}
				require.NoError(t, dec.Consume(data[i:end]))
			}
			checkCollected(t, &collector, schema, recs)
		})
	}
}

func TestStreamDecoderNextRequiredSize(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema, recs, data := encodeStream(t, mem)
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var collector ipc.RecordCollector
	defer collector.Release()

	dec := ipc.NewStreamDecoder(&collector, ipc.WithAllocator(mem))
	assert.Equal(t, 8, dec.NextRequiredSize())

	// feeding exactly what the decoder asks for always makes progress
	pos := 0
	for pos < len(data) {
		n := dec.NextRequiredSize()
		if pos+n > len(data) {
			n = len(data) - pos
		}
		require.NoError(t, dec.Consume(data[pos:pos+n]))
		pos += n
	}
	checkCollected(t, &collector, schema, recs)
}

func TestStreamDecoderReset(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema, recs, data := encodeStream(t, mem)
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var collector ipc.RecordCollector
	defer collector.Release()

	dec := ipc.NewStreamDecoder(&collector, ipc.WithAllocator(mem))
	require.NoError(t, dec.Consume(data))
	checkCollected(t, &collector, schema, recs)

	collector.Release()
	dec.Reset()
	assert.Nil(t, dec.Schema())
	assert.Equal(t, 8, dec.NextRequiredSize())
	assert.Equal(t, ipc.Stats{}, dec.Stats())

	require.NoError(t, dec.Consume(data))
	checkCollected(t, &collector, schema, recs)
}

func TestStreamDecoderLegacyFraming(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	schema, recs, data := encodeStream(t, mem, ipc.WithLegacyIPCFormat(true))
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	var collector ipc.RecordCollector
	defer collector.Release()

	dec := ipc.NewStreamDecoder(&collector, ipc.WithAllocator(mem))
	for i := 0; i < len(data); i += 5 {
		end := i + 5
		if end > len(data) {
			end = len(data)
		}
		require.NoError(t, dec.Consume(data[i:end]))
	}
	checkCollected(t, &collector, schema, recs)
}

func TestStreamDecoderGarbage(t *testing.T) {
	var collector ipc.RecordCollector
	defer collector.Release()

	dec := ipc.NewStreamDecoder(&collector)
	// a negative metadata size in the framing prefix
	err := dec.Consume([]byte{0xfe, 0xff, 0xff, 0xff})
	require.ErrorIs(t, err, arrow.ErrInvalid)
	require.ErrorContains(t, err, "invalid message metadata size")

	// a failed decoder stays failed
	assert.Equal(t, err, dec.Consume([]byte{0x00}))
}
