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
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/endian"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/colstream/ipc/internal/debug"
	"github.com/colstream/ipc/internal/dictutils"
	"github.com/colstream/ipc/internal/flatbuf"
)

// Reader reads records from an io.Reader.
// Reader expects a schema (plus any dictionaries) as the first messages
// in the stream, followed by records.
type Reader struct {
	r MessageReader

	schema *arrow.Schema

	refCount int64
	rec      arrow.Record
	err      error

	memo             dictutils.Memo
	readInitialDicts bool
	done             bool
	swapEndianness   bool

	mem memory.Allocator

	includedFields []int
	maxDepth       int64
	version        MetadataVersion

	stats Stats
}

// NewReaderFromMessageReader allows constructing a new reader object with the
// provided MessageReader allowing injection of reading messages other than
// by simple streaming bytes such as Arrow Flight which receives a protobuf
// message.
func NewReaderFromMessageReader(r MessageReader, opts ...Option) (reader *Reader, err error) {
	defer func() {
		if pErr := recover(); pErr != nil {
			err = fmt.Errorf("ipc: unknown error while reading: %v", pErr)
		}
	}()
	cfg := newConfig(opts...)

	rr := &Reader{
		r:              r,
		refCount:       1,
		memo:           dictutils.NewMemo(),
		mem:            cfg.alloc,
		includedFields: cfg.includedFields,
		maxDepth:       cfg.maxRecursionDepth,
	}

	if err := rr.readSchema(cfg); err != nil {
		return nil, err
	}

	return rr, nil
}

// NewReader returns a reader that reads records from an input stream.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	return NewReaderFromMessageReader(NewMessageReader(r, opts...), opts...)
}

// Err returns the last error encountered during the iteration over the
// underlying stream.
func (r *Reader) Err() error { return r.err }

func (r *Reader) Schema() *arrow.Schema { return r.schema }

// Stats reports what has been read from the stream so far.
func (r *Reader) Stats() Stats { return r.stats }

func (r *Reader) readSchema(cfg *config) error {
	msg, err := r.r.Message()
	if err != nil {
		return fmt.Errorf("ipc: could not read message schema: %w", err)
	}
	r.stats.NumMessages++

	if msg.Type() != MessageSchema {
		return fmt.Errorf("%w: invalid message type (got=%v, want=%v)", arrow.ErrInvalid, msg.Type(), MessageSchema)
	}

	var schemaFB flatbuf.Schema
	initFB(&schemaFB, msg.msg.Header)

	r.schema, err = schemaFromFB(&schemaFB, &r.memo)
	if err != nil {
		return fmt.Errorf("ipc: could not decode schema from message schema: %w", err)
	}
	r.version = msg.Version()

	// check the provided schema match the one read from stream.
	if cfg.schema != nil && !cfg.schema.Equal(r.schema) {
		return fmt.Errorf("%w: tried to read stream with different schema", arrow.ErrInvalid)
	}

	if cfg.ensureNativeEndian && !r.schema.IsNativeEndian() {
		r.swapEndianness = true
		r.schema = r.schema.WithEndianness(endian.NativeEndian)
	}

	return nil
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (r *Reader) Retain() {
	atomic.AddInt64(&r.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (r *Reader) Release() {
	debug.Assert(atomic.LoadInt64(&r.refCount) > 0, "too many releases")

	if atomic.AddInt64(&r.refCount, -1) == 0 {
		if r.rec != nil {
			r.rec.Release()
			r.rec = nil
		}
		if r.r != nil {
			r.r.Release()
			r.r = nil
		}
		r.memo.Clear()
	}
}

// Next returns whether a Record could be extracted from the underlying stream.
func (r *Reader) Next() bool {
	if r.rec != nil {
		r.rec.Release()
		r.rec = nil
	}

	if r.done || r.err != nil {
		return false
	}

	return r.next()
}

func (r *Reader) getInitialDicts() bool {
	var msg *Message
	// we have to get all dictionaries before reconstructing the first
	// record. subsequent deltas and replacements modify the memo
	numDicts := r.memo.Mapper.NumDicts()
	// there should be numDicts dictionary messages
	for i := 0; i < numDicts; i++ {
		msg, r.err = r.r.Message()
		if r.err != nil {
			r.done = true
			if errors.Is(r.err, io.EOF) {
				if i == 0 {
					r.err = nil
				} else {
					r.err = fmt.Errorf("%w: IPC stream ended without reading the expected (%d) dictionaries", arrow.ErrInvalid, numDicts)
				}
			}
			return false
		}

		r.stats.NumMessages++
		if msg.Type() != MessageDictionaryBatch {
			r.err = fmt.Errorf("%w: IPC stream did not have the expected (%d) dictionaries at the start of the stream", arrow.ErrInvalid, numDicts)
			return false
		}
		if _, err := readDictionary(&r.memo, msg.meta, msg.body, r.swapEndianness, r.mem); err != nil {
			r.done = true
			r.err = err
			return false
		}
		r.stats.NumDictionaryBatches++
	}
	r.readInitialDicts = true
	return true
}

func (r *Reader) next() bool {
	defer func() {
		if pErr := recover(); pErr != nil {
			r.err = fmt.Errorf("ipc: unknown error while reading: %v", pErr)
		}
	}()

	if !r.readInitialDicts && !r.getInitialDicts() {
		return false
	}

	var msg *Message
	msg, r.err = r.r.Message()

	for r.err == nil && msg.Type() == MessageDictionaryBatch {
		r.stats.NumMessages++
		kind, err := readDictionary(&r.memo, msg.meta, msg.body, r.swapEndianness, r.mem)
		if err != nil {
			r.done = true
			r.err = err
			return false
		}
		r.stats.NumDictionaryBatches++
		switch kind {
		case dictutils.KindDelta:
			r.stats.NumDictionaryDeltas++
		case dictutils.KindReplacement:
			r.stats.NumReplacedDictionaries++
		}
		msg, r.err = r.r.Message()
	}
	if r.err != nil {
		r.done = true
		if errors.Is(r.err, io.EOF) {
			r.err = nil
		}
		return false
	}

	if got, want := msg.Type(), MessageRecordBatch; got != want {
		r.err = fmt.Errorf("%w: invalid message type (got=%v, want=%v)", arrow.ErrInvalid, got, want)
		return false
	}
	r.stats.NumMessages++
	r.stats.NumRecordBatches++

	r.rec, r.err = newRecord(r.schema, &r.memo, msg.meta, msg.body, r.swapEndianness, r.includedFields, r.version, r.maxDepth, r.mem)
	return r.err == nil
}

// Record returns the current record that has been extracted from the
// underlying stream.
// It is valid until the next call to Next.
func (r *Reader) Record() arrow.Record { return r.rec }

// Read reads the current record from the underlying stream and an error, if any.
// When the Reader reaches the end of the underlying stream, it returns (nil, io.EOF).
func (r *Reader) Read() (arrow.Record, error) {
	if r.rec != nil {
		r.rec.Release()
		r.rec = nil
	}

	if !r.next() {
		if r.done && r.err == nil {
			return nil, io.EOF
		}
		return nil, r.err
	}

	return r.rec, nil
}

var (
	_ array.RecordReader = (*Reader)(nil)
)
