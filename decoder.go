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

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/endian"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/colstream/ipc/internal/dictutils"
	"github.com/colstream/ipc/internal/flatbuf"
)

// Listener is notified as a StreamDecoder decodes the pieces of an IPC
// stream. The decoded schema and records are only valid for the
// duration of the callback; implementations that keep them must Retain
// them.
type Listener interface {
	// OnSchemaDecoded is called once, when the schema message at the
	// head of the stream has been decoded.
	OnSchemaDecoded(schema *arrow.Schema) error
	// OnRecordBatchDecoded is called for every decoded record batch.
	OnRecordBatchDecoded(rec arrow.Record) error
	// OnEOS is called when the end-of-stream marker is decoded.
	OnEOS() error
}

type decoderState int8

const (
	decoderStatePrefix decoderState = iota
	decoderStateMetadata
	decoderStateBody
	decoderStateEOS
)

// StreamDecoder decodes an IPC stream from bytes pushed into it,
// without owning the transport the bytes come from. Feed it with
// Consume; NextRequiredSize reports how many bytes the decoder needs
// before it can make progress, which callers can use to size reads.
type StreamDecoder struct {
	listener Listener

	mem            memory.Allocator
	maxDepth       int64
	ensureNative   bool
	includedFields []int

	memo           dictutils.Memo
	schema         *arrow.Schema
	version        MetadataVersion
	swapEndianness bool

	state decoderState
	buf   []byte // accumulated bytes of the current piece
	need  int    // bytes required to complete the current piece

	// metadata of the message whose body is pending
	pendingMeta *memory.Buffer

	stats Stats
	err   error
}

// NewStreamDecoder constructs a decoder delivering decoded values to
// the provided listener.
func NewStreamDecoder(listener Listener, opts ...Option) *StreamDecoder {
	cfg := newConfig(opts...)
	return &StreamDecoder{
		listener:       listener,
		mem:            cfg.alloc,
		maxDepth:       cfg.maxRecursionDepth,
		ensureNative:   cfg.ensureNativeEndian,
		includedFields: cfg.includedFields,
		memo:           dictutils.NewMemo(),
		state:          decoderStatePrefix,
		need:           8,
	}
}

// NextRequiredSize returns the number of bytes the decoder needs to
// complete the piece it is currently decoding. Feeding Consume at
// least this many bytes guarantees progress.
func (d *StreamDecoder) NextRequiredSize() int {
	n := d.need - len(d.buf)
	if n < 1 {
		return 1
	}
	return n
}

// Schema returns the decoded schema, or nil before the schema message
// has been consumed.
func (d *StreamDecoder) Schema() *arrow.Schema { return d.schema }

// Stats reports what has been decoded so far.
func (d *StreamDecoder) Stats() Stats { return d.stats }

// Reset returns the decoder to its initial state so a new stream can
// be decoded. The listener is kept.
func (d *StreamDecoder) Reset() {
	if d.pendingMeta != nil {
		d.pendingMeta.Release()
		d.pendingMeta = nil
	}
	d.memo.Clear()
	d.memo = dictutils.NewMemo()
	d.schema = nil
	d.swapEndianness = false
	d.state = decoderStatePrefix
	d.buf = nil
	d.need = 8
	d.stats = Stats{}
	d.err = nil
}

// Consume feeds bytes to the decoder. The data may be sliced at any
// boundary: the decoder accumulates until a complete framing piece is
// available, decodes it, and continues with the remainder.
func (d *StreamDecoder) Consume(data []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.state == decoderStateEOS {
		return nil
	}

	d.buf = append(d.buf, data...)
	for d.state != decoderStateEOS {
		progressed, err := d.step()
		if err != nil {
			d.err = err
			return err
		}
		if !progressed {
			break
		}
	}
	return nil
}

func (d *StreamDecoder) step() (bool, error) {
	switch d.state {
	case decoderStatePrefix:
		if len(d.buf) < 4 {
			return false, nil
		}
		var size int32
		switch word := binary.LittleEndian.Uint32(d.buf); word {
		case kIPCContToken:
			if len(d.buf) < 8 {
				return false, nil
			}
			size = int32(binary.LittleEndian.Uint32(d.buf[4:]))
			d.buf = d.buf[8:]
		default:
			// legacy framing without a continuation indicator: the
			// first word is already the metadata length.
			size = int32(word)
			d.buf = d.buf[4:]
		}
		if size == 0 {
			return true, d.eos()
		}
		if size < 0 {
			return false, fmt.Errorf("%w: invalid message metadata size %d", arrow.ErrInvalid, size)
		}
		d.state = decoderStateMetadata
		d.need = int(size)
		return true, nil

	case decoderStateMetadata:
		if len(d.buf) < d.need {
			return false, nil
		}
		meta := memory.NewBufferBytes(append([]byte(nil), d.buf[:d.need]...))
		d.buf = d.buf[d.need:]

		msg, err := safeGetRootAsMessage(meta.Bytes())
		if err != nil {
			meta.Release()
			return false, err
		}
		bodyLen := msg.BodyLength()
		if bodyLen < 0 {
			meta.Release()
			return false, fmt.Errorf("%w: negative message body length", arrow.ErrInvalid)
		}
		if bodyLen == 0 {
			err := d.dispatch(meta, memory.NewBufferBytes(nil))
			meta.Release()
			if err != nil {
				return false, err
			}
			d.state = decoderStatePrefix
			d.need = 8
			return true, nil
		}
		d.pendingMeta = meta
		d.state = decoderStateBody
		d.need = int(bodyLen)
		return true, nil

	case decoderStateBody:
		if len(d.buf) < d.need {
			return false, nil
		}
		body := memory.NewBufferBytes(append([]byte(nil), d.buf[:d.need]...))
		d.buf = d.buf[d.need:]

		meta := d.pendingMeta
		d.pendingMeta = nil
		err := d.dispatch(meta, body)
		meta.Release()
		body.Release()
		if err != nil {
			return false, err
		}
		d.state = decoderStatePrefix
		d.need = 8
		return true, nil
	}
	return false, nil
}

func (d *StreamDecoder) eos() error {
	d.state = decoderStateEOS
	d.need = 0
	return d.listener.OnEOS()
}

func (d *StreamDecoder) dispatch(meta, body *memory.Buffer) error {
	msg := flatbuf.GetRootAsMessage(meta.Bytes(), 0)
	d.stats.NumMessages++

	switch MessageType(msg.HeaderType()) {
	case MessageSchema:
		if d.schema != nil {
			return fmt.Errorf("%w: more than one schema message in stream", arrow.ErrInvalid)
		}
		var schemaFB flatbuf.Schema
		initFB(&schemaFB, msg.Header)
		schema, err := schemaFromFB(&schemaFB, &d.memo)
		if err != nil {
			return fmt.Errorf("ipc: could not decode schema from message schema: %w", err)
		}
		d.version = MetadataVersion(msg.Version())
		if d.ensureNative && !schema.IsNativeEndian() {
			d.swapEndianness = true
			schema = schema.WithEndianness(endian.NativeEndian)
		}
		d.schema = schema
		return d.listener.OnSchemaDecoded(schema)

	case MessageDictionaryBatch:
		if d.schema == nil {
			return fmt.Errorf("%w: dictionary batch preceding schema message", arrow.ErrInvalid)
		}
		kind, err := readDictionary(&d.memo, meta, body, d.swapEndianness, d.mem)
		if err != nil {
			return err
		}
		d.stats.NumDictionaryBatches++
		switch kind {
		case dictutils.KindDelta:
			d.stats.NumDictionaryDeltas++
		case dictutils.KindReplacement:
			d.stats.NumReplacedDictionaries++
		}
		return nil

	case MessageRecordBatch:
		if d.schema == nil {
			return fmt.Errorf("%w: record batch preceding schema message", arrow.ErrInvalid)
		}
		rec, err := newRecord(d.schema, &d.memo, meta, body, d.swapEndianness, d.includedFields, d.version, d.maxDepth, d.mem)
		if err != nil {
			return err
		}
		d.stats.NumRecordBatches++
		err = d.listener.OnRecordBatchDecoded(rec)
		rec.Release()
		return err

	default:
		return fmt.Errorf("%w: message type %v in stream", arrow.ErrInvalid, MessageType(msg.HeaderType()))
	}
}

// RecordCollector is a Listener that retains every decoded record.
type RecordCollector struct {
	schema  *arrow.Schema
	records []arrow.Record
	done    bool
}

func (c *RecordCollector) OnSchemaDecoded(schema *arrow.Schema) error {
	c.schema = schema
	return nil
}

func (c *RecordCollector) OnRecordBatchDecoded(rec arrow.Record) error {
	rec.Retain()
	c.records = append(c.records, rec)
	return nil
}

func (c *RecordCollector) OnEOS() error {
	c.done = true
	return nil
}

func (c *RecordCollector) Schema() *arrow.Schema   { return c.schema }
func (c *RecordCollector) Records() []arrow.Record { return c.records }
func (c *RecordCollector) Done() bool              { return c.done }

// Release releases the retained records.
func (c *RecordCollector) Release() {
	for _, rec := range c.records {
		rec.Release()
	}
	c.records = nil
}

var _ Listener = (*RecordCollector)(nil)
