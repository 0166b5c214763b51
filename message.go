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
	"sync/atomic"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/colstream/ipc/internal/debug"
	"github.com/colstream/ipc/internal/flatbuf"
)

// MetadataVersion represents the Arrow metadata version.
type MetadataVersion flatbuf.MetadataVersion

const (
	MetadataV1 = MetadataVersion(flatbuf.MetadataVersionV1) // version for Arrow-0.1.0
	MetadataV2 = MetadataVersion(flatbuf.MetadataVersionV2) // version for Arrow-0.2.0
	MetadataV3 = MetadataVersion(flatbuf.MetadataVersionV3) // version for Arrow-0.3.0 to 0.7.1
	MetadataV4 = MetadataVersion(flatbuf.MetadataVersionV4) // version for Arrow-0.8.0 to 0.17.1
	MetadataV5 = MetadataVersion(flatbuf.MetadataVersionV5) // version for >= Arrow-1.0.0, backward compatible with v4
)

func (m MetadataVersion) String() string {
	if v, ok := flatbuf.EnumNamesMetadataVersion[flatbuf.MetadataVersion(m)]; ok {
		return v
	}
	return fmt.Sprintf("MetadataVersion(%d)", int16(m))
}

// MessageType represents the type of Message in an Arrow format.
type MessageType flatbuf.MessageHeader

const (
	MessageNone            = MessageType(flatbuf.MessageHeaderNONE)
	MessageSchema          = MessageType(flatbuf.MessageHeaderSchema)
	MessageDictionaryBatch = MessageType(flatbuf.MessageHeaderDictionaryBatch)
	MessageRecordBatch     = MessageType(flatbuf.MessageHeaderRecordBatch)
	MessageTensor          = MessageType(flatbuf.MessageHeaderTensor)
	MessageSparseTensor    = MessageType(flatbuf.MessageHeaderSparseTensor)
)

func (m MessageType) String() string {
	if v, ok := flatbuf.EnumNamesMessageHeader[flatbuf.MessageHeader(m)]; ok {
		return v
	}
	return fmt.Sprintf("MessageType(%d)", int(m))
}

// Message is an IPC message, sans the body buffers it describes.
type Message struct {
	refCount int64
	msg      *flatbuf.Message
	meta     *memory.Buffer
	body     *memory.Buffer
}

// NewMessage creates a new message from the metadata and body buffers.
// NewMessage panics if any of these buffers is nil.
func NewMessage(meta, body *memory.Buffer) *Message {
	if meta == nil || body == nil {
		panic("ipc: nil buffers")
	}
	meta.Retain()
	body.Retain()
	return &Message{
		refCount: 1,
		msg:      flatbuf.GetRootAsMessage(meta.Bytes(), 0),
		meta:     meta,
		body:     body,
	}
}

func newMessageFromFB(meta *flatbuf.Message, body *memory.Buffer) *Message {
	if meta == nil || body == nil {
		panic("ipc: nil buffers")
	}
	body.Retain()
	return &Message{
		refCount: 1,
		msg:      meta,
		meta:     memory.NewBufferBytes(meta.Table().Bytes),
		body:     body,
	}
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (msg *Message) Retain() {
	atomic.AddInt64(&msg.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (msg *Message) Release() {
	debug.Assert(atomic.LoadInt64(&msg.refCount) > 0, "too many releases")

	if atomic.AddInt64(&msg.refCount, -1) == 0 {
		msg.meta.Release()
		msg.body.Release()
		msg.msg = nil
		msg.meta = nil
		msg.body = nil
	}
}

func (msg *Message) Version() MetadataVersion {
	return MetadataVersion(msg.msg.Version())
}

func (msg *Message) Type() MessageType {
	return MessageType(msg.msg.HeaderType())
}

func (msg *Message) BodyLen() int64 {
	return msg.msg.BodyLength()
}

// MessageReader reads messages from an io.Reader.
type MessageReader interface {
	Message() (*Message, error)
	Release()
	Retain()
}

// NewMessageReader returns a reader that reads messages from an input stream.
// Both the current encapsulated format and the pre-0.15.0 framing, without
// the continuation indicator, are recognized.
func NewMessageReader(r io.Reader, opts ...Option) MessageReader {
	cfg := newConfig(opts...)
	return &messageReader{r: r, refCount: 1, mem: cfg.alloc}
}

type messageReader struct {
	r io.Reader

	refCount int64
	msg      *Message

	mem memory.Allocator
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (r *messageReader) Retain() {
	atomic.AddInt64(&r.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (r *messageReader) Release() {
	debug.Assert(atomic.LoadInt64(&r.refCount) > 0, "too many releases")

	if atomic.AddInt64(&r.refCount, -1) == 0 {
		if r.msg != nil {
			r.msg.Release()
			r.msg = nil
		}
	}
}

// Message returns the current message that has been extracted from the
// underlying stream.
// It is valid until the next call to Message.
func (r *messageReader) Message() (*Message, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		if err == io.EOF {
			// no more messages and no end-of-stream marker. gracefully
			// treat the boundary as the end of the stream.
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: could not read continuation indicator: %v", arrow.ErrInvalid, err)
	}

	var size int32
	switch indicator := binary.LittleEndian.Uint32(buf[:]); indicator {
	case kIPCContToken:
		if _, err := io.ReadFull(r.r, buf[:]); err != nil {
			if err == io.EOF {
				// a continuation indicator at the very end of the stream is
				// also a valid end-of-stream marker (pre-1.0 writers).
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: could not read message length: %v", arrow.ErrInvalid, err)
		}
		size = int32(binary.LittleEndian.Uint32(buf[:]))
	default:
		// pre-0.15.0 framing: the first 4 bytes are the metadata length.
		size = int32(indicator)
	}

	switch {
	case size == 0:
		// end of stream marker
		return nil, io.EOF
	case size < 0:
		return nil, fmt.Errorf("%w: invalid message length %d", arrow.ErrInvalid, size)
	}

	meta := memory.NewResizableBuffer(r.mem)
	meta.Resize(int(size))
	defer meta.Release()

	if _, err := io.ReadFull(r.r, meta.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: could not read message metadata: %v", arrow.ErrInvalid, err)
	}

	msgFB, err := safeGetRootAsMessage(meta.Bytes())
	if err != nil {
		return nil, err
	}

	body := memory.NewResizableBuffer(r.mem)
	defer body.Release()

	bodyLen := msgFB.BodyLength()
	if bodyLen < 0 {
		return nil, fmt.Errorf("%w: invalid message body length %d", arrow.ErrInvalid, bodyLen)
	}
	body.Resize(int(bodyLen))

	if _, err := io.ReadFull(r.r, body.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: could not read message body: %v", arrow.ErrInvalid, err)
	}

	if r.msg != nil {
		r.msg.Release()
		r.msg = nil
	}
	r.msg = NewMessage(meta, body)

	return r.msg, nil
}

// safeGetRootAsMessage parses the message flatbuffer, converting panics
// from truncated or garbled metadata into errors.
func safeGetRootAsMessage(b []byte) (msg *flatbuf.Message, err error) {
	defer func() {
		if p := recover(); p != nil {
			msg = nil
			err = fmt.Errorf("%w: malformed message metadata", arrow.ErrInvalid)
		}
	}()
	msg = flatbuf.GetRootAsMessage(b, 0)
	// touch the union tag to force validation of the header slot
	_ = msg.HeaderType()
	_ = msg.BodyLength()
	return msg, nil
}
