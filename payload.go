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

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/bitutil"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/colstream/ipc/internal/dictutils"
)

// Payload is the in-memory representation of a single IPC message:
// the encoded metadata and the body buffers it references.
type Payload struct {
	msg  MessageType
	meta *memory.Buffer
	body []*memory.Buffer
	size int64 // length of the body, padding included
}

// Meta returns the metadata buffer of this payload. Ownership is
// transferred to the caller.
func (p *Payload) Meta() *memory.Buffer {
	if p.meta != nil {
		p.meta.Retain()
	}
	return p.meta
}

// SerializeBody concatenates the body buffers, with padding, the way
// they appear on the wire.
func (p *Payload) SerializeBody(w io.Writer) error {
	for _, buf := range p.body {
		var size int64
		if buf != nil {
			size = int64(buf.Len())
		}
		padding := bitutil.CeilByte64(size) - size
		if size > 0 {
			if _, err := w.Write(buf.Bytes()); err != nil {
				return fmt.Errorf("ipc: could not write payload message body: %w", err)
			}
		}
		if padding > 0 {
			if _, err := w.Write(paddingBytes[:padding]); err != nil {
				return fmt.Errorf("ipc: could not write payload message padding: %w", err)
			}
		}
	}
	return nil
}

func (p *Payload) Release() {
	if p.meta != nil {
		p.meta.Release()
		p.meta = nil
	}
	for i, b := range p.body {
		if b == nil {
			continue
		}
		b.Release()
		p.body[i] = nil
	}
}

type payloads []Payload

func (ps payloads) Release() {
	for i := range ps {
		ps[i].Release()
	}
}

// payloadsFromSchema returns the payloads that announce the given schema
// at the start of a stream or file.
func payloadsFromSchema(schema *arrow.Schema, mem memory.Allocator, mapper *dictutils.Mapper, version MetadataVersion) payloads {
	if mapper == nil {
		mapper = new(dictutils.Mapper)
		mapper.ImportSchema(schema)
	}

	ps := make(payloads, 1)
	ps[0].msg = MessageSchema
	ps[0].meta = writeSchemaMessage(mem, schema, mapper, version)

	return ps
}

// writeIPCPayload writes the complete encapsulated message and returns
// the number of metadata bytes written, framing prefix and padding
// included.
func writeIPCPayload(w io.Writer, p Payload, alignment int32, legacy bool) (int, error) {
	n, err := writeMessage(p.meta, alignment, w, legacy)
	if err != nil {
		return n, err
	}

	return n, p.SerializeBody(w)
}

// writeMessage writes the message metadata, prefixed by its framing and
// followed by enough padding to align the body that follows.
func writeMessage(msg *memory.Buffer, alignment int32, w io.Writer, legacy bool) (int, error) {
	var (
		err error
		n   int
	)

	prefix := int32(8)
	if legacy {
		prefix = 4
	}

	// ensure the next message starts aligned; the written length
	// excludes the prefix itself.
	flatbufSize := int32(msg.Len())
	paddedSize := int32(paddedLength(int64(flatbufSize+prefix), alignment))
	padding := paddedSize - flatbufSize - prefix

	var buf [8]byte
	switch {
	case legacy:
		binary.LittleEndian.PutUint32(buf[:4], uint32(paddedSize-prefix))
		_, err = w.Write(buf[:4])
	default:
		binary.LittleEndian.PutUint32(buf[:4], kIPCContToken)
		binary.LittleEndian.PutUint32(buf[4:], uint32(paddedSize-prefix))
		_, err = w.Write(buf[:])
	}
	if err != nil {
		return n, fmt.Errorf("ipc: could not write message prefix: %w", err)
	}
	n += int(prefix)

	if _, err = w.Write(msg.Bytes()); err != nil {
		return n, fmt.Errorf("ipc: could not write message metadata: %w", err)
	}
	n += msg.Len()

	if padding > 0 {
		if _, err = w.Write(paddingBytes[:padding]); err != nil {
			return n, fmt.Errorf("ipc: could not write message padding: %w", err)
		}
		n += int(padding)
	}

	return n, nil
}
