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
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// fwriter tracks the byte blocks of the messages it frames so the file
// footer can index them.
type fwriter struct {
	w     io.Writer
	pos   int64
	align int32

	dicts []fileBlock
	recs  []fileBlock
}

func (w *fwriter) Start() error { return nil }

func (w *fwriter) WritePayload(p Payload) error {
	blk := fileBlock{Offset: w.pos, Meta: 0, Body: p.size}
	n, err := writeIPCPayload(w, p, w.align, false)
	if err != nil {
		return err
	}
	blk.Meta = int32(n)
	switch p.msg {
	case MessageDictionaryBatch:
		w.dicts = append(w.dicts, blk)
	case MessageRecordBatch:
		w.recs = append(w.recs, blk)
	}
	return nil
}

func (w *fwriter) Close() error {
	// end of stream marker before the footer
	var eos [8]byte
	binary.LittleEndian.PutUint32(eos[:4], kIPCContToken)
	_, err := w.Write(eos[:])
	return err
}

func (w *fwriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

// FileWriter is a writer for the Arrow file (random access) format.
type FileWriter struct {
	w io.Writer

	mem  memory.Allocator
	pw   *fwriter
	wr   *Writer
	meta arrow.Metadata

	version MetadataVersion
	schema  *arrow.Schema

	headerWritten bool
	footerWritten bool
}

// NewFileWriter opens an Arrow file using the provided writer.
func NewFileWriter(w io.Writer, opts ...Option) (*FileWriter, error) {
	cfg := newConfig(opts...)
	if cfg.schema == nil {
		return nil, fmt.Errorf("%w: file writer must be created with a schema (use WithSchema)", arrow.ErrInvalid)
	}
	if err := validateAlignment(cfg.alignment); err != nil {
		return nil, err
	}

	pw := &fwriter{w: w, align: cfg.alignment}
	wr := NewWriterWithPayloadWriter(pw, opts...)
	wr.allowDictReplacement = false

	return &FileWriter{
		w:       w,
		mem:     cfg.alloc,
		pw:      pw,
		wr:      wr,
		meta:    cfg.footerMetadata,
		version: cfg.version,
		schema:  cfg.schema,
	}, nil
}

func (f *FileWriter) Schema() *arrow.Schema { return f.schema }

// Stats reports what has been written so far.
func (f *FileWriter) Stats() Stats { return f.wr.Stats() }

func (f *FileWriter) Write(rec arrow.Record) error {
	if f.footerWritten {
		return fmt.Errorf("%w: arrow file is already closed", arrow.ErrInvalid)
	}
	if !f.headerWritten {
		if err := f.writeHeader(); err != nil {
			return err
		}
	}
	return f.wr.Write(rec)
}

func (f *FileWriter) Close() error {
	if f.footerWritten {
		return nil
	}
	if !f.headerWritten {
		if err := f.writeHeader(); err != nil {
			return err
		}
	}

	if err := f.wr.Close(); err != nil {
		return err
	}

	if err := f.writeFooter(f.pw.dicts, f.pw.recs); err != nil {
		return err
	}
	f.footerWritten = true
	return nil
}

func (f *FileWriter) writeHeader() error {
	f.headerWritten = true
	_, err := f.pw.Write(Magic)
	if err != nil {
		return fmt.Errorf("ipc: could not write magic Arrow bytes: %w", err)
	}
	return f.align(kArrowIPCAlignment)
}

func (f *FileWriter) align(align int32) error {
	remainder := paddedLength(f.pw.pos, align) - f.pw.pos
	if remainder == 0 {
		return nil
	}
	_, err := f.pw.Write(paddingBytes[:int(remainder)])
	return err
}

func (f *FileWriter) writeFooter(dicts, recs []fileBlock) error {
	pos := f.pw.pos
	if err := writeFileFooterTo(f.schema, dicts, recs, f.meta, f.version, f.pw); err != nil {
		return fmt.Errorf("ipc: could not write file footer: %w", err)
	}

	size := f.pw.pos - pos
	if size <= 0 {
		return fmt.Errorf("%w: invalid file footer size (size=%d)", arrow.ErrInvalid, size)
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(size))
	if _, err := f.pw.Write(buf[:]); err != nil {
		return fmt.Errorf("ipc: could not write file footer size: %w", err)
	}

	if _, err := f.pw.Write(Magic); err != nil {
		return fmt.Errorf("ipc: could not write magic Arrow bytes: %w", err)
	}

	return nil
}
