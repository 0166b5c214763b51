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

package ipc

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/colstream/ipc/internal/debug"
	"github.com/colstream/ipc/internal/flatbuf"
)

// compressor is the write half of a body-buffer codec. Each buffer is
// compressed as an independent frame.
type compressor interface {
	MaxCompressedLen(n int) int
	Reset(dst io.Writer)
	io.WriteCloser
}

type lz4Compressor struct {
	*lz4.Writer
}

func (lz4Compressor) MaxCompressedLen(n int) int {
	// the LZ4 block bound plus the frame header and footer
	return n + n/255 + 16 + 15 + 8
}

type zstdCompressor struct {
	*zstd.Encoder
}

func (z zstdCompressor) MaxCompressedLen(n int) int {
	debug.Assert(n >= 0, "MaxCompressedLen called with negative length")
	return z.Encoder.MaxEncodedSize(n)
}

func (z zstdCompressor) Close() error {
	return z.Encoder.Close()
}

// getCompressor returns a fresh compressor for the requested codec, or
// nil for the uncompressed sentinel. Only LZ4 frame and ZSTD bodies
// are ever produced.
func getCompressor(codec flatbuf.CompressionType) compressor {
	switch codec {
	case flatbuf.CompressionTypeLZ4_FRAME:
		return &lz4Compressor{lz4.NewWriter(nil)}
	case flatbuf.CompressionTypeZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			panic(fmt.Errorf("ipc: could not create zstd encoder: %w", err))
		}
		return zstdCompressor{enc}
	case -1:
		return nil
	}
	panic(fmt.Errorf("%w: invalid compression type %v", arrow.ErrInvalid, codec))
}

type decompressor interface {
	io.Reader
	Reset(r io.Reader) error
	Close()
}

type lz4Decompressor struct {
	*lz4.Reader
}

func (z *lz4Decompressor) Reset(r io.Reader) error {
	z.Reader.Reset(r)
	return nil
}

func (z *lz4Decompressor) Close() {}

type zstdDecompressor struct {
	*zstd.Decoder
}

func (z *zstdDecompressor) Close() {
	z.Decoder.Close()
}

func getDecompressor(codec flatbuf.CompressionType) decompressor {
	switch codec {
	case flatbuf.CompressionTypeLZ4_FRAME:
		return &lz4Decompressor{lz4.NewReader(nil)}
	case flatbuf.CompressionTypeZSTD:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Errorf("ipc: could not create zstd decoder: %w", err))
		}
		return &zstdDecompressor{dec}
	}
	return nil
}

// validateCodec enforces the codec allow-list before any bytes are
// produced.
func validateCodec(codec flatbuf.CompressionType) error {
	switch codec {
	case -1, flatbuf.CompressionTypeLZ4_FRAME, flatbuf.CompressionTypeZSTD:
		return nil
	}
	return fmt.Errorf("%w: unsupported compression codec %d", arrow.ErrInvalid, codec)
}

// bufferWriter is an io.Writer over a resizable memory.Buffer.
type bufferWriter struct {
	buf *memory.Buffer
	pos int
}

func (bw *bufferWriter) Write(p []byte) (n int, err error) {
	if bw.pos+len(p) >= bw.buf.Len() {
		bw.buf.Resize(bw.pos + len(p))
	}
	n = copy(bw.buf.Bytes()[bw.pos:], p)
	bw.pos += n
	return
}
