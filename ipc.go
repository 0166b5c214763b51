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

// Package ipc provides access to the Arrow streaming and file formats:
// writers and readers for record batch streams, random-access files,
// and a push-based stream decoder.
package ipc // import "github.com/colstream/ipc"

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/colstream/ipc/internal/flatbuf"
)

const (
	errNotArrowFile             = errString("ipc: not an Arrow file")
	errInconsistentFileMetadata = errString("ipc: file is smaller than indicated metadata size")
	errInconsistentSchema       = errString("ipc: tried to write record batch with different schema")
	errMaxRecursion             = errString("ipc: max recursion depth reached")
)

type errString string

func (s errString) Error() string {
	return string(s)
}

// ReadAtSeeker is the input for random-access readers.
type ReadAtSeeker interface {
	io.Reader
	io.Seeker
	io.ReaderAt
}

type config struct {
	alloc  memory.Allocator
	schema *arrow.Schema
	footer struct {
		offset int64
	}
	codec              flatbuf.CompressionType
	compressNP         int
	minSpaceSavings    *float64
	alignment          int32
	legacy             bool
	version            MetadataVersion
	maxRecursionDepth  int64
	emitDictDeltas     bool
	unifyDicts         bool
	ensureNativeEndian bool
	includedFields     []int
	footerMetadata     arrow.Metadata
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		alloc:              memory.NewGoAllocator(),
		codec:              -1, // uncompressed
		alignment:          kArrowIPCAlignment,
		version:            currentMetadataVersion,
		maxRecursionDepth:  kMaxNestingDepth,
		ensureNativeEndian: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option is a functional option to configure opening or creating Arrow files
// and streams.
type Option func(*config)

// WithFooterOffset specifies the Arrow footer position in bytes.
func WithFooterOffset(offset int64) Option {
	return func(cfg *config) {
		cfg.footer.offset = offset
	}
}

// WithAllocator specifies the Arrow memory allocator used while building records.
func WithAllocator(mem memory.Allocator) Option {
	return func(cfg *config) {
		cfg.alloc = mem
	}
}

// WithSchema specifies the Arrow schema to be used for reading or writing.
func WithSchema(schema *arrow.Schema) Option {
	return func(cfg *config) {
		cfg.schema = schema
	}
}

// WithLZ4 tells the writer to use LZ4 frame compression on the data
// buffers.
func WithLZ4() Option {
	return func(cfg *config) {
		cfg.codec = flatbuf.CompressionTypeLZ4_FRAME
	}
}

// WithZstd tells the writer to use ZSTD compression on the data
// buffers.
func WithZstd() Option {
	return func(cfg *config) {
		cfg.codec = flatbuf.CompressionTypeZSTD
	}
}

// WithCompressConcurrency specifies a number of goroutines to spin up for
// concurrent compression or decompression of the body buffers. If n <= 1
// the buffers are processed serially. The bytes produced are identical
// either way.
func WithCompressConcurrency(n int) Option {
	return func(cfg *config) {
		cfg.compressNP = n
	}
}

// WithMinSpaceSavings specifies a percentage of space savings for
// compression to be applied to buffers.
//
// Space savings is calculated as (1.0 - compressedSize / uncompressedSize).
//
// For example, if minSpaceSavings = 0.1, a 100-byte body buffer won't
// undergo compression if its expected compressed size exceeds 90 bytes.
// If this option is unset, compression will be used indiscriminately. If
// no codec was supplied, this option is ignored. Values outside of the
// range [0,1] are handled as an error when writing.
func WithMinSpaceSavings(savings float64) Option {
	return func(cfg *config) {
		cfg.minSpaceSavings = &savings
	}
}

// WithDictionaryDeltas specifies whether to emit dictionary deltas when a
// previously written dictionary grows by appending values. When disabled
// (the default), any change to a dictionary is written as a replacement.
func WithDictionaryDeltas(v bool) Option {
	return func(cfg *config) {
		cfg.emitDictDeltas = v
	}
}

// WithUnifyDictionaries tells the writer to unify the dictionaries of a
// table's chunked columns before writing, so the table can be emitted
// with a single dictionary per field. Only used by WriteTable.
func WithUnifyDictionaries(v bool) Option {
	return func(cfg *config) {
		cfg.unifyDicts = v
	}
}

// WithLegacyIPCFormat tells the writer to use the pre-0.15.0 message
// framing, without the continuation indicator before the metadata size.
// Readers detect either framing automatically.
func WithLegacyIPCFormat(v bool) Option {
	return func(cfg *config) {
		cfg.legacy = v
	}
}

// WithMetadataVersion selects the metadata version written into messages
// and footers. Only V4 and V5 may be written.
func WithMetadataVersion(v MetadataVersion) Option {
	return func(cfg *config) {
		cfg.version = v
	}
}

// WithAlignment specifies the byte alignment for message boundaries.
// It must be a positive power of two no greater than 64; 8 is the
// default and 64 enables direct mapping of the buffers on
// 64-byte-aligned use cases.
func WithAlignment(align int32) Option {
	return func(cfg *config) {
		cfg.alignment = align
	}
}

func validateAlignment(align int32) error {
	if align <= 0 || align&(align-1) != 0 || align > kArrowAlignment {
		return fmt.Errorf("%w: alignment must be a positive power of two no greater than %d, got %d",
			arrow.ErrInvalid, kArrowAlignment, align)
	}
	return nil
}

// WithMaxRecursionDepth sets the maximum nesting depth of fields that
// readers and writers will walk before giving up with an error.
func WithMaxRecursionDepth(depth int64) Option {
	return func(cfg *config) {
		cfg.maxRecursionDepth = depth
	}
}

// WithIncludedFields selects, by top-level index, the fields a reader
// materializes. Duplicates are discarded and the indices are applied in
// sorted order; the non-selected columns are never allocated.
func WithIncludedFields(indices ...int) Option {
	return func(cfg *config) {
		cfg.includedFields = indices
	}
}

// WithEnsureNativeEndian specifies whether a reader should byte-swap
// buffers coming from a producer with the opposite endianness. Enabled
// by default.
func WithEnsureNativeEndian(v bool) Option {
	return func(cfg *config) {
		cfg.ensureNativeEndian = v
	}
}

// WithFooterMetadata attaches application metadata to the footer of a
// file produced by a FileWriter.
func WithFooterMetadata(meta arrow.Metadata) Option {
	return func(cfg *config) {
		cfg.footerMetadata = meta
	}
}

// Stats aggregates what a writer produced or a reader consumed.
type Stats struct {
	// NumMessages counts schema, dictionary and record batch messages.
	NumMessages int64
	// NumRecordBatches counts record batch messages.
	NumRecordBatches int64
	// NumDictionaryBatches counts dictionary batch messages, including
	// deltas and replacements.
	NumDictionaryBatches int64
	// NumDictionaryDeltas counts dictionary batches flagged as deltas.
	NumDictionaryDeltas int64
	// NumReplacedDictionaries counts dictionary batches that replaced an
	// already emitted or consumed dictionary.
	NumReplacedDictionaries int64
}
