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
	"sort"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/endian"
	"github.com/apache/arrow/go/v17/arrow/memory"
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/colstream/ipc/internal/dictutils"
	"github.com/colstream/ipc/internal/flatbuf"
)

const (
	currentMetadataVersion = MetadataV5
	minMetadataVersion     = MetadataV4

	// ExtensionTypeKeyName is the key in the field metadata used for
	// an extension type's registered name.
	ExtensionTypeKeyName = "ARROW:extension:name"
	// ExtensionMetadataKeyName is the key in the field metadata used for
	// an extension type's serialized state.
	ExtensionMetadataKeyName = "ARROW:extension:metadata"

	// ARROW-109: we parse the schema and dictionaries with a stack,
	// so an excessively deep schema will crash. cap the stack depth.
	kMaxNestingDepth = 64

	// in-body buffers are padded to 8 bytes, buffer truncation rounds up
	// to 64 so existing allocations keep their alignment.
	kArrowAlignment    = 64
	kArrowIPCAlignment = 8
)

var (
	// Magic string identifying an Apache Arrow file.
	Magic = []byte("ARROW1")

	kIPCContToken uint32 = binary.LittleEndian.Uint32([]byte{0xff, 0xff, 0xff, 0xff})

	paddingBytes [kArrowAlignment]byte
)

func paddedLength(nbytes int64, alignment int32) int64 {
	align := int64(alignment)
	return ((nbytes + align - 1) / align) * align
}

type startVecFunc func(b *flatbuffers.Builder, n int) flatbuffers.UOffsetT

// fieldMetadata is a pre-flattened flatbuf.FieldNode.
type fieldMetadata struct {
	Len    int64
	Nulls  int64
	Offset int64
}

// bufferMetadata is a pre-flattened flatbuf.Buffer.
type bufferMetadata struct {
	Offset int64 // relative offset into the memory page of the starting byte of the buffer
	Len    int64 // absolute length in bytes of the buffer
}

// fileBlock locates an encapsulated message inside a file.
// Meta includes the framing prefix and the padding, Body the (padded)
// body length.
type fileBlock struct {
	Offset int64
	Meta   int32
	Body   int64

	r io.ReaderAt
}

func fileBlocksToFB(b *flatbuffers.Builder, blocks []fileBlock, start startVecFunc) flatbuffers.UOffsetT {
	start(b, len(blocks))
	for i := len(blocks) - 1; i >= 0; i-- {
		blk := blocks[i]
		flatbuf.CreateBlock(b, blk.Offset, blk.Meta, blk.Body)
	}
	return b.EndVector(len(blocks))
}

func (blk fileBlock) NewMessage() (*Message, error) {
	meta, err := blk.readMeta()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, blk.Body)
	if _, err := io.ReadFull(io.NewSectionReader(blk.r, blk.Offset+int64(blk.Meta), blk.Body), buf); err != nil {
		meta.Release()
		return nil, fmt.Errorf("ipc: could not read message body: %w", err)
	}
	body := memory.NewBufferBytes(buf)

	return NewMessage(meta, body), nil
}

// readMeta reads only the metadata part of the block and drops the
// framing prefix. Both the current encapsulated format (8 bytes, with
// a continuation indicator) and the pre-0.15.0 one (4 bytes) may
// appear in a file.
func (blk fileBlock) readMeta() (*memory.Buffer, error) {
	buf := make([]byte, blk.Meta)
	if _, err := blk.r.ReadAt(buf, blk.Offset); err != nil {
		return nil, fmt.Errorf("ipc: could not read message metadata: %w", err)
	}

	prefix := 8
	if binary.LittleEndian.Uint32(buf) != kIPCContToken {
		prefix = 4
	}
	return memory.NewBufferBytes(buf[prefix:]), nil
}

func unitFromFB(unit flatbuf.TimeUnit) arrow.TimeUnit {
	switch unit {
	case flatbuf.TimeUnitSECOND:
		return arrow.Second
	case flatbuf.TimeUnitMILLISECOND:
		return arrow.Millisecond
	case flatbuf.TimeUnitMICROSECOND:
		return arrow.Microsecond
	case flatbuf.TimeUnitNANOSECOND:
		return arrow.Nanosecond
	default:
		panic(fmt.Errorf("ipc: invalid flatbuf.TimeUnit(%d) value", unit))
	}
}

func unitToFB(unit arrow.TimeUnit) flatbuf.TimeUnit {
	switch unit {
	case arrow.Second:
		return flatbuf.TimeUnitSECOND
	case arrow.Millisecond:
		return flatbuf.TimeUnitMILLISECOND
	case arrow.Microsecond:
		return flatbuf.TimeUnitMICROSECOND
	case arrow.Nanosecond:
		return flatbuf.TimeUnitNANOSECOND
	default:
		panic(fmt.Errorf("ipc: invalid arrow.TimeUnit(%d) value", unit))
	}
}

// initFB is a helper function to handle flatbuffers' polymorphism.
func initFB(t interface {
	Table() flatbuffers.Table
	Init([]byte, flatbuffers.UOffsetT)
}, f func(tbl *flatbuffers.Table) bool) {
	tbl := t.Table()
	if !f(&tbl) {
		panic(fmt.Errorf("ipc: could not initialize table from flatbuffer"))
	}
	t.Init(tbl.Bytes, tbl.Pos)
}

func fieldFromFB(field *flatbuf.Field, pos dictutils.FieldPos, memo *dictutils.Memo) (arrow.Field, error) {
	var (
		err error
		o   arrow.Field
	)

	o.Name = string(field.Name())
	o.Nullable = field.Nullable()
	o.Metadata, err = metadataFromFB(field)
	if err != nil {
		return o, err
	}

	n := field.ChildrenLength()
	children := make([]arrow.Field, n)
	for i := range children {
		var childFB flatbuf.Field
		if !field.Children(&childFB, i) {
			return o, fmt.Errorf("ipc: could not load field child %d", i)
		}
		child, err := fieldFromFB(&childFB, pos.Child(int32(i)), memo)
		if err != nil {
			return o, fmt.Errorf("ipc: could not convert field child %d: %w", i, err)
		}
		children[i] = child
	}

	o.Type, err = typeFromFB(field, pos, children, &o.Metadata, memo)
	if err != nil {
		return o, fmt.Errorf("ipc: could not convert field type: %w", err)
	}

	return o, nil
}

func fieldToFB(b *flatbuffers.Builder, pos dictutils.FieldPos, field arrow.Field, mapper *dictutils.Mapper) flatbuffers.UOffsetT {
	var visitor = fieldVisitor{b: b, pos: pos, mapper: mapper, meta: make(map[string]string)}
	return visitor.result(field)
}

type fieldVisitor struct {
	b      *flatbuffers.Builder
	pos    dictutils.FieldPos
	mapper *dictutils.Mapper
	dtype  flatbuf.Type
	offset flatbuffers.UOffsetT
	kids   []flatbuffers.UOffsetT
	meta   map[string]string
}

func (fv *fieldVisitor) intType(bw int32, signed bool) {
	fv.dtype = flatbuf.TypeInt
	flatbuf.IntStart(fv.b)
	flatbuf.IntAddBitWidth(fv.b, bw)
	flatbuf.IntAddIsSigned(fv.b, signed)
	fv.offset = flatbuf.IntEnd(fv.b)
}

func (fv *fieldVisitor) floatType(prec flatbuf.Precision) {
	fv.dtype = flatbuf.TypeFloatingPoint
	flatbuf.FloatingPointStart(fv.b)
	flatbuf.FloatingPointAddPrecision(fv.b, prec)
	fv.offset = flatbuf.FloatingPointEnd(fv.b)
}

func (fv *fieldVisitor) timeType(unit arrow.TimeUnit, bw int32) {
	fv.dtype = flatbuf.TypeTime
	flatbuf.TimeStart(fv.b)
	flatbuf.TimeAddUnit(fv.b, unitToFB(unit))
	flatbuf.TimeAddBitWidth(fv.b, bw)
	fv.offset = flatbuf.TimeEnd(fv.b)
}

func (fv *fieldVisitor) visit(field arrow.Field) {
	dt := field.Type
	switch dt := dt.(type) {
	case *arrow.NullType:
		fv.dtype = flatbuf.TypeNull
		flatbuf.NullStart(fv.b)
		fv.offset = flatbuf.NullEnd(fv.b)

	case *arrow.BooleanType:
		fv.dtype = flatbuf.TypeBool
		flatbuf.BoolStart(fv.b)
		fv.offset = flatbuf.BoolEnd(fv.b)

	case *arrow.Int8Type:
		fv.intType(8, true)
	case *arrow.Int16Type:
		fv.intType(16, true)
	case *arrow.Int32Type:
		fv.intType(32, true)
	case *arrow.Int64Type:
		fv.intType(64, true)
	case *arrow.Uint8Type:
		fv.intType(8, false)
	case *arrow.Uint16Type:
		fv.intType(16, false)
	case *arrow.Uint32Type:
		fv.intType(32, false)
	case *arrow.Uint64Type:
		fv.intType(64, false)

	case *arrow.Float16Type:
		fv.floatType(flatbuf.PrecisionHALF)
	case *arrow.Float32Type:
		fv.floatType(flatbuf.PrecisionSINGLE)
	case *arrow.Float64Type:
		fv.floatType(flatbuf.PrecisionDOUBLE)

	case *arrow.Decimal128Type:
		fv.dtype = flatbuf.TypeDecimal
		flatbuf.DecimalStart(fv.b)
		flatbuf.DecimalAddPrecision(fv.b, dt.Precision)
		flatbuf.DecimalAddScale(fv.b, dt.Scale)
		flatbuf.DecimalAddBitWidth(fv.b, 128)
		fv.offset = flatbuf.DecimalEnd(fv.b)

	case *arrow.Decimal256Type:
		fv.dtype = flatbuf.TypeDecimal
		flatbuf.DecimalStart(fv.b)
		flatbuf.DecimalAddPrecision(fv.b, dt.Precision)
		flatbuf.DecimalAddScale(fv.b, dt.Scale)
		flatbuf.DecimalAddBitWidth(fv.b, 256)
		fv.offset = flatbuf.DecimalEnd(fv.b)

	case *arrow.BinaryType:
		fv.dtype = flatbuf.TypeBinary
		flatbuf.BinaryStart(fv.b)
		fv.offset = flatbuf.BinaryEnd(fv.b)

	case *arrow.LargeBinaryType:
		fv.dtype = flatbuf.TypeLargeBinary
		flatbuf.LargeBinaryStart(fv.b)
		fv.offset = flatbuf.LargeBinaryEnd(fv.b)

	case *arrow.StringType:
		fv.dtype = flatbuf.TypeUtf8
		flatbuf.Utf8Start(fv.b)
		fv.offset = flatbuf.Utf8End(fv.b)

	case *arrow.LargeStringType:
		fv.dtype = flatbuf.TypeLargeUtf8
		flatbuf.LargeUtf8Start(fv.b)
		fv.offset = flatbuf.LargeUtf8End(fv.b)

	case *arrow.FixedSizeBinaryType:
		fv.dtype = flatbuf.TypeFixedSizeBinary
		flatbuf.FixedSizeBinaryStart(fv.b)
		flatbuf.FixedSizeBinaryAddByteWidth(fv.b, int32(dt.ByteWidth))
		fv.offset = flatbuf.FixedSizeBinaryEnd(fv.b)

	case *arrow.Date32Type:
		fv.dtype = flatbuf.TypeDate
		flatbuf.DateStart(fv.b)
		flatbuf.DateAddUnit(fv.b, flatbuf.DateUnitDAY)
		fv.offset = flatbuf.DateEnd(fv.b)

	case *arrow.Date64Type:
		fv.dtype = flatbuf.TypeDate
		flatbuf.DateStart(fv.b)
		flatbuf.DateAddUnit(fv.b, flatbuf.DateUnitMILLISECOND)
		fv.offset = flatbuf.DateEnd(fv.b)

	case *arrow.Time32Type:
		fv.timeType(dt.Unit, 32)

	case *arrow.Time64Type:
		fv.timeType(dt.Unit, 64)

	case *arrow.TimestampType:
		fv.dtype = flatbuf.TypeTimestamp
		tz := fv.b.CreateString(dt.TimeZone)
		flatbuf.TimestampStart(fv.b)
		flatbuf.TimestampAddUnit(fv.b, unitToFB(dt.Unit))
		flatbuf.TimestampAddTimezone(fv.b, tz)
		fv.offset = flatbuf.TimestampEnd(fv.b)

	case *arrow.DurationType:
		fv.dtype = flatbuf.TypeDuration
		flatbuf.DurationStart(fv.b)
		flatbuf.DurationAddUnit(fv.b, unitToFB(dt.Unit))
		fv.offset = flatbuf.DurationEnd(fv.b)

	case *arrow.MonthIntervalType:
		fv.dtype = flatbuf.TypeInterval
		flatbuf.IntervalStart(fv.b)
		flatbuf.IntervalAddUnit(fv.b, flatbuf.IntervalUnitYEAR_MONTH)
		fv.offset = flatbuf.IntervalEnd(fv.b)

	case *arrow.DayTimeIntervalType:
		fv.dtype = flatbuf.TypeInterval
		flatbuf.IntervalStart(fv.b)
		flatbuf.IntervalAddUnit(fv.b, flatbuf.IntervalUnitDAY_TIME)
		fv.offset = flatbuf.IntervalEnd(fv.b)

	case *arrow.MonthDayNanoIntervalType:
		fv.dtype = flatbuf.TypeInterval
		flatbuf.IntervalStart(fv.b)
		flatbuf.IntervalAddUnit(fv.b, flatbuf.IntervalUnitMONTH_DAY_NANO)
		fv.offset = flatbuf.IntervalEnd(fv.b)

	case *arrow.ListType:
		fv.dtype = flatbuf.TypeList
		fv.kids = append(fv.kids, fieldToFB(fv.b, fv.pos.Child(0), dt.ElemField(), fv.mapper))
		flatbuf.ListStart(fv.b)
		fv.offset = flatbuf.ListEnd(fv.b)

	case *arrow.LargeListType:
		fv.dtype = flatbuf.TypeLargeList
		fv.kids = append(fv.kids, fieldToFB(fv.b, fv.pos.Child(0), dt.ElemField(), fv.mapper))
		flatbuf.LargeListStart(fv.b)
		fv.offset = flatbuf.LargeListEnd(fv.b)

	case *arrow.FixedSizeListType:
		fv.dtype = flatbuf.TypeFixedSizeList
		fv.kids = append(fv.kids, fieldToFB(fv.b, fv.pos.Child(0), dt.ElemField(), fv.mapper))
		flatbuf.FixedSizeListStart(fv.b)
		flatbuf.FixedSizeListAddListSize(fv.b, dt.Len())
		fv.offset = flatbuf.FixedSizeListEnd(fv.b)

	case *arrow.StructType:
		fv.dtype = flatbuf.TypeStruct_
		offsets := make([]flatbuffers.UOffsetT, dt.NumFields())
		for i, f := range dt.Fields() {
			offsets[i] = fieldToFB(fv.b, fv.pos.Child(int32(i)), f, fv.mapper)
		}
		flatbuf.Struct_Start(fv.b)
		fv.offset = flatbuf.Struct_End(fv.b)
		fv.kids = append(fv.kids, offsets...)

	case *arrow.MapType:
		fv.dtype = flatbuf.TypeMap
		fv.kids = append(fv.kids, fieldToFB(fv.b, fv.pos.Child(0), dt.ElemField(), fv.mapper))
		flatbuf.MapStart(fv.b)
		flatbuf.MapAddKeysSorted(fv.b, dt.KeysSorted)
		fv.offset = flatbuf.MapEnd(fv.b)

	case arrow.UnionType:
		fv.dtype = flatbuf.TypeUnion
		offsets := make([]flatbuffers.UOffsetT, len(dt.Fields()))
		for i, f := range dt.Fields() {
			offsets[i] = fieldToFB(fv.b, fv.pos.Child(int32(i)), f, fv.mapper)
		}
		codes := dt.TypeCodes()
		flatbuf.UnionStartTypeIdsVector(fv.b, len(codes))
		for i := len(codes) - 1; i >= 0; i-- {
			fv.b.PrependInt32(int32(codes[i]))
		}
		fbTypeIDs := fv.b.EndVector(len(codes))
		mode := flatbuf.UnionModeSparse
		if dt.Mode() == arrow.DenseMode {
			mode = flatbuf.UnionModeDense
		}
		flatbuf.UnionStart(fv.b)
		flatbuf.UnionAddMode(fv.b, mode)
		flatbuf.UnionAddTypeIds(fv.b, fbTypeIDs)
		fv.offset = flatbuf.UnionEnd(fv.b)
		fv.kids = append(fv.kids, offsets...)

	case *arrow.DictionaryType:
		// the type slot carries the value type; the encoding itself is
		// written by fieldVisitor.result.
		fv.visit(arrow.Field{Name: field.Name, Type: dt.ValueType, Nullable: field.Nullable, Metadata: field.Metadata})

	case arrow.ExtensionType:
		fv.visit(arrow.Field{Name: field.Name, Type: dt.StorageType(), Nullable: field.Nullable, Metadata: field.Metadata})
		fv.meta[ExtensionTypeKeyName] = dt.ExtensionName()
		fv.meta[ExtensionMetadataKeyName] = dt.Serialize()

	default:
		panic(fmt.Errorf("%w: invalid data type %v", arrow.ErrNotImplemented, dt))
	}
}

func (fv *fieldVisitor) result(field arrow.Field) flatbuffers.UOffsetT {
	nameFB := fv.b.CreateString(field.Name)

	fv.visit(field)

	flatbuf.FieldStartChildrenVector(fv.b, len(fv.kids))
	for i := len(fv.kids) - 1; i >= 0; i-- {
		fv.b.PrependUOffsetT(fv.kids[i])
	}
	kidsFB := fv.b.EndVector(len(fv.kids))

	var dictFB flatbuffers.UOffsetT
	if dt, ok := field.Type.(*arrow.DictionaryType); ok {
		idxType := dt.IndexType.(arrow.FixedWidthDataType)
		flatbuf.IntStart(fv.b)
		flatbuf.IntAddBitWidth(fv.b, int32(idxType.BitWidth()))
		flatbuf.IntAddIsSigned(fv.b, isSignedInt(idxType.ID()))
		idxFB := flatbuf.IntEnd(fv.b)

		id, err := fv.mapper.GetFieldID(fv.pos.Path())
		if err != nil {
			panic(fmt.Errorf("ipc: dictionary field with no assigned id: %w", err))
		}
		flatbuf.DictionaryEncodingStart(fv.b)
		flatbuf.DictionaryEncodingAddId(fv.b, id)
		flatbuf.DictionaryEncodingAddIndexType(fv.b, idxFB)
		flatbuf.DictionaryEncodingAddIsOrdered(fv.b, dt.Ordered)
		dictFB = flatbuf.DictionaryEncodingEnd(fv.b)
	}

	var (
		metaFB flatbuffers.UOffsetT
		kvs    []flatbuffers.UOffsetT
	)
	for i, k := range field.Metadata.Keys() {
		v := field.Metadata.Values()[i]
		kk := fv.b.CreateString(k)
		vv := fv.b.CreateString(v)
		flatbuf.KeyValueStart(fv.b)
		flatbuf.KeyValueAddKey(fv.b, kk)
		flatbuf.KeyValueAddValue(fv.b, vv)
		kvs = append(kvs, flatbuf.KeyValueEnd(fv.b))
	}
	{
		// deterministic order for the visitor-provided pairs
		keys := make([]string, 0, len(fv.meta))
		for k := range fv.meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			kk := fv.b.CreateString(k)
			vv := fv.b.CreateString(fv.meta[k])
			flatbuf.KeyValueStart(fv.b)
			flatbuf.KeyValueAddKey(fv.b, kk)
			flatbuf.KeyValueAddValue(fv.b, vv)
			kvs = append(kvs, flatbuf.KeyValueEnd(fv.b))
		}
	}
	if len(kvs) > 0 {
		flatbuf.FieldStartCustomMetadataVector(fv.b, len(kvs))
		for i := len(kvs) - 1; i >= 0; i-- {
			fv.b.PrependUOffsetT(kvs[i])
		}
		metaFB = fv.b.EndVector(len(kvs))
	}

	flatbuf.FieldStart(fv.b)
	flatbuf.FieldAddName(fv.b, nameFB)
	flatbuf.FieldAddNullable(fv.b, field.Nullable)
	flatbuf.FieldAddTypeType(fv.b, fv.dtype)
	flatbuf.FieldAddType(fv.b, fv.offset)
	flatbuf.FieldAddDictionary(fv.b, dictFB)
	flatbuf.FieldAddChildren(fv.b, kidsFB)
	flatbuf.FieldAddCustomMetadata(fv.b, metaFB)

	return flatbuf.FieldEnd(fv.b)
}

func isSignedInt(id arrow.Type) bool {
	switch id {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64:
		return true
	}
	return false
}

func typeFromFB(field *flatbuf.Field, pos dictutils.FieldPos, children []arrow.Field, md *arrow.Metadata, memo *dictutils.Memo) (arrow.DataType, error) {
	dt, err := concreteTypeFromFB(field.TypeType(), field, children)
	if err != nil {
		return dt, err
	}

	if encoding := field.Dictionary(nil); encoding != nil {
		var idxType arrow.DataType = arrow.PrimitiveTypes.Int32
		if intFB := encoding.IndexType(nil); intFB != nil {
			idxType, err = intFromFB(intFB)
			if err != nil {
				return nil, err
			}
		}
		if memo != nil {
			if err := memo.Mapper.AddField(encoding.Id(), pos.Path()); err != nil {
				return nil, err
			}
			if err := memo.AddType(encoding.Id(), dt); err != nil {
				return nil, err
			}
		}
		dt = &arrow.DictionaryType{IndexType: idxType, ValueType: dt, Ordered: encoding.IsOrdered()}
	}

	// reconstruct a registered extension type from the field metadata.
	if idx := md.FindKey(ExtensionTypeKeyName); idx >= 0 {
		extName := md.Values()[idx]
		if extType := arrow.GetExtensionType(extName); extType != nil {
			var extData string
			if i := md.FindKey(ExtensionMetadataKeyName); i >= 0 {
				extData = md.Values()[i]
			}
			dt, err = extType.Deserialize(dt, extData)
			if err != nil {
				return dt, err
			}
			*md = trimExtensionKeys(*md)
		}
		// an unregistered extension type is kept as its storage type,
		// with the extension keys preserved in the field metadata.
	}

	return dt, nil
}

func trimExtensionKeys(md arrow.Metadata) arrow.Metadata {
	var (
		keys = make([]string, 0, md.Len())
		vals = make([]string, 0, md.Len())
	)
	for i, k := range md.Keys() {
		if k == ExtensionTypeKeyName || k == ExtensionMetadataKeyName {
			continue
		}
		keys = append(keys, k)
		vals = append(vals, md.Values()[i])
	}
	return arrow.NewMetadata(keys, vals)
}

func concreteTypeFromFB(typ flatbuf.Type, field *flatbuf.Field, children []arrow.Field) (arrow.DataType, error) {
	switch typ {
	case flatbuf.TypeNONE:
		return nil, fmt.Errorf("%w: type metadata cannot be none", arrow.ErrInvalid)

	case flatbuf.TypeNull:
		return arrow.Null, nil

	case flatbuf.TypeInt:
		var dt flatbuf.Int
		initFB(&dt, field.Type)
		return intFromFB(&dt)

	case flatbuf.TypeFloatingPoint:
		var dt flatbuf.FloatingPoint
		initFB(&dt, field.Type)
		return floatFromFB(&dt)

	case flatbuf.TypeDecimal:
		var dt flatbuf.Decimal
		initFB(&dt, field.Type)
		switch dt.BitWidth() {
		case 128:
			return &arrow.Decimal128Type{Precision: dt.Precision(), Scale: dt.Scale()}, nil
		case 256:
			return &arrow.Decimal256Type{Precision: dt.Precision(), Scale: dt.Scale()}, nil
		}
		return nil, fmt.Errorf("%w: invalid decimal bit width %d", arrow.ErrInvalid, dt.BitWidth())

	case flatbuf.TypeBinary:
		return arrow.BinaryTypes.Binary, nil

	case flatbuf.TypeLargeBinary:
		return arrow.BinaryTypes.LargeBinary, nil

	case flatbuf.TypeUtf8:
		return arrow.BinaryTypes.String, nil

	case flatbuf.TypeLargeUtf8:
		return arrow.BinaryTypes.LargeString, nil

	case flatbuf.TypeFixedSizeBinary:
		var dt flatbuf.FixedSizeBinary
		initFB(&dt, field.Type)
		return &arrow.FixedSizeBinaryType{ByteWidth: int(dt.ByteWidth())}, nil

	case flatbuf.TypeBool:
		return arrow.FixedWidthTypes.Boolean, nil

	case flatbuf.TypeDate:
		var dt flatbuf.Date
		initFB(&dt, field.Type)
		switch dt.Unit() {
		case flatbuf.DateUnitDAY:
			return arrow.FixedWidthTypes.Date32, nil
		case flatbuf.DateUnitMILLISECOND:
			return arrow.FixedWidthTypes.Date64, nil
		}
		return nil, fmt.Errorf("%w: invalid date unit %v", arrow.ErrInvalid, dt.Unit())

	case flatbuf.TypeTime:
		var dt flatbuf.Time
		initFB(&dt, field.Type)
		switch dt.BitWidth() {
		case 32:
			switch dt.Unit() {
			case flatbuf.TimeUnitSECOND, flatbuf.TimeUnitMILLISECOND:
				return &arrow.Time32Type{Unit: unitFromFB(dt.Unit())}, nil
			}
			return nil, fmt.Errorf("%w: invalid time unit %v for 32-bit time", arrow.ErrInvalid, dt.Unit())
		case 64:
			switch dt.Unit() {
			case flatbuf.TimeUnitMICROSECOND, flatbuf.TimeUnitNANOSECOND:
				return &arrow.Time64Type{Unit: unitFromFB(dt.Unit())}, nil
			}
			return nil, fmt.Errorf("%w: invalid time unit %v for 64-bit time", arrow.ErrInvalid, dt.Unit())
		}
		return nil, fmt.Errorf("%w: invalid time bit width %d", arrow.ErrInvalid, dt.BitWidth())

	case flatbuf.TypeTimestamp:
		var dt flatbuf.Timestamp
		initFB(&dt, field.Type)
		return &arrow.TimestampType{Unit: unitFromFB(dt.Unit()), TimeZone: string(dt.Timezone())}, nil

	case flatbuf.TypeDuration:
		var dt flatbuf.Duration
		initFB(&dt, field.Type)
		return &arrow.DurationType{Unit: unitFromFB(dt.Unit())}, nil

	case flatbuf.TypeInterval:
		var dt flatbuf.Interval
		initFB(&dt, field.Type)
		switch dt.Unit() {
		case flatbuf.IntervalUnitYEAR_MONTH:
			return arrow.FixedWidthTypes.MonthInterval, nil
		case flatbuf.IntervalUnitDAY_TIME:
			return arrow.FixedWidthTypes.DayTimeInterval, nil
		case flatbuf.IntervalUnitMONTH_DAY_NANO:
			return arrow.FixedWidthTypes.MonthDayNanoInterval, nil
		}
		return nil, fmt.Errorf("%w: invalid interval unit %v", arrow.ErrInvalid, dt.Unit())

	case flatbuf.TypeList:
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: list must have exactly 1 child field (got=%d)", arrow.ErrInvalid, len(children))
		}
		return arrow.ListOfField(children[0]), nil

	case flatbuf.TypeLargeList:
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: large list must have exactly 1 child field (got=%d)", arrow.ErrInvalid, len(children))
		}
		return arrow.LargeListOfField(children[0]), nil

	case flatbuf.TypeFixedSizeList:
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: fixed-size list must have exactly 1 child field (got=%d)", arrow.ErrInvalid, len(children))
		}
		var dt flatbuf.FixedSizeList
		initFB(&dt, field.Type)
		return arrow.FixedSizeListOfField(dt.ListSize(), children[0]), nil

	case flatbuf.TypeStruct_:
		return arrow.StructOf(children...), nil

	case flatbuf.TypeMap:
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: map must have exactly 1 child field (got=%d)", arrow.ErrInvalid, len(children))
		}
		entries, ok := children[0].Type.(*arrow.StructType)
		if !ok || entries.NumFields() != 2 {
			return nil, fmt.Errorf("%w: map child must be a struct with 2 fields", arrow.ErrInvalid)
		}
		var dt flatbuf.Map
		initFB(&dt, field.Type)
		key, item := entries.Field(0), entries.Field(1)
		mt := arrow.MapOfWithMetadata(key.Type, key.Metadata, item.Type, item.Metadata)
		mt.SetItemNullable(item.Nullable)
		mt.KeysSorted = dt.KeysSorted()
		return mt, nil

	case flatbuf.TypeUnion:
		var dt flatbuf.Union
		initFB(&dt, field.Type)
		codes := make([]arrow.UnionTypeCode, dt.TypeIdsLength())
		for i := range codes {
			codes[i] = arrow.UnionTypeCode(dt.TypeIds(i))
		}
		if len(codes) == 0 {
			codes = make([]arrow.UnionTypeCode, len(children))
			for i := range codes {
				codes[i] = arrow.UnionTypeCode(i)
			}
		}
		switch dt.Mode() {
		case flatbuf.UnionModeSparse:
			return arrow.SparseUnionOf(children, codes), nil
		case flatbuf.UnionModeDense:
			return arrow.DenseUnionOf(children, codes), nil
		}
		return nil, fmt.Errorf("%w: invalid union mode %v", arrow.ErrInvalid, dt.Mode())

	default:
		return nil, fmt.Errorf("%w: type %v not supported", arrow.ErrNotImplemented, flatbuf.EnumNamesType[typ])
	}
}

func intFromFB(data *flatbuf.Int) (arrow.DataType, error) {
	bw := data.BitWidth()
	if bw > 64 {
		return nil, fmt.Errorf("%w: integers with more than 64 bits not implemented (bits=%d)", arrow.ErrNotImplemented, bw)
	}
	if bw < 8 {
		return nil, fmt.Errorf("%w: integers with less than 8 bits not implemented (bits=%d)", arrow.ErrNotImplemented, bw)
	}

	switch bw {
	case 8:
		if data.IsSigned() {
			return arrow.PrimitiveTypes.Int8, nil
		}
		return arrow.PrimitiveTypes.Uint8, nil
	case 16:
		if data.IsSigned() {
			return arrow.PrimitiveTypes.Int16, nil
		}
		return arrow.PrimitiveTypes.Uint16, nil
	case 32:
		if data.IsSigned() {
			return arrow.PrimitiveTypes.Int32, nil
		}
		return arrow.PrimitiveTypes.Uint32, nil
	case 64:
		if data.IsSigned() {
			return arrow.PrimitiveTypes.Int64, nil
		}
		return arrow.PrimitiveTypes.Uint64, nil
	default:
		return nil, fmt.Errorf("%w: integers with %d bits not implemented", arrow.ErrNotImplemented, bw)
	}
}

func floatFromFB(data *flatbuf.FloatingPoint) (arrow.DataType, error) {
	switch p := data.Precision(); p {
	case flatbuf.PrecisionHALF:
		return arrow.FixedWidthTypes.Float16, nil
	case flatbuf.PrecisionSINGLE:
		return arrow.PrimitiveTypes.Float32, nil
	case flatbuf.PrecisionDOUBLE:
		return arrow.PrimitiveTypes.Float64, nil
	default:
		return nil, fmt.Errorf("%w: floating point type with %d precision not implemented", arrow.ErrNotImplemented, p)
	}
}

func metadataFromFB(field *flatbuf.Field) (arrow.Metadata, error) {
	var (
		keys = make([]string, field.CustomMetadataLength())
		vals = make([]string, field.CustomMetadataLength())
	)

	for i := range keys {
		var kv flatbuf.KeyValue
		if !field.CustomMetadata(&kv, i) {
			return arrow.Metadata{}, fmt.Errorf("ipc: could not read key-value %d from flatbuffer", i)
		}
		keys[i] = string(kv.Key())
		vals[i] = string(kv.Value())
	}

	return arrow.NewMetadata(keys, vals), nil
}

func metadataToFB(b *flatbuffers.Builder, meta arrow.Metadata, start startVecFunc) flatbuffers.UOffsetT {
	if meta.Len() == 0 {
		return 0
	}

	n := meta.Len()
	kvs := make([]flatbuffers.UOffsetT, n)
	for i := range kvs {
		k := b.CreateString(meta.Keys()[i])
		v := b.CreateString(meta.Values()[i])
		flatbuf.KeyValueStart(b)
		flatbuf.KeyValueAddKey(b, k)
		flatbuf.KeyValueAddValue(b, v)
		kvs[i] = flatbuf.KeyValueEnd(b)
	}

	start(b, n)
	for i := n - 1; i >= 0; i-- {
		b.PrependUOffsetT(kvs[i])
	}
	return b.EndVector(n)
}

func schemaFromFB(schema *flatbuf.Schema, memo *dictutils.Memo) (*arrow.Schema, error) {
	var (
		err    error
		pos    = dictutils.NewFieldPos()
		fields = make([]arrow.Field, schema.FieldsLength())
	)

	for i := range fields {
		var field flatbuf.Field
		if !schema.Fields(&field, i) {
			return nil, fmt.Errorf("ipc: could not read field %d from schema", i)
		}

		fields[i], err = fieldFromFB(&field, pos.Child(int32(i)), memo)
		if err != nil {
			return nil, fmt.Errorf("ipc: could not convert field %d from flatbuf: %w", i, err)
		}
	}

	md, err := metadataFromSchemaFB(schema)
	if err != nil {
		return nil, fmt.Errorf("ipc: could not convert schema metadata from flatbuf: %w", err)
	}

	return arrow.NewSchemaWithEndian(fields, &md, endian.Endianness(schema.Endianness())), nil
}

func metadataFromSchemaFB(schema *flatbuf.Schema) (arrow.Metadata, error) {
	var (
		keys = make([]string, schema.CustomMetadataLength())
		vals = make([]string, schema.CustomMetadataLength())
	)

	for i := range keys {
		var kv flatbuf.KeyValue
		if !schema.CustomMetadata(&kv, i) {
			return arrow.Metadata{}, fmt.Errorf("ipc: could not read key-value %d from flatbuffer", i)
		}
		keys[i] = string(kv.Key())
		vals[i] = string(kv.Value())
	}

	return arrow.NewMetadata(keys, vals), nil
}

func schemaToFB(b *flatbuffers.Builder, schema *arrow.Schema, mapper *dictutils.Mapper) flatbuffers.UOffsetT {
	if mapper.NumFields() == 0 {
		mapper.ImportSchema(schema)
	}

	fields := make([]flatbuffers.UOffsetT, schema.NumFields())
	pos := dictutils.NewFieldPos()
	for i, field := range schema.Fields() {
		fields[i] = fieldToFB(b, pos.Child(int32(i)), field, mapper)
	}

	flatbuf.SchemaStartFieldsVector(b, len(fields))
	for i := len(fields) - 1; i >= 0; i-- {
		b.PrependUOffsetT(fields[i])
	}
	fieldsFB := b.EndVector(len(fields))

	metaFB := metadataToFB(b, schema.Metadata(), flatbuf.SchemaStartCustomMetadataVector)

	flatbuf.SchemaStart(b)
	flatbuf.SchemaAddEndianness(b, flatbuf.Endianness(schema.Endianness()))
	flatbuf.SchemaAddFields(b, fieldsFB)
	flatbuf.SchemaAddCustomMetadata(b, metaFB)
	return flatbuf.SchemaEnd(b)
}

func schemaFromMessage(msg *Message, memo *dictutils.Memo) (*arrow.Schema, error) {
	if got, want := msg.Type(), MessageSchema; got != want {
		return nil, fmt.Errorf("%w: invalid message type (got=%v, want=%v)", arrow.ErrInvalid, got, want)
	}

	var schemaFB flatbuf.Schema
	initFB(&schemaFB, msg.msg.Header)

	return schemaFromFB(&schemaFB, memo)
}

// writeMessageFB assembles a Message flatbuffer wrapping the given header
// and copies the finished bytes into a fresh buffer.
func writeMessageFB(b *flatbuffers.Builder, mem memory.Allocator, hdrType flatbuf.MessageHeader, hdr flatbuffers.UOffsetT, bodyLen int64, version MetadataVersion) *memory.Buffer {
	flatbuf.MessageStart(b)
	flatbuf.MessageAddVersion(b, flatbuf.MetadataVersion(version))
	flatbuf.MessageAddHeaderType(b, hdrType)
	flatbuf.MessageAddHeader(b, hdr)
	flatbuf.MessageAddBodyLength(b, bodyLen)
	msg := flatbuf.MessageEnd(b)
	b.Finish(msg)

	raw := b.FinishedBytes()
	buf := memory.NewResizableBuffer(mem)
	buf.Resize(len(raw))
	copy(buf.Bytes(), raw)
	return buf
}

func writeSchemaMessage(mem memory.Allocator, schema *arrow.Schema, mapper *dictutils.Mapper, version MetadataVersion) *memory.Buffer {
	b := flatbuffers.NewBuilder(1024)
	schemaFB := schemaToFB(b, schema, mapper)
	return writeMessageFB(b, mem, flatbuf.MessageHeaderSchema, schemaFB, 0, version)
}

func writeFileFooter(schema *arrow.Schema, dicts, recs []fileBlock, w io.Writer) error {
	return writeFileFooterTo(schema, dicts, recs, arrow.Metadata{}, currentMetadataVersion, w)
}

func writeFileFooterTo(schema *arrow.Schema, dicts, recs []fileBlock, meta arrow.Metadata, version MetadataVersion, w io.Writer) error {
	var (
		b    = flatbuffers.NewBuilder(1024)
		memo = dictutils.NewMemo()
	)
	defer memo.Clear()

	schemaFB := schemaToFB(b, schema, &memo.Mapper)
	dictsFB := fileBlocksToFB(b, dicts, flatbuf.FooterStartDictionariesVector)
	recsFB := fileBlocksToFB(b, recs, flatbuf.FooterStartRecordBatchesVector)
	metaFB := metadataToFB(b, meta, flatbuf.FooterStartCustomMetadataVector)

	flatbuf.FooterStart(b)
	flatbuf.FooterAddVersion(b, flatbuf.MetadataVersion(version))
	flatbuf.FooterAddSchema(b, schemaFB)
	flatbuf.FooterAddDictionaries(b, dictsFB)
	flatbuf.FooterAddRecordBatches(b, recsFB)
	flatbuf.FooterAddCustomMetadata(b, metaFB)
	footer := flatbuf.FooterEnd(b)

	b.Finish(footer)

	_, err := w.Write(b.FinishedBytes())
	return err
}

// checkFBVersion validates the metadata version of an incoming message
// or footer. only V4 and V5 metadata are understood.
func checkFBVersion(v flatbuf.MetadataVersion) error {
	switch MetadataVersion(v) {
	case MetadataV4, MetadataV5:
		return nil
	}
	return fmt.Errorf("%w: unsupported metadata version %v", arrow.ErrInvalid, MetadataVersion(v))
}
