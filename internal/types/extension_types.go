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

// Package types contains user-defined extension types used by tests.
package types // import "github.com/colstream/ipc/internal/types"

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/google/uuid"
)

// UUIDArray is a simple array which is a FixedSizeBinary(16)
type UUIDArray struct {
	array.ExtensionArrayBase
}

func (a *UUIDArray) Value(i int) uuid.UUID {
	if a.IsNull(i) {
		return uuid.Nil
	}
	return uuid.Must(uuid.FromBytes(a.Storage().(*array.FixedSizeBinary).Value(i)))
}

// UUIDType is a simple extension type that represents a FixedSizeBinary(16)
// to be used for representing UUIDs
type UUIDType struct {
	arrow.ExtensionBase
}

// NewUUIDType is a convenience function to create an instance of UUIDType
// with the correct storage type
func NewUUIDType() *UUIDType {
	return &UUIDType{ExtensionBase: arrow.ExtensionBase{Storage: &arrow.FixedSizeBinaryType{ByteWidth: 16}}}
}

func (*UUIDType) ArrayType() reflect.Type { return reflect.TypeOf(UUIDArray{}) }

func (*UUIDType) ExtensionName() string { return "uuid" }

func (u *UUIDType) ExtensionEquals(other arrow.ExtensionType) bool {
	return u.ExtensionName() == other.ExtensionName()
}

func (*UUIDType) Serialize() string { return "uuid-serialized" }

func (*UUIDType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if data != "uuid-serialized" {
		return nil, fmt.Errorf("type identifier did not match: '%s'", data)
	}
	if !arrow.TypeEqual(storageType, &arrow.FixedSizeBinaryType{ByteWidth: 16}) {
		return nil, fmt.Errorf("invalid storage type for UUIDType: %s", storageType.Name())
	}
	return NewUUIDType(), nil
}

// Parametric1Array is a simple int32 array for use with the Parametric1Type
type Parametric1Array struct {
	array.ExtensionArrayBase
}

// Parametric2Array is a simple int32 array for use with the Parametric2Type
type Parametric2Array struct {
	array.ExtensionArrayBase
}

// Parametric1Type is a parameterized type where the extension name is
// always the same.
type Parametric1Type struct {
	arrow.ExtensionBase

	param int32
}

// NewParametric1Type creates a new instance of Parametric1Type with the provided param
func NewParametric1Type(p int32) *Parametric1Type {
	return &Parametric1Type{ExtensionBase: arrow.ExtensionBase{Storage: arrow.PrimitiveTypes.Int32}, param: p}
}

func (p *Parametric1Type) Param() int32 { return p.param }

func (p *Parametric1Type) ExtensionEquals(other arrow.ExtensionType) bool {
	o, ok := other.(*Parametric1Type)
	if !ok {
		return false
	}
	return p.param == o.param
}

func (*Parametric1Type) ArrayType() reflect.Type { return reflect.TypeOf(Parametric1Array{}) }

func (*Parametric1Type) ExtensionName() string { return "parametric-type-1" }

// Serialize returns the param as a little endian int32 slice of bytes
func (p *Parametric1Type) Serialize() string {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(p.param))
	return string(buf[:])
}

// Deserialize requires storage to be an int32 type and data should be a 4 byte little endian int32 value
func (*Parametric1Type) Deserialize(storage arrow.DataType, data string) (arrow.ExtensionType, error) {
	if len(data) != 4 {
		return nil, fmt.Errorf("invalid serialized metadata size")
	}
	if !arrow.TypeEqual(storage, arrow.PrimitiveTypes.Int32) {
		return nil, fmt.Errorf("invalid storage type for Parametric1Type: %s", storage.Name())
	}
	return NewParametric1Type(int32(binary.LittleEndian.Uint32([]byte(data)))), nil
}

// Parametric2Type is a parameterized type where the extension name is
// different for each parameter.
type Parametric2Type struct {
	arrow.ExtensionBase

	param int32
}

// NewParametric2Type creates a new instance of Parametric2Type with the provided param
func NewParametric2Type(p int32) *Parametric2Type {
	return &Parametric2Type{ExtensionBase: arrow.ExtensionBase{Storage: arrow.PrimitiveTypes.Int32}, param: p}
}

func (p *Parametric2Type) Param() int32 { return p.param }

func (p *Parametric2Type) ExtensionEquals(other arrow.ExtensionType) bool {
	o, ok := other.(*Parametric2Type)
	if !ok {
		return false
	}
	return p.param == o.param
}

func (*Parametric2Type) ArrayType() reflect.Type { return reflect.TypeOf(Parametric2Array{}) }

func (p *Parametric2Type) ExtensionName() string {
	return fmt.Sprintf("parametric-type-2<param=%d>", p.param)
}

// Serialize returns the param as a little endian int32 slice of bytes
func (p *Parametric2Type) Serialize() string {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(p.param))
	return string(buf[:])
}

// Deserialize expects storage to be int32 type and data must be a 4 byte little endian slice
func (*Parametric2Type) Deserialize(storage arrow.DataType, data string) (arrow.ExtensionType, error) {
	if len(data) != 4 {
		return nil, fmt.Errorf("invalid serialized metadata size")
	}
	if !arrow.TypeEqual(storage, arrow.PrimitiveTypes.Int32) {
		return nil, fmt.Errorf("invalid storage type for Parametric2Type: %s", storage.Name())
	}
	return NewParametric2Type(int32(binary.LittleEndian.Uint32([]byte(data)))), nil
}

// ExtStructArray is a struct array type for testing an extension type
// with non-primitive storage
type ExtStructArray struct {
	array.ExtensionArrayBase
}

// ExtStructType is an extension type with a non-primitive storage type
// containing a struct with fields {a: int64, b: float64}
type ExtStructType struct {
	arrow.ExtensionBase
}

// NewExtStructType creates the new extension type
func NewExtStructType() *ExtStructType {
	return &ExtStructType{
		ExtensionBase: arrow.ExtensionBase{
			Storage: arrow.StructOf(
				arrow.Field{Name: "a", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
				arrow.Field{Name: "b", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			),
		},
	}
}

func (*ExtStructType) ArrayType() reflect.Type { return reflect.TypeOf(ExtStructArray{}) }

func (*ExtStructType) ExtensionName() string { return "ext-struct-type" }

func (e *ExtStructType) ExtensionEquals(other arrow.ExtensionType) bool {
	return e.ExtensionName() == other.ExtensionName()
}

func (*ExtStructType) Serialize() string { return "ext-struct-type-unique-code" }

// Deserialize only checks the serialized data byte slice, returning the
// correct type if it matches "ext-struct-type-unique-code".
func (e *ExtStructType) Deserialize(storage arrow.DataType, data string) (arrow.ExtensionType, error) {
	if data != "ext-struct-type-unique-code" {
		return nil, fmt.Errorf("type identifier did not match")
	}
	if !arrow.TypeEqual(e.StorageType(), storage) {
		return nil, fmt.Errorf("invalid storage type for ExtStructType: %s", storage.Name())
	}
	return NewExtStructType(), nil
}

// SmallintArray is an int16 array for use with the SmallintType
type SmallintArray struct {
	array.ExtensionArrayBase
}

// SmallintType is an extension type with int16 storage, used to verify
// byte swapping of extension storage.
type SmallintType struct {
	arrow.ExtensionBase
}

func NewSmallintType() *SmallintType {
	return &SmallintType{ExtensionBase: arrow.ExtensionBase{Storage: arrow.PrimitiveTypes.Int16}}
}

func (*SmallintType) ArrayType() reflect.Type { return reflect.TypeOf(SmallintArray{}) }

func (*SmallintType) ExtensionName() string { return "smallint" }

func (s *SmallintType) ExtensionEquals(other arrow.ExtensionType) bool {
	return s.ExtensionName() == other.ExtensionName()
}

func (*SmallintType) Serialize() string { return "smallint" }

func (*SmallintType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !strings.HasPrefix(data, "smallint") {
		return nil, fmt.Errorf("type identifier did not match: '%s'", data)
	}
	if !arrow.TypeEqual(storageType, arrow.PrimitiveTypes.Int16) {
		return nil, fmt.Errorf("invalid storage type for SmallintType: %s", storageType.Name())
	}
	return NewSmallintType(), nil
}

var (
	_ arrow.ExtensionType  = (*UUIDType)(nil)
	_ arrow.ExtensionType  = (*Parametric1Type)(nil)
	_ arrow.ExtensionType  = (*Parametric2Type)(nil)
	_ arrow.ExtensionType  = (*ExtStructType)(nil)
	_ arrow.ExtensionType  = (*SmallintType)(nil)
	_ array.ExtensionArray = (*UUIDArray)(nil)
	_ array.ExtensionArray = (*Parametric1Array)(nil)
	_ array.ExtensionArray = (*Parametric2Array)(nil)
	_ array.ExtensionArray = (*ExtStructArray)(nil)
	_ array.ExtensionArray = (*SmallintArray)(nil)
)
