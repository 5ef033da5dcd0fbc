/*
Copyright (c) 2018 Simon Schmidt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package maglev

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Encoder yields the canonical byte form of an identifier. Two equal
// identifiers must encode to the same bytes.
type Encoder[T comparable] func(T) ([]byte, error)

// Keyer is implemented by identifiers that provide their own hash input.
type Keyer interface {
	HashKey() []byte
}

/*
DefaultEncoder encodes strings as their bytes and booleans, integers and
floats as 8 big-endian bytes, including named types of those kinds.
Keyer and encoding.BinaryMarshaler implementations are honoured.

Structs and arrays are walked field by field, unexported fields included,
and written as MessagePack arrays. Pointers and channels compare by address,
so they are encoded by address: their placement is stable within a process
only. Funcs, maps and slices cannot be encoded.
*/
func DefaultEncoder[T comparable](v T) ([]byte, error) {
	switch x := any(v).(type) {
	case Keyer:
		return x.HashKey(), nil
	case encoding.BinaryMarshaler:
		return marshalBinary(x)
	case string:
		return []byte(x), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return []byte(rv.String()), nil
	case reflect.Bool:
		if rv.Bool() {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.BigEndian.AppendUint64(nil, uint64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.BigEndian.AppendUint64(nil, rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(canonFloat(rv.Float()))), nil
	}

	var buf bytes.Buffer
	if err := encodeValue(msgpack.NewEncoder(&buf), rv); err != nil {
		return nil, fmt.Errorf("%w %T: %w", ErrEncode, v, err)
	}
	return buf.Bytes(), nil
}

func marshalBinary(m encoding.BinaryMarshaler) ([]byte, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w %T: %w", ErrEncode, m, err)
	}
	return b, nil
}

func canonFloat(f float64) float64 {
	if f == 0 {
		return 0 // -0
	}
	return f
}

func encodeValue(enc *msgpack.Encoder, rv reflect.Value) error {
	if rv.IsValid() && rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case Keyer:
			return enc.EncodeBytes(x.HashKey())
		case encoding.BinaryMarshaler:
			b, err := marshalBinary(x)
			if err != nil {
				return err
			}
			return enc.EncodeBytes(b)
		}
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return enc.EncodeNil()
	case reflect.String:
		return enc.EncodeString(rv.String())
	case reflect.Bool:
		return enc.EncodeBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return enc.EncodeInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return enc.EncodeUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return enc.EncodeFloat64(canonFloat(rv.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		if err := enc.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := enc.EncodeFloat64(canonFloat(real(c))); err != nil {
			return err
		}
		return enc.EncodeFloat64(canonFloat(imag(c)))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return enc.EncodeUint(uint64(rv.Pointer()))
	case reflect.Interface:
		if rv.IsNil() {
			return enc.EncodeNil()
		}
		return encodeValue(enc, rv.Elem())
	case reflect.Struct:
		if err := enc.EncodeArrayLen(rv.NumField()); err != nil {
			return err
		}
		for i := 0; i < rv.NumField(); i++ {
			if err := encodeValue(enc, rv.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Array:
		if err := enc.EncodeArrayLen(rv.Len()); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(enc, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported kind %s", rv.Kind())
}
