package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/goasn1/codec"
	"github.com/golangsnmp/goasn1/codec/internal/fixture"
	"github.com/golangsnmp/goasn1/codec/tlv"
	"github.com/golangsnmp/goasn1/codec/uper"
	"github.com/golangsnmp/goasn1/tag"
)

type format struct {
	name      string
	marshal   func(codec.Writable) ([]byte, error)
	unmarshal func([]byte, codec.Readable) error
}

var formats = []format{
	{"uper", uper.Marshal, uper.Unmarshal},
	{"tlv", tlv.Marshal, tlv.Unmarshal},
}

func TestBounds(t *testing.T) {
	b := codec.Range[int64](-5, 5)
	assert.True(t, b.Constrained())
	assert.True(t, b.Contains(-5))
	assert.True(t, b.Contains(5))
	assert.False(t, b.Contains(6))

	open := codec.Bounds[uint64]{Min: 2, HasMin: true}
	assert.False(t, open.Constrained())
	assert.True(t, open.Contains(1<<40))
	assert.False(t, open.Contains(1))
}

func TestCheckString(t *testing.T) {
	size := codec.Meta{Size: codec.Range[uint64](1, 3)}
	tests := []struct {
		cs    codec.Charset
		s     string
		valid bool
	}{
		{codec.CharsetUTF8, "héé", true},
		{codec.CharsetUTF8, "héé!", false},
		{codec.CharsetIA5, "a\x00~", true},
		{codec.CharsetIA5, "é", false},
		{codec.CharsetNumeric, "1 2", true},
		{codec.CharsetNumeric, "1-2", false},
		{codec.CharsetPrintable, "A'?", true},
		{codec.CharsetPrintable, "a_b", false},
		{codec.CharsetVisible, "~ !", true},
		{codec.CharsetVisible, "a\tb", false},
		{codec.CharsetIA5, "", false},
	}
	for _, tt := range tests {
		err := codec.CheckString(tt.cs, size, tt.s)
		if tt.valid {
			assert.NoError(t, err, "%s %q", tt.cs, tt.s)
		} else {
			assert.ErrorIs(t, err, codec.ErrConstraint, "%s %q", tt.cs, tt.s)
		}
	}
}

func TestCheckSizeExtensible(t *testing.T) {
	b := codec.Range[uint64](1, 2)
	assert.ErrorIs(t, codec.CheckSize(b, 3), codec.ErrConstraint)
	b.Extensible = true
	assert.NoError(t, codec.CheckSize(b, 3))

	err := codec.CheckSize(codec.Bounds[uint64]{Max: 4, HasMax: true}, 9)
	assert.ErrorContains(t, err, "(MIN..4)")
}

func TestBits(t *testing.T) {
	b := codec.NewBits(10)
	assert.Len(t, b.Data, 2)
	b.Set(9, true)
	assert.True(t, b.Bit(9))
	assert.False(t, b.Bit(8))
	assert.False(t, b.Bit(100))
	b.Set(9, false)
	assert.Equal(t, []byte{0, 0}, b.Data)
}

func TestErrorUnwrap(t *testing.T) {
	err := &codec.Error{Format: "uper", Op: "read integer", Pos: 12, Err: codec.Malformed("need %d bits", 3)}
	assert.ErrorIs(t, err, codec.ErrMalformed)
	assert.Equal(t, "uper: read integer at 12: malformed encoding: need 3 bits", err.Error())
	assert.False(t, errors.Is(err, codec.ErrConstraint))
}

func TestFormatsAgreeOnValues(t *testing.T) {
	for _, f := range formats {
		t.Run(f.name, func(t *testing.T) {
			for name, v := range fixture.Samples() {
				data, err := f.marshal(v)
				require.NoError(t, err, name)
				got := fixture.New(v)
				require.NoError(t, f.unmarshal(data, got), name)
				assert.Equal(t, v, got, name)
			}
		})
	}
}

func TestDefaultDescriptor(t *testing.T) {
	d := codec.Default[int64]{Elem: codec.Integer[int64]{C: codec.Meta{ID: tag.DefaultInteger}}, Value: 7}
	seq := codec.SequenceOf[int64]{C: codec.Meta{ID: tag.DefaultSequenceOf}, Elem: d}
	for _, f := range []struct {
		name      string
		marshal   func([]int64) ([]byte, error)
		unmarshal func([]byte) ([]int64, error)
	}{
		{"uper",
			func(v []int64) ([]byte, error) { return uper.MarshalValue[[]int64](seq, v) },
			func(p []byte) ([]int64, error) { return uper.UnmarshalValue[[]int64](seq, p) }},
		{"tlv",
			func(v []int64) ([]byte, error) { return tlv.MarshalValue[[]int64](seq, v) },
			func(p []byte) ([]int64, error) { return tlv.UnmarshalValue[[]int64](seq, p) }},
	} {
		t.Run(f.name, func(t *testing.T) {
			data, err := f.marshal([]int64{7, 1, 7})
			require.NoError(t, err)
			got, err := f.unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, []int64{7, 1, 7}, got)

			empty, err := f.marshal(nil)
			require.NoError(t, err)
			got, err = f.unmarshal(empty)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestIntegerNarrowing(t *testing.T) {
	wide := codec.Integer[int64]{C: codec.Meta{ID: tag.DefaultInteger}}
	narrow := codec.Integer[uint8]{C: codec.Meta{ID: tag.DefaultInteger}}

	data, err := uper.MarshalValue[int64](wide, 300)
	require.NoError(t, err)
	_, err = uper.UnmarshalValue[uint8](narrow, data)
	assert.ErrorIs(t, err, codec.ErrConstraint)

	data, err = uper.MarshalValue[int64](wide, -1)
	require.NoError(t, err)
	_, err = uper.UnmarshalValue[uint8](narrow, data)
	assert.ErrorIs(t, err, codec.ErrConstraint)

	data, err = uper.MarshalValue[int64](wide, 255)
	require.NoError(t, err)
	v, err := uper.UnmarshalValue[uint8](narrow, data)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), v)
}

func TestOpenTypeField(t *testing.T) {
	text := "payload"
	for _, f := range formats {
		t.Run(f.name, func(t *testing.T) {
			data, err := f.marshal(&fixture.Message{Kind: 1, Body: fixture.Body{Text: &text}})
			require.NoError(t, err)

			var m fixture.Message
			require.NoError(t, f.unmarshal(data, &m))
			require.True(t, m.BodyKnown)
			require.NotNil(t, m.Body.Text)
			assert.Equal(t, text, *m.Body.Text)
		})
	}
}
