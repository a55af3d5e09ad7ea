package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendInt(t *testing.T) {
	tests := []struct {
		v    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{-1, []byte{0xff}},
		{-128, []byte{0x80}},
		{-129, []byte{0xff, 0x7f}},
		{256, []byte{0x01, 0x00}},
		{math.MaxInt64, []byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{math.MinInt64, []byte{0x80, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		got := AppendInt(nil, tt.v)
		assert.Equal(t, tt.want, got, "%d", tt.v)
		back, err := ParseInt(got)
		require.NoError(t, err)
		assert.Equal(t, tt.v, back)
	}
}

func TestAppendUint(t *testing.T) {
	assert.Equal(t, []byte{0x00}, AppendUint(nil, 0))
	assert.Equal(t, []byte{0xff}, AppendUint(nil, 255))
	assert.Equal(t, []byte{0x01, 0x00}, AppendUint(nil, 256))
	assert.Len(t, AppendUint(nil, math.MaxUint64), 8)

	v, err := ParseUint([]byte{0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint64(256), v)
}

func TestParseLength(t *testing.T) {
	_, err := ParseInt(nil)
	assert.ErrorIs(t, err, ErrLength)
	_, err = ParseUint(make([]byte, 9))
	assert.ErrorIs(t, err, ErrLength)
}
