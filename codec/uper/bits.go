package uper

import "github.com/golangsnmp/goasn1/codec"

// bitBuffer accumulates bits most significant first. Bits past n are
// always zero.
type bitBuffer struct {
	data []byte
	n    uint64
}

func (b *bitBuffer) writeBit(v bool) {
	if b.n%8 == 0 {
		b.data = append(b.data, 0)
	}
	if v {
		b.data[b.n/8] |= 0x80 >> (b.n % 8)
	}
	b.n++
}

// writeBits writes the low width bits of v.
func (b *bitBuffer) writeBits(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		b.writeBit(v>>uint(i)&1 == 1)
	}
}

func (b *bitBuffer) writeBytes(p []byte) {
	if b.n%8 == 0 {
		b.data = append(b.data, p...)
		b.n += 8 * uint64(len(p))
		return
	}
	for _, c := range p {
		b.writeBits(uint64(c), 8)
	}
}

func (b *bitBuffer) appendBits(o *bitBuffer) {
	if b.n%8 == 0 {
		b.data = append(b.data, o.data...)
		b.n += o.n
		return
	}
	for i := uint64(0); i < o.n; i++ {
		b.writeBit(o.bit(i))
	}
}

func (b *bitBuffer) bit(i uint64) bool {
	return b.data[i/8]&(0x80>>(i%8)) != 0
}

func (b *bitBuffer) truncate(n uint64) {
	if n >= b.n {
		return
	}
	b.n = n
	b.data = b.data[:(n+7)/8]
	if rem := n % 8; rem != 0 {
		b.data[len(b.data)-1] &^= 0xff >> rem
	}
}

// octets returns the content padded to whole octets.
func (b *bitBuffer) octets() []byte {
	return b.data
}

// bitReader consumes bits most significant first.
type bitReader struct {
	data []byte
	pos  uint64
	n    uint64
}

func newBitReader(p []byte) *bitReader {
	return &bitReader{data: p, n: 8 * uint64(len(p))}
}

func (r *bitReader) remaining() uint64 { return r.n - r.pos }

func (r *bitReader) need(bits uint64) error {
	if r.remaining() < bits {
		return codec.Malformed("need %d bits, %d remain", bits, r.remaining())
	}
	return nil
}

func (r *bitReader) readBit() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	v := r.data[r.pos/8]&(0x80>>(r.pos%8)) != 0
	r.pos++
	return v, nil
}

func (r *bitReader) readBits(width int) (uint64, error) {
	if err := r.need(uint64(width)); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < width; i++ {
		bit := r.data[r.pos/8]&(0x80>>(r.pos%8)) != 0
		v <<= 1
		if bit {
			v |= 1
		}
		r.pos++
	}
	return v, nil
}

func (r *bitReader) readBytes(n uint64) ([]byte, error) {
	if n > r.remaining()/8 {
		return nil, codec.Malformed("need %d octets, %d bits remain", n, r.remaining())
	}
	out := make([]byte, n)
	if r.pos%8 == 0 {
		copy(out, r.data[r.pos/8:])
		r.pos += 8 * n
		return out, nil
	}
	for i := range out {
		v, _ := r.readBits(8)
		out[i] = byte(v)
	}
	return out, nil
}
