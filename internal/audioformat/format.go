// Package audioformat describes the PCM wire format carried alongside every
// frame, and the external signal-source contract that feeds the graph.
// Decoding compressed audio is out of scope; this package only normalizes
// already-interleaved PCM bytes to float32 and propagates format metadata.
package audioformat

import (
	"encoding/binary"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// Encoding distinguishes signed two's-complement PCM from unsigned PCM.
type Encoding int

const (
	PCMSigned Encoding = iota
	PCMUnsigned
)

// Endian selects the byte order of multi-byte samples.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

// Format describes the PCM layout of a stream. Immutable once constructed;
// carried by pointer through frames and rewritten (via With*) by nodes that
// change rate or channel count.
type Format struct {
	SampleRate int
	SampleBits int // one of 8, 16, 24, 32
	Channels   int
	Encoding   Encoding
	Endian     Endian
}

// FrameSizeBytes returns the number of bytes in one interleaved multichannel
// sample.
func (f *Format) FrameSizeBytes() int {
	return f.Channels * f.SampleBits / 8
}

// WithSampleRate returns a copy of f with a new sample rate, used by nodes
// like Decimate/Interpolate that change rate without touching encoding.
func (f *Format) WithSampleRate(sr int) *Format {
	c := *f
	c.SampleRate = sr
	return &c
}

// WithChannels returns a copy of f with a new channel count, used by
// downmix/split nodes.
func (f *Format) WithChannels(ch int) *Format {
	c := *f
	c.Channels = ch
	return &c
}

// validSampleBits reports whether bits is a supported PCM sample size.
func validSampleBits(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// Validate checks the format against the supported PCM layouts, returning
// a Configuration error for anything out of range.
func (f *Format) Validate() error {
	if !validSampleBits(f.SampleBits) {
		return sgerr.New(sgerr.Configuration, "audioformat.Validate", nil)
	}
	if f.Channels < 1 {
		return sgerr.New(sgerr.Configuration, "audioformat.Validate", nil)
	}
	return nil
}

// normalizationFactor returns the divisor used to scale a decoded integer
// sample into [-1,1) (signed 8/16/32-bit) or [0,1] (unsigned). 24-bit signed
// uses 2^23-1, the standard PCM24 convention, not 2^23 and not 2^22, so its
// positive maximum decodes to exactly 1 and its minimum to just below -1.
func normalizationFactor(bits int, enc Encoding) float64 {
	if enc == PCMUnsigned {
		return float64(int64(1)<<uint(bits)) - 1
	}
	if bits == 24 {
		return float64(int64(1)<<23) - 1
	}
	return float64(int64(1) << uint(bits-1))
}

// DecodeSamples converts one frame's worth of interleaved raw PCM bytes
// (channels * sampleBits/8 bytes) into per-channel float32 samples.
func DecodeSamples(f *Format, raw []byte) ([]float32, error) {
	bytesPerSample := f.SampleBits / 8
	want := f.Channels * bytesPerSample
	if len(raw) < want {
		return nil, sgerr.New(sgerr.IO, "audioformat.DecodeSamples", nil)
	}

	out := make([]float32, f.Channels)
	norm := normalizationFactor(f.SampleBits, f.Encoding)

	for ch := 0; ch < f.Channels; ch++ {
		b := raw[ch*bytesPerSample : (ch+1)*bytesPerSample]
		var v int64
		switch f.SampleBits {
		case 8:
			v = int64(b[0])
		case 16:
			v = int64(readUint(b, f.Endian, 2))
		case 24:
			u := readUint(b, f.Endian, 3)
			v = int64(u)
			if f.Encoding == PCMSigned && u&0x800000 != 0 {
				v -= 1 << 24 // sign-extend from bit 23
			}
		case 32:
			v = int64(readUint(b, f.Endian, 4))
		}

		switch f.SampleBits {
		case 8, 16, 32:
			if f.Encoding == PCMSigned {
				v = signExtend(v, f.SampleBits)
			}
		}

		if f.Encoding == PCMUnsigned {
			out[ch] = float32(float64(v) / norm)
		} else {
			out[ch] = float32(float64(v) / norm)
		}
	}
	return out, nil
}

func readUint(b []byte, endian Endian, n int) uint64 {
	buf := make([]byte, 8)
	if endian == LittleEndian {
		copy(buf, b[:n])
		return binary.LittleEndian.Uint64(buf)
	}
	copy(buf[8-n:], b[:n])
	return binary.BigEndian.Uint64(buf)
}

func signExtend(v int64, bits int) int64 {
	mask := int64(1) << uint(bits-1)
	if v&mask != 0 {
		v -= int64(1) << uint(bits)
	}
	return v
}

// Source is the external signal-source contract: a sequence of
// interleaved PCM frames with a stable format descriptor.
type Source interface {
	// Read returns the next frame's format, frame index and decoded
	// per-channel samples, or sgerr.ErrExhausted at end of stream.
	Read() (*Format, int64, []float32, error)
	// Reset repositions the source at the start of the stream.
	Reset() error
	// Close releases underlying resources.
	Close() error
}
