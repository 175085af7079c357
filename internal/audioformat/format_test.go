package audioformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestFormat_FrameSizeBytes(t *testing.T) {
	f := &Format{SampleRate: 44100, SampleBits: 16, Channels: 2}
	assert.Equal(t, 4, f.FrameSizeBytes())
}

func TestFormat_WithCopiesLeaveOriginalIntact(t *testing.T) {
	f := &Format{SampleRate: 44100, SampleBits: 16, Channels: 2}

	halved := f.WithSampleRate(22050)
	mono := f.WithChannels(1)

	assert.Equal(t, 22050, halved.SampleRate)
	assert.Equal(t, 1, mono.Channels)
	assert.Equal(t, 44100, f.SampleRate)
	assert.Equal(t, 2, f.Channels)
}

func TestFormat_Validate(t *testing.T) {
	ok := &Format{SampleRate: 8000, SampleBits: 24, Channels: 1}
	assert.NoError(t, ok.Validate())

	bad := &Format{SampleRate: 8000, SampleBits: 12, Channels: 1}
	var se *sgerr.Error
	require.ErrorAs(t, bad.Validate(), &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)

	noChannels := &Format{SampleRate: 8000, SampleBits: 16, Channels: 0}
	assert.Error(t, noChannels.Validate())
}

func TestDecodeSamples_Signed16LittleEndian(t *testing.T) {
	f := &Format{SampleRate: 8000, SampleBits: 16, Channels: 2, Encoding: PCMSigned, Endian: LittleEndian}

	// 16384 = 0x4000 -> 0.5; -16384 -> -0.5.
	samples, err := DecodeSamples(f, []byte{0x00, 0x40, 0x00, 0xC0})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.InDelta(t, 0.5, samples[0], 1e-6)
	assert.InDelta(t, -0.5, samples[1], 1e-6)
}

func TestDecodeSamples_Signed16BigEndian(t *testing.T) {
	f := &Format{SampleRate: 8000, SampleBits: 16, Channels: 1, Encoding: PCMSigned, Endian: BigEndian}

	samples, err := DecodeSamples(f, []byte{0x40, 0x00})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, samples[0], 1e-6)
}

func TestDecodeSamples_Signed8(t *testing.T) {
	f := &Format{SampleRate: 8000, SampleBits: 8, Channels: 1, Encoding: PCMSigned, Endian: LittleEndian}

	samples, err := DecodeSamples(f, []byte{0x40})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, samples[0], 1e-6)

	samples, err = DecodeSamples(f, []byte{0x80}) // -128
	require.NoError(t, err)
	assert.InDelta(t, -1, samples[0], 1e-6)
}

func TestDecodeSamples_Unsigned8(t *testing.T) {
	f := &Format{SampleRate: 8000, SampleBits: 8, Channels: 1, Encoding: PCMUnsigned, Endian: LittleEndian}

	samples, err := DecodeSamples(f, []byte{0xFF})
	require.NoError(t, err)
	assert.InDelta(t, 1, samples[0], 1e-6)

	samples, err = DecodeSamples(f, []byte{0x00})
	require.NoError(t, err)
	assert.Zero(t, samples[0])
}

func TestDecodeSamples_Signed24SignExtension(t *testing.T) {
	f := &Format{SampleRate: 8000, SampleBits: 24, Channels: 1, Encoding: PCMSigned, Endian: LittleEndian}

	// 0x7FFFFF is the positive max; PCM24 normalizes against 2^23-1.
	samples, err := DecodeSamples(f, []byte{0xFF, 0xFF, 0x7F})
	require.NoError(t, err)
	assert.InDelta(t, 1, samples[0], 1e-7)

	// 0xFFFFFF sign-extends to -1 (the integer), a hair below zero.
	samples, err = DecodeSamples(f, []byte{0xFF, 0xFF, 0xFF})
	require.NoError(t, err)
	assert.InDelta(t, -1.0/(1<<23-1), samples[0], 1e-9)

	// 0x800000 is the negative extreme.
	samples, err = DecodeSamples(f, []byte{0x00, 0x00, 0x80})
	require.NoError(t, err)
	assert.InDelta(t, -float64(1<<23)/float64(1<<23-1), samples[0], 1e-6)
}

func TestDecodeSamples_ShortBufferIsIOError(t *testing.T) {
	f := &Format{SampleRate: 8000, SampleBits: 16, Channels: 2, Encoding: PCMSigned, Endian: LittleEndian}

	_, err := DecodeSamples(f, []byte{0x00, 0x40})
	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.IO, se.Kind)
}
