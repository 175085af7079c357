package audioformat

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// WAVSource reads a canonical PCM WAV file as a Source. File I/O and
// container parsing are explicitly out of the engine's core scope; this
// exists so the graph is runnable end to end without a real external
// decoder.
type WAVSource struct {
	path       string
	file       *os.File
	format     *Format
	dataOffset int64
	dataSize   int64
	pos        int64
	frameIdx   int64
}

// OpenWAV opens path and parses its fmt/data chunks.
func OpenWAV(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sgerr.New(sgerr.IO, "audioformat.OpenWAV", err)
	}

	w := &WAVSource{path: path, file: f}
	if err := w.parseHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *WAVSource) parseHeader() error {
	var riff [12]byte
	if _, err := io.ReadFull(w.file, riff[:]); err != nil {
		return sgerr.New(sgerr.IO, "audioformat.parseHeader", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return sgerr.New(sgerr.IO, "audioformat.parseHeader", fmt.Errorf("not a RIFF/WAVE file"))
	}

	var (
		sampleRate, channels, bitsPerSample int
		haveFmt                             bool
	)

	for {
		var hdr [8]byte
		if _, err := io.ReadFull(w.file, hdr[:]); err != nil {
			return sgerr.New(sgerr.IO, "audioformat.parseHeader", err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(w.file, body); err != nil {
				return sgerr.New(sgerr.IO, "audioformat.parseHeader", err)
			}
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true
		case "data":
			w.dataOffset, _ = w.file.Seek(0, io.SeekCurrent)
			w.dataSize = size
			if !haveFmt {
				return sgerr.New(sgerr.IO, "audioformat.parseHeader", fmt.Errorf("data chunk before fmt chunk"))
			}
			w.format = &Format{
				SampleRate: sampleRate,
				SampleBits: bitsPerSample,
				Channels:   channels,
				Encoding:   PCMSigned,
				Endian:     LittleEndian,
			}
			return w.format.Validate()
		default:
			if _, err := w.file.Seek(size+size%2, io.SeekCurrent); err != nil {
				return sgerr.New(sgerr.IO, "audioformat.parseHeader", err)
			}
		}
	}
}

// Format returns the parsed PCM format.
func (w *WAVSource) Format() *Format { return w.format }

// Read implements Source.
func (w *WAVSource) Read() (*Format, int64, []float32, error) {
	frameSize := int64(w.format.FrameSizeBytes())
	if w.pos+frameSize > w.dataSize {
		return nil, 0, nil, sgerr.ErrExhausted
	}
	raw := make([]byte, frameSize)
	if _, err := w.file.ReadAt(raw, w.dataOffset+w.pos); err != nil {
		return nil, 0, nil, sgerr.New(sgerr.IO, "audioformat.WAVSource.Read", err)
	}
	samples, err := DecodeSamples(w.format, raw)
	if err != nil {
		return nil, 0, nil, err
	}
	idx := w.frameIdx
	w.pos += frameSize
	w.frameIdx++
	return w.format, idx, samples, nil
}

// Reset implements Source.
func (w *WAVSource) Reset() error {
	w.pos = 0
	w.frameIdx = 0
	return nil
}

// Close implements Source.
func (w *WAVSource) Close() error {
	return w.file.Close()
}
