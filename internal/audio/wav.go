package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const wavHeaderLen = 44

// WAVWriter renders float64 samples to a 16-bit mono PCM RIFF file. The
// header is written with placeholder sizes and patched on Close.
type WAVWriter struct {
	f          *os.File
	sampleRate int
	dataBytes  uint32
}

// NewWAVWriter creates path (truncating an existing file) and writes the
// provisional header.
func NewWAVWriter(path string, sampleRate int) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create wav: %w", err)
	}

	w := &WAVWriter{f: f, sampleRate: sampleRate}
	if err := w.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// SampleRate returns the stream sample rate.
func (w *WAVWriter) SampleRate() int {
	return w.sampleRate
}

// Write appends samples as little-endian int16 PCM, clipping to [-1, 1].
// It always accepts the full slice or fails.
func (w *WAVWriter) Write(samples []float64) (int, error) {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		v := int16(math.Round(clip(s) * 32767))
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	if _, err := w.f.Write(buf); err != nil {
		return 0, fmt.Errorf("write wav samples: %w", err)
	}
	w.dataBytes += uint32(len(buf))
	return len(samples), nil
}

// Close patches the RIFF and data chunk sizes and closes the file.
func (w *WAVWriter) Close() error {
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		w.f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	if err := w.writeHeader(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func (w *WAVWriter) writeHeader() error {
	var h [wavHeaderLen]byte

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+w.dataBytes)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(h[22:24], 1) // mono
	binary.LittleEndian.PutUint32(h[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(w.sampleRate)*2)
	binary.LittleEndian.PutUint16(h[32:34], 2)  // block align
	binary.LittleEndian.PutUint16(h[34:36], 16) // bits per sample

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], w.dataBytes)

	if _, err := w.f.Write(h[:]); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	return nil
}

// WAVReader streams float64 samples out of a 16-bit mono PCM RIFF file.
type WAVReader struct {
	f          *os.File
	sampleRate int
	remaining  uint32
}

// NewWAVReader opens path and positions the stream at the first sample.
// Only 16-bit mono PCM files are accepted.
func NewWAVReader(path string) (*WAVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	r := &WAVReader{f: f}
	if err := r.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *WAVReader) readHeader() error {
	var riff [12]byte
	if _, err := io.ReadFull(r.f, riff[:]); err != nil {
		return fmt.Errorf("read wav header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return fmt.Errorf("not a RIFF/WAVE file")
	}

	// Walk chunks until the data chunk; pick the format out of fmt.
	for {
		var ch [8]byte
		if _, err := io.ReadFull(r.f, ch[:]); err != nil {
			return fmt.Errorf("read wav chunk: %w", err)
		}
		id := string(ch[0:4])
		size := binary.LittleEndian.Uint32(ch[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r.f, body); err != nil {
				return fmt.Errorf("read wav fmt chunk: %w", err)
			}
			format := binary.LittleEndian.Uint16(body[0:2])
			channels := binary.LittleEndian.Uint16(body[2:4])
			bits := binary.LittleEndian.Uint16(body[14:16])
			if format != 1 || channels != 1 || bits != 16 {
				return fmt.Errorf("unsupported wav format: pcm=%d channels=%d bits=%d", format, channels, bits)
			}
			r.sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
		case "data":
			r.remaining = size
			return nil
		default:
			if _, err := r.f.Seek(int64(size), io.SeekCurrent); err != nil {
				return fmt.Errorf("skip wav chunk %q: %w", id, err)
			}
		}
	}
}

// SampleRate returns the file's sample rate.
func (r *WAVReader) SampleRate() int {
	return r.sampleRate
}

// Read fills samples from the data chunk, returning io.EOF once the chunk
// is exhausted.
func (r *WAVReader) Read(samples []float64) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}

	want := len(samples)
	if max := int(r.remaining / 2); want > max {
		want = max
	}

	buf := make([]byte, 2*want)
	n, err := io.ReadFull(r.f, buf)
	got := n / 2
	for i := 0; i < got; i++ {
		v := int16(binary.LittleEndian.Uint16(buf[2*i:]))
		samples[i] = float64(v) / 32767
	}
	r.remaining -= uint32(2 * got)

	if err != nil {
		return got, fmt.Errorf("read wav samples: %w", err)
	}
	return got, nil
}

// Close closes the underlying file.
func (r *WAVReader) Close() error {
	return r.f.Close()
}

func clip(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
