package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.wav")

	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/48000)
	}

	w, err := NewWAVWriter(path, 48000)
	require.NoError(t, err)
	assert.Equal(t, 48000, w.SampleRate())

	n, err := w.Write(samples)
	require.NoError(t, err)
	assert.Equal(t, len(samples), n)
	require.NoError(t, w.Close())

	r, err := NewWAVReader(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 48000, r.SampleRate())

	var got []float64
	buf := make([]float64, 256)
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	require.Len(t, got, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], got[i], 1.0/32000)
	}
}

func TestWAVWriterClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")

	w, err := NewWAVWriter(path, 48000)
	require.NoError(t, err)
	_, err = w.Write([]float64{2.0, -2.0, 0})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewWAVReader(path)
	require.NoError(t, err)
	defer r.Close()

	got := make([]float64, 3)
	n, err := r.Read(got)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.InDelta(t, 1.0, got[0], 1e-4)
	assert.InDelta(t, -1.0, got[1], 1e-4)
	assert.InDelta(t, 0.0, got[2], 1e-9)
}

func TestWAVReaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("this is not a wav file at all"), 0o644))

	_, err := NewWAVReader(path)
	assert.Error(t, err)
}

func TestWAVReaderEmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")

	w, err := NewWAVWriter(path, 8000)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := NewWAVReader(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Read(make([]float64, 16))
	assert.Equal(t, io.EOF, err)
}
