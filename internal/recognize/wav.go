package recognize

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// pcmStreamer streams signed 16-bit little-endian mono PCM as beep samples.
type pcmStreamer struct {
	data []byte
	pos  int
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos+1 >= len(s.data) {
		return 0, false
	}
	n := 0
	for n < len(samples) && s.pos+1 < len(s.data) {
		v := float64(int16(binary.LittleEndian.Uint16(s.data[s.pos:]))) / 32768
		samples[n][0] = v
		samples[n][1] = v
		s.pos += 2
		n++
	}
	return n, true
}

func (s *pcmStreamer) Err() error { return nil }

// writeWAV encodes pcm as a mono 16-bit WAV file in dir and returns its
// path. The caller removes the file.
func writeWAV(dir string, pcm []byte, sampleRate int) (string, error) {
	f, err := os.CreateTemp(dir, "hifi-sample-*.wav")
	if err != nil {
		return "", fmt.Errorf("create sample file: %w", err)
	}
	path := f.Name()

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, &pcmStreamer{data: pcm}, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("encode wav: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
