package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	sampleRate = 44100
	bitDepth   = 16
)

type chime struct {
	frequencies []float64
	seconds     float64
}

var chimes = map[SoundEvent]chime{
	SoundWorkStart:       {frequencies: []float64{261.63, 329.63, 392.00}, seconds: 1.0},
	SoundBreakStart:      {frequencies: []float64{220.00, 261.63, 329.63}, seconds: 1.2},
	SoundSessionComplete: {frequencies: []float64{261.63, 392.00, 523.25}, seconds: 1.5},
	SoundTimerFinish:     {frequencies: []float64{440.00, 880.00}, seconds: 0.8},
}

// PrepareChimes writes the built-in chimes into dir as WAV files, reusing any
// already present, and returns their paths.
func PrepareChimes(dir string) (map[SoundEvent]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chime dir: %w", err)
	}
	paths := make(map[SoundEvent]string, len(chimes))
	for event, spec := range chimes {
		path := filepath.Join(dir, "pomotray_"+string(event)+".wav")
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			if err := writeChime(path, spec); err != nil {
				return nil, err
			}
		}
		paths[event] = path
	}
	return paths, nil
}

func writeChime(path string, spec chime) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chime %s: %w", path, err)
	}

	encoder := wav.NewEncoder(file, sampleRate, bitDepth, 1, 1)
	buffer := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           synthesize(spec),
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buffer); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode chime %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("finish chime %s: %w", path, err)
	}
	return file.Close()
}

// synthesize mixes the chord, normalizes it and applies an ADSR envelope.
func synthesize(spec chime) []int {
	total := int(spec.seconds * sampleRate)
	mixed := make([]float64, total)
	peak := 0.0
	for i := range mixed {
		t := float64(i) / sampleRate
		for _, frequency := range spec.frequencies {
			mixed[i] += 0.3 * math.Sin(2*math.Pi*frequency*t)
		}
		peak = math.Max(peak, math.Abs(mixed[i]))
	}
	if peak > 1 {
		for i := range mixed {
			mixed[i] /= peak
		}
	}

	samples := make([]int, total)
	for i, value := range mixed {
		samples[i] = int(value * envelope(i, total) * math.MaxInt16)
	}
	return samples
}

func envelope(index, total int) float64 {
	const (
		attack  = 0.1
		decay   = 0.2
		sustain = 0.7
		release = 0.3
	)
	attackEnd := int(attack * float64(total))
	decayEnd := attackEnd + int(decay*float64(total))
	releaseStart := total - int(release*float64(total))

	switch {
	case index < attackEnd:
		return float64(index) / float64(attackEnd)
	case index < decayEnd:
		return 1 - (1-sustain)*float64(index-attackEnd)/float64(decayEnd-attackEnd)
	case index < releaseStart:
		return sustain
	default:
		return sustain * (1 - float64(index-releaseStart)/float64(total-releaseStart))
	}
}
