package main

import (
	"encoding/binary"
	"io"
	"math"
)

const sampleRate = 16000

type waveform int

const (
	sine waveform = iota
	square
	triangle
	sawtooth
)

// tone is one note. Frequency glides from From to To while the gain decays
// exponentially from Gain to 0.01 over Duration seconds. Notes with the same
// Start overlap into a chord.
type tone struct {
	Wave     waveform
	From, To float64
	Gain     float64
	Start    float64
	Duration float64
}

func chord(start, duration, gain float64, freqs ...float64) []tone {
	out := make([]tone, 0, len(freqs))
	for _, f := range freqs {
		out = append(out, tone{Wave: sine, From: f, To: f, Gain: gain, Start: start, Duration: duration})
	}
	return out
}

func concat(parts ...[]tone) []tone {
	var out []tone
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var sounds = map[string][]tone{
	"round_start":     {{Wave: sawtooth, From: 440, To: 880, Gain: 0.2, Duration: 0.5}},
	"countdown":       {{Wave: square, From: 800, To: 800, Gain: 0.1, Duration: 0.2}},
	"countdown_final": {{Wave: square, From: 600, To: 600, Gain: 0.15, Duration: 0.4}},
	"round_win":       chord(0, 0.8, 0.1, 523, 659, 784),
	"round_lose":      {{Wave: triangle, From: 400, To: 200, Gain: 0.15, Duration: 0.8}},
	"match_win": concat(
		chord(0, 0.5, 0.15, 523, 659, 784),
		chord(0.3, 0.5, 0.15, 587, 740, 880),
		chord(0.6, 0.8, 0.2, 659, 831, 988),
	),
	"match_lose":   {{Wave: triangle, From: 300, To: 150, Gain: 0.2, Duration: 1.5}},
	"disqualified": {{Wave: triangle, From: 300, To: 150, Gain: 0.2, Duration: 1.5}},
	"restart":      {{Wave: square, From: 600, To: 600, Gain: 0.05, Duration: 0.1}},
}

// render mixes tones into mono float samples in -1..1.
func render(tones []tone) []float64 {
	var end float64
	for _, t := range tones {
		end = math.Max(end, t.Start+t.Duration)
	}
	out := make([]float64, int(end*sampleRate))

	for _, t := range tones {
		first := int(t.Start * sampleRate)
		n := int(t.Duration * sampleRate)
		phase := 0.0
		for i := 0; i < n && first+i < len(out); i++ {
			progress := float64(i) / float64(n)
			freq := t.From * math.Pow(t.To/t.From, progress)
			gain := t.Gain * math.Pow(0.01/t.Gain, progress)
			phase += freq / sampleRate
			out[first+i] += gain * t.Wave.sample(phase)
		}
	}

	for i, v := range out {
		out[i] = math.Max(-1, math.Min(1, v))
	}
	return out
}

// sample evaluates the waveform at phase, measured in cycles.
func (w waveform) sample(phase float64) float64 {
	frac := phase - math.Floor(phase)
	switch w {
	case square:
		if frac < 0.5 {
			return 1
		}
		return -1
	case triangle:
		return 4*math.Abs(frac-0.5) - 1
	case sawtooth:
		return 2*frac - 1
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}

// writeWAV writes 16-bit mono PCM.
func writeWAV(w io.Writer, samples []float64) error {
	dataSize := uint32(len(samples) * 2)
	header := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		36 + dataSize,
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(1), // mono
		uint32(sampleRate),
		uint32(sampleRate * 2),
		uint16(2),
		uint16(16),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = int16(v * math.MaxInt16)
	}
	return binary.Write(w, binary.LittleEndian, pcm)
}
