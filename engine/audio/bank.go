package audio

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gopxl/beep"
)

// Bank holds decoded sounds as 16-bit little-endian stereo PCM
type Bank struct {
	SampleRate int
	sounds     map[string][]byte
}

// NewBank creates an empty bank at the given sample rate
func NewBank(sampleRate int) *Bank {
	return &Bank{
		SampleRate: sampleRate,
		sounds:     make(map[string][]byte),
	}
}

// NewSynthBank creates a bank with every sound the demo plays
func NewSynthBank(sampleRate int) *Bank {
	b := NewBank(sampleRate)
	rate := beep.SampleRate(sampleRate)
	for i := 0; i < CatVariants; i++ {
		b.Add(CatSound(i), CreateCatSound(rate, i))
	}
	b.Add(SndTone, CreateToneSound(rate))
	b.Add(SndDog, CreateDogSound(rate))
	log.Printf("Bank: synthesized %d sounds at %d Hz", len(b.sounds), sampleRate)
	return b
}

// Add renders a finite streamer into the bank under name
func (b *Bank) Add(name string, s beep.Streamer) {
	b.sounds[name] = renderPCM(s)
}

// PCM returns the raw data for name
func (b *Bank) PCM(name string) ([]byte, error) {
	data, ok := b.sounds[name]
	if !ok {
		return nil, fmt.Errorf("sound %q not in bank", name)
	}
	return data, nil
}

// Names returns the bank's sound names in sorted order
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.sounds))
	for n := range b.sounds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// renderPCM drains s into 16-bit stereo frames
func renderPCM(s beep.Streamer) []byte {
	buf := make([][2]float64, 1024)
	var out []byte
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = appendSample(out, buf[i][0])
			out = appendSample(out, buf[i][1])
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func appendSample(b []byte, v float64) []byte {
	s := int16(clamp(v, -1, 1) * math.MaxInt16)
	return append(b, byte(s), byte(s>>8))
}
