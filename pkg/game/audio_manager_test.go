package game

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/decker502/arpathfinder/pkg/components"
)

// TestSynthesizeToneLength 测试 PCM 长度与时长一致
func TestSynthesizeToneLength(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{name: "100ms", duration: 100 * time.Millisecond},
		{name: "180ms", duration: 180 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := SynthesizeTone(AudioSampleRate, 440, tt.duration, 1.0)
			frames := int(tt.duration * AudioSampleRate / time.Second)
			if len(pcm) != frames*4 {
				t.Errorf("len(pcm) = %d, want %d", len(pcm), frames*4)
			}
		})
	}
}

// TestSynthesizeToneEnvelope 首尾采样被淡入淡出压到接近 0
func TestSynthesizeToneEnvelope(t *testing.T) {
	pcm := SynthesizeTone(AudioSampleRate, 440, 180*time.Millisecond, 1.0)

	first := int16(binary.LittleEndian.Uint16(pcm[0:2]))
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-4 : len(pcm)-2]))
	if first != 0 {
		t.Errorf("first sample = %d, want 0", first)
	}
	if last > 1000 || last < -1000 {
		t.Errorf("last sample = %d, expected near silence", last)
	}

	peak := int16(0)
	for i := 0; i+1 < len(pcm); i += 4 {
		v := int16(binary.LittleEndian.Uint16(pcm[i : i+2]))
		if v > peak {
			peak = v
		}
	}
	if peak < 20000 {
		t.Errorf("peak = %d, tone too quiet", peak)
	}
}

// TestSynthesizeToneSilent 音量为 0 时输出静音
func TestSynthesizeToneSilent(t *testing.T) {
	pcm := SynthesizeTone(AudioSampleRate, 440, 50*time.Millisecond, 0)
	for i := 0; i+1 < len(pcm); i += 2 {
		if pcm[i] != 0 || pcm[i+1] != 0 {
			t.Fatalf("sample at byte %d not silent", i)
		}
	}
}

// TestAudioManagerWithoutContext 无音频上下文时不播放
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if am.PlayCue(components.DirectionTop) {
		t.Error("PlayCue should be a no-op without audio context")
	}
}

// TestCueFrequencyDistinct 每个方向音高不同
func TestCueFrequencyDistinct(t *testing.T) {
	seen := map[float64]components.Direction{}
	for _, dir := range []components.Direction{components.DirectionTop, components.DirectionRight, components.DirectionBottom, components.DirectionLeft} {
		f := CueFrequency(dir)
		if prev, dup := seen[f]; dup {
			t.Errorf("%v and %v share frequency %.0f", dir, prev, f)
		}
		seen[f] = dir
	}
}
