package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 音频采样率（ebiten audio.Context 与 beep 合成共用）
const AudioSampleRate = 48000

// 提示音参数
const (
	cueToneDuration = 180 * time.Millisecond
	cueToneAttack   = 10 * time.Millisecond
	cueToneRelease  = 80 * time.Millisecond
)

// cueFrequencies 每个方向一个音高，便于不看屏幕时区分
var cueFrequencies = map[components.Direction]float64{
	components.DirectionTop:    880.0,
	components.DirectionRight:  660.0,
	components.DirectionBottom: 440.0,
	components.DirectionLeft:   550.0,
}

// CueFrequency 返回方向对应的提示音频率
func CueFrequency(dir components.Direction) float64 {
	if f, ok := cueFrequencies[dir]; ok {
		return f
	}
	return 440.0
}

// AudioManager 音频管理器
//
// 提示音由 beep 实时合成为 PCM，再交给 ebiten 的 audio.Context 播放，
// 不需要任何音频文件。音量与开关从 SettingsManager 读取。
// audioContext 为 nil 时所有播放调用都是空操作（测试 / 无声环境）。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	toneCache       map[components.Direction][]byte
	players         map[components.Direction]*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: SettingsManager 实例，可为 nil（使用默认设置）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		toneCache:       make(map[components.Direction][]byte),
		players:         make(map[components.Direction]*audio.Player),
	}
}

// settings 返回当前设置（SettingsManager 为 nil 时用默认值）
func (am *AudioManager) settings() *AppSettings {
	if am.settingsManager == nil {
		return DefaultSettings()
	}
	return am.settingsManager.GetSettings()
}

// PlayCue 播放方向提示音
//
// 返回：
//   - bool: 是否实际播放
func (am *AudioManager) PlayCue(dir components.Direction) bool {
	s := am.settings()
	if !s.CueSoundEnabled || am.audioContext == nil {
		return false
	}

	player, ok := am.players[dir]
	if !ok {
		pcm := am.cueTone(dir)
		player = am.audioContext.NewPlayerFromBytes(pcm)
		am.players[dir] = player
	}

	player.SetVolume(s.Volume)
	if err := player.Rewind(); err != nil {
		return false
	}
	player.Play()
	return true
}

// cueTone 返回方向提示音的 PCM 数据（带缓存）
func (am *AudioManager) cueTone(dir components.Direction) []byte {
	if pcm, ok := am.toneCache[dir]; ok {
		return pcm
	}
	pcm := SynthesizeTone(AudioSampleRate, CueFrequency(dir), cueToneDuration, 1.0)
	am.toneCache[dir] = pcm
	return pcm
}

// SynthesizeTone 合成一段带淡入淡出的正弦波
// 返回 16 位有符号小端立体声 PCM，可直接用于 audio.Context.NewPlayerFromBytes
func SynthesizeTone(sampleRate int, freq float64, duration time.Duration, volume float64) []byte {
	rate := beep.SampleRate(sampleRate)
	total := rate.N(duration)

	var streamer beep.Streamer = &sineWave{freq: freq, rate: rate}
	streamer = beep.Take(total, streamer)
	streamer = newFadeEnvelope(streamer, total, rate.N(cueToneAttack), rate.N(cueToneRelease))
	if volume <= 0 {
		streamer = &effects.Volume{Streamer: streamer, Base: 2, Silent: true}
	} else {
		streamer = &effects.Volume{Streamer: streamer, Base: 2, Volume: math.Log2(volume)}
	}

	pcm := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := int16(math.Max(-1, math.Min(1, buf[i][ch])) * math.MaxInt16)
				pcm = binary.LittleEndian.AppendUint16(pcm, uint16(v))
			}
		}
		if !ok {
			break
		}
	}
	return pcm
}

// sineWave 无限长正弦波
type sineWave struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
}

func (s *sineWave) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
	}
	return len(samples), true
}

func (s *sineWave) Err() error { return nil }

// fadeEnvelope 线性淡入淡出，避免首尾爆音
type fadeEnvelope struct {
	streamer beep.Streamer
	position int
	total    int
	attack   int
	release  int
}

func newFadeEnvelope(s beep.Streamer, total, attack, release int) *fadeEnvelope {
	return &fadeEnvelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *fadeEnvelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			gain = math.Min(gain, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *fadeEnvelope) Err() error { return e.streamer.Err() }
