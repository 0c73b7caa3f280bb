package app

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频采样率
const SampleRate = 48000

// SoundBank 程序生成的提示音
// ctx 为 nil 时所有播放请求被忽略（无音频设备或测试环境）
type SoundBank struct {
	ctx       *audio.Context
	chime     []byte
	explosion []byte
	volume    float64
}

// NewSoundBank 生成提示音
func NewSoundBank(ctx *audio.Context, volume float64) *SoundBank {
	return &SoundBank{
		ctx:       ctx,
		chime:     chimePCM(SampleRate),
		explosion: noiseBurstPCM(SampleRate, 0.25, 1),
		volume:    volume,
	}
}

// PlayChime 通关提示音
func (b *SoundBank) PlayChime() {
	b.play(b.chime)
}

// PlayExplosion 小球碰到危险物
func (b *SoundBank) PlayExplosion() {
	b.play(b.explosion)
}

func (b *SoundBank) play(pcm []byte) {
	if b == nil || b.ctx == nil {
		return
	}
	player := b.ctx.NewPlayerFromBytes(pcm)
	player.SetVolume(b.volume)
	player.Play()
}

// chimePCM 三个上行音符（C5 E5 G5），每个音符指数衰减
func chimePCM(rate int) []byte {
	notes := []float64{523.25, 659.25, 783.99}
	const noteLen = 0.12
	const tail = 0.3

	total := int(float64(rate) * (noteLen*float64(len(notes)-1) + tail))
	samples := make([]float64, total)
	for i, freq := range notes {
		start := int(float64(rate) * noteLen * float64(i))
		for j := start; j < total; j++ {
			t := float64(j-start) / float64(rate)
			samples[j] += 0.3 * math.Sin(2*math.Pi*freq*t) * math.Exp(-t*12)
		}
	}
	return encodeStereo16(samples)
}

// noiseBurstPCM 衰减的白噪声
func noiseBurstPCM(rate int, seconds float64, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	total := int(float64(rate) * seconds)
	samples := make([]float64, total)
	for j := range samples {
		t := float64(j) / float64(rate)
		samples[j] = 0.4 * (r.Float64()*2 - 1) * math.Exp(-t*18)
	}
	return encodeStereo16(samples)
}

// encodeStereo16 单声道采样编码为 16 位小端立体声
func encodeStereo16(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], v)
		binary.LittleEndian.PutUint16(out[i*4+2:], v)
	}
	return out
}
