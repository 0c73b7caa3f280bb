package app

import (
	"encoding/binary"
	"testing"
)

func TestChimePCM(t *testing.T) {
	pcm := chimePCM(SampleRate)
	if len(pcm)%4 != 0 {
		t.Fatalf("Stereo 16-bit data must be a multiple of 4 bytes, got %d", len(pcm))
	}
	// 0.12*2 + 0.3 秒
	if frames := len(pcm) / 4; frames < 25900 || frames > 25940 {
		t.Errorf("Expected about 25920 frames, got %d", frames)
	}

	var peak int16
	for i := 0; i < len(pcm); i += 4 {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		if l != r {
			t.Fatalf("Channels differ at frame %d", i/4)
		}
		if l > peak {
			peak = l
		}
	}
	if peak == 0 {
		t.Error("Chime is silent")
	}
}

func TestEncodeStereo16Clamps(t *testing.T) {
	pcm := encodeStereo16([]float64{2, -2, 0})
	got := []int16{
		int16(binary.LittleEndian.Uint16(pcm[0:])),
		int16(binary.LittleEndian.Uint16(pcm[4:])),
		int16(binary.LittleEndian.Uint16(pcm[8:])),
	}
	if got[0] != 32767 || got[1] != -32767 || got[2] != 0 {
		t.Errorf("Unexpected samples %v", got)
	}
}

func TestSoundBankWithoutContext(t *testing.T) {
	var nilBank *SoundBank
	nilBank.PlayChime()

	b := NewSoundBank(nil, 1)
	b.PlayChime()
	b.PlayExplosion()
	if len(b.explosion) == 0 {
		t.Error("Explosion sound should be generated")
	}
}
