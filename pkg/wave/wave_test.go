package wave

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// buildWav はPCM形式のRIFFヘッダとデータチャンクを組み立てます
func buildWav(sampleRate, channels, bitDepth int, data []byte) []byte {
	blockAlign := channels * bitDepth / 8
	buf := make([]byte, 0, 44+len(data))
	u16 := func(v int) []byte {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(v))
		return b
	}
	u32 := func(v int) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v))
		return b
	}
	buf = append(buf, "RIFF"...)
	buf = append(buf, u32(36+len(data))...)
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...)
	buf = append(buf, u16(channels)...)
	buf = append(buf, u32(sampleRate)...)
	buf = append(buf, u32(sampleRate*blockAlign)...)
	buf = append(buf, u16(blockAlign)...)
	buf = append(buf, u16(bitDepth)...)
	buf = append(buf, "data"...)
	buf = append(buf, u32(len(data))...)
	buf = append(buf, data...)
	return buf
}

func TestInspect(t *testing.T) {
	t.Run("モノラル8000Hz", func(t *testing.T) {
		info, err := Inspect(buildWav(8000, 1, 16, nil))
		if err != nil {
			t.Fatalf("Inspect() error = %v", err)
		}
		if info.SampleRate != 8000 || info.Channels != 1 || info.BitDepth != 16 {
			t.Errorf("Inspect() = %+v, want 8000Hz/1ch/16bit", info)
		}
		if !info.PCM {
			t.Error("PCM = false, want true")
		}
	})

	t.Run("ステレオ48000Hzのデータ付き", func(t *testing.T) {
		data := make([]byte, 48000*4) // 2ch 16bitの1秒分
		info, err := Inspect(buildWav(48000, 2, 16, data))
		if err != nil {
			t.Fatalf("Inspect() error = %v", err)
		}
		if info.SampleRate != 48000 || info.Channels != 2 {
			t.Errorf("Inspect() = %+v, want 48000Hz/2ch", info)
		}
		if info.Duration <= 0 {
			t.Errorf("Duration = %v, want > 0", info.Duration)
		}
	})

	t.Run("エンコーダで生成したファイル", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "enc.wav")
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		enc := wav.NewEncoder(f, 44100, 16, 2, 1)
		buf := &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
			Data:           make([]int, 44100/10*2), // 0.1秒分
			SourceBitDepth: 16,
		}
		if err := enc.Write(buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if err := enc.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		f.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}

		info, err := Inspect(data)
		if err != nil {
			t.Fatalf("Inspect() error = %v", err)
		}
		if info.SampleRate != 44100 || info.Channels != 2 || info.BitDepth != 16 {
			t.Errorf("Inspect() = %+v, want 44100Hz/2ch/16bit", info)
		}
		if !info.PCM {
			t.Error("PCM = false, want true")
		}
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"ゲーム用コーデックのペイロード", []byte("IDSP\x00\x00\x00\x00payload")},
		{"短すぎる入力", []byte("RI")},
		{"空の入力", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(tt.data)
			if !errors.Is(err, ErrNotWave) {
				t.Fatalf("Inspect() error = %v, want ErrNotWave", err)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "長さなし",
			info: Info{SampleRate: 8000, Channels: 1, BitDepth: 16},
			want: "8000Hz 1ch 16bit",
		},
		{
			name: "長さ付き",
			info: Info{SampleRate: 48000, Channels: 2, BitDepth: 16, Duration: 1500 * time.Millisecond},
			want: "48000Hz 2ch 16bit 1.5s",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
