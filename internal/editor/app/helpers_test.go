package app

import (
	"encoding/binary"
	"testing"
)

// buildTestBank はトラック se_solo（IDSP 16バイト）だけを持つバンクを組み立てます
func buildTestBank(t *testing.T) []byte {
	t.Helper()

	u32 := binary.LittleEndian.AppendUint32
	payload := append([]byte("IDSP"), make([]byte, 12)...)

	// BINFペイロード
	var binf []byte
	binf = u32(binf, 0)
	binf = u32(binf, 3)
	binf = append(binf, byte(len("app_bank")+1))
	binf = append(binf, "app_bank"...)
	binf = append(binf, 0, 0, 0) // 終端と整列パディング
	binf = u32(binf, 9)

	// TONEペイロード（メタデータブロックは1つ）
	var meta []byte
	meta = append(meta, make([]byte, 6)...)
	meta = append(meta, byte(len("se_solo")+1))
	meta = append(meta, "se_solo"...)
	meta = append(meta, 0, 0) // 終端と整列パディング
	meta = u32(meta, 8)
	meta = u32(meta, 0)
	meta = u32(meta, uint32(len(payload)))

	var tone []byte
	tone = u32(tone, 1)
	tone = u32(tone, 1*8+4)
	tone = u32(tone, uint32(len(meta)))
	tone = u32(tone, 0)
	tone = append(tone, meta...)

	sections := []struct {
		tag     string
		payload []byte
	}{
		{"BINF", binf},
		{"TONE", tone},
		{"PACK", payload},
	}

	var out []byte
	out = append(out, "NUS3"...)
	out = u32(out, 0)
	out = append(out, "BANKTOC "...)
	out = u32(out, uint32(4+8*len(sections)))
	out = u32(out, uint32(len(sections)))
	for _, sec := range sections {
		out = append(out, sec.tag...)
		out = u32(out, uint32(len(sec.payload)))
	}
	for _, sec := range sections {
		out = append(out, sec.tag...)
		out = u32(out, uint32(len(sec.payload)))
		out = append(out, sec.payload...)
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(out)-8))
	return out
}
