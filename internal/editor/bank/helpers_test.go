package bank

import (
	"encoding/binary"
	"testing"
)

// appendU32 はリトルエンディアンで32bit値を追加します
func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

// appendU16 はリトルエンディアンで16bit値を追加します
func appendU16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

// appendLenString は長さ付き文字列（長さ、本体、終端、整列パディング）を追加します
func appendLenString(b []byte, s string) []byte {
	start := len(b)
	b = append(b, byte(len(s)+1))
	b = append(b, s...)
	b = append(b, 0)
	for (len(b)-start)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// buildToneMeta はプレフィックスなしのメタデータブロックを組み立てます
func buildToneMeta(name string, offset, size uint32) []byte {
	var b []byte
	b = append(b, make([]byte, 6)...)
	b = append(b, byte(len(name)+1))
	b = append(b, name...)
	b = append(b, 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	b = appendU32(b, 8)
	b = appendU32(b, offset)
	b = appendU32(b, size)
	return b
}

// buildWavPayload は16bit PCMの最小WAVファイルを組み立てます
func buildWavPayload(sampleRate uint32, channels, bitDepth uint16, data []byte) []byte {
	blockAlign := channels * bitDepth / 8
	var b []byte
	b = append(b, "RIFF"...)
	b = appendU32(b, uint32(36+len(data)))
	b = append(b, "WAVE"...)
	b = append(b, "fmt "...)
	b = appendU32(b, 16)
	b = appendU16(b, 1)
	b = appendU16(b, channels)
	b = appendU32(b, sampleRate)
	b = appendU32(b, sampleRate*uint32(blockAlign))
	b = appendU16(b, blockAlign)
	b = appendU16(b, bitDepth)
	b = append(b, "data"...)
	b = appendU32(b, uint32(len(data)))
	b = append(b, data...)
	return b
}

// testBankPayloads はテスト用バンクの2トラック分のペイロードを返します
func testBankPayloads() ([]byte, []byte) {
	idsp := append([]byte("IDSP"), make([]byte, 12)...)
	wav := buildWavPayload(8000, 1, 16, make([]byte, 4))
	return idsp, wav
}

// buildTestBank はBINF、TONE、PACKの3セクションからなるバンクを組み立てます。
// トラックは se_a（IDSP 16バイト）と se_b（WAV 48バイト）の2つです。
func buildTestBank(t *testing.T) []byte {
	t.Helper()

	payloadA, payloadB := testBankPayloads()

	// BINFペイロード
	var binf []byte
	binf = appendU32(binf, 0)
	binf = appendU32(binf, 3)
	binf = appendLenString(binf, "test_bank")
	binf = appendU32(binf, 7)

	// TONEペイロード
	metaA := buildToneMeta("se_a", 0, uint32(len(payloadA)))
	metaB := buildToneMeta("se_b", uint32(len(payloadA)), uint32(len(payloadB)))
	var tone []byte
	tone = appendU32(tone, 2)
	tone = appendU32(tone, 2*8+4)
	tone = appendU32(tone, uint32(len(metaA)))
	tone = appendU32(tone, uint32(2*8+4+len(metaA)))
	tone = appendU32(tone, uint32(len(metaB)))
	tone = appendU32(tone, 0)
	tone = append(tone, metaA...)
	tone = append(tone, metaB...)

	// PACKペイロード
	var pack []byte
	pack = append(pack, payloadA...)
	pack = append(pack, payloadB...)

	sections := []struct {
		tag     string
		payload []byte
	}{
		{"BINF", binf},
		{"TONE", tone},
		{"PACK", pack},
	}

	var out []byte
	out = append(out, "NUS3"...)
	out = appendU32(out, 0)
	out = append(out, "BANKTOC "...)
	out = appendU32(out, uint32(4+8*len(sections)))
	out = appendU32(out, uint32(len(sections)))
	for _, sec := range sections {
		out = append(out, sec.tag...)
		out = appendU32(out, uint32(len(sec.payload)))
	}
	for _, sec := range sections {
		out = append(out, sec.tag...)
		out = appendU32(out, uint32(len(sec.payload)))
		out = append(out, sec.payload...)
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(out)-8))
	return out
}
