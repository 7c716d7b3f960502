package nus3bank

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/akisawa/go-nus3bank/pkg/binio"
)

func TestDecodeToneMeta(t *testing.T) {
	t.Run("プレフィックスなし", func(t *testing.T) {
		block := buildMetaBlock(testMeta{
			name:   "se_attack",
			offset: 128,
			size:   256,
			words:  []uint32{0, f32bits(0.5), 1, f32bits(1.25)},
		})
		tr := decodeToneMeta(0, block)
		if tr.unrecognized {
			t.Fatal("decodeToneMeta() unrecognized = true, want false")
		}
		if len(tr.prefix) != 0 {
			t.Errorf("prefix length = %d, want 0", len(tr.prefix))
		}
		if got := tr.displayName(); got != "se_attack" {
			t.Errorf("displayName() = %q, want %q", got, "se_attack")
		}
		if tr.packOffset != 128 || tr.packSize != 256 {
			t.Errorf("offset/size = %d/%d, want 128/256", tr.packOffset, tr.packSize)
		}
		if tr.order != pairIndexFirst {
			t.Errorf("order = %v, want pairIndexFirst", tr.order)
		}
		if len(tr.pairs) != 2 {
			t.Fatalf("pairs length = %d, want 2", len(tr.pairs))
		}
		if tr.pairs[1].Index != 1 || tr.pairs[1].Value != 1.25 {
			t.Errorf("pairs[1] = {%d, %v}, want {1, 1.25}", tr.pairs[1].Index, tr.pairs[1].Value)
		}
	})

	t.Run("プレフィックス付き", func(t *testing.T) {
		prefix := payloadBytes(8, 0xE0)
		block := buildMetaBlock(testMeta{
			prefix: prefix,
			name:   "se_guard",
			offset: 64,
			size:   32,
		})
		tr := decodeToneMeta(1, block)
		if tr.unrecognized {
			t.Fatal("decodeToneMeta() unrecognized = true, want false")
		}
		if !bytes.Equal(tr.prefix, prefix) {
			t.Errorf("prefix = % x, want % x", tr.prefix, prefix)
		}
		if got := tr.displayName(); got != "se_guard" {
			t.Errorf("displayName() = %q, want %q", got, "se_guard")
		}
	})

	t.Run("値が先のペア列", func(t *testing.T) {
		block := buildMetaBlock(testMeta{
			name:  "se_step",
			words: []uint32{f32bits(1.5), 2, f32bits(-3.5), 7},
		})
		tr := decodeToneMeta(2, block)
		if tr.unrecognized {
			t.Fatal("decodeToneMeta() unrecognized = true, want false")
		}
		if tr.order != pairValueFirst {
			t.Fatalf("order = %v, want pairValueFirst", tr.order)
		}
		if tr.pairs[0].Index != 2 || tr.pairs[0].Value != 1.5 {
			t.Errorf("pairs[0] = {%d, %v}, want {2, 1.5}", tr.pairs[0].Index, tr.pairs[0].Value)
		}
		if tr.pairs[1].Index != 7 || tr.pairs[1].Value != -3.5 {
			t.Errorf("pairs[1] = {%d, %v}, want {7, -3.5}", tr.pairs[1].Index, tr.pairs[1].Value)
		}
	})

	t.Run("予約領域の保持", func(t *testing.T) {
		reserved := []byte{1, 2, 3, 4, 5, 6}
		block := buildMetaBlock(testMeta{reserved: reserved, name: "se_hit"})
		tr := decodeToneMeta(3, block)
		if tr.unrecognized {
			t.Fatal("decodeToneMeta() unrecognized = true, want false")
		}
		if !bytes.Equal(tr.reserved, reserved) {
			t.Errorf("reserved = % x, want % x", tr.reserved, reserved)
		}
	})
}

func TestDecodeToneMetaUnrecognized(t *testing.T) {
	base := testMeta{name: "se_x", offset: 0, size: 16}

	tamper := func(block []byte, pos int, v byte) []byte {
		out := append([]byte(nil), block...)
		out[pos] = v
		return out
	}

	tests := []struct {
		name  string
		block []byte
	}{
		{
			name: "マーカー値の不一致",
			// マーカーは6+1+4+1=12バイト目から
			block: tamper(buildMetaBlock(base), 12, 7),
		},
		{
			name: "名前終端が非ゼロ",
			// 終端は6+1+4=11バイト目
			block: tamper(buildMetaBlock(base), 11, 0xFF),
		},
		{
			name: "パディングが非ゼロ",
			// name "se_x" は終端までで12バイトに揃うため、名前を1文字分
			// 短くしてパディングを作り、そのパディングバイトを汚す
			block: tamper(buildMetaBlock(testMeta{name: "se_"}), 11, 1),
		},
		{
			name:  "ペア領域の端数",
			block: append(buildMetaBlock(base), 0, 0, 0, 0),
		},
		{
			name:  "先頭ペアが両解釈とも不正",
			block: buildMetaBlock(testMeta{name: "se_x", words: []uint32{5000000, f32bits(float32(math.NaN()))}}),
		},
		{
			name:  "長さゼロの名前フィールド",
			block: tamper(buildMetaBlock(base), 6, 0),
		},
		{
			name:  "短すぎるブロック",
			block: []byte{0, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := decodeToneMeta(0, tt.block)
			if !tr.unrecognized {
				t.Fatal("decodeToneMeta() unrecognized = false, want true")
			}
			if !bytes.Equal(tr.raw, tt.block) {
				t.Errorf("raw = % x, want % x", tr.raw, tt.block)
			}
		})
	}
}

func TestEncodeToneMeta(t *testing.T) {
	t.Run("復号と組み立てで元のバイト列に戻る", func(t *testing.T) {
		blocks := [][]byte{
			buildMetaBlock(testMeta{name: "a", offset: 0, size: 4}),
			buildMetaBlock(testMeta{name: "ab", offset: 4, size: 8}),
			buildMetaBlock(testMeta{name: "abc", offset: 12, size: 16}),
			buildMetaBlock(testMeta{name: "abcd", offset: 28, size: 32}),
			buildMetaBlock(testMeta{prefix: payloadBytes(8, 0xC0), name: "abcde", words: []uint32{0, f32bits(0.25)}}),
			buildMetaBlock(testMeta{name: "pairs", words: []uint32{f32bits(2.5), 3}}),
		}
		for _, block := range blocks {
			tr := decodeToneMeta(0, block)
			if tr.unrecognized {
				t.Fatalf("decodeToneMeta(% x) unrecognized = true, want false", block)
			}
			if got := encodeToneMeta(tr); !bytes.Equal(got, block) {
				t.Errorf("encodeToneMeta() = % x, want % x", got, block)
			}
		}
	})

	t.Run("未認識ブロックはそのまま", func(t *testing.T) {
		raw := payloadBytes(21, 0x55)
		tr := decodeToneMeta(0, raw)
		if !tr.unrecognized {
			t.Fatal("decodeToneMeta() unrecognized = false, want true")
		}
		if got := encodeToneMeta(tr); !bytes.Equal(got, raw) {
			t.Errorf("encodeToneMeta() = % x, want % x", got, raw)
		}
	})

	t.Run("新規トラックの組み立て", func(t *testing.T) {
		tr := newTrack(5, []byte("se_new"), payloadBytes(20, 1))
		tr.packOffset = 100
		tr.packSize = 20
		got := encodeToneMeta(tr)
		want := buildMetaBlock(testMeta{name: "se_new", offset: 100, size: 20})
		if !bytes.Equal(got, want) {
			t.Errorf("encodeToneMeta() = % x, want % x", got, want)
		}
	})
}

func TestMetaSize(t *testing.T) {
	metas := []testMeta{
		{name: "a"},
		{name: "ab"},
		{name: "abc"},
		{name: "abcd"},
		{name: "abcde", words: []uint32{0, f32bits(1.0)}},
		{prefix: payloadBytes(8, 0xC0), name: "abcdef"},
	}
	for _, m := range metas {
		block := buildMetaBlock(m)
		tr := decodeToneMeta(0, block)
		if got := metaSize(tr); got != len(block) {
			t.Errorf("metaSize(%q) = %d, want %d", m.name, got, len(block))
		}
	}

	raw := payloadBytes(17, 0)
	tr := decodeToneMeta(0, raw)
	if got := metaSize(tr); got != 17 {
		t.Errorf("metaSize(未認識) = %d, want 17", got)
	}
}

func TestDetectPairOrder(t *testing.T) {
	tests := []struct {
		name      string
		a, b      uint32
		wantOrder pairOrder
		wantOK    bool
	}{
		{"インデックスが先", 3, f32bits(0.5), pairIndexFirst, true},
		{"値が先", f32bits(0.5), 3, pairValueFirst, true},
		{"両解釈可能ならインデックス優先", 0, 0, pairIndexFirst, true},
		{"無効値のインデックスも許容", math.MaxUint32, f32bits(2.0), pairIndexFirst, true},
		{"どちらでもない", 5000000, f32bits(float32(math.Inf(1))), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, ok := detectPairOrder(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("detectPairOrder(%#x, %#x) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && order != tt.wantOrder {
				t.Errorf("detectPairOrder(%#x, %#x) = %v, want %v", tt.a, tt.b, order, tt.wantOrder)
			}
		})
	}
}

func TestDecodeTone(t *testing.T) {
	t.Run("複数トラック", func(t *testing.T) {
		payload := buildTonePayload(
			buildMetaBlock(testMeta{name: "one", offset: 0, size: 10}),
			buildMetaBlock(testMeta{name: "two", offset: 12, size: 20}),
		)
		tone, err := decodeTone(payload, 0)
		if err != nil {
			t.Fatalf("decodeTone() error = %v", err)
		}
		if len(tone.tracks) != 2 {
			t.Fatalf("tracks length = %d, want 2", len(tone.tracks))
		}
		if tone.tracks[0].id != 0 || tone.tracks[1].id != 1 {
			t.Errorf("track ids = %d, %d, want 0, 1", tone.tracks[0].id, tone.tracks[1].id)
		}
		if got := tone.tracks[1].displayName(); got != "two" {
			t.Errorf("tracks[1] name = %q, want %q", got, "two")
		}
	})

	t.Run("トラック数ゼロ", func(t *testing.T) {
		w := binio.NewWriter()
		w.U32(0)
		w.U32(0)
		tone, err := decodeTone(w.Bytes(), 0)
		if err != nil {
			t.Fatalf("decodeTone() error = %v", err)
		}
		if len(tone.tracks) != 0 {
			t.Errorf("tracks length = %d, want 0", len(tone.tracks))
		}
	})

	tests := []struct {
		name    string
		payload []byte
	}{
		{
			name:    "トラック数がセクションを超える",
			payload: []byte{0xFF, 0xFF, 0xFF, 0x7F, 0, 0, 0, 0},
		},
		{
			name: "ブロックが範囲外",
			payload: func() []byte {
				w := binio.NewWriter()
				w.U32(1)
				w.U32(12) // ブロック開始
				w.U32(64) // セクション末尾を超えるサイズ
				w.U32(0)
				w.Raw(payloadBytes(16, 0))
				return w.Bytes()
			}(),
		},
		{
			name:    "カウント欠落",
			payload: []byte{1, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTone(tt.payload, 0)
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("decodeTone() error = %v, want *FormatError", err)
			}
		})
	}
}
