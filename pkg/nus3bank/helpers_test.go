package nus3bank

import (
	"encoding/binary"
	"math"

	"github.com/akisawa/go-nus3bank/pkg/binio"
)

// テスト用のコンテナをバイトレベルで組み立てるヘルパー群。
// 書き出し側の実装とは独立に、仕様通りのレイアウトを直接構築します。

type testSection struct {
	tag     string
	payload []byte
}

// buildContainer は目次とセクション本体を持つコンテナ全体を組み立てます
func buildContainer(sections ...testSection) []byte {
	w := binio.NewWriter()
	w.Raw([]byte("NUS3"))
	w.U32(0)
	w.Raw([]byte("BANKTOC "))
	w.U32(uint32(4 + 8*len(sections)))
	w.U32(uint32(len(sections)))
	for _, s := range sections {
		w.Raw([]byte(s.tag))
		w.U32(uint32(len(s.payload)))
	}
	for _, s := range sections {
		w.Raw([]byte(s.tag))
		w.U32(uint32(len(s.payload)))
		w.Raw(s.payload)
	}
	out := w.Bytes()
	binary.LittleEndian.PutUint32(out[4:], uint32(len(out)-8))
	return out
}

// writeLenString は長さプレフィックス付き文字列フィールドを書き込みます
func writeLenString(w *binio.Writer, s string) {
	w.U8(uint8(len(s) + 1))
	w.Raw([]byte(s))
	w.U8(0)
	w.Pad()
}

// testMeta はメタデータブロック組み立てのパラメータです
type testMeta struct {
	prefix   []byte
	reserved []byte
	name     string
	offset   uint32
	size     uint32
	words    []uint32 // 末尾ペア領域の生の32ビット語
}

// buildMetaBlock は標準レイアウトのメタデータブロックを組み立てます
func buildMetaBlock(m testMeta) []byte {
	w := binio.NewWriter()
	w.Raw(m.prefix)
	reserved := m.reserved
	if reserved == nil {
		reserved = make([]byte, 6)
	}
	w.Raw(reserved)
	w.U8(uint8(len(m.name) + 1))
	w.Raw([]byte(m.name))
	w.U8(0)
	w.Pad()
	w.U32(toneMarker)
	w.U32(m.offset)
	w.U32(m.size)
	for _, v := range m.words {
		w.U32(v)
	}
	return w.Bytes()
}

// buildTonePayload はメタデータブロック群からTONEセクションのペイロードを組み立てます
func buildTonePayload(blocks ...[]byte) []byte {
	w := binio.NewWriter()
	w.U32(uint32(len(blocks)))
	offset := uint32(len(blocks)*8 + 4)
	for _, b := range blocks {
		w.U32(offset)
		w.U32(uint32(len(b)))
		offset += uint32(len(b))
	}
	w.U32(0)
	for _, b := range blocks {
		w.Raw(b)
	}
	return w.Bytes()
}

// buildPackPayload はペイロード群からPACKセクションのペイロードを組み立てます
func buildPackPayload(payloads ...[]byte) []byte {
	w := binio.NewWriter()
	for _, p := range payloads {
		w.Raw(p)
		w.Pad()
	}
	return w.Bytes()
}

// buildPropPayload は拡張レイアウトのPROPセクションを組み立てます
func buildPropPayload(project, timestamp string) []byte {
	w := binio.NewWriter()
	w.U32(0)
	w.U32(0xF1)
	w.U16(0)
	w.U16(3)
	writeLenString(w, project)
	w.U16(8)
	w.Pad()
	writeLenString(w, timestamp)
	return w.Bytes()
}

// buildBinfPayload はBINFセクションを組み立てます
func buildBinfPayload(name string, id uint32) []byte {
	w := binio.NewWriter()
	w.U32(0)
	w.U32(3)
	writeLenString(w, name)
	w.U32(id)
	return w.Bytes()
}

// payloadBytes は内容の検証に使えるパターン入りのペイロードを返します
func payloadBytes(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i%16)
	}
	return b
}

func f32bits(f float32) uint32 {
	return math.Float32bits(f)
}

// sampleBank は2トラック構成の標準的なバンクを組み立てます。
// 再構築側と同じ正規のレイアウトで組み立てているため、
// 無変更のシリアライズはこのバイト列と一致します。
func sampleBank() []byte {
	payloadA := payloadBytes(44, 0xA0)
	payloadB := payloadBytes(46, 0xB0)

	metaA := buildMetaBlock(testMeta{
		name:   "track_a",
		offset: 0,
		size:   uint32(len(payloadA)),
		words: []uint32{
			0, f32bits(0.1),
			1, f32bits(0.2),
			2, f32bits(0.3),
		},
	})
	metaB := buildMetaBlock(testMeta{
		prefix: payloadBytes(8, 0xD0),
		name:   "track_b",
		offset: 44,
		size:   uint32(len(payloadB)),
		words: []uint32{
			f32bits(1.5), 2,
		},
	})

	return buildContainer(
		testSection{tag: TagProp, payload: buildPropPayload("DefaultProject", "2014/10/06 03:02:28")},
		testSection{tag: TagBankInfo, payload: buildBinfPayload("snd_bgm_CRS01_Menu", 5)},
		testSection{tag: TagGroup, payload: []byte("group_a\x00group_b\x00\x00\x00")},
		testSection{tag: TagDataTone, payload: payloadBytes(16, 0x10)},
		testSection{tag: TagTone, payload: buildTonePayload(metaA, metaB)},
		testSection{tag: TagJunk, payload: make([]byte, 8)},
		testSection{tag: TagPack, payload: buildPackPayload(payloadA, payloadB)},
	)
}
