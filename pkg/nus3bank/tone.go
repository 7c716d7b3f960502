package nus3bank

import (
	"fmt"
	"math"

	"github.com/akisawa/go-nus3bank/pkg/binio"
)

const (
	// メタデータブロック先頭に現れることがある固定長プレフィックスの長さ
	tonePrefixLen = 8

	// 名前フィールドの直後に置かれる固定マーカー値
	toneMarker = 8

	// 末尾ペアのインデックスとして妥当とみなす上限
	maxPairIndex = 1000000
)

// pairOrder はメタデータブロック末尾のペア列の並び順を表します
type pairOrder int

const (
	// pairIndexFirst は (インデックス, 値) の順
	pairIndexFirst pairOrder = iota
	// pairValueFirst は (値, インデックス) の順
	pairValueFirst
)

// tonePair はメタデータブロック末尾の1ペアを表します
type tonePair struct {
	Index uint32
	Value float32
}

// track はTONEセクション内の1トラック分のメタデータと、
// PACKセクションから切り出したペイロードを保持します。
// 未認識レイアウトのブロックは raw だけを持ち、書き出し時に
// そのまま再現されます。
type track struct {
	id uint32

	prefix   []byte // 存在する場合のみ8バイト
	reserved []byte // 6バイトの予約領域
	nameRaw  []byte // 名前フィールドの生バイト列（終端を含まない）
	order    pairOrder
	pairs    []tonePair

	// ペイロードのPACK内での位置。書き出しのたびに再計算される
	packOffset uint32
	packSize   uint32

	payload []byte

	unrecognized bool
	raw          []byte
}

// newTrack はAddTrackで追加される標準レイアウトのトラックを作ります
func newTrack(id uint32, nameRaw, payload []byte) *track {
	return &track{
		id:       id,
		reserved: make([]byte, 6),
		nameRaw:  nameRaw,
		order:    pairIndexFirst,
		packSize: uint32(len(payload)),
		payload:  payload,
	}
}

// displayName はトラックの表示名を返します
func (t *track) displayName() string {
	if t.unrecognized {
		return ""
	}
	return decodeDisplayName(t.nameRaw)
}

// clone はトラックの深いコピーを返します
func (t *track) clone() *track {
	c := *t
	c.prefix = append([]byte(nil), t.prefix...)
	c.reserved = append([]byte(nil), t.reserved...)
	c.nameRaw = append([]byte(nil), t.nameRaw...)
	c.pairs = append([]tonePair(nil), t.pairs...)
	c.payload = append([]byte(nil), t.payload...)
	c.raw = append([]byte(nil), t.raw...)
	return &c
}

// decodeTone はTONEセクションのペイロードを解析します。
// 先頭のトラック数、続くポインタテーブルを読み、テーブルが指す
// 各ブロックをメタデータとして解析します。ポインタテーブルの
// オフセットはトラック数フィールドの直後を基準とします。
func decodeTone(payload []byte, base int) (*Tone, error) {
	r := binio.NewReader(payload)
	count, err := r.U32()
	if err != nil {
		return nil, &FormatError{Offset: base, Reason: "TONE track count is missing"}
	}
	if int64(count)*8+4 > int64(len(payload)) {
		return nil, &FormatError{Offset: base, Reason: fmt.Sprintf("TONE track count %d exceeds section size", count)}
	}

	tone := &Tone{tracks: make([]*track, 0, count)}
	for i := uint32(0); i < count; i++ {
		entry := base + r.Pos()
		off, err := r.U32()
		if err != nil {
			return nil, &FormatError{Offset: entry, Reason: "TONE pointer table is truncated"}
		}
		size, err := r.U32()
		if err != nil {
			return nil, &FormatError{Offset: entry, Reason: "TONE pointer table is truncated"}
		}
		start := int64(off) + 4
		end := start + int64(size)
		if end > int64(len(payload)) {
			return nil, &FormatError{Offset: entry, Reason: fmt.Sprintf("TONE metadata block %d is out of range", i)}
		}
		tone.tracks = append(tone.tracks, decodeToneMeta(i, payload[start:end]))
	}
	return tone, nil
}

// decodeToneMeta は1トラック分のメタデータブロックを解析します。
// プレフィックスなしの形状、8バイトプレフィックス付きの形状の順に試し、
// どちらにも一致しない場合は未認識として生バイト列を保持します。
func decodeToneMeta(id uint32, block []byte) *track {
	for _, prefixLen := range []int{0, tonePrefixLen} {
		if t, ok := tryDecodeToneMeta(id, block, prefixLen); ok {
			return t
		}
	}
	return &track{id: id, unrecognized: true, raw: block}
}

// tryDecodeToneMeta はブロックを指定のプレフィックス長で解析し、
// 形状が一致した場合のみトラックを返します。サイズの整合、終端バイト、
// 整列パディング、マーカー値をすべて検査し、1つでも合わなければ
// 一致なしとして扱います。
func tryDecodeToneMeta(id uint32, block []byte, prefixLen int) (*track, bool) {
	r := binio.NewReader(block)
	if err := r.Skip(prefixLen); err != nil {
		return nil, false
	}
	reserved, err := r.Bytes(6)
	if err != nil {
		return nil, false
	}
	nameLen, err := r.U8()
	if err != nil || nameLen == 0 {
		return nil, false
	}
	nameRaw, err := r.Bytes(int(nameLen) - 1)
	if err != nil {
		return nil, false
	}
	term, err := r.U8()
	if err != nil || term != 0 {
		return nil, false
	}
	for pad := binio.PaddingFor(r.Pos()); pad > 0; pad-- {
		b, err := r.U8()
		if err != nil || b != 0 {
			return nil, false
		}
	}
	marker, err := r.U32()
	if err != nil || marker != toneMarker {
		return nil, false
	}
	offset, err := r.U32()
	if err != nil {
		return nil, false
	}
	size, err := r.U32()
	if err != nil {
		return nil, false
	}
	rem := r.Remaining()
	if rem%8 != 0 {
		return nil, false
	}

	t := &track{
		id:         id,
		reserved:   reserved,
		nameRaw:    nameRaw,
		order:      pairIndexFirst,
		packOffset: offset,
		packSize:   size,
	}
	if prefixLen > 0 {
		t.prefix = block[:prefixLen]
	}

	for i, count := 0, rem/8; i < count; i++ {
		a, err := r.U32()
		if err != nil {
			return nil, false
		}
		b, err := r.U32()
		if err != nil {
			return nil, false
		}
		if i == 0 {
			order, ok := detectPairOrder(a, b)
			if !ok {
				return nil, false
			}
			t.order = order
			t.pairs = make([]tonePair, 0, count)
		}
		t.pairs = append(t.pairs, pairFromWords(a, b, t.order))
	}
	return t, true
}

// detectPairOrder は先頭ペアの2語からペア列の並び順を判定します。
// 両方の解釈が妥当な場合は (インデックス, 値) の順を優先します。
func detectPairOrder(a, b uint32) (pairOrder, bool) {
	indexFirst := pairIndexPlausible(a) && pairValuePlausible(math.Float32frombits(b))
	valueFirst := pairValuePlausible(math.Float32frombits(a)) && pairIndexPlausible(b)
	switch {
	case indexFirst:
		return pairIndexFirst, true
	case valueFirst:
		return pairValueFirst, true
	}
	return 0, false
}

// pairIndexPlausible はインデックスとして妥当な値かを判定します。
// 無効値を示す0xFFFFFFFFは妥当として扱います。
func pairIndexPlausible(v uint32) bool {
	return v == math.MaxUint32 || v <= maxPairIndex
}

// pairValuePlausible は値として妥当な（有限の）浮動小数点数かを判定します
func pairValuePlausible(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}

// pairFromWords は並び順に従って2語をペアへ組み立てます
func pairFromWords(a, b uint32, order pairOrder) tonePair {
	if order == pairValueFirst {
		return tonePair{Index: b, Value: math.Float32frombits(a)}
	}
	return tonePair{Index: a, Value: math.Float32frombits(b)}
}

// encodeToneMeta は1トラック分のメタデータブロックを組み立てます。
// 未認識レイアウトのトラックは保持している生バイト列をそのまま返します。
func encodeToneMeta(t *track) []byte {
	if t.unrecognized {
		return t.raw
	}
	w := binio.NewWriter()
	w.Raw(t.prefix)
	w.Raw(t.reserved)
	w.U8(uint8(len(t.nameRaw) + 1))
	w.Raw(t.nameRaw)
	w.U8(0)
	w.Pad()
	w.U32(toneMarker)
	w.U32(t.packOffset)
	w.U32(t.packSize)
	for _, p := range t.pairs {
		if t.order == pairValueFirst {
			w.F32(p.Value)
			w.U32(p.Index)
		} else {
			w.U32(p.Index)
			w.F32(p.Value)
		}
	}
	return w.Bytes()
}

// metaSize はメタデータブロックの組み立て後のバイト数を返します
func metaSize(t *track) int {
	if t.unrecognized {
		return len(t.raw)
	}
	pos := len(t.prefix) + 6 + 1 + len(t.nameRaw) + 1
	return pos + binio.PaddingFor(pos) + 12 + 8*len(t.pairs)
}
