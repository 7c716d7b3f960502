package nus3bank

import (
	"io"

	"github.com/akisawa/go-nus3bank/pkg/binio"
)

// Serialize はアーカイブをNUS3BANKコンテナのバイト列へ再構築します。
// PACKとTONEは現在のトラック一覧から組み立て直し、それ以外のセクションは
// 保持しているバイト列をそのまま書き出します。保留中の編集の検証に
// 失敗した場合は、出力を一切生成せずにエラーを返します。
func (a *Archive) Serialize() ([]byte, error) {
	if err := a.validatePending(); err != nil {
		return nil, err
	}

	var packBytes, toneBytes []byte
	if a.tone != nil {
		// TONEのメタデータブロックは再計算後のペイロード位置を参照するため、
		// PACKを先に組み立てる
		packBytes = buildPack(a.tone)
		toneBytes = buildTone(a.tone)
	}

	payloads := make([][]byte, 0, len(a.sections))
	for _, s := range a.sections {
		payloads = append(payloads, a.sectionBytes(s, toneBytes, packBytes))
	}

	w := binio.NewWriter()
	w.Raw([]byte(ContainerMagic))
	w.U32(0)
	w.Raw([]byte(TOCMarker))
	w.U32(uint32(4 + 8*len(a.sections)))
	w.U32(uint32(len(a.sections)))
	for i, s := range a.sections {
		w.Raw([]byte(s.Tag()))
		w.U32(uint32(len(payloads[i])))
	}
	for i, s := range a.sections {
		w.Raw([]byte(s.Tag()))
		w.U32(uint32(len(payloads[i])))
		w.Raw(payloads[i])
	}
	if err := w.PatchU32(4, uint32(w.Len()-8)); err != nil {
		return nil, err
	}

	a.pending = nil
	return w.Bytes(), nil
}

// WriteTo はシリアライズ結果を書き込み先へ出力します。
// io.WriterToを実装します。
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	data, err := a.Serialize()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// sectionBytes はセクション1つ分の書き出し内容を返します
func (a *Archive) sectionBytes(s Section, toneBytes, packBytes []byte) []byte {
	switch sec := s.(type) {
	case *Prop:
		return sec.Raw
	case *BankInfo:
		return sec.Raw
	case *Group:
		return sec.Raw
	case *DataTone:
		return sec.Raw
	case *Tone:
		return toneBytes
	case *Junk:
		return sec.Raw
	case *Pack:
		if a.tone != nil {
			return packBytes
		}
		return sec.Raw
	case *Unknown:
		return sec.Raw
	}
	return nil
}

// buildPack はトラック一覧からPACKセクションを組み立てます。
// 各ペイロードを並び順に連結し、それぞれの直後を4バイト境界まで
// ゼロ埋めします。認識済みトラックのペイロード位置はここで確定します。
func buildPack(tone *Tone) []byte {
	w := binio.NewWriter()
	for _, t := range tone.tracks {
		offset := w.Len()
		if !t.unrecognized {
			t.packOffset = uint32(offset)
			t.packSize = uint32(len(t.payload))
		}
		w.Raw(t.payload)
		w.Pad()
	}
	return w.Bytes()
}

// packSize は再構築後のPACKセクションのバイト数を返します
func packSize(tone *Tone) int {
	total := 0
	for _, t := range tone.tracks {
		total += len(t.payload) + binio.PaddingFor(len(t.payload))
	}
	return total
}

// buildTone はトラック一覧からTONEセクションを組み立てます。
// トラック数、ポインタテーブル、ギャップ語、メタデータブロックの順で、
// テーブルのオフセットはトラック数フィールドの直後を基準とします。
func buildTone(tone *Tone) []byte {
	w := binio.NewWriter()
	w.U32(uint32(len(tone.tracks)))

	offset := uint32(len(tone.tracks)*8 + 4)
	for _, t := range tone.tracks {
		size := uint32(metaSize(t))
		w.U32(offset)
		w.U32(size)
		offset += size
	}
	w.U32(0)
	for _, t := range tone.tracks {
		w.Raw(encodeToneMeta(t))
	}
	return w.Bytes()
}

// toneSize は再構築後のTONEセクションのバイト数を返します
func toneSize(tone *Tone) int {
	total := 8 + len(tone.tracks)*8
	for _, t := range tone.tracks {
		total += metaSize(t)
	}
	return total
}
