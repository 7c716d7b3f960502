package nus3bank

import (
	"fmt"

	"github.com/akisawa/go-nus3bank/pkg/binio"
)

// tocEntry は目次の1エントリを表します
type tocEntry struct {
	tag  string
	size uint32
}

// Parse はNUS3BANKコンテナのバイト列を解析してアーカイブを構築します。
// 目次の順にセクションを読み込み、既知のタグは型付きセクションへ、
// 未知のタグは生バイト列のまま格納します。構造の不整合はすべて
// 致命的エラーとして扱い、部分的に解析されたアーカイブを返すことは
// ありません。
func Parse(data []byte) (*Archive, error) {
	if prefix := detectCompression(data); prefix != nil {
		return nil, &UnsupportedCompressionError{Prefix: prefix}
	}

	r := binio.NewReader(data)
	if err := r.AssertMagic([]byte(ContainerMagic)); err != nil {
		return nil, err
	}

	sizeOffset := r.Pos()
	totalSize, err := r.U32()
	if err != nil {
		return nil, err
	}
	if int64(totalSize) != int64(len(data))-8 {
		return nil, &FormatError{
			Offset: sizeOffset,
			Reason: fmt.Sprintf("declared total size %d does not match container size %d", totalSize, len(data)-8),
		}
	}

	marker, err := r.Bytes(8)
	if err != nil {
		return nil, err
	}
	if string(marker) != TOCMarker {
		return nil, &UnsupportedContainerError{Found: marker}
	}

	tocSizeOffset := r.Pos()
	tocSize, err := r.U32()
	if err != nil {
		return nil, err
	}
	countOffset := r.Pos()
	count, err := r.U32()
	if err != nil {
		return nil, err
	}
	if count >= maxSectionCount {
		return nil, &FormatError{Offset: countOffset, Reason: fmt.Sprintf("section count %d is out of range", count)}
	}
	if uint64(tocSize) != uint64(count)*8+4 {
		return nil, &FormatError{
			Offset: tocSizeOffset,
			Reason: fmt.Sprintf("TOC size %d does not match section count %d", tocSize, count),
		}
	}

	entries := make([]tocEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		tag, err := r.Bytes(4)
		if err != nil {
			return nil, err
		}
		size, err := r.U32()
		if err != nil {
			return nil, err
		}
		entries = append(entries, tocEntry{tag: string(tag), size: size})
	}

	a := &Archive{}
	for _, entry := range entries {
		if err := r.AssertMagic([]byte(entry.tag)); err != nil {
			return nil, err
		}
		sizeOffset := r.Pos()
		size, err := r.U32()
		if err != nil {
			return nil, err
		}
		if size != entry.size {
			return nil, &FormatError{
				Offset: sizeOffset,
				Reason: fmt.Sprintf("section %q size %d does not match TOC entry %d", entry.tag, size, entry.size),
			}
		}
		base := r.Pos()
		payload, err := r.Bytes(int(size))
		if err != nil {
			return nil, err
		}
		sec, err := decodeSection(a, entry.tag, payload, base)
		if err != nil {
			return nil, err
		}
		a.sections = append(a.sections, sec)
	}

	if r.Remaining() != 0 {
		return nil, &FormatError{
			Offset: r.Pos(),
			Reason: fmt.Sprintf("%d trailing bytes after last section", r.Remaining()),
		}
	}
	if a.binf == nil {
		return nil, &FormatError{Offset: len(data), Reason: "BINF section is missing"}
	}
	if err := a.loadPayloads(); err != nil {
		return nil, err
	}
	return a, nil
}

// detectCompression は入力がzlibストリームで始まる場合に
// その先頭2バイトを返します
func detectCompression(data []byte) []byte {
	if len(data) < 2 || data[0] != 0x78 {
		return nil
	}
	switch data[1] {
	case 0x01, 0x9C, 0xDA:
		return data[:2]
	}
	return nil
}

// decodeSection はタグに応じてペイロードを型付きセクションへ変換します。
// base はエラー報告用のファイル先頭からのオフセットです。
func decodeSection(a *Archive, tag string, payload []byte, base int) (Section, error) {
	switch tag {
	case TagProp:
		if a.prop != nil {
			return nil, &FormatError{Offset: base, Reason: "duplicate PROP section"}
		}
		a.prop = decodeProp(payload)
		return a.prop, nil
	case TagBankInfo:
		if a.binf != nil {
			return nil, &FormatError{Offset: base, Reason: "duplicate BINF section"}
		}
		binf, err := decodeBankInfo(payload, base)
		if err != nil {
			return nil, err
		}
		a.binf = binf
		return binf, nil
	case TagTone:
		if a.tone != nil {
			return nil, &FormatError{Offset: base, Reason: "duplicate TONE section"}
		}
		tone, err := decodeTone(payload, base)
		if err != nil {
			return nil, err
		}
		a.tone = tone
		return tone, nil
	case TagPack:
		if a.pack != nil {
			return nil, &FormatError{Offset: base, Reason: "duplicate PACK section"}
		}
		a.pack = &Pack{Raw: payload}
		return a.pack, nil
	case TagGroup:
		return &Group{Raw: payload}, nil
	case TagDataTone:
		return &DataTone{Raw: payload}, nil
	case TagJunk:
		return &Junk{Raw: payload}, nil
	}
	return &Unknown{tag: tag, Raw: payload}, nil
}

// loadPayloads はTONEの各トラックが宣言する範囲をPACKセクションから
// 切り出し、トラックのペイロードとして取り込みます。範囲がPACKの
// 実際の長さを超えるトラックは致命的エラーです。
func (a *Archive) loadPayloads() error {
	if a.tone == nil {
		return nil
	}
	if a.pack == nil {
		return &FormatError{Offset: 0, Reason: "TONE section present without PACK section"}
	}
	packLen := uint32(len(a.pack.Raw))
	for _, t := range a.tone.tracks {
		if t.unrecognized {
			continue
		}
		if uint64(t.packOffset)+uint64(t.packSize) > uint64(packLen) {
			return &TrackOutOfBoundsError{
				HexID:   HexID(t.id),
				Offset:  t.packOffset,
				Size:    t.packSize,
				PackLen: packLen,
			}
		}
		t.payload = append([]byte(nil), a.pack.Raw[t.packOffset:t.packOffset+t.packSize]...)
	}
	return nil
}
