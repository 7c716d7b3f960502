// Package nus3bank はゲーム用オーディオバンク（NUS3BANK形式）を読み書きするためのパッケージです。
//
// NUS3BANKはBANKTOC方式の目次を持つセクション型コンテナで、トラックの
// メタデータを保持するTONEセクションと、オーディオペイロード本体を保持する
// PACKセクションが相互参照しています。このパッケージはトラックの追加・削除・
// 差し替えを行いながら、構造が解明されていないセクションのバイト列を
// 一切変更せずに再構築します。
//
// 基本的な使い方:
//
//	archive, err := nus3bank.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for _, t := range archive.Tracks() {
//	    fmt.Printf("%s %s (%d bytes)\n", t.HexID, t.Name, t.Size)
//	}
//	id, err := archive.AddTrack("se_new", payload)
//	if err != nil {
//	    return err
//	}
//	out, err := archive.Serialize()
package nus3bank

import (
	"fmt"
	"strconv"
	"strings"
)

// コンテナの識別子
const (
	// ContainerMagic はファイル先頭の4バイトマジック
	ContainerMagic = "NUS3"

	// TOCMarker はBANKTOC方式コンテナの識別子（末尾スペース込み8バイト）
	TOCMarker = "BANKTOC "
)

// 既知のセクションタグ（4バイト、GRPは末尾スペース込み）
const (
	TagProp     = "PROP"
	TagBankInfo = "BINF"
	TagGroup    = "GRP "
	TagDataTone = "DTON"
	TagTone     = "TONE"
	TagJunk     = "JUNK"
	TagPack     = "PACK"
)

// セクション数の上限。これを超える目次は壊れたファイルとみなします。
const maxSectionCount = 0x1000

// Section はコンテナ内の1セクションを表します。
// 実装は本パッケージ内の型に限定されます。
type Section interface {
	// Tag はセクションの4バイト識別子を返します
	Tag() string

	section()
}

// TrackInfo はトラック一覧表示用のビューです。
type TrackInfo struct {
	ID    uint32 // 数値識別子
	HexID string // 外部向けの16進表記（例: "0x2"）
	Name  string // 表示名
	Size  uint32 // ペイロードのバイト数

	// Unrecognized はメタデータブロックの形状が未知で、
	// 生バイト列のまま保持されていることを示します
	Unrecognized bool
}

// SectionInfo はセクション一覧表示用のビューです。
type SectionInfo struct {
	Tag  string
	Size uint32
}

// HexID は数値識別子を外部向けの16進表記に変換します。
func HexID(id uint32) string {
	return fmt.Sprintf("0x%x", id)
}

// ParseHexID は "0x2" 形式の16進表記を数値識別子に変換します。
// プレフィックスなしの場合も16進数として解釈します。
func ParseHexID(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if trimmed == "" {
		return 0, &InvalidInputError{Reason: fmt.Sprintf("invalid track id %q", s)}
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, &InvalidInputError{Reason: fmt.Sprintf("invalid track id %q", s)}
	}
	return uint32(v), nil
}
