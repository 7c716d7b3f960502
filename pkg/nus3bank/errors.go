package nus3bank

import "fmt"

// UnsupportedContainerError はBANKTOC以外のコンテナ形式を表します。
// 歴史的な別形式のコンテナは解析を試みずに即座に失敗します。
type UnsupportedContainerError struct {
	Found []byte // マーカー位置で実際に見つかった8バイト
}

// Error はエラーメッセージを返します
func (e *UnsupportedContainerError) Error() string {
	return fmt.Sprintf("unsupported container variant %q: only BANKTOC is supported", e.Found)
}

// UnsupportedCompressionError は圧縮済み入力を表します。
// zlibストリームの既知のプレフィックスを検出した場合に返されます。
type UnsupportedCompressionError struct {
	Prefix []byte
}

// Error はエラーメッセージを返します
func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("compressed input is not supported (stream prefix % 02x)", e.Prefix)
}

// FormatError はコンテナ構造の不整合を表します。
// サイズフィールドと目次の不一致、必須セクションの欠落などが該当します。
type FormatError struct {
	Offset int
	Reason string
}

// Error はエラーメッセージを返します
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format at offset 0x%x: %s", e.Offset, e.Reason)
}

// TrackOutOfBoundsError はTONEセクションが宣言するペイロード範囲が
// PACKセクションの実際の範囲を超えていることを表します。
type TrackOutOfBoundsError struct {
	HexID   string
	Offset  uint32
	Size    uint32
	PackLen uint32
}

// Error はエラーメッセージを返します
func (e *TrackOutOfBoundsError) Error() string {
	return fmt.Sprintf("track %s payload range [%d, %d) exceeds PACK length %d",
		e.HexID, e.Offset, e.Offset+e.Size, e.PackLen)
}

// TrackNotFoundError は存在しないトラック識別子への操作を表します。
type TrackNotFoundError struct {
	HexID string
}

// Error はエラーメッセージを返します
func (e *TrackNotFoundError) Error() string {
	return fmt.Sprintf("track %s not found", e.HexID)
}

// InvalidInputError は操作の引数が不正であることを表します。
type InvalidInputError struct {
	Reason string
}

// Error はエラーメッセージを返します
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// UnrepresentableMutationError は、メタデータブロックの形状が未知の
// トラックに対する変更をシリアライズできないことを表します。
// 生バイト列のまま保持されたブロックには新しいオフセットやサイズを
// 書き込めないため、変更は保存前に拒否されます。
type UnrepresentableMutationError struct {
	HexID  string
	Reason string
}

// Error はエラーメッセージを返します
func (e *UnrepresentableMutationError) Error() string {
	return fmt.Sprintf("unrepresentable mutation on track %s: %s", e.HexID, e.Reason)
}
