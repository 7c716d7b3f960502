// Package binio はリトルエンディアンのバイナリデータを順次読み書きするためのカーソルを提供します。
//
// NUS3BANKコンテナのような4バイト境界で整列されたフォーマットを対象とし、
// 境界チェック付きの読み込みと、整列パディングの計算を行います。
//
// 基本的な使い方:
//
//	r := binio.NewReader(data)
//	if err := r.AssertMagic([]byte("NUS3")); err != nil {
//	    return err
//	}
//	size, err := r.U32()
package binio

import "fmt"

// PaddingFor は size バイトのフィールドの直後に必要なゼロパディングのバイト数を返します。
// 全ての可変長フィールドは次の4バイト境界まで埋められます。
func PaddingFor(size int) int {
	return (4 - size%4) % 4
}

// OutOfBoundsError は残りバイト数を超える読み込みを表します。
type OutOfBoundsError struct {
	Offset int // 読み込み開始位置
	Want   int // 要求バイト数
	Have   int // 残りバイト数
}

// Error はエラーメッセージを返します
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read out of bounds at offset 0x%x: want %d bytes, have %d", e.Offset, e.Want, e.Have)
}

// MagicError はマジックナンバーの不一致を表します。
type MagicError struct {
	Offset   int
	Expected []byte
	Found    []byte
}

// Error はエラーメッセージを返します
func (e *MagicError) Error() string {
	return fmt.Sprintf("invalid magic number at offset 0x%x: expected %q, found %q", e.Offset, e.Expected, e.Found)
}
