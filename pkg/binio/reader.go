package binio

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"
)

// Reader はバイトスライス上を移動しながらリトルエンディアンで値を読み込むカーソルです。
// 全ての読み込みは境界チェック付きで、残りバイト数が不足する場合は
// *OutOfBoundsError を返します。読み込みに失敗した場合、位置は変化しません。
type Reader struct {
	data []byte
	pos  int
}

// NewReader は data を先頭から読み込む新しい Reader を作成します。
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos は現在の読み込み位置を返します。
func (r *Reader) Pos() int {
	return r.pos
}

// Len はデータ全体の長さを返します。
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining は残りの読み込み可能バイト数を返します。
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Seek は読み込み位置を pos に移動します。
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return &OutOfBoundsError{Offset: pos, Want: 0, Have: len(r.data)}
	}
	r.pos = pos
	return nil
}

// Skip は n バイトを読み飛ばします。
func (r *Reader) Skip(n int) error {
	if err := r.check(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Align は読み込み位置を次の4バイト境界まで進めます。
// 既に境界上にある場合は何もしません。
func (r *Reader) Align() error {
	return r.Skip(PaddingFor(r.pos))
}

// U8 は符号なし8ビット整数を読み込みます。
func (r *Reader) U8() (uint8, error) {
	if err := r.check(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// U16 はリトルエンディアンの符号なし16ビット整数を読み込みます。
func (r *Reader) U16() (uint16, error) {
	if err := r.check(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// U32 はリトルエンディアンの符号なし32ビット整数を読み込みます。
func (r *Reader) U32() (uint32, error) {
	if err := r.check(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// F32 はリトルエンディアンの32ビット浮動小数点数を読み込みます。
func (r *Reader) F32() (float32, error) {
	bits, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// Bytes は n バイトを読み込み、コピーを返します。
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.check(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:])
	r.pos += n
	return buf, nil
}

// Peek は位置を進めずに次の n バイトのコピーを返します。
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.check(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:])
	return buf, nil
}

// AssertMagic は次のバイト列が expected と一致することを確認して読み進めます。
// 一致しない場合は *MagicError を返し、位置は変化しません。
func (r *Reader) AssertMagic(expected []byte) error {
	if err := r.check(len(expected)); err != nil {
		return err
	}
	found := r.data[r.pos : r.pos+len(expected)]
	if !bytes.Equal(found, expected) {
		return &MagicError{
			Offset:   r.pos,
			Expected: append([]byte(nil), expected...),
			Found:    append([]byte(nil), found...),
		}
	}
	r.pos += len(expected)
	return nil
}

// ReadPaddedString は n バイトを読み込み、最初のゼロバイトで打ち切った文字列を返します。
// 不正なUTF-8バイトは置換文字に変換され、読み込み自体が失敗することはありません。
func (r *Reader) ReadPaddedString(n int) (string, error) {
	buf, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	if utf8.Valid(buf) {
		return string(buf), nil
	}
	return strings.ToValidUTF8(string(buf), "�"), nil
}

func (r *Reader) check(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return &OutOfBoundsError{Offset: r.pos, Want: n, Have: len(r.data) - r.pos}
	}
	return nil
}
