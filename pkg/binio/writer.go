package binio

import (
	"encoding/binary"
	"math"
)

// Writer はリトルエンディアンでバイト列を組み立てるバッファです。
// メモリ上のバッファへの追記のみを行うため、書き込みメソッドは失敗しません。
// Reader と対になっており、書き込んだ値を読み戻すと常に同じ値が得られます。
type Writer struct {
	buf []byte
}

// NewWriter は新しい空の Writer を作成します。
func NewWriter() *Writer {
	return &Writer{}
}

// Len は書き込み済みのバイト数を返します。
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes は組み立てたバイト列を返します。返されるスライスは内部バッファを共有します。
func (w *Writer) Bytes() []byte {
	return w.buf
}

// U8 は符号なし8ビット整数を書き込みます。
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// U16 はリトルエンディアンで符号なし16ビット整数を書き込みます。
func (w *Writer) U16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// U32 はリトルエンディアンで符号なし32ビット整数を書き込みます。
func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// F32 はリトルエンディアンで32ビット浮動小数点数を書き込みます。
func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// Raw はバイト列をそのまま書き込みます。
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Pad はバッファ長が次の4バイト境界に達するまでゼロバイトを書き込みます。
func (w *Writer) Pad() {
	for i := PaddingFor(len(w.buf)); i > 0; i-- {
		w.buf = append(w.buf, 0)
	}
}

// PatchU32 は書き込み済みバッファの offset 位置にある32ビット値を上書きします。
// コンテナ全体のサイズのように、後から確定する値の書き戻しに使います。
func (w *Writer) PatchU32(offset int, v uint32) error {
	if offset < 0 || offset+4 > len(w.buf) {
		return &OutOfBoundsError{Offset: offset, Want: 4, Have: len(w.buf) - offset}
	}
	binary.LittleEndian.PutUint32(w.buf[offset:], v)
	return nil
}
