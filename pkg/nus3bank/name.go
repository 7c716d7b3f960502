package nus3bank

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// 名前フィールドの長さバイトはN+1で表現されるため、本体は最大254バイト
const maxNameLen = 254

// decodeDisplayName は名前フィールドの生バイト列を表示用文字列へ変換します。
// UTF-8として妥当ならそのまま採用し、そうでなければShift_JISとしての
// 解釈を試みます。どちらでも解釈できない場合は不正なバイトを
// 置換文字に差し替えます。元の生バイト列は呼び出し側が保持するため、
// この変換が書き戻される内容に影響することはありません。
func decodeDisplayName(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}
	return strings.ToValidUTF8(string(raw), "�")
}

// encodeNameBytes はAPI経由で与えられたトラック名を検証し、
// 名前フィールドへ格納する生バイト列を返します
func encodeNameBytes(name string) ([]byte, error) {
	raw := []byte(name)
	if len(raw) == 0 {
		return nil, &InvalidInputError{Reason: "track name must not be empty"}
	}
	if len(raw) > maxNameLen {
		return nil, &InvalidInputError{Reason: "track name exceeds 254 bytes"}
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return nil, &InvalidInputError{Reason: "track name must not contain NUL bytes"}
	}
	return raw, nil
}
