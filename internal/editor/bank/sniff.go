package bank

import (
	"github.com/h2non/filetype"
)

// gameAudioExtensions はゲーム用音声コーデックのマジックと拡張子の対応表です。
// filetypeライブラリが知らない形式のみをここで扱います。
var gameAudioExtensions = map[string]string{
	"IDSP": ".idsp",
	"OPUS": ".lopus",
	"BNSF": ".bnsf",
}

// DetectExtension はペイロードの先頭バイトから拡張子を推定します。
// 判別できない場合は ".bin" を返します。
func DetectExtension(payload []byte) string {
	if typ, err := filetype.Match(payload); err == nil && typ != filetype.Unknown {
		return "." + typ.Extension
	}

	if len(payload) >= 4 {
		if ext, ok := gameAudioExtensions[string(payload[:4])]; ok {
			return ext
		}
	}

	return ".bin"
}
