// Package wave はRIFF波形データのヘッダ情報を読み取るためのパッケージです。
//
// バンクから取り出したペイロードや差し替え用に与えられたファイルが
// どのような波形データなのかを一覧表示に添えるための、読み取り専用の
// 軽い検査だけを提供します。波形データの変換や正規化は行いません。
package wave

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-audio/wav"
)

// ErrNotWave は入力がRIFF波形データではないことを表します。
var ErrNotWave = errors.New("wave: input is not a RIFF wave stream")

// PCMフォーマットを示すフォーマットタグ
const formatPCM = 1

// Info は波形データのヘッダから読み取った情報です。
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration

	// PCM は無圧縮のリニアPCMかどうかを示します
	PCM bool
}

// Inspect はバイト列をRIFF波形データとして検査し、ヘッダ情報を返します。
// RIFF波形データでない入力には ErrNotWave を返します。
func Inspect(data []byte) (*Info, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, ErrNotWave
	}

	// データチャンクが空のヘッダだけの入力では長さは0になる
	dur, err := d.Duration()
	if err != nil {
		dur = 0
	}

	return &Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Duration:   dur,
		PCM:        d.WavAudioFormat == formatPCM,
	}, nil
}

// Summary は一覧表示に使える短い書式の文字列を返します。
// 例: "48000Hz 2ch 16bit 1.5s"
func (i *Info) Summary() string {
	s := fmt.Sprintf("%dHz %dch %dbit", i.SampleRate, i.Channels, i.BitDepth)
	if i.Duration > 0 {
		s += fmt.Sprintf(" %.1fs", i.Duration.Seconds())
	}
	return s
}
