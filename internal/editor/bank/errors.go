package bank

import "errors"

var (
	// ErrInvalidTrackID はトラック識別子の形式が不正な場合のエラー
	ErrInvalidTrackID = errors.New("トラック識別子の形式が不正です")

	// ErrNoMatchingTrack は指定に一致するトラックがない場合のエラー
	ErrNoMatchingTrack = errors.New("指定に一致するトラックがありません")
)
