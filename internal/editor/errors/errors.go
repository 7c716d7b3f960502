// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound はファイルが見つからない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrInvalidBank はバンクファイルが無効な場合のエラー
	ErrInvalidBank = errors.New("無効なバンクファイルです")

	// ErrTrackNotFound はトラックが見つからない場合のエラー
	ErrTrackNotFound = errors.New("トラックが見つかりません")

	// ErrSaveFailure は保存に失敗した場合のエラー
	ErrSaveFailure = errors.New("バンクファイルの保存に失敗しました")
)

// BankError はバンク操作関連のエラー
type BankError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *BankError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *BankError) Unwrap() error {
	return e.Err
}

// NewBankError は新しいBankErrorを作成します
func NewBankError(op, path string, err error) *BankError {
	return &BankError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// TrackError はトラック操作関連のエラー
type TrackError struct {
	HexID string // トラックの識別子
	Err   error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *TrackError) Error() string {
	return fmt.Sprintf("トラック %s: %v", e.HexID, e.Err)
}

// Unwrap は元のエラーを返します
func (e *TrackError) Unwrap() error {
	return e.Err
}

// NewTrackError は新しいTrackErrorを作成します
func NewTrackError(hexID string, err error) *TrackError {
	return &TrackError{
		HexID: hexID,
		Err:   err,
	}
}
