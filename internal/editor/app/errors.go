package app

import "errors"

var (
	// ErrNoBankFile はバンクファイルが見つからない場合のエラー
	ErrNoBankFile = errors.New(".nus3bankファイルが見つかりません。--bank フラグで使用するファイルを指定してください")

	// ErrMultipleBankFiles は複数のバンクファイルが見つかった場合のエラー
	ErrMultipleBankFiles = errors.New("複数の.nus3bankファイルが見つかりました。--bank フラグで使用するファイルを指定してください")

	// ErrNoInputFile はペイロードファイルが指定されていない場合のエラー
	ErrNoInputFile = errors.New("--in フラグでペイロードファイルを指定してください")

	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")

	// ErrExtractFailed はトラックの抽出に失敗した場合のエラー
	ErrExtractFailed = errors.New("トラックの抽出に失敗しました")

	// ErrEditFailed はトラックの編集に失敗した場合のエラー
	ErrEditFailed = errors.New("トラックの編集に失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")
)
