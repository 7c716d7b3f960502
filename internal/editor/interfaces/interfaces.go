// Package interfaces は依存性注入用のインターフェースを定義します。
package interfaces

import (
	"context"

	"github.com/akisawa/go-nus3bank/internal/editor/models"
	"github.com/akisawa/go-nus3bank/pkg/nus3bank"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	// FileExists はファイルが存在するかチェック
	FileExists(filename string) bool
	// ReadFile はファイルを読み込む
	ReadFile(filename string) ([]byte, error)
	// WriteFile はファイルに書き込む
	WriteFile(filename string, data []byte, perm uint32) error
	// WriteFileAtomic は一時ファイル経由でアトミックに書き込む
	WriteFileAtomic(filename string, data []byte, perm uint32) error
	// MkdirAll はディレクトリを作成
	MkdirAll(path string, perm uint32) error
	// ReadDir はディレクトリの内容を読み込む
	ReadDir(dirname string) ([]DirEntry, error)
	// Getwd は現在の作業ディレクトリを取得
	Getwd() (string, error)
	// Executable は実行ファイルのパスを取得
	Executable() (string, error)
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	// Name はエントリ名を返す
	Name() string
	// IsDir はディレクトリかどうかを返す
	IsDir() bool
}

// Logger はログ出力のインターフェース
type Logger interface {
	// Printf はフォーマットされたログを出力
	Printf(format string, v ...interface{})
}

// BankService はバンクの読み書きと編集操作のインターフェース
type BankService interface {
	// Load はバンクファイルを読み込んで解析する
	Load(path string) (*nus3bank.Archive, error)
	// Save はバンクを直列化してアトミックに保存する
	Save(archive *nus3bank.Archive, path string) error
	// Summary はバンク全体の概要を返す
	Summary(archive *nus3bank.Archive, path string) models.BankSummary
	// TrackViews はトラック一覧表示用の情報を返す
	TrackViews(archive *nus3bank.Archive) []models.TrackView
	// SectionViews はセクション一覧表示用の情報を返す
	SectionViews(archive *nus3bank.Archive) []models.SectionView
	// ExtractTracks はトラックのペイロードをファイルに書き出す
	ExtractTracks(ctx context.Context, archive *nus3bank.Archive, selectors []string, outDir string, dryRun bool) ([]models.ExtractedTrack, error)
	// ReplaceTrack は指定トラックのペイロードを差し替える
	ReplaceTrack(archive *nus3bank.Archive, hexID string, payload []byte) error
	// AddTrack は新しいトラックを追加する
	AddTrack(archive *nus3bank.Archive, name string, payload []byte) (uint32, error)
	// RemoveTrack は指定トラックを削除する
	RemoveTrack(archive *nus3bank.Archive, hexID string) error
}
