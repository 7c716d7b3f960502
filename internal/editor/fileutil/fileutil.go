// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/akisawa/go-nus3bank/internal/editor/interfaces"
)

var (
	// BankFilePattern は .nus3bank ファイルのパターン
	BankFilePattern = regexp.MustCompile(`(?i)\.nus3bank$`)
)

// FileExists はファイルが存在するか確認します
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// WriteFileAtomic は一時ファイルに書き込んでからリネームすることで、
// 途中で失敗しても元のファイルを壊さずに保存します
func WriteFileAtomic(outputPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)

	// 同じディレクトリに一時ファイルを作成（リネームを同一ファイルシステム内に収めるため）
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateTempFile, err)
	}
	tmpName := tmp.Name()

	// 失敗した場合は一時ファイルを削除
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("%w: %w", ErrWriteFile, err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("%w: %w", ErrSyncFile, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrRenameFile, err)
	}

	return nil
}

// SafeFileName はトラック名をファイル名として安全な形に変換します
func SafeFileName(name string) string {
	if name == "" {
		return "track"
	}
	safe := []rune(name)
	for i, r := range safe {
		switch {
		case r < 0x20:
			safe[i] = '_'
		case r == '/', r == '\\', r == ':', r == '*', r == '?', r == '"', r == '<', r == '>', r == '|':
			safe[i] = '_'
		}
	}
	return string(safe)
}

// TrackFileName は抽出先のファイル名を生成します
func TrackFileName(index int, name, ext string) string {
	return fmt.Sprintf("%03d_%s%s", index, SafeFileName(name), ext)
}

// BankFileFinder は.nus3bankファイルの検索を行います
type BankFileFinder struct {
	fs interfaces.FileSystem
}

// NewBankFileFinder は新しいBankFileFinderを作成します
func NewBankFileFinder(fs interfaces.FileSystem) *BankFileFinder {
	return &BankFileFinder{fs: fs}
}

// Find はカレントディレクトリおよび実行ファイルと同じディレクトリから
// .nus3bankファイルを検索します
func (f *BankFileFinder) Find() ([]string, error) {
	// カレントディレクトリを取得
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}

	// まずカレントディレクトリを検索
	bankFiles, err := f.findInDir(currentDir)
	if err != nil {
		return nil, err
	}

	// カレントディレクトリで見つかった場合は他のディレクトリは検索しない
	if len(bankFiles) > 0 {
		sort.Strings(bankFiles)
		return bankFiles, nil
	}

	// 実行ファイルのパスを取得
	execPath, err := f.fs.Executable()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGetExecutablePath, err)
	}

	// 実行ファイルのディレクトリを検索
	execDirFiles, err := f.findInDir(filepath.Dir(execPath))
	if err != nil {
		return nil, err
	}
	bankFiles = append(bankFiles, execDirFiles...)

	sort.Strings(bankFiles)
	return bankFiles, nil
}

// findInDir は指定されたディレクトリ内の.nus3bankファイルを検索します
func (f *BankFileFinder) findInDir(dir string) ([]string, error) {
	var bankFiles []string

	// ディレクトリ内のファイル一覧を取得
	files, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		if BankFilePattern.MatchString(file.Name()) {
			bankFiles = append(bankFiles, filepath.Join(dir, file.Name()))
		}
	}

	return bankFiles, nil
}
