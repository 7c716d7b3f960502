// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akisawa/go-nus3bank/internal/editor/bank"
	"github.com/akisawa/go-nus3bank/internal/editor/config"
	"github.com/akisawa/go-nus3bank/internal/editor/fileutil"
	"github.com/akisawa/go-nus3bank/internal/editor/interfaces"
	"github.com/akisawa/go-nus3bank/pkg/nus3bank"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config  *config.Config
	logger  *config.DebugLogger
	service interfaces.BankService
	fs      interfaces.FileSystem
	out     io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Service    interfaces.BankService
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := config.NewDebugLogger(cfg.DebugMode)

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのバンクサービスを設定
	var service interfaces.BankService
	if opts.Service != nil {
		service = opts.Service
	} else {
		service = bank.NewService(fs, logger)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		service: service,
		fs:      fs,
		out:     os.Stdout,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	mode, err := a.config.Mode()
	if err != nil {
		return err
	}

	bankPath := a.config.BankPath
	if bankPath == "" {
		// バンクが指定されていない場合は自動検出
		bankPath, err = a.findBankFile()
		if err != nil {
			return err
		}
	}

	archive, err := a.service.Load(bankPath)
	if err != nil {
		return err
	}

	switch mode {
	case config.ModeList:
		return a.runList(archive)
	case config.ModeInfo:
		return a.runInfo(archive, bankPath)
	case config.ModeExtract:
		return a.runExtract(ctx, archive)
	case config.ModeReplace:
		return a.runReplace(ctx, archive, bankPath)
	case config.ModeAdd:
		return a.runAdd(ctx, archive, bankPath)
	case config.ModeRemove:
		return a.runRemove(ctx, archive, bankPath)
	}

	return nil
}

// findBankFile はカレントディレクトリなどから.nus3bankファイルを自動検出します
func (a *App) findBankFile() (string, error) {
	finder := fileutil.NewBankFileFinder(a.fs)
	files, err := finder.Find()
	if err != nil {
		return "", err
	}

	if len(files) == 0 {
		return "", ErrNoBankFile
	}

	if len(files) > 1 {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = filepath.Base(f)
		}
		return "", fmt.Errorf("%w: %s", ErrMultipleBankFiles, strings.Join(names, ", "))
	}

	a.logger.Printf("自動検出したバンクファイル %s を使用します\n", filepath.Base(files[0]))
	return files[0], nil
}

// runList はトラック一覧を表示します
func (a *App) runList(archive *nus3bank.Archive) error {
	views := a.service.TrackViews(archive)

	fmt.Fprintln(a.out, "ID\tサイズ\t名前\t形式")
	for _, v := range views {
		name := v.Name
		if v.Unrecognized {
			name = "(解釈不能)"
		}
		fmt.Fprintf(a.out, "%s\t%d\t%s\t%s\n", v.HexID, v.Size, name, v.Format)
	}
	fmt.Fprintf(a.out, "合計 %d トラック\n", len(views))

	return nil
}

// runInfo はバンクの概要とセクション一覧を表示します
func (a *App) runInfo(archive *nus3bank.Archive, bankPath string) error {
	summary := a.service.Summary(archive, bankPath)

	fmt.Fprintf(a.out, "バンク名: %s\n", summary.Name)
	fmt.Fprintf(a.out, "バンクID: %d\n", summary.BankID)
	if summary.Project != "" {
		fmt.Fprintf(a.out, "プロジェクト: %s\n", summary.Project)
	}
	if summary.Timestamp != "" {
		fmt.Fprintf(a.out, "作成日時: %s\n", summary.Timestamp)
	}
	fmt.Fprintf(a.out, "トラック数: %d\n", summary.TrackCount)
	fmt.Fprintf(a.out, "コンテナサイズ: %d バイト\n", summary.TotalSize)

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "セクション\tサイズ")
	for _, sec := range a.service.SectionViews(archive) {
		fmt.Fprintf(a.out, "%s\t%d\n", sec.Tag, sec.Size)
	}

	return nil
}

// runExtract はトラックのペイロードをファイルに書き出します
func (a *App) runExtract(ctx context.Context, archive *nus3bank.Archive) error {
	results, err := a.service.ExtractTracks(ctx, archive, a.config.Selectors(), a.config.OutputDir, a.config.DryRun)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	if a.config.DryRun {
		fmt.Fprintf(a.out, "（ドライラン）%d トラックを抽出します\n", len(results))
	} else {
		fmt.Fprintf(a.out, "%d トラックを %s に抽出しました\n", len(results), a.config.OutputDir)
	}
	for _, r := range results {
		fmt.Fprintf(a.out, "  %s（%d バイト）\n", r.FileName, r.Size)
	}

	return nil
}

// runReplace は既存トラックのペイロードを差し替えて保存します
func (a *App) runReplace(ctx context.Context, archive *nus3bank.Archive, bankPath string) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := a.readPayload()
	if err != nil {
		return err
	}

	if err := a.service.ReplaceTrack(archive, a.config.ReplaceID, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrEditFailed, err)
	}

	return a.saveBank(archive, bankPath, fmt.Sprintf("トラック %s を差し替えました", a.config.ReplaceID))
}

// runAdd は新しいトラックを追加して保存します
func (a *App) runAdd(ctx context.Context, archive *nus3bank.Archive, bankPath string) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := a.readPayload()
	if err != nil {
		return err
	}

	id, err := a.service.AddTrack(archive, a.config.AddName, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEditFailed, err)
	}

	return a.saveBank(archive, bankPath, fmt.Sprintf("トラック %s を追加しました（id: %s）", a.config.AddName, nus3bank.HexID(id)))
}

// runRemove はトラックを削除して保存します
func (a *App) runRemove(ctx context.Context, archive *nus3bank.Archive, bankPath string) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := a.service.RemoveTrack(archive, a.config.RemoveID); err != nil {
		return fmt.Errorf("%w: %w", ErrEditFailed, err)
	}

	return a.saveBank(archive, bankPath, fmt.Sprintf("トラック %s を削除しました", a.config.RemoveID))
}

// readPayload は--inフラグで指定されたペイロードファイルを読み込みます
func (a *App) readPayload() ([]byte, error) {
	if a.config.InputPath == "" {
		return nil, ErrNoInputFile
	}

	data, err := a.fs.ReadFile(a.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, a.config.InputPath, err)
	}

	return data, nil
}

// saveBank は編集結果を保存します。--outの指定がなければ元のファイルに上書きします
func (a *App) saveBank(archive *nus3bank.Archive, bankPath, message string) error {
	outPath := a.config.SavePath
	if outPath == "" {
		outPath = bankPath
	}

	if a.config.DryRun {
		fmt.Fprintf(a.out, "（ドライラン）%s（保存はしません）\n", message)
		return nil
	}

	if err := a.service.Save(archive, outPath); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}

	fmt.Fprintf(a.out, "%s: %s\n", message, outPath)
	return nil
}
