// Package bank はバンクファイルの読み書きと編集操作を行います
package bank

import (
	"context"
	"fmt"
	"path/filepath"

	editorerrors "github.com/akisawa/go-nus3bank/internal/editor/errors"
	"github.com/akisawa/go-nus3bank/internal/editor/fileutil"
	"github.com/akisawa/go-nus3bank/internal/editor/interfaces"
	"github.com/akisawa/go-nus3bank/internal/editor/models"
	"github.com/akisawa/go-nus3bank/pkg/nus3bank"
	"github.com/akisawa/go-nus3bank/pkg/wave"
)

// Service はファイルシステムとバンク解析層をつなぐサービスです
type Service struct {
	fs     interfaces.FileSystem
	logger interfaces.Logger
}

// NewService は新しいServiceを作成します
func NewService(fs interfaces.FileSystem, logger interfaces.Logger) *Service {
	return &Service{
		fs:     fs,
		logger: logger,
	}
}

// Load はバンクファイルを読み込んで解析します
func (s *Service) Load(path string) (*nus3bank.Archive, error) {
	if !s.fs.FileExists(path) {
		return nil, editorerrors.NewBankError("読み込み", path, editorerrors.ErrFileNotFound)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, editorerrors.NewBankError("読み込み", path, err)
	}

	archive, err := nus3bank.Parse(data)
	if err != nil {
		return nil, editorerrors.NewBankError("解析", path, fmt.Errorf("%w: %w", editorerrors.ErrInvalidBank, err))
	}

	s.logger.Printf("バンク %s を読み込みました（%dトラック, %dバイト）\n", path, len(archive.Tracks()), len(data))
	return archive, nil
}

// Save はバンクを直列化してアトミックに保存します
func (s *Service) Save(archive *nus3bank.Archive, path string) error {
	data, err := archive.Serialize()
	if err != nil {
		return editorerrors.NewBankError("直列化", path, err)
	}

	if err := s.fs.WriteFileAtomic(path, data, 0644); err != nil {
		return editorerrors.NewBankError("保存", path, fmt.Errorf("%w: %w", editorerrors.ErrSaveFailure, err))
	}

	s.logger.Printf("バンクを %s に保存しました（%dバイト）\n", path, len(data))
	return nil
}

// Summary はバンク全体の概要を返します
func (s *Service) Summary(archive *nus3bank.Archive, path string) models.BankSummary {
	summary := models.BankSummary{
		Path:       path,
		TrackCount: len(archive.Tracks()),
		TotalSize:  archive.TotalSize(),
	}
	if binf := archive.BankInfo(); binf != nil {
		summary.Name = binf.Name
		summary.BankID = binf.ID
	}
	if prop := archive.Prop(); prop != nil {
		summary.Project = prop.Project
		summary.Timestamp = prop.Timestamp
	}
	return summary
}

// TrackViews はトラック一覧表示用の情報を返します
func (s *Service) TrackViews(archive *nus3bank.Archive) []models.TrackView {
	tracks := archive.Tracks()
	views := make([]models.TrackView, 0, len(tracks))
	for _, t := range tracks {
		view := models.TrackView{
			HexID:        t.HexID,
			Name:         t.Name,
			Size:         t.Size,
			Unrecognized: t.Unrecognized,
		}
		// WAVペイロードならヘッダの概要も表示する
		if payload, err := archive.Payload(t.ID); err == nil {
			if info, err := wave.Inspect(payload); err == nil {
				view.Format = info.Summary()
			}
		}
		views = append(views, view)
	}
	return views
}

// SectionViews はセクション一覧表示用の情報を返します
func (s *Service) SectionViews(archive *nus3bank.Archive) []models.SectionView {
	sections := archive.Sections()
	views := make([]models.SectionView, 0, len(sections))
	for _, sec := range sections {
		views = append(views, models.SectionView{
			Tag:  sec.Tag,
			Size: sec.Size,
		})
	}
	return views
}

// ExtractTracks はトラックのペイロードをファイルに書き出します。
// selectorsが空の場合は全トラックが対象です。
func (s *Service) ExtractTracks(ctx context.Context, archive *nus3bank.Archive, selectors []string, outDir string, dryRun bool) ([]models.ExtractedTrack, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !dryRun {
		if err := s.fs.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: %w", fileutil.ErrCreateDirectory, err)
		}
	}

	matched := make([]bool, len(selectors))

	var results []models.ExtractedTrack
	for i, t := range archive.Tracks() {
		// コンテキストのキャンセルチェック
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		if len(selectors) > 0 && !matchSelectors(t, selectors, matched) {
			continue
		}

		if t.Unrecognized {
			s.logger.Printf("トラック %s はメタデータを解釈できないため抽出をスキップします\n", t.HexID)
			continue
		}

		payload, err := archive.Payload(t.ID)
		if err != nil {
			return results, editorerrors.NewTrackError(t.HexID, err)
		}

		name := t.Name
		if name == "" {
			name = t.HexID
		}
		fileName := fileutil.TrackFileName(i, name, DetectExtension(payload))

		if !dryRun {
			outPath := filepath.Join(outDir, fileName)
			if err := s.fs.WriteFile(outPath, payload, 0644); err != nil {
				return results, editorerrors.NewTrackError(t.HexID, err)
			}
		}

		s.logger.Printf("抽出: %s（%dバイト）\n", fileName, len(payload))
		results = append(results, models.ExtractedTrack{
			HexID:    t.HexID,
			FileName: fileName,
			Size:     uint32(len(payload)),
		})
	}

	// 一致しなかった指定があればエラー
	for i, sel := range selectors {
		if !matched[i] {
			return results, fmt.Errorf("%w: %s", ErrNoMatchingTrack, sel)
		}
	}

	return results, nil
}

// ReplaceTrack は指定トラックのペイロードを差し替えます
func (s *Service) ReplaceTrack(archive *nus3bank.Archive, hexID string, payload []byte) error {
	id, err := nus3bank.ParseHexID(hexID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTrackID, hexID)
	}

	s.warnNonPCMFormat(hexID, payload)

	if err := archive.ReplaceTrackPayload(id, payload); err != nil {
		return editorerrors.NewTrackError(hexID, err)
	}

	s.logger.Printf("トラック %s のペイロードを差し替えました（%dバイト）\n", hexID, len(payload))
	return nil
}

// AddTrack は新しいトラックを追加します
func (s *Service) AddTrack(archive *nus3bank.Archive, name string, payload []byte) (uint32, error) {
	s.warnNonPCMFormat(name, payload)

	id, err := archive.AddTrack(name, payload)
	if err != nil {
		return 0, err
	}

	s.logger.Printf("トラック %s を追加しました（id: %s, %dバイト）\n", name, nus3bank.HexID(id), len(payload))
	return id, nil
}

// RemoveTrack は指定トラックを削除します
func (s *Service) RemoveTrack(archive *nus3bank.Archive, hexID string) error {
	id, err := nus3bank.ParseHexID(hexID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTrackID, hexID)
	}

	if !archive.RemoveTrack(id) {
		return editorerrors.NewTrackError(hexID, editorerrors.ErrTrackNotFound)
	}

	s.logger.Printf("トラック %s を削除しました\n", hexID)
	return nil
}

// matchSelectors はトラックがいずれかの指定に一致するか調べ、一致した指定に印を付けます
func matchSelectors(t nus3bank.TrackInfo, selectors []string, matched []bool) bool {
	found := false
	for i, sel := range selectors {
		if trackMatches(t, sel) {
			matched[i] = true
			found = true
		}
	}
	return found
}

// trackMatches はトラック名または識別子が指定に一致するか調べます
func trackMatches(t nus3bank.TrackInfo, sel string) bool {
	if sel == t.Name && t.Name != "" {
		return true
	}
	if id, err := nus3bank.ParseHexID(sel); err == nil && id == t.ID {
		return true
	}
	return false
}

// warnNonPCMFormat はWAVペイロードが16bit PCM以外の場合に注意を促します
func (s *Service) warnNonPCMFormat(label string, payload []byte) {
	info, err := wave.Inspect(payload)
	if err != nil {
		return
	}
	if !info.PCM || info.BitDepth != 16 {
		s.logger.Printf("注意: %s のペイロードは16bit PCMではありません（%s）\n", label, info.Summary())
	}
}
