package mocks

import (
	"context"

	"github.com/akisawa/go-nus3bank/internal/editor/models"
	"github.com/akisawa/go-nus3bank/pkg/nus3bank"
)

// MockBankService はテスト用のバンクサービスモック
type MockBankService struct {
	Archive     *nus3bank.Archive
	BankSummary models.BankSummary
	Tracks      []models.TrackView
	Sections    []models.SectionView
	Extracted   []models.ExtractedTrack

	LoadError    error
	SaveError    error
	ExtractError error
	ReplaceError error
	AddError     error
	RemoveError  error

	SavedPaths []string
	ReplacedID string
	AddedName  string
	RemovedID  string
	NextID     uint32
}

// NewMockBankService は新しいMockBankServiceを作成します
func NewMockBankService() *MockBankService {
	return &MockBankService{}
}

// Load は設定されたアーカイブを返します
func (s *MockBankService) Load(path string) (*nus3bank.Archive, error) {
	if s.LoadError != nil {
		return nil, s.LoadError
	}
	return s.Archive, nil
}

// Save は保存先のパスを記録します
func (s *MockBankService) Save(archive *nus3bank.Archive, path string) error {
	if s.SaveError != nil {
		return s.SaveError
	}
	s.SavedPaths = append(s.SavedPaths, path)
	return nil
}

// Summary は設定された概要を返します
func (s *MockBankService) Summary(archive *nus3bank.Archive, path string) models.BankSummary {
	return s.BankSummary
}

// TrackViews は設定されたトラック一覧を返します
func (s *MockBankService) TrackViews(archive *nus3bank.Archive) []models.TrackView {
	return s.Tracks
}

// SectionViews は設定されたセクション一覧を返します
func (s *MockBankService) SectionViews(archive *nus3bank.Archive) []models.SectionView {
	return s.Sections
}

// ExtractTracks は設定された抽出結果を返します
func (s *MockBankService) ExtractTracks(ctx context.Context, archive *nus3bank.Archive, selectors []string, outDir string, dryRun bool) ([]models.ExtractedTrack, error) {
	if s.ExtractError != nil {
		return nil, s.ExtractError
	}
	return s.Extracted, nil
}

// ReplaceTrack は差し替え対象の識別子を記録します
func (s *MockBankService) ReplaceTrack(archive *nus3bank.Archive, hexID string, payload []byte) error {
	if s.ReplaceError != nil {
		return s.ReplaceError
	}
	s.ReplacedID = hexID
	return nil
}

// AddTrack は追加されたトラック名を記録します
func (s *MockBankService) AddTrack(archive *nus3bank.Archive, name string, payload []byte) (uint32, error) {
	if s.AddError != nil {
		return 0, s.AddError
	}
	s.AddedName = name
	return s.NextID, nil
}

// RemoveTrack は削除対象の識別子を記録します
func (s *MockBankService) RemoveTrack(archive *nus3bank.Archive, hexID string) error {
	if s.RemoveError != nil {
		return s.RemoveError
	}
	s.RemovedID = hexID
	return nil
}
