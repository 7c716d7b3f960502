// Package models はエディタ内で受け渡すデータ構造を定義します。
package models

// TrackView はトラック一覧表示用の情報です。
type TrackView struct {
	HexID        string // 16進表記の識別子（例: "0x1a"）
	Name         string // トラック名
	Size         uint32 // ペイロードのバイト数
	Format       string // 波形ヘッダから得た概要（WAV以外は空）
	Unrecognized bool   // メタデータを解釈できなかったトラックか
}

// BankSummary はバンク全体の概要情報です。
type BankSummary struct {
	Path       string // 入力ファイルのパス
	Name       string // バンク名
	BankID     uint32 // バンク識別子
	Project    string // プロジェクト名（PROPセクション由来）
	Timestamp  string // タイムスタンプ（PROPセクション由来）
	TrackCount int    // トラック数
	TotalSize  uint32 // コンテナ全体のバイト数
}

// SectionView はセクション一覧表示用の情報です。
type SectionView struct {
	Tag  string // 4文字のセクションタグ
	Size uint32 // ペイロードのバイト数
}

// ExtractedTrack は抽出済みトラック1件の書き出し結果です。
type ExtractedTrack struct {
	HexID    string // 対象トラックの識別子
	FileName string // 書き出したファイル名
	Size     uint32 // 書き出したバイト数
}
