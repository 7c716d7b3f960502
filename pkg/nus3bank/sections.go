package nus3bank

import (
	"github.com/akisawa/go-nus3bank/pkg/binio"
)

// Prop はPROPセクションを表します。プロジェクト名とタイムスタンプの
// 表示用フィールドを持ちますが、再構築時は保持した生バイト列を
// そのまま書き出します。
type Prop struct {
	Raw []byte

	Project   string
	Timestamp string

	// Extended はタイムスタンプを含む拡張レイアウトかどうかを示します
	Extended bool
}

// Tag はセクションの識別子を返します
func (*Prop) Tag() string { return TagProp }

func (*Prop) section() {}

// BankInfo はBINFセクションを表します。バンクの数値識別子と表示名を持ちます。
// コンテナごとに必ず1つ存在し、欠落している場合は解析が失敗します。
type BankInfo struct {
	Raw []byte

	ID   uint32 // バンク識別子
	Name string // バンクの表示名
}

// Tag はセクションの識別子を返します
func (*BankInfo) Tag() string { return TagBankInfo }

func (*BankInfo) section() {}

// Group はGRPセクションを表します。内部構造は解明されていないため、
// 生バイト列のまま保持して書き戻します。
type Group struct {
	Raw []byte
}

// Tag はセクションの識別子を返します
func (*Group) Tag() string { return TagGroup }

func (*Group) section() {}

// DataTone はDTONセクションを表します。Groupと同様に生バイト列のまま扱います。
type DataTone struct {
	Raw []byte
}

// Tag はセクションの識別子を返します
func (*DataTone) Tag() string { return TagDataTone }

func (*DataTone) section() {}

// Tone はTONEセクションを表します。トラック数、ポインタテーブル、
// トラックごとのメタデータブロックを保持し、書き出し時に全体を再構築します。
type Tone struct {
	tracks []*track
}

// Tag はセクションの識別子を返します
func (*Tone) Tag() string { return TagTone }

func (*Tone) section() {}

// Junk はJUNKセクションを表します。パディング用途とみられるため
// 生バイト列のまま保持します。
type Junk struct {
	Raw []byte
}

// Tag はセクションの識別子を返します
func (*Junk) Tag() string { return TagJunk }

func (*Junk) section() {}

// Pack はPACKセクションを表します。解析時に各トラックへペイロードを
// 切り出した後、書き出し時にトラック一覧から全体を再構築します。
type Pack struct {
	Raw []byte
}

// Tag はセクションの識別子を返します
func (*Pack) Tag() string { return TagPack }

func (*Pack) section() {}

// Unknown は未知のタグを持つセクションを表します。意味づけは一切行わず、
// バイト列をそのまま保持して書き戻します。
type Unknown struct {
	tag string
	Raw []byte
}

// Tag はセクションの識別子を返します
func (u *Unknown) Tag() string { return u.tag }

func (*Unknown) section() {}

// readLengthString は長さプレフィックス付き文字列フィールドを読み込みます。
// 長さバイト（N+1）、Nバイトの本体、終端バイトの順に並び、
// 直後にペイロード先頭からの4バイト境界まで整列します。
func readLengthString(r *binio.Reader) ([]byte, error) {
	n, err := r.U8()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &FormatError{Offset: r.Pos() - 1, Reason: "zero string length"}
	}
	raw, err := r.Bytes(int(n) - 1)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(1); err != nil {
		return nil, err
	}
	if err := r.Align(); err != nil {
		return nil, err
	}
	return raw, nil
}

// decodeBankInfo はBINFセクションのペイロードを解析します。
// base はエラー報告用のファイル先頭からのオフセットです。
func decodeBankInfo(payload []byte, base int) (*BankInfo, error) {
	r := binio.NewReader(payload)
	if err := r.Skip(8); err != nil {
		return nil, &FormatError{Offset: base, Reason: "BINF section too short"}
	}
	nameRaw, err := readLengthString(r)
	if err != nil {
		return nil, &FormatError{Offset: base + r.Pos(), Reason: "BINF name field is malformed"}
	}
	id, err := r.U32()
	if err != nil {
		return nil, &FormatError{Offset: base + r.Pos(), Reason: "BINF bank id is missing"}
	}
	return &BankInfo{
		Raw:  payload,
		ID:   id,
		Name: decodeDisplayName(nameRaw),
	}, nil
}

// decodeProp はPROPセクションのペイロードを解析します。
// 表示用フィールドの解析に失敗しても生バイト列は保持されるため、
// 解析できた範囲のフィールドだけを埋めて返します。
func decodeProp(payload []byte) *Prop {
	p := &Prop{Raw: payload}

	r := binio.NewReader(payload)
	if err := r.Skip(12); err != nil {
		return p
	}
	project, err := readLengthString(r)
	if err != nil {
		return p
	}
	p.Project = decodeDisplayName(project)

	// 最小レイアウトはプロジェクト名で終わる
	if r.Remaining() == 0 {
		return p
	}

	if err := r.Skip(2); err != nil {
		return p
	}
	if err := r.Align(); err != nil {
		return p
	}
	timestamp, err := readLengthString(r)
	if err != nil {
		return p
	}
	p.Timestamp = decodeDisplayName(timestamp)
	p.Extended = true
	return p
}
