package nus3bank

// editKind は保留中の編集の種類を表します
type editKind int

const (
	editAdd editKind = iota
	editRemove
	editReplace
)

// pendingEdit は前回のシリアライズ以降に加えられた編集の記録です。
// シリアライズ時にまとめて検証され、成功した場合のみ破棄されます。
type pendingEdit struct {
	kind editKind
	id   uint32
}

// Archive は解析済みのNUS3BANKコンテナを表します。
// セクションを目次の順に保持し、トラックへの追加・削除・差し替えを
// 適用した上で同じ順序のコンテナとして再構築できます。
// 複数ゴルーチンから同時に扱う場合は呼び出し側で直列化してください。
type Archive struct {
	sections []Section

	prop *Prop
	binf *BankInfo
	tone *Tone
	pack *Pack

	// 識別子の払い出し位置。削除済みの識別子を再利用しないために
	// 単調増加で管理します。
	nextID uint32

	pending []pendingEdit
}

// Tracks はトラック一覧を返します。順序はTONEセクション内の並びと同じです。
func (a *Archive) Tracks() []TrackInfo {
	if a.tone == nil {
		return nil
	}
	infos := make([]TrackInfo, 0, len(a.tone.tracks))
	for _, t := range a.tone.tracks {
		infos = append(infos, trackInfo(t))
	}
	return infos
}

// Track は指定した識別子のトラックの現在の状態を返します。
func (a *Archive) Track(id uint32) (TrackInfo, error) {
	t := a.findTrack(id)
	if t == nil {
		return TrackInfo{}, &TrackNotFoundError{HexID: HexID(id)}
	}
	return trackInfo(t), nil
}

// TrackByName は表示名が一致する最初のトラックを返します。
// 見つからない場合は二つ目の戻り値がfalseになります。
func (a *Archive) TrackByName(name string) (TrackInfo, bool) {
	if a.tone == nil {
		return TrackInfo{}, false
	}
	for _, t := range a.tone.tracks {
		if t.displayName() == name {
			return trackInfo(t), true
		}
	}
	return TrackInfo{}, false
}

// Payload は指定したトラックのペイロードのコピーを返します。
func (a *Archive) Payload(id uint32) ([]byte, error) {
	t := a.findTrack(id)
	if t == nil {
		return nil, &TrackNotFoundError{HexID: HexID(id)}
	}
	return append([]byte(nil), t.payload...), nil
}

// AddTrack は新しいトラックを末尾に追加し、割り当てた識別子を返します。
// 識別子は既存の最大値より大きい値が払い出され、削除済みの値が
// 再利用されることはありません。ペイロード内での位置は次回の
// シリアライズで決まるため、それまでは意味を持ちません。
func (a *Archive) AddTrack(name string, payload []byte) (uint32, error) {
	nameRaw, err := encodeNameBytes(name)
	if err != nil {
		return 0, err
	}
	if len(payload) == 0 {
		return 0, &InvalidInputError{Reason: "payload must not be empty"}
	}
	if a.tone == nil || a.pack == nil {
		return 0, &InvalidInputError{Reason: "archive has no TONE and PACK sections"}
	}
	id := a.allocID()
	t := newTrack(id, nameRaw, append([]byte(nil), payload...))
	a.tone.tracks = append(a.tone.tracks, t)
	a.pending = append(a.pending, pendingEdit{kind: editAdd, id: id})
	return id, nil
}

// RemoveTrack は指定したトラックを取り除き、取り除いたかどうかを返します。
// 他のトラックのペイロード位置は次回のシリアライズで再計算されます。
func (a *Archive) RemoveTrack(id uint32) bool {
	i := a.trackIndex(id)
	if i < 0 {
		return false
	}
	a.tone.tracks = append(a.tone.tracks[:i], a.tone.tracks[i+1:]...)
	a.pending = append(a.pending, pendingEdit{kind: editRemove, id: id})
	return true
}

// ReplaceTrackPayload は指定したトラックのペイロードを差し替えます。
// メタデータブロックの形状が未知のトラックに対しても差し替え自体は
// 成功しますが、新しいサイズをメタデータへ反映できないため、
// その後のシリアライズはUnrepresentableMutationErrorで失敗します。
func (a *Archive) ReplaceTrackPayload(id uint32, payload []byte) error {
	if len(payload) == 0 {
		return &InvalidInputError{Reason: "payload must not be empty"}
	}
	t := a.findTrack(id)
	if t == nil {
		return &TrackNotFoundError{HexID: HexID(id)}
	}
	t.payload = append([]byte(nil), payload...)
	if !t.unrecognized {
		t.packSize = uint32(len(payload))
	}
	a.pending = append(a.pending, pendingEdit{kind: editReplace, id: id})
	return nil
}

// BankInfo はBINFセクションを返します。
func (a *Archive) BankInfo() *BankInfo {
	return a.binf
}

// Prop はPROPセクションを返します。存在しない場合はnilです。
func (a *Archive) Prop() *Prop {
	return a.prop
}

// Sections はセクション一覧を目次の順で返します。
// サイズは現在のトラック構成で再構築した場合の値です。
func (a *Archive) Sections() []SectionInfo {
	infos := make([]SectionInfo, 0, len(a.sections))
	for _, s := range a.sections {
		infos = append(infos, SectionInfo{Tag: s.Tag(), Size: uint32(a.sectionSize(s))})
	}
	return infos
}

// TotalSize はサイズフィールド以降の宣言サイズを返します。
// シリアライズ結果の長さはこの値に先頭8バイトを加えたものになります。
func (a *Archive) TotalSize() uint32 {
	total := 16 + 8*len(a.sections)
	for _, s := range a.sections {
		total += 8 + a.sectionSize(s)
	}
	return uint32(total)
}

// Clone はアーカイブの深いコピーを返します。
func (a *Archive) Clone() *Archive {
	c := &Archive{nextID: a.nextID}
	c.pending = append([]pendingEdit(nil), a.pending...)
	for _, s := range a.sections {
		cs := cloneSection(s)
		c.sections = append(c.sections, cs)
		switch sec := cs.(type) {
		case *Prop:
			c.prop = sec
		case *BankInfo:
			c.binf = sec
		case *Tone:
			c.tone = sec
		case *Pack:
			c.pack = sec
		}
	}
	return c
}

// sectionSize はセクションを再構築した場合のペイロード長を返します
func (a *Archive) sectionSize(s Section) int {
	switch sec := s.(type) {
	case *Prop:
		return len(sec.Raw)
	case *BankInfo:
		return len(sec.Raw)
	case *Group:
		return len(sec.Raw)
	case *DataTone:
		return len(sec.Raw)
	case *Tone:
		return toneSize(sec)
	case *Junk:
		return len(sec.Raw)
	case *Pack:
		if a.tone != nil {
			return packSize(a.tone)
		}
		return len(sec.Raw)
	case *Unknown:
		return len(sec.Raw)
	}
	return 0
}

// allocID は新しいトラック識別子を払い出します
func (a *Archive) allocID() uint32 {
	next := uint32(1)
	for _, t := range a.tone.tracks {
		if t.id >= next {
			next = t.id + 1
		}
	}
	if a.nextID > next {
		next = a.nextID
	}
	a.nextID = next + 1
	return next
}

// trackInfo はトラックの現在の状態を閲覧用の形に写します
func trackInfo(t *track) TrackInfo {
	return TrackInfo{
		ID:           t.id,
		HexID:        HexID(t.id),
		Name:         t.displayName(),
		Size:         uint32(len(t.payload)),
		Unrecognized: t.unrecognized,
	}
}

// findTrack は識別子からトラックを探します
func (a *Archive) findTrack(id uint32) *track {
	if i := a.trackIndex(id); i >= 0 {
		return a.tone.tracks[i]
	}
	return nil
}

// trackIndex は識別子からトラックの現在位置を探します
func (a *Archive) trackIndex(id uint32) int {
	if a.tone == nil {
		return -1
	}
	for i, t := range a.tone.tracks {
		if t.id == id {
			return i
		}
	}
	return -1
}

// validatePending は保留中の編集がすべてシリアライズ可能かを検証します。
// 形状が未知のメタデータブロックを持つトラックへの差し替えは
// 新しいサイズを書き込めないため拒否されます。
func (a *Archive) validatePending() error {
	for _, e := range a.pending {
		if e.kind != editReplace {
			continue
		}
		t := a.findTrack(e.id)
		if t == nil || !t.unrecognized {
			continue
		}
		return &UnrepresentableMutationError{
			HexID:  HexID(e.id),
			Reason: "metadata layout is unrecognized and cannot carry the new payload size",
		}
	}
	return nil
}

// cloneSection はセクションの深いコピーを返します
func cloneSection(s Section) Section {
	switch sec := s.(type) {
	case *Prop:
		c := *sec
		c.Raw = append([]byte(nil), sec.Raw...)
		return &c
	case *BankInfo:
		c := *sec
		c.Raw = append([]byte(nil), sec.Raw...)
		return &c
	case *Group:
		return &Group{Raw: append([]byte(nil), sec.Raw...)}
	case *DataTone:
		return &DataTone{Raw: append([]byte(nil), sec.Raw...)}
	case *Tone:
		c := &Tone{tracks: make([]*track, 0, len(sec.tracks))}
		for _, t := range sec.tracks {
			c.tracks = append(c.tracks, t.clone())
		}
		return c
	case *Junk:
		return &Junk{Raw: append([]byte(nil), sec.Raw...)}
	case *Pack:
		return &Pack{Raw: append([]byte(nil), sec.Raw...)}
	case *Unknown:
		return &Unknown{tag: sec.tag, Raw: append([]byte(nil), sec.Raw...)}
	}
	return s
}
