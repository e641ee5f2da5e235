// internal/storage/jsonstore.go
//
// 提供 JSON 快照的讀寫。
// 寫入採「原子寫入」：先寫 path+".tmp"，成功後再以 rename 取代正式檔，
// 寫入中斷時原檔不會損壞。
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var (
	// ErrNoSnapshot 代表快照檔不存在（首次啟動）。會同時包裝 fs.ErrNotExist。
	ErrNoSnapshot = errors.New("no snapshot")

	// ErrUnsupportedVersion 代表快照版本不是本程式能讀的版本。
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// LoadSnapshot 讀取並解析 path 的 JSON 快照。
// 檔案不存在回傳 ErrNoSnapshot；格式錯誤回傳包裝過的解碼錯誤。
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snap, fmt.Errorf("load snapshot %s: %w: %w", path, ErrNoSnapshot, err)
		}
		return snap, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot %s: decode: %w", path, err)
	}
	if snap.Meta.Version != CurrentVersion {
		return Snapshot{}, fmt.Errorf("load snapshot %s: %w %d", path, ErrUnsupportedVersion, snap.Meta.Version)
	}
	return snap, nil
}

// SaveSnapshot 將快照以縮排 JSON 原子寫入 path。
// 會覆寫 Meta.Storage、Meta.Version 與 Meta.Timestamp。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Storage = StorageKind
	snap.Meta.Version = CurrentVersion
	snap.Meta.Timestamp = time.Now()
	if snap.Accounts == nil {
		snap.Accounts = []PersistAccount{}
	}
	tmp := path + ".tmp"

	// 快照含 PIN，僅限擁有者讀寫
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("save snapshot %s: encode: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}
