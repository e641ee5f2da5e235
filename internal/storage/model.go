// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的快照格式。
// 此層只描述資料結構與版本，不涉入商業邏輯；格式獨立於記憶體中的型別。
package storage

import "time"

const (
	// StorageKind 寫入 _meta.storage，標示快照種類。
	StorageKind = "json_snapshot"

	// CurrentVersion 為目前的快照結構版本。
	CurrentVersion = 1
)

// Meta 為快照的中繼資料：儲存種類、版本與寫入時間。
type Meta struct {
	Storage   string    `json:"storage"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// PersistAccount 為帳戶在儲存層的序列化格式。
// Pin 依 PinScheme 解讀：plain 為明文，bcrypt 為雜湊值。
type PersistAccount struct {
	ID        string   `json:"id"`
	Owner     string   `json:"owner"`
	Pin       string   `json:"pin"`
	PinScheme string   `json:"pin_scheme"`
	Balance   int64    `json:"balance"`
	History   []string `json:"history"`
}

// Snapshot 為整個 Bank 的完整快照，啟動時載入一次、結束時保存一次。
type Snapshot struct {
	Meta     Meta             `json:"_meta"`
	Accounts []PersistAccount `json:"accounts"`
}
