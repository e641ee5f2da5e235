// internal/bank/bank.go

// Bank 為聚合根 (Aggregate Root)：擁有帳戶命名空間、產生帳戶 ID、以 PIN 驗證登入。
// Bank 不介入轉帳，只負責解析帳戶；轉帳由 Account.TransferTo 完成。
// 本型別沒有任何鎖：設計上為單一 goroutine 使用。
package bank

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"pinbank/internal/storage"
)

// maxIDAttempts 為產生 ID 時遇到碰撞的最大重試次數。
const maxIDAttempts = 32

type Bank struct {
	accts map[string]*Account
	ids   IDGenerator
	pins  PinVerifier
	now   func() time.Time

	// strict 開啟時 CreateAccount 會套用名稱與 PIN 規則。
	strict bool
}

// NewBank 建立空白銀行。ids 或 pins 為 nil 時分別使用 ShortIDs 與 PlainPins。
func NewBank(ids IDGenerator, pins PinVerifier) *Bank {
	if ids == nil {
		ids = ShortIDs{Length: DefaultIDLength}
	}
	if pins == nil {
		pins = PlainPins{}
	}
	return &Bank{
		accts: make(map[string]*Account),
		ids:   ids,
		pins:  pins,
		now:   time.Now,
	}
}

// RequireStrongCredentials 開關建立帳戶時的憑證規則：
// 名稱去除空白後至少 2 個字元、PIN 必須是 4 位數字。
func (b *Bank) RequireStrongCredentials(on bool) {
	b.strict = on
}

// CreateAccount 以新產生的唯一 ID 建立帳戶，初始餘額 0，並寫入一筆建立紀錄。
// 預設不檢查 owner 與 pin 內容（允許空字串）。
func (b *Bank) CreateAccount(owner, pin string) (*Account, error) {
	if b.strict {
		if err := checkCredentials(owner, pin); err != nil {
			return nil, err
		}
	}
	id, err := b.newID()
	if err != nil {
		return nil, err
	}
	sealed, err := b.pins.Seal(pin)
	if err != nil {
		return nil, err
	}
	a := &Account{
		id:    id,
		owner: owner,
		pin:   sealed,
		pins:  b.pins,
		now:   b.now,
	}
	a.record("Account created for " + owner)
	b.accts[id] = a
	return a, nil
}

// Login 驗證帳戶 ID 與 PIN；沒有 session 概念，每次呼叫皆重新驗證。
func (b *Bank) Login(id, pin string) (*Account, error) {
	a, ok := b.accts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	if !a.CheckPin(pin) {
		return nil, ErrInvalidPin
	}
	return a, nil
}

// FindAccount 純查詢，不做驗證；找不到時回傳 nil，
// 可直接交給 TransferTo，由其回報 ErrInvalidTarget。
func (b *Bank) FindAccount(id string) *Account {
	return b.accts[id]
}

// Len 回傳帳戶數量。
func (b *Bank) Len() int {
	return len(b.accts)
}

// IDs 回傳排序後的所有帳戶 ID。
func (b *Bank) IDs() []string {
	out := make([]string, 0, len(b.accts))
	for id := range b.accts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (b *Bank) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := b.ids.Next()
		if id == "" {
			continue
		}
		if _, taken := b.accts[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDExhausted, maxIDAttempts)
}

func checkCredentials(owner, pin string) error {
	if utf8.RuneCountInString(strings.TrimSpace(owner)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrWeakCredentials)
	}
	if len(pin) != 4 || strings.Trim(pin, "0123456789") != "" {
		return fmt.Errorf("%w: PIN must be 4 digits", ErrWeakCredentials)
	}
	return nil
}

// Snapshot 匯出銀行狀態為可持久化的 storage.Snapshot（帳戶依 ID 排序）。
func (b *Bank) Snapshot() storage.Snapshot {
	s := storage.Snapshot{
		Meta: storage.Meta{
			Storage: storage.StorageKind,
			Version: storage.CurrentVersion,
		},
		Accounts: make([]storage.PersistAccount, 0, len(b.accts)),
	}
	for _, id := range b.IDs() {
		a := b.accts[id]
		s.Accounts = append(s.Accounts, storage.PersistAccount{
			ID:        a.id,
			Owner:     a.owner,
			Pin:       a.pin,
			PinScheme: a.pins.Scheme(),
			Balance:   a.balance,
			History:   a.History(),
		})
	}
	return s
}

// Restore 由快照重建帳戶表。快照內容有誤時回傳錯誤，且不改變目前狀態。
func (b *Bank) Restore(s storage.Snapshot) error {
	accts := make(map[string]*Account, len(s.Accounts))
	for i, pa := range s.Accounts {
		if pa.ID == "" {
			return fmt.Errorf("restore: account #%d has empty id", i)
		}
		if _, dup := accts[pa.ID]; dup {
			return fmt.Errorf("restore: duplicate account id %s", pa.ID)
		}
		if pa.Balance < 0 {
			return fmt.Errorf("restore: account %s has negative balance %d", pa.ID, pa.Balance)
		}
		pins, err := VerifierFor(pa.PinScheme)
		if err != nil {
			return fmt.Errorf("restore: account %s: %w", pa.ID, err)
		}
		history := make([]string, len(pa.History))
		copy(history, pa.History)
		accts[pa.ID] = &Account{
			id:      pa.ID,
			owner:   pa.Owner,
			pin:     pa.Pin,
			pins:    pins,
			balance: pa.Balance,
			history: history,
			now:     b.now,
		}
	}
	b.accts = accts
	return nil
}
