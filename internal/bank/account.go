// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account：持有身分、PIN、餘額與只可追加的交易歷史，並負責單一帳戶的不變量。
//
// Account 與 Bank 皆不支援並行存取；所有操作應由同一個 goroutine 呼叫。

package bank

import (
	"fmt"
	"math"
	"time"
)

// HistoryTimeLayout 為歷史紀錄中時間戳的格式，例如 "Fri Oct 16 09:30:00 CST 2026"。
const HistoryTimeLayout = "Mon Jan 02 15:04:05 MST 2006"

// Account represents one holder's funds.
type Account struct {
	id      string
	owner   string
	pin     string
	pins    PinVerifier
	balance int64
	history []string
	now     func() time.Time
}

func (a *Account) ID() string     { return a.id }
func (a *Account) Owner() string  { return a.owner }
func (a *Account) Balance() int64 { return a.balance }

// History 回傳交易歷史的拷貝；呼叫端修改結果不影響帳戶內部紀錄。
func (a *Account) History() []string {
	out := make([]string, len(a.history))
	copy(out, a.history)
	return out
}

// CheckPin 回傳 input 是否與帳戶 PIN 相符。
func (a *Account) CheckPin(input string) bool {
	return a.pins.Match(a.pin, input)
}

// Deposit 存款：amount 需 > 0。
// 歷史紀錄寫入的是「存款前」餘額。
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit %d", ErrInvalidAmount, amount)
	}
	if a.balance > math.MaxInt64-amount {
		return fmt.Errorf("%w: deposit %d overflows balance", ErrInvalidAmount, amount)
	}
	a.record(fmt.Sprintf("Deposit + %d → Balance = %d", amount, a.balance))
	a.balance += amount
	return nil
}

// Withdraw 提款：amount 需 > 0 且不得超過餘額。
// 歷史紀錄寫入的是「提款前」餘額。
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdraw %d", ErrInvalidAmount, amount)
	}
	if amount > a.balance {
		return fmt.Errorf("%w: withdraw %d from balance %d", ErrInsufficientFunds, amount, a.balance)
	}
	a.record(fmt.Sprintf("Withdraw - %d → Balance = %d", amount, a.balance))
	a.balance -= amount
	return nil
}

// TransferTo 將 amount 由 a 轉入 target。
// 檢查順序：目標存在 → 金額 > 0 → 來源餘額足夠。任一失敗皆不改變兩邊狀態。
// 成功時雙方各追加一筆紀錄，記錄的是各自「異動後」的餘額。
func (a *Account) TransferTo(target *Account, amount int64) error {
	if target == nil {
		return ErrInvalidTarget
	}
	if amount <= 0 {
		return fmt.Errorf("%w: transfer %d", ErrInvalidAmount, amount)
	}
	if amount > a.balance {
		return fmt.Errorf("%w: transfer %d from balance %d", ErrInsufficientFunds, amount, a.balance)
	}
	if target != a && target.balance > math.MaxInt64-amount {
		return fmt.Errorf("%w: transfer %d overflows target balance", ErrInvalidAmount, amount)
	}

	a.balance -= amount
	target.balance += amount

	a.record(fmt.Sprintf("Transfer -%d to %s → Balance = %d", amount, target.id, a.balance))
	target.record(fmt.Sprintf("Transfer +%d from %s → Balance = %d", amount, a.id, target.balance))
	return nil
}

func (a *Account) record(event string) {
	a.history = append(a.history, "["+a.now().Format(HistoryTimeLayout)+"]"+event)
}
