// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 呼叫端以 errors.Is 判斷錯誤種類；CLI 層顯示訊息後繼續選單迴圈。

package bank

import "errors"

var (
	// ErrInvalidAmount 代表金額非法（<=0、無法解析或會造成溢位）。
	ErrInvalidAmount = errors.New("amount must be a positive whole number")

	// ErrInsufficientFunds 代表提款或轉帳金額超過來源帳戶餘額。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidTarget 代表轉帳目標帳戶不存在。
	ErrInvalidTarget = errors.New("target account not found")

	// ErrAccountNotFound 代表登入時指定的帳戶 ID 不存在。
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidPin 代表登入 PIN 不符。
	ErrInvalidPin = errors.New("invalid PIN")

	// ErrIDExhausted 代表多次重試後仍無法產生未被使用的帳戶 ID。
	ErrIDExhausted = errors.New("could not allocate a unique account id")

	// ErrWeakCredentials 代表啟用憑證規則時，名稱或 PIN 不符規定。
	ErrWeakCredentials = errors.New("weak credentials")
)
