// internal/bank/pin.go
//
// PinVerifier 決定 PIN 如何保存與比對。
// 預設 PlainPins 以明文保存並做完全相等比對（已知安全缺口）；
// BcryptPins 為可選的強化版本，保存 bcrypt 雜湊。

package bank

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Scheme names persisted next to each PIN.
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PinVerifier seals PINs for storage and checks login attempts against them.
type PinVerifier interface {
	Scheme() string
	Seal(pin string) (string, error)
	Match(sealed, input string) bool
}

// PlainPins 保存原始 PIN，比對為完全字串相等（無雜湊、無 timing-safe）。
type PlainPins struct{}

func (PlainPins) Scheme() string                  { return SchemePlain }
func (PlainPins) Seal(pin string) (string, error) { return pin, nil }
func (PlainPins) Match(sealed, input string) bool { return sealed == input }

// BcryptPins 保存 bcrypt 雜湊；Cost 為 0 時使用 bcrypt.DefaultCost。
type BcryptPins struct {
	Cost int
}

func (BcryptPins) Scheme() string { return SchemeBcrypt }

func (p BcryptPins) Seal(pin string) (string, error) {
	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

func (BcryptPins) Match(sealed, input string) bool {
	return bcrypt.CompareHashAndPassword([]byte(sealed), []byte(input)) == nil
}

// VerifierFor 依快照中的 scheme 名稱取回對應的 PinVerifier。
func VerifierFor(scheme string) (PinVerifier, error) {
	switch scheme {
	case SchemePlain, "":
		return PlainPins{}, nil
	case SchemeBcrypt:
		return BcryptPins{}, nil
	default:
		return nil, fmt.Errorf("unknown pin scheme %q", scheme)
	}
}
