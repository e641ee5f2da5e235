// internal/bank/idgen.go

package bank

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultIDLength matches the six-character account numbers handed out so far.
const DefaultIDLength = 6

// IDGenerator 產生候選帳戶 ID；唯一性由 Bank 在寫入前檢查。
type IDGenerator interface {
	Next() string
}

// ShortIDs 取隨機 UUID 的十六進位字元前 Length 碼，結果只含 [0-9a-f]，可安全放進 URL。
type ShortIDs struct {
	Length int
}

func (g ShortIDs) Next() string {
	n := g.Length
	if n <= 0 {
		n = DefaultIDLength
	}
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}
