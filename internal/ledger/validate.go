// Package ledger, satış/maliyet/harcama kayıtlarının giriş noktası
// doğrulamalarını tek yerde toplar. Tutar sınırı giriş noktasında katıdır
// (> 0); kolon seviyesindeki kısıt yalnızca >= 0'dır.
package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ParseAmount: tutarı sayı ya da string JSON değerinden çözer. Sayı
// olmayan veya 0'dan küçük/eşit tutarlar alan bazlı mesajla reddedilir.
func ParseAmount(raw json.RawMessage, fieldMsg string) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return decimal.Zero, fiber.NewError(fiber.StatusBadRequest, fieldMsg)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, fiber.NewError(fiber.StatusBadRequest, fieldMsg)
	}
	return amount.Round(2), nil
}

// ParseOptionalAmount: boş bırakılabilir tutar alanları için (örn. satış
// fiyatı). Verilmişse 0'dan büyük olmak zorundadır.
func ParseOptionalAmount(raw json.RawMessage, fieldMsg string) (*decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, fieldMsg)
	}
	rounded := amount.Round(2)
	return &rounded, nil
}

// ParseDate: "2006-01-02" veya "2006-01-02 15:04" kabul eder, boşsa şimdiki
// zaman kullanılır.
func ParseDate(dateStr *string, loc *time.Location) (time.Time, error) {
	if dateStr == nil || strings.TrimSpace(*dateStr) == "" {
		return time.Now().In(loc), nil
	}

	s := strings.TrimSpace(*dateStr)
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-AA-GG' veya 'YYYY-AA-GG SS:DD' olmalı")
}
