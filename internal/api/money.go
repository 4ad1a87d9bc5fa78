package api

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// 價格與金額欄位為 NUMERIC(12,2)
const (
	MaxMoney     = 1e10
	MaxMoneyText = "10000000000"
)

// ParsePrice 的錯誤，訊息直接回給使用者
var (
	ErrPriceInvalid = errors.New("Price must be a non-negative number")
	ErrPriceRange   = errors.New("Price must be less than " + MaxMoneyText + " with at most 2 decimal places")
)

// ValidMoney 非負、有限、小於 MaxMoney 且最多兩位小數
func ValidMoney(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= MaxMoney {
		return false
	}
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-3
}

// ParsePrice 解析表單上的價格字串，例如 "150"、"12.50"
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrPriceInvalid
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && !strings.ContainsAny(s, "eE") &&
		len(strings.TrimRight(s[i+1:], "0")) > 2 {
		return 0, ErrPriceRange
	}
	if !ValidMoney(v) {
		return 0, ErrPriceRange
	}
	return v, nil
}
