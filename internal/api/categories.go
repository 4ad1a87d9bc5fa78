package api

// CategoryAll 僅供客戶端使用，代表不過濾分類
const CategoryAll = "all"

// Categories 商品可用的固定分類
var Categories = []string{
	"electronics",
	"books",
	"clothing",
	"furniture",
	"food",
	"services",
	"other",
}

// IsCategory 判斷是否為合法分類（不含 all）
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
