// Package products 處理商品列表與上架
package products

import (
	"campus-market/internal/metrics"
	"campus-market/internal/store"
)

// 測試時可替換
var (
	listAvailableProducts = store.ListAvailableProducts
	createProduct         = store.CreateProduct
	recordProductCreated  = metrics.RecordProductCreated
)
