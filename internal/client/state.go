package client

import "campus-market/internal/api"

type View string

const (
	ViewBrowse    View = "browse"
	ViewDashboard View = "dashboard"
)

type Tab string

const (
	TabMyProducts     Tab = "my-products"
	TabMyTransactions Tab = "my-transactions"
)

// State 客戶端目前的畫面狀態，Session 每次操作後回傳新的副本
type State struct {
	User     *api.UserResponse
	Token    string
	Category string
	View     View
	Tab      Tab

	Products     []api.ProductResponse
	MyProducts   []api.ProductResponse
	Transactions []api.TransactionResponse
}

func (s State) LoggedIn() bool { return s.User != nil }

// clone 複製切片，呼叫端拿到的 State 不會被之後的操作改到
func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Products = append([]api.ProductResponse(nil), s.Products...)
	out.MyProducts = append([]api.ProductResponse(nil), s.MyProducts...)
	out.Transactions = append([]api.TransactionResponse(nil), s.Transactions...)
	return out
}
