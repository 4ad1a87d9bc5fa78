package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"campus-market/internal/api"

	"github.com/rs/zerolog/log"
)

// 操作成功時的通知訊息
const (
	MsgLoginSuccess       = "Login successful! Welcome back!"
	MsgRegisterSuccess    = "Registration successful! Please login with your credentials."
	MsgLogoutSuccess      = "Logged out successfully!"
	MsgProductAdded       = "Product added successfully!"
	MsgTransactionCreated = "Transaction created! Please complete the payment using mobile money."
	MsgLoginFirst         = "Please login first"
	MsgProductNotFound    = "Product not found"
)

// PaymentInstructionDelay 建立交易後多久顯示付款說明
const PaymentInstructionDelay = 2 * time.Second

var ErrNotLoggedIn = errors.New(MsgLoginFirst)

var timeNow = time.Now

// Confirmation 購買前的確認資訊，取自目前的商品列表
type Confirmation struct {
	ProductID   int
	SellerID    int
	Title       string
	Price       float64
	SellerName  string
	SellerPhone string
}

// Session 持有客戶端狀態；每個操作回傳更新後的 State
type Session struct {
	api   *Client
	store IdentityStore
	notes *Notifier
	state State

	paymentDelay time.Duration
}

func NewSession(c *Client, store IdentityStore, notes *Notifier) *Session {
	if notes == nil {
		notes = NewNotifier(nil)
	}
	return &Session{
		api:          c,
		store:        store,
		notes:        notes,
		state:        State{Category: api.CategoryAll, View: ViewBrowse},
		paymentDelay: PaymentInstructionDelay,
	}
}

func (s *Session) State() State { return s.state.clone() }

func (s *Session) Notifier() *Notifier { return s.notes }

// fail 顯示錯誤通知；非表單錯誤另外寫 log
func (s *Session) fail(op string, err error) (State, error) {
	msg := err.Error()
	var apiErr *APIError
	switch {
	case IsFormError(err), errors.Is(err, ErrNotLoggedIn):
	case errors.As(err, &apiErr):
		log.Debug().Err(err).Int("status", apiErr.Status).Str("op", op).Msg("api call failed")
		// token 失效或被拒：丟掉保存的身分
		if apiErr.Status == http.StatusUnauthorized && s.state.LoggedIn() {
			s.clearIdentity()
		}
	default:
		log.Error().Err(err).Str("op", op).Msg("unexpected client error")
	}
	s.notes.Show(msg, SeverityError)
	return s.State(), err
}

// Restore 讀取保存的身分；有身分進入 dashboard，否則瀏覽所有商品
func (s *Session) Restore(ctx context.Context) (State, error) {
	if st := s.Resume(); st.LoggedIn() {
		return s.showDashboard(ctx)
	}
	return s.loadProducts(ctx)
}

// Resume 只載入保存的身分，不呼叫 API；無法解析的身分會被清除
func (s *Session) Resume() State {
	id, err := s.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable identity")
		_ = s.store.Clear()
		id = nil
	}
	if id != nil && !id.ExpiresAt.IsZero() && !id.ExpiresAt.After(timeNow()) {
		log.Info().Time("expires_at", id.ExpiresAt).Msg("saved identity expired")
		_ = s.store.Clear()
		id = nil
	}
	if id == nil {
		s.state.View = ViewBrowse
		return s.State()
	}
	s.setIdentity(id)
	s.state.View = ViewDashboard
	return s.State()
}

// Health 檢查 API 狀態
func (s *Session) Health(ctx context.Context) (*api.HealthResponse, error) {
	h, err := s.api.Health(ctx)
	if err != nil {
		_, err = s.fail("health", err)
		return nil, err
	}
	return h, nil
}

func (s *Session) setIdentity(id *Identity) {
	u := id.User
	s.state.User = &u
	s.state.Token = id.Token
	s.api.SetToken(id.Token)
}

// clearIdentity 清除保存的身分與登入狀態，保留目前的分類
func (s *Session) clearIdentity() {
	if err := s.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear identity")
	}
	s.api.SetToken("")
	s.state = State{Category: s.state.Category, View: ViewBrowse}
}

func (s *Session) showDashboard(ctx context.Context) (State, error) {
	s.state.View = ViewDashboard
	s.state.Tab = TabMyProducts
	return s.loadMyProducts(ctx)
}

func (s *Session) loadProducts(ctx context.Context) (State, error) {
	list, err := s.api.Products(ctx, s.state.Category)
	if err != nil {
		return s.fail("load products", err)
	}
	s.state.Products = list
	return s.State(), nil
}

func (s *Session) loadMyProducts(ctx context.Context) (State, error) {
	if !s.state.LoggedIn() {
		return s.State(), nil
	}
	list, err := s.api.UserProducts(ctx, s.state.User.ID)
	if err != nil {
		return s.fail("load my products", err)
	}
	s.state.MyProducts = list
	return s.State(), nil
}

func (s *Session) loadMyTransactions(ctx context.Context) (State, error) {
	if !s.state.LoggedIn() {
		return s.State(), nil
	}
	list, err := s.api.UserTransactions(ctx, s.state.User.ID)
	if err != nil {
		return s.fail("load my transactions", err)
	}
	s.state.Transactions = list
	return s.State(), nil
}

func (s *Session) Register(ctx context.Context, f RegisterForm) (State, error) {
	if err := f.Validate(); err != nil {
		return s.fail("register", err)
	}
	if _, err := s.api.Register(ctx, f.request()); err != nil {
		return s.fail("register", err)
	}
	s.notes.Show(MsgRegisterSuccess, SeveritySuccess)
	return s.State(), nil
}

func (s *Session) Login(ctx context.Context, f LoginForm) (State, error) {
	if err := f.Validate(); err != nil {
		return s.fail("login", err)
	}
	resp, err := s.api.Login(ctx, api.LoginRequest{StudentID: f.StudentID, Password: f.Password})
	if err != nil {
		return s.fail("login", err)
	}
	id := &Identity{User: resp.User, Token: resp.AccessToken, ExpiresAt: resp.ExpiresAt}
	if err := s.store.Save(id); err != nil {
		return s.fail("save identity", err)
	}
	s.setIdentity(id)
	s.notes.Show(MsgLoginSuccess, SeveritySuccess)
	return s.showDashboard(ctx)
}

// Logout 清除狀態與保存的身分，回到瀏覽畫面
func (s *Session) Logout(ctx context.Context) (State, error) {
	s.clearIdentity()
	s.notes.Show(MsgLogoutSuccess, SeverityInfo)
	return s.loadProducts(ctx)
}

// SelectCategory all 代表全部分類
func (s *Session) SelectCategory(ctx context.Context, category string) (State, error) {
	if category == "" {
		category = api.CategoryAll
	}
	if !validCategory(category) {
		return s.fail("select category", &FormError{Message: MsgUnknownCategory})
	}
	s.state.Category = category
	return s.loadProducts(ctx)
}

// SelectTab 未登入時不做任何事
func (s *Session) SelectTab(ctx context.Context, tab Tab) (State, error) {
	if !s.state.LoggedIn() {
		return s.State(), nil
	}
	switch tab {
	case TabMyProducts:
		s.state.Tab = tab
		return s.loadMyProducts(ctx)
	case TabMyTransactions:
		s.state.Tab = tab
		return s.loadMyTransactions(ctx)
	}
	return s.State(), nil
}

func (s *Session) AddProduct(ctx context.Context, f ProductForm) (State, error) {
	if !s.state.LoggedIn() {
		return s.fail("add product", ErrNotLoggedIn)
	}
	if err := f.Validate(); err != nil {
		return s.fail("add product", err)
	}
	_, err := s.api.CreateProduct(ctx, NewProduct{
		SellerID:    s.state.User.ID,
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		PhoneNumber: f.PhoneNumber,
		ImagePath:   f.Image,
	})
	if err != nil {
		return s.fail("add product", err)
	}
	s.notes.Show(MsgProductAdded, SeveritySuccess)
	return s.loadMyProducts(ctx)
}

// PreparePurchase 從目前列表組出確認資訊，不重新抓資料
func (s *Session) PreparePurchase(productID int) (Confirmation, error) {
	for _, p := range s.state.Products {
		if p.ID == productID {
			return Confirmation{
				ProductID:   p.ID,
				SellerID:    p.SellerID,
				Title:       p.Title,
				Price:       p.Price,
				SellerName:  p.SellerName,
				SellerPhone: p.SellerPhone,
			}, nil
		}
	}
	err := &FormError{Message: MsgProductNotFound}
	s.notes.Show(err.Message, SeverityError)
	return Confirmation{}, err
}

// ConfirmPurchase 建立交易，金額取自確認資訊
func (s *Session) ConfirmPurchase(ctx context.Context, conf Confirmation, f PurchaseForm) (State, error) {
	if !s.state.LoggedIn() {
		return s.fail("purchase", ErrNotLoggedIn)
	}
	if err := f.Validate(); err != nil {
		return s.fail("purchase", err)
	}
	_, err := s.api.CreateTransaction(ctx, api.CreateTransactionRequest{
		BuyerID:     s.state.User.ID,
		SellerID:    conf.SellerID,
		ProductID:   conf.ProductID,
		Amount:      conf.Price,
		BuyerPhone:  f.BuyerPhone,
		SellerPhone: conf.SellerPhone,
	})
	if err != nil {
		return s.fail("purchase", err)
	}
	s.notes.Show(MsgTransactionCreated, SeveritySuccess)
	s.notes.After(s.paymentDelay, PaymentInstruction(conf), SeverityInfo)
	return s.State(), nil
}

// PaymentInstruction 行動支付說明
func PaymentInstruction(conf Confirmation) string {
	return fmt.Sprintf("Send ZMW %s to %s using your mobile money service", FormatPrice(conf.Price), conf.SellerPhone)
}

// FormatPrice 150 → "150"，12.5 → "12.5"
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
