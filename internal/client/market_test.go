package client

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"campus-market/internal/api"
	"campus-market/internal/database"
	"campus-market/internal/events"
	"campus-market/internal/model"
	"campus-market/internal/router"
	"campus-market/internal/service"
	"campus-market/internal/upload"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作：依 SQL 分派的記憶體資料庫 ---------- */

type memMarket struct {
	mu       sync.Mutex
	clock    time.Time
	users    []model.User
	products []model.Product
	txs      []model.Transaction
}

func newMemMarket() *memMarket {
	return &memMarket{clock: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (m *memMarket) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memMarket) user(id int) *model.User {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i]
		}
	}
	return nil
}

func (m *memMarket) db() *database.FakeDB {
	return &database.FakeDB{
		QueryRowFn: m.queryRow,
		QueryFn:    m.query,
		PingFn:     func(context.Context) error { return nil },
	}
}

func fkViolation() pgx.Row {
	return &database.FakeRow{Err: &pgconn.PgError{Code: "23503"}}
}

func (m *memMarket) queryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case strings.Contains(sql, "INSERT INTO users"):
		sid := args[0].(string)
		for _, u := range m.users {
			if u.StudentID == sid {
				return &database.FakeRow{Err: &pgconn.PgError{Code: "23505"}}
			}
		}
		u := model.User{
			ID:           len(m.users) + 1,
			StudentID:    sid,
			Name:         args[1].(string),
			PhoneNumber:  args[2].(string),
			PasswordHash: args[3].(string),
			University:   model.DefaultUniversity,
			CreatedAt:    m.tick(),
		}
		m.users = append(m.users, u)
		return &database.FakeRow{Values: []any{u.ID, u.University, u.CreatedAt}}

	case strings.Contains(sql, "FROM users WHERE student_id"):
		for _, u := range m.users {
			if u.StudentID == args[0].(string) {
				return &database.FakeRow{Values: []any{
					u.ID, u.StudentID, u.Name, u.PhoneNumber, u.PasswordHash, u.University, u.CreatedAt,
				}}
			}
		}
		return &database.FakeRow{Err: pgx.ErrNoRows}

	case strings.Contains(sql, "INSERT INTO products"):
		p := model.Product{
			ID:          len(m.products) + 1,
			SellerID:    args[0].(int),
			Title:       args[1].(string),
			Description: args[2].(*string),
			Price:       args[3].(float64),
			Category:    args[4].(string),
			ImagePath:   args[5].(*string),
			PhoneNumber: args[6].(string),
			Status:      model.ProductStatusAvailable,
			CreatedAt:   m.tick(),
		}
		if m.user(p.SellerID) == nil {
			return fkViolation()
		}
		m.products = append(m.products, p)
		return &database.FakeRow{Values: []any{p.ID, p.Status, p.CreatedAt}}

	case strings.Contains(sql, "INSERT INTO transactions"):
		tx := model.Transaction{
			ID:          len(m.txs) + 1,
			BuyerID:     args[0].(int),
			SellerID:    args[1].(int),
			ProductID:   args[2].(int),
			Amount:      args[3].(float64),
			BuyerPhone:  args[4].(string),
			SellerPhone: args[5].(string),
			Status:      model.TransactionStatusPending,
			CreatedAt:   m.tick(),
		}
		if m.user(tx.BuyerID) == nil || m.user(tx.SellerID) == nil || tx.ProductID > len(m.products) {
			return fkViolation()
		}
		m.txs = append(m.txs, tx)
		return &database.FakeRow{Values: []any{tx.ID, tx.Status, tx.CreatedAt}}

	case strings.Contains(sql, "SELECT status FROM products"):
		id := args[0].(int)
		if id < 1 || id > len(m.products) {
			return &database.FakeRow{Err: pgx.ErrNoRows}
		}
		return &database.FakeRow{Values: []any{m.products[id-1].Status}}
	}
	return &database.FakeRow{Err: fmt.Errorf("memMarket: unexpected query %q", sql)}
}

func productValues(p model.Product) []any {
	return []any{p.ID, p.SellerID, p.Title, p.Description, p.Price, p.Category,
		p.ImagePath, p.PhoneNumber, p.Status, p.CreatedAt}
}

// query 依插入順序反向輸出，等同 created_at DESC
func (m *memMarket) query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var data [][]any
	switch {
	case strings.Contains(sql, "JOIN users u ON p.seller_id"):
		for i := len(m.products) - 1; i >= 0; i-- {
			p := m.products[i]
			if p.Status != model.ProductStatusAvailable {
				continue
			}
			if len(args) == 1 && p.Category != args[0].(string) {
				continue
			}
			seller := m.user(p.SellerID)
			data = append(data, append(productValues(p), seller.Name, seller.PhoneNumber))
		}
	case strings.Contains(sql, "WHERE p.seller_id = $1"):
		for i := len(m.products) - 1; i >= 0; i-- {
			if p := m.products[i]; p.SellerID == args[0].(int) {
				data = append(data, productValues(p))
			}
		}
	case strings.Contains(sql, "FROM transactions t"):
		uid := args[0].(int)
		for i := len(m.txs) - 1; i >= 0; i-- {
			tx := m.txs[i]
			if tx.BuyerID != uid && tx.SellerID != uid {
				continue
			}
			data = append(data, []any{tx.ID, tx.BuyerID, tx.SellerID, tx.ProductID, tx.Amount,
				tx.BuyerPhone, tx.SellerPhone, tx.Status, tx.CreatedAt,
				m.products[tx.ProductID-1].Title, m.user(tx.SellerID).Name})
		}
	default:
		return nil, fmt.Errorf("memMarket: unexpected query %q", sql)
	}
	return &database.FakeRows{Data: data}, nil
}

// newMarketServer 以真正的路由包住記憶體資料庫
func newMarketServer(t *testing.T) (*httptest.Server, *memMarket) {
	t.Helper()
	mem := newMemMarket()
	dir := t.TempDir()

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler
	router.Setup(e, router.Deps{
		DB:             mem.db(),
		Images:         upload.NewStore(dir, 5<<20),
		Tokens:         service.NewTokens("market-secret", time.Hour),
		Emitter:        events.Discard{},
		Env:            "test",
		UploadDir:      dir,
		MaxUploadBytes: 5 << 20,
		AuthRateLimit:  100,
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, mem
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "calculator.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return path
}

func newTestSession(srv *httptest.Server, dir string) *Session {
	s := NewSession(New(srv.URL, srv.Client()), NewFileStore(dir), NewNotifier(nil))
	s.paymentDelay = 20 * time.Millisecond
	return s
}

func lastMessage(t *testing.T, s *Session) string {
	t.Helper()
	n, ok := s.Notifier().Current()
	require.True(t, ok)
	return n.Message
}

func TestMarketplaceScenario(t *testing.T) {
	srv, mem := newMarketServer(t)
	ctx := context.Background()
	sellerDir, buyerDir := t.TempDir(), t.TempDir()

	/* --- 賣家註冊、登入、上架 --- */
	seller := newTestSession(srv, sellerDir)
	st, err := seller.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, ViewBrowse, st.View)
	require.False(t, st.LoggedIn())
	require.Empty(t, st.Products)

	_, err = seller.Register(ctx, RegisterForm{
		StudentID: "S100", Name: "Alice Banda", PhoneNumber: "0971234567",
		Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, MsgRegisterSuccess, lastMessage(t, seller))

	st, err = seller.Login(ctx, LoginForm{StudentID: "S100", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, MsgLoginSuccess, lastMessage(t, seller))
	require.Equal(t, ViewDashboard, st.View)
	require.Equal(t, "S100", st.User.StudentID)
	require.NotEmpty(t, st.Token)
	require.Empty(t, st.MyProducts)
	require.FileExists(t, filepath.Join(sellerDir, IdentitySlot+".json"))

	st, err = seller.AddProduct(ctx, ProductForm{
		Title: "Calculator", Description: "Casio fx-991", Price: "150",
		Category: "electronics", PhoneNumber: "0971234567", Image: writePNG(t, t.TempDir()),
	})
	require.NoError(t, err)
	require.Equal(t, MsgProductAdded, lastMessage(t, seller))
	require.Len(t, st.MyProducts, 1)
	require.NotNil(t, st.MyProducts[0].ImagePath)
	require.True(t, strings.HasSuffix(*st.MyProducts[0].ImagePath, ".png"))

	/* --- 買家瀏覽並購買 --- */
	buyer := newTestSession(srv, buyerDir)
	_, err = buyer.Register(ctx, RegisterForm{
		StudentID: "S200", Name: "Brian Phiri", PhoneNumber: "0967654321",
		Password: "secret2", ConfirmPassword: "secret2",
	})
	require.NoError(t, err)
	_, err = buyer.Login(ctx, LoginForm{StudentID: "S200", Password: "secret2"})
	require.NoError(t, err)

	st, err = buyer.SelectCategory(ctx, "books")
	require.NoError(t, err)
	require.Empty(t, st.Products)

	st, err = buyer.SelectCategory(ctx, "electronics")
	require.NoError(t, err)
	require.Len(t, st.Products, 1)
	require.Equal(t, "Alice Banda", st.Products[0].SellerName)

	conf, err := buyer.PreparePurchase(st.Products[0].ID)
	require.NoError(t, err)
	require.Equal(t, Confirmation{
		ProductID: 1, SellerID: 1, Title: "Calculator", Price: 150,
		SellerName: "Alice Banda", SellerPhone: "0971234567",
	}, conf)

	_, err = buyer.ConfirmPurchase(ctx, conf, PurchaseForm{BuyerPhone: "0967654321"})
	require.NoError(t, err)
	require.Equal(t, MsgTransactionCreated, lastMessage(t, buyer))
	buyer.Notifier().Wait()
	require.Equal(t, "Send ZMW 150 to 0971234567 using your mobile money service", lastMessage(t, buyer))

	st, err = buyer.SelectTab(ctx, TabMyTransactions)
	require.NoError(t, err)
	require.Len(t, st.Transactions, 1)
	require.Equal(t, "Calculator", st.Transactions[0].ProductTitle)
	require.Equal(t, model.TransactionStatusPending, st.Transactions[0].Status)
	require.Equal(t, 150.0, st.Transactions[0].Amount)

	// 賣家同樣看得到這筆交易，商品狀態不變
	st, err = seller.SelectTab(ctx, TabMyTransactions)
	require.NoError(t, err)
	require.Len(t, st.Transactions, 1)
	require.Equal(t, model.ProductStatusAvailable, mem.products[0].Status)

	/* --- 登出與重新啟動 --- */
	st, err = buyer.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, MsgLogoutSuccess, lastMessage(t, buyer))
	require.Equal(t, ViewBrowse, st.View)
	require.False(t, st.LoggedIn())
	require.Len(t, st.Products, 1)
	require.NoFileExists(t, filepath.Join(buyerDir, IdentitySlot+".json"))

	restarted := newTestSession(srv, sellerDir)
	st, err = restarted.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, ViewDashboard, st.View)
	require.Equal(t, "S100", st.User.StudentID)
	require.Len(t, st.MyProducts, 1)
}

func TestDoubleBuyCreatesTwoPendingRows(t *testing.T) {
	srv, mem := newMarketServer(t)
	ctx := context.Background()

	s := newTestSession(srv, t.TempDir())
	_, err := s.Register(ctx, RegisterForm{
		StudentID: "S100", Name: "Alice", PhoneNumber: "0971", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	_, err = s.Login(ctx, LoginForm{StudentID: "S100", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.AddProduct(ctx, ProductForm{Title: "Desk", Price: "80", Category: "furniture", PhoneNumber: "0971"})
	require.NoError(t, err)
	_, err = s.SelectCategory(ctx, api.CategoryAll)
	require.NoError(t, err)

	conf, err := s.PreparePurchase(1)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = s.ConfirmPurchase(ctx, conf, PurchaseForm{BuyerPhone: "0960"})
		require.NoError(t, err)
	}
	s.Notifier().Wait()

	require.Len(t, mem.txs, 2)
	for _, tx := range mem.txs {
		require.Equal(t, model.TransactionStatusPending, tx.Status)
	}
}

func TestSessionServerErrors(t *testing.T) {
	srv, _ := newMarketServer(t)
	ctx := context.Background()

	s := newTestSession(srv, t.TempDir())
	_, err := s.Register(ctx, RegisterForm{
		StudentID: "S100", Name: "Alice", PhoneNumber: "0971", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterForm{
		StudentID: "S100", Name: "Again", PhoneNumber: "0972", Password: "secret1", ConfirmPassword: "secret1",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)
	require.Equal(t, "Student ID already exists", lastMessage(t, s))

	st, err := s.Login(ctx, LoginForm{StudentID: "S100", Password: "wrong-password"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.Status)
	require.Equal(t, "Invalid student ID or password", lastMessage(t, s))
	require.False(t, st.LoggedIn())
}
