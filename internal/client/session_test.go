package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"campus-market/internal/api"

	"github.com/stretchr/testify/require"
)

// countingServer 記錄請求次數，回傳固定內容
func countingServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestInvalidFormsNeverCallAPI(t *testing.T) {
	srv, hits := countingServer(t, http.StatusOK, `{}`)
	s := newTestSession(srv, t.TempDir())
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterForm{StudentID: "S1", Name: "A", PhoneNumber: "1", Password: "abc", ConfirmPassword: "abc"})
	require.True(t, IsFormError(err))
	require.Equal(t, "Password must be at least 6 characters long", lastMessage(t, s))

	_, err = s.Login(ctx, LoginForm{})
	require.True(t, IsFormError(err))
	require.Equal(t, MsgLoginRequired, lastMessage(t, s))

	_, err = s.SelectCategory(ctx, "cars")
	require.True(t, IsFormError(err))

	require.Zero(t, atomic.LoadInt32(hits))

	n, ok := s.Notifier().Current()
	require.True(t, ok)
	require.Equal(t, SeverityError, n.Severity)
}

func TestAnonymousGuards(t *testing.T) {
	srv, hits := countingServer(t, http.StatusOK, `[]`)
	s := newTestSession(srv, t.TempDir())
	ctx := context.Background()

	st, err := s.SelectTab(ctx, TabMyTransactions)
	require.NoError(t, err)
	require.Empty(t, st.Tab)

	_, err = s.AddProduct(ctx, ProductForm{Title: "x", Price: "1", Category: "books", PhoneNumber: "1"})
	require.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = s.ConfirmPurchase(ctx, Confirmation{ProductID: 1}, PurchaseForm{BuyerPhone: "1"})
	require.ErrorIs(t, err, ErrNotLoggedIn)
	require.Equal(t, MsgLoginFirst, lastMessage(t, s))

	_, err = s.PreparePurchase(42)
	require.EqualError(t, err, MsgProductNotFound)

	require.Zero(t, atomic.LoadInt32(hits))
}

func TestSelectCategoryPaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":3,"title":"Novel","price":20,"category":"books","seller_name":"Eve","seller_phone":"0955"}]`))
	}))
	defer srv.Close()

	s := newTestSession(srv, t.TempDir())
	ctx := context.Background()

	st, err := s.SelectCategory(ctx, "books")
	require.NoError(t, err)
	require.Equal(t, "books", st.Category)
	require.Len(t, st.Products, 1)

	_, err = s.SelectCategory(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"/api/products/category/books", "/api/products"}, paths)

	conf, err := s.PreparePurchase(3)
	require.NoError(t, err)
	require.Equal(t, "0955", conf.SellerPhone)
	require.Len(t, paths, 2)
}

func TestRestoreDiscardsCorruptIdentity(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `[]`)
	dir := t.TempDir()
	slot := filepath.Join(dir, IdentitySlot+".json")
	require.NoError(t, os.WriteFile(slot, []byte("garbage"), 0o600))

	st, err := newTestSession(srv, dir).Restore(context.Background())
	require.NoError(t, err)
	require.Equal(t, ViewBrowse, st.View)
	require.NoFileExists(t, slot)
}

func TestRestoreDropsExpiredIdentity(t *testing.T) {
	now := time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })

	srv, _ := countingServer(t, http.StatusOK, `[]`)
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save(&Identity{
		User:      api.UserResponse{ID: 7, StudentID: "S100"},
		Token:     "stale",
		ExpiresAt: now,
	}))

	s := newTestSession(srv, dir)
	st, err := s.Restore(context.Background())
	require.NoError(t, err)
	require.Equal(t, ViewBrowse, st.View)
	require.False(t, st.LoggedIn())
	require.Empty(t, s.api.Token())
	require.NoFileExists(t, filepath.Join(dir, IdentitySlot+".json"))

	// 尚未過期的身分照常恢復
	require.NoError(t, store.Save(&Identity{
		User:      api.UserResponse{ID: 7, StudentID: "S100"},
		Token:     "fresh",
		ExpiresAt: now.Add(time.Minute),
	}))
	st = newTestSession(srv, dir).Resume()
	require.True(t, st.LoggedIn())
	require.Equal(t, ViewDashboard, st.View)
}

func TestUnauthorizedClearsIdentity(t *testing.T) {
	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		if r.URL.Path == "/api/users/7/products" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir).Save(&Identity{
		User:      api.UserResponse{ID: 7, StudentID: "S100"},
		Token:     "revoked",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	s := newTestSession(srv, dir)
	st, err := s.Restore(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid token", lastMessage(t, s))
	require.False(t, st.LoggedIn())
	require.Equal(t, ViewBrowse, st.View)
	require.Empty(t, s.api.Token())
	require.NoFileExists(t, filepath.Join(dir, IdentitySlot+".json"))

	// 之後的請求不再帶舊 token
	_, err = s.SelectCategory(context.Background(), api.CategoryAll)
	require.NoError(t, err)
	require.Equal(t, []string{"Bearer revoked", ""}, auth)
}

func TestRestoreLoadFailureNotifies(t *testing.T) {
	srv, _ := countingServer(t, http.StatusInternalServerError, `{"error":"Database error"}`)
	s := newTestSession(srv, t.TempDir())

	_, err := s.Restore(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.MsgDatabaseError, lastMessage(t, s))
}

func TestStateIsCopied(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `[{"id":1,"title":"A","price":1,"category":"books"}]`)
	s := newTestSession(srv, t.TempDir())

	st, err := s.Restore(context.Background())
	require.NoError(t, err)
	st.Products[0].Title = "changed"
	require.Equal(t, "A", s.State().Products[0].Title)
}
