// Package client 是市集 API 的客戶端狀態與畫面層
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"campus-market/internal/api"

	"github.com/labstack/echo/v4"
)

// DefaultBaseURL 未設定 MARKET_API_URL 時使用
const DefaultBaseURL = "http://localhost:8080"

const fallbackMessage = "Something went wrong"

// APIError 伺服器回傳的錯誤信封
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client 對 /api 的薄封裝，token 為空時不帶 Authorization
type Client struct {
	BaseURL string
	HTTP    *http.Client

	token string
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	return req, nil
}

// do 送出請求；非 2xx 時轉成 *APIError
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env api.ErrorResponse
		if jerr := json.Unmarshal(data, &env); jerr != nil || env.Error == "" {
			env.Error = fallbackMessage
		}
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return c.do(req, out)
}

func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var out api.HealthResponse
	if err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in api.RegisterRequest) (*api.RegisterResponse, error) {
	var out api.RegisterResponse
	if err := c.postJSON(ctx, "/api/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, in api.LoginRequest) (*api.LoginResponse, error) {
	var out api.LoginResponse
	if err := c.postJSON(ctx, "/api/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products 取得上架商品，category 為 all 或空字串時不過濾
func (c *Client) Products(ctx context.Context, category string) ([]api.ProductResponse, error) {
	path := "/api/products"
	if category != "" && category != api.CategoryAll {
		path = "/api/products/category/" + url.PathEscape(category)
	}
	out := []api.ProductResponse{}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UserProducts(ctx context.Context, userID int) ([]api.ProductResponse, error) {
	out := []api.ProductResponse{}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/users/%d/products", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UserTransactions(ctx context.Context, userID int) ([]api.TransactionResponse, error) {
	out := []api.TransactionResponse{}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/users/%d/transactions", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewProduct 上架表單送出的內容，ImagePath 為本機檔案路徑
type NewProduct struct {
	SellerID    int
	Title       string
	Description string
	Price       string
	Category    string
	PhoneNumber string
	ImagePath   string
}

// CreateProduct 以 multipart/form-data 上架商品
func (c *Client) CreateProduct(ctx context.Context, p NewProduct) (*api.CreateProductResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"seller_id", strconv.Itoa(p.SellerID)},
		{"title", p.Title},
		{"description", p.Description},
		{"price", p.Price},
		{"category", p.Category},
		{"phone_number", p.PhoneNumber},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if p.ImagePath != "" {
		if err := attachFile(mw, "image", p.ImagePath); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/products", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())

	var out api.CreateProductResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func attachFile(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

func (c *Client) CreateTransaction(ctx context.Context, in api.CreateTransactionRequest) (*api.CreateTransactionResponse, error) {
	var out api.CreateTransactionResponse
	if err := c.postJSON(ctx, "/api/transactions", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
