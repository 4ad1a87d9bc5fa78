// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"campus-market/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials 帳號不存在或密碼錯誤，兩者對外不區分
var ErrInvalidCredentials = errors.New("invalid student ID or password")

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID    int    `json:"uid"`
	StudentID string `json:"student_id"`
	jwt.RegisteredClaims
}

// AuthenticateUser 以 bcrypt 比對密碼，成功回傳同一個使用者
func AuthenticateUser(user *model.User, password string) (*model.User, error) {
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Tokens 負責簽發與驗證 access token
type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: ttl}
}

// Issue 依據使用者資訊產生 HS256 JWT，並回傳到期時間
func (t *Tokens) Issue(user *model.User) (string, time.Time, error) {
	if len(t.Secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret not set")
	}

	now := timeNow()
	exp := now.Add(t.TTL)
	claims := CustomClaims{
		UserID:    user.ID,
		StudentID: user.StudentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify 驗證並解析 JWT 令牌
func (t *Tokens) Verify(tokenString string) (*CustomClaims, error) {
	if len(t.Secret) == 0 {
		return nil, fmt.Errorf("JWT secret not set")
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
