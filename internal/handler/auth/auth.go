// Package auth 處理註冊與登入
package auth

import (
	"campus-market/internal/api"
	"campus-market/internal/metrics"
	"campus-market/internal/service"
	"campus-market/internal/store"
)

const (
	msgInvalidBody   = api.MsgInvalidRequest
	msgDatabaseError = api.MsgDatabaseError
)

// 測試時可替換
var (
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	createUser         = store.CreateUser
	getUserByStudentID = store.GetUserByStudentID
	recordRegistration = metrics.RecordRegistration
)
