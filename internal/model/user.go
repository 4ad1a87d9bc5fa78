// File: internal/model/user.go
package model

import "time"

// DefaultUniversity 與資料表預設值一致
const DefaultUniversity = "Chilanga North University"

type User struct {
	ID           int       `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Name         string    `db:"name" json:"name"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`
	PasswordHash string    `db:"password_hash" json:"-"`
	University   string    `db:"university" json:"university"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
