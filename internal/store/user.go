package store

import (
	"context"
	"fmt"

	"campus-market/internal/database"
	"campus-market/internal/model"
)

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (student_id, name, phone_number, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, university, created_at`,
		u.StudentID,
		u.Name,
		u.PhoneNumber,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.University, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", classify(err))
	}
	return u, nil
}

func GetUserByStudentID(ctx context.Context, db database.DB, studentID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, student_id, name, phone_number, password_hash, university, created_at
		 FROM users WHERE student_id = $1`,
		studentID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.StudentID,
		&u.Name,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.University,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByStudentID: %w", classify(err))
	}
	return u, nil
}
