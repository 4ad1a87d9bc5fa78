// File: internal/store/store_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-market/internal/database"
	"campus-market/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func rowDB(row pgx.Row, gotSQL *string, gotArgs *[]any) *database.FakeDB {
	return &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			if gotSQL != nil {
				*gotSQL = sql
			}
			if gotArgs != nil {
				*gotArgs = args
			}
			return row
		},
	}
}

func TestClassify(t *testing.T) {
	require.ErrorIs(t, classify(pgx.ErrNoRows), ErrNotFound)
	require.ErrorIs(t, classify(&pgconn.PgError{Code: "23505"}), ErrDuplicateKey)
	require.ErrorIs(t, classify(&pgconn.PgError{Code: "23503"}), ErrForeignKey)
	require.ErrorIs(t, classify(&pgconn.PgError{Code: "22003"}), ErrOutOfRange)

	other := errors.New("boom")
	require.Equal(t, other, classify(other))

	var pgErr *pgconn.PgError
	require.True(t, errors.As(classify(&pgconn.PgError{Code: "23505", ConstraintName: "users_student_id_key"}), &pgErr))
	require.Equal(t, "users_student_id_key", pgErr.ConstraintName)
}

func TestUserStore(t *testing.T) {
	now := time.Now().UTC()

	/* --- CreateUser --- */
	t.Run("CreateUser success", func(t *testing.T) {
		var args []any
		db := rowDB(&database.FakeRow{Values: []any{42, model.DefaultUniversity, now}}, nil, &args)
		u, err := CreateUser(context.Background(), db, &model.User{
			StudentID: "S100", Name: "Alice", PhoneNumber: "0971", PasswordHash: "hash",
		})
		require.NoError(t, err)
		require.Equal(t, 42, u.ID)
		require.Equal(t, model.DefaultUniversity, u.University)
		require.Equal(t, now, u.CreatedAt)
		require.Equal(t, []any{"S100", "Alice", "0971", "hash"}, args)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := rowDB(&database.FakeRow{Err: &pgconn.PgError{Code: pgUniqueViolation}}, nil, nil)
		u, err := CreateUser(context.Background(), db, &model.User{StudentID: "S100"})
		require.ErrorIs(t, err, ErrDuplicateKey)
		require.Nil(t, u)
	})

	/* --- GetUserByStudentID --- */
	t.Run("GetUserByStudentID success", func(t *testing.T) {
		var args []any
		db := rowDB(&database.FakeRow{Values: []any{7, "S100", "Alice", "0971", "hash", model.DefaultUniversity, now}}, nil, &args)
		u, err := GetUserByStudentID(context.Background(), db, "S100")
		require.NoError(t, err)
		require.Equal(t, 7, u.ID)
		require.Equal(t, "hash", u.PasswordHash)
		require.Equal(t, []any{"S100"}, args)
	})

	t.Run("GetUserByStudentID not found", func(t *testing.T) {
		db := rowDB(&database.FakeRow{Err: pgx.ErrNoRows}, nil, nil)
		u, err := GetUserByStudentID(context.Background(), db, "nobody")
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, u)
	})
}

func productRow(id int, category string, created time.Time, sellerName string) []any {
	return []any{id, 1, "Item", nil, 150.0, category, nil, "0971", model.ProductStatusAvailable, created, sellerName, "0971"}
}

func TestProductStore(t *testing.T) {
	now := time.Now().UTC()

	/* --- CreateProduct --- */
	t.Run("CreateProduct success", func(t *testing.T) {
		var args []any
		db := rowDB(&database.FakeRow{Values: []any{5, model.ProductStatusAvailable, now}}, nil, &args)
		p, err := CreateProduct(context.Background(), db, &model.Product{
			SellerID: 1, Title: "Calculator", Price: 150, Category: "electronics", PhoneNumber: "0971",
			ImagePath: ptr("abc.png"),
		})
		require.NoError(t, err)
		require.Equal(t, 5, p.ID)
		require.Equal(t, model.ProductStatusAvailable, p.Status)
		require.Len(t, args, 7)
		require.Equal(t, 150.0, args[3])
	})

	t.Run("CreateProduct foreign key", func(t *testing.T) {
		db := rowDB(&database.FakeRow{Err: &pgconn.PgError{Code: pgForeignKeyViolation}}, nil, nil)
		_, err := CreateProduct(context.Background(), db, &model.Product{SellerID: 99})
		require.ErrorIs(t, err, ErrForeignKey)
	})

	/* --- ListAvailableProducts --- */
	t.Run("ListAvailableProducts all", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotSQL, gotArgs = sql, args
			return &database.FakeRows{Data: [][]any{
				productRow(2, "books", now, "Bob"),
				productRow(1, "electronics", now.Add(-time.Hour), "Alice"),
			}}, nil
		}}
		list, err := ListAvailableProducts(context.Background(), db, "")
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Bob", list[0].SellerName)
		require.Nil(t, list[0].Description)
		require.NotContains(t, gotSQL, "p.category = $1")
		require.Contains(t, gotSQL, "p.status = 'available'")
		require.Contains(t, gotSQL, "ORDER BY p.created_at DESC")
		require.Empty(t, gotArgs)
	})

	t.Run("ListAvailableProducts by category", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotSQL, gotArgs = sql, args
			return &database.FakeRows{}, nil
		}}
		list, err := ListAvailableProducts(context.Background(), db, "electronics")
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
		require.Contains(t, gotSQL, "p.category = $1")
		require.Equal(t, []any{"electronics"}, gotArgs)
	})

	t.Run("ListAvailableProducts errors", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("query")
		}}
		_, err := ListAvailableProducts(context.Background(), db, "")
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{Data: [][]any{{1}}, ScanErr: errors.New("scan")}, nil
		}
		_, err = ListAvailableProducts(context.Background(), db, "")
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &database.FakeRows{IterErr: errors.New("iter")}, nil
		}
		_, err = ListAvailableProducts(context.Background(), db, "")
		require.Error(t, err)
	})

	/* --- ListProductsBySeller --- */
	t.Run("ListProductsBySeller", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			gotArgs = args
			row := productRow(3, "books", now, "")
			return &database.FakeRows{Data: [][]any{row[:10]}}, nil
		}}
		list, err := ListProductsBySeller(context.Background(), db, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, 3, list[0].ID)
		require.Equal(t, []any{1}, gotArgs)
	})

	/* --- GetProductStatus --- */
	t.Run("GetProductStatus", func(t *testing.T) {
		db := rowDB(&database.FakeRow{Values: []any{"sold"}}, nil, nil)
		s, err := GetProductStatus(context.Background(), db, 3)
		require.NoError(t, err)
		require.Equal(t, "sold", s)

		db = rowDB(&database.FakeRow{Err: pgx.ErrNoRows}, nil, nil)
		_, err = GetProductStatus(context.Background(), db, 3)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransactionStore(t *testing.T) {
	now := time.Now().UTC()

	/* --- CreateTransaction --- */
	t.Run("CreateTransaction success", func(t *testing.T) {
		var gotSQL string
		var args []any
		db := rowDB(&database.FakeRow{Values: []any{9, model.TransactionStatusPending, now}}, &gotSQL, &args)
		tx, err := CreateTransaction(context.Background(), db, &model.Transaction{
			BuyerID: 2, SellerID: 1, ProductID: 5, Amount: 150, BuyerPhone: "0966", SellerPhone: "0971",
		})
		require.NoError(t, err)
		require.Equal(t, 9, tx.ID)
		require.Equal(t, model.TransactionStatusPending, tx.Status)
		require.Equal(t, []any{2, 1, 5, 150.0, "0966", "0971"}, args)
	})

	t.Run("CreateTransaction error", func(t *testing.T) {
		db := rowDB(&database.FakeRow{Err: errors.New("down")}, nil, nil)
		_, err := CreateTransaction(context.Background(), db, &model.Transaction{})
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrDuplicateKey)
	})

	/* --- ListTransactionsByUser --- */
	t.Run("ListTransactionsByUser", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotSQL, gotArgs = sql, args
			return &database.FakeRows{Data: [][]any{
				{9, 2, 1, 5, 150.0, "0966", "0971", model.TransactionStatusPending, now, "Calculator", "Alice"},
			}}, nil
		}}
		list, err := ListTransactionsByUser(context.Background(), db, 2)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Calculator", list[0].ProductTitle)
		require.Equal(t, "Alice", list[0].SellerName)
		require.Equal(t, 150.0, list[0].Amount)
		require.Contains(t, gotSQL, "t.buyer_id = $1 OR t.seller_id = $1")
		require.Equal(t, []any{2}, gotArgs)
	})

	t.Run("ListTransactionsByUser error", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("query")
		}}
		_, err := ListTransactionsByUser(context.Background(), db, 2)
		require.Error(t, err)
	})
}
