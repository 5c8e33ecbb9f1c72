// Package storage provides the embedded sqlite record store.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"kopilka/internal/core"
	"kopilka/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// migrateUp applies the embedded schema migrations. migrate owns and
// closes its database handle, so it never touches the repository's
// pool.
func migrateUp(dbPath string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("create sqlite migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) FindByCredentials(ctx context.Context, email, password string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password, currency FROM users WHERE email = ? AND password = ?`,
		email, password)

	var u core.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user by credentials: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	if u.Currency == "" {
		u.Currency = core.BaseCurrency
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password, currency) VALUES (?, ?, ?)`,
		u.Email, u.Password, u.Currency)
	if err != nil {
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, fmt.Errorf("read inserted user id: %w", err)
	}
	u.ID = id
	return u, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password, currency FROM users WHERE id = ?`, id)

	var u core.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) SetCurrency(ctx context.Context, id int64, currency string) (core.User, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET currency = ? WHERE id = ?`, currency, id)
	if err != nil {
		return core.User{}, fmt.Errorf("update user currency: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return core.User{}, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	return r.GetUser(ctx, id)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, color, icon, user_id FROM categories WHERE user_id = ? ORDER BY id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	out := make([]core.Category, 0)
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.Icon, &c.UserID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, type, color, icon, user_id) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Type, c.Color, c.Icon, c.UserID)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("read inserted category id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, type = ?, color = ?, icon = ? WHERE id = ?`,
		c.Name, c.Type, c.Color, c.Icon, c.ID)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return core.Category{}, fmt.Errorf("category %d: %w", c.ID, store.ErrNotFound)
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("category %d: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount, category_id, date, comment, user_id
		 FROM transactions WHERE user_id = ? ORDER BY date DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		var (
			t       core.Transaction
			rawDate string
		)
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.CategoryID, &rawDate, &t.Comment, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", rawDate, err)
		}
		t.Date = date
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (type, amount, category_id, date, comment, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Type, t.Amount, t.CategoryID, t.Date.String(), t.Comment, t.UserID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read inserted transaction id: %w", err)
	}
	t.ID = id
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET type = ?, amount = ?, category_id = ?, date = ?, comment = ? WHERE id = ?`,
		t.Type, t.Amount, t.CategoryID, t.Date.String(), t.Comment, t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, store.ErrNotFound)
	}
	return t, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, store.ErrNotFound)
	}
	return nil
}
