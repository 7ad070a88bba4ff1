package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"account-service/internal/domain"
)

const accountColumns = `id, name, email, address, phone_number, date_joined`

// AccountRepository persists accounts in Postgres.
type AccountRepository struct {
	DB  *DB
	DSN string
}

// NewAccountRepository wires a repository to the DSN-managed pool.
func NewAccountRepository(db *DB, dsn string) *AccountRepository {
	return &AccountRepository{DB: db, DSN: dsn}
}

func (r *AccountRepository) handle() (*sql.DB, error) {
	return r.DB.Get(r.DSN)
}

// Create inserts the account and fills in its database-assigned id.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	db, err := r.handle()
	if err != nil {
		return err
	}
	if a.DateJoined.IsZero() {
		a.DateJoined = domain.Today()
	}
	row := db.QueryRowContext(ctx,
		`INSERT INTO accounts (name, email, address, phone_number, date_joined)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		a.Name, a.Email, a.Address, a.PhoneNumber, a.DateJoined.Time)
	if err := row.Scan(&a.ID); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Get fetches a single account by id.
func (r *AccountRepository) Get(ctx context.Context, id int64) (*domain.Account, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}
	row := db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1;`, id)

	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", id, err)
	}
	return a, nil
}

// List returns all accounts. The result is never nil so an empty table
// serializes as a JSON array.
func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Update rewrites all client-editable fields of an existing account.
func (r *AccountRepository) Update(ctx context.Context, a *domain.Account) error {
	db, err := r.handle()
	if err != nil {
		return err
	}
	if a.DateJoined.IsZero() {
		a.DateJoined = domain.Today()
	}
	res, err := db.ExecContext(ctx,
		`UPDATE accounts
		 SET name = $1, email = $2, address = $3, phone_number = $4, date_joined = $5
		 WHERE id = $6;`,
		a.Name, a.Email, a.Address, a.PhoneNumber, a.DateJoined.Time, a.ID)
	if err != nil {
		return fmt.Errorf("update account %d: %w", a.ID, err)
	}
	return requireRow(res, a.ID)
}

// Delete removes an account by id.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.handle()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("account %d rows affected: %w", id, err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(scan func(...any) error) (*domain.Account, error) {
	var a domain.Account
	var joined time.Time
	if err := scan(&a.ID, &a.Name, &a.Email, &a.Address, &a.PhoneNumber, &joined); err != nil {
		return nil, err
	}
	a.DateJoined = domain.DateOf(joined)
	return &a, nil
}
