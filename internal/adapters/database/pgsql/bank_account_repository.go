package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `bank_account_id, account_name, account_number, bank_name, branch_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxBankAccountRepository persists bank accounts in PostgreSQL. Balances are
// derived from transactions and never stored.
type PgxBankAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBankAccountRepository creates a new repository for bank account data.
func NewPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{pool: pool}
}

func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		account.BankAccountID,
		account.AccountName,
		account.AccountNumber,
		account.BankName,
		account.BranchID,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account number %s at %s: %w", account.AccountNumber, account.BankName, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	account, err := scanBankAccount(r.pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account by ID %s: %w", bankAccountID, err)
	}
	return account, nil
}

func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, branchID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts`
	var args []any
	if branchID != "" {
		query += " WHERE branch_id = $1"
		args = append(args, branchID)
	}
	query += " ORDER BY account_name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.BankAccount, 0)
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank account rows: %w", err)
	}
	return accounts, nil
}

func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var account domain.BankAccount
	var branchID *string
	err := row.Scan(
		&account.BankAccountID,
		&account.AccountName,
		&account.AccountNumber,
		&account.BankName,
		&branchID,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		account.BranchID = *branchID
	}
	return &account, nil
}
