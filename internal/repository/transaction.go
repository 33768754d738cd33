package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skipjar/skipjar/internal/model"
)

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Append(ctx context.Context, txn *model.Transaction) error
	Since(ctx context.Context, since time.Time, limit int) ([]*model.Transaction, error)
}

type transactionRepository struct {
	db sqlx.ExtContext
}

func NewTransactionRepository(db sqlx.ExtContext) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Append(ctx context.Context, txn *model.Transaction) error {
	query := `INSERT INTO skip_transactions (id, user_id, habit_id, goal_id, amount_saved, logged_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		txn.ID,
		txn.UserID,
		txn.HabitID,
		txn.GoalID,
		txn.AmountSaved,
		txn.Timestamp,
	)

	return err
}

// Since lists transactions logged at or after since, oldest first. It exists
// for audit export only; the ledger never reads its own history.
func (r *transactionRepository) Since(ctx context.Context, since time.Time, limit int) ([]*model.Transaction, error) {
	var txns []*model.Transaction
	query := `SELECT * FROM skip_transactions WHERE logged_at >= $1 ORDER BY logged_at ASC, id ASC LIMIT $2`

	err := sqlx.SelectContext(ctx, r.db, &txns, query, since.UTC(), limit)
	if err != nil {
		return nil, err
	}

	return txns, nil
}
