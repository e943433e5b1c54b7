package postgres

import (
	"context"
	"fmt"

	"github.com/gdugdh24/mentorlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type Transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

// WithTx executes fn within a transaction.
// The transaction is committed if fn returns nil, rolled back otherwise.
func (t *Transactor) WithTx(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := repository.TxRepositories{
		Requests:    &requestRepository{db: tx},
		Connections: &connectionRepository{db: tx},
	}
	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit error: %w", err)
	}
	return nil
}
