package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// пополнение одним запросом: строка создаётся или увеличивается атомарно
	UpsertBalance = `INSERT INTO BALANCES (user_id, username, balance, last_update)
						VALUES ($1, $2, $3, $4)
						ON CONFLICT (user_id) DO UPDATE
						SET balance = BALANCES.balance + EXCLUDED.balance,
						    username = CASE WHEN $5 THEN EXCLUDED.username ELSE BALANCES.username END,
						    last_update = EXCLUDED.last_update
						RETURNING balance;`
)

type BalanceDatabase struct {
	DB  *Database
	Now func() time.Time
}

// Создание хранилища
func NewBalanceDatabase(db *Database) *BalanceDatabase {
	return &BalanceDatabase{DB: db, Now: time.Now}
}

func (s *BalanceDatabase) ApplyDelta(ctx context.Context, userID string, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if userID == "" {
		return decimal.Zero, ErrUserIDRequired
	}
	hasUsername := username != ""
	if !hasUsername {
		username = models.DefaultUsername
	}

	var balance decimal.Decimal
	err := s.DB.Pool.QueryRow(ctx, UpsertBalance, userID, username, amount, s.Now().UTC(), hasUsername).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance: %w", err)
	}
	return balance, nil
}

func (s *BalanceDatabase) Close() error {
	return s.DB.Close()
}
