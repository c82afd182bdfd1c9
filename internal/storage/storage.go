package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/ya-payrelay/internal/config"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks . BalanceStorage

// BalanceStorage - хранилище текущих балансов пользователей
type BalanceStorage interface {
	// ApplyDelta прибавляет amount к балансу пользователя (создавая запись при отсутствии)
	// и возвращает новый баланс
	ApplyDelta(ctx context.Context, userID string, username string, amount decimal.Decimal) (decimal.Decimal, error)
	Close() error
}

var (
	ErrNotConfigured  = errors.New("balance storage is not configured")
	ErrInvalidBalance = errors.New("invalid balance value")
	ErrUnknownBackend = errors.New("unknown balance storage backend")
	ErrUserIDRequired = errors.New("user id is required")
)

// NewBalanceStorage создаёт хранилище по настройкам. Без хранилища возвращает ErrNotConfigured
func NewBalanceStorage(ctx context.Context, cfg config.BalanceConfig) (BalanceStorage, error) {
	switch cfg.Backend {
	case "", config.BalanceBackendNone:
		return nil, ErrNotConfigured
	case config.BalanceBackendSheets:
		sheetsStorage, err := NewSheetsStorage(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			return nil, err
		}
		return sheetsStorage, nil
	case config.BalanceBackendPostgres:
		db, err := NewDatabase(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := db.Initialize(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return NewBalanceDatabase(db), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
