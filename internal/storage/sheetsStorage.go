package storage

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Колонки листа: user_id | username | balance | last_update
const (
	sheetsColumns     = "A:D"
	sheetsTimeLayout  = "2006-01-02 15:04:05"
	sheetsValueInput  = "RAW"
	sheetsValueRender = "UNFORMATTED_VALUE"
)

var startRowPattern = regexp.MustCompile(`![A-Z]+(\d+)`)

// SheetsStorage - балансы в таблице Google Sheets. Поиск строки линейный,
// чтение и запись не атомарны: одновременные подтверждения одного пользователя
// могут потерять пополнение
type SheetsStorage struct {
	Service       *sheets.Service
	SpreadsheetID string
	SheetName     string
	Now           func() time.Time
}

// NewSheetsStorage - клиент создаётся один раз по файлу сервисного аккаунта
func NewSheetsStorage(ctx context.Context, credentialsFile string, spreadsheetID string, sheetName string) (*SheetsStorage, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty: %w", ErrNotConfigured)
	}
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return NewSheetsStorageWithService(service, spreadsheetID, sheetName), nil
}

func NewSheetsStorageWithService(service *sheets.Service, spreadsheetID string, sheetName string) *SheetsStorage {
	return &SheetsStorage{
		Service:       service,
		SpreadsheetID: spreadsheetID,
		SheetName:     sheetName,
		Now:           time.Now,
	}
}

func (s *SheetsStorage) ApplyDelta(ctx context.Context, userID string, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if userID == "" {
		return decimal.Zero, ErrUserIDRequired
	}

	resp, err := s.Service.Spreadsheets.Values.Get(s.SpreadsheetID, s.sheetRange(sheetsColumns)).
		ValueRenderOption(sheetsValueRender).
		Context(ctx).
		Do()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balances: %w", err)
	}

	now := s.Now().UTC()
	firstRow := startRow(resp.Range)

	for i, row := range resp.Values {
		if cell(row, 0) != userID {
			continue
		}
		record, err := parseRow(row)
		if err != nil {
			return decimal.Zero, fmt.Errorf("user %s: %w", userID, err)
		}
		record.Balance = record.Balance.Add(amount)
		record.LastUpdate = now
		if username != "" {
			record.Username = username
		}

		rowNumber := firstRow + i
		rowRange := s.sheetRange(fmt.Sprintf("A%d:D%d", rowNumber, rowNumber))
		_, err = s.Service.Spreadsheets.Values.Update(s.SpreadsheetID, rowRange, &sheets.ValueRange{
			Values: [][]interface{}{recordValues(record)},
		}).ValueInputOption(sheetsValueInput).Context(ctx).Do()
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to update balance row %d: %w", rowNumber, err)
		}
		logger.Debug("Balance updated", "user_id", userID, "row", rowNumber, "balance", record.Balance.String())
		return record.Balance, nil
	}

	if username == "" {
		username = models.DefaultUsername
	}
	record := models.BalanceRecord{
		UserID:     userID,
		Username:   username,
		Balance:    amount,
		LastUpdate: now,
	}
	_, err = s.Service.Spreadsheets.Values.Append(s.SpreadsheetID, s.sheetRange(sheetsColumns), &sheets.ValueRange{
		Values: [][]interface{}{recordValues(record)},
	}).ValueInputOption(sheetsValueInput).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to append balance row: %w", err)
	}
	logger.Debug("Balance row created", "user_id", userID, "balance", amount.String())
	return amount, nil
}

func (s *SheetsStorage) Close() error {
	return nil
}

func (s *SheetsStorage) sheetRange(cells string) string {
	if s.SheetName == "" {
		return cells
	}
	return s.SheetName + "!" + cells
}

// startRow - номер первой строки из диапазона ответа ("Balances!A1:D10" -> 1)
func startRow(rangeA1 string) int {
	match := startRowPattern.FindStringSubmatch(rangeA1)
	if len(match) != 2 {
		return 1
	}
	row, err := strconv.Atoi(match[1])
	if err != nil || row < 1 {
		return 1
	}
	return row
}

func parseRow(row []interface{}) (models.BalanceRecord, error) {
	record := models.BalanceRecord{
		UserID:   cell(row, 0),
		Username: cell(row, 1),
		Balance:  decimal.Zero,
	}
	if record.Username == "" {
		record.Username = models.DefaultUsername
	}
	if raw := cell(row, 2); raw != "" {
		balance, err := decimal.NewFromString(normalizeNumber(raw))
		if err != nil {
			return record, fmt.Errorf("%w %q: %v", ErrInvalidBalance, raw, err)
		}
		record.Balance = balance
	}
	if raw := cell(row, 3); raw != "" {
		if ts, err := time.Parse(sheetsTimeLayout, raw); err == nil {
			record.LastUpdate = ts
		}
	}
	return record, nil
}

func recordValues(record models.BalanceRecord) []interface{} {
	return []interface{}{
		record.UserID,
		record.Username,
		record.Balance.String(),
		record.LastUpdate.Format(sheetsTimeLayout),
	}
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// значения, введённые в таблицу вручную, бывают с пробелами и запятой
func normalizeNumber(raw string) string {
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	return strings.ReplaceAll(raw, ",", ".")
}
