package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	clientMocks "github.com/denmor86/ya-payrelay/internal/client/mocks"
	"github.com/denmor86/ya-payrelay/internal/config"
	"github.com/denmor86/ya-payrelay/internal/logger"
	"github.com/denmor86/ya-payrelay/internal/models"
	"github.com/denmor86/ya-payrelay/internal/storage"
	storageMocks "github.com/denmor86/ya-payrelay/internal/storage/mocks"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const (
	testAdminID   = "777"
	testAdminChat = int64(777)
	testMessageID = 15
	testCaption   = "Новая заявка"
)

func initLogger(t *testing.T) {
	t.Helper()
	if err := logger.Initialize(config.DefaultConfig().Server.LogLevel); err != nil {
		t.Fatalf("can't initialize logger: %v", err)
	}
}

// decimalEq сравнивает суммы по значению, а не по представлению
type decimalEq struct{ expected decimal.Decimal }

func (m decimalEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.expected)
}

func (m decimalEq) String() string {
	return "is equal to " + m.expected.String()
}

func newTestRelay(messenger *clientMocks.MockMessenger, balances storage.BalanceStorage) *Relay {
	return NewRelay(messenger, balances, fixedFormatter(), testAdminID)
}

func newCallback(fromID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: fromID},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: testMessageID,
			Chat:      &tgbotapi.Chat{ID: testAdminChat},
			Caption:   testCaption,
		},
	}
}

func TestRelay_HandleSubmission(t *testing.T) {
	initLogger(t)

	testCases := []struct {
		Name          string
		Request       models.PaymentRequest
		ExpectSend    bool
		SendError     error
		ExpectedError error
	}{
		{
			Name:       "Success. Valid submission #1",
			Request:    models.PaymentRequest{UserID: "42", Username: "@ann", Amount: "100", FileURL: "FILE123"},
			ExpectSend: true,
		},
		{
			Name:          "Error. Missing fields #2",
			Request:       models.PaymentRequest{UserID: "42"},
			ExpectedError: ErrValidation,
		},
		{
			Name:          "Error. Negative amount #3",
			Request:       models.PaymentRequest{UserID: "42", Amount: "-5", FileURL: "FILE123"},
			ExpectedError: ErrValidation,
		},
		{
			Name:          "Error. User id with delimiter #4",
			Request:       models.PaymentRequest{UserID: "4_2", Amount: "100", FileURL: "FILE123"},
			ExpectedError: ErrValidation,
		},
		{
			Name:          "Error. Amount finer than kopeck #6",
			Request:       models.PaymentRequest{UserID: "42", Amount: "0.001", FileURL: "FILE123"},
			ExpectedError: ErrValidation,
		},
		{
			Name:          "Error. Telegram failure #5",
			Request:       models.PaymentRequest{UserID: "42", Amount: "100", FileURL: "FILE123"},
			ExpectSend:    true,
			SendError:     errors.New("bad request"),
			ExpectedError: ErrUpstream,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			messenger := clientMocks.NewMockMessenger(ctrl)
			relay := newTestRelay(messenger, nil)

			var (
				gotCaption string
				gotButtons []models.Button
			)
			if tc.ExpectSend {
				messenger.EXPECT().
					SendDocument(gomock.Any(), testAdminID, "FILE123", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _, caption string, buttons []models.Button) error {
						gotCaption = caption
						gotButtons = buttons
						return tc.SendError
					}).
					Times(1)
			}

			err := relay.HandleSubmission(context.Background(), tc.Request)
			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Errorf("Expected error '%v', got: '%v'", tc.ExpectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: '%v'", err)
			}

			for _, part := range []string{"42", "100 ₽", "@ann"} {
				if !strings.Contains(gotCaption, part) {
					t.Errorf("caption %q does not contain %q", gotCaption, part)
				}
			}
			expected := []models.Button{
				{Text: "✅ Подтвердить", Data: "confirm_42_100"},
				{Text: "❌ Отклонить", Data: "reject_42_100"},
			}
			if diff := cmp.Diff(expected, gotButtons); len(diff) != 0 {
				t.Errorf("buttons mismatch:\n %s", diff)
			}
		})
	}
}

func TestRelay_HandleCallback_Confirm(t *testing.T) {
	initLogger(t)

	testCases := []struct {
		Name            string
		WithStorage     bool
		StorageError    error
		NotifyError     error
		ExpectedBalance string
	}{
		{Name: "Success. Balance accumulated #1", WithStorage: true, ExpectedBalance: "250 ₽"},
		{Name: "Degraded. No storage #2", ExpectedBalance: "100 ₽"},
		{Name: "Degraded. Storage failure #3", WithStorage: true, StorageError: errors.New("quota exceeded"), ExpectedBalance: "100 ₽"},
		{Name: "Success. User notification failure ignored #4", WithStorage: true, NotifyError: errors.New("blocked by user"), ExpectedBalance: "250 ₽"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			messenger := clientMocks.NewMockMessenger(ctrl)

			var balances storage.BalanceStorage
			var calls []any
			if tc.WithStorage {
				mockStorage := storageMocks.NewMockBalanceStorage(ctrl)
				balances = mockStorage
				var result decimal.Decimal
				if tc.StorageError == nil {
					result = decimal.NewFromInt(250)
				}
				calls = append(calls, mockStorage.EXPECT().
					ApplyDelta(gomock.Any(), "42", "", decimalEq{decimal.NewFromInt(100)}).
					Return(result, tc.StorageError))
			}

			calls = append(calls,
				messenger.EXPECT().
					EditCaption(gomock.Any(), testAdminChat, testMessageID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, _ int, caption string) error {
						if !strings.HasPrefix(caption, testCaption) || !strings.Contains(caption, tc.ExpectedBalance) {
							t.Errorf("unexpected caption %q", caption)
						}
						return nil
					}),
				messenger.EXPECT().
					SendText(gomock.Any(), "42", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, text string) error {
						if !strings.Contains(text, "100 ₽") || !strings.Contains(text, tc.ExpectedBalance) {
							t.Errorf("unexpected user text %q", text)
						}
						return tc.NotifyError
					}),
				messenger.EXPECT().AnswerCallback(gomock.Any(), "cb-1", AnswerConfirmed, false).Return(nil),
			)
			gomock.InOrder(calls...)

			relay := newTestRelay(messenger, balances)
			if err := relay.HandleCallback(context.Background(), newCallback(testAdminChat, "confirm_42_100")); err != nil {
				t.Errorf("Expected no error, got: '%v'", err)
			}
		})
	}
}

func TestRelay_HandleCallback_Reject(t *testing.T) {
	initLogger(t)
	ctrl := gomock.NewController(t)
	messenger := clientMocks.NewMockMessenger(ctrl)
	balances := storageMocks.NewMockBalanceStorage(ctrl)

	gomock.InOrder(
		messenger.EXPECT().
			EditCaption(gomock.Any(), testAdminChat, testMessageID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ int, caption string) error {
				if !strings.Contains(caption, "Отклонено") {
					t.Errorf("unexpected caption %q", caption)
				}
				return nil
			}),
		messenger.EXPECT().AnswerCallback(gomock.Any(), "cb-1", AnswerRejected, false).Return(nil),
	)
	balances.EXPECT().ApplyDelta(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	messenger.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	relay := newTestRelay(messenger, balances)
	if err := relay.HandleCallback(context.Background(), newCallback(testAdminChat, "reject_42_100")); err != nil {
		t.Errorf("Expected no error, got: '%v'", err)
	}
}

func TestRelay_HandleCallback_NonAdmin(t *testing.T) {
	initLogger(t)

	for _, data := range []string{"confirm_42_100", "reject_42_100", "garbage"} {
		t.Run(data, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			messenger := clientMocks.NewMockMessenger(ctrl)
			balances := storageMocks.NewMockBalanceStorage(ctrl)

			// кроме предупреждения никаких вызовов быть не должно
			messenger.EXPECT().AnswerCallback(gomock.Any(), "cb-1", AnswerAdminOnly, true).Return(nil).Times(1)

			relay := newTestRelay(messenger, balances)
			if err := relay.HandleCallback(context.Background(), newCallback(12345, data)); err != nil {
				t.Errorf("Expected no error, got: '%v'", err)
			}
		})
	}
}

func TestRelay_HandleCallback_Malformed(t *testing.T) {
	initLogger(t)

	testCases := []struct {
		Name  string
		Query *tgbotapi.CallbackQuery
	}{
		{Name: "Unknown action #1", Query: newCallback(testAdminChat, "refund_42_100")},
		{Name: "Too few parts #2", Query: newCallback(testAdminChat, "confirm_42")},
		{Name: "Invalid amount #3", Query: newCallback(testAdminChat, "confirm_42_abc")},
		{
			Name:  "Without message #4",
			Query: &tgbotapi.CallbackQuery{ID: "cb-1", From: &tgbotapi.User{ID: testAdminChat}, Data: "confirm_42_100"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			messenger := clientMocks.NewMockMessenger(ctrl)
			balances := storageMocks.NewMockBalanceStorage(ctrl)

			messenger.EXPECT().AnswerCallback(gomock.Any(), "cb-1", "", false).Return(nil).Times(1)

			relay := newTestRelay(messenger, balances)
			err := relay.HandleCallback(context.Background(), tc.Query)
			if !errors.Is(err, ErrMalformedCallback) {
				t.Errorf("Expected error '%v', got: '%v'", ErrMalformedCallback, err)
			}
		})
	}
}

// Повторное нажатие кнопки зачисляет сумму повторно
func TestRelay_HandleCallback_ConfirmTwice(t *testing.T) {
	initLogger(t)
	ctrl := gomock.NewController(t)
	messenger := clientMocks.NewMockMessenger(ctrl)
	balances := storageMocks.NewMockBalanceStorage(ctrl)

	gomock.InOrder(
		balances.EXPECT().ApplyDelta(gomock.Any(), "42", "", decimalEq{decimal.NewFromInt(100)}).Return(decimal.NewFromInt(100), nil),
		balances.EXPECT().ApplyDelta(gomock.Any(), "42", "", decimalEq{decimal.NewFromInt(100)}).Return(decimal.NewFromInt(200), nil),
	)
	messenger.EXPECT().EditCaption(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	messenger.EXPECT().SendText(gomock.Any(), "42", gomock.Any()).Return(nil).Times(2)
	messenger.EXPECT().AnswerCallback(gomock.Any(), "cb-1", AnswerConfirmed, false).Return(nil).Times(2)

	relay := newTestRelay(messenger, balances)
	for i := 0; i < 2; i++ {
		if err := relay.HandleCallback(context.Background(), newCallback(testAdminChat, "confirm_42_100")); err != nil {
			t.Fatalf("Expected no error, got: '%v'", err)
		}
	}
}

// ctxAlive проверяет, что исходящий вызов получил неотменённый контекст
func ctxAlive(t *testing.T, ctx context.Context, call string) {
	t.Helper()
	if err := ctx.Err(); err != nil {
		t.Errorf("%s called with finished context: %v", call, err)
	}
}

func TestRelay_HandleCallback_CallerGone(t *testing.T) {
	initLogger(t)
	ctrl := gomock.NewController(t)
	messenger := clientMocks.NewMockMessenger(ctrl)
	balances := storageMocks.NewMockBalanceStorage(ctrl)

	type requestIDKey struct{}
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), requestIDKey{}, "req-1"))
	defer cancel()

	gomock.InOrder(
		balances.EXPECT().
			ApplyDelta(gomock.Any(), "42", "", decimalEq{decimal.NewFromInt(100)}).
			DoAndReturn(func(ctx context.Context, _, _ string, _ decimal.Decimal) (decimal.Decimal, error) {
				// соединение оборвалось уже после зачисления
				cancel()
				return decimal.NewFromInt(100), nil
			}),
		messenger.EXPECT().
			EditCaption(gomock.Any(), testAdminChat, testMessageID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ int64, _ int, _ string) error {
				ctxAlive(t, ctx, "EditCaption")
				if ctx.Value(requestIDKey{}) != "req-1" {
					t.Errorf("context values are lost")
				}
				return nil
			}),
		messenger.EXPECT().
			SendText(gomock.Any(), "42", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ string) error {
				ctxAlive(t, ctx, "SendText")
				return nil
			}),
		messenger.EXPECT().
			AnswerCallback(gomock.Any(), "cb-1", AnswerConfirmed, false).
			DoAndReturn(func(ctx context.Context, _ string, _ string, _ bool) error {
				ctxAlive(t, ctx, "AnswerCallback")
				return nil
			}),
	)

	relay := newTestRelay(messenger, balances)
	if err := relay.HandleCallback(ctx, newCallback(testAdminChat, "confirm_42_100")); err != nil {
		t.Errorf("Expected no error, got: '%v'", err)
	}
}

func TestRelay_HandleSubmission_CallerGone(t *testing.T) {
	initLogger(t)
	ctrl := gomock.NewController(t)
	messenger := clientMocks.NewMockMessenger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	messenger.EXPECT().
		SendDocument(gomock.Any(), testAdminID, "FILE123", gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _, _ string, _ []models.Button) error {
			ctxAlive(t, ctx, "SendDocument")
			return nil
		})

	relay := newTestRelay(messenger, nil)
	err := relay.HandleSubmission(ctx, models.PaymentRequest{UserID: "42", Amount: "100", FileURL: "FILE123"})
	if err != nil {
		t.Errorf("Expected no error, got: '%v'", err)
	}
}

func TestRelay_HandleCallback_OutboundFailures(t *testing.T) {
	initLogger(t)
	ctrl := gomock.NewController(t)
	messenger := clientMocks.NewMockMessenger(ctrl)

	gomock.InOrder(
		messenger.EXPECT().EditCaption(gomock.Any(), testAdminChat, testMessageID, gomock.Any()).Return(context.DeadlineExceeded),
		messenger.EXPECT().SendText(gomock.Any(), "42", gomock.Any()).Return(context.DeadlineExceeded),
		messenger.EXPECT().AnswerCallback(gomock.Any(), "cb-1", AnswerConfirmed, false).Return(nil),
	)

	relay := newTestRelay(messenger, nil)
	if err := relay.HandleCallback(context.Background(), newCallback(testAdminChat, "confirm_42_100")); err != nil {
		t.Errorf("Expected no error, got: '%v'", err)
	}
}
