package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/core/filter"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

const (
	// DefaultTTL keeps a bank selection alive across a working day; an
	// operator who has been away longer starts from the bank picker.
	DefaultTTL = 12 * time.Hour

	// KeyPrefix is the prefix for bank selection keys
	KeyPrefix = "bank:selected:"
)

// BankStore is a Redis-backed store for each operator's last selected
// bank. Losing a value is harmless; the dashboard just shows the bank
// picker again.
type BankStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewBankStore creates a new bank selection store
func NewBankStore(client *redis.Client, log *logger.Logger) *BankStore {
	return &BankStore{
		client: client,
		ttl:    DefaultTTL,
		logger: log.WithField("component", "bankstore"),
	}
}

// NewBankStoreWithTTL creates a new bank selection store with custom TTL
func NewBankStoreWithTTL(client *redis.Client, ttl time.Duration, log *logger.Logger) *BankStore {
	return &BankStore{
		client: client,
		ttl:    ttl,
		logger: log.WithField("component", "bankstore"),
	}
}

// Save stores the operator's selection, refreshing the TTL.
func (s *BankStore) Save(ctx context.Context, operatorID, bankID string) error {
	key := KeyPrefix + operatorID

	if err := s.client.Set(ctx, key, bankID, s.ttl).Err(); err != nil {
		s.logger.Error("store error", "operation", "save", "operator_id", operatorID, "error", err)
		return fmt.Errorf("failed to save bank selection: %w", err)
	}
	return nil
}

// Load returns the operator's stored selection, or empty when none.
func (s *BankStore) Load(ctx context.Context, operatorID string) (string, error) {
	key := KeyPrefix + operatorID

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		s.logger.Debug("no stored bank selection", "operator_id", operatorID)
		return "", nil
	}
	if err != nil {
		s.logger.Error("store error", "operation", "load", "operator_id", operatorID, "error", err)
		return "", fmt.Errorf("failed to load bank selection: %w", err)
	}
	return val, nil
}

// Clear removes the operator's stored selection.
func (s *BankStore) Clear(ctx context.Context, operatorID string) error {
	return s.client.Del(ctx, KeyPrefix+operatorID).Err()
}

// For binds the store to one operator, satisfying the filter state's
// BankStore contract.
func (s *BankStore) For(operatorID string) filter.BankStore {
	return &operatorBankStore{store: s, operatorID: operatorID}
}

type operatorBankStore struct {
	store      *BankStore
	operatorID string
}

var _ filter.BankStore = (*operatorBankStore)(nil)

func (o *operatorBankStore) SaveBank(ctx context.Context, bankID string) error {
	return o.store.Save(ctx, o.operatorID, bankID)
}

func (o *operatorBankStore) LoadBank(ctx context.Context) (string, error) {
	return o.store.Load(ctx, o.operatorID)
}
