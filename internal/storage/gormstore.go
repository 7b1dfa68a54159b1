package storage

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bankledger/internal/models"
)

// accountEntity is the SQLite shape of a snapshot row. The autoincrement id
// preserves registry order across a save/load cycle.
type accountEntity struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Number      int    `gorm:"uniqueIndex;not null"`
	Kind        string `gorm:"type:varchar(10);not null"`
	HolderName  string `gorm:"not null"`
	Balance     string `gorm:"not null"`
	RateOrLimit string `gorm:"not null"`
	MinOrFee    string `gorm:"not null"`
}

func (accountEntity) TableName() string { return "accounts" }

// transactionEntity is one persisted history record
type transactionEntity struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	AccountNumber int       `gorm:"index;not null"`
	Timestamp     time.Time `gorm:"not null"`
	Kind          string    `gorm:"not null"`
	Amount        string    `gorm:"not null"`
	Balance       string    `gorm:"not null"`
	Reference     string
}

func (transactionEntity) TableName() string { return "transactions" }

// GormStore persists the registry to a SQLite database through gorm.
// Monetary values are stored as strings to keep decimal exactness.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the SQLite database and migrates its schema
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&accountEntity{}, &transactionEntity{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Save replaces the full account snapshot in one transaction
func (s *GormStore) Save(accounts []*models.Account) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&accountEntity{}).Error; err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		for _, account := range accounts {
			row := toSnapshotRow(account)
			entity := accountEntity{
				Number:      account.Number,
				Kind:        row.Kind,
				HolderName:  row.HolderName,
				Balance:     row.Balance,
				RateOrLimit: row.RateOrLimit,
				MinOrFee:    row.MinOrFee,
			}
			if err := tx.Create(&entity).Error; err != nil {
				return fmt.Errorf("failed to save account %d: %w", account.Number, err)
			}
		}
		return nil
	})
}

// Load reads every account and its transaction history
func (s *GormStore) Load() ([]*models.Account, error) {
	var entities []accountEntity
	if err := s.db.Order("id").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	accounts := make([]*models.Account, 0, len(entities))
	for _, entity := range entities {
		account, err := fromSnapshotRow(snapshotRow{
			Kind:        entity.Kind,
			Number:      fmt.Sprintf("%d", entity.Number),
			HolderName:  entity.HolderName,
			Balance:     entity.Balance,
			RateOrLimit: entity.RateOrLimit,
			MinOrFee:    entity.MinOrFee,
		})
		if err != nil {
			return nil, err
		}
		if err := s.loadRecords(account); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// AppendRecords inserts new history records for the account
func (s *GormStore) AppendRecords(account *models.Account, records []models.TransactionRecord) error {
	entities := make([]transactionEntity, 0, len(records))
	for _, record := range records {
		entities = append(entities, transactionEntity{
			AccountNumber: account.Number,
			Timestamp:     record.Timestamp,
			Kind:          record.Kind,
			Amount:        record.FormattedAmount(),
			Balance:       record.FormattedBalance(),
			Reference:     record.Reference,
		})
	}
	if len(entities) == 0 {
		return nil
	}
	if err := s.db.Create(&entities).Error; err != nil {
		return fmt.Errorf("failed to append records for account %d: %w", account.Number, err)
	}
	return nil
}

func (s *GormStore) loadRecords(account *models.Account) error {
	var entities []transactionEntity
	if err := s.db.Where("account_number = ?", account.Number).Order("id").Find(&entities).Error; err != nil {
		return fmt.Errorf("failed to load records for account %d: %w", account.Number, err)
	}
	for _, entity := range entities {
		amount, err := decimal.NewFromString(entity.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount in record %d: %w", entity.ID, err)
		}
		balance, err := decimal.NewFromString(entity.Balance)
		if err != nil {
			return fmt.Errorf("invalid balance in record %d: %w", entity.ID, err)
		}
		account.Records = append(account.Records, models.TransactionRecord{
			Timestamp: entity.Timestamp,
			Kind:      entity.Kind,
			Amount:    amount,
			Balance:   balance,
			Reference: entity.Reference,
		})
	}
	return nil
}
