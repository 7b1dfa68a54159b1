package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"bankledger/internal/models"
)

const (
	masterFileName = "banking_master.csv"
	recordsDirName = "records"
	savingsDirName = "saving"
	creditDirName  = "credit"
)

var (
	masterHeader = []string{"Type", "AccNum", "Name", "CurrentBalance", "Rate_Limit", "MinBal_Fee"}
	recordHeader = []string{"Date", "Time", "Transaction", "Amount", "New Balance"}
)

// CSVStore persists the registry to flat files under a data directory: a
// master snapshot with one row per account, and one append-only transaction
// log per account.
type CSVStore struct {
	dataDir string
}

// NewCSVStore creates the store and bootstraps its directory layout
func NewCSVStore(dataDir string) (*CSVStore, error) {
	for _, dir := range []string{
		dataDir,
		filepath.Join(dataDir, recordsDirName, savingsDirName),
		filepath.Join(dataDir, recordsDirName, creditDirName),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	return &CSVStore{dataDir: dataDir}, nil
}

func (s *CSVStore) masterPath() string {
	return filepath.Join(s.dataDir, masterFileName)
}

func (s *CSVStore) recordPath(account *models.Account) string {
	dir := savingsDirName
	if account.Kind == models.AccountKindCredit {
		dir = creditDirName
	}
	return filepath.Join(s.dataDir, recordsDirName, dir, fmt.Sprintf("acc_%d.csv", account.Number))
}

// Save rewrites the master snapshot atomically: the rows go to a temp file
// that replaces the real one only after a complete write
func (s *CSVStore) Save(accounts []*models.Account) error {
	path := s.masterPath()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(masterHeader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	for _, account := range accounts {
		row := toSnapshotRow(account)
		record := []string{row.Kind, row.Number, row.HolderName, row.Balance, row.RateOrLimit, row.MinOrFee}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write snapshot row for account %d: %w", account.Number, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	return os.Rename(tmp, path)
}

// Load reads the master snapshot and each account's transaction log. A
// missing snapshot is an empty ledger, not an error.
func (s *CSVStore) Load() ([]*models.Account, error) {
	f, err := os.Open(s.masterPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}

	var accounts []*models.Account
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot row: %w", err)
		}
		if len(record) < 6 {
			return nil, fmt.Errorf("malformed snapshot row: %v", record)
		}

		account, err := fromSnapshotRow(snapshotRow{
			Kind:        record[0],
			Number:      record[1],
			HolderName:  record[2],
			Balance:     record[3],
			RateOrLimit: record[4],
			MinOrFee:    record[5],
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

// AppendRecords appends history rows to the account's log file, writing the
// header first on a fresh file
func (s *CSVStore) AppendRecords(account *models.Account, records []models.TransactionRecord) error {
	path := s.recordPath(account)

	writeHeader := false
	if info, err := os.Stat(path); errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open transaction log for account %d: %w", account.Number, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(recordHeader); err != nil {
			return fmt.Errorf("failed to write transaction log header: %w", err)
		}
	}
	for _, record := range records {
		row := []string{
			record.Timestamp.Format(models.DateLayout),
			record.Timestamp.Format(models.TimeLayout),
			record.Kind,
			record.FormattedAmount(),
			record.FormattedBalance(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to append transaction record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// loadRecords reads an account's transaction log into memory. A missing log
// file means no history yet.
func (s *CSVStore) loadRecords(account *models.Account) error {
	f, err := os.Open(s.recordPath(account))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open transaction log for account %d: %w", account.Number, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to read transaction log header: %w", err)
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read transaction log for account %d: %w", account.Number, err)
		}
		if len(row) < 5 {
			return fmt.Errorf("malformed transaction row for account %d: %v", account.Number, row)
		}

		timestamp, err := time.ParseInLocation(
			models.DateLayout+" "+models.TimeLayout, row[0]+" "+row[1], time.Local)
		if err != nil {
			return fmt.Errorf("invalid timestamp in transaction log for account %d: %w", account.Number, err)
		}
		amount, err := decimal.NewFromString(row[3])
		if err != nil {
			return fmt.Errorf("invalid amount in transaction log for account %d: %w", account.Number, err)
		}
		balance, err := decimal.NewFromString(row[4])
		if err != nil {
			return fmt.Errorf("invalid balance in transaction log for account %d: %w", account.Number, err)
		}

		account.Records = append(account.Records, models.TransactionRecord{
			Timestamp: timestamp,
			Kind:      row[2],
			Amount:    amount,
			Balance:   balance,
		})
	}

	return nil
}
