package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/warehouse-api/internal/application/calculator"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Source tells which store served an operation
type Source string

const (
	SourceRemote      Source = "remote"
	SourceLocalMirror Source = "local_mirror"
)

// DefaultOwnerID is stamped as warehouse and user when a transaction has none
const DefaultOwnerID int64 = 1

var errNotInMirror = errors.New("transaction not found in local mirror")

// FallbackError reports an operation that failed remotely but succeeded on the local mirror.
// It unwraps to the remote error.
type FallbackError struct {
	Op  string
	ID  entity.RecordID
	Err error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%s %s applied to local mirror only: %v", e.Op, e.ID, e.Err)
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}

// ReceivingStore persists receiving transactions
type ReceivingStore interface {
	List(ctx context.Context) ([]entity.ReceivingTransaction, Source)
	Create(ctx context.Context, tx entity.ReceivingTransaction) (*entity.ReceivingTransaction, Source, error)
	Update(ctx context.Context, id string, tx entity.ReceivingTransaction) (*entity.ReceivingTransaction, Source, error)
	Delete(ctx context.Context, id string) error
}

// TransactionStore writes to the remote API first and falls back to the local mirror
type TransactionStore struct {
	api    repository.ReceivingAPI
	mirror repository.ReceivingMirror
	logger *zap.Logger
	now    func() time.Time

	idMu   sync.Mutex
	lastID int64
}

// NewTransactionStore creates a store over the remote API and the local mirror
func NewTransactionStore(api repository.ReceivingAPI, mirror repository.ReceivingMirror, logger *zap.Logger) *TransactionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionStore{
		api:    api,
		mirror: mirror,
		logger: logger,
		now:    time.Now,
	}
}

var _ ReceivingStore = (*TransactionStore)(nil)

// List returns the remote transactions, or the mirrored ones when the remote fails.
// It never fails; an unreadable mirror yields an empty list.
func (s *TransactionStore) List(ctx context.Context) ([]entity.ReceivingTransaction, Source) {
	records, err := s.api.ListReceiving(ctx)
	if err == nil {
		return RecordsToTransactions(records), SourceRemote
	}
	s.logger.Warn("remote list failed, reading local mirror", zap.Error(err), responseBody(err))

	records, err = s.mirror.Load(ctx)
	if err != nil {
		s.logger.Error("local mirror unreadable", zap.Error(err))
		return []entity.ReceivingTransaction{}, SourceLocalMirror
	}
	return RecordsToTransactions(records), SourceLocalMirror
}

// Create stores a new transaction. On remote failure the record gets a local id
// and is put at the front of the mirror.
func (s *TransactionStore) Create(ctx context.Context, tx entity.ReceivingTransaction) (*entity.ReceivingTransaction, Source, error) {
	record := TransactionToRecord(tx, "", s.now())

	saved, remoteErr := s.api.CreateReceiving(ctx, &record)
	if remoteErr == nil {
		out := RecordToTransaction(*saved)
		return &out, SourceRemote, nil
	}
	s.logger.Warn("remote create failed, saving to local mirror",
		zap.String("receive_no", tx.ReceiveNo), zap.Error(remoteErr), responseBody(remoteErr))

	record.ID = s.nextLocalID()
	assignItemIDs(record.Items)
	err := s.mirror.Mutate(ctx, func(records []entity.TransactionRecord) ([]entity.TransactionRecord, error) {
		return append([]entity.TransactionRecord{record}, records...), nil
	})
	if err != nil {
		s.logger.Error("local mirror create failed", zap.String("receive_no", tx.ReceiveNo), zap.Error(err))
		return nil, "", remoteErr
	}

	out := RecordToTransaction(record)
	return &out, SourceLocalMirror, nil
}

// Update replaces a transaction. On remote failure the mirrored record with the
// same id is replaced in place, keeping its id, timestamp and owners.
func (s *TransactionStore) Update(ctx context.Context, id string, tx entity.ReceivingTransaction) (*entity.ReceivingTransaction, Source, error) {
	recordID := entity.RecordID(id)
	record := TransactionToRecord(tx, recordID, s.now())

	saved, remoteErr := s.api.UpdateReceiving(ctx, recordID, &record)
	if remoteErr == nil {
		out := RecordToTransaction(*saved)
		return &out, SourceRemote, nil
	}
	s.logger.Warn("remote update failed, updating local mirror", zap.String("id", id), zap.Error(remoteErr), responseBody(remoteErr))

	var updated entity.TransactionRecord
	err := s.mirror.Mutate(ctx, func(records []entity.TransactionRecord) ([]entity.TransactionRecord, error) {
		for i := range records {
			if records[i].ID != recordID {
				continue
			}
			existing := records[i]
			existing.TransactionID = record.TransactionID
			existing.Supplier = record.Supplier
			existing.TotalAmount = record.TotalAmount
			existing.Notes = record.Notes
			existing.Items = record.Items
			assignItemIDs(existing.Items)
			records[i] = existing
			updated = existing
			return records, nil
		}
		return nil, errNotInMirror
	})
	if err != nil {
		s.logger.Error("local mirror update failed", zap.String("id", id), zap.Error(err))
		return nil, "", remoteErr
	}

	out := RecordToTransaction(updated)
	return &out, SourceLocalMirror, nil
}

// Delete removes a transaction. When only the mirror could be updated the
// returned error is a *FallbackError wrapping the remote error.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	recordID := entity.RecordID(id)
	remoteErr := s.api.DeleteReceiving(ctx, recordID)
	if remoteErr == nil {
		return nil
	}
	s.logger.Warn("remote delete failed, deleting from local mirror", zap.String("id", id), zap.Error(remoteErr), responseBody(remoteErr))

	removed := 0
	err := s.mirror.Mutate(ctx, func(records []entity.TransactionRecord) ([]entity.TransactionRecord, error) {
		kept := make([]entity.TransactionRecord, 0, len(records))
		for _, r := range records {
			if r.ID == recordID {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		s.logger.Error("local mirror delete failed", zap.String("id", id), zap.Error(err))
		return remoteErr
	}
	if removed == 0 {
		s.logger.Info("transaction was not in local mirror", zap.String("id", id))
	}
	return &FallbackError{Op: "delete", ID: recordID, Err: remoteErr}
}

// nextLocalID returns milliseconds since the epoch, strictly increasing within the process
func (s *TransactionStore) nextLocalID() entity.RecordID {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return entity.RecordID(strconv.FormatInt(ms, 10))
}

func assignItemIDs(items []entity.TransactionRecordItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = entity.RecordID(uuid.NewString())
		}
	}
}

// responseBody logs the upstream response excerpt some remote errors carry
func responseBody(err error) zap.Field {
	var withBody interface{ ResponseBody() string }
	if errors.As(err, &withBody) && withBody.ResponseBody() != "" {
		return zap.String("response_body", withBody.ResponseBody())
	}
	return zap.Skip()
}

// ExpandItems flattens line items into one record item per unit that has both
// a positive quantity and a positive price. Lines without a priced unit produce nothing.
func ExpandItems(items []entity.LineItem) []entity.TransactionRecordItem {
	out := []entity.TransactionRecordItem{}
	for i, item := range items {
		for _, unit := range enum.ReceivingUnits {
			q, ok := calculator.ParseUnitValue(item.Quantity.Get(unit))
			if !ok {
				continue
			}
			p, ok := calculator.ParseUnitValue(item.SupplierPrice.Get(unit))
			if !ok {
				continue
			}
			out = append(out, entity.TransactionRecordItem{
				Line:           i + 1,
				SystemCode:     item.SystemCode,
				SupplierCode:   item.SupplierCode,
				ItemType:       item.ItemType,
				ItemName:       item.ItemName,
				UnitType:       unit,
				Quantity:       entity.NewFixedDecimal(q),
				UnitPrice:      entity.NewFixedDecimal(p),
				Amount:         entity.NewFixedDecimal(q.Mul(p).Round(calculator.AmountPlaces)),
				RequiresReturn: item.RequiresReturn,
			})
		}
	}
	return out
}

// TransactionToRecord maps the draft shape to the stored shape. Missing owners
// default to DefaultOwnerID and a blank supplier to entity.UnknownSupplier.
func TransactionToRecord(tx entity.ReceivingTransaction, id entity.RecordID, timestamp time.Time) entity.TransactionRecord {
	warehouse := tx.WarehouseID
	if warehouse == 0 {
		warehouse = DefaultOwnerID
	}
	user := tx.UserID
	if user == 0 {
		user = DefaultOwnerID
	}
	supplier := tx.Supplier
	if supplier == "" {
		supplier = entity.UnknownSupplier
	}
	return entity.TransactionRecord{
		ID:              id,
		TransactionID:   tx.ReceiveNo,
		TransactionType: entity.TransactionTypeReceive,
		Warehouse:       warehouse,
		User:            user,
		Supplier:        supplier,
		TotalAmount:     entity.NewFixedDecimal(calculator.ParseAmount(tx.TotalAmount).Round(calculator.AmountPlaces)),
		Timestamp:       timestamp.UTC(),
		Notes:           tx.Remarks,
		Items:           ExpandItems(tx.Items),
	}
}

// RecordToTransaction maps the stored shape to the draft shape. Consecutive
// record items of the same product fold back into one line while each unit is filled once.
func RecordToTransaction(rec entity.TransactionRecord) entity.ReceivingTransaction {
	tx := entity.ReceivingTransaction{
		ID:          rec.ID.String(),
		ReceiveNo:   rec.TransactionID,
		Supplier:    rec.Supplier,
		WarehouseID: rec.Warehouse,
		UserID:      rec.User,
		Items:       regroupItems(rec.Items),
		ReturnItems: []entity.LineItem{},
		Remarks:     rec.Notes,
	}
	if !rec.Timestamp.IsZero() {
		tx.DateTime = rec.Timestamp.Local().Format(entity.DateTimeLayout)
	}
	tx.TotalAmount = calculator.FormatAmount(rec.TotalAmount.Decimal)
	tx.ReturnTotalAmount = calculator.FormatAmount(calculator.SumAmounts(tx.ReturnItems))
	tx.NetAmount = calculator.FormatAmount(rec.TotalAmount.Sub(calculator.ParseAmount(tx.ReturnTotalAmount)))
	return tx
}

// RecordsToTransactions maps a list of stored records, keeping their order
func RecordsToTransactions(records []entity.TransactionRecord) []entity.ReceivingTransaction {
	out := make([]entity.ReceivingTransaction, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordToTransaction(rec))
	}
	return out
}

// regroupItems rebuilds line items from record items. Items stamped with a line
// number merge by that number. Unstamped items merge into the previous line when
// they describe the same product and its unit slot is still free, so two remote
// lines of one product priced in different units come back as one line.
func regroupItems(items []entity.TransactionRecordItem) []entity.LineItem {
	lines := []entity.LineItem{}
	prevLine := 0
	for _, ri := range items {
		unit := ri.UnitType
		n := len(lines)
		sameLine := n > 0 && sameProduct(lines[n-1], ri)
		if ri.Line > 0 && prevLine > 0 {
			sameLine = sameLine && ri.Line == prevLine
		}
		prevLine = ri.Line
		if sameLine && unit.IsReceivingUnit() &&
			lines[n-1].Quantity.Get(unit) == "" && lines[n-1].SupplierPrice.Get(unit) == "" {
			setUnit(&lines[n-1], ri)
			lines[n-1].Amount = calculator.ItemAmount(lines[n-1])
			continue
		}

		line := entity.LineItem{
			SystemCode:     ri.SystemCode,
			SupplierCode:   ri.SupplierCode,
			ItemType:       ri.ItemType,
			ItemName:       ri.ItemName,
			RequiresReturn: ri.RequiresReturn,
		}
		if unit.IsReceivingUnit() {
			setUnit(&line, ri)
		}
		line.Amount = calculator.ItemAmount(line)
		lines = append(lines, line)
	}
	return lines
}

func sameProduct(line entity.LineItem, ri entity.TransactionRecordItem) bool {
	return line.SystemCode == ri.SystemCode &&
		line.SupplierCode == ri.SupplierCode &&
		line.ItemType == ri.ItemType &&
		line.ItemName == ri.ItemName &&
		line.RequiresReturn == ri.RequiresReturn
}

func setUnit(line *entity.LineItem, ri entity.TransactionRecordItem) {
	line.Quantity.Set(ri.UnitType, ri.Quantity.String())
	line.SupplierPrice.Set(ri.UnitType, ri.UnitPrice.StringFixed(calculator.AmountPlaces))
}
