package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sangkips/warehouse-api/internal/application/calculator"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"github.com/sangkips/warehouse-api/pkg/utils"
	"go.uber.org/zap"
)

// View is the screen the receiving workflow is on
type View string

const (
	ViewList View = "list"
	ViewForm View = "form"
)

// Banner messages
const (
	BannerLoadFallback   = "Could not connect to database. Using local storage fallback."
	BannerSaveFallback   = "Could not save to database. Using local storage fallback."
	BannerSaveFailed     = "Failed to save data: "
	BannerDeleteFallback = "Item removed from local storage (database connection failed)."
	BannerDeleteFailed   = "Failed to delete item from database. Please try again."
)

// BannerKind separates fallback warnings from failures
type BannerKind string

const (
	BannerWarning BannerKind = "warning"
	BannerError   BannerKind = "error"
)

var (
	ErrDeleteNotConfirmed = apperror.NewBadRequestError("Deletion was not confirmed")
	ErrFormNotOpen        = apperror.NewConflictError("No receiving form is open")
	ErrFormAlreadyOpen    = apperror.NewConflictError("A receiving form is already open")
)

// Banner is the dismissible message shown above the receiving screens
type Banner struct {
	Message string     `json:"message"`
	Kind    BannerKind `json:"kind"`
}

// ConfirmFunc asks the operator to approve deleting tx
type ConfirmFunc func(tx entity.ReceivingTransaction) bool

// HeaderUpdate changes the draft header; nil fields are left alone
type HeaderUpdate struct {
	Supplier *string
	DateTime *string
	Remarks  *string
}

// DraftState is the open form
type DraftState struct {
	Transaction entity.ReceivingTransaction `json:"transaction"`
	Editing     bool                        `json:"editing"`
	Advisories  []Advisory                  `json:"advisories"`
}

// WorkflowState is a snapshot of one operator's receiving screens
type WorkflowState struct {
	View          View                          `json:"view"`
	Transactions  []entity.ReceivingTransaction `json:"transactions"`
	SelectedID    string                        `json:"selectedId,omitempty"`
	Draft         *DraftState                   `json:"draft,omitempty"`
	UsingFallback bool                          `json:"usingFallback"`
	Banner        *Banner                       `json:"banner,omitempty"`
	WarehouseID   int64                         `json:"warehouseId"`
	Loaded        bool                          `json:"loaded"`
}

// ReceivingWorkflow drives the list and form screens of one operator.
// Calls are serialised, so at most one store operation is in flight.
type ReceivingWorkflow struct {
	mu sync.Mutex

	store  ReceivingStore
	logger *zap.Logger
	user   entity.User
	now    func() time.Time
	intN   utils.IntN

	view          View
	transactions  []entity.ReceivingTransaction
	selectedID    string
	editor        *LineItemEditor
	usingFallback bool
	banner        *Banner
	warehouseID   int64
	loaded        bool
}

// NewReceivingWorkflow creates the workflow of user, starting on the list view
func NewReceivingWorkflow(store ReceivingStore, user entity.User, warehouseID int64, logger *zap.Logger) *ReceivingWorkflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	if warehouseID == 0 {
		warehouseID = DefaultOwnerID
	}
	return &ReceivingWorkflow{
		store:        store,
		logger:       logger.With(zap.Int64("user_id", user.ID)),
		user:         user,
		now:          time.Now,
		intN:         utils.DefaultIntN,
		view:         ViewList,
		transactions: []entity.ReceivingTransaction{},
		warehouseID:  warehouseID,
	}
}

// State returns a snapshot without changing anything
func (w *ReceivingWorkflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Load refreshes the list from the store
func (w *ReceivingWorkflow) Load(ctx context.Context) WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.banner = nil
	list, source := w.store.List(ctx)
	for i := range list {
		w.fillReceivedBy(&list[i])
	}
	w.transactions = list
	w.loaded = true

	if source == SourceLocalMirror {
		w.usingFallback = true
		w.banner = &Banner{Message: BannerLoadFallback, Kind: BannerWarning}
	} else {
		w.usingFallback = false
	}
	return w.snapshot()
}

// OpenNew opens the form on an empty draft with a fresh receive number
func (w *ReceivingWorkflow) OpenNew() (WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != ViewList {
		return w.snapshot(), ErrFormAlreadyOpen
	}
	draft := &entity.ReceivingTransaction{
		ReceiveNo:   utils.GenerateReceiveNo(w.intN),
		DateTime:    w.now().Format(entity.DateTimeLayout),
		ReceivedBy:  w.user.DisplayName(),
		WarehouseID: w.warehouseID,
		UserID:      w.user.ID,
		Items:       []entity.LineItem{},
		ReturnItems: []entity.LineItem{},
	}
	calculator.ComputeTotals(nil, nil).Apply(draft)

	w.selectedID = ""
	w.editor = NewLineItemEditor(draft, w.intN)
	w.view = ViewForm
	return w.snapshot(), nil
}

// OpenEdit opens the form on a copy of the transaction with the given id
func (w *ReceivingWorkflow) OpenEdit(id string) (WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != ViewList {
		return w.snapshot(), ErrFormAlreadyOpen
	}
	idx := w.indexOf(id)
	if idx < 0 {
		return w.snapshot(), apperror.NewNotFoundError("Receiving transaction")
	}

	draft := w.transactions[idx].Clone()
	w.selectedID = id
	w.editor = NewLineItemEditor(&draft, w.intN)
	w.view = ViewForm
	return w.snapshot(), nil
}

// UpdateHeader edits supplier, date and remarks of the open draft
func (w *ReceivingWorkflow) UpdateHeader(in HeaderUpdate) (WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != ViewForm {
		return w.snapshot(), ErrFormNotOpen
	}
	draft := w.editor.Draft()
	if in.Supplier != nil {
		draft.Supplier = *in.Supplier
	}
	if in.DateTime != nil {
		draft.DateTime = *in.DateTime
	}
	if in.Remarks != nil {
		draft.Remarks = *in.Remarks
	}
	return w.snapshot(), nil
}

// AddItem appends an item from the add-item dialog
func (w *ReceivingWorkflow) AddItem(in NewLineItem) (WorkflowState, error) {
	return w.edit(func(e *LineItemEditor) error {
		_, err := e.AddItem(in)
		return err
	})
}

// UpdateItem changes one field of the item at index
func (w *ReceivingWorkflow) UpdateItem(index int, field, value string) (WorkflowState, error) {
	return w.edit(func(e *LineItemEditor) error {
		_, err := e.UpdateItem(index, field, value)
		return err
	})
}

// RemoveItem deletes the item at index
func (w *ReceivingWorkflow) RemoveItem(index int) (WorkflowState, error) {
	return w.edit(func(e *LineItemEditor) error {
		return e.RemoveItem(index)
	})
}

// AddReturnItem appends a returned line to the draft
func (w *ReceivingWorkflow) AddReturnItem(item entity.LineItem) (WorkflowState, error) {
	return w.edit(func(e *LineItemEditor) error {
		e.AddReturnItem(item)
		return nil
	})
}

// RemoveReturnItem deletes the return line at index
func (w *ReceivingWorkflow) RemoveReturnItem(index int) (WorkflowState, error) {
	return w.edit(func(e *LineItemEditor) error {
		return e.RemoveReturnItem(index)
	})
}

// Submit validates and saves the draft. Validation errors return before the
// store is called. A store failure keeps the form open behind an error banner.
func (w *ReceivingWorkflow) Submit(ctx context.Context) (WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != ViewForm {
		return w.snapshot(), ErrFormNotOpen
	}
	if err := w.editor.Validate(); err != nil {
		return w.snapshot(), err
	}

	w.banner = nil
	draft := w.editor.Draft()
	calculator.Recalculate(draft)
	if draft.Supplier == "" {
		draft.Supplier = entity.UnknownSupplier
	}
	if draft.WarehouseID == 0 {
		draft.WarehouseID = w.warehouseID
	}
	if draft.UserID == 0 {
		draft.UserID = w.user.ID
	}

	var (
		saved  *entity.ReceivingTransaction
		source Source
		err    error
	)
	if w.selectedID != "" {
		saved, source, err = w.store.Update(ctx, w.selectedID, *draft)
	} else {
		saved, source, err = w.store.Create(ctx, *draft)
	}
	if err != nil {
		w.logger.Error("receiving save failed", zap.String("receive_no", draft.ReceiveNo), zap.Error(err), responseBody(err))
		w.banner = &Banner{Message: BannerSaveFailed + err.Error(), Kind: BannerError}
		return w.snapshot(), apperror.NewUpstreamError(w.banner.Message, err)
	}

	if source == SourceLocalMirror {
		w.usingFallback = true
		w.banner = &Banner{Message: BannerSaveFallback, Kind: BannerWarning}
	} else {
		w.usingFallback = false
	}

	result := *saved
	// Return lines are not stored; keep the submitted ones.
	result.ReturnItems = append([]entity.LineItem{}, draft.ReturnItems...)
	result.ReturnTotalAmount = draft.ReturnTotalAmount
	result.NetAmount = draft.NetAmount
	w.fillReceivedBy(&result)

	if w.selectedID != "" {
		if idx := w.indexOf(w.selectedID); idx >= 0 {
			w.transactions[idx] = result
		} else {
			w.transactions = append([]entity.ReceivingTransaction{result}, w.transactions...)
		}
	} else {
		w.transactions = append([]entity.ReceivingTransaction{result}, w.transactions...)
	}

	w.closeForm()
	return w.snapshot(), nil
}

// Cancel discards the draft and returns to the list
func (w *ReceivingWorkflow) Cancel() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closeForm()
	return w.snapshot()
}

// Delete removes a listed transaction once confirm approves it. The list
// changes only after the store has answered.
func (w *ReceivingWorkflow) Delete(ctx context.Context, id string, confirm ConfirmFunc) (WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexOf(id)
	if idx < 0 {
		return w.snapshot(), apperror.NewNotFoundError("Receiving transaction")
	}
	if confirm == nil || !confirm(w.transactions[idx]) {
		return w.snapshot(), ErrDeleteNotConfirmed
	}

	w.banner = nil
	err := w.store.Delete(ctx, id)

	var fallback *FallbackError
	switch {
	case err == nil:
		w.removeTransaction(id)
	case errors.As(err, &fallback):
		w.removeTransaction(id)
		w.usingFallback = true
		w.banner = &Banner{Message: BannerDeleteFallback, Kind: BannerWarning}
	default:
		w.logger.Error("receiving delete failed", zap.String("id", id), zap.Error(err))
		w.banner = &Banner{Message: BannerDeleteFailed, Kind: BannerError}
		return w.snapshot(), apperror.NewUpstreamError(BannerDeleteFailed, err)
	}
	return w.snapshot(), nil
}

// DismissBanner hides the current banner
func (w *ReceivingWorkflow) DismissBanner() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.banner = nil
	return w.snapshot()
}

// SelectWarehouse sets the warehouse stamped on drafts opened from now on
func (w *ReceivingWorkflow) SelectWarehouse(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id == 0 {
		id = DefaultOwnerID
	}
	w.warehouseID = id
}

// Transactions returns a copy of the listed transactions
func (w *ReceivingWorkflow) Transactions() []entity.ReceivingTransaction {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]entity.ReceivingTransaction, len(w.transactions))
	for i, tx := range w.transactions {
		out[i] = tx.Clone()
	}
	return out
}

func (w *ReceivingWorkflow) edit(fn func(e *LineItemEditor) error) (WorkflowState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != ViewForm {
		return w.snapshot(), ErrFormNotOpen
	}
	if err := fn(w.editor); err != nil {
		return w.snapshot(), err
	}
	w.editor.Totals().Apply(w.editor.Draft())
	return w.snapshot(), nil
}

func (w *ReceivingWorkflow) closeForm() {
	w.view = ViewList
	w.selectedID = ""
	w.editor = nil
}

func (w *ReceivingWorkflow) indexOf(id string) int {
	for i := range w.transactions {
		if w.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *ReceivingWorkflow) removeTransaction(id string) {
	if idx := w.indexOf(id); idx >= 0 {
		w.transactions = append(w.transactions[:idx], w.transactions[idx+1:]...)
	}
}

func (w *ReceivingWorkflow) fillReceivedBy(tx *entity.ReceivingTransaction) {
	if tx.ReceivedBy == "" {
		tx.ReceivedBy = w.user.DisplayName()
	}
}

func (w *ReceivingWorkflow) snapshot() WorkflowState {
	state := WorkflowState{
		View:          w.view,
		Transactions:  make([]entity.ReceivingTransaction, len(w.transactions)),
		SelectedID:    w.selectedID,
		UsingFallback: w.usingFallback,
		WarehouseID:   w.warehouseID,
		Loaded:        w.loaded,
	}
	for i, tx := range w.transactions {
		state.Transactions[i] = tx.Clone()
	}
	if w.banner != nil {
		b := *w.banner
		state.Banner = &b
	}
	if w.view == ViewForm && w.editor != nil {
		state.Draft = &DraftState{
			Transaction: w.editor.Draft().Clone(),
			Editing:     w.selectedID != "",
			Advisories:  w.editor.Advisories(),
		}
	}
	return state
}
