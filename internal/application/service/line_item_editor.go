package service

import (
	"fmt"
	"strings"

	"github.com/sangkips/warehouse-api/internal/application/calculator"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"github.com/sangkips/warehouse-api/pkg/utils"
)

// ReturnAdvisory is shown for every item that requires a container return
const ReturnAdvisory = "This product requires bottle and shell return upon purchase."

// Editable line item fields. Price and quantity fields take a unit suffix,
// e.g. "supplierPrice.box".
const (
	FieldSystemCode    = "systemCode"
	FieldSupplierCode  = "supplierCode"
	FieldItemType      = "itemType"
	FieldItemName      = "itemName"
	FieldSupplierPrice = "supplierPrice"
	FieldQuantity      = "quantity"
)

// NewLineItem is the input of the add-item dialog
type NewLineItem struct {
	Supplier       string
	Category       string
	SystemCode     string
	SupplierCode   string
	ItemName       string
	ShellQuantity  string
	BottleQuantity string
}

// Advisory is a display-only note attached to one line item
type Advisory struct {
	Index      int    `json:"index"`
	SystemCode string `json:"systemCode"`
	ItemName   string `json:"itemName"`
	Message    string `json:"message"`
}

// LineItemEditor edits the items of one draft transaction in place
type LineItemEditor struct {
	draft *entity.ReceivingTransaction
	intN  utils.IntN
}

// NewLineItemEditor wraps draft. intN drives system code generation; nil uses the default source.
func NewLineItemEditor(draft *entity.ReceivingTransaction, intN utils.IntN) *LineItemEditor {
	if draft.Items == nil {
		draft.Items = []entity.LineItem{}
	}
	if draft.ReturnItems == nil {
		draft.ReturnItems = []entity.LineItem{}
	}
	return &LineItemEditor{draft: draft, intN: intN}
}

// Draft returns the transaction being edited
func (e *LineItemEditor) Draft() *entity.ReceivingTransaction {
	return e.draft
}

// AddItem appends an item built from the add-item dialog
func (e *LineItemEditor) AddItem(in NewLineItem) (entity.LineItem, error) {
	var fieldErrors apperror.FieldErrors
	if strings.TrimSpace(in.Supplier) == "" && strings.TrimSpace(e.draft.Supplier) == "" {
		fieldErrors.Add("supplier", "Supplier is required")
	}
	switch {
	case strings.TrimSpace(in.Category) == "":
		fieldErrors.Add("category", "Category is required")
	case !enum.ItemCategory(in.Category).IsValid():
		fieldErrors.Add("category", "Unknown category %q", in.Category)
	}
	if strings.TrimSpace(in.ItemName) == "" {
		fieldErrors.Add("itemName", "Item name is required")
	}
	if err := fieldErrors.Err(); err != nil {
		return entity.LineItem{}, err
	}

	systemCode := strings.TrimSpace(in.SystemCode)
	if systemCode == "" {
		systemCode = utils.GenerateSystemCode(in.Category, e.intN)
	}

	item := entity.LineItem{
		SystemCode:   systemCode,
		SupplierCode: in.SupplierCode,
		ItemType:     in.Category,
		ItemName:     in.ItemName,
		Quantity: entity.UnitValues{
			Bottle: in.BottleQuantity,
			Shell:  in.ShellQuantity,
		},
		RequiresReturn: enum.ItemCategory(in.Category).RequiresReturnOnIntake(),
	}
	item.Amount = calculator.ItemAmount(item)

	if strings.TrimSpace(e.draft.Supplier) == "" {
		e.draft.Supplier = strings.TrimSpace(in.Supplier)
	}
	e.draft.Items = append(e.draft.Items, item)
	return item, nil
}

// UpdateItem sets one field of the item at index. Price and quantity
// changes recompute the item amount before the item is stored back.
func (e *LineItemEditor) UpdateItem(index int, field, value string) (entity.LineItem, error) {
	if err := e.checkIndex(index, len(e.draft.Items), "index"); err != nil {
		return entity.LineItem{}, err
	}

	item := e.draft.Items[index]
	if err := applyField(&item, field, value); err != nil {
		return entity.LineItem{}, err
	}
	item.Amount = calculator.ItemAmount(item)
	e.draft.Items[index] = item
	return item, nil
}

// RemoveItem deletes the item at index; later items shift down
func (e *LineItemEditor) RemoveItem(index int) error {
	if err := e.checkIndex(index, len(e.draft.Items), "index"); err != nil {
		return err
	}
	e.draft.Items = append(e.draft.Items[:index], e.draft.Items[index+1:]...)
	return nil
}

// AddReturnItem appends a returned line; its amount counts against the total
func (e *LineItemEditor) AddReturnItem(item entity.LineItem) entity.LineItem {
	item.Amount = calculator.ItemAmount(item)
	e.draft.ReturnItems = append(e.draft.ReturnItems, item)
	return item
}

// RemoveReturnItem deletes the return item at index
func (e *LineItemEditor) RemoveReturnItem(index int) error {
	if err := e.checkIndex(index, len(e.draft.ReturnItems), "returnIndex"); err != nil {
		return err
	}
	e.draft.ReturnItems = append(e.draft.ReturnItems[:index], e.draft.ReturnItems[index+1:]...)
	return nil
}

// Validate reports missing item types and names, one field error per gap
func (e *LineItemEditor) Validate() error {
	var fieldErrors apperror.FieldErrors
	for i, item := range e.draft.Items {
		if strings.TrimSpace(item.ItemType) == "" {
			fieldErrors.Add(fmt.Sprintf("items[%d].itemType", i), "Item type is required")
		}
		if strings.TrimSpace(item.ItemName) == "" {
			fieldErrors.Add(fmt.Sprintf("items[%d].itemName", i), "Item name is required")
		}
	}
	return fieldErrors.Err()
}

// Advisories lists the items flagged for container return
func (e *LineItemEditor) Advisories() []Advisory {
	advisories := []Advisory{}
	for i, item := range e.draft.Items {
		if !item.RequiresReturn {
			continue
		}
		advisories = append(advisories, Advisory{
			Index:      i,
			SystemCode: item.SystemCode,
			ItemName:   item.ItemName,
			Message:    ReturnAdvisory,
		})
	}
	return advisories
}

// Totals derives the draft totals from the current item amounts
func (e *LineItemEditor) Totals() calculator.Totals {
	return calculator.ComputeTotals(e.draft.Items, e.draft.ReturnItems)
}

func (e *LineItemEditor) checkIndex(index, length int, field string) error {
	if index < 0 || index >= length {
		return apperror.NewValidationError([]apperror.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("Item index %d is out of range", index),
		}})
	}
	return nil
}

func applyField(item *entity.LineItem, field, value string) error {
	switch field {
	case FieldSystemCode:
		item.SystemCode = value
		return nil
	case FieldSupplierCode:
		item.SupplierCode = value
		return nil
	case FieldItemType:
		item.ItemType = value
		item.RequiresReturn = enum.ItemCategory(value).RequiresReturnOnReceipt()
		return nil
	case FieldItemName:
		item.ItemName = value
		return nil
	}

	group, unitName, ok := strings.Cut(field, ".")
	unit := enum.UnitType(unitName)
	if ok && unit.IsReceivingUnit() {
		switch group {
		case FieldSupplierPrice:
			item.SupplierPrice.Set(unit, value)
			return nil
		case FieldQuantity:
			item.Quantity.Set(unit, value)
			return nil
		}
	}

	return apperror.NewValidationError([]apperror.FieldError{{
		Field:   "field",
		Message: fmt.Sprintf("Unknown item field %q", field),
	}})
}
