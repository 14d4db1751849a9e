package service

import (
	"regexp"
	"testing"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/pkg/apperror"
)

func fixedIntN(v int) func(int) int {
	return func(int) int { return v }
}

func TestAddItemContentWithoutPrice(t *testing.T) {
	draft := &entity.ReceivingTransaction{Supplier: "Royal"}
	editor := NewLineItemEditor(draft, nil)

	item, err := editor.AddItem(NewLineItem{
		Category:       "CONTENT",
		ItemName:       "Cola",
		BottleQuantity: "10",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Amount != "0.00" {
		t.Fatalf("amount = %s, want 0.00", item.Amount)
	}
	if !item.RequiresReturn {
		t.Fatal("CONTENT items require a return")
	}
	if !regexp.MustCompile(`^C-\d{5}$`).MatchString(item.SystemCode) {
		t.Fatalf("system code %q", item.SystemCode)
	}
	if item.ItemType != "CONTENT" || item.Quantity.Bottle != "10" {
		t.Fatalf("unexpected item %+v", item)
	}

	advisories := editor.Advisories()
	if len(advisories) != 1 || advisories[0].Message != ReturnAdvisory || advisories[0].Index != 0 {
		t.Fatalf("advisories = %+v", advisories)
	}
}

func TestAddItemKeepsManualCodeAndAdoptsSupplier(t *testing.T) {
	draft := &entity.ReceivingTransaction{}
	editor := NewLineItemEditor(draft, fixedIntN(1))

	item, err := editor.AddItem(NewLineItem{
		Supplier:   "Pepsi",
		Category:   "ONE WAY",
		SystemCode: "MANUAL-1",
		ItemName:   "Mountain Dew",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.SystemCode != "MANUAL-1" {
		t.Fatalf("system code %q", item.SystemCode)
	}
	if item.RequiresReturn {
		t.Fatal("ONE WAY items do not require a return")
	}
	if draft.Supplier != "Pepsi" {
		t.Fatalf("supplier %q", draft.Supplier)
	}

	if _, err := editor.AddItem(NewLineItem{Supplier: "Royal", Category: "CONTENT", ItemName: "Royal"}); err != nil {
		t.Fatal(err)
	}
	if draft.Supplier != "Pepsi" {
		t.Fatalf("supplier overwritten with %q", draft.Supplier)
	}
}

func TestAddItemRequiresSupplierCategoryAndName(t *testing.T) {
	editor := NewLineItemEditor(&entity.ReceivingTransaction{}, nil)
	_, err := editor.AddItem(NewLineItem{})
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := len(apperror.GetAppError(err).Errors); got != 3 {
		t.Fatalf("field errors = %d, want 3", got)
	}
	if len(editor.Draft().Items) != 0 {
		t.Fatal("invalid item must not be appended")
	}
}

func TestUpdateItemRecomputesAmount(t *testing.T) {
	draft := &entity.ReceivingTransaction{Supplier: "Royal"}
	editor := NewLineItemEditor(draft, nil)
	if _, err := editor.AddItem(NewLineItem{Category: "EMPTY SHELL", ItemName: "Shell"}); err != nil {
		t.Fatal(err)
	}

	if _, err := editor.UpdateItem(0, "supplierPrice.box", "10.00"); err != nil {
		t.Fatal(err)
	}
	item, err := editor.UpdateItem(0, "quantity.box", "3")
	if err != nil {
		t.Fatal(err)
	}
	if item.Amount != "30.00" || draft.Items[0].Amount != "30.00" {
		t.Fatalf("amount = %s, stored = %s", item.Amount, draft.Items[0].Amount)
	}

	totals := editor.Totals()
	if totals.Total.StringFixed(2) != "30.00" {
		t.Fatalf("total = %s", totals.Total.StringFixed(2))
	}
}

func TestUpdateItemTypeUsesReceiptRule(t *testing.T) {
	editor := NewLineItemEditor(&entity.ReceivingTransaction{Supplier: "Royal"}, nil)
	if _, err := editor.AddItem(NewLineItem{Category: "EMPTY BOTTLE", ItemName: "Bottle"}); err != nil {
		t.Fatal(err)
	}

	item, err := editor.UpdateItem(0, FieldItemType, "CONTENT")
	if err != nil {
		t.Fatal(err)
	}
	if item.RequiresReturn {
		t.Fatal("editing the type to CONTENT clears the return flag on the receiving form")
	}

	item, _ = editor.UpdateItem(0, FieldItemType, "EMPTY SHELL")
	if !item.RequiresReturn {
		t.Fatal("EMPTY SHELL requires a return")
	}
}

func TestUpdateItemRejectsUnknownFieldAndIndex(t *testing.T) {
	editor := NewLineItemEditor(&entity.ReceivingTransaction{Supplier: "Royal"}, nil)
	if _, err := editor.AddItem(NewLineItem{Category: "CONTENT", ItemName: "Cola"}); err != nil {
		t.Fatal(err)
	}

	for _, field := range []string{"amount", "quantity.pack", "supplierPrice", "quantity.crate"} {
		if _, err := editor.UpdateItem(0, field, "1"); !apperror.IsValidation(err) {
			t.Errorf("field %q: expected validation error, got %v", field, err)
		}
	}
	if _, err := editor.UpdateItem(5, FieldItemName, "x"); !apperror.IsValidation(err) {
		t.Fatalf("expected index error, got %v", err)
	}
}

func TestRemoveItemShiftsIndices(t *testing.T) {
	draft := &entity.ReceivingTransaction{Supplier: "Royal"}
	editor := NewLineItemEditor(draft, nil)
	for _, name := range []string{"A", "B", "C"} {
		if _, err := editor.AddItem(NewLineItem{Category: "CONTENT", ItemName: name}); err != nil {
			t.Fatal(err)
		}
	}

	if err := editor.RemoveItem(1); err != nil {
		t.Fatal(err)
	}
	if len(draft.Items) != 2 || draft.Items[0].ItemName != "A" || draft.Items[1].ItemName != "C" {
		t.Fatalf("items after remove: %+v", draft.Items)
	}
	if err := editor.RemoveItem(2); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestReturnItemsReduceNet(t *testing.T) {
	draft := &entity.ReceivingTransaction{Supplier: "Royal"}
	editor := NewLineItemEditor(draft, nil)
	if _, err := editor.AddItem(NewLineItem{Category: "CONTENT", ItemName: "Cola"}); err != nil {
		t.Fatal(err)
	}
	editor.UpdateItem(0, "supplierPrice.case", "100")
	editor.UpdateItem(0, "quantity.case", "2")

	ret := editor.AddReturnItem(entity.LineItem{
		ItemType:      "EMPTY SHELL",
		ItemName:      "Shell",
		SupplierPrice: entity.UnitValues{Shell: "5"},
		Quantity:      entity.UnitValues{Shell: "4"},
	})
	if ret.Amount != "20.00" {
		t.Fatalf("return amount %s", ret.Amount)
	}

	totals := editor.Totals()
	if totals.Net.StringFixed(2) != "180.00" {
		t.Fatalf("net = %s", totals.Net.StringFixed(2))
	}

	if err := editor.RemoveReturnItem(0); err != nil {
		t.Fatal(err)
	}
	if len(draft.ReturnItems) != 0 {
		t.Fatal("return item not removed")
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	draft := &entity.ReceivingTransaction{
		Items: []entity.LineItem{
			{ItemType: "CONTENT", ItemName: "Cola"},
			{ItemType: "", ItemName: "Sprite"},
			{ItemType: "CONTENT", ItemName: " "},
		},
	}
	err := NewLineItemEditor(draft, nil).Validate()
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := apperror.GetAppError(err).Errors
	if len(fields) != 2 || fields[0].Field != "items[1].itemType" || fields[1].Field != "items[2].itemName" {
		t.Fatalf("field errors = %+v", fields)
	}
}

func TestAddItemRejectsUnknownCategory(t *testing.T) {
	editor := NewLineItemEditor(&entity.ReceivingTransaction{Supplier: "Royal"}, fixedIntN(59250))

	for _, category := range []string{"content", "CRATE", " CONTENT"} {
		_, err := editor.AddItem(NewLineItem{Category: category, ItemName: "Cola"})
		if !apperror.IsValidation(err) {
			t.Fatalf("category %q: err = %v", category, err)
		}
		if fe := apperror.GetAppError(err).Errors; len(fe) != 1 || fe[0].Field != "category" {
			t.Fatalf("category %q: field errors = %+v", category, fe)
		}
	}
	if len(editor.Draft().Items) != 0 {
		t.Fatal("rejected items must not be appended")
	}
}

func TestAddItemSupplierFromDialogOrDraft(t *testing.T) {
	draft := &entity.ReceivingTransaction{}
	editor := NewLineItemEditor(draft, nil)

	_, err := editor.AddItem(NewLineItem{Supplier: "  ", Category: "CONTENT", ItemName: "Cola"})
	if fe := apperror.GetAppError(err).Errors; !apperror.IsValidation(err) || len(fe) != 1 || fe[0].Field != "supplier" {
		t.Fatalf("err = %v", err)
	}

	if _, err := editor.AddItem(NewLineItem{Supplier: " Royal ", Category: "CONTENT", ItemName: "Cola"}); err != nil {
		t.Fatal(err)
	}
	if draft.Supplier != "Royal" {
		t.Fatalf("supplier = %q", draft.Supplier)
	}

	// the header supplier covers later dialogs
	if _, err := editor.AddItem(NewLineItem{Category: "ONE WAY", ItemName: "Water"}); err != nil {
		t.Fatal(err)
	}
	if len(draft.Items) != 2 || draft.Supplier != "Royal" {
		t.Fatalf("draft = %+v", draft)
	}
}

func TestUpdateItemTreatsExponentAsAbsent(t *testing.T) {
	draft := &entity.ReceivingTransaction{Supplier: "Royal"}
	editor := NewLineItemEditor(draft, nil)
	if _, err := editor.AddItem(NewLineItem{Category: "CONTENT", ItemName: "Cola"}); err != nil {
		t.Fatal(err)
	}
	editor.UpdateItem(0, "quantity.box", "1")
	item, err := editor.UpdateItem(0, "supplierPrice.box", "1e50000000")
	if err != nil {
		t.Fatal(err)
	}
	if item.Amount != "0.00" || editor.Totals().Total.String() != "0" {
		t.Fatalf("amount = %s, total = %s", item.Amount, editor.Totals().Total)
	}
	if got := ExpandItems(draft.Items); len(got) != 0 {
		t.Fatalf("expanded = %+v", got)
	}
}
