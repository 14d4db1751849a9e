package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TransactionTypeReceive is the transaction_type of receiving records
const TransactionTypeReceive = "receive"

// RecordID identifies a stored transaction. The remote API issues numbers,
// the local mirror issues strings; both are kept as text.
type RecordID string

func (id RecordID) String() string {
	return string(id)
}

func (id RecordID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

// FixedDecimal reads JSON strings or numbers and writes two-place decimal strings
type FixedDecimal struct {
	decimal.Decimal
}

// NewFixedDecimal wraps a decimal value
func NewFixedDecimal(d decimal.Decimal) FixedDecimal {
	return FixedDecimal{Decimal: d}
}

func (d FixedDecimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.StringFixed(2))
}

func (d *FixedDecimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		d.Decimal = decimal.Zero
		return nil
	}
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	v, err := ParseNumber(raw)
	if err != nil {
		return fmt.Errorf("decimal %s: %w", data, err)
	}
	d.Decimal = v
	return nil
}

// TransactionRecord is the stored shape of a receiving transaction. The remote API
// returns it and the local mirror keeps an array of it.
type TransactionRecord struct {
	ID              RecordID                `json:"id,omitempty"`
	TransactionID   string                  `json:"transaction_id"`
	TransactionType string                  `json:"transaction_type"`
	Warehouse       int64                   `json:"warehouse"`
	User            int64                   `json:"user,omitempty"`
	Supplier        string                  `json:"supplier"`
	TotalAmount     FixedDecimal            `json:"total_amount"`
	Timestamp       time.Time               `json:"timestamp"`
	Notes           string                  `json:"notes"`
	Items           []TransactionRecordItem `json:"items"`
}

// TransactionRecordItem is one priced unit of a line item. A line item with
// several priced units is stored as several record items sharing Line.
// Line is 1-based; records from the remote API leave it zero.
type TransactionRecordItem struct {
	ID             RecordID      `json:"id,omitempty"`
	Line           int           `json:"line,omitempty"`
	SystemCode     string        `json:"system_code"`
	SupplierCode   string        `json:"supplier_code"`
	ItemType       string        `json:"item_type"`
	ItemName       string        `json:"item_name"`
	UnitType       enum.UnitType `json:"unit_type"`
	Quantity       FixedDecimal  `json:"quantity"`
	UnitPrice      FixedDecimal  `json:"unit_price"`
	Amount         FixedDecimal  `json:"amount"`
	RequiresReturn bool          `json:"requires_return"`
}
