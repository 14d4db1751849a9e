package entity

// UnknownSupplier is stored when a transaction is saved without a supplier
const UnknownSupplier = "Unknown Supplier"

// DateTimeLayout is the display format of ReceivingTransaction.DateTime
const DateTimeLayout = "01/02/2006, 03:04:05 PM"

// ReceivingTransaction is the in-memory shape of a receiving transaction, as drafted and listed.
// TotalAmount, ReturnTotalAmount and NetAmount are derived from the items before every save.
type ReceivingTransaction struct {
	ID                string     `json:"id,omitempty"`
	ReceiveNo         string     `json:"receiveNo"`
	DateTime          string     `json:"dateTime"`
	Supplier          string     `json:"supplier"`
	ReceivedBy        string     `json:"receivedBy,omitempty"`
	WarehouseID       int64      `json:"warehouse,omitempty"`
	UserID            int64      `json:"user,omitempty"`
	Items             []LineItem `json:"items"`
	ReturnItems       []LineItem `json:"returnItems"`
	TotalAmount       string     `json:"totalAmount"`
	ReturnTotalAmount string     `json:"returnTotalAmount"`
	NetAmount         string     `json:"netAmount"`
	Remarks           string     `json:"remarks"`
}

// Clone returns a copy that shares no slices with the receiver
func (t ReceivingTransaction) Clone() ReceivingTransaction {
	c := t
	c.Items = append([]LineItem(nil), t.Items...)
	c.ReturnItems = append([]LineItem(nil), t.ReturnItems...)
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	if c.ReturnItems == nil {
		c.ReturnItems = []LineItem{}
	}
	return c
}

// LineItem is one product line of a receiving transaction.
// Amount is always the recomputation of SupplierPrice and Quantity; it is never edited directly.
type LineItem struct {
	SystemCode     string     `json:"systemCode"`
	SupplierCode   string     `json:"supplierCode"`
	ItemType       string     `json:"itemType"`
	ItemName       string     `json:"itemName"`
	SupplierPrice  UnitValues `json:"supplierPrice"`
	Quantity       UnitValues `json:"quantity"`
	Amount         string     `json:"amount"`
	RequiresReturn bool       `json:"requiresReturn"`
}
