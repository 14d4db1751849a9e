package enum

// ItemCategory is the item type chosen when a line is added to a receiving transaction
type ItemCategory string

const (
	CategoryContent     ItemCategory = "CONTENT"
	CategoryOneWay      ItemCategory = "ONE WAY"
	CategoryEmptyShell  ItemCategory = "EMPTY SHELL"
	CategoryEmptyBottle ItemCategory = "EMPTY BOTTLE"
	CategoryBadOrder    ItemCategory = "BAD ORDER"
)

// ItemCategories lists the categories offered by the add-item dialog
var ItemCategories = []ItemCategory{
	CategoryContent,
	CategoryOneWay,
	CategoryEmptyShell,
	CategoryEmptyBottle,
	CategoryBadOrder,
}

func (c ItemCategory) String() string {
	return string(c)
}

// IsValid checks if the category is one of the known categories
func (c ItemCategory) IsValid() bool {
	for _, known := range ItemCategories {
		if c == known {
			return true
		}
	}
	return false
}

// RequiresReturnOnIntake applies when an item is entered through the add-item dialog.
func (c ItemCategory) RequiresReturnOnIntake() bool {
	switch c {
	case CategoryEmptyShell, CategoryEmptyBottle, CategoryContent:
		return true
	}
	return false
}

// RequiresReturnOnReceipt applies when the item type is edited on the receiving form
func (c ItemCategory) RequiresReturnOnReceipt() bool {
	switch c {
	case CategoryEmptyShell, CategoryEmptyBottle:
		return true
	}
	return false
}
