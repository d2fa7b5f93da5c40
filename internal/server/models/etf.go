package models

// Etf is a single instrument record. Visibility: the owner and admins always
// see it; other users only when IsPublic is set.
type Etf struct {
	ID           int64   `json:"id"`
	Ticker       string  `json:"ticker"`
	Description  string  `json:"description"`
	AssetClass   string  `json:"assetClass"`
	ExpenseRatio float64 `json:"expenseRatio"`
	UserID       int64   `json:"userId"`
	IsPublic     bool    `json:"isPublic"`
}
