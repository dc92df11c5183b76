package town

// AreaKind is the closed set of interactable area types.
type AreaKind string

const (
	AreaKindGrocery   AreaKind = "grocery"
	AreaKindTrading   AreaKind = "trading"
	AreaKindInventory AreaKind = "inventory"
)

// AreaModel is the wire snapshot of an area's externally visible state. It is
// a plain, fully-owned copy rebuilt on every ToModel call - it never holds
// live references into authoritative objects, so mutating a model cannot
// corrupt server state. Area-specific fields are populated per kind.
type AreaModel struct {
	ID        string     `json:"id"`
	Type      AreaKind   `json:"type"`
	Occupants []PlayerID `json:"occupants"`

	// Grocery store. Cart, TotalPrice, Balance and History describe the
	// player whose command produced this snapshot.
	StoreInventory []ItemRecord   `json:"store_inventory,omitempty"`
	Cart           []ItemRecord   `json:"cart,omitempty"`
	TotalPrice     int            `json:"total_price,omitempty"`
	Balance        int            `json:"balance,omitempty"`
	History        [][]ItemRecord `json:"history,omitempty"`

	// Trading. Inventory describes the player whose command produced this
	// snapshot.
	TradingBoard []TradeOfferModel `json:"trading_board,omitempty"`
	Inventory    []ItemRecord      `json:"inventory,omitempty"`

	// Inventory area.
	PlayerInventory []ItemRecord `json:"player_inventory,omitempty"`
}

// TradeOfferModel is the wire snapshot of a single board offer.
type TradeOfferModel struct {
	ID        string       `json:"id"`
	Offered   []ItemRecord `json:"offered"`
	Wanted    []ItemRecord `json:"wanted"`
	Initiator PlayerID     `json:"initiator"`
	Acceptor  PlayerID     `json:"acceptor,omitempty"`
	Completed bool         `json:"completed"`
}

// MovementEvent announces an occupancy change: a player entering or leaving
// an area.
type MovementEvent struct {
	Player  PlayerID `json:"player"`
	Area    string   `json:"area"`
	Entered bool     `json:"entered"`
	Pos     Position `json:"pos"`
}
