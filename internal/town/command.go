package town

// Command is a player action addressed to one area. The set of commands is
// closed: each area's dispatcher type-switches over the concrete structs below
// and rejects anything else with ErrInvalidCommand.
type Command interface {
	// CommandType returns the wire tag for this command.
	CommandType() string

	// sealed keeps the union closed to this package.
	sealed()
}

// Grocery store commands.

// OpenStore triggers a snapshot broadcast without changing state, letting a
// newly-opened UI pull current shelf and cart contents.
type OpenStore struct{}

// AddToCart moves quantity of item from the shelf into the issuing player's
// cart.
type AddToCart struct {
	Item     ItemName `json:"item"`
	Quantity int      `json:"quantity"`
}

// RemoveFromCart returns quantity of item from the issuing player's cart to
// the shelf.
type RemoveFromCart struct {
	Item     ItemName `json:"item"`
	Quantity int      `json:"quantity"`
}

// Checkout purchases the issuing player's entire cart.
type Checkout struct{}

// Inventory area commands.

// OpenInventory triggers a snapshot broadcast of the issuing player's
// inventory view.
type OpenInventory struct{}

// Trading area commands.

// OpenBoard triggers a snapshot broadcast of the trading board.
type OpenBoard struct{}

// PostOffer places a new offer on the board, reserving the offered items out
// of the issuing player's inventory.
type PostOffer struct {
	Offered []ItemStack `json:"offered"`
	Wanted  []ItemStack `json:"wanted"`
}

// AcceptOffer completes the identified offer as the issuing player.
type AcceptOffer struct {
	OfferID string `json:"offer_id"`
}

// DeleteOffer retracts the issuing player's open offer, returning the
// reserved items to their inventory.
type DeleteOffer struct{}

func (OpenStore) CommandType() string      { return "open_store" }
func (AddToCart) CommandType() string      { return "add_to_cart" }
func (RemoveFromCart) CommandType() string { return "remove_from_cart" }
func (Checkout) CommandType() string       { return "checkout" }
func (OpenInventory) CommandType() string  { return "open_inventory" }
func (OpenBoard) CommandType() string      { return "open_board" }
func (PostOffer) CommandType() string      { return "post_offer" }
func (AcceptOffer) CommandType() string    { return "accept_offer" }
func (DeleteOffer) CommandType() string    { return "delete_offer" }

func (OpenStore) sealed()      {}
func (AddToCart) sealed()      {}
func (RemoveFromCart) sealed() {}
func (Checkout) sealed()       {}
func (OpenInventory) sealed()  {}
func (OpenBoard) sealed()      {}
func (PostOffer) sealed()      {}
func (AcceptOffer) sealed()    {}
func (DeleteOffer) sealed()    {}
