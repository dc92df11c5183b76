package town

import "errors"

var (
	// Item list failures.
	ErrUnknownItem         = errors.New("item is not in the catalog")
	ErrItemNotFound        = errors.New("item not found")
	ErrNegativeQuantity    = errors.New("quantity would go negative")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")

	// Ledger failures.
	ErrInventoryNotFound = errors.New("player has no inventory record")
	ErrCartNotFound      = errors.New("player has no cart record")

	// Business-rule failures.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInsufficientFunds     = errors.New("insufficient funds")

	// Trade-offer lifecycle failures.
	ErrInvalidOffer          = errors.New("offer must name items on both sides")
	ErrTradeAlreadyCompleted = errors.New("trade has already been completed")
	ErrAcceptorNotSet        = errors.New("acceptor is not set")
	ErrOwnOffer              = errors.New("players cannot accept their own offers")
	ErrOfferNotFound         = errors.New("offer is no longer on the board")

	// Dispatch failures.
	ErrInvalidCommand = errors.New("command is not valid for this area")
	ErrAreaNotFound   = errors.New("area not found")

	// Level-data failures.
	ErrMalformedAreaDefinition = errors.New("malformed area definition")

	// Occupancy failures.
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already present")
)
