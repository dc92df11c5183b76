package town

import (
	"github.com/google/uuid"
)

// TradeOffer is a two-party pending exchange proposal. It is owned by a
// trading board until accepted or cancelled; once completed it is terminal
// and may only be referenced by history.
type TradeOffer struct {
	ID        string
	Offered   *ItemList
	Wanted    *ItemList
	Initiator PlayerID
	Acceptor  PlayerID
	Completed bool
}

// NewTradeOffer creates a pending offer. Both sides must name at least one
// item.
func NewTradeOffer(initiator PlayerID, offered, wanted *ItemList) (*TradeOffer, error) {
	if offered == nil || offered.IsEmpty() || wanted == nil || wanted.IsEmpty() {
		return nil, ErrInvalidOffer
	}
	return &TradeOffer{
		ID:        uuid.NewString(),
		Offered:   offered.Copy(),
		Wanted:    wanted.Copy(),
		Initiator: initiator,
	}, nil
}

// Accept marks the offer completed by acceptor. Completion happens exactly
// once: a second call fails with ErrTradeAlreadyCompleted and changes nothing.
func (o *TradeOffer) Accept(acceptor PlayerID) error {
	if o.Completed {
		return ErrTradeAlreadyCompleted
	}
	if acceptor == "" {
		return ErrAcceptorNotSet
	}
	if acceptor == o.Initiator {
		return ErrOwnOffer
	}
	o.Acceptor = acceptor
	o.Completed = true
	return nil
}
