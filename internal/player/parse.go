package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-town/internal/town"
)

// actionKind separates session-level verbs from area commands.
type actionKind int

const (
	actCommand actionKind = iota
	actGo
	actLeave
	actWhere
	actHelp
	actQuit
)

type action struct {
	kind actionKind
	area string
	cmd  town.Command
}

// parseLine turns one console line into an action. Errors are user-facing and
// explain the expected syntax.
func parseLine(line string) (*action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, fmt.Errorf("say something, or 'help'")
	}

	verb, args := fields[0], fields[1:]
	switch verb {
	case "go":
		if len(args) != 1 {
			return nil, fmt.Errorf("try 'go <area>'")
		}
		return &action{kind: actGo, area: args[0]}, nil

	case "leave":
		return &action{kind: actLeave}, nil

	case "where":
		return &action{kind: actWhere}, nil

	case "help":
		return &action{kind: actHelp}, nil

	case "quit":
		return &action{kind: actQuit}, nil

	case "store":
		return &action{cmd: &town.OpenStore{}}, nil

	case "inventory":
		return &action{cmd: &town.OpenInventory{}}, nil

	case "board":
		return &action{cmd: &town.OpenBoard{}}, nil

	case "checkout":
		return &action{cmd: &town.Checkout{}}, nil

	case "retract":
		return &action{cmd: &town.DeleteOffer{}}, nil

	case "cart":
		return parseCart(args)

	case "post":
		return parsePost(args)

	case "accept":
		if len(args) != 1 {
			return nil, fmt.Errorf("try 'accept <offer id>'")
		}
		return &action{cmd: &town.AcceptOffer{OfferID: args[0]}}, nil

	default:
		return nil, fmt.Errorf("unknown command %q, try 'help'", verb)
	}
}

func parseCart(args []string) (*action, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("try 'cart add <item> [count]' or 'cart remove <item> [count]'")
	}

	item, err := parseItem(args[1])
	if err != nil {
		return nil, err
	}

	qty := 1
	if len(args) == 3 {
		qty, err = parseCount(args[2])
		if err != nil {
			return nil, err
		}
	}

	switch args[0] {
	case "add":
		return &action{cmd: &town.AddToCart{Item: item, Quantity: qty}}, nil
	case "remove":
		return &action{cmd: &town.RemoveFromCart{Item: item, Quantity: qty}}, nil
	default:
		return nil, fmt.Errorf("try 'cart add <item> [count]' or 'cart remove <item> [count]'")
	}
}

// parsePost reads "post <item> <count> [...] for <item> <count> [...]".
func parsePost(args []string) (*action, error) {
	sep := -1
	for i, a := range args {
		if a == "for" {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(args)-1 {
		return nil, fmt.Errorf("try 'post <item> <count> for <item> <count>'")
	}

	offered, err := parseStacks(args[:sep])
	if err != nil {
		return nil, err
	}
	wanted, err := parseStacks(args[sep+1:])
	if err != nil {
		return nil, err
	}

	return &action{cmd: &town.PostOffer{Offered: offered, Wanted: wanted}}, nil
}

// parseStacks reads alternating item/count pairs.
func parseStacks(args []string) ([]town.ItemStack, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("items go in '<item> <count>' pairs")
	}

	stacks := make([]town.ItemStack, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		item, err := parseItem(args[i])
		if err != nil {
			return nil, err
		}
		qty, err := parseCount(args[i+1])
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, town.ItemStack{Item: item, Quantity: qty})
	}
	return stacks, nil
}

func parseItem(s string) (town.ItemName, error) {
	name := town.ItemName(s)
	if !town.KnownItem(name) {
		return "", fmt.Errorf("never heard of %q", s)
	}
	return name, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a valid count", s)
	}
	return n, nil
}

const helpText = `Commands:
  go <area>                      walk to an area
  leave                          step out of the current area
  where                          show where you are
  store                          look at the grocery shelf
  cart add <item> [count]        put items in your cart
  cart remove <item> [count]     put items back on the shelf
  checkout                       pay for your cart
  board                          look at the trading board
  post <item> <n> for <item> <n> post a trade offer
  accept <offer id>              accept an open offer
  retract                        take back your oldest open offer
  inventory                      look at what you are carrying
  quit                           leave town`
