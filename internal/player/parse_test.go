package player

import (
	"reflect"
	"testing"

	"github.com/pixil98/go-town/internal/town"
	"github.com/pixil98/go-testutil"
)

func TestParseLine(t *testing.T) {
	tests := map[string]struct {
		line    string
		kind    actionKind
		area    string
		cmd     town.Command
		wantErr string
	}{
		"go": {
			line: "go grocery",
			kind: actGo,
			area: "grocery",
		},
		"go without area": {
			line:    "go",
			wantErr: "go <area>",
		},
		"leave": {
			line: "leave",
			kind: actLeave,
		},
		"quit": {
			line: "quit",
			kind: actQuit,
		},
		"store": {
			line: "store",
			cmd:  &town.OpenStore{},
		},
		"cart add with count": {
			line: "cart add bacon 2",
			cmd:  &town.AddToCart{Item: town.ItemBacon, Quantity: 2},
		},
		"cart add defaults to one": {
			line: "cart add milk",
			cmd:  &town.AddToCart{Item: town.ItemMilk, Quantity: 1},
		},
		"cart remove": {
			line: "cart remove bacon 1",
			cmd:  &town.RemoveFromCart{Item: town.ItemBacon, Quantity: 1},
		},
		"cart with unknown item": {
			line:    "cart add caviar 2",
			wantErr: `never heard of "caviar"`,
		},
		"cart with bad count": {
			line:    "cart add bacon none",
			wantErr: "not a valid count",
		},
		"cart with bad verb": {
			line:    "cart smash bacon",
			wantErr: "cart add",
		},
		"checkout": {
			line: "checkout",
			cmd:  &town.Checkout{},
		},
		"post": {
			line: "post apple 5 for banana 3",
			cmd: &town.PostOffer{
				Offered: []town.ItemStack{{Item: town.ItemApple, Quantity: 5}},
				Wanted:  []town.ItemStack{{Item: town.ItemBanana, Quantity: 3}},
			},
		},
		"post multiple stacks": {
			line: "post apple 2 milk 1 for honey 1",
			cmd: &town.PostOffer{
				Offered: []town.ItemStack{
					{Item: town.ItemApple, Quantity: 2},
					{Item: town.ItemMilk, Quantity: 1},
				},
				Wanted: []town.ItemStack{{Item: town.ItemHoney, Quantity: 1}},
			},
		},
		"post without for": {
			line:    "post apple 5",
			wantErr: "post <item> <count> for <item> <count>",
		},
		"post with dangling item": {
			line:    "post apple for banana 3",
			wantErr: "pairs",
		},
		"post with zero count": {
			line:    "post apple 0 for banana 3",
			wantErr: "not a valid count",
		},
		"accept": {
			line: "accept 0c7f2d31",
			cmd:  &town.AcceptOffer{OfferID: "0c7f2d31"},
		},
		"retract": {
			line: "retract",
			cmd:  &town.DeleteOffer{},
		},
		"inventory": {
			line: "inventory",
			cmd:  &town.OpenInventory{},
		},
		"uppercase input": {
			line: "GO GROCERY",
			kind: actGo,
			area: "grocery",
		},
		"empty": {
			line:    "   ",
			wantErr: "say something",
		},
		"unknown verb": {
			line:    "dance",
			wantErr: "unknown command",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			act, err := parseLine(tt.line)
			if tt.wantErr != "" {
				testutil.AssertErrorContains(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			testutil.AssertEqual(t, "kind", act.kind, tt.kind)
			testutil.AssertEqual(t, "area", act.area, tt.area)
			if !reflect.DeepEqual(act.cmd, tt.cmd) {
				t.Errorf("command: got %#v, want %#v", act.cmd, tt.cmd)
			}
		})
	}
}
