package command

import (
	"errors"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func TestParser(t *testing.T) {
	parser := NewParser(logger.New(logger.LevelOff, nil))

	tests := []struct {
		input    string
		wantType Type
		wantArgs []string
	}{
		// Search
		{"search chicken curry", Search, []string{"chicken curry"}},
		{"s pasta", Search, []string{"pasta"}},
		{"  FIND  Soup ", Search, []string{"Soup"}},

		// Filters
		{"filter category Seafood", Filter, []string{"category", "Seafood"}},
		{"filter area British", Filter, []string{"area", "British"}},
		{"filter", Filter, []string{}},
		{"filter clear", ClearFilter, []string{}},

		// Opening
		{"3", Open, []string{"3"}},
		{"open 52772", Open, []string{"52772"}},
		{"close", Close, []string{}},
		{"random", Random, []string{}},

		// Favorites
		{"fav", Fav, []string{}},
		{"favs", Favs, []string{}},

		// Shopping
		{"shop add", ShopAdd, []string{""}},
		{"shop add 8", ShopAdd, []string{"8"}},
		{"shop", Shop, []string{}},
		{"list", Shop, []string{}},
		{"shop toggle 4", ShopToggle, []string{"4"}},
		{"shop rm 2", ShopRemove, []string{"2"}},
		{"shop clear", ShopClear, []string{}},
		{"shop export", ShopExport, []string{""}},
		{"shop export ~/list.txt", ShopExport, []string{"~/list.txt"}},

		// Collections
		{"colls", Collections, []string{}},
		{"coll new Weeknight", CollNew, []string{"Weeknight", ""}},
		{"coll new Weeknight dinners | quick ones", CollNew, []string{"Weeknight dinners", "quick ones"}},
		{"coll add 2", CollAdd, []string{"2"}},
		{"coll rm 2 52772", CollRemove, []string{"2", "52772"}},
		{"coll del 2", CollDelete, []string{"2"}},
		{"coll 2", CollView, []string{"2"}},
		{"coll view 2", CollView, []string{"2"}},

		// Timers
		{"timer 5m eggs", TimerNew, []string{"5m", "eggs"}},
		{"timer new 2:30", TimerNew, []string{"2:30", ""}},
		{"timer start 1", TimerStart, []string{"1"}},
		{"timer pause 1", TimerPause, []string{"1"}},
		{"timer reset 1", TimerReset, []string{"1"}},
		{"timer del 1", TimerDelete, []string{"1"}},
		{"timers", Timers, []string{}},

		// Personal data
		{"rate 4", Rate, []string{"4"}},
		{"note less chili next time", Note, []string{"less chili next time"}},
		{"note", Note, []string{""}},
		{"cooked", Cooked, []string{}},
		{"history", History, []string{}},

		// Appearance
		{"theme", Theme, []string{""}},
		{"theme dark", Theme, []string{"dark"}},
		{"a11y", Accessibility, []string{"", ""}},
		{"a11y font large", Accessibility, []string{"font", "large"}},
		{"a11y contrast", Accessibility, []string{"contrast", ""}},

		// Sharing
		{"read", Read, []string{""}},
		{"read stop", Read, []string{"stop"}},
		{"print", Print, []string{""}},
		{"email", Email, []string{}},
		{"share", Share, []string{}},
		{"copy", Copy, []string{""}},

		// Suggestions
		{"recs", Recs, []string{}},
		{"for you", ForYou, []string{}},
		{"trending", Trending, []string{}},

		// Control
		{"help", Help, []string{}},
		{"?", Help, []string{}},
		{"q", Quit, []string{}},
		{"yes", Confirm, []string{}},
		{"n", Deny, []string{}},

		// Unknown
		{"", Unknown, nil},
		{"make me a sandwich", Unknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parser.Parse(tt.input)
			if got.Type != tt.wantType {
				t.Fatalf("Parse(%q).Type = %s, want %s", tt.input, got.Type, tt.wantType)
			}
			if len(got.Args) != len(tt.wantArgs) {
				t.Fatalf("Parse(%q).Args = %q, want %q", tt.input, got.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if got.Args[i] != tt.wantArgs[i] {
					t.Fatalf("Parse(%q).Args[%d] = %q, want %q", tt.input, i, got.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestCommandArg(t *testing.T) {
	c := Command{Args: []string{"a"}}
	if c.Arg(0) != "a" || c.Arg(1) != "" || c.Arg(-1) != "" {
		t.Fatalf("unexpected Arg results for %q", c.Args)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in       string
		min, sec int
		wantErr  bool
	}{
		{"5", 5, 0, false},
		{"5m", 5, 0, false},
		{"90s", 0, 90, false},
		{"1m30s", 1, 30, false},
		{"2:30", 2, 30, false},
		{"", 0, 0, true},
		{"soon", 0, 0, true},
		{"1h", 0, 0, true},
	}
	for _, tt := range tests {
		m, s, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDuration(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("ParseDuration(%q) err = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if m != tt.min || s != tt.sec {
			t.Fatalf("ParseDuration(%q) = %d, %d, want %d, %d", tt.in, m, s, tt.min, tt.sec)
		}
	}
}

func TestTypeNames(t *testing.T) {
	for typ := Unknown; typ <= Deny; typ++ {
		if _, ok := typeNames[typ]; !ok {
			t.Fatalf("type %d has no name", typ)
		}
	}
}
