// Package command turns typed input into commands for the application.
package command

// Type identifies what the user asked for.
type Type int

const (
	Unknown Type = iota
	Search
	Filter
	ClearFilter
	Open
	Close
	Random
	Fav
	Favs
	ShopAdd
	Shop
	ShopToggle
	ShopRemove
	ShopClear
	ShopExport
	Collections
	CollNew
	CollAdd
	CollRemove
	CollDelete
	CollView
	TimerNew
	TimerStart
	TimerPause
	TimerReset
	TimerDelete
	Timers
	Rate
	Note
	Cooked
	History
	Theme
	Accessibility
	Read
	Print
	Email
	Share
	Copy
	Recs
	ForYou
	Trending
	Help
	Quit
	Confirm
	Deny
)

var typeNames = map[Type]string{
	Unknown:       "unknown",
	Search:        "search",
	Filter:        "filter",
	ClearFilter:   "clear-filter",
	Open:          "open",
	Close:         "close",
	Random:        "random",
	Fav:           "fav",
	Favs:          "favs",
	ShopAdd:       "shop-add",
	Shop:          "shop",
	ShopToggle:    "shop-toggle",
	ShopRemove:    "shop-rm",
	ShopClear:     "shop-clear",
	ShopExport:    "shop-export",
	Collections:   "collections",
	CollNew:       "coll-new",
	CollAdd:       "coll-add",
	CollRemove:    "coll-rm",
	CollDelete:    "coll-del",
	CollView:      "coll-view",
	TimerNew:      "timer-new",
	TimerStart:    "timer-start",
	TimerPause:    "timer-pause",
	TimerReset:    "timer-reset",
	TimerDelete:   "timer-del",
	Timers:        "timers",
	Rate:          "rate",
	Note:          "note",
	Cooked:        "cooked",
	History:       "history",
	Theme:         "theme",
	Accessibility: "a11y",
	Read:          "read",
	Print:         "print",
	Email:         "email",
	Share:         "share",
	Copy:          "copy",
	Recs:          "recs",
	ForYou:        "for-you",
	Trending:      "trending",
	Help:          "help",
	Quit:          "quit",
	Confirm:       "confirm",
	Deny:          "deny",
}

// String returns the command's name.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Command is one parsed line of input.
type Command struct {
	Type Type
	Args []string // captured arguments; optional ones may be empty strings
	Raw  string
}

// Arg returns the i-th argument or "".
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// HelpEntry documents one command form.
type HelpEntry struct {
	Usage       string
	Description string
}

// HelpEntries lists the command forms shown by the help command.
var HelpEntries = []HelpEntry{
	{"search <query>", "search the catalog by name"},
	{"filter category|area <value>", "narrow the last results; 'filter' lists the options"},
	{"filter clear", "show every result again"},
	{"open <n|id>, <n>", "open a result by number or recipe id"},
	{"close", "close the open recipe or panel"},
	{"random", "open a random recipe from the results"},
	{"fav / favs", "toggle the open recipe as favorite / list favorites"},
	{"shop add [servings]", "add the open recipe's ingredients, optionally scaled"},
	{"shop, shop toggle|rm <id>, shop clear", "view and edit the shopping list"},
	{"shop export [file]", "write the shopping list to a text file"},
	{"colls, coll <id>", "list collections / view one"},
	{"coll new <name> [| description]", "create a collection"},
	{"coll add <id>, coll rm <id> <recipe>, coll del <id>", "edit collections"},
	{"timer <5m|90s|1m30s|2:30> [label]", "create and start a timer"},
	{"timer start|pause|reset|del <id>, timers", "control timers"},
	{"rate <1-5>, note <text>, cooked", "rate, annotate or log the open recipe"},
	{"history, trending, recs, for you", "history and suggestions"},
	{"theme, a11y [font <size>|contrast|speech|reading|keys]", "appearance and accessibility"},
	{"read, read stop", "read the open recipe aloud"},
	{"print [file], email, share, copy", "export or share the open recipe"},
	{"help, quit", "this list / leave"},
}
