package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Parser matches input lines against an ordered table of patterns. The
// first match wins; capture groups become the command's arguments.
type Parser struct {
	log   *logger.Logger
	rules []rule
}

type rule struct {
	regex *regexp.Regexp
	typ   Type
}

// NewParser creates a parser with the built-in command table.
func NewParser(log *logger.Logger) *Parser {
	r := func(pattern string, t Type) rule {
		return rule{regexp.MustCompile(`(?i)^(?:` + pattern + `)$`), t}
	}
	p := &Parser{log: log}
	p.rules = []rule{
		r(`(?:y|yes)`, Confirm),
		r(`(?:n|no)`, Deny),
		r(`(\d{1,3})`, Open),
		r(`(?:search|find|s)\s+(.+)`, Search),
		r(`filter\s+(?:clear|reset|none)|unfilter`, ClearFilter),
		r(`filter\s+(category|cat|area)\s+(.+)`, Filter),
		r(`filters?|categories|areas`, Filter),
		r(`(?:open|view)\s+(\S+)`, Open),
		r(`(?:close|back|home|esc)`, Close),
		r(`(?:random|surprise|lucky)`, Random),
		r(`(?:fav|favorite|heart)`, Fav),
		r(`(?:favs|favorites)`, Favs),
		r(`shop\s+add(?:\s+(\d+))?`, ShopAdd),
		r(`shop\s+(?:toggle|check|tick)\s+(\d+)`, ShopToggle),
		r(`shop\s+(?:rm|remove|del)\s+(\d+)`, ShopRemove),
		r(`shop\s+clear`, ShopClear),
		r(`shop\s+(?:export|print)(?:\s+(.+))?`, ShopExport),
		r(`(?:shop|shopping|list)`, Shop),
		r(`(?:colls|collections)`, Collections),
		r(`coll\s+new\s+([^|]+?)(?:\s*\|\s*(.*))?`, CollNew),
		r(`coll\s+add\s+(\d+)`, CollAdd),
		r(`coll\s+(?:rm|remove)\s+(\d+)\s+(\S+)`, CollRemove),
		r(`coll\s+(?:del|delete)\s+(\d+)`, CollDelete),
		r(`coll\s+(?:view\s+|open\s+)?(\d+)`, CollView),
		r(`timer\s+start\s+(\d+)`, TimerStart),
		r(`timer\s+pause\s+(\d+)`, TimerPause),
		r(`timer\s+reset\s+(\d+)`, TimerReset),
		r(`timer\s+(?:del|delete|rm)\s+(\d+)`, TimerDelete),
		r(`timer\s+(?:new\s+)?(\S+)(?:\s+(.+))?`, TimerNew),
		r(`timers`, Timers),
		r(`rate\s+(\S+)`, Rate),
		r(`note(?:\s+(.*))?`, Note),
		r(`(?:cooked|made)`, Cooked),
		r(`history`, History),
		r(`theme(?:\s+(light|dark))?`, Theme),
		r(`(?:a11y|accessibility)(?:\s+(\S+)(?:\s+(\S+))?)?`, Accessibility),
		r(`(?:read|speak)(?:\s+(stop))?`, Read),
		r(`print(?:\s+(.+))?`, Print),
		r(`(?:email|mail)`, Email),
		r(`share`, Share),
		r(`copy(?:\s+(link|recipe))?`, Copy),
		r(`(?:recs|recommend|suggest)`, Recs),
		r(`(?:for\s*you|picks)`, ForYou),
		r(`(?:trending|popular)`, Trending),
		r(`(?:help|h|\?)`, Help),
		r(`(?:quit|exit|q)`, Quit),
	}
	return p
}

// Parse converts one input line into a command.
func (p *Parser) Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Type: Unknown}
	}
	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.rules {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		args := make([]string, 0, len(m)-1)
		for _, a := range m[1:] {
			args = append(args, strings.TrimSpace(a))
		}
		p.log.Debug("matched command: %s %q", rule.typ, args)
		return Command{Type: rule.typ, Args: args, Raw: trimmed}
	}

	p.log.Debug("no match, returning unknown command")
	return Command{Type: Unknown, Raw: trimmed}
}

var durationForms = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+):(\d{1,2})$`),        // 2:30
	regexp.MustCompile(`^(?:(\d+)m)?(?:(\d+)s)?$`), // 5m, 90s, 1m30s
	regexp.MustCompile(`^(\d+)$`),                  // bare minutes
}

// ParseDuration reads a timer length as minutes and seconds. Accepted
// forms: "5" (minutes), "5m", "90s", "1m30s" and "2:30".
func ParseDuration(s string) (minutes, seconds int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, 0, fmt.Errorf("empty duration: %w", domain.ErrInvalidInput)
	}
	for i, re := range durationForms {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if i == 2 {
			minutes, _ = strconv.Atoi(m[1])
			return minutes, 0, nil
		}
		if m[1] == "" && m[2] == "" {
			continue
		}
		if m[1] != "" {
			minutes, _ = strconv.Atoi(m[1])
		}
		if m[2] != "" {
			seconds, _ = strconv.Atoi(m[2])
		}
		return minutes, seconds, nil
	}
	return 0, 0, fmt.Errorf("duration %q: %w", s, domain.ErrInvalidInput)
}
