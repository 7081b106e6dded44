package enums

import "strings"

// Sport is a report selector: one league page on the scoreboard and odds sites.
type Sport string

const (
	NBA    Sport = "nba"
	MLB    Sport = "mlb"
	NPB    Sport = "npb"
	KBO    Sport = "kbo"
	Soccer Sport = "soccer"
)

// Kind groups sports by discipline.
type Kind string

const (
	Basketball Kind = "basketball"
	Baseball   Kind = "baseball"
	Football   Kind = "soccer"
	Unknown    Kind = "unknown"
)

// GenericLabel is used in report headers for sports outside the enumeration.
const GenericLabel = "📊 AI 賽事"

// SportInfo contains display information about a sport
type SportInfo struct {
	Name  string
	Alias string
	Kind  Kind
	Emoji string
}

// Label returns the header prefix used in rendered reports, e.g. "🏀 NBA".
func (i SportInfo) Label() string {
	if i.Kind == Unknown {
		return GenericLabel
	}
	return i.Emoji + " " + i.Name
}

// GetSportInfo returns sport information
func (s Sport) GetSportInfo() SportInfo {
	switch s {
	case NBA:
		return SportInfo{Name: "NBA", Alias: "nba", Kind: Basketball, Emoji: "🏀"}
	case MLB:
		return SportInfo{Name: "MLB", Alias: "mlb", Kind: Baseball, Emoji: "⚾"}
	case NPB:
		return SportInfo{Name: "NPB", Alias: "npb", Kind: Baseball, Emoji: "⚾"}
	case KBO:
		return SportInfo{Name: "KBO", Alias: "kbo", Kind: Baseball, Emoji: "⚾"}
	case Soccer:
		return SportInfo{Name: "SOCCER", Alias: "soccer", Kind: Football, Emoji: "⚽"}
	default:
		return SportInfo{Name: "Unknown", Alias: "unknown", Kind: Unknown, Emoji: "📊"}
	}
}

// IsValid checks if sport is supported
func (s Sport) IsValid() bool {
	switch s {
	case NBA, MLB, NPB, KBO, Soccer:
		return true
	default:
		return false
	}
}

// String returns string representation
func (s Sport) String() string {
	return string(s)
}

// GetAllSports returns all supported sports
func GetAllSports() []Sport {
	return []Sport{NBA, MLB, NPB, KBO, Soccer}
}

// ParseSport parses a league alias or a discipline name.
// "basketball" maps to NBA, "baseball" to MLB and "football" to soccer.
func ParseSport(s string) (Sport, bool) {
	n := strings.ToLower(strings.TrimSpace(s))
	switch n {
	case string(Basketball):
		return NBA, true
	case string(Baseball):
		return MLB, true
	case "football":
		return Soccer, true
	}
	sport := Sport(n)
	return sport, sport.IsValid()
}
