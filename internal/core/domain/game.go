package domain

// Closed enumerations for game attributes. The stored casing is canonical
// and matching is case-exact: "Action" is valid, "action" is not.

const (
	GenreAction     = "Action"
	GenreAdventure  = "Adventure"
	GenreRpg        = "Rpg"
	GenreStrategy   = "Strategy"
	GenreSports     = "Sports"
	GenreSimulation = "Simulation"
	GenrePuzzle     = "Puzzle"
	GenreShooter    = "Shooter"
	GenreHorror     = "Horror"
	GenreFantasy    = "Fantasy"
	GenreRacing     = "Racing"
)

const (
	PlatformPc          = "Pc"
	PlatformXbox        = "Xbox"
	PlatformPlaystation = "Playstation"
	PlatformSwitch      = "Switch"
	PlatformMobile      = "Mobile"
	PlatformVr          = "Vr"
)

const (
	PlayerTypeSingle       = "Single_player"
	PlayerTypeMultiplayer  = "Multiplayer"
	PlayerTypeCoOp         = "Co_op"
	PlayerTypeBattleRoyale = "Battle_royale"
)

var genres = map[string]struct{}{
	GenreAction: {}, GenreAdventure: {}, GenreRpg: {}, GenreStrategy: {},
	GenreSports: {}, GenreSimulation: {}, GenrePuzzle: {}, GenreShooter: {},
	GenreHorror: {}, GenreFantasy: {}, GenreRacing: {},
}

var platforms = map[string]struct{}{
	PlatformPc: {}, PlatformXbox: {}, PlatformPlaystation: {},
	PlatformSwitch: {}, PlatformMobile: {}, PlatformVr: {},
}

var playerTypes = map[string]struct{}{
	PlayerTypeSingle: {}, PlayerTypeMultiplayer: {},
	PlayerTypeCoOp: {}, PlayerTypeBattleRoyale: {},
}

// ValidGenre reports whether g is a recognised genre (case-exact).
func ValidGenre(g string) bool {
	_, ok := genres[g]
	return ok
}

// ValidPlatform reports whether p is a recognised platform (case-exact).
func ValidPlatform(p string) bool {
	_, ok := platforms[p]
	return ok
}

// ValidPlayerType reports whether pt is a recognised player type (case-exact).
func ValidPlayerType(pt string) bool {
	_, ok := playerTypes[pt]
	return ok
}

// Game belongs to exactly one developer. Deleting a game cascades to its
// comments.
type Game struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Genre             string `json:"genre"`
	Platform          string `json:"platform"`
	ControllerSupport bool   `json:"controllerSupport"`
	Language          string `json:"language"`
	PlayerType        string `json:"playerType"`
	DeveloperID       string `json:"developerId"`
	Photo             Photo  `json:"photo"`
	Description       string `json:"description"`
}
