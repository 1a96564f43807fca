package chess

// Game represents a parsed PGN game: its headers, the mainline SAN
// tokens and the terminating result. A Game is not modified after the
// parser builds it.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags Tags

	// The mainline moves in SAN, in the order played.
	Moves []string

	// Terminating result token ("1-0", "0-1", "1/2-1/2", "*"), or empty.
	Result string

	// Line numbers of the start and end of the game in the input.
	StartLine int
	EndLine   int
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags.Get(name)
}

// SetTag sets a tag value.
func (g *Game) SetTag(name, value string) {
	g.Tags.Set(name, value)
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	return g.Tags.Has(name)
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag(WhiteTag)
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag(BlackTag)
}

// Event returns the event name.
func (g *Game) Event() string {
	return g.GetTag(EventTag)
}

// Date returns the date string.
func (g *Game) Date() string {
	return g.GetTag(DateTag)
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}

// IsEmpty reports whether the game has neither tags nor moves.
func (g *Game) IsEmpty() bool {
	return len(g.Tags) == 0 && len(g.Moves) == 0
}

// GameResult returns the result token, falling back to the Result tag.
func (g *Game) GameResult() string {
	if g.Result != "" {
		return g.Result
	}
	return g.GetTag(ResultTag)
}

// AppendMove adds a SAN move to the end of the game.
func (g *Game) AppendMove(san string) {
	g.Moves = append(g.Moves, san)
}
