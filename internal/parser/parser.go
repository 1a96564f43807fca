package parser

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/chess"
	"github.com/lgbarn/pgnview-go/internal/errors"
)

// Option configures a Parser.
type Option interface {
	apply(*Parser)
}

type optionFunc func(*Parser)

func (f optionFunc) apply(p *Parser) { f(p) }

// WithLogger sets the logger used for recoverable syntax problems.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(p *Parser) {
		p.logger = logger
	})
}

// WithSourceName names the input in errors and log entries.
func WithSourceName(name string) Option {
	return optionFunc(func(p *Parser) {
		p.source = name
	})
}

// Parser parses PGN input into Game structures. Comments, NAGs and
// variations are skipped; only the mainline is kept.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	logger       *zap.Logger
	source       string
	gameNum      int
}

// NewParser creates a new parser for the given reader.
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt.apply(p)
	}
	if p.source != "" {
		p.logger = p.logger.With(zap.String("source", p.source))
	}
	p.lexer = NewLexer(r, p.logger)
	return p
}

// Parse parses the first game in raw. When raw holds several games, only
// the tags and moves of the first are returned; a result token or a tag
// following movetext ends it. Use NewParser and ParseAllGames to read
// every game. Input that holds neither a tag nor a move fails with
// errors.ErrEmptyGame.
func Parse(raw string) (*chess.Game, error) {
	if strings.TrimSpace(strings.TrimPrefix(raw, byteOrderMark)) == "" {
		return nil, errors.ErrEmptyGame
	}
	game, err := NewParser(strings.NewReader(raw)).ParseGame()
	if err != nil {
		return nil, err
	}
	if game == nil || game.IsEmpty() {
		return nil, errors.ErrEmptyGame
	}
	return game, nil
}

// nextToken gets the next token from the lexer.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// ParseGame parses a single game from the input.
// Returns nil if no more games are available.
func (p *Parser) ParseGame() (*chess.Game, error) {
	if p.currentToken == nil {
		p.nextToken()
	}

	p.skipToNextGame()
	if err := p.lexer.Err(); err != nil {
		return nil, p.readError(err)
	}
	if p.currentToken.Type == EOFToken {
		return nil, nil
	}

	p.gameNum++
	p.lexer.RestartForNewGame()

	game := chess.NewGame()
	game.StartLine = p.currentToken.Line

	p.parseOptTagList(game)
	p.parseMoveList(game)
	game.Result = p.parseResult()
	game.EndLine = p.lexer.LineNumber()

	if err := p.lexer.Err(); err != nil {
		return nil, p.readError(err)
	}
	return game, nil
}

// readError wraps an input failure with its location.
func (p *Parser) readError(err error) error {
	return &errors.ParseError{
		Err:  err,
		File: p.source,
		Line: p.lexer.LineNumber(),
	}
}

// skipToNextGame skips tokens until the start of a game is found.
func (p *Parser) skipToNextGame() {
	for {
		switch p.currentToken.Type {
		case EOFToken, TagToken, MoveToken, TerminatingResult:
			return
		case RAVStart:
			p.skipVariation()
		default:
			p.nextToken()
		}
	}
}

// parseOptTagList parses zero or more tags.
func (p *Parser) parseOptTagList(game *chess.Game) {
	for {
		switch p.currentToken.Type {
		case TagToken:
			p.parseTag(game)
		case CommentToken:
			p.nextToken()
		case StringToken:
			p.logger.Debug("missing tag name",
				zap.Int("line", p.currentToken.Line),
				zap.String("value", p.currentToken.Text))
			p.nextToken()
		default:
			return
		}
	}
}

// parseTag parses a single tag. A repeated name overwrites the earlier value.
func (p *Parser) parseTag(game *chess.Game) {
	name := p.currentToken.Text
	line := p.currentToken.Line
	p.nextToken()

	if p.currentToken.Type != StringToken {
		p.logger.Debug("missing tag string", zap.String("tag", name), zap.Int("line", line))
		return
	}
	game.SetTag(name, p.currentToken.Text)
	p.nextToken()
}

// parseMoveList collects mainline moves until a result, a tag or the end
// of input.
func (p *Parser) parseMoveList(game *chess.Game) {
	for {
		switch p.currentToken.Type {
		case MoveToken:
			game.AppendMove(p.currentToken.Text)
			p.nextToken()
		case RAVStart:
			p.skipVariation()
		case RAVEnd:
			p.nextToken()
		case MoveNumber, NAGToken, CommentToken, StringToken:
			p.nextToken()
		default:
			return
		}
	}
}

// skipVariation skips a parenthesised variation, including any nested in it.
func (p *Parser) skipVariation() {
	depth := 0
	for {
		switch p.currentToken.Type {
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		case EOFToken:
			p.logger.Debug("missing ')' to close variation", zap.Int("game", p.gameNum))
			return
		}
		p.nextToken()
	}
}

// parseResult parses a game result. The token after the result is not
// read, so a streaming reader is not blocked waiting for the next game.
func (p *Parser) parseResult() string {
	if p.currentToken.Type == TerminatingResult {
		result := p.currentToken.Text
		p.currentToken = &Token{Type: NoToken}
		return result
	}
	return ""
}

// ParseAllGames parses all games from the input. Games with neither tags
// nor moves are dropped.
func (p *Parser) ParseAllGames() ([]*chess.Game, error) {
	games := make([]*chess.Game, 0, 16)

	for {
		game, err := p.ParseGame()
		if err != nil {
			return games, err
		}
		if game == nil {
			break
		}
		if game.IsEmpty() {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}
