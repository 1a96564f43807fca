package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Lexer tokenizes PGN input.
type Lexer struct {
	reader   *bufio.Reader
	line     string
	pos      int
	tokStart int
	lineNum  int
	ravLevel int
	eof      bool
	err      error
	logger   *zap.Logger
}

// Character classification table
var chTab [256]TokenType

func init() {
	initLexTables()
}

// initLexTables initializes the character classification table. Any byte
// not named here is part of a word (move, move number or result).
func initLexTables() {
	for i := range chTab {
		chTab[i] = Word
	}
	for c := 0; c < ' '; c++ {
		chTab[c] = ErrorToken
	}
	chTab[0x7f] = ErrorToken

	for _, c := range []byte{' ', '\t', '\r', '\n', '\f', '\v'} {
		chTab[c] = Whitespace
	}

	chTab['['] = TagStart
	chTab[']'] = TagEnd
	chTab['"'] = DoubleQuote
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment

	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['%'] = Percent
}

// NewLexer creates a new lexer for the given reader.
// If logger is nil, diagnostics are discarded.
func NewLexer(r io.Reader, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lexer{
		reader: bufio.NewReader(r),
		logger: logger,
	}
}

// readLine reads the next line from input, transcoded to UTF-8.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if err != io.EOF {
			l.err = err
			return false
		}
		if len(line) == 0 {
			return false
		}
	}
	l.line = decodeLine(line, l.lineNum == 0)
	l.pos = 0
	l.lineNum++
	return true
}

// currentChar returns the current character or 0 if at end of line.
func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

// advance moves to the next character.
func (l *Lexer) advance() {
	if l.pos < len(l.line) {
		l.pos++
	}
}

// skipWhile advances past every character of the given class.
func (l *Lexer) skipWhile(class TokenType) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == class {
		l.advance()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		token := l.getNextSymbol()
		if token.Type != NoToken {
			token.Line = l.lineNum
			token.Column = l.tokStart + 1
			return token
		}
	}
}

// getNextSymbol identifies the next symbol.
func (l *Lexer) getNextSymbol() *Token {
	if l.pos >= len(l.line) {
		if !l.readLine() {
			l.tokStart = 0
			return &Token{Type: EOFToken}
		}
		return &Token{Type: NoToken}
	}

	ch := l.currentChar()
	symbolStart := l.pos
	l.tokStart = symbolStart
	l.advance()

	switch chTab[ch] {
	case Whitespace:
		l.skipWhile(Whitespace)
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case TagEnd:
		return &Token{Type: NoToken}

	case DoubleQuote:
		return l.gatherString()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		l.logger.Debug("unmatched comment end", zap.Int("line", l.lineNum))
		return &Token{Type: NoToken}

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}

	case NAGToken:
		start := l.pos
		for l.pos < len(l.line) && isDigit(l.currentChar()) {
			l.advance()
		}
		return &Token{Type: NAGToken, Text: "$" + l.line[start:l.pos]}

	case Annotate:
		l.skipWhile(Annotate)
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[symbolStart:l.pos])}

	case RAVStart:
		l.ravLevel++
		return &Token{Type: RAVStart}

	case RAVEnd:
		if l.ravLevel > 0 {
			l.ravLevel--
			return &Token{Type: RAVEnd}
		}
		l.logger.Debug("too many ')'", zap.Int("line", l.lineNum))
		return &Token{Type: NoToken}

	case Percent:
		// An escape line: '%' in the first column hides the rest of the line.
		if symbolStart == 0 {
			l.pos = len(l.line)
			return &Token{Type: NoToken}
		}
		l.logger.Debug("stray '%'", zap.Int("line", l.lineNum))
		return &Token{Type: NoToken}

	case Word:
		return l.gatherWord(symbolStart)

	default:
		l.logger.Debug("unknown character",
			zap.Int("line", l.lineNum),
			zap.String("char", strconv.QuoteRune(rune(ch))))
		l.skipWhile(ErrorToken)
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a tag name after '['.
func (l *Lexer) gatherTag() *Token {
	l.skipWhile(Whitespace)

	start := l.pos
	for l.pos < len(l.line) && isTagNameChar(l.currentChar()) {
		l.advance()
	}

	if l.pos > start {
		return &Token{Type: TagToken, Text: l.line[start:l.pos]}
	}
	return &Token{Type: NoToken}
}

// gatherString gathers a quoted string, honouring \" and \\ escapes.
func (l *Lexer) gatherString() *Token {
	var sb strings.Builder
	escaped := false

	for l.pos < len(l.line) {
		ch := l.currentChar()
		l.advance()

		if escaped {
			sb.WriteByte(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if ch == '"' {
			return &Token{Type: StringToken, Text: sb.String()}
		}

		sb.WriteByte(ch)
	}

	l.logger.Debug("missing closing quote", zap.Int("line", l.lineNum))
	return &Token{Type: StringToken, Text: strings.TrimRight(sb.String(), "\r\n")}
}

// gatherComment gathers a brace comment, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder

	for {
		for l.pos < len(l.line) {
			ch := l.currentChar()
			l.advance()
			if ch == '}' {
				return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String())}
			}
			sb.WriteByte(ch)
		}

		if !l.readLine() {
			break
		}
	}

	l.logger.Debug("missing end of comment", zap.Int("line", l.lineNum))
	return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String())}
}

// gatherWord gathers a run of word characters and classifies it as a
// result, a move number or a move.
func (l *Lexer) gatherWord(symbolStart int) *Token {
	l.skipWhile(Word)
	word := l.line[symbolStart:l.pos]

	switch word {
	case WhiteWins, BlackWins, Draw, Unfinished:
		return &Token{Type: TerminatingResult, Text: word}
	case "--", "Z0":
		return &Token{Type: MoveToken, Text: NullMove}
	case "e.p.", "e.p", "ep":
		// A detached en passant marker adds nothing to the preceding capture.
		return &Token{Type: NoToken}
	}

	if isDigit(word[0]) && !strings.HasPrefix(word, "0-0") {
		return l.gatherMoveNumber(word, symbolStart)
	}
	return &Token{Type: MoveToken, Text: word}
}

// gatherMoveNumber handles a word starting with a digit: "12", "12.",
// "12..." or "12.e4". Text after the dots is lexed as the next token.
func (l *Lexer) gatherMoveNumber(word string, symbolStart int) *Token {
	digits := 0
	for digits < len(word) && isDigit(word[digits]) {
		digits++
	}
	dots := digits
	for dots < len(word) && word[dots] == '.' {
		dots++
	}
	if dots == digits && digits < len(word) {
		// Digits run straight into other text: not a move number.
		return &Token{Type: MoveToken, Text: word}
	}

	n, err := strconv.Atoi(word[:digits])
	if err != nil {
		n = 0
	}
	l.pos = symbolStart + dots
	return &Token{Type: MoveNumber, MoveNum: n}
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isTagNameChar(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Err returns the first read error other than io.EOF.
func (l *Lexer) Err() error {
	return l.err
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}

// RAVLevel returns the current RAV nesting level.
func (l *Lexer) RAVLevel() int {
	return l.ravLevel
}

// RestartForNewGame resets lexer state for a new game.
func (l *Lexer) RestartForNewGame() {
	l.ravLevel = 0
}
