package lexer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"c0/internal/diag"
	"c0/internal/source"
	"c0/internal/token"
	"c0/internal/trace"
)

// maxLiteral is the largest value an integer literal may denote.
const maxLiteral = 1<<31 - 1

type state uint8

const (
	stateInitial state = iota
	stateZero
	stateHexPrefix
	stateHex
	stateDecimal
	stateIdent
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Read loads the whole of r into a virtual file and returns a lexer over it.
// A failing reader is reported as a stream error.
func Read(name string, r io.Reader, opts Options) (*Lexer, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", name, err, diag.ErrStream)
	}
	fs := source.NewFileSet()
	content, flags := source.Normalize(content)
	id := fs.Add(name, content, flags|source.FileVirtual)
	return New(fs.Get(id), opts), nil
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// AllTokens drains the lexer. Reaching the end of input is success;
// any other error discards the tokens read so far.
func (lx *Lexer) AllTokens() ([]token.Token, error) {
	tokens := make([]token.Token, 0, 64)
	for {
		tok, err := lx.NextToken()
		if err != nil {
			if errors.Is(err, diag.ErrEOF) {
				trace.Point(lx.opts.tracer(), trace.ScopeModule, "lex", fmt.Sprintf("%s: %d tokens", lx.file.Path, len(tokens)))
				return tokens, nil
			}
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// NextToken runs the automaton until one token is complete.
// At end of input it returns the LexEndOfFile error.
func (lx *Lexer) NextToken() (token.Token, error) {
	var (
		st    = stateInitial
		buf   strings.Builder
		start source.Pos
	)
	for {
		pos := lx.cursor.Pos()
		ch, ok := lx.cursor.Next()

		switch st {
		case stateInitial:
			if !ok {
				return token.Token{}, diag.NewNoPos(diag.LexEndOfFile)
			}
			switch {
			case isBlank(ch):
				continue
			case !isPrint(ch):
				lx.cursor.Unread()
				return token.Token{}, diag.New(diag.LexInvalidInput, pos)
			case ch == '0':
				st = stateZero
			case isDigit(ch):
				st = stateDecimal
			case isAlpha(ch):
				st = stateIdent
			default:
				return lx.scanOperator(ch, pos)
			}
			start = pos
			buf.WriteByte(ch)

		case stateZero:
			if ok && (ch == 'x' || ch == 'X') {
				buf.WriteByte(ch)
				st = stateHexPrefix
				continue
			}
			// "0" is complete; whatever follows is lexed again
			lx.cursor.Unread()
			return lx.emit(token.DecimalLit, buf.String(), 0, start), nil

		case stateHexPrefix:
			switch {
			case ok && isHex(ch):
				buf.WriteByte(ch)
				st = stateHex
			default:
				// "0x" без hex-цифры, в том числе "0xg"
				lx.cursor.Unread()
				return token.Token{}, diag.New(diag.LexInvalidInput, start)
			}

		case stateHex:
			switch {
			case ok && isHex(ch):
				buf.WriteByte(ch)
			case ok && isAlpha(ch):
				buf.WriteByte(ch)
				st = stateIdent
			default:
				lx.cursor.Unread()
				return lx.integer(token.HexLit, buf.String(), start)
			}

		case stateDecimal:
			switch {
			case ok && isDigit(ch):
				buf.WriteByte(ch)
			case ok && isAlpha(ch):
				buf.WriteByte(ch)
				st = stateIdent
			default:
				lx.cursor.Unread()
				return lx.integer(token.DecimalLit, buf.String(), start)
			}

		case stateIdent:
			if ok && (isAlpha(ch) || isDigit(ch)) {
				buf.WriteByte(ch)
				continue
			}
			lx.cursor.Unread()
			return lx.identOrKeyword(buf.String(), start)
		}
	}
}

func (lx *Lexer) emit(kind token.Kind, text string, value int64, start source.Pos) token.Token {
	return token.Token{
		Kind:  kind,
		Text:  text,
		Value: value,
		Start: start,
		End:   lx.cursor.Pos(),
	}
}

func (lx *Lexer) integer(kind token.Kind, text string, start source.Pos) (token.Token, error) {
	digits, base := text, 10
	if kind == token.HexLit {
		digits, base = text[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v > maxLiteral {
		return token.Token{}, diag.New(diag.LexValueOverflow, start)
	}
	return lx.emit(kind, text, int64(v), start), nil
}

func (lx *Lexer) identOrKeyword(text string, start source.Pos) (token.Token, error) {
	// сюда попадают и числа с буквами вроде 123abc / 0x1g
	if isDigit(text[0]) {
		return token.Token{}, diag.New(diag.LexInvalidIdentifier, start)
	}
	if kw, ok := token.LookupKeyword(text); ok {
		return lx.emit(kw, text, 0, start), nil
	}
	return lx.emit(token.Ident, text, 0, start), nil
}
