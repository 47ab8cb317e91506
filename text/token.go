package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// TokenKind classifies a layout token.
type TokenKind uint8

const (
	// TokenChar is a single character, spaces included.
	TokenChar TokenKind = iota
	// TokenImage is a registered inline image token.
	TokenImage
	// TokenNewline forces a line break.
	TokenNewline
)

func (k TokenKind) String() string {
	switch k {
	case TokenChar:
		return "Char"
	case TokenImage:
		return "Image"
	case TokenNewline:
		return "Newline"
	}
	return "Unknown"
}

// Token is the unit of layout. Rune is set for TokenChar, Image for
// TokenImage.
type Token struct {
	Kind  TokenKind
	Rune  rune
	Image string
}

// IsSpace reports whether t is a space character.
func (t Token) IsSpace() bool { return t.Kind == TokenChar && t.Rune == ' ' }

// Normalize converts line endings to "\n" and composes s to NFC.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}

// TokenizePlain splits s by lines and then by spaces. It is the fast path
// for text without inline images and yields the same tokens as Tokenize
// with no image tokens.
func TokenizePlain(s string) []Token {
	s = Normalize(s)
	tokens := make([]Token, 0, len(s))
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			tokens = append(tokens, Token{Kind: TokenNewline, Rune: '\n'})
		}
		for j, word := range strings.Split(line, " ") {
			if j > 0 {
				tokens = append(tokens, Token{Kind: TokenChar, Rune: ' '})
			}
			for _, r := range word {
				tokens = append(tokens, Token{Kind: TokenChar, Rune: r})
			}
		}
	}
	return tokens
}

// Tokenize scans s character by character, replacing occurrences of the
// image tokens. At each position the longest matching token wins; tokens
// of equal length resolve to the one listed first. Empty tokens are
// ignored.
func Tokenize(s string, imageTokens []string) []Token {
	s = Normalize(s)
	names := make([]string, 0, len(imageTokens))
	for _, t := range imageTokens {
		if t = norm.NFC.String(t); t != "" {
			names = append(names, t)
		}
	}

	tokens := make([]Token, 0, len(s))
	for i := 0; i < len(s); {
		if name := matchImage(s[i:], names); name != "" {
			tokens = append(tokens, Token{Kind: TokenImage, Image: name})
			i += len(name)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\n' {
			tokens = append(tokens, Token{Kind: TokenNewline, Rune: r})
		} else {
			tokens = append(tokens, Token{Kind: TokenChar, Rune: r})
		}
		i += size
	}
	return tokens
}

func matchImage(s string, names []string) string {
	best := ""
	for _, n := range names {
		if len(n) > len(best) && strings.HasPrefix(s, n) {
			best = n
		}
	}
	return best
}
