package expr

import (
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int // 1-based column
}

// module prefixes accepted in front of function and constant names
var namespacePrefixes = []string{"numpy.", "np.", "math."}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i + 1}
	}

	pos := l.i + 1
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: pos}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: pos}
	case '*':
		if l.i+1 < len(l.s) && l.s[l.i+1] == '*' {
			l.i += 2
			return token{kind: tokPow, text: "**", pos: pos}
		}
		l.i++
		return token{kind: tokStar, text: "*", pos: pos}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: pos}
	case '^':
		l.i++
		return token{kind: tokPow, text: "^", pos: pos}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: pos}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: pos}
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: pos}
	}

	ch := rune(l.s[l.i])
	if isIdentStart(ch) {
		start := l.i
		l.i++
		for l.i < len(l.s) && (isIdentContinue(rune(l.s[l.i])) || l.s[l.i] == '.') {
			l.i++
		}
		return token{kind: tokIdent, text: stripNamespace(l.s[start:l.i]), pos: pos}
	}
	if ch == '.' || isDigit(ch) {
		start := l.i
		l.i = scanNumber(l.s, l.i)
		return token{kind: tokNumber, text: l.s[start:l.i], pos: pos}
	}

	// Consume the whole rune so multi-byte input reports one character.
	r := []rune(l.s[l.i:])[0]
	l.i += len(string(r))
	return token{kind: tokIllegal, text: string(r), pos: pos}
}

func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(rune(s[j])) {
			i = j
			for i < len(s) && isDigit(rune(s[i])) {
				i++
			}
		}
	}
	return i
}

func stripNamespace(name string) string {
	for _, p := range namespacePrefixes {
		if strings.HasPrefix(name, p) {
			return name[len(p):]
		}
	}
	return name
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContinue(r rune) bool { return isIdentStart(r) || isDigit(r) }
