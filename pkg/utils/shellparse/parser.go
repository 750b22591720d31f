// Package shellparse splits command strings into argv slices using
// POSIX-style word splitting rules, close to Python's shlex.split().
//
// It exists so that a launch command template can carry quoted arguments
// ("python3 -X dev" or paths with spaces) without dragging in a real shell.
package shellparse

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrUnclosedQuote is returned when a quoted string is not properly closed
	ErrUnclosedQuote = errors.New("unclosed quote in command string")

	// ErrTrailingEscape is returned when a backslash appears at the end of input
	ErrTrailingEscape = errors.New("trailing escape character at end of command")
)

// Split parses a command string into arguments.
//
// Rules:
//   - Words are separated by unquoted whitespace
//   - Single quotes preserve everything literally, including backslashes
//   - Double quotes preserve literals except for \" \\ \$ \` escapes
//   - Outside quotes a backslash escapes any single character
//   - Quoted empty strings produce empty arguments
//
// Examples:
//
//	Split(`python3 clock.py`) => ["python3", "clock.py"]
//	Split(`python3 "/path with spaces/clock.py"`) => ["python3", "/path with spaces/clock.py"]
//	Split(`sh -c 'echo hi'`) => ["sh", "-c", "echo hi"]
func Split(command string) ([]string, error) {
	args := []string{}
	var word strings.Builder
	haveWord := false
	var quote rune // active quote character, 0 when unquoted

	runes := []rune(command)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case c == '\\' && quote != '\'':
			if i+1 == len(runes) {
				return nil, ErrTrailingEscape
			}
			i++
			next := runes[i]
			if quote == '"' && next != '"' && next != '\\' && next != '$' && next != '`' {
				// Inside double quotes the backslash stays literal unless
				// it escapes a shell-special character.
				word.WriteRune('\\')
			}
			word.WriteRune(next)
			haveWord = true
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				word.WriteRune(c)
			}
		case c == '\'' || c == '"':
			quote = c
			haveWord = true // a quoted empty string still yields an argument
		case unicode.IsSpace(c):
			if haveWord {
				args = append(args, word.String())
				word.Reset()
				haveWord = false
			}
		default:
			word.WriteRune(c)
			haveWord = true
		}
	}

	if quote != 0 {
		return nil, ErrUnclosedQuote
	}
	if haveWord {
		args = append(args, word.String())
	}
	return args, nil
}
