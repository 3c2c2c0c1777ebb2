// internal/words/words.go
//
// Word list management for the daily puzzle.
//
// Responsibilities:
//   - Load the answer list and the valid-guess list from JSON files, or fall
//     back to the embedded defaults in the assets package.
//   - Maintain a lookup set for guess acceptance (answers ∪ valid guesses).
//
// Word Lists:
//   - "answers": ordered daily solutions (JSON array of strings).
//   - "valid":   accepted guesses (JSON array of strings, case-insensitive).
//
// Load behavior:
//  1. If both paths are set, read answers from the first and valid guesses
//     from the second.
//  2. If only the valid path is set, use that list for both.
//  3. If neither is set, use the embedded lists.
//
// Constraints:
//   - Words must be n alphabetic letters (a–z); others are dropped.
//   - Lists are normalized to lowercase.
//   - Any failure is reported as game.ErrWordListLoadFailed.

package words

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/powerdle/assets"
	"github.com/robalobadob/powerdle/internal/game"
)

// List is an immutable pair of word lists.
type List struct {
	answers []string            // ordered daily answers
	allowed map[string]struct{} // answers ∪ valid guesses
}

// New builds a List from already-decoded words.
// Words are lowercased; entries that are not n letters are dropped.
func New(answers, valid []string, n int) *List {
	l := &List{
		answers: normalize(answers, n),
		allowed: make(map[string]struct{}),
	}
	for _, w := range l.answers {
		l.allowed[w] = struct{}{}
	}
	for _, w := range normalize(valid, n) {
		l.allowed[w] = struct{}{}
	}
	return l
}

// Parse decodes two JSON arrays of strings into a List.
func Parse(answersJSON, validJSON []byte, n int) (*List, error) {
	var ans, valid []string
	if err := json.Unmarshal(answersJSON, &ans); err != nil {
		return nil, fmt.Errorf("%w: answers: %v", game.ErrWordListLoadFailed, err)
	}
	if err := json.Unmarshal(validJSON, &valid); err != nil {
		return nil, fmt.Errorf("%w: valid guesses: %v", game.ErrWordListLoadFailed, err)
	}
	l := New(ans, valid, n)
	if len(l.answers) == 0 {
		return nil, fmt.Errorf("%w: answers list is empty", game.ErrWordListLoadFailed)
	}
	return l, nil
}

// Load reads the lists from the given files, or the embedded defaults when
// both paths are empty.
func Load(answersPath, validPath string, n int) (*List, error) {
	var (
		ansJSON, validJSON []byte
		err                error
	)
	switch {
	case answersPath != "" && validPath != "":
		if ansJSON, err = readFile(answersPath); err != nil {
			return nil, err
		}
		if validJSON, err = readFile(validPath); err != nil {
			return nil, err
		}
	case validPath != "":
		if validJSON, err = readFile(validPath); err != nil {
			return nil, err
		}
		ansJSON = validJSON
	case answersPath != "":
		if ansJSON, err = readFile(answersPath); err != nil {
			return nil, err
		}
		validJSON = []byte("[]")
	default:
		if ansJSON, err = assets.AnswersJSON(); err != nil {
			return nil, fmt.Errorf("%w: %v", game.ErrWordListLoadFailed, err)
		}
		if validJSON, err = assets.ValidJSON(); err != nil {
			return nil, fmt.Errorf("%w: %v", game.ErrWordListLoadFailed, err)
		}
	}
	return Parse(ansJSON, validJSON, n)
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrWordListLoadFailed, err)
	}
	return b, nil
}

// normalize lowercases and trims, keeping only n-letter alphabetic words.
func normalize(list []string, n int) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if game.ValidWord(w, n) {
			out = append(out, w)
		}
	}
	return out
}

// Answers returns the ordered answer list.
func (l *List) Answers() []string { return l.answers }

// IsAllowed reports whether w is a valid guess (answers ∪ valid guesses).
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowed[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}
