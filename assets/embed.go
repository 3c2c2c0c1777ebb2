// Package assets embeds the default word lists.
package assets

import "embed"

//go:embed answers.json valid-guesses.json
var FS embed.FS

// Names of the embedded lists.
const (
	AnswersFile = "answers.json"
	ValidFile   = "valid-guesses.json"
)

// AnswersJSON returns the embedded answer list (a JSON array of strings).
func AnswersJSON() ([]byte, error) {
	return FS.ReadFile(AnswersFile)
}

// ValidJSON returns the embedded valid-guess list (a JSON array of strings).
func ValidJSON() ([]byte, error) {
	return FS.ReadFile(ValidFile)
}
