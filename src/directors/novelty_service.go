package directors

import (
	"fmt"

	"pokeserver/src/helpers"
)

// DefaultBugCount is the count shown on /bugs.
const DefaultBugCount = 99

// bugCountLimit is the count past which the song starts over.
const bugCountLimit = 200

// ProjectName builds the project-name generator message.
func ProjectName(verb, adjective, noun string) string {
	return fmt.Sprintf("Congratulations on starting a new project called %s-%s-%s!", verb, adjective, noun)
}

// ParseBugCount reads a path segment the way JavaScript's Number() does.
// Input that is not a number is NaN rather than an error.
func ParseBugCount(raw string) float64 {
	return helpers.ParseNumber(raw)
}

// BugCountMessage renders the bug counter HTML fragment: the current count
// followed by a link to count+2, or to "/" once the count passes 200.
func BugCountMessage(count float64) string {
	message := fmt.Sprintf("%s little bugs in the code", helpers.FormatNumber(count))

	// NaN compares false, so a non-numeric count keeps offering the next link.
	if count > bugCountLimit {
		return message + `<br><a href="/">Start over</a>`
	}
	return message + fmt.Sprintf(`<br><a href="/bugs/%s">Pull one down, patch it around</a>`, helpers.FormatNumber(count+2))
}
