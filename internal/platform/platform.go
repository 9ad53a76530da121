// Package platform defines the closed set of recognized news provider codes.
package platform

import "fmt"

// Platform identifies the provider an article was ingested from.
type Platform string

const (
	NewsAPI  Platform = "news api"
	Guardian Platform = "guardian"
	RSS      Platform = "rss"
)

// All returns every recognized platform code.
func All() []Platform {
	return []Platform{NewsAPI, Guardian, RSS}
}

// Parse maps a storage/request string onto a Platform. Unknown values are
// rejected so bad codes never get past the deserialization boundary.
func Parse(s string) (Platform, error) {
	switch Platform(s) {
	case NewsAPI:
		return NewsAPI, nil
	case Guardian:
		return Guardian, nil
	case RSS:
		return RSS, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Valid reports whether p is one of the recognized codes.
func (p Platform) Valid() bool {
	_, err := Parse(string(p))
	return err == nil
}

func (p Platform) String() string {
	return string(p)
}
