package riot

import (
	"fmt"
	"strings"
)

// platforms lists the platform routing values accepted for summoner, mastery and league calls.
var platforms = map[string]struct{}{
	"br1": {}, "eun1": {}, "euw1": {}, "jp1": {}, "kr": {}, "la1": {}, "la2": {}, "me1": {},
	"na1": {}, "oc1": {}, "ph2": {}, "ru": {}, "sg2": {}, "th2": {}, "tr1": {}, "tw2": {}, "vn2": {},
}

// regionAliases maps the short names the front end used to send onto platform ids.
var regionAliases = map[string]string{
	"BR":   "br1",
	"EUNE": "eun1",
	"EUW":  "euw1",
	"JP":   "jp1",
	"KR":   "kr",
	"LAN":  "la1",
	"LAS":  "la2",
	"ME":   "me1",
	"NA":   "na1",
	"OCE":  "oc1",
	"TR":   "tr1",
	"RU":   "ru",
	"PH":   "ph2",
	"SG":   "sg2",
	"TH":   "th2",
	"TW":   "tw2",
	"VN":   "vn2",
}

// NormalizeRegion turns a region token from the request path into a platform routing value.
func NormalizeRegion(token string) (string, error) {
	if platform, ok := regionAliases[strings.ToUpper(token)]; ok {
		return platform, nil
	}

	platform := strings.ToLower(token)
	if _, ok := platforms[platform]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, token)
	}
	return platform, nil
}

// ParseRiotID turns the user id path segment into a riot id.
// A literal "+" stands for the "/" between name and tag, since "/" can't appear in a path segment.
func ParseRiotID(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("riot id: %w", ErrBlankParameter)
	}
	return strings.ReplaceAll(userID, "+", "/"), nil
}
