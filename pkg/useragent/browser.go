package useragent

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// Browser is the browser family and version.
type Browser struct {
	Family  string `json:"family"`
	Version string `json:"version"`
}

// String returns "Family Version", or just the family when the version is unknown.
func (b Browser) String() string {
	if b.Family == "" {
		return Unknown
	}
	if b.Version == "" {
		return b.Family
	}
	return b.Family + " " + b.Version
}

// BrowserPattern defines a pattern for detecting a browser
type BrowserPattern struct {
	Family    string
	Keywords  []string // any of
	Excludes  []string
	Regex     *regexp.Regexp
	OrderHint int
}

func extractVersion(ua string, regex *regexp.Regexp) string {
	if regex == nil {
		return ""
	}
	matches := regex.FindStringSubmatch(ua)
	if len(matches) < 2 {
		return ""
	}
	version := matches[1]
	if len(version) > 20 {
		version = version[:20]
	}
	return version
}

func (p BrowserPattern) match(lowerUA string) bool {
	found := false
	for _, keyword := range p.Keywords {
		if strings.Contains(lowerUA, keyword) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for _, exclude := range p.Excludes {
		if strings.Contains(lowerUA, exclude) {
			return false
		}
	}
	return true
}

// Chromium forks announce themselves before the generic "chrome" token,
// so they must be checked first.
var browserPatterns = byOrderHint([]BrowserPattern{
	{Family: BrowserEdge, Keywords: []string{"edg/", "edge/", "edga/", "edgios/"}, Regex: regexp.MustCompile(`(?i)(?:edge|edg|edga|edgios)/([\d.]+)`), OrderHint: 10},
	{Family: BrowserSamsung, Keywords: []string{"samsungbrowser"}, Regex: regexp.MustCompile(`(?i)samsungbrowser/([\d.]+)`), OrderHint: 20},
	{Family: BrowserUC, Keywords: []string{"ucbrowser"}, Regex: regexp.MustCompile(`(?i)ucbrowser/([\d.]+)`), OrderHint: 30},
	{Family: BrowserHuawei, Keywords: []string{"huaweibrowser"}, Regex: regexp.MustCompile(`(?i)huaweibrowser/([\d.]+)`), OrderHint: 40},
	{Family: BrowserMIUI, Keywords: []string{"miuibrowser"}, Regex: regexp.MustCompile(`(?i)miuibrowser/([\d.]+)`), OrderHint: 50},
	{Family: BrowserYandex, Keywords: []string{"yabrowser", "yandexbrowser"}, Regex: regexp.MustCompile(`(?i)(?:yabrowser|yandexbrowser)/([\d.]+)`), OrderHint: 60},
	{Family: BrowserVivaldi, Keywords: []string{"vivaldi"}, Regex: regexp.MustCompile(`(?i)vivaldi/([\d.]+)`), OrderHint: 70},
	{Family: BrowserBrave, Keywords: []string{"brave"}, Regex: regexp.MustCompile(`(?i)brave/([\d.]+)`), OrderHint: 80},
	{Family: BrowserOpera, Keywords: []string{"opr/", "opera"}, Regex: regexp.MustCompile(`(?i)(?:opr|opera)[/ ]([\d.]+)`), OrderHint: 90},
	{Family: BrowserChrome, Keywords: []string{"chrome/", "crios/"}, Regex: regexp.MustCompile(`(?i)(?:chrome|crios)/([\d.]+)`), OrderHint: 100},
	{Family: BrowserFirefox, Keywords: []string{"firefox/", "fxios/"}, Regex: regexp.MustCompile(`(?i)(?:firefox|fxios)/([\d.]+)`), OrderHint: 110},
	{Family: BrowserSafari, Keywords: []string{"safari"}, Excludes: []string{"chrome", "chromium", "android"}, Regex: regexp.MustCompile(`(?i)version/([\d.]+)`), OrderHint: 120},
	{Family: BrowserIE, Keywords: []string{"msie", "trident/"}, Regex: regexp.MustCompile(`(?i)(?:msie |rv:)([\d.]+)`), OrderHint: 130},
	{Family: BrowserCurl, Keywords: []string{"curl/"}, Regex: regexp.MustCompile(`(?i)curl/([\d.]+)`), OrderHint: 200},
	{Family: BrowserWget, Keywords: []string{"wget/"}, Regex: regexp.MustCompile(`(?i)wget/([\d.]+)`), OrderHint: 210},
	{Family: BrowserPython, Keywords: []string{"python-requests/", "python-urllib/", "python/"}, Regex: regexp.MustCompile(`(?i)python[\w-]*/([\d.]+)`), OrderHint: 220},
	{Family: BrowserNode, Keywords: []string{"node-fetch", "node/", "undici", "axios/"}, Regex: regexp.MustCompile(`(?i)(?:node|axios)/v?([\d.]+)`), OrderHint: 230},
	{Family: BrowserGoClient, Keywords: []string{"go-http-client/"}, Regex: regexp.MustCompile(`(?i)go-http-client/([\d.]+)`), OrderHint: 240},
})

func byOrderHint(p []BrowserPattern) []BrowserPattern {
	slices.SortStableFunc(p, func(a, b BrowserPattern) int { return cmp.Compare(a.OrderHint, b.OrderHint) })
	return p
}

// ParseBrowser detects the browser family and version. Bots are reported
// under their own name.
func ParseBrowser(ua string) Browser {
	lowerUA := strings.ToLower(ua)
	if lowerUA == "" {
		return Browser{Family: Unknown}
	}

	for _, pattern := range browserPatterns {
		if pattern.match(lowerUA) {
			return Browser{Family: pattern.Family, Version: extractVersion(ua, pattern.Regex)}
		}
	}

	if botKeywords.contains(lowerUA) {
		return Browser{Family: extractBotName(ua)}
	}

	return Browser{Family: Unknown}
}
