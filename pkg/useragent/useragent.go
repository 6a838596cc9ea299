// Package useragent provides utilities for parsing and analyzing HTTP User-Agent strings.
package useragent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserAgent contains the parsed information from a user agent string
type UserAgent struct {
	Raw     string  `json:"raw"`
	Browser Browser `json:"browser"`
	OS      OS      `json:"os"`
	Device  Device  `json:"device"`
}

// String returns the raw user agent string
func (ua UserAgent) String() string { return ua.Raw }

// IsBot returns true if the user agent is a crawler or monitoring client
func (ua UserAgent) IsBot() bool { return ua.Device.Type == DeviceTypeBot }

// IsMobile returns true if the user agent is a phone
func (ua UserAgent) IsMobile() bool { return ua.Device.Type == DeviceTypeMobile }

// IsTablet returns true if the user agent is a tablet
func (ua UserAgent) IsTablet() bool { return ua.Device.Type == DeviceTypeTablet }

// IsDesktop returns true if the user agent is a desktop computer
func (ua UserAgent) IsDesktop() bool { return ua.Device.Type == DeviceTypeDesktop }

var botNameMap = map[string]string{
	"googlebot":           "Googlebot",
	"bingbot":             "Bingbot",
	"yandexbot":           "YandexBot",
	"baiduspider":         "Baiduspider",
	"twitterbot":          "Twitterbot",
	"facebookexternalhit": "Facebook",
	"linkedinbot":         "LinkedInBot",
	"slackbot":            "Slackbot",
	"telegrambot":         "TelegramBot",
}

var botNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([a-z0-9\-_]+bot)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+spider)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+crawler)`),
}

func extractBotName(ua string) string {
	lowerUA := strings.ToLower(ua)
	for keyword, name := range botNameMap {
		if strings.Contains(lowerUA, keyword) {
			return name
		}
	}

	title := cases.Title(language.English)
	for _, pattern := range botNamePatterns {
		if matches := pattern.FindStringSubmatch(ua); len(matches) > 1 {
			return title.String(strings.ToLower(matches[1]))
		}
	}

	return "Unknown Bot"
}

// Parse parses a user agent string. Unrecognized components are reported
// as Unknown rather than failing; an error is returned only for an empty
// input or a string in which nothing at all could be identified, and the
// returned UserAgent is usable in both cases.
func Parse(ua string) (UserAgent, error) {
	ua = strings.TrimSpace(ua)
	result := UserAgent{
		Raw:     ua,
		Browser: ParseBrowser(ua),
		OS:      ParseOS(ua),
		Device:  ParseDevice(ua),
	}

	if ua == "" {
		result.Device.Type = DeviceTypeUnknown
		return result, ErrEmptyUserAgent
	}

	if result.IsBot() {
		result.Browser = Browser{Family: extractBotName(ua)}
		return result, nil
	}

	if result.Browser.Family == Unknown && result.OS.Family == Unknown {
		return result, ErrMalformedUserAgent
	}

	return result, nil
}
