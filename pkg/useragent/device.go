package useragent

import (
	"strings"
)

// Device describes the hardware class of the client.
type Device struct {
	Type  string `json:"type"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

var (
	botKeywords     = newKeywordSet("bot", "spider", "crawler", "archiver", "slurp", "facebookexternalhit", "lighthouse", "headlesschrome", "monitor", "scraper")
	tvKeywords      = newKeywordSet("smart-tv", "smarttv", "appletv", "googletv", "android tv", "webos", "tizen")
	consoleKeywords = newKeywordSet("playstation", "xbox", "nintendo")
	tabletKeywords  = newKeywordSet("tablet", "kindle", "silk")
	mobileKeywords  = newKeywordSet("mobile", "iphone", "ipod", "windows phone", "iemobile", "blackberry")
)

// brandWords is checked in order; the first brand whose keywords occur wins.
var brandWords = []struct {
	brand string
	words keywordSet
}{
	{BrandApple, newKeywordSet("iphone", "ipad", "ipod", "macintosh")},
	{BrandSamsung, newKeywordSet("samsung", "sm-g", "sm-a", "sm-n", "sm-s", "sm-t", "gt-")},
	{BrandHuawei, newKeywordSet("huawei", "honor", "hwa-")},
	{BrandXiaomi, newKeywordSet("xiaomi", "redmi", "miui", "poco")},
	{BrandOppo, newKeywordSet("oppo", "cph1", "cph2")},
	{BrandVivo, newKeywordSet("vivo ", "vivo/", "viv-")},
	{BrandGoogle, newKeywordSet("pixel")},
	{BrandAmazon, newKeywordSet("kindle", "silk", "kftt", "kfjwi")},
}

// ParseDevice classifies the device type and, where recognizable, the brand
// and model. Model detection is limited to Apple hardware.
func ParseDevice(ua string) Device {
	lowerUA := strings.ToLower(ua)
	d := Device{Type: parseDeviceType(lowerUA), Brand: Unknown, Model: Unknown}

	for _, b := range brandWords {
		if b.words.contains(lowerUA) {
			d.Brand = b.brand
			break
		}
	}

	switch {
	case strings.Contains(lowerUA, "iphone"):
		d.Model = "iPhone"
	case strings.Contains(lowerUA, "ipad"):
		d.Model = "iPad"
	case strings.Contains(lowerUA, "macintosh"):
		d.Model = "Mac"
	}

	return d
}

// Order matters: Apple devices are unambiguous, Android tablets omit the
// "mobile" token that phones carry.
func parseDeviceType(lowerUA string) string {
	if lowerUA == "" {
		return DeviceTypeUnknown
	}

	if strings.Contains(lowerUA, "ipad") {
		return DeviceTypeTablet
	}
	if strings.Contains(lowerUA, "iphone") {
		return DeviceTypeMobile
	}
	if botKeywords.contains(lowerUA) {
		return DeviceTypeBot
	}
	if tvKeywords.contains(lowerUA) {
		return DeviceTypeTV
	}
	if strings.Contains(lowerUA, "android") {
		if strings.Contains(lowerUA, "mobile") {
			return DeviceTypeMobile
		}
		return DeviceTypeTablet
	}
	if tabletKeywords.contains(lowerUA) {
		return DeviceTypeTablet
	}
	if mobileKeywords.contains(lowerUA) {
		return DeviceTypeMobile
	}
	if consoleKeywords.contains(lowerUA) {
		return DeviceTypeConsole
	}
	return DeviceTypeDesktop
}
