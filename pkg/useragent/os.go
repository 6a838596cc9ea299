package useragent

import (
	"regexp"
	"strings"
)

// OS is the operating system family and version.
type OS struct {
	Family  string `json:"family"`
	Version string `json:"version"`
}

// String returns "Family Version", or just the family when the version is unknown.
func (o OS) String() string {
	if o.Family == "" {
		return Unknown
	}
	if o.Version == "" {
		return o.Family
	}
	return o.Family + " " + o.Version
}

var (
	windowsPhoneKeywords = newKeywordSet("windows phone")
	windowsKeywords      = newKeywordSet("windows")
	iOSKeywords          = newKeywordSet("iphone", "ipad", "ipod")
	macOSKeywords        = newKeywordSet("macintosh", "mac os x")
	harmonyOSKeywords    = newKeywordSet("harmonyos")
	androidKeywords      = newKeywordSet("android")
	fireOSKeywords       = newKeywordSet("kindle", "silk")
	chromeOSKeywords     = newKeywordSet("cros", "chromeos", "chrome os")
	linuxKeywords        = newKeywordSet("linux", "ubuntu", "debian", "fedora", "x11")
)

var (
	windowsVersionRe = regexp.MustCompile(`Windows NT ([\d.]+)`)
	iOSVersionRe     = regexp.MustCompile(`(?:iPhone|CPU) OS (\d+(?:_\d+)*)`)
	macVersionRe     = regexp.MustCompile(`Mac OS X (\d+(?:[_.]\d+)*)`)
	androidVersionRe = regexp.MustCompile(`Android\s+([\d.]+)`)
	harmonyVersionRe = regexp.MustCompile(`HarmonyOS[ /]?([\d.]+)`)
)

// ParseOS identifies the operating system. Versions keep the separator style
// of iOS and macOS normalized to dots; Windows reports the raw NT version.
func ParseOS(ua string) OS {
	lowerUA := strings.ToLower(ua)
	if lowerUA == "" {
		return OS{Family: Unknown}
	}

	if windowsKeywords.contains(lowerUA) {
		if windowsPhoneKeywords.contains(lowerUA) {
			return OS{Family: OSWindowsPhone}
		}
		return OS{Family: OSWindows, Version: extractVersion(ua, windowsVersionRe)}
	}

	if iOSKeywords.contains(lowerUA) {
		return OS{Family: OSiOS, Version: dotted(extractVersion(ua, iOSVersionRe))}
	}

	if macOSKeywords.contains(lowerUA) {
		return OS{Family: OSMacOS, Version: dotted(extractVersion(ua, macVersionRe))}
	}

	if harmonyOSKeywords.contains(lowerUA) {
		return OS{Family: OSHarmonyOS, Version: extractVersion(ua, harmonyVersionRe)}
	}

	if androidKeywords.contains(lowerUA) {
		return OS{Family: OSAndroid, Version: extractVersion(ua, androidVersionRe)}
	}

	if fireOSKeywords.contains(lowerUA) {
		return OS{Family: OSFireOS}
	}

	if chromeOSKeywords.contains(lowerUA) {
		return OS{Family: OSChromeOS}
	}

	if linuxKeywords.contains(lowerUA) {
		return OS{Family: OSLinux}
	}

	return OS{Family: Unknown}
}

func dotted(v string) string {
	return strings.ReplaceAll(v, "_", ".")
}
