package enrich

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/btcpulse/pkg/useragent"
)

// rule refines the baseline classification. Rules are evaluated in order
// against the raw user agent and the first match wins.
type rule struct {
	name  string
	match func(ua string) bool
	apply func(ua string, d *ClientDescriptor)
}

var (
	androidVersionRe = regexp.MustCompile(`Android\s+([\d.]+)`)
	iPhoneVersionRe  = regexp.MustCompile(`iPhone OS (\d+)_(\d+)`)
	iPadVersionRe    = regexp.MustCompile(`CPU OS (\d+)_(\d+)`)
	windowsNTRe      = regexp.MustCompile(`Windows NT ([\d.]+)`)
	macVersionRe     = regexp.MustCompile(`Mac OS X (\d+(?:_\d+)*)`)
	darwinVersionRe  = regexp.MustCompile(`Darwin/(\d+)`)
)

var deviceRules = []rule{
	{name: "android", match: contains("Android"), apply: applyAndroid},
	{name: "iphone", match: contains("iPhone"), apply: applyIPhone},
	{name: "ipad", match: contains("iPad"), apply: applyIPad},
	{name: "windows", match: contains("Windows"), apply: applyWindows},
	{name: "macintosh", match: contains("Macintosh"), apply: applyMac},
	{name: "linux", match: contains("Linux"), apply: setDevice("Linux PC")},
	{name: "cli", match: isCLIClient, apply: applyCLI},
	{name: "mobile", match: contains("Mobile"), apply: setDevice("Mobile Phone")},
}

// classify applies the first matching rule. Unmatched agents keep the
// baseline values and the default "Desktop" device.
func classify(ua string, d *ClientDescriptor) (matched string) {
	for _, r := range deviceRules {
		if r.match(ua) {
			r.apply(ua, d)
			return r.name
		}
	}
	return ""
}

func contains(token string) func(string) bool {
	return func(ua string) bool { return strings.Contains(ua, token) }
}

func setDevice(label string) func(string, *ClientDescriptor) {
	return func(_ string, d *ClientDescriptor) { d.Device = label }
}

// androidBrand labels an Android handset. Tokens are matched case-insensitively.
type androidBrand struct {
	brand  string
	tokens []string
	label  func(ua string) (device, model string)
}

var tecnoModelRe = regexp.MustCompile(`(?i)TECNO\s+(\w+)`)

func phone(label string) func(string) (string, string) {
	return func(string) (string, string) { return label, "" }
}

// Checked in order; the first brand with a matching token wins.
var androidBrands = []androidBrand{
	{brand: "TECNO", tokens: []string{"tecno"}, label: func(ua string) (string, string) {
		if m := tecnoModelRe.FindStringSubmatch(ua); m != nil {
			return "TECNO " + m[1], m[1]
		}
		return "TECNO Phone", ""
	}},
	{brand: useragent.BrandSamsung, tokens: []string{"samsung", "sm-"}, label: phone("Samsung Phone")},
	{brand: useragent.BrandXiaomi, tokens: []string{"xiaomi"}, label: phone("Xiaomi Phone")},
	{brand: useragent.BrandXiaomi, tokens: []string{"redmi"}, label: phone("Redmi Phone")},
	{brand: "Infinix", tokens: []string{"infinix"}, label: phone("Infinix Phone")},
	{brand: useragent.BrandOppo, tokens: []string{"oppo"}, label: phone("Oppo Phone")},
	{brand: useragent.BrandVivo, tokens: []string{"vivo"}, label: phone("Vivo Phone")},
	{brand: "Realme", tokens: []string{"realme"}, label: phone("Realme Phone")},
	{brand: "OnePlus", tokens: []string{"oneplus"}, label: phone("OnePlus Phone")},
	{brand: useragent.BrandGoogle, tokens: []string{"google", "pixel"}, label: phone("Google Pixel")},
	{brand: useragent.BrandHuawei, tokens: []string{"huawei", "honor"}, label: phone("Huawei Phone")},
}

func applyAndroid(ua string, d *ClientDescriptor) {
	version := ""
	if m := androidVersionRe.FindStringSubmatch(ua); m != nil {
		version = m[1]
	}
	d.OS = strings.TrimSpace("Android " + version)
	d.OSVersion = version
	d.Device = "Android Phone"

	lower := strings.ToLower(ua)
	for _, b := range androidBrands {
		if !containsAny(lower, b.tokens) {
			continue
		}
		device, model := b.label(ua)
		d.Device = device
		d.DeviceBrand = b.brand
		if model != "" {
			d.DeviceModel = model
		}
		return
	}
}

func applyIPhone(ua string, d *ClientDescriptor) {
	d.Device = "iPhone"
	d.DeviceBrand = useragent.BrandApple
	d.DeviceModel = "iPhone"
	d.OS, d.OSVersion = appleOS(iPhoneVersionRe, ua)
}

func applyIPad(ua string, d *ClientDescriptor) {
	d.Device = "iPad"
	d.DeviceBrand = useragent.BrandApple
	d.DeviceModel = "iPad"
	d.OS, d.OSVersion = appleOS(iPadVersionRe, ua)
}

func appleOS(re *regexp.Regexp, ua string) (os, version string) {
	m := re.FindStringSubmatch(ua)
	if m == nil {
		return "iOS", ""
	}
	version = m[1] + "." + m[2]
	return "iOS " + version, version
}

var windowsReleases = map[string]string{
	"10.0": "Windows 10/11",
	"6.3":  "Windows 8.1",
	"6.2":  "Windows 8",
	"6.1":  "Windows 7",
}

func applyWindows(ua string, d *ClientDescriptor) {
	d.Device = "Windows PC"
	nt := ""
	if m := windowsNTRe.FindStringSubmatch(ua); m != nil {
		nt = m[1]
	}
	d.OSVersion = nt
	if name, ok := windowsReleases[nt]; ok {
		d.OS = name
		return
	}
	d.OS = strings.TrimSpace("Windows " + nt)
}

func applyMac(ua string, d *ClientDescriptor) {
	d.Device = "Mac"
	d.DeviceBrand = useragent.BrandApple
	d.DeviceModel = "Mac"

	version := ""
	if m := macVersionRe.FindStringSubmatch(ua); m != nil {
		version = strings.ReplaceAll(m[1], "_", ".")
	} else if m := darwinVersionRe.FindStringSubmatch(ua); m != nil {
		version = macOSFromDarwin(m[1])
	}

	d.OSVersion = version
	d.OS = strings.TrimSpace("macOS " + version)
}

// macOSFromDarwin maps a Darwin kernel major version to the macOS release.
// Darwin 20 shipped with macOS 11; earlier kernels map to 10.x.
func macOSFromDarwin(major string) string {
	n, err := strconv.Atoi(major)
	if err != nil {
		return ""
	}
	switch {
	case n >= 20:
		return strconv.Itoa(n - 9)
	case n >= 5:
		return "10." + strconv.Itoa(n-4)
	}
	return ""
}

var cliTokens = []string{"curl", "wget", "python", "node", "go-http-client", "httpie"}

func isCLIClient(ua string) bool {
	return containsAny(strings.ToLower(ua), cliTokens)
}

func applyCLI(_ string, d *ClientDescriptor) {
	d.Device = "API/Desktop"
	d.OS = "Server/CLI"
	d.OSVersion = ""
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
