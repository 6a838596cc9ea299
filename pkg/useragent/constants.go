package useragent

// Unknown is the family reported when a component cannot be identified.
const Unknown = "Unknown"

// Device types represent the category of device that made the request
const (
	DeviceTypeBot     = "bot"
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeTV      = "tv"
	DeviceTypeConsole = "console"
	DeviceTypeUnknown = "unknown"
)

// Device brands
const (
	BrandApple   = "Apple"
	BrandSamsung = "Samsung"
	BrandHuawei  = "Huawei"
	BrandXiaomi  = "Xiaomi"
	BrandOppo    = "Oppo"
	BrandVivo    = "Vivo"
	BrandGoogle  = "Google"
	BrandAmazon  = "Amazon"
)

// Browser families as they are reported to callers
const (
	BrowserChrome   = "Chrome"
	BrowserFirefox  = "Firefox"
	BrowserSafari   = "Safari"
	BrowserEdge     = "Edge"
	BrowserOpera    = "Opera"
	BrowserIE       = "IE"
	BrowserSamsung  = "Samsung Internet"
	BrowserUC       = "UC Browser"
	BrowserHuawei   = "Huawei Browser"
	BrowserMIUI     = "MIUI Browser"
	BrowserBrave    = "Brave"
	BrowserVivaldi  = "Vivaldi"
	BrowserYandex   = "Yandex Browser"
	BrowserCurl     = "curl"
	BrowserWget     = "Wget"
	BrowserPython   = "Python Requests"
	BrowserNode     = "Node.js"
	BrowserGoClient = "Go-http-client"
)

// Operating system families
const (
	OSWindows      = "Windows"
	OSWindowsPhone = "Windows Phone"
	OSMacOS        = "Mac OS X"
	OSiOS          = "iOS"
	OSAndroid      = "Android"
	OSLinux        = "Linux"
	OSChromeOS     = "Chrome OS"
	OSHarmonyOS    = "HarmonyOS"
	OSFireOS       = "Fire OS"
)
