package enrich

import "time"

// Unknown is the placeholder for any attribute that could not be derived.
const Unknown = "Unknown"

// ClientDescriptor is the normalized profile of the caller of one request.
type ClientDescriptor struct {
	IP             string     `json:"ip" bson:"ip"`
	IsLocal        bool       `json:"isLocal" bson:"isLocal"`
	Country        string     `json:"country" bson:"country"`
	City           string     `json:"city" bson:"city"`
	Region         string     `json:"region" bson:"region"`
	Timezone       string     `json:"timezone" bson:"timezone"`
	LL             [2]float64 `json:"ll" bson:"ll"`
	Browser        string     `json:"browser" bson:"browser"`
	BrowserVersion string     `json:"browserVersion" bson:"browserVersion"`
	OS             string     `json:"os" bson:"os"`
	OSVersion      string     `json:"osVersion" bson:"osVersion"`
	Device         string     `json:"device" bson:"device"`
	DeviceBrand    string     `json:"deviceBrand" bson:"deviceBrand"`
	DeviceModel    string     `json:"deviceModel" bson:"deviceModel"`
	DeviceType     string     `json:"deviceType" bson:"deviceType"`
	UserAgent      string     `json:"userAgent" bson:"userAgent"`
	Timestamp      time.Time  `json:"timestamp" bson:"timestamp"`
}

// newDescriptor returns a descriptor with every field at its default.
func newDescriptor(ip, userAgent string, now time.Time) ClientDescriptor {
	return ClientDescriptor{
		IP:          ip,
		Country:     Unknown,
		City:        Unknown,
		Region:      Unknown,
		Timezone:    "UTC",
		Browser:     Unknown,
		OS:          Unknown,
		Device:      "Desktop",
		DeviceBrand: Unknown,
		DeviceModel: Unknown,
		DeviceType:  "desktop",
		UserAgent:   userAgent,
		Timestamp:   now,
	}
}

// degraded is returned when enrichment itself fails: only the raw inputs
// survive, every derived attribute is Unknown.
func degraded(ip, userAgent string, now time.Time) ClientDescriptor {
	d := newDescriptor(ip, userAgent, now)
	d.Device = Unknown
	d.DeviceType = Unknown
	return d
}
