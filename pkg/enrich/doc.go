// Package enrich turns the metadata of an incoming HTTP request into a
// ClientDescriptor: normalized client address, approximate location and a
// browser/OS/device classification.
//
// Location comes from an offline geoip.Locator first; when that has no
// country and live lookups are enabled, a network Locator is consulted under
// its own deadline. Classification starts from the useragent package and is
// refined by an ordered list of rules (Android brands, iPhone, iPad,
// Windows, Mac, Linux, command-line clients, generic mobile) in which the
// first match wins.
//
// Enrich never returns an error. Every field has a documented default
// ("Unknown", timezone "UTC", device "Desktop") and an internal failure
// produces a degraded descriptor rather than aborting the request.
package enrich
