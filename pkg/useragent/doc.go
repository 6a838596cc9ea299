// Package useragent parses HTTP User-Agent strings into browser, operating
// system and device components.
//
// It identifies:
//   - Browser family and version (Chrome, Safari, Firefox, Edge, command-line
//     HTTP clients, named crawlers)
//   - Operating system family and version (Windows NT version, macOS, iOS,
//     Android, Linux, Chrome OS)
//   - Device type (desktop, mobile, tablet, tv, console, bot), brand and, for
//     Apple hardware, the model
//
// Matching uses keyword sets and pre-compiled regular expressions. Browser
// patterns are ordered by OrderHint so that Chromium forks are recognized
// before the generic Chrome token.
//
// # Usage
//
//	ua, err := useragent.Parse(r.UserAgent())
//	if err != nil {
//		// ua is still populated with Unknown components
//	}
//	fmt.Println(ua.Browser, ua.OS, ua.Device.Type)
//
// # Error Handling
//
// Parse never panics. ErrEmptyUserAgent and ErrMalformedUserAgent are
// informational: the returned value carries Unknown families in that case.
package useragent
