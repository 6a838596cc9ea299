// Package sanitizer holds string transforms applied to user input before
// validation and storage.
package sanitizer
