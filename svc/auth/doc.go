// Package auth stores accounts for pkg/auth in MongoDB.
package auth
