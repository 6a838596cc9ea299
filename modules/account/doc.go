// Package account mounts the public account API.
//
//	POST     /register     create an account, returns a token
//	POST     /login        password login, throttled per client IP
//	GET      /btc-price    current BTC/USD quote, never fails
//	GET|POST /admin/users  list accounts, admin bearer token required
//
// Every response is a JSON object with a "success" flag. Failures carry a
// "message"; validation failures add an "errors" list.
package account
