// Package binder decodes HTTP request bodies into typed values for
// handler.Wrap.
//
//	http.HandleFunc("/login", handler.Wrap(login, handler.WithBinder[LoginRequest](binder.JSON())))
//
// Errors wrap the package sentinels; IsBindError tells them apart from
// handler errors.
package binder
