// Package jwt signs and verifies HS256 JSON Web Tokens and provides an HTTP
// middleware that authenticates Bearer tokens.
//
// Claims are ordinary structs. Embedding StandardClaims adds the registered
// claims and expiry validation:
//
//	type Claims struct {
//		jwt.StandardClaims
//		Role string `json:"role"`
//	}
//
//	svc, _ := jwt.New(jwt.Config{Secret: secret, TTL: time.Hour})
//	token, _ := svc.Generate(Claims{StandardClaims: svc.Standard(userID), Role: "admin"})
//
//	r.With(jwt.Middleware[Claims](svc, jwt.MiddlewareConfig{})).Get("/me", h)
//	claims, ok := jwt.GetClaims[Claims](r.Context())
package jwt
