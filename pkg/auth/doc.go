// Package auth implements password accounts: registration, login with
// per-login client tracking, HS256 access tokens and an admin role check.
//
// Persistence is abstracted behind Storage; svc/auth provides the MongoDB
// implementation. Register and Authenticate take the enrich.ClientDescriptor
// captured for the request, which is stored as the signup info and appended
// to the login history respectively.
//
//	svc := auth.NewService(cfg, storage, tokens, auth.WithLogger(log))
//	user, err := svc.Register(ctx, auth.RegisterInput{...}, descriptor)
//	token, err := svc.IssueToken(user)
package auth
