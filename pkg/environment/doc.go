// Package environment names the deployment stage (development, staging,
// production) and carries it through request contexts.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	router.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//		// hide internal error details
//	}
package environment
