// Package validator provides small composable validation rules.
//
// Rules are built eagerly and evaluated by Apply, which returns
// ValidationErrors listing every failed rule:
//
//	err := validator.Apply(
//		validator.Required("username", in.Username),
//		validator.ValidEmail("email", in.Email),
//	)
package validator
