// Package controllers holds the screen controllers. Each controller gets
// its collaborators at construction so tests can substitute fakes.
package controllers

// Navigator routes between screens.
type Navigator interface {
	// ShowHome opens the home screen for the given user.
	ShowHome(userID string)

	// ShowSignIn returns to the sign-in screen, clearing history so
	// back-navigation cannot reach an authenticated screen.
	ShowSignIn()
}

// Notifier surfaces transient user-visible messages.
type Notifier interface {
	Notify(message string)
}
