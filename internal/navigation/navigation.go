package navigation

// Controller replaces the current view with a target path. Implementations
// are fire-and-forget: the caller never waits on or inspects the outcome.
type Controller interface {
	NavigateTo(path string)
}

// ControllerFunc adapts a plain function to the Controller interface.
type ControllerFunc func(path string)

// NavigateTo implements Controller.
func (f ControllerFunc) NavigateTo(path string) {
	f(path)
}
