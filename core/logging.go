package core

// Logger reports application events and server faults.
// expected args: map[string]interface{}, user.User (logged in user, if any)
type Logger interface {
	Enable(enabled bool)
	Info(msg string, args ...interface{})
	Error(msg string, err error, args ...interface{})
}
