package core

// Logger is the application-wide logger.
// Besides the message, args may carry an error, extra data (map[string]interface{})
// and the Person the log entry is about.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Person identifies the end user a log entry relates to.
type Person interface {
	LogPerson() (id, name, email string)
}
