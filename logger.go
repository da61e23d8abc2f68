package eventwrap

// logger is the logging surface used by emitters and proxies. NewZerologLogger,
// NewZapLogger and NewWriterLogger adapt concrete backends to it; any logrus-style logger
// satisfies it as well.
type logger interface {
	// WithField returns a logger that adds key=value to every entry.
	WithField(key string, value any) logger
	Debug(args ...any)
	Debugf(format string, args ...any)
	Debugln(args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Infoln(args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Warnln(args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Errorln(args ...any)
}
