package eventwrap

import "go.uber.org/zap"

type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger adapts a zap sugared logger.
func NewZapLogger(s *zap.SugaredLogger) logger {
	return zapLogger{s: s}
}

func (z zapLogger) WithField(key string, value any) logger {
	return zapLogger{s: z.s.With(key, value)}
}

func (z zapLogger) Debug(args ...any)                 { z.s.Debug(args...) }
func (z zapLogger) Debugf(format string, args ...any) { z.s.Debugf(format, args...) }
func (z zapLogger) Debugln(args ...any)               { z.s.Debugln(args...) }
func (z zapLogger) Info(args ...any)                  { z.s.Info(args...) }
func (z zapLogger) Infof(format string, args ...any)  { z.s.Infof(format, args...) }
func (z zapLogger) Infoln(args ...any)                { z.s.Infoln(args...) }
func (z zapLogger) Warn(args ...any)                  { z.s.Warn(args...) }
func (z zapLogger) Warnf(format string, args ...any)  { z.s.Warnf(format, args...) }
func (z zapLogger) Warnln(args ...any)                { z.s.Warnln(args...) }
func (z zapLogger) Error(args ...any)                 { z.s.Error(args...) }
func (z zapLogger) Errorf(format string, args ...any) { z.s.Errorf(format, args...) }
func (z zapLogger) Errorln(args ...any)               { z.s.Errorln(args...) }
