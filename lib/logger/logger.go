package logger

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings 描述日志的输出方式
type Settings struct {
	Level      string
	Format     string
	Filename   string
	MaxSize    int
	MaxDays    int
	MaxBackups int
}

var global atomic.Value

func init() {
	Setup(&Settings{Level: "info", Format: "console"})
}

// Setup 根据 settings 替换全局 logger，格式不支持时 panic
func Setup(settings *Settings) {
	core := zapcore.NewCore(settings.encoder(), settings.syncer(), settings.level())
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.FatalLevel))
	global.Store(l.Sugar())
}

func (s *Settings) level() zap.AtomicLevel {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(s.Level)); err != nil {
		level.SetLevel(zapcore.InfoLevel)
	}
	return level
}

func (s *Settings) encoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	switch s.Format {
	case "", "console":
		return zapcore.NewConsoleEncoder(cfg)
	case "json":
		return zapcore.NewJSONEncoder(cfg)
	default:
		panic(fmt.Sprintf("unsupported log format: %s", s.Format))
	}
}

func (s *Settings) syncer() zapcore.WriteSyncer {
	if s.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   s.Filename,
		MaxSize:    s.MaxSize,
		MaxAge:     s.MaxDays,
		MaxBackups: s.MaxBackups,
		LocalTime:  true,
	})
}

func sugar() *zap.SugaredLogger {
	return global.Load().(*zap.SugaredLogger)
}

// Sync 刷新缓冲的日志
func Sync() error {
	return sugar().Sync()
}

func Debug(v ...any) {
	sugar().Debug(v...)
}

func Debugf(format string, v ...any) {
	sugar().Debugf(format, v...)
}

func Info(v ...any) {
	sugar().Info(v...)
}

func Infof(format string, v ...any) {
	sugar().Infof(format, v...)
}

func Warn(v ...any) {
	sugar().Warn(v...)
}

func Warnf(format string, v ...any) {
	sugar().Warnf(format, v...)
}

func Error(v ...any) {
	sugar().Error(v...)
}

func Errorf(format string, v ...any) {
	sugar().Errorf(format, v...)
}

func Fatal(v ...any) {
	sugar().Fatal(v...)
}

func Fatalf(format string, v ...any) {
	sugar().Fatalf(format, v...)
}
