package logx

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})
	With(key string, value interface{}) Logger
	Sync() error
}

type Logx struct {
	level   zapcore.Level
	dev     bool
	console bool
	sugar   *zap.SugaredLogger
}

func NewLogx(lvl zapcore.Level, dev bool, console bool) *Logx {
	return &Logx{level: lvl, dev: dev, console: console}
}

// NewFromCore wraps an existing core (tests use the zap observer)
func NewFromCore(core zapcore.Core) *Logx {
	return &Logx{level: zapcore.LevelOf(core), sugar: zap.New(core).Sugar()}
}

// Nop drops everything
func Nop() *Logx {
	return &Logx{sugar: zap.NewNop().Sugar()}
}

var loggerLevelMap = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

func GetLoggerLevelByString(lvl string) zapcore.Level {
	level, exist := loggerLevelMap[strings.ToLower(strings.TrimSpace(lvl))]
	if !exist {
		return zapcore.InfoLevel
	}
	return level
}

// InitLogger writes JSON to w; with console=true it also writes
// human readable lines to stdout.
func (l *Logx) InitLogger(w io.Writer) {
	var encoderCfg zapcore.EncoderConfig
	if l.dev {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.LevelKey = "LEVEL"
	encoderCfg.CallerKey = "CALLER"
	encoderCfg.TimeKey = "TIME"
	encoderCfg.NameKey = "NAME"
	encoderCfg.MessageKey = "MESSAGE"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.NewAtomicLevelAt(l.level)
	cores := make([]zapcore.Core, 0, 2)
	if w != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), level))
	}
	if l.console || w == nil {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleCfg.ConsoleSeparator = " | "
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(os.Stdout), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	l.sugar = logger.Sugar()
}

func (l *Logx) With(key string, value interface{}) Logger {
	return &Logx{level: l.level, dev: l.dev, console: l.console, sugar: l.sugar.With(key, value)}
}

func (l *Logx) Sync() error {
	return l.sugar.Sync()
}

func (l *Logx) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}

func (l *Logx) Info(args ...interface{}) {
	l.sugar.Info(args...)
}

func (l *Logx) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}

func (l *Logx) Warnf(template string, args ...interface{}) {
	l.sugar.Warnf(template, args...)
}

func (l *Logx) Error(args ...interface{}) {
	l.sugar.Error(args...)
}

func (l *Logx) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}
