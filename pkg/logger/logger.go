package logger

import (
	"fmt"
	"os"
	"strings"
	"training_portal_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 在 InitLogger 之前为空操作 logger，测试中可直接使用
var Log = zap.NewNop()

// level 由所有 core 共享，配置热加载时直接修改
var level = zap.NewAtomicLevel()

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "time",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// resolveLevel log.level 为空时 debug 模式输出 Debug，其余为 Info
func resolveLevel(cfg *config.Config) (zapcore.Level, error) {
	name := strings.TrimSpace(cfg.Log.Level)
	if name == "" {
		if cfg.Server.Mode == "debug" {
			return zap.DebugLevel, nil
		}
		return zap.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zap.InfoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return l, nil
}

func InitLogger(cfg *config.Config) {
	l, err := resolveLevel(cfg)
	level.SetLevel(l)

	var cores []zapcore.Core
	if cfg.Log.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level))
	}
	if cfg.Log.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		Named("training-portal").
		With(zap.String("mode", cfg.Server.Mode))
	if err != nil {
		Log.Warn("falling back to info level", zap.Error(err))
	}
}

// SetLevel 热加载时调整日志级别，无效的级别保持原值
func SetLevel(cfg *config.Config) error {
	l, err := resolveLevel(cfg)
	if err != nil {
		return err
	}
	if l != level.Level() {
		level.SetLevel(l)
		Log.Info("log level changed", zap.Stringer("level", l))
	}
	return nil
}

// Level 当前生效的日志级别
func Level() zapcore.Level {
	return level.Level()
}
