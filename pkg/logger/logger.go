package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L 全局 logger，main 初始化后替换
var L = zap.NewNop()

// Init 初始化全局 logger
// debug 模式下输出彩色便于本地排查，生产输出 JSON
func Init(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return nil, err
	}

	L = l
	zap.ReplaceGlobals(l)
	return l, nil
}
