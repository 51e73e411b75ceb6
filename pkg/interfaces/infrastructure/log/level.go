package log

import "github.com/weisyn/ecc/pkg/types"

// LogLevel 日志级别（定义在 pkg/types，供配置层共用）
type LogLevel = types.LogLevel

// 日志级别常量
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
