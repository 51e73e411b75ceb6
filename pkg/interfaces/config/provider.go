// Package config provides configuration provider interfaces.
package config

import (
	eccconfig "github.com/weisyn/ecc/internal/config/ecc"
	logconfig "github.com/weisyn/ecc/internal/config/log"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetECC 获取 ECC 引擎配置（默认曲线、ECIES/签名默认参数、密钥库、指标）
	GetECC() *eccconfig.ECCOptions
}
