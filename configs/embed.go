// Package configs 嵌入默认配置文件
package configs

import _ "embed"

// 默认配置，与内置默认值一致，作为编写自定义配置的模板
//
//go:embed ecc.json
var defaultConfig []byte

// GetDefaultConfig 获取默认配置内容的副本
func GetDefaultConfig() []byte {
	return append([]byte(nil), defaultConfig...)
}
