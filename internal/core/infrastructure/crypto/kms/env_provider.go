// Package kms 提供密钥库口令的获取方式
//
// EnvPassphraseProvider 从环境变量读取口令，适用于 CI 与无人值守的脚本；
// 值以 "base64:" 开头时按标准 Base64 解码，便于传递二进制口令。
package kms

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/log"
)

// DefaultPassphraseEnv 默认的口令环境变量
const DefaultPassphraseEnv = "ECC_KEYSTORE_PASSPHRASE"

const base64Prefix = "base64:"

// ErrPassphraseNotSet 环境变量未设置或为空
var ErrPassphraseNotSet = errors.New("keystore passphrase not set")

// EnvPassphraseProvider 环境变量口令提供者
type EnvPassphraseProvider struct {
	envName string
	logger  log.Logger
}

var _ crypto.PassphraseProvider = (*EnvPassphraseProvider)(nil)

// NewEnvPassphraseProvider 创建环境变量口令提供者
//
// envName 为空时使用 DefaultPassphraseEnv；logger 可选。
func NewEnvPassphraseProvider(envName string, logger log.Logger) *EnvPassphraseProvider {
	if envName == "" {
		envName = DefaultPassphraseEnv
	}
	return &EnvPassphraseProvider{
		envName: envName,
		logger:  logger,
	}
}

// GetPassphrase 从环境变量获取口令
func (p *EnvPassphraseProvider) GetPassphrase(ctx context.Context) ([]byte, error) {
	// 检查上下文是否已取消
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value := os.Getenv(p.envName)
	if value == "" {
		return nil, fmt.Errorf("%w: $%s", ErrPassphraseNotSet, p.envName)
	}

	var passphrase []byte
	if encoded, ok := strings.CutPrefix(value, base64Prefix); ok {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("Base64解码失败: %w", err)
		}
		if len(decoded) == 0 {
			return nil, fmt.Errorf("%w: $%s", ErrPassphraseNotSet, p.envName)
		}
		passphrase = decoded
	} else {
		passphrase = []byte(value)
	}

	if p.logger != nil {
		p.logger.Debugf("已从环境变量 %s 获取密钥库口令", p.envName)
	}
	return passphrase, nil
}
