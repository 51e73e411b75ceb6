package crypto

import "context"

// PassphraseProvider 密钥库口令提供者
//
// 口令来源与 KeystoreManager 解耦：环境变量、外部 KMS 或交互输入均可实现此接口。
type PassphraseProvider interface {
	// GetPassphrase 返回口令；调用方用完后负责擦除
	GetPassphrase(ctx context.Context) ([]byte, error)
}
