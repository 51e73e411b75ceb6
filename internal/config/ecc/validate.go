package ecc

import (
	"fmt"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/curve"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/encryption"
	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/ecc/pkg/types"
)

// FieldError 单个配置字段的校验错误，Unwrap 返回对应的 ECC 错误类型
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("ecc.%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate 校验名称类配置，并把曲线别名规范化
//
// 返回第一个不合法的字段。
func (o *ECCOptions) Validate() error {
	canonical, err := curve.CanonicalName(o.Curve)
	if err != nil {
		return &FieldError{Field: "curve", Err: err}
	}
	o.Curve = canonical

	if _, err := encryption.NewCipherService().KeyLength(o.Cipher); err != nil {
		return &FieldError{Field: "cipher", Err: err}
	}

	hasher := hash.NewHashService()
	if _, err := hasher.Digest(o.Derivation, nil); err != nil {
		return &FieldError{Field: "derivation", Err: err}
	}
	if _, err := hash.MACSize(types.NamedMAC(o.MAC)); err != nil {
		return &FieldError{Field: "mac", Err: err}
	}
	if _, err := hasher.Digest(o.Hash, nil); err != nil {
		return &FieldError{Field: "hash", Err: err}
	}
	if _, err := encryption.NewKeystoreService(o.KeystoreKDF); err != nil {
		return &FieldError{Field: "keystore_kdf", Err: err}
	}
	if o.MetricsEnabled && o.MetricsNamespace == "" {
		return &FieldError{Field: "metrics_namespace", Err: fmt.Errorf("启用指标时命名空间不能为空")}
	}
	return nil
}
