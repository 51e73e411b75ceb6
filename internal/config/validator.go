package config

import (
	"fmt"
	"strings"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// Unwrap 返回底层错误，使 errors.Is(err, types.ErrUnknownCurve) 等判断生效
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateProvider 在启动时验证配置，收集全部问题后一并返回
//
// 检查项：
// - log.level 必须是已知级别
// - ECC_* 环境变量必须可解析
// - ecc 各名称字段必须受支持（曲线别名会被规范化）
func ValidateProvider(p *Provider) error {
	var errors []error

	logOptions := p.GetLog()
	if _, ok := logOptions.LevelMap[logOptions.Level]; !ok {
		errors = append(errors, &ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("未知的日志级别 %q", logOptions.Level),
		})
	}

	eccOptions := p.GetECC()
	if p.eccEnvErr != nil {
		errors = append(errors, &ValidationError{
			Field:   "env",
			Message: p.eccEnvErr.Error(),
			Err:     p.eccEnvErr,
		})
	}
	if err := eccOptions.Validate(); err != nil {
		errors = append(errors, &ValidationError{
			Field:   "ecc",
			Message: err.Error(),
			Err:     err,
		})
	}

	// 如果有错误，返回组合错误
	if len(errors) > 0 {
		return &ValidationErrors{Errors: errors}
	}
	return nil
}

// ValidationErrors 多个验证错误
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("配置验证失败，发现以下问题：\n")
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap 支持 errors.Is / errors.As 遍历全部子错误
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}
