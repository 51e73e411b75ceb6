package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logconfig "github.com/weisyn/ecc/internal/config/log"
	"github.com/weisyn/ecc/pkg/types"
)

// captureConsole 将控制台日志重定向到缓冲区，执行 f 后恢复
func captureConsole(t *testing.T, options *logconfig.LogOptions, f func()) string {
	t.Helper()

	var buf bytes.Buffer
	oldOutput := consoleOutput
	consoleOutput = &buf
	oldLogger := GetLogger()
	defer func() {
		consoleOutput = oldOutput
		SetLogger(oldLogger)
	}()

	logger, err := New(logconfig.New(options))
	if err != nil {
		t.Fatalf("创建日志记录器失败: %v", err)
	}
	SetLogger(logger)

	f()
	_ = logger.Sync()
	return buf.String()
}

// TestInfoLog 测试信息级别日志
func TestInfoLog(t *testing.T) {
	output := captureConsole(t, &logconfig.LogOptions{Level: InfoLevel, ToConsole: true}, func() {
		Info("测试信息日志")
		Debugf("调试日志不应出现: %d", 1)
	})

	if !strings.Contains(output, "测试信息日志") {
		t.Error("日志输出中应包含消息内容")
	}
	if !strings.Contains(output, "INFO") {
		t.Error("日志输出中应包含正确的日志级别")
	}
	if strings.Contains(output, "调试日志不应出现") {
		t.Error("info 级别不应输出 debug 日志")
	}
}

// TestStructuredLogging 测试结构化日志
func TestStructuredLogging(t *testing.T) {
	output := captureConsole(t, &logconfig.LogOptions{Level: DebugLevel, ToConsole: true}, func() {
		With("curve", "secp256k1", "size", 42).Infof("加密完成: %s", "aes-256-cbc")
	})

	for _, want := range []string{"curve", "secp256k1", "size", "42", "加密完成: aes-256-cbc"} {
		if !strings.Contains(output, want) {
			t.Errorf("日志输出中应包含 %q，实际: %s", want, output)
		}
	}
}

// TestQuietMode 测试 CLI 模式下关闭控制台日志
func TestQuietMode(t *testing.T) {
	t.Setenv(QuietEnv, "true")

	output := captureConsole(t, &logconfig.LogOptions{Level: DebugLevel, ToConsole: true}, func() {
		Warnf("不应输出")
	})
	if output != "" {
		t.Errorf("CLI 模式下不应有控制台输出，实际: %s", output)
	}
}

// TestFileLog 测试JSON文件日志
func TestFileLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "ecc.log")

	cfg := logconfig.New(&types.UserLogConfig{
		Level:    types.StringPtr(DebugLevel),
		FilePath: types.StringPtr(logPath),
	})
	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("创建日志记录器失败: %v", err)
	}

	logger.Debug("调试日志")
	logger.With("module", "ecc").Warn("警告日志")
	logger.Error("错误日志")
	_ = logger.Sync()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("无法读取日志文件: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 {
		t.Fatalf("期望 3 行日志，实际 %d 行: %s", len(lines), content)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("文件日志应为JSON格式: %v", err)
	}
	if entry["message"] != "警告日志" {
		t.Errorf("message 字段不正确: %v", entry["message"])
	}
	if entry["module"] != "ecc" {
		t.Errorf("module 字段不正确: %v", entry["module"])
	}
	if entry["level"] != "warn" {
		t.Errorf("level 字段不正确: %v", entry["level"])
	}
}

// TestSetLogger 测试设置和切换全局日志记录器
func TestSetLogger(t *testing.T) {
	originalLogger := GetLogger()
	defer SetLogger(originalLogger)

	logger1 := NewNop()
	logger2 := NewNop()

	SetLogger(logger1)
	if GetLogger() != logger1 {
		t.Error("SetLogger应将全局日志记录器设置为logger1")
	}

	SetLogger(logger2)
	if GetLogger() != logger2 {
		t.Error("SetLogger应将全局日志记录器设置为logger2")
	}

	// nil 不替换现有记录器
	SetLogger(nil)
	if GetLogger() != logger2 {
		t.Error("SetLogger(nil) 不应替换全局日志记录器")
	}
}

// TestResetDefault 测试重置默认日志记录器
func TestResetDefault(t *testing.T) {
	originalLogger := GetLogger()
	defer SetLogger(originalLogger)

	customLogger := NewNop()
	SetLogger(customLogger)
	ResetDefault()

	if GetLogger() == customLogger {
		t.Error("ResetDefault应该将全局日志记录器重置为默认配置")
	}
}

// TestNewModuleLogger 测试模块标识
func TestNewModuleLogger(t *testing.T) {
	if NewModuleLogger(nil, "ecc") != nil {
		t.Error("基础 logger 为 nil 时应返回 nil")
	}

	output := captureConsole(t, &logconfig.LogOptions{Level: InfoLevel, ToConsole: true}, func() {
		NewModuleLogger(GetLogger(), "crypto").Info("模块日志")
	})
	if !strings.Contains(output, "crypto") {
		t.Errorf("日志应包含 module 字段，实际: %s", output)
	}
}
