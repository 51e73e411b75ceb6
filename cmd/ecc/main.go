// ecc 命令行工具：多曲线密钥、ECIES 加解密与 ECDSA 签名
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/weisyn/ecc/internal/core/infrastructure/log"
)

func main() {
	// 结果写 stdout，默认不输出控制台日志
	if _, ok := os.LookupEnv(log.QuietEnv); !ok {
		_ = os.Setenv(log.QuietEnv, "true")
	}
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute 运行一次命令并返回退出码
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := newCLI(stdin)
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if stopErr := c.shutdown(stderr); err == nil {
		err = stopErr
	}
	if err != nil {
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
