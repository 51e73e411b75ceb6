package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/ecc/configs"
	"github.com/weisyn/ecc/internal/app"
	log "github.com/weisyn/ecc/internal/core/infrastructure/log"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/ecc/pkg/types"
)

// annotationSkipEngine 标记不需要启动引擎的子命令
const annotationSkipEngine = "skip-engine"

// globalFlags 全局标志
type globalFlags struct {
	ConfigFile string // 配置文件
	Curve      string // 覆盖配置中的曲线
	Output     string // 输出格式：text | json
	Verbose    bool   // 输出调试日志到 stderr
	Metrics    bool   // 结束时打印操作统计
}

// cli 持有一次命令执行的状态
type cli struct {
	flags  globalFlags
	stdin  io.Reader
	engine app.Engine
}

func newCLI(stdin io.Reader) *cli {
	return &cli{stdin: stdin}
}

// rootCmd 构建根命令
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ecc",
		Short: "多曲线椭圆曲线密码工具",
		Long: `ecc - 多曲线椭圆曲线密码工具

支持 secp112r1 到 secp521r1 共 15 条曲线：
- 生成密钥、WIF 与 Base58Check 地址
- ECIES 加解密（可选对称算法、派生摘要与 MAC）
- ECDSA 签名、验签与公钥恢复
- 子密钥派生、BIP39 助记词与口令保护的密钥库

所有二进制参数使用十六进制。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.flags.Output != outputText && c.flags.Output != outputJSON {
				return fmt.Errorf("未知的输出格式 %q", c.flags.Output)
			}
			if cmd.Annotations[annotationSkipEngine] == "true" {
				return nil
			}
			return c.startEngine()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.ConfigFile, "config", "c", "", "配置文件路径 (默认读取 $"+app.ConfigPathEnv+")")
	pf.StringVar(&c.flags.Curve, "curve", "", "曲线名称，覆盖配置 (如 secp256k1、P-256)")
	pf.StringVarP(&c.flags.Output, "output", "o", outputText, "输出格式: text|json")
	pf.BoolVarP(&c.flags.Verbose, "verbose", "v", false, "输出调试日志")
	pf.BoolVar(&c.flags.Metrics, "metrics", false, "结束时打印操作统计")

	root.AddCommand(
		c.curvesCmd(),
		c.keygenCmd(),
		c.pubCmd(),
		c.wifCmd(),
		c.addressCmd(),
		c.ecdhCmd(),
		c.encryptCmd(),
		c.decryptCmd(),
		c.signCmd(),
		c.verifyCmd(),
		c.recoverCmd(),
		c.hashCmd(),
		c.deriveCmd(),
		c.mnemonicCmd(),
		c.sealCmd(),
		c.openCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return root
}

// startEngine 按全局标志启动引擎
func (c *cli) startEngine() error {
	logConfig := &types.UserLogConfig{ToConsole: types.BoolPtr(c.flags.Verbose)}
	if c.flags.Verbose {
		_ = os.Unsetenv(log.QuietEnv)
		logConfig.Level = types.StringPtr("debug")
	}

	opts := []app.Option{app.WithLog(logConfig)}
	switch {
	case c.flags.ConfigFile != "":
		opts = append(opts, app.WithConfigFile(c.flags.ConfigFile))
	case os.Getenv(app.ConfigPathEnv) == "":
		opts = append(opts, app.WithEmbeddedConfig(configs.GetDefaultConfig()))
	}
	if c.flags.Curve != "" {
		opts = append(opts, app.WithECC(&types.UserECCConfig{Curve: types.StringPtr(c.flags.Curve)}))
	}

	engine, err := app.Start(opts...)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

// shutdown 打印统计并停止引擎
func (c *cli) shutdown(stderr io.Writer) error {
	if c.engine == nil {
		return nil
	}
	var errs []error
	if c.flags.Metrics {
		errs = append(errs, printMetricsSummary(stderr, c.engine.Gatherer()))
	}
	errs = append(errs, c.engine.Stop())
	c.engine = nil
	return errors.Join(errs...)
}

// curve 返回当前曲线
func (c *cli) curve() crypto.EllipticCurve {
	return c.engine.Curve()
}
