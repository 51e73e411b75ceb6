package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/pkg/types"
)

// eciesFlags ECIES 参数，未指定的项使用配置值
type eciesFlags struct {
	cipher     string
	derivation string
	mac        string
}

func (f *eciesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cipher, "cipher", "", "对称算法 (如 aes-256-cbc、chacha20)")
	cmd.Flags().StringVar(&f.derivation, "derivation", "", "共享密钥派生摘要 (如 sha256、sha512)")
	cmd.Flags().StringVar(&f.mac, "mac", "", "消息认证码 (hmac-sha256|hmac-sha512|none)")
}

// encryptOptions 在配置默认值之上叠加命令行参数
func (c *cli) encryptOptions(f *eciesFlags) []types.EncryptOption {
	opts := c.engine.Options().EncryptOptions()
	if f.cipher != "" {
		opts = append(opts, types.WithAlgorithm(f.cipher))
	}
	if f.derivation != "" {
		opts = append(opts, types.WithDerivation(types.NamedDigest(f.derivation)))
	}
	if f.mac != "" {
		opts = append(opts, types.WithMAC(types.NamedMAC(f.mac)))
	}
	return opts
}

func (c *cli) encryptCmd() *cobra.Command {
	var (
		flags     eciesFlags
		pubHex    string
		hexInput  bool
		returnKey bool
	)
	cmd := &cobra.Command{
		Use:   "encrypt [message]",
		Short: "使用公钥进行 ECIES 加密",
		Long: `使用接收方公钥加密消息，输出十六进制密文：
iv ‖ 临时公钥 ‖ 密文 ‖ mac

消息缺省或为 "-" 时从标准输入读取。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := decodeHex("公钥", pubHex)
			if err != nil {
				return err
			}
			plaintext, err := c.readInput(args, hexInput)
			if err != nil {
				return err
			}

			opts := c.encryptOptions(&flags)
			if returnKey {
				opts = append(opts, types.WithReturnKey())
			}
			ciphertext, sharedKey, err := c.curve().Encrypt(plaintext, pub, opts...)
			if err != nil {
				return err
			}

			if !returnKey {
				return c.emit(cmd, field{"ciphertext", hex.EncodeToString(ciphertext)})
			}
			defer key.SecureWipe(sharedKey)
			return c.emit(cmd,
				field{"ciphertext", hex.EncodeToString(ciphertext)},
				field{"key", hex.EncodeToString(sharedKey)},
			)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&pubHex, "pub", "", "接收方公钥 (hex)")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "消息为十六进制")
	cmd.Flags().BoolVar(&returnKey, "return-key", false, "同时输出派生的对称密钥")
	_ = cmd.MarkFlagRequired("pub")
	return cmd
}

func (c *cli) decryptCmd() *cobra.Command {
	var (
		flags     eciesFlags
		privHex   string
		hexOutput bool
	)
	cmd := &cobra.Command{
		Use:   "decrypt [ciphertext-hex]",
		Short: "使用私钥进行 ECIES 解密",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := decodeHex("私钥", privHex)
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)
			ciphertext, err := c.readInput(args, true)
			if err != nil {
				return err
			}

			plaintext, err := c.curve().Decrypt(ciphertext, priv, c.encryptOptions(&flags)...)
			if err != nil {
				return err
			}

			if hexOutput {
				return c.emit(cmd, field{"plaintext", hex.EncodeToString(plaintext)})
			}
			return c.emit(cmd, field{"plaintext", string(plaintext)})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&privHex, "priv", "", "接收方私钥 (hex)")
	cmd.Flags().BoolVar(&hexOutput, "hex", false, "以十六进制输出明文")
	_ = cmd.MarkFlagRequired("priv")
	return cmd
}
