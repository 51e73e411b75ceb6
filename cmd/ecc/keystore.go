package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
)

func (c *cli) sealCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "seal <private-key-hex>",
		Short: "用口令加密私钥",
		Long: `用口令加密私钥，输出十六进制密钥库数据。

未提供 --passphrase 时在终端提示输入，非终端环境从标准输入读取一行。
KDF 由配置项 ecc.keystore.kdf 决定（scrypt 或 pbkdf2）。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := decodeHex("私钥", args[0])
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)

			// 私钥必须属于当前曲线
			if _, err := c.curve().PrivateToPublic(priv); err != nil {
				return err
			}

			pass, err := c.readPassphrase(cmd, passphrase, true)
			if err != nil {
				return err
			}
			defer key.SecureWipe(pass)

			blob, err := c.engine.Keystore().Seal(priv, pass)
			if err != nil {
				return err
			}
			return c.emit(cmd, field{"keystore", hex.EncodeToString(blob)})
		},
	}
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "口令")
	return cmd
}

func (c *cli) openCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "open <keystore-hex>",
		Short: "用口令解密私钥",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := decodeHex("密钥库", args[0])
			if err != nil {
				return err
			}
			pass, err := c.readPassphrase(cmd, passphrase, false)
			if err != nil {
				return err
			}
			defer key.SecureWipe(pass)

			priv, err := c.engine.Keystore().Open(blob, pass)
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)
			return c.emit(cmd, field{"private_key", hex.EncodeToString(priv)})
		},
	}
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "口令")
	return cmd
}
