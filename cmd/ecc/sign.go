package main

import (
	"encoding/hex"
	"errors"

	"github.com/spf13/cobra"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/pkg/types"
)

// errInvalidSignature 验签失败时返回，使进程以非零状态退出
var errInvalidSignature = errors.New("签名无效")

// signOptions 在配置默认值之上叠加摘要算法
func (c *cli) signOptions(hashName string) []types.SignOption {
	opts := c.engine.Options().SignOptions()
	if hashName != "" {
		opts = append(opts, types.WithHash(types.NamedDigest(hashName)))
	}
	return opts
}

func (c *cli) signCmd() *cobra.Command {
	var (
		privHex     string
		hashName    string
		recoverable bool
		entropyHex  string
		hexInput    bool
	)
	cmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "ECDSA 签名",
		Long: `对消息签名，输出十六进制签名 r ‖ s（--recoverable 时附加恢复标识）。

未提供 --entropy 时按 RFC 6979 生成确定性签名。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := decodeHex("私钥", privHex)
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)
			data, err := c.readInput(args, hexInput)
			if err != nil {
				return err
			}

			opts := c.signOptions(hashName)
			if recoverable {
				opts = append(opts, types.WithRecoverable())
			}
			if entropyHex != "" {
				entropy, err := decodeHex("熵", entropyHex)
				if err != nil {
					return err
				}
				opts = append(opts, types.WithEntropy(entropy))
			}

			sig, err := c.curve().Sign(data, priv, opts...)
			if err != nil {
				return err
			}
			return c.emit(cmd, field{"signature", hex.EncodeToString(sig)})
		},
	}
	cmd.Flags().StringVar(&privHex, "priv", "", "签名私钥 (hex)")
	cmd.Flags().StringVar(&hashName, "hash", "", "消息摘要 (sha256|sha512|keccak256|sha3-256|sha1|none)")
	cmd.Flags().BoolVar(&recoverable, "recoverable", false, "附加恢复标识")
	cmd.Flags().StringVar(&entropyHex, "entropy", "", "额外熵 (hex)")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "消息为十六进制")
	_ = cmd.MarkFlagRequired("priv")
	return cmd
}

func (c *cli) verifyCmd() *cobra.Command {
	var (
		pubHex   string
		sigHex   string
		hashName string
		hexInput bool
	)
	cmd := &cobra.Command{
		Use:   "verify [message]",
		Short: "ECDSA 验签",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := decodeHex("公钥", pubHex)
			if err != nil {
				return err
			}
			sig, err := decodeHex("签名", sigHex)
			if err != nil {
				return err
			}
			data, err := c.readInput(args, hexInput)
			if err != nil {
				return err
			}

			ok, err := c.curve().Verify(sig, data, pub, c.signOptions(hashName)...)
			if err != nil {
				return err
			}
			if !ok {
				return errInvalidSignature
			}
			return c.emit(cmd, field{"valid", "true"})
		},
	}
	cmd.Flags().StringVar(&pubHex, "pub", "", "签名方公钥 (hex)")
	cmd.Flags().StringVar(&sigHex, "sig", "", "签名 (hex)")
	cmd.Flags().StringVar(&hashName, "hash", "", "消息摘要")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "消息为十六进制")
	_ = cmd.MarkFlagRequired("pub")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func (c *cli) recoverCmd() *cobra.Command {
	var (
		sigHex     string
		hashName   string
		hexInput   bool
		compressed bool
	)
	cmd := &cobra.Command{
		Use:   "recover [message]",
		Short: "从可恢复签名恢复公钥",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := decodeHex("签名", sigHex)
			if err != nil {
				return err
			}
			data, err := c.readInput(args, hexInput)
			if err != nil {
				return err
			}

			ec := c.curve()
			pub, err := ec.Recover(sig, data, c.signOptions(hashName)...)
			if err != nil {
				return err
			}
			if compressed {
				decoded, err := ec.DecodeFixed(pub)
				if err != nil {
					return err
				}
				if pub, err = ec.EncodePublicKey(decoded, true); err != nil {
					return err
				}
			}
			return c.emit(cmd, field{"public_key", hex.EncodeToString(pub)})
		},
	}
	cmd.Flags().StringVar(&sigHex, "sig", "", "可恢复签名 (hex)")
	cmd.Flags().StringVar(&hashName, "hash", "", "消息摘要")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "消息为十六进制")
	cmd.Flags().BoolVar(&compressed, "compressed", false, "输出压缩公钥")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func (c *cli) hashCmd() *cobra.Command {
	var (
		algo     string
		hexInput bool
	)
	cmd := &cobra.Command{
		Use:   "hash [message]",
		Short: "计算消息摘要",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.readInput(args, hexInput)
			if err != nil {
				return err
			}
			var digest []byte
			if algo == "ripemd160" {
				digest = c.engine.Hasher().RIPEMD160(data)
			} else if digest, err = c.engine.Hasher().Digest(algo, data); err != nil {
				return err
			}
			return c.emit(cmd, field{"digest", hex.EncodeToString(digest)})
		},
	}
	cmd.Flags().StringVar(&algo, "algo", types.HashSHA256, "摘要算法 (sha1|sha256|sha512|keccak256|sha3-256|ripemd160)")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "消息为十六进制")
	return cmd
}
