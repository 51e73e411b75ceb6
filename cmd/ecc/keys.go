package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/key"
	"github.com/weisyn/ecc/pkg/interfaces/infrastructure/crypto"
)

// curveInfo 曲线信息
type curveInfo struct {
	Name            string `json:"name"`
	ScalarLength    int    `json:"scalar_length"`
	PublicKeyLength int    `json:"public_key_length"`
}

func (c *cli) curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "列出支持的曲线",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			factory := c.engine.Factory()

			var infos []curveInfo
			for _, name := range factory.SupportedCurves() {
				ec, err := factory.NewCurve(name)
				if err != nil {
					return err
				}
				infos = append(infos, curveInfo{
					Name:            name,
					ScalarLength:    ec.ScalarLength(),
					PublicKeyLength: ec.PublicKeyLength(),
				})
			}

			if c.flags.Output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			data := [][]string{{"曲线", "私钥字节", "坐标字节"}}
			for _, info := range infos {
				data = append(data, []string{info.Name, strconv.Itoa(info.ScalarLength), strconv.Itoa(info.PublicKeyLength)})
			}
			return c.renderTable(cmd, data)
		},
	}
}

func (c *cli) keygenCmd() *cobra.Command {
	var compressed bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "生成新的密钥对",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := c.curve()
			priv, err := ec.NewPrivateKey()
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)
			return c.emitKey(cmd, ec, priv, compressed)
		},
	}
	cmd.Flags().BoolVar(&compressed, "compressed", false, "输出压缩公钥")
	return cmd
}

func (c *cli) pubCmd() *cobra.Command {
	var compressed bool
	cmd := &cobra.Command{
		Use:   "pub <private-key-hex>",
		Short: "由私钥计算公钥",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := decodeHex("私钥", args[0])
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)

			pub, err := publicKey(c.curve(), priv, compressed)
			if err != nil {
				return err
			}
			return c.emit(cmd, field{"public_key", hex.EncodeToString(pub)})
		},
	}
	cmd.Flags().BoolVar(&compressed, "compressed", false, "输出压缩公钥")
	return cmd
}

func (c *cli) wifCmd() *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "wif <private-key-hex | wif>",
		Short: "私钥与 WIF 互转",
		Long: `将十六进制私钥编码为 WIF；使用 --decode 时将 WIF 解码为十六进制私钥。

示例：
  ecc wif 0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d
  ecc wif --decode 5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := c.curve()
			if decode {
				priv, err := ec.WIFToPrivate(args[0])
				if err != nil {
					return err
				}
				return c.emit(cmd, field{"private_key", hex.EncodeToString(priv)})
			}

			priv, err := decodeHex("私钥", args[0])
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)
			wif, err := ec.PrivateToWIF(priv)
			if err != nil {
				return err
			}
			return c.emit(cmd, field{"wif", wif})
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "将 WIF 解码为私钥")
	return cmd
}

func (c *cli) addressCmd() *cobra.Command {
	var fromPrivate bool
	cmd := &cobra.Command{
		Use:   "address <public-key-hex>",
		Short: "计算 Base58Check 地址",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec := c.curve()
			raw, err := decodeHex("密钥", args[0])
			if err != nil {
				return err
			}

			var address string
			if fromPrivate {
				defer key.SecureWipe(raw)
				address, err = ec.PrivateToAddress(raw)
			} else {
				address, err = ec.PublicToAddress(raw)
			}
			if err != nil {
				return err
			}
			return c.emit(cmd, field{"address", address})
		},
	}
	cmd.Flags().BoolVar(&fromPrivate, "private", false, "参数为私钥")
	return cmd
}

func (c *cli) ecdhCmd() *cobra.Command {
	var privHex, pubHex string
	cmd := &cobra.Command{
		Use:   "ecdh",
		Short: "计算 ECDH 共享密钥",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := decodeHex("私钥", privHex)
			if err != nil {
				return err
			}
			defer key.SecureWipe(priv)
			pub, err := decodeHex("公钥", pubHex)
			if err != nil {
				return err
			}

			secret, err := c.curve().ECDH(priv, pub)
			if err != nil {
				return err
			}
			defer key.SecureWipe(secret)
			return c.emit(cmd, field{"shared_secret", hex.EncodeToString(secret)})
		},
	}
	cmd.Flags().StringVar(&privHex, "priv", "", "本方私钥 (hex)")
	cmd.Flags().StringVar(&pubHex, "pub", "", "对方公钥 (hex)")
	_ = cmd.MarkFlagRequired("priv")
	_ = cmd.MarkFlagRequired("pub")
	return cmd
}

func (c *cli) deriveCmd() *cobra.Command {
	var (
		seedHex    string
		mnemonic   string
		passphrase string
		compressed bool
	)
	cmd := &cobra.Command{
		Use:   "derive <index>",
		Short: "由种子派生子私钥",
		Long: `由种子（--seed）或 BIP39 助记词（--mnemonic）派生指定索引的子私钥。
索引范围为 [0, 2^31)，不支持硬化派生。

示例：
  ecc derive --seed 000102030405060708090a0b0c0d0e0f 0
  ecc derive --mnemonic "abandon abandon ... about" 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index64, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("索引不合法: %w", err)
			}
			index := uint32(index64)

			var seed []byte
			switch {
			case seedHex != "" && mnemonic != "":
				return fmt.Errorf("--seed 与 --mnemonic 只能指定一个")
			case seedHex != "":
				seed, err = decodeHex("种子", seedHex)
			case mnemonic != "":
				seed, err = key.SeedFromMnemonic(mnemonic, passphrase)
			default:
				return fmt.Errorf("需要 --seed 或 --mnemonic")
			}
			if err != nil {
				return err
			}
			defer key.SecureWipe(seed)

			ec := c.curve()
			child, err := ec.DeriveChild(seed, index)
			if err != nil {
				return err
			}
			defer key.SecureWipe(child)
			return c.emitKey(cmd, ec, child, compressed)
		},
	}
	cmd.Flags().StringVar(&seedHex, "seed", "", "种子 (hex)")
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP39 助记词")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "BIP39 口令")
	cmd.Flags().BoolVar(&compressed, "compressed", false, "输出压缩公钥")
	return cmd
}

func (c *cli) mnemonicCmd() *cobra.Command {
	var (
		bits       int
		withSeed   bool
		passphrase string
	)
	cmd := &cobra.Command{
		Use:         "mnemonic",
		Short:       "生成 BIP39 助记词",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipEngine: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic, err := key.NewMnemonic(bits)
			if err != nil {
				return err
			}
			if !withSeed {
				return c.emit(cmd, field{"mnemonic", mnemonic})
			}

			seed, err := key.SeedFromMnemonic(mnemonic, passphrase)
			if err != nil {
				return err
			}
			defer key.SecureWipe(seed)
			return c.emit(cmd,
				field{"mnemonic", mnemonic},
				field{"seed", hex.EncodeToString(seed)},
			)
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 128, "熵位数: 128|160|192|224|256")
	cmd.Flags().BoolVar(&withSeed, "seed", false, "同时输出种子")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "BIP39 口令")
	return cmd
}

// emitKey 输出私钥及其派生信息
func (c *cli) emitKey(cmd *cobra.Command, ec crypto.EllipticCurve, priv []byte, compressed bool) error {
	pub, err := publicKey(ec, priv, compressed)
	if err != nil {
		return err
	}
	wif, err := ec.PrivateToWIF(priv)
	if err != nil {
		return err
	}
	address, err := ec.PublicToAddress(pub)
	if err != nil {
		return err
	}
	return c.emit(cmd,
		field{"curve", ec.Name()},
		field{"private_key", hex.EncodeToString(priv)},
		field{"public_key", hex.EncodeToString(pub)},
		field{"wif", wif},
		field{"address", address},
	)
}

// publicKey 计算公钥，按需压缩
func publicKey(ec crypto.EllipticCurve, priv []byte, compressed bool) ([]byte, error) {
	pub, err := ec.PrivateToPublic(priv)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return pub, nil
	}
	decoded, err := ec.DecodeFixed(pub)
	if err != nil {
		return nil, err
	}
	return ec.EncodePublicKey(decoded, true)
}
