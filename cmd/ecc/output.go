package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/weisyn/ecc/internal/core/infrastructure/crypto/kms"
)

// 输出格式
const (
	outputText = "text"
	outputJSON = "json"
)

// field 一项输出
type field struct {
	Key   string
	Value string
}

// emit 输出结果
//
// text 格式下单个字段只打印值，便于在管道中使用；多个字段打印为表格。
func (c *cli) emit(cmd *cobra.Command, fields ...field) error {
	out := cmd.OutOrStdout()

	if c.flags.Output == outputJSON {
		obj := make(map[string]string, len(fields))
		for _, f := range fields {
			obj[f.Key] = f.Value
		}
		return writeJSON(out, obj)
	}

	if len(fields) == 1 {
		_, err := fmt.Fprintln(out, fields[0].Value)
		return err
	}

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Key, f.Value})
	}
	return pterm.DefaultTable.WithData(rows).WithWriter(out).Render()
}

// renderTable 以表格输出，首行为表头
func (c *cli) renderTable(cmd *cobra.Command, data [][]string) error {
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// decodeHex 解析十六进制参数，允许 0x 前缀
func decodeHex(name, s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s 不是合法的十六进制: %w", name, err)
	}
	return b, nil
}

// readInput 读取消息：取第一个参数，缺省或为 "-" 时读 stdin
func (c *cli) readInput(args []string, hexEncoded bool) ([]byte, error) {
	var data []byte
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("读取标准输入失败: %w", err)
		}
		data = raw
	} else {
		data = []byte(args[0])
	}

	if hexEncoded {
		return decodeHex("消息", string(data))
	}
	return data, nil
}

// readPassphrase 获取口令
//
// 依次使用 --passphrase、$ECC_KEYSTORE_PASSPHRASE、终端提示（不回显）与 stdin 的一行。
func (c *cli) readPassphrase(cmd *cobra.Command, flagValue string, confirm bool) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}

	pass, err := kms.NewEnvPassphraseProvider(kms.DefaultPassphraseEnv, nil).GetPassphrase(cmd.Context())
	if err == nil {
		return pass, nil
	}
	if !errors.Is(err, kms.ErrPassphraseNotSet) {
		return nil, err
	}

	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pass, err := promptPassword(cmd.ErrOrStderr(), f, "口令")
		if err != nil {
			return nil, err
		}
		if confirm {
			again, err := promptPassword(cmd.ErrOrStderr(), f, "确认口令")
			if err != nil {
				return nil, err
			}
			if string(again) != string(pass) {
				return nil, fmt.Errorf("两次输入的口令不一致")
			}
		}
		return pass, nil
	}

	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("读取口令失败: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, fmt.Errorf("口令不能为空")
	}
	return []byte(line), nil
}

// promptPassword 提示输入密码（不回显）
func promptPassword(w io.Writer, f *os.File, prompt string) ([]byte, error) {
	fmt.Fprint(w, prompt+": ")
	bytePassword, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("读取密码失败: %w", err)
	}
	return bytePassword, nil
}

// printMetricsSummary 以表格打印 *_crypto_operations_total 计数
func printMetricsSummary(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("采集指标失败: %w", err)
	}

	var rows [][]string
	for _, mf := range families {
		if !strings.HasSuffix(mf.GetName(), "_crypto_operations_total") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			rows = append(rows, []string{
				labels["curve"], labels["op"], labels["result"],
				fmt.Sprintf("%.0f", m.GetCounter().GetValue()),
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	sort.Slice(rows, func(i, j int) bool {
		return strings.Join(rows[i], "\x00") < strings.Join(rows[j], "\x00")
	})
	data := append([][]string{{"曲线", "操作", "结果", "次数"}}, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
