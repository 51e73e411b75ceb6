package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/ecc/configs"
	"github.com/weisyn/ecc/internal/app/version"
)

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "显示版本信息",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipEngine: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.flags.Output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), version.GetBuildInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			return err
		},
	}
}

func (c *cli) configCmd() *cobra.Command {
	var template bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "显示生效的 ECC 配置",
		Long: `显示合并默认值、配置文件与 ECC_* 环境变量之后的 ECC 配置。
使用 --template 输出配置文件模板。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := cmd.OutOrStdout().Write(configs.GetDefaultConfig())
				return err
			}
			return writeJSON(cmd.OutOrStdout(), c.engine.Options())
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, "输出配置文件模板")
	return cmd
}
