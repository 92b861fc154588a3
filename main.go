package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"genset/config"
	"genset/database"
	"genset/router"
	"genset/service"
	"genset/store"

	"github.com/spf13/cobra"
)

// @title 发电机组维护记录 API
// @version 1.0
// @description 发电机组维护记录的增删改查与 xlsx 导入导出
// @host localhost:8080
// @BasePath /

const version = "v1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "genset",
		Short:         "发电机组维护记录服务",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				log.Printf("发电机组维护记录 %s", version)
				return nil
			}
			return runServe()
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	cmd.PersistentFlags().StringVarP(&port, "port", "p", "", "监听端口，如: 8080 或 :8080")
	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "显示版本信息")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newSeedCommand())
	cmd.AddCommand(newImportCommand())
	cmd.AddCommand(newExportCommand())
	return cmd
}

// bootstrap 加载配置并初始化数据库
func bootstrap() (*config.Config, *store.Store, error) {
	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		return nil, nil, fmt.Errorf("数据库初始化失败: %w", err)
	}
	return cfg, store.New(database.DB), nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务（默认）",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, st, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close()

	r := router.SetupRouter(cfg, st, service.NewEmailService(&cfg.Email))

	log.Printf("==========================================")
	log.Printf("  发电机组维护记录服务已启动")
	log.Printf("==========================================")
	log.Printf("  API接口:  http://localhost%s/api/", cfg.Server.Port)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	if cfg.Metrics.Enabled {
		log.Printf("  指标:     http://localhost%s%s", cfg.Server.Port, cfg.Metrics.Path)
	}
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "写入示例发电机组与维护记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close()

			result, err := service.Seed(commandContext(cmd), st)
			if err != nil {
				return err
			}
			log.Printf("示例数据: 新建机组 %d, 新建记录 %d", result.Gensets, result.Histories)
			return nil
		},
	}
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "从 xlsx 导入维护记录",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			histories := service.NewHistoryService(st)
			svc := service.NewTransferService(st, histories, service.NewEmailService(&cfg.Email))
			summary, err := svc.Import(commandContext(cmd), filepath.Base(args[0]), f)
			log.Printf("导入结果: 共 %d 行, 成功 %d, 跳过 %d, 失败 %d, 新建机组 %d",
				summary.TotalRows, summary.Imported, summary.Skipped, summary.Failed, summary.GensetsCreated)
			return err
		},
	}
}

func newExportCommand() *cobra.Command {
	var (
		output string
		unitID string
		search string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出维护记录为 xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close()

			histories := service.NewHistoryService(st)
			svc := service.NewTransferService(st, histories, nil)

			buf := new(bytes.Buffer)
			filter := service.ListFilter{Search: search, GensetID: unitID}
			filename, err := svc.Export(commandContext(cmd), buf, filter, filter.Filtered())
			if err != nil {
				return err
			}
			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			log.Printf("已导出到 %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件路径，默认按筛选条件生成文件名")
	cmd.Flags().StringVar(&unitID, "unit", "", "发电机组ID")
	cmd.Flags().StringVar(&search, "search", "", "关键字")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
