package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pokeview/pokeview/internal/cache"
	"github.com/pokeview/pokeview/internal/config"
	"github.com/pokeview/pokeview/internal/dex"
	"github.com/pokeview/pokeview/internal/logging"
	"github.com/pokeview/pokeview/internal/server"
	"github.com/pokeview/pokeview/internal/server/routes"
	"github.com/pokeview/pokeview/internal/tui"
	"github.com/pokeview/pokeview/internal/upstream"
	"github.com/pokeview/pokeview/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
	browse      bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

// startBrowser 启动终端浏览器，测试中可替换。
var startBrowser = func(ctx context.Context, svc tui.Catalog) error {
	return tui.Run(ctx, svc, os.Stdin, os.Stdout)
}

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	initLogger := logging.InitLogger
	if opts.browse {
		initLogger = logging.InitTerminalLogger
	}
	logger, err := initLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["base_url"] = cfg.Catalog.BaseURL
		fields["page_size"] = cfg.Catalog.PageSize
		fields["search_limit"] = cfg.Catalog.SearchLimit
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 启动顺序为“配置 → 上游客户端 → 索引缓存 → 目录服务 → Fiber/TUI”，
	// 所有请求共享同一个索引缓存实例，整个进程只回源一次索引。
	index, svc, err := buildCatalog(cfg, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化目录服务失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["base_url"] = cfg.Catalog.BaseURL
	fields["listen_port"] = cfg.Global.ListenPort
	fields["browse"] = opts.browse
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if opts.browse {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := startBrowser(ctx, svc); err != nil {
			fmt.Fprintf(stdErr, "终端浏览失败: %v\n", err)
			return 1
		}
		return 0
	}

	if err := startHTTPServer(cfg, index, svc, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// buildCatalog 组装上游客户端、索引缓存与目录服务。
func buildCatalog(cfg *config.Config, logger *logrus.Logger) (*cache.Index, *dex.Service, error) {
	httpClient := server.NewUpstreamClient(cfg)
	client, err := upstream.NewClient(httpClient, cfg.Catalog.BaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	index := cache.NewIndex(client, cfg.Catalog.IndexLimit, logger)
	svc, err := dex.NewService(index, client, dex.Options{
		PageSize:         cfg.Catalog.PageSize,
		MaxPageSize:      cfg.Catalog.MaxPageSize,
		SearchLimit:      cfg.Catalog.SearchLimit,
		FetchConcurrency: cfg.Catalog.FetchConcurrency,
		Logger:           logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return index, svc, nil
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("pokeview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
		browse     bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 POKEVIEW_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")
	fs.BoolVar(&browse, "browse", false, "在终端中浏览目录，而不是启动 HTTP 服务")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("POKEVIEW_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
		browse:      browse,
	}, nil
}

func startHTTPServer(cfg *config.Config, index *cache.Index, svc *dex.Service, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		ListenPort: port,
	})
	if err != nil {
		return err
	}
	routes.RegisterDiagnosticRoutes(app, index, svc)
	routes.RegisterCatalogRoutes(app, svc, logger)

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
