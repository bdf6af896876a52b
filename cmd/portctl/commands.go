package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/portkit/pkg/config/xconf"
	"github.com/omeyang/portkit/pkg/lifecycle/xrun"
	"github.com/omeyang/portkit/pkg/observability/xlog"
	"github.com/omeyang/portkit/pkg/runtime/xtls"
	"github.com/omeyang/portkit/pkg/util/xfile"
	"github.com/omeyang/portkit/pkg/util/xsys"
)

// defaultInterval watch 模式的默认清理周期。
const defaultInterval = 10 * time.Minute

// cleanSpec 描述一次清理任务的目标。
type cleanSpec struct {
	Dir      string        `koanf:"dir"`
	Prefix   string        `koanf:"prefix"`
	Glob     string        `koanf:"glob"`
	Interval time.Duration `koanf:"interval"`
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "portctl",
		Usage:   "portkit 运维命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
				Value: "text",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createCleanCommand(),
		createWatchCommand(),
		createPagesizeCommand(),
	}
}

// cleanFlags clean/watch 共享的清理目标参数。
func cleanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径（YAML/JSON，读取 cleaner 段）",
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "清理目录",
		},
		&cli.StringFlag{
			Name:    "prefix",
			Aliases: []string{"p"},
			Usage:   "文件名前缀（空值匹配所有）",
		},
		&cli.StringFlag{
			Name:    "glob",
			Aliases: []string{"g"},
			Usage:   "文件名 glob 模式",
		},
	}
}

// createCleanCommand 创建 clean 子命令（一次性清理）。
func createCleanCommand() *cli.Command {
	return &cli.Command{
		Name:    "clean",
		Aliases: []string{"c"},
		Usage:   "一次性清理匹配的过期文件",
		Flags:   cleanFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, cleanup, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			spec, err := resolveSpec(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deleted, err := xfile.DeleteMatchingFiles(ctx, spec.Dir, spec.Prefix, spec.Glob,
				xfile.WithCleanupLogger(logger))
			if err != nil {
				return err
			}

			fmt.Printf("已删除 %d 个文件\n", deleted)
			return nil
		},
	}
}

// createWatchCommand 创建 watch 子命令（守护模式）。
func createWatchCommand() *cli.Command {
	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "守护模式：周期清理匹配的过期文件，支持配置热重载",
		Flags: append(cleanFlags(),
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "清理周期",
			},
			&cli.BoolFlag{
				Name:  "immediate",
				Usage: "启动时立即执行一次清理",
				Value: true,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdWatch(ctx, cmd)
		},
	}
}

// createPagesizeCommand 创建 pagesize 子命令。
func createPagesizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pagesize",
		Usage: "打印平台内存分配粒度（字节）",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Println(xsys.PageSize())
			return nil
		},
	}
}

// sweepStats 是守护模式下清理线程的累计统计，
// 存放在 xtls 槽位中，线程退出时由析构函数做最终汇报。
type sweepStats struct {
	Sweeps  int
	Deleted int
}

// cmdWatch 运行守护模式。
//
// 生命周期接线：
//   - xrun.Ticker 周期触发清理
//   - xconf.Watch 热重载配置（仅 --config 模式）
//   - 清理线程通过 xtls 持有统计槽位，进程收尾时经
//     xrun.WithExitHook 触发退出通知，析构函数输出最终统计
func cmdWatch(ctx context.Context, cmd *cli.Command) error {
	logger, cleanup, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	spec, err := resolveSpec(cmd)
	if err != nil {
		return err
	}
	interval := spec.Interval
	if cmd.IsSet("interval") {
		interval = cmd.Duration("interval")
	}
	if interval <= 0 {
		interval = defaultInterval
	}

	// 热重载只替换清理目标，周期在启动时固定
	var current atomic.Pointer[cleanSpec]
	current.Store(&spec)

	var watcher *xconf.Watcher
	if path := cmd.String("config"); path != "" {
		cfg, err := xconf.New(path)
		if err != nil {
			return err
		}
		watcher, err = xconf.Watch(cfg, func(c xconf.Config, err error) {
			if err != nil {
				logger.Warn(ctx, "config reload failed", xlog.Err(err))
				return
			}
			reloaded, err := specFromConfig(c)
			if err != nil {
				logger.Warn(ctx, "config reload rejected", xlog.Err(err))
				return
			}
			applyFlagOverrides(cmd, &reloaded)
			if err := validateSpec(&reloaded); err != nil {
				logger.Warn(ctx, "config reload rejected", xlog.Err(err))
				return
			}
			current.Store(&reloaded)
			logger.Info(ctx, "config reloaded",
				xlog.Component("watch"),
				xlog.Operation("reload"),
			)
		})
		if err != nil {
			return err
		}
		watcher.StartAsync()
		defer func() { _ = watcher.Stop() }()
	}

	emu := xtls.New()
	statsKey := emu.CreateKey(func(value any) {
		stats, ok := value.(*sweepStats)
		if !ok {
			return
		}
		logger.Info(ctx, "sweeper retired",
			xlog.Component("watch"),
			xlog.Count(stats.Deleted),
			xlog.Operation(fmt.Sprintf("sweeps=%d", stats.Sweeps)),
		)
	})
	tid, release := emu.Bind()
	emu.Set(tid, statsKey, &sweepStats{})

	sweep := func(ctx context.Context) error {
		spec := current.Load()
		deleted, err := xfile.DeleteMatchingFiles(ctx, spec.Dir, spec.Prefix, spec.Glob,
			xfile.WithCleanupLogger(logger))
		if err != nil {
			return err
		}
		if stats, ok := emu.Get(tid, statsKey).(*sweepStats); ok {
			stats.Sweeps++
			stats.Deleted += deleted
		}
		return nil
	}

	logger.Info(ctx, "watch started",
		xlog.Component("watch"),
		xlog.Duration(interval),
	)

	err = xrun.RunWithOptions(ctx,
		[]xrun.Option{
			xrun.WithName("portctl-watch"),
			xrun.WithExitHook(release),
			xrun.WithExitHook(emu.ProcessExitHook()),
		},
		xrun.Ticker(interval, cmd.Bool("immediate"), sweep),
	)
	if err != nil {
		var sigErr *xrun.SignalError
		if errors.As(err, &sigErr) {
			logger.Info(ctx, "watch stopped by signal",
				xlog.Component("watch"),
				xlog.Operation(sigErr.Signal.String()),
			)
			return nil
		}
		return err
	}
	return nil
}

// buildLogger 从全局日志参数构建 logger。
func buildLogger(cmd *cli.Command) (xlog.LoggerWithLevel, func() error, error) {
	return xlog.New().
		SetLevelString(cmd.String("log-level")).
		SetFormat(cmd.String("log-format")).
		Build()
}

// resolveSpec 解析清理目标：配置文件打底，命令行参数覆盖。
func resolveSpec(cmd *cli.Command) (cleanSpec, error) {
	var spec cleanSpec

	if path := cmd.String("config"); path != "" {
		cfg, err := xconf.New(path)
		if err != nil {
			return spec, err
		}
		spec, err = specFromConfig(cfg)
		if err != nil {
			return spec, err
		}
	}

	applyFlagOverrides(cmd, &spec)

	if err := validateSpec(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// specFromConfig 从配置的 cleaner 段读取清理目标。
func specFromConfig(cfg xconf.Config) (cleanSpec, error) {
	var spec cleanSpec
	if err := cfg.Unmarshal("cleaner", &spec); err != nil {
		return spec, err
	}
	return spec, nil
}

// applyFlagOverrides 用显式命令行参数覆盖配置值。
func applyFlagOverrides(cmd *cli.Command, spec *cleanSpec) {
	if cmd.IsSet("dir") {
		spec.Dir = cmd.String("dir")
	}
	if cmd.IsSet("prefix") {
		spec.Prefix = cmd.String("prefix")
	}
	if cmd.IsSet("glob") {
		spec.Glob = cmd.String("glob")
	}
}

// validateSpec 校验清理目标的必填项。
func validateSpec(spec *cleanSpec) error {
	if spec.Dir == "" {
		return &usageError{msg: "缺少清理目录，请通过 --dir 或配置文件指定"}
	}
	if spec.Glob == "" {
		return &usageError{msg: "缺少 glob 模式，请通过 --glob 或配置文件指定"}
	}
	return nil
}
