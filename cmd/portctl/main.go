// portctl 是 portkit 的运维命令行工具，围绕临时文件清理和平台查询。
//
// 用法:
//
//	portctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	--log-level    日志级别 (debug/info/warn/error, 默认: info)
//	--log-format   日志格式 (text/json, 默认: text)
//
// 命令:
//
//	clean          一次性清理匹配的过期文件
//	watch          守护模式：周期清理 + 配置热重载
//	pagesize       打印平台内存分配粒度
//	help           显示帮助信息
//
// clean/watch 的清理目标由 --dir/--prefix/--glob 指定，或通过
// --config 从 YAML/JSON 配置文件的 cleaner 段读取；命令行参数优先。
// 只匹配普通文件，目录永不删除。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（清理出错、配置加载失败等）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	portctl clean --dir /tmp --prefix profile. --glob 'profile.*.tmp'
//	portctl clean --config /etc/portkit/config.yaml
//	portctl watch --config /etc/portkit/config.yaml --interval 5m
//	portctl --log-format json pagesize
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	app := createApp()

	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
