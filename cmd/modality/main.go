// =============================================================================
// Modality 命令行入口
// =============================================================================
// 多模态输入的检测与转换
//
// 使用方法:
//
//	modality convert --input note.txt --target structured
//	modality convert --input event.json --target text --output out.txt
//	modality detect --input event.json
//	modality version
// =============================================================================

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// 退出码
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "convert":
		return runConvert(ctx, args[1:], stdout, stderr)
	case "detect":
		return runDetect(ctx, args[1:], stdout, stderr)
	case "version", "--version":
		printVersion(stdout)
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "modality %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `modality - multi-modal input detection and conversion

Usage:
  modality <command> [options]

Commands:
  convert   Convert a file from one modality to another
  detect    Detect the modality of a file
  version   Show version information
  help      Show this help message

Options for 'convert':
  --input <path>             Input file to convert (required)
  --target <modality>        Target modality (required)
  --source-modality <m>      Source modality (auto-detected if omitted)
  --output <path>            Write converted output to this file
  --config <path>            Path to configuration file (YAML)

Options for 'detect':
  --input <path>             File to detect modality for (required)
  --config <path>            Path to configuration file (YAML)

Modalities:
  text, voice, image, video, structured

Examples:
  modality convert --input note.txt --target structured
  modality convert --input event.json --target text --output out.txt
  modality detect --input event.json`)
}
