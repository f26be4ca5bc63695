// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package main 提供 modality 命令行入口。

# 概述

cmd/modality 读取文件，检测其模态，并通过 pipeline.Service 转换到目标模态。
程序支持 YAML 配置文件加载、结构化日志（zap）、OpenTelemetry、
可选的 Redis 结果缓存，以及以 Prometheus 文本格式导出指标。

# 主要能力

  - 子命令：convert（模态转换）、detect（模态检测）、version、help
  - 诊断信息写到 stderr，转换结果写到 stdout 或 --output 指定的文件
  - 失败时打印 "Error: ..." 并以状态码 1 退出，用法错误以状态码 2 退出
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
