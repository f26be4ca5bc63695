// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 pipeline 是模态处理的组合根，把 Router、Converter 与可观测性、
结果缓存装配成一个面向调用方的 Service。

# 概述

Service 内部的 Router 与 Converter 共享同一个 modality.Registry，
因此 RegisterHandler 注册的处理器同时对 Route 与 Convert 生效。
核心转换是同步且无副作用的；Service 在其外层加上：

  - 每次调用的 request_id（uuid）与 zap 结构化日志
  - Prometheus 指标（internal/metrics）与 OpenTelemetry 指标、Span
  - 可选的 Redis 结果缓存，缓存故障只记录日志，不影响转换结果
  - 基于 errgroup 的有界并发批量转换

# 主要入口

  - Detect / Route / Convert：核心操作的上下文感知版本。
  - Normalize：与模态无关的流水线，源模态缺省时自动检测。
  - ConvertBatch：按输入顺序返回结果，首个错误取消其余任务。
*/
package pipeline
