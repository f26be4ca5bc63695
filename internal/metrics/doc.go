// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的模态处理指标采集能力，覆盖
检测、路由、转换与结果缓存四个维度。

# 概述

Collector 通过 promauto.With 注册到调用方提供的 Registerer，
测试中可传入独立的 prometheus.NewRegistry() 以避免全局冲突。
所有指标按 namespace 隔离。

# 主要能力

  - 检测指标：按 modality 统计检测次数。
  - 路由指标：按 modality/status 统计路由次数。
  - 转换指标：转换总数、耗时与质量分布，按 source/target 分组。
  - 缓存指标：命中与未命中计数，按 cache_type 分组。
*/
package metrics
