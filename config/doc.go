// Package config 提供模态转换工具的配置管理功能。
//
// 支持从默认值、YAML 文件与环境变量（MODALITY_ 前缀）三层加载配置，
// 覆盖日志、遥测、指标、结果缓存、流水线与 voice 扩展等配置段。
package config
