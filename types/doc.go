// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供模态（modality）转换框架的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 modality、pipeline、
cmd 等上层模块提供统一的载荷模型与错误契约。所有值类型在构造后
不再被修改，唯一可变的进程级状态是上层持有的 Handler 注册表。

# 核心类型

  - Modality          — 封闭的模态枚举（text / voice / image / video / structured）
  - Content           — 字节序列或已解码字符串的逻辑联合体，二者恰有其一
  - Input             — 调用方构造的输入载荷（模态、内容、MIME、元数据）
  - Output            — Handler 产出的输出载荷
  - ConversionResult  — 一次转换的结果，quality_score 限定在 [0, 1]
  - Error / ErrorCode — 结构化错误体系，区分注册表查找失败与值校验失败

# 主要能力

  - 模态解析：ParseModality / AllModalities / Modality.IsValid
  - 构造校验：NewInput / NewConversionResult 在构造时立即报告越界字段
  - 错误工具链：GetErrorCode / IsUnregistered / IsValidation，以及
    errors.Is(err, ErrUnregisteredModality) 哨兵匹配
*/
package types
