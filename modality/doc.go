// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 modality 提供异构模态载荷的归一化、模态检测与跨模态转换能力，
以纯文本作为所有跨模态转换的中间形式。

# 概述

本包解决三个核心问题：一是通过启发式规则判断原始输入是结构化数据
还是自由文本；二是定义按模态划分的 Handler 能力，在本模态内归一化
载荷并与纯文本互相投影；三是由 Converter 组合 Handler 完成跨模态
转换，并为每次转换给出质量评分。核心不做任何 I/O，也从不记录日志。

# 核心接口

  - Handler：模态处理能力（Modality / Handle / ToText / FromText），
    内置 TextHandler 与 StructuredHandler，调用方可注册扩展实现。
  - Registry：模态到 Handler 的显式注册表，Router 与 Converter
    各自持有，或通过 WithRegistry 显式共享。
  - Router：按输入模态分派到 Handler，并提供 Detect 检测启发式。
  - Converter：同模态直接归一化（质量 1.0），跨模态经由
    ToText → FromText 两步转换，质量由 QualityPolicy 决定。

# 主要能力

  - 模态检测：Detect 只会返回 text 或 structured，voice / image /
    video 需要调用方显式标注。
  - JSON 归一化：FormatJSON 以两空格缩进重新序列化，保留键顺序与
    非 ASCII 字符；解析失败时使用 {"text": ...} 信封包装。
  - 质量策略：text ↔ structured 为 0.95，其余跨模态组合统一为 0.5。

注册表没有内部锁，并发修改需要由嵌入方自行同步。
*/
package modality
