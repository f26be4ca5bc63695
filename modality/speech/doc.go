// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 speech 提供 voice 模态的扩展 Handler，把调用方提供的语音识别（ASR）
与语音合成（TTS）后端适配为 modality.Handler 契约。

# 概述

核心包只内置 text 与 structured 两种 Handler，voice 需要调用方注册。
本包不做任何音频编解码，只负责把 Transcriber / Synthesizer 的调用
包装成同步、不失败的 Handler 操作：后端出错时记录日志并降级，
而不是中断转换。

# 核心接口

  - Transcriber：音频字节 → 文本。
  - Synthesizer：文本 → 音频字节与 MIME 类型。
  - Handler：voice 模态 Handler，支持单次调用超时与令牌桶限流。

# 降级策略

  - ToText：字符串内容视为已有转写文本直接返回；后端失败返回空串。
  - FromText：合成失败时返回携带原文的 text/plain voice 输出。
  - Handle：音频内容原样透传，不调用后端。
*/
package speech
