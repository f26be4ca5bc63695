// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 cache 提供基于 Redis 的转换结果缓存。

# 概述

ResultCache 封装 go-redis 客户端，以 (source, target, mime, content)
的 SHA-256 摘要为键，将 ConversionResult 序列化为 JSON 存入 Redis，
并按配置的 TTL 过期。转换本身无副作用，因此缓存只影响性能，不影响结果。

# 主要能力

  - Lookup/Store：按转换输入读写结果，未命中返回 ErrCacheMiss。
  - 读取时重新校验结果，损坏的缓存值以错误形式返回。
  - Close 之后所有操作返回 ErrClosed。
*/
package cache
