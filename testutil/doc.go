// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供模态处理测试的共享工具和辅助函数。

# 核心能力

  - 上下文辅助: TestContext / TestContextWithTimeout / CancelledContext，
    自动注册 Cleanup 防止泄漏
  - 载荷辅助: MustInput / MustInputContent
  - 断言工具: AssertJSONSemanticEqual，忽略格式与键顺序比较 JSON
  - 异步辅助: WaitFor

# 子包

  - testutil/mocks: MockHandler，可配置模态、转写与合成结果，并记录调用
  - testutil/fixtures: 常用样例文本与 JSON 文档

# 使用示例

	ctx := testutil.TestContext(t)
	voice := mocks.NewMockHandler(types.ModalityVoice).WithTranscript("hi")
	svc.RegisterHandler(voice)
*/
package testutil
