// Package fixtures 提供模态处理测试的样例数据。
package fixtures

// 样例文本
const (
	QuarterlyReport = "Analyze the quarterly report"
	HelloWorld      = "Hello, world!"
	SupportRequest  = "Hello, I need help with my account."
)

// 样例 JSON 文档
const (
	LoginEvent    = `{"event": "login", "user_id": 42}`
	Person        = `{"name":"Alice","score":99}`
	MeetingIntent = `{"intent":"schedule_meeting","priority":"high"}`
)

// 对应的两空格缩进输出
const (
	QuarterlyReportEnvelope = "{\n  \"text\": \"Analyze the quarterly report\"\n}"
	PersonPretty            = "{\n  \"name\": \"Alice\",\n  \"score\": 99\n}"
	LoginEventPretty        = "{\n  \"event\": \"login\",\n  \"user_id\": 42\n}"
)

// NotJSON 是以 { 或 [ 开头但无法解析的文本
var NotJSON = []string{
	`{"a": }`,
	`{not json`,
	`[1, 2,`,
	`{"a": 1} trailing`,
}
