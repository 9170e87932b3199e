package constant

const (
	EmptyString = ""
)

// 画像会话相关的默认值
const (
	DefaultAnalyticsWindowDays = 30  // 分析窗口默认天数
	DefaultTrendsLimit         = 100 // 趋势列表默认条数
	RecentEntriesLimit         = 5   // 窗口统计里保留的最近交互条数
	MaxSuggestions             = 3   // 单次响应最多追问条数
	MaxContextualTips          = 2   // 单次响应最多场景提示条数
)

// 生成服务不可用时的兜底回复，管道降级路径要求文案固定
const ApologyMessage = "Sorry, I am having trouble responding right now. Please try again in a moment."

// 提示词常量
const (
	// 信息抽取系统提示词
	ExtractionSystemPrompt = "You are an information extraction assistant for a small-business advisory service in India. You read one customer message and return strictly valid JSON."

	// 信息抽取用户提示词模板，%s 依次为已知画像摘要、用户消息原文
	ExtractionUserPromptTemplate = `Extract business profile fields from the message below.

Recognized scalar fields: business_type, location_city, location_state, monthly_revenue, staff_count, product_source, pricing_strategy.
Recognized list fields: peak_hours, peak_days, top_products, staff_roles, payment_methods, advertising_channels, platforms_used, past_campaigns, business_goals, challenges.

Rules:
- Return a single JSON object mapping field names to values.
- Scalar fields map to a string or a number, list fields map to an array of strings.
- monthly_revenue and staff_count must be plain numbers (e.g. 80000), revenue in INR per month.
- Only include fields the message explicitly mentions. Never guess.
- If nothing matches, return {}.

Known profile so far:
%s

Message:
%s

JSON:`

	// 经营建议系统提示词
	AdvisorSystemPrompt = "You are a friendly business advisor for small merchants in India. Reply in simple English, 2-4 sentences, concrete and encouraging. Never mention that you extract or store data."

	// 经营建议用户提示词模板：依次为画像摘要、追问提示、用户消息
	AdvisorUserPromptTemplate = `Known business profile:
%s

If it fits naturally, work ONE of these follow-up questions into your reply:
%s

Customer message:
%s

Reply:`
)
