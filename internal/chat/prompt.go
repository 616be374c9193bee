package chat

import (
	"fmt"
	"strings"

	"mediaplanner/internal/model"
)

// BuildPrompt assembles system prompt, category focus, numbered context and the question
func (k *Knowledge) BuildPrompt(question string, c model.ChatCategory, context []string) string {
	var b strings.Builder
	b.WriteString(k.SystemPrompt)
	b.WriteString("\n\n")
	b.WriteString(k.entry(c).Focus)
	if len(context) > 0 {
		b.WriteString("\n\nข้อมูลอ้างอิงที่เกี่ยวข้อง:\n")
		for i, ctx := range context {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ctx)
		}
	}
	b.WriteString("\n\nคำถาม: ")
	b.WriteString(question)
	return b.String()
}

// SummaryPrompt wraps text with the summarization instruction
func (k *Knowledge) SummaryPrompt(text string) string {
	return k.SummaryInstruction + "\n\n" + text
}

// AdvicePrompt asks for a senior-planner briefing on a scored classification
func AdvicePrompt(clientName string, c model.Classification, allocs []model.ChannelAllocation) string {
	share := func(ch model.Channel) int {
		a, _ := model.Find(allocs, ch)
		return a.Percentage
	}
	return fmt.Sprintf(`Role: Senior Media Planner. Client: %s. Strategy: %s. Media Allocation: Facebook %d%%, Google %d%%, TikTok %d%%. Efficiency: %d%%.
Tasks:
1. EXPLAIN: why this strategy fits the client's answers.
2. RECOMMENDATION: 3 practical tips for the first month.
3. EXECUTION PRECAUTION: the main risk to watch while running the plan.
Use professional Thai language. Be concise and actionable.`,
		clientName, c.BucketName, share(model.ChannelFacebook), share(model.ChannelGoogle), share(model.ChannelTikTok), c.Efficiency)
}
