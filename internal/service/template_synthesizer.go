package service

import (
	"exam_prep_backend/internal/model"
	"fmt"
)

// 内置模板题库：AI 未配置或调用失败时的兜底内容源。
// 内容是占位性质的，但结构必须满足与 AI 路径相同的不变量
var templateTopics = []string{
	"核心概念",
	"基本原理",
	"典型应用",
	"常见误区",
	"对比分析",
}

func templateDraft(subject string, qType model.QuestionType, index int) questionDraft {
	topic := templateTopics[index%len(templateTopics)]
	n := index + 1

	draft := questionDraft{
		Topic: fmt.Sprintf("%s·%s", subject, topic),
		Tags:  []string{subject, topic},
	}

	switch qType {
	case model.MCQ:
		correct := fmt.Sprintf("%s 的正确表述 %d", subject, n)
		draft.Text = fmt.Sprintf("关于 %s（%s），下列哪一项是正确的？", subject, topic)
		draft.Options = []string{
			correct,
			fmt.Sprintf("%s 的常见误解 A%d", subject, n),
			fmt.Sprintf("%s 的常见误解 B%d", subject, n),
			fmt.Sprintf("%s 的常见误解 C%d", subject, n),
		}
		draft.CorrectAnswer = correct
		draft.Explanation = fmt.Sprintf("该选项准确描述了 %s 在「%s」上的行为，其余选项均包含典型错误。", subject, topic)
	case model.ShortAnswer:
		draft.Text = fmt.Sprintf("简要说明 %s 中「%s」的含义及作用。", subject, topic)
		draft.SampleAnswer = fmt.Sprintf("「%s」是 %s 的重要组成部分，回答应覆盖定义、适用场景与一个具体例子。", topic, subject)
		draft.Keywords = []string{subject, topic, "定义", "例子"}
		draft.Explanation = "答案应至少命中关键词中的定义与例子两项。"
	case model.LongAnswer:
		draft.Text = fmt.Sprintf("论述 %s 中「%s」的设计动机、实现方式与局限，并结合实例分析。", subject, topic)
		draft.SampleAnswer = fmt.Sprintf("完整论述应从「%s」的背景出发，依次展开动机、实现与局限三个层面，并用 %s 的实际案例佐证。", topic, subject)
		draft.KeyPoints = []string{
			"准确界定概念与背景",
			"动机与实现方式的展开",
			"局限性与适用边界",
			"结合实例的分析",
		}
		draft.Rubric = map[string]string{
			"概念理解": "概念界定准确、背景交代清楚",
			"论证深度": "动机、实现、局限三层论证完整",
			"实例运用": "实例贴切并能支撑论点",
		}
		draft.Explanation = "按评分标准逐项给分，实例缺失最多得到三分之二。"
	}

	return draft
}
