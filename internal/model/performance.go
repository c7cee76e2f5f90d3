package model

// Defaults applied when an upstream performance snapshot omits a value.
const (
	DefaultOverallScore   = 0.5
	DefaultAccuracyRate   = 0.5
	DefaultTopicRelevance = 0.5
)

// TopicPerformance is one topic's entry in a PerformanceProfile.
// A nil AccuracyRate means the tracker had no accuracy for the topic.
type TopicPerformance struct {
	AccuracyRate       *float64 `json:"accuracyRate,omitempty"`
	QuestionsAttempted int      `json:"questionsAttempted"`
}

// Accuracy returns the recorded accuracy or def when none was recorded.
func (t TopicPerformance) Accuracy(def float64) float64 {
	if t.AccuracyRate == nil {
		return def
	}
	return *t.AccuracyRate
}

// PerformanceProfile is the learner snapshot supplied by progress tracking.
//
// Missing fields degrade to documented defaults instead of failing:
//   - OverallScore, AccuracyRate: DefaultOverallScore / DefaultAccuracyRate (0.5)
//   - topic accuracy for prerequisite and mastery checks: 0
//   - topic accuracy for question relevance: DefaultTopicRelevance (0.5)
type PerformanceProfile struct {
	OverallScore      *float64                    `json:"overallScore,omitempty"`
	AccuracyRate      *float64                    `json:"accuracyRate,omitempty"`
	TopicPerformances map[string]TopicPerformance `json:"topicPerformances,omitempty"`
}

func (p *PerformanceProfile) Overall() float64 {
	if p == nil || p.OverallScore == nil {
		return DefaultOverallScore
	}
	return *p.OverallScore
}

func (p *PerformanceProfile) Accuracy() float64 {
	if p == nil || p.AccuracyRate == nil {
		return DefaultAccuracyRate
	}
	return *p.AccuracyRate
}

// Topic looks up a topic entry; ok is false when the learner never studied it.
func (p *PerformanceProfile) Topic(name string) (TopicPerformance, bool) {
	if p == nil {
		return TopicPerformance{}, false
	}
	tp, ok := p.TopicPerformances[name]
	return tp, ok
}

// Float is a helper for building profiles in literals.
func Float(v float64) *float64 {
	return &v
}
