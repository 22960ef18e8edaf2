package report

// Metric names a lifetime counter badges are measured against.
type Metric string

const (
	MetricExamsTaken   Metric = "exams_taken"
	MetricTotalCorrect Metric = "total_correct"
	MetricTotalXP      Metric = "total_xp"
)

// LifetimeStats are the per-user cumulative counters, updated when a
// session terminates.
type LifetimeStats struct {
	ExamsTaken   int `json:"exams_taken"`
	TotalCorrect int `json:"total_correct"`
	TotalXP      int `json:"total_xp"`
}

func (s LifetimeStats) value(m Metric) int {
	switch m {
	case MetricExamsTaken:
		return s.ExamsTaken
	case MetricTotalCorrect:
		return s.TotalCorrect
	case MetricTotalXP:
		return s.TotalXP
	}
	return 0
}

// Rule awards Badge once the metric reaches Threshold.
type Rule struct {
	Metric    Metric
	Threshold int
	Badge     string
}

// Rules is the single badge table. Awarding is idempotent: the store
// keeps (user, badge) unique, so evaluating the table repeatedly never
// duplicates a badge.
var Rules = []Rule{
	{MetricExamsTaken, 1, "first_exam"},
	{MetricExamsTaken, 5, "regular"},
	{MetricExamsTaken, 25, "veteran"},
	{MetricTotalCorrect, 10, "sharp"},
	{MetricTotalCorrect, 100, "scholar"},
	{MetricTotalCorrect, 500, "master"},
	{MetricTotalXP, 1000, "xp_1k"},
	{MetricTotalXP, 10000, "xp_10k"},
}

// Earned returns every badge whose threshold the stats meet.
func Earned(stats LifetimeStats) []string {
	var out []string
	for _, r := range Rules {
		if stats.value(r.Metric) >= r.Threshold {
			out = append(out, r.Badge)
		}
	}
	return out
}
