package crosstab

import (
	"math"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// RoundChart 图表精度：一位小数，逢半取偶
func RoundChart(p model.Percentage) model.Percentage {
	p = p.Finite()
	return model.Percentage(math.RoundToEven(float64(p)*10) / 10)
}

// RoundCell 表格精度：取整并截断到 [0,100]，非有限值为 0
func RoundCell(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := int(math.RoundToEven(v))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

// RoundSnapshot 按图表精度复制快照
func RoundSnapshot(s *model.Snapshot) *model.Snapshot {
	out := model.NewSnapshot(s.Keys...)
	for _, k := range s.Keys {
		v := s.Values[k]
		if v.Valid {
			v = model.FromPercentage(RoundChart(model.Percentage(v.Value)))
		}
		out.Set(k, v)
	}
	return out
}
