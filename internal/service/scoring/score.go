package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// 评分题的特殊答案
const (
	DontKnow  = "Tanımıyorum (Anketör Dikkat: Okumayın)"
	LowLabel  = "1=Çok başarısız"
	HighLabel = "10=Çok başarılı"
)

// ParseScore 评分答案转 1-10 分；两端为文字标签，其余为数字
func ParseScore(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case LowLabel:
		return 1, true
	case HighLabel:
		return 10, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, false
		}
		v = int(f)
	}
	if v < 1 || v > 10 {
		return 0, false
	}
	return v, true
}

// Distribution 加权评分分布
type Distribution struct {
	Weights [11]float64
	Total   float64
}

// Collect 汇总一列评分；"不认识" 与无法解析的答案都不进入分布
func Collect(rows []model.RespondentRow, column string) Distribution {
	var d Distribution
	for _, r := range rows {
		raw, ok := r.Get(column)
		if !ok || raw == DontKnow {
			continue
		}
		v, ok := ParseScore(raw)
		if !ok {
			continue
		}
		d.Weights[v] += r.Weight
		d.Total += r.Weight
	}
	return d
}

// Mean 加权平均分，保留一位小数（逢半取偶）；没有有效评分时为无数据
func (d Distribution) Mean() model.Score {
	if d.Total == 0 {
		return model.NoScore
	}
	var mean float64
	for v := 1; v <= 10; v++ {
		mean += float64(v) * d.Weights[v] / d.Total
	}
	return model.NewScore(math.RoundToEven(mean*10) / 10)
}

// PoliticianScore 单个政治人物的加权平均分
func PoliticianScore(rows []model.RespondentRow, column string) model.Score {
	score := Collect(rows, column).Mean()
	if !score.Valid() {
		log.Debug().Str("column", column).Msg("no declared scores")
	}
	return score
}

// Entry 当期评分
type Entry struct {
	Name  string
	Score model.Score
}

// Scores 按给定顺序计算一组政治人物的评分
func Scores(rows []model.RespondentRow, names []string, column func(name string) string) []Entry {
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, Entry{Name: name, Score: PoliticianScore(rows, column(name))})
	}
	return out
}

// Snapshot 评分转快照，无数据保持缺失
func Snapshot(entries []Entry) *model.Snapshot {
	s := model.NewSnapshot()
	for _, e := range entries {
		s.Set(e.Name, model.FromScore(e.Score))
	}
	return s
}
