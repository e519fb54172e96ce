package model

import "math"

// Percentage 加权百分比（0..100），0 是合法值
type Percentage float64

// Finite 非有限值按 0 处理
func (p Percentage) Finite() Percentage {
	if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
		return 0
	}
	return p
}

// Score 1-10 评分
// 未计算（无有效作答）与 0 是不同的状态，0 不在量表上
type Score struct {
	value float64
	ok    bool
}

// NoScore 无数据
var NoScore = Score{}

// NewScore 非有限值或 <= 0 视为无数据
func NewScore(v float64) Score {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return NoScore
	}
	return Score{value: v, ok: true}
}

// Value 返回评分及是否有数据
func (s Score) Value() (float64, bool) { return s.value, s.ok }

// Valid 是否有数据
func (s Score) Valid() bool { return s.ok }

// Number 历史序列中的单元格
type Number struct {
	Value float64
	Valid bool
}

// Missing 缺失单元格
var Missing = Number{}

// Num 构造有效单元格
func Num(v float64) Number { return Number{Value: v, Valid: true} }

// FromPercentage 百分比转单元格
func FromPercentage(p Percentage) Number { return Num(float64(p)) }

// FromScore 评分转单元格，无数据保持缺失
func FromScore(s Score) Number {
	if v, ok := s.Value(); ok {
		return Num(v)
	}
	return Missing
}

// SeriesKind 序列取值类型
type SeriesKind int

const (
	// KindPercentage 百分比序列：缺失/非有限值写 0
	KindPercentage SeriesKind = iota
	// KindScore 评分序列：0/缺失/非有限值写无数据
	KindScore
)

func (k SeriesKind) String() string {
	if k == KindScore {
		return "score"
	}
	return "percentage"
}

// Normalize 按序列类型规整单元格
func (k SeriesKind) Normalize(n Number) Number {
	finite := n.Valid && !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
	switch k {
	case KindScore:
		if !finite || n.Value == 0 {
			return Missing
		}
		return n
	default:
		if !finite {
			return Num(0)
		}
		return n
	}
}
