// Package i18n 渲染边界上的标签翻译，词典启动时加载一次，之后只读
package i18n

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Lang 输出语言
type Lang string

const (
	TR Lang = "tr"
	EN Lang = "en"
)

// ParseLang 解析语言代码
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case TR:
		return TR, nil
	case EN:
		return EN, nil
	}
	return "", errors.Errorf("unsupported language %q", s)
}

// Category 词典分类
type Category string

// 图表分类
const (
	ChartParties     Category = "chart.parties"
	ChartEducation   Category = "chart.education"
	ChartAge         Category = "chart.age"
	ChartEconomy     Category = "chart.economy"
	ChartSubsistence Category = "chart.subsistence"
	ChartTitles      Category = "chart.chart_titles"
	ChartPoliticians Category = "chart.politicians"
)

// 表格分类
const (
	TableParties     Category = "table.parties"
	TableEconCurrent Category = "table.econ_current"
	TableEconFuture  Category = "table.econ_future"
	TableEducation   Category = "table.education"
	TableJobs        Category = "table.jobs"
	TableSubsistence Category = "table.subsistence"
)

// tableOrder 表格文字单元格依次尝试的分类
var tableOrder = []Category{
	TableParties,
	TableEconCurrent,
	TableEconFuture,
	TableEducation,
	TableJobs,
	TableSubsistence,
}

//go:embed labels.yaml
var embedded []byte

type document struct {
	Months map[string]string            `yaml:"months"`
	Chart  map[string]map[string]string `yaml:"chart"`
	Table  map[string]map[string]string `yaml:"table"`
}

// Dictionary 只读词典
type Dictionary struct {
	months  map[string]string
	entries map[Category]map[string]string
}

// Load 解析 YAML 词典
func Load(data []byte) (*Dictionary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse label dictionary")
	}
	d := &Dictionary{
		months:  doc.Months,
		entries: make(map[Category]map[string]string),
	}
	if d.months == nil {
		d.months = map[string]string{}
	}
	add := func(section string, cats map[string]map[string]string) {
		for name, labels := range cats {
			if labels == nil {
				labels = map[string]string{}
			}
			d.entries[Category(section+"."+name)] = labels
		}
	}
	add("chart", doc.Chart)
	add("table", doc.Table)
	return d, nil
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default 内置词典
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := Load(embedded)
		if err != nil {
			panic(err)
		}
		defaultDict = d
	})
	return defaultDict
}

// Translate 翻译一个标签；土耳其语或未收录的标签原样返回
func (d *Dictionary) Translate(lang Lang, cat Category, label string) string {
	if lang != EN {
		return label
	}
	if v, ok := d.entries[cat][label]; ok {
		return v
	}
	return label
}

// TranslateAll 批量翻译
func (d *Dictionary) TranslateAll(lang Lang, cat Category, labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = d.Translate(lang, cat, l)
	}
	return out
}

// Period 翻译期次标签，例如 "Nis.23" -> "Apr.23"；格式不符时原样返回
func (d *Dictionary) Period(lang Lang, label string) string {
	if lang != EN {
		return label
	}
	month, year, ok := strings.Cut(label, ".")
	if !ok {
		return label
	}
	if en, ok := d.months[month]; ok {
		return en + "." + year
	}
	return label
}

// Periods 批量翻译期次
func (d *Dictionary) Periods(lang Lang, labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = d.Period(lang, l)
	}
	return out
}

// Cell 翻译表格中的文字单元格，依次尝试各表格分类，再尝试月份
func (d *Dictionary) Cell(lang Lang, text string) (string, bool) {
	if lang != EN || text == "" {
		return text, false
	}
	for _, cat := range tableOrder {
		if v, ok := d.entries[cat][text]; ok {
			return v, true
		}
	}
	// "Oca." 与 "Oca.24" 都按月份处理
	if p := d.Period(lang, text); p != text {
		return p, true
	}
	return text, false
}
