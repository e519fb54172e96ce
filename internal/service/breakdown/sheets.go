package breakdown

import (
	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/service/crosstab"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
)

// TrendMode 趋势列的写法
type TrendMode int

const (
	// NoTrend 只有当期矩阵
	NoTrend TrendMode = iota
	// ShiftTrend G..K 左移一列，L 写当期负面合计
	ShiftTrend
	// SingleTrend G..K 左移一列后，G 写当期负面合计
	SingleTrend
)

// Block 一张交叉表写入的列区间：行为分组，列为结果类别
type Block struct {
	Table *crosstab.Table
	// Col 第一列的列号，A = 1
	Col int
}

// Sheet 表格工作簿中的一张表
type Sheet struct {
	Name     string
	FirstRow int
	Rows     []string
	Blocks   []Block
	Trend    TrendMode
	// Negative 负面子集，取自第一个 Block
	Negative []string
	// TotalRow 在最后一行之后写一行 100
	TotalRow bool
}

// LastRow 最后一个数据行（不含合计行）
func (s Sheet) LastRow() int {
	return s.FirstRow + len(s.Rows) - 1
}

// 表名
const (
	SheetParty2023           = "27_party_2023"
	SheetEconCurrentParty    = "34_econ_current_party"
	SheetEconCurrentAge      = "36_econ_current_age"
	SheetEconCurrentEdu      = "38_econ_current_education"
	SheetEconCurrentJobs     = "39_econ_current_jobs"
	SheetEconFutureParty     = "42_econ_future_party"
	SheetEconFutureAge       = "44_econ_future_age"
	SheetEconFutureJobs      = "45_econ_future_jobs"
	SheetEconCurrentVsFuture = "45_econ_current_vs_future"
	SheetSubsistenceDemo     = "50_subsistence_demographics"
	SheetSubsistencePartyEdu = "52_subsistence_party_education"
	SheetSubsistenceJobs     = "53_subsistence_jobs"
)

func matrix(t *crosstab.Table, col int) []Block {
	return []Block{{Table: t, Col: col}}
}

func (c *catalog) sheets() []Sheet {
	party := c.dim(survey.RoleParty, mapping.PartyTransition)
	party2023 := c.dim(survey.RoleParty2023, mapping.Party2023Table)
	transitionCols := c.dim(survey.RoleParty2023, mapping.Party2023Transition)
	ageGroup := crosstab.Dim(survey.DerivedAgeGroup, mapping.AgeGroups)
	education := crosstab.Dim(survey.DerivedEducation, mapping.Education)
	gender := c.dim(survey.RoleGender, mapping.Gender)
	job := c.dim(survey.RoleJob, mapping.Jobs)
	econ := c.dim(survey.RoleEconCurrent, mapping.EconCurrentDetailed)
	future := c.dim(survey.RoleEconFuture, mapping.EconFutureDetailed)
	subs := c.dim(survey.RoleSubsistence, mapping.SubsistenceTable)

	row := crosstab.PercentOfRow
	col := crosstab.PercentOfColumn

	trend := func(name string, outcome, group *crosstab.Dimension, mode TrendMode, negative []string) Sheet {
		t := c.aggregate(name, outcome, group, row)
		return Sheet{
			Name:     name,
			FirstRow: 2,
			Rows:     t.Groups,
			Blocks:   matrix(t, 2),
			Trend:    mode,
			Negative: negative,
		}
	}

	transition := c.aggregate(SheetParty2023, transitionCols, party, col)
	vsFuture := c.aggregate(SheetEconCurrentVsFuture, future, econ, row)
	subsDemo := []Block{
		{Table: c.aggregate(SheetSubsistenceDemo+"_gender", gender, subs, col), Col: 2},
		{Table: c.aggregate(SheetSubsistenceDemo+"_age", ageGroup, subs, col), Col: 4},
	}
	subsPartyEdu := []Block{
		{Table: c.aggregate(SheetSubsistencePartyEdu+"_party", party2023, subs, col), Col: 2},
		{Table: c.aggregate(SheetSubsistencePartyEdu+"_education", education, subs, col), Col: 7},
	}
	subsJobs := c.aggregate(SheetSubsistenceJobs, job, subs, col)

	return []Sheet{
		{Name: SheetParty2023, FirstRow: 3, Rows: transition.Groups, Blocks: matrix(transition, 2), TotalRow: true},
		trend(SheetEconCurrentParty, econ, party2023, ShiftTrend, mapping.EconCurrentNegative),
		trend(SheetEconCurrentAge, econ, ageGroup, ShiftTrend, mapping.EconCurrentNegative),
		trend(SheetEconCurrentEdu, econ, education, ShiftTrend, mapping.EconCurrentNegative),
		trend(SheetEconCurrentJobs, econ, job, SingleTrend, mapping.EconCurrentNegative),
		trend(SheetEconFutureParty, future, party2023, ShiftTrend, mapping.EconFutureNegative),
		trend(SheetEconFutureAge, future, ageGroup, ShiftTrend, mapping.EconFutureNegative),
		trend(SheetEconFutureJobs, future, job, SingleTrend, mapping.EconFutureNegative),
		{Name: SheetEconCurrentVsFuture, FirstRow: 2, Rows: vsFuture.Groups, Blocks: matrix(vsFuture, 2)},
		{Name: SheetSubsistenceDemo, FirstRow: 2, Rows: mapping.SubsistenceTable.Categories, Blocks: subsDemo},
		{Name: SheetSubsistencePartyEdu, FirstRow: 2, Rows: mapping.SubsistenceTable.Categories, Blocks: subsPartyEdu},
		{Name: SheetSubsistenceJobs, FirstRow: 2, Rows: subsJobs.Groups, Blocks: matrix(subsJobs, 2)},
	}
}
