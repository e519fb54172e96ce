package survey

import (
	"fmt"
	"strings"

	"github.com/dogudogru/survey-report-app-v2/internal/mapping"
	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// Role 问题角色
type Role string

const (
	RoleWeight      Role = "weight"
	RoleParty       Role = "party"
	RoleParty2023   Role = "party_2023"
	RoleEducation   Role = "education"
	RoleAge         Role = "age"
	RoleAgeGroup    Role = "age_group"
	RoleGender      Role = "gender"
	RoleEconCurrent Role = "econ_current"
	RoleEconFuture  Role = "econ_future"
	RoleSubsistence Role = "subsistence"
	RoleJob         Role = "job"
)

// 派生列名
const (
	DerivedEducation = "_education_level"
	DerivedAgeBand   = "_age_band"
	DerivedAgeGroup  = "_age_group"
)

// RoleSpec 角色的查找规则
type RoleSpec struct {
	Role Role
	// Phrases 列名需同时包含的短语；Exact 为 true 时 Phrases[0] 为完整列名
	Phrases []string
	Exact   bool
}

// DefaultRoles 问卷所需的全部角色
func DefaultRoles(weightColumn string) []RoleSpec {
	specs := []RoleSpec{
		{Role: RoleWeight, Phrases: []string{weightColumn}, Exact: true},
		{Role: RoleParty, Phrases: []string{"Bu Pazar genel seçim olsa hangi partiye oy verirsiniz?"}},
		{Role: RoleParty2023, Phrases: []string{"2023 Genel Seçimlerinde hangi partiye oy verdiniz?"}},
		{Role: RoleEducation, Phrases: []string{"En son mezun olduğunuz eğitim kurumunu belirtir misiniz?"}},
		{Role: RoleAge, Phrases: []string{"Yaşınızı öğrenebilir miyim"}},
		{Role: RoleAgeGroup, Phrases: []string{"Yaş grubu"}},
		{Role: RoleGender, Phrases: []string{"Katılımcının cinsiyeti"}},
		{Role: RoleEconCurrent, Phrases: []string{"Bugün itibari ile ekonominin nasıl olduğunu düşünüyorsunuz"}},
		{Role: RoleEconFuture, Phrases: []string{"Önümüzdeki bir yıl içerisinde ekonominin nasıl olacağını düşünüyorsunuz"}},
		{Role: RoleSubsistence, Phrases: []string{"Aşağıdaki sayılan ifadelerden hangisine katılırsınız"}},
		{Role: RoleJob, Phrases: []string{"Mevcut çalışma durumunuzu belirtir misiniz?"}},
	}
	for _, name := range Politicians {
		specs = append(specs, RoleSpec{
			Role:    PoliticianRole(name),
			Phrases: []string{politicianQuestion, "[" + name + "]"},
		})
	}
	return specs
}

// MissingColumnError 必需列未找到
type MissingColumnError struct {
	Role   Role
	Search string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column not found: role=%s, search=%q", e.Role, e.Search)
}

// Schema 角色 -> 实际列名，每次运行解析一次
type Schema struct {
	columns map[Role]string
}

// Resolve 按规则解析全部角色，任一角色缺失即失败
func Resolve(headers []string, specs []RoleSpec) (*Schema, error) {
	s := &Schema{columns: make(map[Role]string, len(specs))}
	for _, spec := range specs {
		idx := -1
		if spec.Exact {
			if len(spec.Phrases) > 0 {
				idx = findExactCol(headers, spec.Phrases[0])
			}
		} else {
			idx = findContainsCol(headers, spec.Phrases...)
		}
		if idx < 0 {
			return nil, &MissingColumnError{Role: spec.Role, Search: strings.Join(spec.Phrases, " + ")}
		}
		s.columns[spec.Role] = headers[idx]
	}
	return s, nil
}

// Column 角色对应的列名
func (s *Schema) Column(role Role) string {
	return s.columns[role]
}

// Has 角色是否已解析
func (s *Schema) Has(role Role) bool {
	_, ok := s.columns[role]
	return ok
}

// Derive 在每行上追加派生列：三档学历、三档年龄、六档年龄组
func Derive(table *model.RespondentTable, s *Schema) {
	eduCol := s.Column(RoleEducation)
	ageCol := s.Column(RoleAge)
	groupCol := s.Column(RoleAgeGroup)

	for i := range table.Rows {
		row := &table.Rows[i]

		raw, _ := row.Get(eduCol)
		row.SetDerived(DerivedEducation, mapping.EducationLevel(raw))

		if v, ok := row.Get(ageCol); ok {
			if band, ok := mapping.AgeBand(v); ok {
				row.SetDerived(DerivedAgeBand, band)
			}
		}
		if v, ok := row.Get(groupCol); ok {
			row.SetDerived(DerivedAgeGroup, v)
		}
	}
}
