package mapping

import (
	"strconv"
	"strings"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// MapCategory 原始答案映射到规范类别
// 缺失答案同样走兜底；词表无兜底时返回 false，该行只在这一维度上被排除
func MapCategory(raw string, present bool, v *model.Vocabulary) (string, bool) {
	if !present {
		if v.CatchAll != "" {
			return v.CatchAll, true
		}
		return "", false
	}
	return v.Map(raw)
}

var universityLevels = map[string]bool{
	"Doktora":                           true,
	"Yüksek lisans":                     true,
	"Yüksekokul veya üniversite mezunu": true,
}

// EducationLevel 学历原始答案归入三档，其余一律为 İlköğretim ve altı
func EducationLevel(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case universityLevels[raw]:
		return EduUniversity
	case raw == "Lise ve dengi meslek okulu mezunu":
		return EduHighSchool
	default:
		return EduPrimary
	}
}

// AgeBand 年龄归入三档；无法解析的年龄返回 false
func AgeBand(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	age, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return "", false
		}
		age = int(f)
	}
	switch {
	case age >= 18 && age <= 34:
		return Age18to34, true
	case age >= 35 && age <= 54:
		return Age35to54, true
	default:
		return Age55Plus, true
	}
}
