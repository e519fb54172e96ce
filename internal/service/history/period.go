package history

import (
	"fmt"
	"time"
)

// TurkishMonths 期次标签使用的土耳其语月份缩写
var TurkishMonths = [12]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}

// PeriodLabel 期次标签，例如 2024 年 1 月为 "Oca.24"
func PeriodLabel(t time.Time) string {
	return fmt.Sprintf("%s.%02d", TurkishMonths[t.Month()-1], t.Year()%100)
}

// FileStamp 输出文件名中的月份，例如 "Oca24"
func FileStamp(t time.Time) string {
	return fmt.Sprintf("%s%02d", TurkishMonths[t.Month()-1], t.Year()%100)
}
