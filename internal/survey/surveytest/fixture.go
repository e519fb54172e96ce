// Package surveytest 构造测试用问卷数据
package surveytest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
	"github.com/dogudogru/survey-report-app-v2/internal/survey"
)

// 完整列名
const (
	WeightHeader      = "duzeltilmis_agirlik"
	PartyHeader       = "Bu Pazar genel seçim olsa hangi partiye oy verirsiniz?"
	Party2023Header   = "2023 Genel Seçimlerinde hangi partiye oy verdiniz?"
	EducationHeader   = "En son mezun olduğunuz eğitim kurumunu belirtir misiniz? Halihazırda eğitiminize devam ediyorsanız lütfen şu anda devam ettiğiniz eğitim seviyesini belirtin."
	AgeHeader         = "Yaşınızı öğrenebilir miyim?"
	AgeGroupHeader    = "Yaş grubu"
	GenderHeader      = "Katılımcının cinsiyeti?"
	EconCurrentHeader = "Bugün itibari ile ekonominin nasıl olduğunu düşünüyorsunuz?"
	EconFutureHeader  = "Önümüzdeki bir yıl içerisinde ekonominin nasıl olacağını düşünüyorsunuz?"
	SubsistenceHeader = "Aşağıdaki sayılan ifadelerden hangisine katılırsınız?"
	JobHeader         = "Mevcut çalışma durumunuzu belirtir misiniz?"
)

// PoliticianHeader 政治人物评分列名
func PoliticianHeader(name string) string {
	return fmt.Sprintf("Sayacağım siyasetçileri 1-10 arası ne kadar başarılı buluyorsunuz? Lütfen tanımadığınız siyasetçi olursa belirtiniz. (1=Çok başarısız, 10=Çok başarılı) [%s]", name)
}

// Answer 一位受访者
type Answer struct {
	Weight      float64
	Party       string
	Party2023   string
	Education   string
	Age         string
	AgeGroup    string
	Gender      string
	EconCurrent string
	EconFuture  string
	Subsistence string
	Job         string
	// Scores 政治人物 -> 原始评分答案
	Scores map[string]string
}

// Headers 全部列名
func Headers() []string {
	h := []string{
		"Katılımcı No",
		WeightHeader,
		PartyHeader,
		Party2023Header,
		EducationHeader,
		AgeHeader,
		AgeGroupHeader,
		GenderHeader,
		EconCurrentHeader,
		EconFutureHeader,
		SubsistenceHeader,
		JobHeader,
	}
	for _, p := range survey.Politicians {
		h = append(h, PoliticianHeader(p))
	}
	return h
}

func (a Answer) cells(no int) []string {
	c := []string{
		fmt.Sprint(no),
		fmt.Sprint(a.Weight),
		a.Party,
		a.Party2023,
		a.Education,
		a.Age,
		a.AgeGroup,
		a.Gender,
		a.EconCurrent,
		a.EconFuture,
		a.Subsistence,
		a.Job,
	}
	for _, p := range survey.Politicians {
		c = append(c, a.Scores[p])
	}
	return c
}

// Survey 直接在内存中构造已解析的问卷
func Survey(answers []Answer) (*survey.Survey, error) {
	headers := Headers()
	schema, err := survey.Resolve(headers, survey.DefaultRoles(WeightHeader))
	if err != nil {
		return nil, err
	}
	table := &model.RespondentTable{Headers: headers}
	for i, a := range answers {
		cells := a.cells(i + 1)
		row := model.RespondentRow{Line: i + 2, Weight: a.Weight, Values: make(map[string]string, len(headers))}
		for c, h := range headers {
			row.Values[h] = cells[c]
		}
		table.Rows = append(table.Rows, row)
	}
	survey.Derive(table, schema)
	return &survey.Survey{Table: table, Schema: schema}, nil
}

// Workbook 构造问卷工作簿
func Workbook(answers []Answer) (*excelize.File, error) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	headers := Headers()
	header := make([]interface{}, 0, len(headers))
	for _, h := range headers {
		header = append(header, h)
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, a := range answers {
		cells := a.cells(i + 1)
		row := make([]interface{}, 0, len(cells))
		for j, c := range cells {
			if j == 1 {
				row = append(row, a.Weight)
				continue
			}
			row = append(row, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

// Sample 一组覆盖全部维度的受访者
func Sample() []Answer {
	return []Answer{
		{
			Weight: 1, Party: "Cumhuriyet Halk Partisi (CHP)", Party2023: "Cumhuriyet Halk Partisi (CHP)",
			Education: "Yüksekokul veya üniversite mezunu", Age: "29", AgeGroup: "25-34", Gender: "Kadın",
			EconCurrent: "Çok kötü", EconFuture: "Daha kötü",
			Subsistence: "Geçtiğimiz ay gelirim giderlerimi karşılamadı.", Job: "Ücretli özel sektör çalışanı",
			Scores: map[string]string{"Recep Tayyip Erdoğan": "1=Çok başarısız", "Özgür Özel": "8", "Ekrem İmamoğlu": "10=Çok başarılı"},
		},
		{
			Weight: 1, Party: "Cumhuriyet Halk Partisi (CHP)", Party2023: "Adalet ve Kalkınma Partisi (AK Parti/AKP)",
			Education: "Lise ve dengi meslek okulu mezunu", Age: "41", AgeGroup: "35-44", Gender: "Erkek",
			EconCurrent: "Kötü", EconFuture: "Değişmez",
			Subsistence: "Geçtiğimiz ay gelirim giderlerimi ucu ucuna karşıladı.", Job: "Maaşlı devlet çalışanı",
			Scores: map[string]string{"Recep Tayyip Erdoğan": "3", "Özgür Özel": "7", "Ekrem İmamoğlu": "Tanımıyorum (Anketör Dikkat: Okumayın)"},
		},
		{
			Weight: 2, Party: "Adalet ve Kalkınma Partisi (AKP)", Party2023: "Adalet ve Kalkınma Partisi (AK Parti/AKP)",
			Education: "İlkokul mezunu", Age: "67", AgeGroup: "65 ve üstü", Gender: "Erkek",
			EconCurrent: "İyi", EconFuture: "Daha iyi",
			Subsistence: "Geçtiğimiz ay gelirim giderlerimin üzerinde oldu.", Job: "Emekli, çalışmıyor",
			Scores: map[string]string{"Recep Tayyip Erdoğan": "10=Çok başarılı", "Özgür Özel": "2", "Ekrem İmamoğlu": "4"},
		},
	}
}
