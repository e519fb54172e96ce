package mapping

import "github.com/dogudogru/survey-report-app-v2/internal/model"

// 规范类别
const (
	AKParti           = "AK Parti"
	CHP               = "CHP"
	DEMParti          = "DEM Parti"
	IYIParti          = "İYİ Parti"
	MHP               = "MHP"
	Kararsiz          = "Kararsız"
	OyKullanmam       = "Oy Kullanmam"
	Diger             = "Diğer"
	ZaferPartisi      = "Zafer Partisi"
	YenidenRefah      = "Yeniden Refah Partisi"
	AnahtarParti      = "Anahtar Parti"
	Kararsizim        = "Kararsızım"
	OyKullanmayacagim = "Oy kullanmayacağım"
	YesilSolParti     = "Yeşil Sol Parti"
	Toplam            = "Toplam"

	EduPrimary    = "İlköğretim ve altı"
	EduHighSchool = "Lise"
	EduUniversity = "Yüksekokul ve üzeri"

	Age18to34 = "18-34"
	Age35to54 = "35-54"
	Age55Plus = "55 ve üstü"

	EconBad     = "Çok kötü / Kötü"
	EconNeutral = "Ne iyi ne kötü"
	EconGood    = "Çok İyi / İyi"

	FutureWorse  = "Çok Daha Kötü/Daha Kötü"
	FutureSame   = "Değişmez"
	FutureBetter = "Çok Daha İyi/Daha İyi"

	SubsNotMet    = "Gelirim giderimi karşılamadı."
	SubsBarely    = "Gelirim giderimi ucu ucuna karşıladı."
	SubsAbove     = "Gelirim giderlerimin üzerinde oldu."
	SubsWellAbove = "Gelirim giderlerimi fazlasıyla karşıladı."
)

// 问卷中的原始答案
const (
	rawAKP     = "Adalet ve Kalkınma Partisi (AKP)"
	rawCHP     = "Cumhuriyet Halk Partisi (CHP)"
	rawHDP     = "Yeşil Sol Parti (YSP)/ Halkların Demokratik Partisi (HDP)"
	rawMHP     = "Milliyetçi Hareket Partisi (MHP)"
	rawAKP2023 = "Adalet ve Kalkınma Partisi (AK Parti/AKP)"
	rawDEM2023 = "Yeşil Sol Parti (YSP) / Halkların Demokratik Partisi (HDP) / DEM Parti"

	rawSubsNotMet    = "Geçtiğimiz ay gelirim giderlerimi karşılamadı."
	rawSubsBarely    = "Geçtiğimiz ay gelirim giderlerimi ucu ucuna karşıladı."
	rawSubsAbove     = "Geçtiğimiz ay gelirim giderlerimin üzerinde oldu."
	rawSubsWellAbove = "Geçtiğimiz ay gelirim giderlerimi fazlasıyla karşıladı."
)

// TrackedParties 归档与图表中逐党跟踪的五个政党
var TrackedParties = []string{AKParti, CHP, DEMParti, IYIParti, MHP}

// PartyArchive 归档用的当前投票意向
var PartyArchive = model.MustVocabulary("party",
	[]string{AKParti, CHP, DEMParti, IYIParti, MHP, Kararsiz, OyKullanmam, Diger},
	map[string]string{
		rawAKP:            AKParti,
		rawCHP:            CHP,
		rawHDP:            DEMParti,
		IYIParti:          IYIParti,
		rawMHP:            MHP,
		Kararsizim:        Kararsiz,
		OyKullanmayacagim: OyKullanmam,
	},
	Diger,
)

// PartySnapshot 当期得票率图表用的投票意向，保留小党
var PartySnapshot = model.MustVocabulary("party_snapshot",
	[]string{CHP, AKParti, DEMParti, MHP, ZaferPartisi, IYIParti, YenidenRefah, AnahtarParti, OyKullanmayacagim, Kararsizim, Diger},
	map[string]string{
		rawCHP:            CHP,
		rawAKP:            AKParti,
		rawHDP:            DEMParti,
		rawMHP:            MHP,
		ZaferPartisi:      ZaferPartisi,
		IYIParti:          IYIParti,
		YenidenRefah:      YenidenRefah,
		AnahtarParti:      AnahtarParti,
		OyKullanmayacagim: OyKullanmayacagim,
		Kararsizim:        Kararsizim,
	},
	Diger,
)

// PartyTransition 27_party_2023 表的行顺序
var PartyTransition = model.MustVocabulary("party_transition",
	[]string{AKParti, CHP, MHP, IYIParti, DEMParti, YenidenRefah, ZaferPartisi, AnahtarParti, Diger, OyKullanmayacagim, Kararsizim},
	PartySnapshot.Mapping,
	Diger,
)

// Party2023Archive 2023 选举回忆（归档标签），无兜底
var Party2023Archive = model.MustVocabulary("party_2023",
	TrackedParties,
	map[string]string{
		rawAKP2023: AKParti,
		rawCHP:     CHP,
		rawDEM2023: DEMParti,
		IYIParti:   IYIParti,
		rawMHP:     MHP,
	},
	"",
)

var party2023TableMapping = map[string]string{
	rawAKP2023: AKParti,
	rawCHP:     CHP,
	rawDEM2023: YesilSolParti,
	IYIParti:   IYIParti,
	rawMHP:     MHP,
}

// Party2023Table 2023 选举回忆（表格标签），无兜底
var Party2023Table = model.MustVocabulary("party_2023_table",
	[]string{AKParti, CHP, YesilSolParti, IYIParti, MHP},
	party2023TableMapping,
	"",
)

// Party2023Transition 27_party_2023 表的列顺序，与模板 B..F 一致
var Party2023Transition = model.MustVocabulary("party_2023_transition",
	[]string{AKParti, CHP, MHP, IYIParti, YesilSolParti},
	party2023TableMapping,
	"",
)

// EconCurrentGrouped 当前经济评价（三档）
var EconCurrentGrouped = model.MustVocabulary("econ_current",
	[]string{EconBad, EconNeutral, EconGood},
	map[string]string{
		"Çok iyi":        EconGood,
		"İyi":            EconGood,
		"Ne iyi ne kötü": EconNeutral,
		"Kötü":           EconBad,
		"Çok kötü":       EconBad,
	},
	"",
)

// EconFutureGrouped 未来一年经济预期（三档）
var EconFutureGrouped = model.MustVocabulary("econ_future",
	[]string{FutureWorse, FutureSame, FutureBetter},
	map[string]string{
		"Çok daha iyi":  FutureBetter,
		"Daha iyi":      FutureBetter,
		"Değişmez":      FutureSame,
		"Daha kötü":     FutureWorse,
		"Çok daha kötü": FutureWorse,
	},
	"",
)

// EconCurrentDetailed 当前经济评价（五档）
var EconCurrentDetailed = model.IdentityVocabulary("econ_current_detail",
	[]string{"Çok kötü", "Kötü", "Ne iyi ne kötü", "İyi", "Çok iyi"})

// EconFutureDetailed 未来经济预期（五档）
var EconFutureDetailed = model.IdentityVocabulary("econ_future_detail",
	[]string{"Çok daha kötü", "Daha kötü", "Değişmez", "Daha iyi", "Çok daha iyi"})

// EconCurrentNegative 五档中的负面类别
var EconCurrentNegative = []string{"Çok kötü", "Kötü"}

// EconFutureNegative 五档预期中的负面类别
var EconFutureNegative = []string{"Çok daha kötü", "Daha kötü"}

// SubsistenceArchive 收支状况（归档标签）
var SubsistenceArchive = model.MustVocabulary("subsistence",
	[]string{SubsNotMet, SubsBarely, SubsAbove, SubsWellAbove},
	map[string]string{
		rawSubsNotMet:    SubsNotMet,
		rawSubsBarely:    SubsBarely,
		rawSubsAbove:     SubsAbove,
		rawSubsWellAbove: SubsWellAbove,
	},
	"",
)

// SubsistenceStrained 收入未覆盖或勉强覆盖支出
var SubsistenceStrained = []string{SubsNotMet, SubsBarely}

// SubsistenceTable 收支状况（表格短标签）
var SubsistenceTable = model.MustVocabulary("subsistence_table",
	[]string{"Karşılamadı", "Ucu ucuna karşıladı", "Üzerinde oldu", "Fazlasıyla karşıladı"},
	map[string]string{
		rawSubsNotMet:    "Karşılamadı",
		rawSubsBarely:    "Ucu ucuna karşıladı",
		rawSubsAbove:     "Üzerinde oldu",
		rawSubsWellAbove: "Fazlasıyla karşıladı",
	},
	"",
)

// Education 学历三档（派生列上的恒等词表）
var Education = model.IdentityVocabulary("education", []string{EduPrimary, EduHighSchool, EduUniversity})

// AgeBands 年龄三档（派生列上的恒等词表）
var AgeBands = model.IdentityVocabulary("age_band", []string{Age18to34, Age35to54, Age55Plus})

// AgeGroups 问卷自带的六档年龄组
var AgeGroups = model.MustVocabulary("age_group",
	[]string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"},
	map[string]string{
		"18-24":      "18-24",
		"25-34":      "25-34",
		"35-44":      "35-44",
		"45-54":      "45-54",
		"55-64":      "55-64",
		"65+":        "65+",
		"65 ve üstü": "65+",
	},
	"",
)

// Gender 性别
var Gender = model.IdentityVocabulary("gender", []string{"Kadın", "Erkek"})

// Jobs 工作状况
var Jobs = model.IdentityVocabulary("job", []string{
	"Emekli, çalışmıyor",
	"İşsiz ama iş aramıyor",
	"İşsiz ve iş arıyor",
	"Kendi hesabına çalışan veya işveren",
	"Maaşlı devlet çalışanı",
	"Öğrenci",
	"Ücretli özel sektör çalışanı",
	"Günlük / yevmiyeli çalışan",
})

// PartySuffix 按党拆分的归档表后缀
var PartySuffix = map[string]string{
	AKParti:     "akp",
	CHP:         "chp",
	DEMParti:    "dem",
	IYIParti:    "iyip",
	MHP:         "mhp",
	Kararsiz:    "kararsiz",
	OyKullanmam: "absent",
}

// SplitParties 拆分归档表覆盖的政党，按表顺序
var SplitParties = []string{AKParti, CHP, DEMParti, IYIParti, MHP, Kararsiz, OyKullanmam}
