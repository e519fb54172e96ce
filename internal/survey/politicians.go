package survey

// 政治人物评分题的公共前缀，列名以 [姓名] 结尾
const politicianQuestion = "Sayacağım siyasetçileri 1-10 arası ne kadar başarılı buluyorsunuz?"

// Politicians 当期评分图表覆盖的全部政治人物
var Politicians = []string{
	"Recep Tayyip Erdoğan",
	"Özgür Özel",
	"Ekrem İmamoğlu",
	"Devlet Bahçeli",
	"Tülay Hatimoğulları Oruç",
	"Mansur Yavaş",
	"Mahmut Arıkan",
	"Muharrem İnce",
	"Ümit Özdağ",
	"Erkan Baş",
	"Fatih Erbakan",
	"Müsavat Dervişoğlu",
	"Yavuz Ağıralioğlu",
}

// MainPoliticians politician_success_main 的列顺序
var MainPoliticians = []string{
	"Recep Tayyip Erdoğan",
	"Özgür Özel",
	"Devlet Bahçeli",
	"Ekrem İmamoğlu",
	"Mansur Yavaş",
	"Fatih Erbakan",
}

// SecondPoliticians politician_success_second 的列顺序
var SecondPoliticians = []string{
	"Muharrem İnce",
	"Erkan Baş",
	"Ümit Özdağ",
	"Müsavat Dervişoğlu",
	"Tülay Hatimoğulları Oruç",
	"Yavuz Ağıralioğlu",
	"Mahmut Arıkan",
}

// PoliticianRole 政治人物评分列的角色
func PoliticianRole(name string) Role {
	return Role("politician:" + name)
}
