package ndi

import "strings"

// The credential's address attributes are free-typed at enrolment time,
// so dzongkhag and gewog values are only accepted when they match the
// wizard's dropdown options. Unmatched input maps to empty and the
// applicant picks the value manually. This is deliberately stricter
// than the core-banking mapper, which preserves address text verbatim.

var dzongkhags = []string{
	"Bumthang",
	"Chhukha",
	"Dagana",
	"Gasa",
	"Haa",
	"Lhuentse",
	"Mongar",
	"Paro",
	"Pemagatshel",
	"Punakha",
	"Samdrup Jongkhar",
	"Samtse",
	"Sarpang",
	"Thimphu",
	"Trashigang",
	"Trashiyangtse",
	"Trongsa",
	"Tsirang",
	"Wangdue Phodrang",
	"Zhemgang",
}

var gewogs = []string{
	"Chhoekhor", "Chhume", "Tang", "Ura",
	"Bjachho", "Bongo", "Chapcha", "Darla", "Geling", "Getena", "Loggchina", "Metap", "Phuentsholing", "Sampheling",
	"Dorona", "Drujegang", "Gesarling", "Goshi", "Kana", "Khebisa", "Largyab", "Lhamoy Zingkha", "Tashiding", "Tsangkha", "Tseza",
	"Goenkhamey", "Goenkhatoe", "Laya", "Lunana",
	"Bji", "Katsho", "Samar", "Sangbay", "Uesu",
	"Gangzur", "Jarey", "Khoma", "Kurtoe", "Menbi", "Metsho", "Minjey", "Tsenkhar",
	"Chaskhar", "Drametse", "Drepong", "Gongdue", "Jurmey", "Kengkhar", "Mongar", "Narang", "Ngatshang", "Saleng", "Sherimuhung", "Silambi", "Thangrong", "Tsakaling", "Tsamang",
	"Doga", "Dopshari", "Doteng", "Hungrel", "Lamgong", "Lungnyi", "Naja", "Shapa", "Tsento", "Wangchang",
	"Chhimoong", "Chongshing", "Dechenling", "Dungmaed", "Khar", "Nanong", "Norbugang", "Shumar", "Yurung", "Zobel",
	"Barp", "Chhubu", "Dzomi", "Goenshari", "Guma", "Kabjisa", "Lingmukha", "Shengana", "Talog", "Toedwang", "Toepisa",
	"Dewathang", "Gomdar", "Langchenphu", "Lauri", "Martshala", "Orong", "Pemathang", "Phuntshothang", "Samrang", "Serthi", "Wangphu",
	"Dophuchen", "Duenchukha", "Namgaychhoeling", "Norgaygang", "Pemaling", "Phuentshopelri", "Samtse", "Sangngagchhoeling", "Tading", "Tashichhoeling", "Tendruk", "Ugyentse", "Yoeseltse",
	"Chhudzom", "Dekiling", "Gakiling", "Gelephu", "Jigmechhoeling", "Samtenling", "Senggey", "Serzhong", "Shompangkha", "Tareythang", "Umling",
	"Chang", "Dagala", "Genekha", "Kawang", "Lingzhi", "Mewang", "Naro", "Soe",
	"Bartsham", "Bidung", "Kanglung", "Kangpara", "Khaling", "Lumang", "Merak", "Phongmey", "Radhi", "Sakteng", "Samkhar", "Shongphu", "Thrimshing", "Udzorong", "Yangnyer",
	"Boomdeling", "Jamkhar", "Khamdang", "Ramjar", "Toetsho", "Yalang", "Yangtse",
	"Drakteng", "Korphu", "Langthil", "Nubi", "Tangsibji",
	"Barshong", "Dunglagang", "Gosarling", "Kikhorthang", "Mendrelgang", "Patshaling", "Phuentenchu", "Rangthangling", "Sergithang", "Tsholingkhar", "Tsirangtoe",
	"Athang", "Bjena", "Daga", "Dangchhu", "Gangte", "Gase Tshogongm", "Kazhi", "Nahi", "Nyisho", "Phangyuel", "Phobji", "Ruepisa", "Sephu", "Thedtsho",
	"Bardo", "Bjoka", "Goshing", "Nangkor", "Ngangla", "Phangkhar", "Shingkhar", "Trong",
}

// MatchDzongkhag matches case-insensitively against the fixed dzongkhag
// list, returning the canonical spelling or "".
func MatchDzongkhag(raw string) string {
	return matchOption(raw, dzongkhags)
}

// MatchGewog matches case-insensitively against the fixed gewog list,
// returning the canonical spelling or "".
func MatchGewog(raw string) string {
	return matchOption(raw, gewogs)
}

func matchOption(raw string, options []string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	for _, option := range options {
		if strings.EqualFold(candidate, option) {
			return option
		}
	}
	return ""
}
