package advisor

// Curated advice pools. When the model is unreachable the advisor still
// answers, picking from the pool for the detected category and language.

// Supported languages.
const (
	LangEnglish = "en"
	LangHindi   = "hi"
	LangMarathi = "mr"
)

func normalizeLanguage(lang string) string {
	switch lang {
	case LangHindi, LangMarathi:
		return lang
	default:
		return LangEnglish
	}
}

var curatedAdvice = map[string]map[string][]string{
	CategorySaving: {
		LangEnglish: {
			"Pay yourself first: move a fixed amount to savings the day income lands, before any spending.",
			"Build an emergency fund of three to six months of expenses before chasing returns.",
			"Small automatic transfers beat large irregular ones. Consistency compounds.",
		},
		LangHindi: {
			"सबसे पहले खुद को भुगतान करें: आय आते ही एक तय राशि बचत में डालें।",
			"तीन से छह महीने के खर्च का आपातकालीन फंड सबसे पहले बनाएं।",
		},
		LangMarathi: {
			"आधी स्वतःला द्या: पगार आल्याबरोबर ठरलेली रक्कम बचतीत टाका.",
			"तीन ते सहा महिन्यांच्या खर्चाचा आपत्कालीन निधी आधी उभारा.",
		},
	},
	CategoryInvesting: {
		LangEnglish: {
			"Never invest money you will need within a year. Markets reward patience, not urgency.",
			"Diversify across sectors. One bad quarter in a single holding should not sink you.",
			"Understand what you buy. If you cannot explain the asset in one sentence, wait.",
		},
		LangHindi: {
			"जो पैसा एक साल के भीतर चाहिए, उसे कभी निवेश न करें।",
			"अलग-अलग क्षेत्रों में निवेश बांटें। एक ही जगह सब कुछ न लगाएं।",
		},
		LangMarathi: {
			"वर्षभरात लागणारा पैसा कधीही गुंतवू नका.",
			"वेगवेगळ्या क्षेत्रांत गुंतवणूक विभागा. सगळे एकाच ठिकाणी नको.",
		},
	},
	CategoryDebt: {
		LangEnglish: {
			"Clear the highest-interest loan first. Instant app loans usually top that list.",
			"An EMI above a third of your income is a warning sign, not a lifestyle.",
			"Your credit score is a habit tracker: pay on time, every time, and it heals.",
		},
		LangHindi: {
			"सबसे ज़्यादा ब्याज वाला कर्ज़ पहले चुकाएं। ऐप वाले लोन अक्सर सबसे महंगे होते हैं।",
			"आय के एक-तिहाई से ज़्यादा EMI खतरे की घंटी है।",
		},
		LangMarathi: {
			"सर्वाधिक व्याजाचे कर्ज आधी फेडा. अ‍ॅपवरील कर्जे बहुधा सर्वांत महाग असतात.",
			"उत्पन्नाच्या एक तृतीयांशाहून अधिक EMI हा धोक्याचा इशारा आहे.",
		},
	},
	CategoryBudgeting: {
		LangEnglish: {
			"Track every rupee for one month. The leaks you find will surprise you.",
			"Needs first, savings second, wants last. The order matters more than the amounts.",
			"Review subscriptions quarterly. Recurring costs grow quietly.",
		},
		LangHindi: {
			"एक महीने तक हर रुपया लिखें। छोटे-छोटे खर्च ही बजट बिगाड़ते हैं।",
			"पहले ज़रूरतें, फिर बचत, आखिर में शौक।",
		},
		LangMarathi: {
			"महिनाभर प्रत्येक रुपयाची नोंद ठेवा. छोटे खर्चच बजेट बिघडवतात.",
			"आधी गरजा, मग बचत, शेवटी हौस.",
		},
	},
	CategoryScams: {
		LangEnglish: {
			"Guaranteed returns above bank rates are the oldest red flag in finance. Walk away.",
			"Urgency is the scammer's tool. A real opportunity survives a night's sleep.",
			"Never share an OTP. No bank, broker or official will ever ask for one.",
		},
		LangHindi: {
			"बैंक दर से ज़्यादा 'गारंटीड' रिटर्न सबसे पुराना धोखा है। दूर रहें।",
			"जल्दबाज़ी ठगों का हथियार है। असली मौका एक रात रुक सकता है।",
		},
		LangMarathi: {
			"बँक दरापेक्षा जास्त 'खात्रीशीर' परतावा हा जुना फसवा डाव आहे. दूर राहा.",
			"घाई हे फसवणुकीचे हत्यार आहे. खरी संधी एक रात्र थांबू शकते.",
		},
	},
	CategoryGeneral: {
		LangEnglish: {
			"Wealth is built by boring habits: spend less than you earn, invest the gap, wait.",
			"Money decisions made in stress are usually bad ones. Slow down before you sign.",
			"Financial literacy compounds like interest. Learn one concept a week.",
		},
		LangHindi: {
			"कमाई से कम खर्च करें, बाकी निवेश करें, और धैर्य रखें।",
			"तनाव में लिए गए पैसों के फैसले अक्सर गलत होते हैं।",
		},
		LangMarathi: {
			"कमाईपेक्षा कमी खर्च करा, उरलेले गुंतवा, आणि वाट पाहा.",
			"तणावात घेतलेले आर्थिक निर्णय बहुधा चुकीचे ठरतात.",
		},
	},
}

// curatedFor returns the pool for a category and language, falling back
// to English and then to the general pool.
func curatedFor(category, lang string) []string {
	pools, ok := curatedAdvice[category]
	if !ok {
		pools = curatedAdvice[CategoryGeneral]
	}
	if pool, ok := pools[lang]; ok && len(pool) > 0 {
		return pool
	}
	return pools[LangEnglish]
}
