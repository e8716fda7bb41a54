// Package corpus holds the fixed Bhagavad Gita index used for content
// selection: the per-chapter verse counts, a small embedded verse set
// served without calling the content provider, and the fallback quotes
// used when the provider fails.
package corpus

import "math/rand"

// Chapters is the number of chapters in the Gita.
const Chapters = 18

// verseCounts maps chapter (1-based) to its verse count.
var verseCounts = [Chapters + 1]int{
	0,
	47, 72, 43, 42, 29, 47, 30, 28, 34,
	42, 55, 20, 35, 27, 20, 24, 28, 78,
}

// VerseCount returns the number of verses in the given chapter,
// or 0 for an out-of-range chapter.
func VerseCount(chapter int) int {
	if chapter < 1 || chapter > Chapters {
		return 0
	}
	return verseCounts[chapter]
}

// Verse is one entry of the embedded verse set.
type Verse struct {
	Reference string // "chapter.verse"
	Sanskrit  string
	English   string
	Hindi     string
}

var verses = []Verse{
	{
		Reference: "2.20",
		Sanskrit:  "न जायते म्रियते वा कदाचिन्नायं भूत्वा भविता वा न भूयः। अजो नित्यः शाश्वतोऽयं पुराणो न हन्यते हन्यमाने शरीरे॥",
		English:   "The soul is never born, nor does it die. It is not slain when the body is slain.",
		Hindi:     "आत्मा न तो जन्म लेती है और न ही मरती है। शरीर के नष्ट होने पर आत्मा नष्ट नहीं होती।",
	},
	{
		Reference: "2.62",
		Sanskrit:  "ध्यायतो विषयान्पुंसः सङ्गस्तेषूपजायते। सङ्गात्सञ्जायते कामः कामात्क्रोधोऽभिजायते॥",
		English:   "While contemplating the objects of the senses, attachment develops. From attachment comes desire, and from desire arises anger.",
		Hindi:     "विषयों का चिंतन करने से उनमें आसक्ति होती है। आसक्ति से काम और काम से क्रोध उत्पन्न होता है।",
	},
	{
		Reference: "4.7",
		Sanskrit:  "यदा यदा हि धर्मस्य ग्लानिर्भवति भारत। अभ्युत्थानमधर्मस्य तदात्मानं सृजाम्यहम्॥",
		English:   "Whenever there is a decline in dharma and rise of adharma, I manifest myself.",
		Hindi:     "जब-जब धर्म की हानि और अधर्म की वृद्धि होती है, तब-तब मैं अवतार लेता हूं।",
	},
	{
		Reference: "6.5",
		Sanskrit:  "उद्धरेदात्मनात्मानं नात्मानमवसादयेत्। आत्मैव ह्यात्मनो बन्धुरात्मैव रिपुरात्मनः॥",
		English:   "One should lift oneself by one's own efforts and not degrade oneself. The mind alone is one's friend as well as one's enemy.",
		Hindi:     "मनुष्य को अपने द्वारा अपना उद्धार करना चाहिए। मन ही मनुष्य का मित्र है और मन ही शत्रु है।",
	},
	{
		Reference: "15.7",
		Sanskrit:  "ममैवांशो जीवलोके जीवभूतः सनातनः। मनःषष्ठानीन्द्रियाणि प्रकृतिस्थानि कर्षति॥",
		English:   "The living entities in this world are My eternal fragmental parts, drawing the six senses including the mind from material nature.",
		Hindi:     "इस संसार में सभी जीव मेरे ही शाश्वत अंश हैं, जो प्रकृति से मन सहित छह इंद्रियों को आकर्षित करते हैं।",
	},
}

// RandomVerse picks one verse from the embedded set.
func RandomVerse() Verse {
	return verses[rand.Intn(len(verses))]
}

// FallbackQuote is a pre-written quote served when the content
// provider fails or returns unusable output.
type FallbackQuote struct {
	VerseRef    string
	Sanskrit    string
	Translation string
	Wisdom      string
}

var fallbacks = []FallbackQuote{
	{
		VerseRef:    "2.47",
		Sanskrit:    "कर्मण्येवाधिकारस्ते मा फलेषु कदाचन। मा कर्मफलहेतुर्भूर्मा ते सङ्गोऽस्त्वकर्मणि॥",
		Translation: "You have the right to perform your actions, but you are not entitled to the fruits of action. Never let the fruits of action be your motive, nor let your attachment be to inaction.",
		Wisdom:      "Focus on your efforts and duties without being attached to the outcomes. This brings peace and reduces anxiety about results. When you work without attachment to success or failure, you find true freedom and inner calm.",
	},
	{
		VerseRef:    "2.14",
		Sanskrit:    "मात्रास्पर्शास्तु कौन्तेय शीतोष्णसुखदुःखदाः। आगमापायिनोऽनित्यास्तांस्तितिक्षस्व भारत॥",
		Translation: "The experiences of heat and cold, pleasure and pain, are temporary. They come and go, so learn to endure them with patience.",
		Wisdom:      "Remember that all difficulties are temporary. Maintain your inner stability through life's ups and downs. Just as seasons change, your current challenges will also pass.",
	},
	{
		VerseRef:    "6.5",
		Sanskrit:    "उद्धरेदात्मनात्मानं नात्मानमवसादयेत्। आत्मैव ह्यात्मनो बन्धुरात्मैव रिपुरात्मनः॥",
		Translation: "One should lift oneself by one's own efforts and not degrade oneself. The mind alone is one's friend as well as one's enemy.",
		Wisdom:      "You have the power to elevate yourself through your own efforts. Be your own best friend and supporter. Your mind can either be your greatest ally or your worst enemy - train it to work for you.",
	},
}

// RandomFallback picks one of the pre-written fallback quotes.
func RandomFallback() FallbackQuote {
	return fallbacks[rand.Intn(len(fallbacks))]
}
