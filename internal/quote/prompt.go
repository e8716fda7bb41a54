package quote

import (
	"fmt"
	"math/rand"

	"github.com/hihu/gita-notifier/internal/model"
)

// languageInstruction pairs the primary language directive with extra
// guidance appended to every prompt.
type languageInstruction struct {
	primary    string
	additional string
}

var languageInstructions = map[string]languageInstruction{
	model.LanguageEnglish: {
		primary:    "Provide all translations and wisdom in clear, beautiful English",
		additional: "Use inspiring, accessible language that resonates with modern English speakers. Avoid archaic terms.",
	},
	model.LanguageHindi: {
		primary:    "सभी अनुवाद और ज्ञान सुंदर हिंदी में प्रदान करें",
		additional: "आधुनिक हिंदी भाषियों के लिए प्रेरणादायक और सुलभ भाषा का उपयोग करें। कठिन शब्दों से बचें।",
	},
	model.LanguageSanskrit: {
		primary:    "Provide detailed Sanskrit commentary and explanation",
		additional: "Include word-by-word meaning and grammatical insights for Sanskrit students. Use proper Devanagari script.",
	},
}

func instructionsFor(language string) languageInstruction {
	if li, ok := languageInstructions[language]; ok {
		return li
	}
	return languageInstructions[model.LanguageEnglish]
}

var themes = []string{
	"overcoming stress and anxiety",
	"finding purpose in work",
	"building healthy relationships",
	"developing inner peace",
	"dealing with difficult people",
	"making important decisions",
	"finding motivation and energy",
	"balancing material and spiritual life",
	"developing patience and tolerance",
	"cultivating gratitude and contentment",
	"managing anger and frustration",
	"finding strength in adversity",
	"developing self-discipline",
	"overcoming fear and doubt",
	"cultivating compassion and kindness",
}

// randomPrompt asks for a random verse in the rigid labeled-section
// format the parser expects. A throwaway seed string nudges the model
// away from repeating commonly quoted verses.
func randomPrompt(language string) string {
	li := instructionsFor(language)
	seed := fmt.Sprintf("%06x", rand.Intn(1<<24))

	return fmt.Sprintf(`You are a spiritual guide sharing wisdom from the Bhagavad Gita. Generate a meaningful daily quote following this EXACT format:

RANDOMIZATION SEED: %s - Use this to select a truly random verse, not commonly quoted ones like 2.47.

CRITICAL FORMATTING RULES:
- Use EXACTLY these headers with double asterisks: **Verse:**, **Sanskrit:**, **Translation:**, **Today's Wisdom:**
- Each section must be on a new line
- No additional formatting or decorations

CONTENT REQUIREMENTS:
- Select a DIFFERENT, RANDOM verse from chapters 1-18 of the Bhagavad Gita (avoid repeating 2.47)
- Provide authentic Sanskrit text (use proper Devanagari script)
- Give accurate translation in %s
- Offer practical wisdom for modern daily challenges

LANGUAGE: %s

EXACT OUTPUT FORMAT (follow precisely):
**Verse:** [Chapter.Verse number, e.g., 3.21, 7.14, 12.13 - pick randomly]
**Sanskrit:** [Authentic Sanskrit verse in Devanagari script]
**Translation:** [Clear, inspiring translation in %s]
**Today's Wisdom:** [2-3 concise sentences offering practical guidance for applying this verse in daily life]

%s

Generate a RANDOM quote now:`, seed, language, li.primary, language, li.additional)
}

// sequentialPrompt asks for the exact verse at the user's current
// cursor position.
func sequentialPrompt(language string, chapter, verse int) string {
	li := instructionsFor(language)

	return fmt.Sprintf(`You are providing sequential verses from the Bhagavad Gita for systematic daily study.

CURRENT POSITION: Chapter %d, Verse %d

CRITICAL FORMATTING RULES:
- Use EXACTLY these headers: **Verse:**, **Sanskrit:**, **Translation:**, **Daily Reflection:**
- Each section must be on a new line
- Provide the EXACT verse requested, not a random one

LANGUAGE: %s

EXACT OUTPUT FORMAT:
**Verse:** %d.%d
**Sanskrit:** [Exact Sanskrit text for Chapter %d, Verse %d in Devanagari]
**Translation:** [Accurate translation in %s]
**Daily Reflection:** [Context within the chapter, the deeper spiritual meaning, and practical application for daily life - 2-3 sentences each]

%s

Generate the sequential verse now:`, chapter, verse, li.primary, chapter, verse, chapter, verse, language, li.additional)
}

// themedPrompt asks for a verse addressing one of the rotating daily
// life themes.
func themedPrompt(language string) string {
	li := instructionsFor(language)
	theme := themes[rand.Intn(len(themes))]

	return fmt.Sprintf(`You are a wise spiritual counselor. Someone is struggling with: %s

CRITICAL FORMATTING RULES:
- Use EXACTLY these headers: **Today's Challenge:**, **Verse:**, **Sanskrit:**, **Translation:**, **Practical Guidance:**
- Each section must be on a new line
- Choose a verse that directly addresses this challenge

LANGUAGE: %s

EXACT OUTPUT FORMAT:
**Today's Challenge:** %s
**Verse:** [Chapter.Verse that directly addresses this challenge]
**Sanskrit:** [Authentic Sanskrit text in Devanagari]
**Translation:** [Clear, comforting translation in %s]
**Practical Guidance:** [Why this verse fits today's challenge, concrete action steps, and an uplifting closing reminder]

%s

Generate the themed quote now:`, theme, li.primary, theme, language, li.additional)
}
