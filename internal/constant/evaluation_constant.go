package constant

// Broadcast languages a candidate may submit in.
var BroadcastLanguages = []string{"korean", "english", "japanese", "chinese"}

// Evaluation categories/tracks.
var EvaluationCategories = []string{"domestic", "international", "emergency", "irregular"}

func IsBroadcastLanguage(lang string) bool {
	for _, l := range BroadcastLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func IsEvaluationCategory(cat string) bool {
	for _, c := range EvaluationCategories {
		if c == cat {
			return true
		}
	}
	return false
}
