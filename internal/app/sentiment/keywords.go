package sentiment

import (
	"strings"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// Keyword lists tuned for the fitness/workout context.
var (
	positiveWords = []string{
		"great", "good", "amazing", "excellent", "love", "enjoyed", "happy",
		"energized", "strong", "accomplished", "proud", "confident", "motivated",
		"refreshed", "invigorated", "powerful", "successful", "fantastic",
		"wonderful", "awesome", "perfect", "smooth", "easy", "comfortable",
		"relaxed", "calm", "peaceful", "satisfied", "pleased",
	}

	negativeWords = []string{
		"tired", "exhausted", "difficult", "hard", "struggled", "pain", "hurt",
		"bad", "awful", "hate", "terrible", "horrible", "painful", "sore",
		"uncomfortable", "challenging", "tough", "weak", "frustrated", "annoyed",
		"disappointed", "discouraged", "overwhelmed", "stressed", "anxious",
	}

	neutralWords = []string{
		"okay", "fine", "normal", "average", "usual", "typical", "standard",
		"regular", "moderate", "decent", "alright",
	}
)

// KeywordSentiment is the deterministic fallback classifier. Each keyword
// present anywhere in the lower-cased text counts once; the category with
// the strictly highest count wins, and any tie (including all-zero) is
// neutral.
func KeywordSentiment(text string) domain.Sentiment {
	lower := strings.ToLower(text)

	positive := countMatches(lower, positiveWords)
	negative := countMatches(lower, negativeWords)
	neutral := countMatches(lower, neutralWords)

	switch {
	case positive > negative && positive > neutral:
		return domain.SentimentPositive
	case negative > positive && negative > neutral:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func countMatches(lower string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}
