package derive

import (
	"strings"

	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// Classify maps text to one of the four priority levels.
//
// An explicit valid override (case-insensitive) always wins, regardless
// of text content. Otherwise keyword hits accumulate weight into their
// priority bucket and the unique highest-scoring bucket is returned;
// ties — including no hits at all — resolve to Medium, the conservative
// default.
//
// An unrecognized override is not an error: it is logged at warn level
// for observability and the scored result is used instead. The logger
// may be nil.
func Classify(text, override string, vocab Vocabulary, log *zap.Logger) workitem.Priority {
	if override != "" {
		if p, ok := workitem.ParsePriority(override); ok {
			return p
		}
		if log != nil {
			log.Warn("ignoring unrecognized priority override",
				zap.String("override", override))
		}
	}

	lower := strings.ToLower(cleanText(text))
	scores := map[workitem.Priority]int{}
	for _, pk := range vocab.PriorityWeights {
		if strings.Contains(lower, pk.Keyword) {
			scores[pk.Priority] += pk.Weight
		}
	}

	best := workitem.PriorityMedium
	bestScore := 0
	tied := false
	for _, p := range []workitem.Priority{
		workitem.PriorityLow,
		workitem.PriorityMedium,
		workitem.PriorityHigh,
		workitem.PriorityCritical,
	} {
		switch {
		case scores[p] > bestScore:
			best, bestScore, tied = p, scores[p], false
		case scores[p] == bestScore && bestScore > 0:
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return workitem.PriorityMedium
	}
	return best
}
