package entity

// ScoreResult is the inference provider's verdict for one article: a
// numeric score on the 1-10 rubric, a short rationale, and a Bitcoin
// relevance flag. Scores outside the rubric range are carried as-is;
// the provider owns the scale.
type ScoreResult struct {
	Score           float64 `json:"score"`
	Reason          string  `json:"reason"`
	BitcoinRelevant bool    `json:"is_bitcoin_relevant"`
}
