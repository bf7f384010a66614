package ai

import (
	"fmt"

	"btc-curator/internal/domain/entity"
)

const scoringPrompt = `You are evaluating articles for a Bitcoin-focused content curator.

Rate this article on a scale of 1-10 based on:
- Bitcoin relevance (is it specifically about Bitcoin, not general crypto?)
- Newsworthiness (is this significant/interesting news?)
- Educational value (does it explain something useful?)
- Signal vs noise (substance over hype/clickbait?)

Heavily penalize:
- Articles primarily about altcoins, memecoins, or general "crypto"
- Pure price speculation or prediction articles
- Sponsored content or obvious shilling
- Rehashed news without new information

Boost:
- Technical Bitcoin developments (protocol, Lightning, mining)
- Adoption news (companies, countries, institutions)
- Regulatory developments affecting Bitcoin
- Educational deep-dives on Bitcoin concepts
- Original analysis or research

Article Title: %s
Article Source: %s
Article Summary: %s

Respond with JSON only:
{
    "score": <1-10>,
    "reason": "<brief explanation>",
    "is_bitcoin_relevant": <true/false>
}`

const generationPrompt = `You are a Bitcoin content creator. Generate social media posts about this article.

%s

Article Title: %s
Article Source: %s
Article Summary: %s
Article URL: %s

Generate three versions:

1. SHORT_FORM: A single post (max 270 chars to leave room for link). Punchy, insightful take.

2. THREAD_FORM: A thread of 3-5 posts. Start with a hook, explain the significance, end with your take. Number them 1/, 2/, etc.

3. LONG_FORM: A longer post (150-300 words). More professional tone, add context and analysis.

Important:
- Don't just summarize - add insight and perspective
- No generic engagement bait ("What do you think?")
- Be specific about why this matters
- No price predictions or financial advice
- Focus on Bitcoin, not crypto in general

Respond with JSON:
{
    "short_form": "<single post text>",
    "thread_form": "<full thread with 1/, 2/, etc>",
    "long_form": "<long form post>"
}`

func buildScoringPrompt(a entity.Article) string {
	return fmt.Sprintf(scoringPrompt, a.Title, a.Source, a.Summary)
}

func buildGenerationPrompt(a entity.Article, styleGuide string) string {
	return fmt.Sprintf(generationPrompt, styleGuide, a.Title, a.Source, a.Summary, a.URL)
}
