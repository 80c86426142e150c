package llm

import (
	"fmt"
	"strings"
)

// classifySystemPrompt instructs the model to label a message with exactly
// one of the three intent categories.
func classifySystemPrompt(ownerName string) string {
	return fmt.Sprintf(`You classify user messages into three types:
1. "greeting" - greetings, salutations, pleasantries (hi, hello, hey, good morning, how are you, etc.)
2. "clarification" - questions about the chatbot rules, functionality, or how to use it (not about %s)
3. "question" - actual questions seeking information about %s's profile, skills, experience, etc.

Return ONLY the type as a single word: "greeting", "clarification", or "question".`, ownerName, ownerName)
}

// routeSystemPrompt instructs the model to map a question onto knowledge
// base section keys. Output is restricted to the provided key list; the
// caller still filters the result, so this restriction is guidance rather
// than the enforcement point.
func routeSystemPrompt(ownerName string) string {
	return fmt.Sprintf(`You route user questions to knowledge-base section keys. `+
		`Analyze the question and return one or more relevant keys from the provided list. `+
		`For broad questions (e.g., "tell me about %s", "what are the skills"), return multiple relevant keys as a comma-separated list. `+
		`For specific questions, return just the most relevant key. `+
		`If none fit, return "contact". `+
		`Match on meaning, not exact words: "high school" and "secondary school" are the same thing; `+
		`"college", "university", "tertiary", "qualification", "degree" and "diploma" all point at tertiary education sections; `+
		`"job", "employment" and "career" all point at professional background sections. `+
		`Sometimes users ask questions that loosely mean something you might think is not covered. Think carefully in those cases.`, ownerName)
}

// routeUserContent assembles the routing request body.
func routeUserContent(question string, keys []string, hint string) string {
	return fmt.Sprintf("Available keys:\n%s\n\nMetadata guidance: %s\n\nQuestion: %s\n\nReturn one or more keys as comma-separated values, no extra text.",
		strings.Join(keys, ", "), hint, question)
}

// answerSystemPrompt instructs the model to answer strictly from the
// assembled context, never from its own knowledge.
func answerSystemPrompt(ownerName string) string {
	return fmt.Sprintf(`You are a portfolio assistant. Answer ONLY using the provided knowledge base context. `+
		`Treat stated experience/skills as affirmative evidence (e.g., if context says PHP/Laravel experience, answer "yes" to "Have you worked with PHP?"). `+
		`Watch for words with loose similarity such as high school and secondary school since they mean the same thing. `+
		`If the answer is not in the context, say something witty and fun like 'You might want to hire %s and ask about that'. Never invent facts.`, ownerName)
}

// answerUserContent assembles the generation request body.
func answerUserContent(question, contextBlock string) string {
	return fmt.Sprintf("Knowledge base context:\n\n%s\n\nUser question: %s\n\nAnswer in a concise, recruiter-friendly way.", contextBlock, question)
}
