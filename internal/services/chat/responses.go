package chat

import "fmt"

// fallbackAnswer is returned when generation succeeds but produces no text.
const fallbackAnswer = "I couldn't generate an answer from the knowledge base."

// greetingResponse is the fixed reply for messages classified as greetings.
// It skips routing and generation entirely and never debits the quota.
func greetingResponse(ownerName string) string {
	return fmt.Sprintf("Hello! 👋 I'm %s's portfolio assistant. I can answer questions about %s's background, skills, experience, and projects. "+
		"Feel free to ask me anything about %s's professional journey!", ownerName, ownerName, ownerName)
}

// clarificationResponse is the fixed reply for questions about the
// assistant itself: what it covers and how the session quota works.
func clarificationResponse(ownerName string, sessionQuota int) string {
	return fmt.Sprintf("I'm designed to answer questions about %s's professional background, skills, experience, and projects. "+
		"You have %d questions per session (resets after 8-12 hours). Greetings and questions about how I work don't count against your limit. "+
		"What would you like to know about %s?", ownerName, sessionQuota, ownerName)
}
