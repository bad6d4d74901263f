package prompt

// Canned responses for conversational shortcuts the agent answers without
// calling the model.
const (
	Greeting = "\U0001F44B Hello! I'm RetailAnalyst, your AI assistant for store analytics. How can I help you understand your retail performance today?"

	Help = "\U0001F914 Need help? I can assist with:\n" +
		"• Current visitor counts\n" +
		"• Section traffic analysis\n" +
		"• Cashier queue status\n" +
		"• Store heatmaps\n" +
		"• Daily performance reports\n" +
		"• Traffic predictions\n" +
		"• Section comparisons\n\n" +
		"Just ask me anything about your store analytics!"

	BackendTrouble = "⚠️ I'm having trouble accessing the store data. Please check:\n" +
		"1. Is the backend API running?\n" +
		"2. Are all cameras and sensors online?\n" +
		"3. Try asking a different question\n\n" +
		"Technical issues? Contact IT support."

	NoData = "\U0001F4ED I don't see any data for that query right now. This could mean:\n" +
		"• The specific section has no recent traffic\n" +
		"• Data collection is temporarily paused\n" +
		"• The query timeframe has no records\n\n" +
		"Try asking about a different section or time period."

	Thanks = "You're welcome! \U0001F60A Let me know if you need any more analytics insights for your store."
)

// FollowUpQuestions are offered after answers to keep the conversation
// going; FollowUp cycles through them.
var FollowUpQuestions = []string{
	"Would you like me to analyze another section?",
	"Should I check the cashier queue status?",
	"Would a daily report be helpful?",
	"Do you want to compare this with other sections?",
	"Should I predict traffic for the next few hours?",
	"Would you like me to monitor this and alert you of changes?",
}

// FollowUp returns the follow-up question for the nth answered turn,
// cycling through the list.
func FollowUp(n int) string {
	if n < 0 {
		n = -n
	}
	return FollowUpQuestions[n%len(FollowUpQuestions)]
}
