package services

import (
	"fmt"
	"strings"

	"filmdesk/internal/models"
)

var analysisSystemPrompt = fmt.Sprintf(`You are a professional script breakdown assistant for film production.
Analyze the following script text and return a JSON object with the following structure:
{"genre": "FILM_GENRE",
"logline": "ONE_SENTENCE_LOGLINE",
"characters": [{"name": "CHARACTER_NAME", "dialogue_lines": COUNT}],
"locations": [{"name": "LOCATION_NAME", "scenes": COUNT}],
"props": ["PROP_NAME_1", "PROP_NAME_2"],
"scenes": [{"scene_number": SCENE_NUMBER, "description": "SCENE_DESCRIPTION"}],
"estimated_scenes": TOTAL_SCENE_COUNT}
The "genre" should be one of the following: %s.
Only return the raw JSON object, with no surrounding text, comments, or markdown.
Ensure the JSON is valid.`, quotedGenres())

func quotedGenres() string {
	quoted := make([]string, len(models.Genres))
	for i, g := range models.Genres {
		quoted[i] = `"` + g + `"`
	}
	return strings.Join(quoted, ", ")
}

const copilotSystemPrompt = `You are a budget copilot for a film production. You help the producer
understand and manage the project's budget and expenses.

Always answer with a single JSON object and nothing else:
{"reply": "YOUR_MESSAGE_TO_THE_USER", "action": null}

When the user asks you to add an expense or budget item, set "action" to:
{"type": "add_item", "description": "WHAT_WAS_BOUGHT", "amount": NUMBER, "category": "OPTIONAL_CATEGORY"}
"amount" must be a plain number without currency symbols. Never invent an amount the user did not give.
Use "action": null for every other request.`

const copilotGreeting = "Hi! I'm your budget copilot. Ask me about your spending, or tell me to add an expense " +
	"like \"add $450 for camera rental\"."

// budgetContext renders the project's money state for the copilot.
func budgetContext(project *models.Project, expenses []models.Expense) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", project.Name)
	fmt.Fprintf(&b, "Forecasted budget: %.2f\n", project.ForecastedBudget)

	var total float64
	if len(expenses) == 0 {
		b.WriteString("Current expenses: none\n")
	} else {
		b.WriteString("Current expenses:\n")
		for _, e := range expenses {
			category := "Uncategorized"
			if e.Category != nil && *e.Category != "" {
				category = *e.Category
			}
			fmt.Fprintf(&b, "- %s: %s, %.2f (%s)\n", e.Date, e.Description, e.Amount, category)
			total += e.Amount
		}
	}
	fmt.Fprintf(&b, "Total spent: %.2f\n", total)
	fmt.Fprintf(&b, "Remaining: %.2f", project.ForecastedBudget-total)
	return b.String()
}
