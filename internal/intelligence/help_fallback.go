package intelligence

import "strings"

// helpTopic matches question keywords to a canned answer.
type helpTopic struct {
	keywords []string
	answer   string
	examples []ShellExample
	next     []string
}

var helpTopics = []helpTopic{
	{
		keywords: []string{"publish", "push", "upload", "create plan"},
		answer:   "Publish a plan file with the publish command. It validates the file, creates every plan, suite, case, and work item in order, and stops at the first failure.",
		examples: []ShellExample{
			{Command: "planpush publish plan.json", Description: "Publish a plan file"},
			{Command: "planpush publish plan.json --dry-run", Description: "Validate and preview without creating anything"},
		},
		next: []string{"planpush history"},
	},
	{
		keywords: []string{"profile", "connection", "token", "pat", "organization"},
		answer:   "Profiles store an organization, project, and personal access token. Add one with profile add, then activate it with profile use.",
		examples: []ShellExample{
			{Command: "planpush profile add", Description: "Add a connection profile interactively"},
			{Command: "planpush profile use work", Description: "Make the \"work\" profile active"},
		},
		next: []string{"planpush profile list"},
	},
	{
		keywords: []string{"mapping", "alias", "type"},
		answer:   "Type mappings translate friendly aliases like \"bug\" into the remote work item type, optionally attaching default fields.",
		examples: []ShellExample{
			{Command: "planpush mapping set bug \"Bug\"", Description: "Map the alias bug to the Bug type"},
			{Command: "planpush mapping list", Description: "Show all mappings"},
		},
	},
	{
		keywords: []string{"draft", "generate", "llm", "assistant"},
		answer:   "The draft command starts an interactive session that turns a plain-language description into a plan file you can review and publish.",
		examples: []ShellExample{
			{Command: "planpush draft \"regression for the checkout flow\"", Description: "Draft a plan from a description"},
		},
		next: []string{"planpush publish"},
	},
	{
		keywords: []string{"history", "log", "previous", "past"},
		answer:   "The history command lists recent publish runs with their outcome and item counts.",
		examples: []ShellExample{
			{Command: "planpush history", Description: "Show recent publish runs"},
		},
	},
}

// DeterministicHelp answers a question without the LLM, via keyword matching
// against a fixed topic list.
func DeterministicHelp(question string, commands []HelpCommandInfo) *HelpAnswer {
	q := strings.ToLower(question)

	for _, topic := range helpTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(q, kw) {
				return &HelpAnswer{
					Answer:       topic.answer,
					Examples:     topic.examples,
					NextCommands: topic.next,
					Source:       "deterministic",
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range commands {
		b.WriteString("  ")
		b.WriteString(c.FullPath)
		if c.Short != "" {
			b.WriteString(" - ")
			b.WriteString(c.Short)
		}
		b.WriteString("\n")
	}
	return &HelpAnswer{
		Answer: b.String(),
		Source: "deterministic",
	}
}
