package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption styles survey questions like the huh prompts next to them:
// a bold cyan "-" instead of survey's "?".
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
		icons.Question.Format = "cyan+b"
		icons.Help.Format = "cyan"
	})
}
