package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
	prac "github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/question"
	"github.com/minqi/vocadrill/internal/ui/components"
	"github.com/minqi/vocadrill/internal/ui/theme"
)

// Shown under the study card after a miss; picked at random per render.
var encouragements = []string{
	"Take another look — it will come around again.",
	"No rush. The word repeats until it sticks.",
	"Misses are how the schedule learns what you need.",
	"Read the sentences once more before moving on.",
}

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, theme.Incorrect.Render("\n\n"+s.errMsg+"\n\nPress any key to go back"))
	case s.emptyMsg != "":
		return centered(width, lipgloss.NewStyle().Foreground(theme.Text).Render("\n\n"+s.emptyMsg+"\n\nPress any key to go back"))
	case s.loading || s.eng == nil:
		return centered(width, theme.Hint.Render("\n\n"+s.loadNote))
	case s.eng.Phase == prac.PhaseDictationOffer:
		return s.renderDictationOffer(width)
	case s.feedback != nil:
		return s.renderFeedback(width)
	default:
		return s.renderQuestion(width)
	}
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}

func stageLabel(stage int) string {
	switch stage {
	case 1:
		return "Stage 1 · Infer the meaning"
	case 2:
		return "Stage 2 · Recall the meaning"
	case 3:
		return "Stage 3 · Rebuild the sentence"
	case 4:
		return "Stage 4 · Pick the word"
	}
	return ""
}

// renderInfoLine shows round position on the left and overall stage
// progress on the right.
func (s *PracticeScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Word %d/%d", s.eng.Index+1, len(s.eng.Round)))

	done, total := s.eng.Steps()
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	bar := components.NewProgressBar("", pct, true, 32).View()

	gap := width - lipgloss.Width(left) - lipgloss.Width(bar) - 4
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + bar + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))) + "\n"
}

func (s *PracticeScreen) renderQuestion(width int) string {
	q, ok := s.eng.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render(stageLabel(q.Stage))))
	b.WriteString("\n\n")

	switch q.Stage {
	case 1:
		if ex, ok := q.Item.Exercise(content.ExerciseInferMeaning); ok {
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Render(ex.Sentence)))
			b.WriteString("\n\n")
		}
		b.WriteString(centered(width, boldPrompt(fmt.Sprintf("What does “%s” mean here?", s.deps.DisplayWord(q.Word)))))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View(q.Answer)))

	case 2:
		b.WriteString(centered(width, boldPrompt(fmt.Sprintf("What does “%s” mean?", s.deps.DisplayWord(q.Word)))))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View(q.Answer)))

	case 3:
		b.WriteString(centered(width, boldPrompt("Put the blocks back in order:")))
		b.WriteString("\n\n")
		b.WriteString(s.picker.View(width))
		b.WriteString("\n\n")
		if s.hintText != "" {
			b.WriteString(centered(width, theme.Hint.Render("Hint: "+s.hintText)))
			b.WriteString("\n")
		}

	case 4:
		prompt := "Which word means: " + q.Item.Definition.CN
		if ex, ok := q.Item.Exercise(content.ExerciseSynonymReplacement); ok && ex.Sentence != "" {
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Render(ex.Sentence)))
			b.WriteString("\n\n")
			prompt = "Which word can replace the marked part?"
		}
		b.WriteString(centered(width, boldPrompt(prompt)))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View(s.deps.DisplayWord(q.Answer))))
	}

	return b.String()
}

func boldPrompt(text string) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(text)
}

func (s *PracticeScreen) renderFeedback(width int) string {
	fb := s.feedback
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")

	switch {
	case fb.Redo:
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("Right — now prove it without the hint.")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint.Render("The blocks have been reshuffled.")))

	case fb.Correct:
		verdict := "Correct!"
		if fb.Mastered {
			verdict = "Correct — word mastered! ★"
		}
		b.WriteString(centered(width, theme.Correct.Render(verdict)))
		b.WriteString("\n\n")
		b.WriteString(s.renderStudyCard(width, fb.Question, false))

	case fb.Reordering:
		b.WriteString(centered(width, theme.Incorrect.Render("Not quite — compare the word order:")))
		b.WriteString("\n\n")
		b.WriteString(centered(width, "yours:   "+lipgloss.NewStyle().Foreground(theme.Error).
			Render(question.NormalizeAnswer(fb.UserAnswer))))
		b.WriteString("\n")
		b.WriteString(centered(width, "correct: "+lipgloss.NewStyle().Foreground(theme.Success).
			Render(question.NormalizeAnswer(fb.CorrectAnswer))))
		b.WriteString("\n\n")
		expl := s.explanation
		if expl == "" {
			expl = "Fetching explanation..."
		}
		b.WriteString(centered(width, theme.Hint.Render(expl)))

	default:
		b.WriteString(centered(width, theme.Incorrect.Render("Not quite — back to stage 1 for this word.")))
		b.WriteString("\n\n")
		b.WriteString(s.renderStudyCard(width, fb.Question, true))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render(lo.Sample(encouragements))))
	}

	if s.narrating {
		b.WriteString("\n\n")
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("🔊 %s  (S to skip, R to listen again)", s.deps.DisplayWord(fb.Question.Word)))))
	}

	return b.String()
}

// renderStudyCard shows the word with its gloss; full adds sample
// sentences, used after a mistake.
func (s *PracticeScreen) renderStudyCard(width int, q question.Question, full bool) string {
	item := q.Item
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.deps.DisplayWord(item.Word)),
		lipgloss.NewStyle().Foreground(theme.Text).Render(item.Definition.CN),
	}
	if item.Definition.EN != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Definition.EN))
	}
	if full {
		for i, ss := range item.SampleSentences {
			if i >= 2 {
				break
			}
			lines = append(lines, "",
				lipgloss.NewStyle().Foreground(theme.Text).Render(ss.Sentence),
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(ss.Translation))
		}
	}
	card := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *PracticeScreen) renderDictationOffer(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Every word mastered!")))
	b.WriteString("\n\n")
	count := s.eng.MasteredCount() + len(s.eng.PretestSkipped)
	if s.eng.Mode == prac.ModeReview {
		count = len(s.eng.ReviewWords) + len(s.eng.PretestSkipped)
	}
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("%d words are ready for a dictation check.", count))))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Spell each word from memory to lock it in.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Start dictation?  (Y/N)")))
	return b.String()
}
