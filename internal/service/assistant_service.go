package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/llm"
	"github.com/pennywise/pennywise-backend/internal/util"
	"github.com/rs/zerolog/log"
)

const (
	// FieldQuestion is the input field of an assistant query
	FieldQuestion = "question"

	assistantRecentDays    = 30
	assistantRecentEntries = 50
	assistantTimeout       = 30 * time.Second
)

const assistantSystemPrompt = `You are a personal finance assistant inside a budgeting app.
Answer the user's question using only the data below. Amounts are in the user's currency.
Be brief and concrete. If the data cannot answer the question, say so.`

// AssistantService answers free-form questions about the user's finances
type AssistantService struct {
	reports   *ReportService
	entries   *EntryService
	completer llm.Completer
	loc       *time.Location
	now       func() time.Time
}

// NewAssistantService creates a new AssistantService; completer may be nil when not configured
func NewAssistantService(reports *ReportService, entries *EntryService, completer llm.Completer, loc *time.Location) *AssistantService {
	return &AssistantService{
		reports:   reports,
		entries:   entries,
		completer: completer,
		loc:       loc,
		now:       time.Now,
	}
}

// IsEnabled returns true if an LLM backend is configured
func (s *AssistantService) IsEnabled() bool {
	return s != nil && s.completer != nil
}

// Ask validates the question, builds the finance context and queries the model
func (s *AssistantService) Ask(ctx context.Context, userID uuid.UUID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ValidationErrors{{Field: FieldQuestion, Message: msgRequired}}
	}
	if utf8.RuneCountInString(question) > domain.MaxQuestionLength {
		return "", domain.ValidationErrors{{Field: FieldQuestion, Message: fmt.Sprintf("Question must be at most %d characters.", domain.MaxQuestionLength)}}
	}
	if !s.IsEnabled() {
		return "", domain.ErrAssistantDisabled
	}

	summary, err := s.reports.CurrentMonth(ctx, userID)
	if err != nil {
		return "", err
	}
	since := util.Today(s.now(), s.loc).AddDate(0, 0, -assistantRecentDays)
	recent, err := s.entries.RecentEntries(ctx, userID, since, assistantRecentEntries)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, assistantTimeout)
	defer cancel()

	answer, err := s.completer.Complete(ctx, assistantSystemPrompt, buildAssistantPrompt(summary, recent, question))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Assistant completion failed")
		return "", fmt.Errorf("%w: %v", domain.ErrAssistantFailed, err)
	}
	return answer, nil
}

func buildAssistantPrompt(summary *domain.MonthlySummary, recent []*domain.Entry, question string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Month %s (through %s)\n",
		summary.MonthStart.Format("January 2006"), summary.WindowEnd.Format(domain.DateLayout))
	fmt.Fprintf(&b, "Income %s, expenses %s, net %s, %d transactions\n",
		summary.IncomeTotal.StringFixed(2), summary.ExpenseTotal.StringFixed(2),
		summary.NetBalance.StringFixed(2), summary.TransactionCount)
	if summary.TotalBudget != nil {
		fmt.Fprintf(&b, "Total budget %s, remaining %s\n",
			summary.TotalBudget.StringFixed(2), summary.TotalRemaining.StringFixed(2))
	}

	if len(summary.PerCategory) > 0 {
		b.WriteString("\nBy category:\n")
		for _, row := range summary.PerCategory {
			fmt.Fprintf(&b, "- %s: spent %s, earned %s", row.Name, row.Expense.StringFixed(2), row.Income.StringFixed(2))
			if row.Budget != nil {
				fmt.Fprintf(&b, ", budget %s, remaining %s", row.Budget.StringFixed(2), row.Remaining.StringFixed(2))
				if row.Over {
					b.WriteString(" (over budget)")
				}
			}
			b.WriteString("\n")
		}
	}

	if len(recent) > 0 {
		b.WriteString("\nRecent entries:\n")
		for _, e := range recent {
			category := domain.UncategorizedLabel
			if e.CategoryName != nil {
				category = *e.CategoryName
			}
			fmt.Fprintf(&b, "- %s %s %s %s (%s)\n",
				e.Date.Format(domain.DateLayout), e.Type, e.Amount.StringFixed(2), e.Title, category)
		}
	}

	fmt.Fprintf(&b, "\nQuestion: %s", question)
	return b.String()
}
