package persona

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/xaenox/nico-bot/internal/models"
)

// Builder renders the system prompt for one persona. Templates are compiled
// once; Build is deterministic for fixed facts.
type Builder struct {
	persona  models.PersonaConfig
	template *pongo2.Template
	closing  *pongo2.Template
	answers  []*pongo2.Template
}

func NewBuilder(p models.PersonaConfig) (*Builder, error) {
	tpl, err := compile(p.Template)
	if err != nil {
		return nil, fmt.Errorf("persona %s template: %w", p.Name, err)
	}
	closing, err := compile(p.ClosingPhrase)
	if err != nil {
		return nil, fmt.Errorf("persona %s closing phrase: %w", p.Name, err)
	}

	answers := make([]*pongo2.Template, len(p.ScriptedAnswers))
	for i, a := range p.ScriptedAnswers {
		if answers[i], err = compile(a.Answer); err != nil {
			return nil, fmt.Errorf("persona %s scripted answer %d: %w", p.Name, i, err)
		}
	}

	return &Builder{
		persona:  p,
		template: tpl,
		closing:  closing,
		answers:  answers,
	}, nil
}

// Persona returns the persona this builder renders.
func (b *Builder) Persona() models.PersonaConfig {
	return b.persona
}

// Build renders the persona prompt with facts interpolated and appends the
// mandated closing instruction.
func (b *Builder) Build(facts *models.PlatformFacts) (string, error) {
	vars := pongo2.Context{
		"support_handle": facts.SupportHandle,
	}

	scripted, err := b.renderScripted(vars)
	if err != nil {
		return "", err
	}
	vars["scripted"] = scripted
	vars["facts"] = RenderFacts(facts)

	body, err := b.template.Execute(vars)
	if err != nil {
		return "", fmt.Errorf("failed to render persona %s: %w", b.persona.Name, err)
	}
	closing, err := b.closing.Execute(vars)
	if err != nil {
		return "", fmt.Errorf("failed to render closing phrase: %w", err)
	}

	return fmt.Sprintf("%s\n\nAlways end your message with: %q", strings.TrimSpace(body), closing), nil
}

func (b *Builder) renderScripted(vars pongo2.Context) (string, error) {
	var sb strings.Builder
	sb.WriteString("If a user asks:")
	for i, a := range b.persona.ScriptedAnswers {
		answer, err := b.answers[i].Execute(vars)
		if err != nil {
			return "", fmt.Errorf("failed to render scripted answer %d: %w", i, err)
		}
		quoted := make([]string, len(a.Questions))
		for j, q := range a.Questions {
			quoted[j] = fmt.Sprintf("%q", q)
		}
		fmt.Fprintf(&sb, "\n- %s -> Reply: %s", strings.Join(quoted, " or "), answer)
	}
	return sb.String(), nil
}

// RenderFacts lays out platform facts one per line.
func RenderFacts(f *models.PlatformFacts) string {
	lines := []string{
		"About: " + f.About,
		"Launch Date: " + f.LaunchDate,
		"Registration Bonus: " + f.RegistrationBonus,
		"Minimum Deposit: " + f.MinimumDeposit,
		"Minimum Withdrawal: " + f.MinimumWithdrawal,
		"Withdrawal Fee: " + f.WithdrawalFee,
		"Plans: " + RenderPlans(f.Plans),
		"Withdrawals: " + f.Withdrawals,
		"Withdrawal Account Binding Steps: " + strings.Join(f.BindAccountSteps, " -> "),
		"Change Account Password: " + strings.Join(f.ChangePasswordSteps, " -> "),
		"Registration Link: " + f.RegistrationLink,
		"Official Domain: " + f.OfficialDomain,
		"Referral: " + f.Referral,
		"Support: " + f.Support,
	}
	return strings.Join(lines, "\n")
}

// RenderPlans joins plans into a semicolon separated, human readable list.
func RenderPlans(plans []models.Plan) string {
	parts := make([]string, len(plans))
	for i, p := range plans {
		parts[i] = fmt.Sprintf("%s - Daily Income: %s, Duration: %s, Price: %s", p.Name, p.DailyIncome, p.Duration, p.Price)
	}
	return strings.Join(parts, "; ")
}

func compile(src string) (*pongo2.Template, error) {
	return pongo2.FromString("{% autoescape off %}" + src + "{% endautoescape %}")
}
