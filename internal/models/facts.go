package models

// Plan is one investment plan offered by the platform.
type Plan struct {
	Name        string `json:"name" mapstructure:"name"`
	DailyIncome string `json:"daily_income" mapstructure:"daily_income"`
	Duration    string `json:"duration" mapstructure:"duration"`
	Price       string `json:"price" mapstructure:"price"`
}

// PlatformFacts is the static reference data the assistant answers from.
type PlatformFacts struct {
	About               string   `json:"about" mapstructure:"about"`
	LaunchDate          string   `json:"launch_date" mapstructure:"launch_date"`
	RegistrationBonus   string   `json:"registration_bonus" mapstructure:"registration_bonus"`
	MinimumDeposit      string   `json:"minimum_deposit" mapstructure:"minimum_deposit"`
	MinimumWithdrawal   string   `json:"minimum_withdrawal" mapstructure:"minimum_withdrawal"`
	WithdrawalFee       string   `json:"withdrawal_fee" mapstructure:"withdrawal_fee"`
	Plans               []Plan   `json:"plans" mapstructure:"plans"`
	Withdrawals         string   `json:"withdrawals" mapstructure:"withdrawals"`
	BindAccountSteps    []string `json:"bind_withdrawal_account_steps" mapstructure:"bind_withdrawal_account_steps"`
	ChangePasswordSteps []string `json:"change_account_password_steps" mapstructure:"change_account_password_steps"`
	RegistrationLink    string   `json:"registration_link" mapstructure:"registration_link"`
	OfficialDomain      string   `json:"official_domain" mapstructure:"official_domain"`
	Referral            string   `json:"referral" mapstructure:"referral"`
	Support             string   `json:"support" mapstructure:"support"`
	SupportHandle       string   `json:"support_handle" mapstructure:"support_handle"`
}

// ScriptedAnswer is a fixed reply the persona gives to a family of sensitive questions.
type ScriptedAnswer struct {
	Questions []string `json:"questions"`
	Answer    string   `json:"answer"`
}

// PersonaConfig is a named tone profile for generated replies.
type PersonaConfig struct {
	Name            string           `json:"name"`
	Template        string           `json:"template"`
	ScriptedAnswers []ScriptedAnswer `json:"scripted_answers"`
	ClosingPhrase   string           `json:"closing_phrase"`
	Temperature     float64          `json:"temperature"`
}
