package classifier

var DefaultBlockedWords = []string{
	"fool", "idiot", "stupid", "nonsense", "mad", "useless", "bastard",
	"sheep", "gyimi", "aboa", "kwasea", "kwasia", "fuck", "f***", "asshole",
	"shit", "moron", "dumb", "retard", "goat", "gbemi", "sormi", "damn",
}

var DefaultNoiseTokens = []string{
	"hi", "hello", "hey", "ok",
	"😂", "😅", "😊", "👍", "🙌", "🙏", "😁", "🤣", "❤️",
}

// DefaultTopicKeywords covers the platform vocabulary: money movement, plans,
// referrals, account and security terms, platform identity and support.
var DefaultTopicKeywords = []string{
	// money movement
	"deposit", "depositing", "withdraw", "withdrawal", "withdrawals", "cash out", "payout", "pay out",
	"balance", "account balance", "funds", "wallet", "credit", "debit", "statement",
	"pay", "payment", "paid", "receive money", "withdraw funds",
	"money", "cash", "capital", "currency", "finance", "finances",
	"withdrawal fee", "transaction fee", "charge", "cost",
	"payment methods", "deposit options", "withdraw options",

	// plans and earnings
	"plan", "plans", "package", "packages", "subscription", "tier", "level",
	"investment", "invest", "investing", "fund", "funding", "backing",
	"profit", "profits", "earn", "earning", "income", "return", "returns",
	"interest", "interest rate", "roi", "revenue",
	"vip", "premium", "elite", "exclusive",

	// referrals and bonuses
	"referral", "refer", "referrer", "bonus", "reward", "commission", "commissions",
	"team", "group", "network", "downline", "upline", "member",
	"extra", "perk", "benefit",
	"referral code", "promo code", "discount", "voucher",
	"deposit bonus", "welcome bonus", "signup bonus",
	"affiliate", "partner", "affiliate program",
	"referral link", "invite link",

	// account and security
	"registration", "register", "sign up", "signup", "create account", "account creation",
	"account", "user account", "profile", "login", "log in", "sign in", "credentials", "password", "security",
	"account verification", "verify account", "kyc", "identity check",
	"privacy", "data protection",
	"security breach", "hacked", "phishing",

	// platform identity and trust
	"niconetwork", "nico network",
	"scam", "fraud", "fake", "legit", "legitimate", "trust", "trusted", "safe", "secure", "reliable", "authentic",
	"collapse", "shutdown", "closing", "closing down", "end", "finish", "run away", "exit scam",
	"launched", "launch", "start", "begin", "grow", "growth", "increase", "raise", "boost", "expand",
	"platform", "site", "website", "webpage", "app", "application", "software", "system",
	"terms", "conditions", "policy", "rules",

	// support
	"support", "help", "customer service", "contact", "admin", "administrator", "moderator", "manager",
	"explain", "explanation", "how to", "guide", "instructions", "tutorial", "steps", "process",
	"complaint", "issue", "problem", "bug",
	"support ticket", "customer support", "live chat",
}
