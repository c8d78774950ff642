package service

import "schoolhub/api/internal/models"

// LoginRule pairs an account predicate with the message shown when it is the
// first rule to match.
type LoginRule struct {
	Name    string
	Matches func(models.Account) bool
	Message string
}

const DefaultLoginMessage = "You have logged in successfully"

// LoginRules are evaluated in order; the first match decides the login message.
var LoginRules = []LoginRule{
	{
		Name:    "deactivated",
		Matches: func(a models.Account) bool { return !a.IsActive },
		Message: "Your account has been deactivated",
	},
	{
		Name:    "unconfirmed",
		Matches: func(a models.Account) bool { return !a.IsConfirmed },
		Message: "Your account is not yet confirmed by administrator",
	},
	{
		Name:    "administrator",
		Matches: func(a models.Account) bool { return a.IsAdministrator },
		Message: "You have logged in successfully to the administrator account",
	},
	{
		Name:    "educator",
		Matches: func(a models.Account) bool { return a.IsEducator },
		Message: "You have logged in successfully to the educator account",
	},
}

func LoginMessage(a models.Account) string {
	for _, rule := range LoginRules {
		if rule.Matches(a) {
			return rule.Message
		}
	}
	return DefaultLoginMessage
}
