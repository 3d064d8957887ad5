package domain

const (
	ActionLike      = "LIKE"
	ActionPass      = "PASS"
	ActionSuperLike = "SUPER_LIKE"
)

// ValidAction reports whether s is one of the three swipe decisions.
func ValidAction(s string) bool {
	switch s {
	case ActionLike, ActionPass, ActionSuperLike:
		return true
	}
	return false
}

// PositiveAction reports whether s counts toward the daily like quota
// and can complete a match.
func PositiveAction(s string) bool {
	return s == ActionLike || s == ActionSuperLike
}

const (
	GenderMan   = "MAN"
	GenderWoman = "WOMAN"
	GenderOther = "OTHER"
)

const (
	ShowMeMan      = "MAN"
	ShowMeWoman    = "WOMAN"
	ShowMeEveryone = "EVERYONE"
)

const (
	NotificationSuperLike = "SUPER_LIKE"
	NotificationNewMatch  = "NEW_MATCH"
)
