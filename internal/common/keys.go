package common

// Storage keys shared by the account store and its collaborators.
const (
	KeyAccounts       = "accounts"
	KeyCurrentSession = "currentSession"
	KeySessionActive  = "sessionActiveFlag"
	KeyTestResults    = "testResults"
	KeyTheme          = "theme"
)
