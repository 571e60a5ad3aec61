package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorError   = 0xED4245 // Red (alias for ColorDanger)
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
)

// Discord limits
const (
	MaxAutocompleteChoices = 10
	MaxButtonLabelLength   = 80
	MaxEmbedFieldLength    = 1024
	MaxMessageLength       = 2000
	GuildMembersPageSize   = 1000
)

// Messages shared across features
const (
	MsgAdminRequired = "You need administrator permissions to use this command"
	MsgGenericError  = "Something went wrong. Please try again later."
)
