package domain

import "time"

type SessionID string

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MaxSourceContentChars bounds the extracted article text stored per source
// so grounded prompts stay a manageable size.
const MaxSourceContentChars = 6000

type Timestamp = time.Time
