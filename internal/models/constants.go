package models

// Service endpoints, relative to the configured base URL
const (
	PathChatFlow       = "/api/flows/chat"
	PathRegenerateFlow = "/api/flows/regenerate"
	PathKnowledgeFiles = "/api/kb/files"
)

// DefaultBaseURL is the hosted TLO knowledge chat service
const DefaultBaseURL = "https://tlochat.app"

// APIKeyHeader carries the client credential on every request
const APIKeyHeader = "x-api-key"

// TimestampLayout is the display format for message timestamps
const TimestampLayout = "15:04"

// DefaultHeaders returns the headers sent with every API request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "tlochat-cli",
	}
}
