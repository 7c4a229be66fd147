package models

// MessageLevel classifies a user-visible status line.
type MessageLevel string

const (
	LevelSuccess MessageLevel = "success"
	LevelWarning MessageLevel = "warning"
	LevelError   MessageLevel = "error"
)

// StatusMessage is one line of feedback rendered next to the tool output.
type StatusMessage struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}

func Success(text string) StatusMessage { return StatusMessage{Level: LevelSuccess, Text: text} }
func Warning(text string) StatusMessage { return StatusMessage{Level: LevelWarning, Text: text} }
func Error(text string) StatusMessage   { return StatusMessage{Level: LevelError, Text: text} }
