package models

// Sender values used by the frontend for conversation history entries.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one prior exchange entry supplied by the client to
// reconstruct conversation context. Entries without text carry no turn.
type ChatMessage struct {
	Sender      string `json:"sender"`
	Text        string `json:"text,omitempty"`
	Code        string `json:"code,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// ChatLog is one persisted prompt/response exchange, stored under
// users/{user_id}/logs/{chat_id}. The document keeps the full shape,
// chat_id included; list results overwrite ChatID from the document key.
type ChatLog struct {
	UserID       string `json:"user_id" firestore:"user_id" binding:"required"`
	ChatID       string `json:"chat_id" firestore:"chat_id" binding:"required"`
	Timestamp    string `json:"timestamp" firestore:"timestamp" binding:"required"`
	Prompt       string `json:"prompt" firestore:"prompt" binding:"required"`
	Code         string `json:"code,omitempty" firestore:"code"`
	Explanation  string `json:"explanation,omitempty" firestore:"explanation"`
	LearningMode bool   `json:"learning_mode" firestore:"learning_mode"`
}

// GenerateRequest is the body of POST /generate-code.
type GenerateRequest struct {
	UserID              string        `json:"user_id" binding:"required"`
	Prompt              string        `json:"prompt" binding:"required"`
	LearningMode        bool          `json:"learning_mode"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
}

// UpdateTitleRequest is the body of PUT /update-log-title/:user_id/:chat_id.
type UpdateTitleRequest struct {
	NewTitle string `json:"new_title" binding:"required"`
}
