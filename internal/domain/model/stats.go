package model

// AdminStats is a set of independently computed point-in-time counts.
type AdminStats struct {
	TotalUsers        int   `json:"total_users"`
	PremiumUsers      int   `json:"premium_users"`
	TotalSections     int   `json:"total_sections"`
	TotalContent      int   `json:"total_content"`
	TotalQuizzes      int   `json:"total_quizzes"`
	TotalQuestions    int   `json:"total_questions"`
	TotalQuizAttempts int   `json:"total_quiz_attempts"`
	TotalSessions     int64 `json:"total_sessions"`
	TotalWordsLearned int64 `json:"total_words_learned"`
}
