package domain

// ParticipationMark is the participation credit for one student in one section
type ParticipationMark struct {
	Email   string  `json:"email"`
	Section string  `json:"section"`
	Count   int     `json:"count"`
	Mark    float64 `json:"participation_mark"`
}

// PresentationMark holds the mean evaluation scores a presentation group received
type PresentationMark struct {
	Section     string                     `json:"section"`
	Topic       string                     `json:"topic"`
	Evaluations [EvaluationCount]NullFloat `json:"evaluations"`
	Score       NullFloat                  `json:"score"`
	Responses   int                        `json:"responses"`
}
