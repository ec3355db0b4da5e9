// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Question is one multiple-choice question parsed from a chapter source row.
type Question struct {
	// Text is the question prompt (the first field of the row).
	Text string `json:"text" yaml:"text"`

	// Answers lists the options in source order, distractors and the
	// correct option alike.
	Answers []string `json:"answers" yaml:"answers"`

	// CorrectIndex is the 0-based index of the correct option in Answers.
	CorrectIndex int `json:"correct_index" yaml:"correct_index"`
}

// CorrectAnswer returns the text of the correct option.
func (q Question) CorrectAnswer() string {
	return q.Answers[q.CorrectIndex]
}

// Chapter groups the questions read from one source file.
type Chapter struct {
	// Number is the chapter number the source path, title and tag derive from.
	Number int `json:"number" yaml:"number"`

	// Title is the human-readable chapter label (e.g. "الفصل 3").
	Title string `json:"title" yaml:"title"`

	// Questions holds the chapter's questions in file-row order.
	Questions []Question `json:"questions" yaml:"questions"`
}
