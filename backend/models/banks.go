package models

import "gorm.io/gorm"

// QuestionBank holds a superset of questions; only QuestionsPerAttempt of
// them are served per learner attempt. A nil UnitID marks a final-exam bank.
type QuestionBank struct {
	gorm.Model
	CourseID            uint           `gorm:"index;not null" json:"course_id"`
	UnitID              *uint          `gorm:"index" json:"unit_id"`
	BankType            string         `gorm:"default:unit_quiz" json:"bank_type"` // unit_quiz, final_exam
	Title               string         `json:"title"`
	ExamForm            string         `json:"exam_form"` // A or B for final_exam banks, empty otherwise
	QuestionsPerAttempt int            `gorm:"default:10" json:"questions_per_attempt"`
	PassingScore        int            `gorm:"default:70" json:"passing_score"` // percent
	TimeLimitMinutes    int            `json:"time_limit_minutes"`
	Questions           []BankQuestion `json:"questions,omitempty"`
}

type BankQuestion struct {
	gorm.Model
	QuestionBankID uint   `gorm:"index;not null" json:"question_bank_id"`
	Prompt         string `gorm:"not null" json:"prompt"`
	OptionA        string `json:"option_a"`
	OptionB        string `json:"option_b"`
	OptionC        string `json:"option_c"`
	OptionD        string `json:"option_d"`
	CorrectOption  int    `json:"correct_option"` // zero-based index into the four options
	Explanation    string `json:"explanation"`
	Difficulty     string `gorm:"default:medium" json:"difficulty"` // easy, medium, hard
}

// Options returns the four answer options in display order.
func (q *BankQuestion) Options() [4]string {
	return [4]string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}
