package export

import (
	"bytes"
	"fmt"
	"sort"

	"ceplatform/backend/models"

	docx "github.com/fumiama/go-docx"
)

const tableWidth = 9026 // twips, full usable width of a letter page

// CourseData is everything a course export reads: units with their lessons
// (ordered by ordinal) and question banks with their questions.
type CourseData struct {
	Course models.Course
	Units  []models.Unit
	Banks  []models.QuestionBank
}

func (d *CourseData) unitBank(unitID uint) *models.QuestionBank {
	for i := range d.Banks {
		b := &d.Banks[i]
		if b.BankType == "unit_quiz" && b.UnitID != nil && *b.UnitID == unitID {
			return b
		}
	}
	return nil
}

// FinalExamBanks returns the course's final-exam banks ordered by form.
func (d *CourseData) FinalExamBanks() []*models.QuestionBank {
	var banks []*models.QuestionBank
	for i := range d.Banks {
		if d.Banks[i].BankType == "final_exam" {
			banks = append(banks, &d.Banks[i])
		}
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].ExamForm < banks[j].ExamForm })
	return banks
}

// BuildContent assembles the full course content document per the options.
func BuildContent(data CourseData, opts Options) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(data.Course.Title).Size("36").Bold()
	doc.AddParagraph().AddText("Course Content Export").Size("24")
	addCourseMeta(doc, data.Course)

	for i := range data.Units {
		unit := &data.Units[i]
		doc.AddParagraph()
		doc.AddParagraph().AddText(fmt.Sprintf("Unit %d: %s", unit.UnitNumber, unit.Title)).Size("28").Bold()

		if opts.IncludeDescriptions && unit.Description != "" {
			doc.AddParagraph().AddText(renderText(unit.Description, opts))
		}

		if opts.IncludeLessons {
			addLessonTable(doc, unit.Lessons, opts)
			for j := range unit.Lessons {
				lesson := &unit.Lessons[j]
				doc.AddParagraph().AddText(fmt.Sprintf("Lesson %d: %s", lesson.LessonNumber, lesson.Title)).Size("24").Bold()
				if lesson.Content != "" {
					doc.AddParagraph().AddText(renderText(lesson.Content, opts))
				}
			}
		}

		if opts.IncludeQuizzes {
			if bank := data.unitBank(unit.ID); bank != nil {
				addBankSection(doc, bank, true)
			}
		}
	}

	for _, bank := range data.FinalExamBanks() {
		if !opts.FormIncluded(bank.ExamForm) {
			continue
		}
		doc.AddParagraph()
		doc.AddParagraph().AddText(fmt.Sprintf("Final Exam - Form %s", bank.ExamForm)).Size("28").Bold()
		addBankSection(doc, bank, opts.IncludeQuizzes)
	}

	return render(doc)
}

// BuildAnswerKey assembles the DBPR answer key. An empty form covers every
// final-exam form; otherwise output is filtered to the requested one.
func BuildAnswerKey(data CourseData, form string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(data.Course.Title).Size("36").Bold()
	doc.AddParagraph().AddText("Final Exam Answer Key").Size("24")
	if data.Course.ProviderNumber != "" {
		doc.AddParagraph().AddText("Provider Number: " + data.Course.ProviderNumber)
	}
	if data.Course.CourseOfferingNumber != "" {
		doc.AddParagraph().AddText("Course Offering Number: " + data.Course.CourseOfferingNumber)
	}

	for _, bank := range data.FinalExamBanks() {
		if form != "" && bank.ExamForm != form {
			continue
		}
		doc.AddParagraph()
		doc.AddParagraph().AddText(fmt.Sprintf("Form %s", bank.ExamForm)).Size("28").Bold()

		tbl := doc.AddTable(len(bank.Questions)+1, 3, tableWidth, nil)
		setCell(tbl, 0, 0, "Question", true)
		setCell(tbl, 0, 1, "Answer", true)
		setCell(tbl, 0, 2, "Explanation", true)
		for i := range bank.Questions {
			q := &bank.Questions[i]
			setCell(tbl, i+1, 0, fmt.Sprintf("%d", i+1), false)
			setCell(tbl, i+1, 1, answerLetter(q.CorrectOption), false)
			setCell(tbl, i+1, 2, q.Explanation, false)
		}
	}

	return render(doc)
}

// BuildFinalExam assembles a standalone exam paper for one form: numbered
// questions with their four options and no answers.
func BuildFinalExam(data CourseData, bank *models.QuestionBank) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(data.Course.Title).Size("36").Bold()
	doc.AddParagraph().AddText(fmt.Sprintf("Final Examination - Form %s", bank.ExamForm)).Size("28").Bold()
	doc.AddParagraph().AddText(fmt.Sprintf("Questions: %d    Passing Score: %d%%    Time Limit: %d minutes",
		len(bank.Questions), bank.PassingScore, bank.TimeLimitMinutes))
	addCourseMeta(doc, data.Course)
	doc.AddParagraph()

	for i := range bank.Questions {
		q := &bank.Questions[i]
		doc.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, q.Prompt)).Bold()
		for j, opt := range q.Options() {
			doc.AddParagraph().AddText(fmt.Sprintf("    %s. %s", answerLetter(j), opt))
		}
		doc.AddParagraph()
	}

	return render(doc)
}

func addCourseMeta(doc *docx.Docx, course models.Course) {
	if course.SKU != "" {
		doc.AddParagraph().AddText("Course Code: " + course.SKU)
	}
	if course.HoursRequired > 0 {
		doc.AddParagraph().AddText(fmt.Sprintf("Credit Hours: %d", course.HoursRequired))
	}
	if course.InstructorName != "" {
		doc.AddParagraph().AddText("Instructor: " + course.InstructorName)
	}
}

func addLessonTable(doc *docx.Docx, lessons []models.Lesson, opts Options) {
	cols := 3
	if opts.IncludeVideos {
		cols = 4
	}

	tbl := doc.AddTable(len(lessons)+1, cols, tableWidth, nil)
	setCell(tbl, 0, 0, "#", true)
	setCell(tbl, 0, 1, "Title", true)
	setCell(tbl, 0, 2, "Duration (min)", true)
	if opts.IncludeVideos {
		setCell(tbl, 0, 3, "Video URL", true)
	}

	for i := range lessons {
		l := &lessons[i]
		setCell(tbl, i+1, 0, fmt.Sprintf("%d", l.LessonNumber), false)
		setCell(tbl, i+1, 1, l.Title, false)
		setCell(tbl, i+1, 2, fmt.Sprintf("%d", l.DurationMinutes), false)
		if opts.IncludeVideos {
			setCell(tbl, i+1, 3, l.VideoURL, false)
		}
	}
}

func addBankSection(doc *docx.Docx, bank *models.QuestionBank, withQuestions bool) {
	label := bank.Title
	if label == "" {
		label = "Quiz"
	}
	doc.AddParagraph().AddText(fmt.Sprintf("%s - %d of %d questions per attempt, passing score %d%%",
		label, bank.QuestionsPerAttempt, len(bank.Questions), bank.PassingScore)).Italic()

	if !withQuestions {
		return
	}

	for i := range bank.Questions {
		q := &bank.Questions[i]
		doc.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, q.Prompt))
		for j, opt := range q.Options() {
			doc.AddParagraph().AddText(fmt.Sprintf("    %s. %s", answerLetter(j), opt))
		}
		doc.AddParagraph().AddText("    Answer: " + answerLetter(q.CorrectOption)).Italic()
	}
}

func setCell(tbl *docx.Table, row, col int, text string, header bool) {
	run := tbl.TableRows[row].TableCells[col].AddParagraph().AddText(text)
	if header {
		run.Bold()
	}
}

func renderText(s string, opts Options) string {
	if opts.IncludeHTML {
		return s
	}
	return StripHTML(s)
}

func answerLetter(i int) string {
	if i < 0 || i > 3 {
		return "?"
	}
	return string(rune('A' + i))
}

func render(doc *docx.Docx) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
