package models

// ExamType enumerates the assessments a school records.
type ExamType string

const (
	ExamWeekly     ExamType = "weekly"
	ExamQuarterly  ExamType = "quarterly"
	ExamHalfYearly ExamType = "half_yearly"
	ExamAnnual     ExamType = "annual"
)

// Valid returns true when the exam type is supported.
func (t ExamType) Valid() bool {
	switch t {
	case ExamWeekly, ExamQuarterly, ExamHalfYearly, ExamAnnual:
		return true
	default:
		return false
	}
}

// ExamResult stores one student's scores for an exam, keyed by subject.
type ExamResult struct {
	ID        string             `json:"id"`
	StudentID string             `json:"student_id" validate:"required"`
	ExamType  ExamType           `json:"exam_type" validate:"required,oneof=weekly quarterly half_yearly annual"`
	Date      string             `json:"date" validate:"required,datetime=2006-01-02"`
	Scores    map[string]float64 `json:"scores" validate:"required,min=1,dive,keys,required,endkeys,gte=0,lte=100"`
	SchoolID  string             `json:"school_id,omitempty"`
}

// Clone returns a deep copy.
func (e ExamResult) Clone() ExamResult {
	out := e
	out.Scores = make(map[string]float64, len(e.Scores))
	for k, v := range e.Scores {
		out.Scores[k] = v
	}
	return out
}

// Average returns the mean score, 0 when there are no subjects.
func (e ExamResult) Average() float64 {
	if len(e.Scores) == 0 {
		return 0
	}
	var sum float64
	for _, v := range e.Scores {
		sum += v
	}
	return sum / float64(len(e.Scores))
}

// ExamResultPatch is a shallow merge for exam result updates.
type ExamResultPatch struct {
	ExamType *ExamType          `json:"exam_type,omitempty" validate:"omitempty,oneof=weekly quarterly half_yearly annual"`
	Date     *string            `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Scores   map[string]float64 `json:"scores,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=100"`
}

// Apply merges the patch into e. Scores are replaced as a whole.
func (p ExamResultPatch) Apply(e *ExamResult) {
	if p.ExamType != nil {
		e.ExamType = *p.ExamType
	}
	setString(&e.Date, p.Date)
	if p.Scores != nil {
		e.Scores = make(map[string]float64, len(p.Scores))
		for k, v := range p.Scores {
			e.Scores[k] = v
		}
	}
}
