// Package wizard реализует пятишаговую анкету заявки на аренду.
package wizard

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Step задаёт номер шага анкеты.
type Step int

const (
	StepPersonal Step = iota + 1
	StepEmployment
	StepFinancial
	StepDocuments
	StepReview
)

// String возвращает название шага анкеты.
func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepEmployment:
		return "employment"
	case StepFinancial:
		return "financial"
	case StepDocuments:
		return "documents"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// ErrStepIncomplete возвращается, когда обязательные поля текущего шага не заполнены.
var (
	ErrStepIncomplete = errors.New("required fields of the current step are missing")
	// ErrWrongSection возвращается, когда переданы данные не того шага, который активен.
	ErrWrongSection = errors.New("section does not match the current step")
	// ErrConsentRequired возвращается при попытке отправить анкету без обоих согласий.
	ErrConsentRequired = errors.New("both consents are required to submit")
	// ErrNotAtReview возвращается при попытке отправить анкету до последнего шага.
	ErrNotAtReview = errors.New("application can be submitted only from the review step")
)

// Personal содержит персональные данные заявителя.
type Personal struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	SSN         string `json:"ssn" validate:"required"`
}

// Employment содержит сведения о занятости заявителя.
type Employment struct {
	EmploymentStatus string  `json:"employment_status" validate:"required"`
	Employer         string  `json:"employer" validate:"required"`
	JobTitle         string  `json:"job_title" validate:"required"`
	MonthlyIncome    float64 `json:"monthly_income" validate:"required,gt=0"`
	EmploymentLength string  `json:"employment_length" validate:"required"`
}

// Financial содержит финансовые сведения и контакты поручителей.
type Financial struct {
	CreditScore      string  `json:"credit_score" validate:"required"`
	BankName         string  `json:"bank_name" validate:"required"`
	AccountType      string  `json:"account_type" validate:"required"`
	MonthlyDebts     float64 `json:"monthly_debts" validate:"gte=0"`
	PreviousLandlord string  `json:"previous_landlord" validate:"required"`
	LandlordPhone    string  `json:"landlord_phone" validate:"required"`
	EmergencyContact string  `json:"emergency_contact" validate:"required"`
	EmergencyPhone   string  `json:"emergency_phone" validate:"required"`
}

// Documents содержит дескрипторы приложенных файлов.
// Обязательны три документа, отчёт кредитного бюро — по желанию.
type Documents struct {
	PayStubs       string `json:"pay_stubs" validate:"required"`
	BankStatements string `json:"bank_statements" validate:"required"`
	IDDocument     string `json:"id_document" validate:"required"`
	CreditReport   string `json:"credit_report,omitempty"`
}

// Review содержит два обязательных согласия последнего шага.
type Review struct {
	AgreeToTerms           bool `json:"agree_to_terms"`
	AgreeToBackgroundCheck bool `json:"agree_to_background_check"`
}

// Section объединяет типы данных отдельных шагов анкеты.
type Section interface {
	step() Step
}

func (Personal) step() Step   { return StepPersonal }
func (Employment) step() Step { return StepEmployment }
func (Financial) step() Step  { return StepFinancial }
func (Documents) step() Step  { return StepDocuments }

// Application содержит полную анкету, собранную по шагам.
// Формируется один раз при отправке, когда все шаги прошли проверку.
type Application struct {
	Personal   Personal   `json:"personal"`
	Employment Employment `json:"employment"`
	Financial  Financial  `json:"financial"`
	Documents  Documents  `json:"documents"`
	Review     Review     `json:"review"`
}

// Wizard хранит состояние заполнения анкеты.
// Экземпляр не потокобезопасен: доступ сериализуется контроллером сценария.
type Wizard struct {
	current  Step
	validate *validator.Validate

	personal   Personal
	employment Employment
	financial  Financial
	documents  Documents
}

// New создаёт анкету, открытую на первом шаге.
func New() *Wizard {
	return &Wizard{
		current:  StepPersonal,
		validate: validator.New(),
	}
}

// Step возвращает активный шаг анкеты.
func (w *Wizard) Step() Step {
	return w.current
}

// Advance проверяет данные текущего шага и переходит к следующему.
// При незаполненных обязательных полях шаг не меняется.
func (w *Wizard) Advance(section Section) error {
	if w.current == StepReview {
		return fmt.Errorf("%w: already at review", ErrWrongSection)
	}
	if section.step() != w.current {
		return fmt.Errorf("%w: got %s, current %s", ErrWrongSection, section.step(), w.current)
	}

	if err := w.validate.Struct(section); err != nil {
		return fmt.Errorf("%w: %v", ErrStepIncomplete, err)
	}

	switch s := section.(type) {
	case Personal:
		w.personal = s
	case Employment:
		w.employment = s
	case Financial:
		w.financial = s
	case Documents:
		w.documents = s
	}

	w.current++
	return nil
}

// Retreat возвращает анкету на предыдущий шаг. Всегда допустим.
func (w *Wizard) Retreat() {
	if w.current > StepPersonal {
		w.current--
	}
}

// Submit собирает итоговую анкету. Допустим только на шаге проверки
// и только при обоих установленных согласиях.
func (w *Wizard) Submit(review Review) (*Application, error) {
	if w.current != StepReview {
		return nil, fmt.Errorf("%w: current step %s", ErrNotAtReview, w.current)
	}
	if !review.AgreeToTerms || !review.AgreeToBackgroundCheck {
		return nil, ErrConsentRequired
	}

	return &Application{
		Personal:   w.personal,
		Employment: w.employment,
		Financial:  w.financial,
		Documents:  w.documents,
		Review:     review,
	}, nil
}
