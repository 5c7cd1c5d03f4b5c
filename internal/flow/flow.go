// Package flow реализует контроллер сценария посетителя:
// просмотр объявлений, детали, оплата, подтверждение и заявка на аренду.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dkravets/renthub-system/internal/model"
	"github.com/dkravets/renthub-system/internal/wizard"
)

// State описывает экран, активный в сценарии посетителя.
type State string

const (
	StateBrowsing State = "browsing"
	StateDetails  State = "details"
	StatePayment  State = "payment"
	StateSuccess  State = "success"
	StateRental   State = "rental"
)

// ErrInvalidTransition возвращается, когда операция недопустима в текущем состоянии сценария.
var (
	ErrInvalidTransition = errors.New("operation is not allowed in the current state")
	// ErrStaleConfirmation возвращается, когда подтверждение платежа пришло
	// после того, как пользователь покинул экран оплаты. Такое подтверждение отбрасывается.
	ErrStaleConfirmation = errors.New("stale payment confirmation discarded")
	// ErrUnknownPurpose возвращается при неизвестном назначении платежа.
	ErrUnknownPurpose = errors.New("unknown payment purpose")
	// ErrNoApplication возвращается, когда операция анкеты вызвана вне шага заявки.
	ErrNoApplication = errors.New("no rental application in progress")
)

// Catalog определяет контракт каталога объявлений, используемый контроллером.
type Catalog interface {
	GetListing(ctx context.Context, id string) (*model.Listing, error)
}

// Gateway определяет контракт платёжного шлюза.
type Gateway interface {
	Charge(ctx context.Context, key string, amount float64, method model.PaymentMethod) (string, error)
}

// ApplicationSink принимает отправленные заявки на аренду.
// После передачи заявка контроллером не хранится.
type ApplicationSink interface {
	SubmitApplication(ctx context.Context, listingID string, app *wizard.Application) error
}

// Snapshot содержит наблюдаемое состояние сценария для отдачи клиенту.
type Snapshot struct {
	State      State                `json:"state"`
	ListingID  string               `json:"listing_id,omitempty"`
	Purpose    model.PaymentPurpose `json:"purpose,omitempty"`
	WizardStep string               `json:"wizard_step,omitempty"`
	Result     *model.PaymentResult `json:"result,omitempty"`
}

// Flow хранит состояние сценария одного сеанса.
// Единственный источник истины о том, какой экран отображается.
type Flow struct {
	catalog Catalog
	gateway Gateway
	sink    ApplicationSink

	mu         sync.Mutex
	state      State
	listingID  string
	purpose    model.PaymentPurpose
	result     *model.PaymentResult
	wiz        *wizard.Wizard
	generation uint64
}

func newFlow(catalog Catalog, gateway Gateway, sink ApplicationSink) *Flow {
	return &Flow{
		catalog: catalog,
		gateway: gateway,
		sink:    sink,
		state:   StateBrowsing,
	}
}

// Snapshot возвращает текущее состояние сценария.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		State:     f.state,
		ListingID: f.listingID,
		Purpose:   f.purpose,
		Result:    f.result,
	}
	if f.wiz != nil {
		s.WizardStep = f.wiz.Step().String()
	}
	return s
}

// SelectListing переводит сценарий из списка объявлений к деталям выбранного.
func (f *Flow) SelectListing(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing {
		return fmt.Errorf("%w: select listing in state %s", ErrInvalidTransition, f.state)
	}

	if _, err := f.catalog.GetListing(ctx, id); err != nil {
		// Устаревшая ссылка: остаёмся в списке объявлений.
		f.resetLocked()
		return err
	}

	f.clearProgressLocked()
	f.listingID = id
	f.setStateLocked(StateDetails)
	return nil
}

// RequestPayment переводит сценарий к экрану оплаты с указанным назначением.
// Допустим из списка объявлений (быстрый путь) и из деталей.
func (f *Flow) RequestPayment(ctx context.Context, id string, purpose model.PaymentPurpose) error {
	if purpose != model.PurposeViewing && purpose != model.PurposeRental {
		return fmt.Errorf("%w: %q", ErrUnknownPurpose, purpose)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateBrowsing && f.state != StateDetails {
		return fmt.Errorf("%w: request payment in state %s", ErrInvalidTransition, f.state)
	}

	if _, err := f.catalog.GetListing(ctx, id); err != nil {
		f.resetLocked()
		return err
	}

	f.clearProgressLocked()
	f.listingID = id
	f.purpose = purpose
	f.setStateLocked(StatePayment)
	return nil
}

// RequestRental открывает анкету заявки на аренду выбранного объявления.
func (f *Flow) RequestRental(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateDetails {
		return fmt.Errorf("%w: request rental in state %s", ErrInvalidTransition, f.state)
	}

	if _, err := f.catalog.GetListing(ctx, id); err != nil {
		f.resetLocked()
		return err
	}

	f.listingID = id
	f.wiz = wizard.New()
	f.setStateLocked(StateRental)
	return nil
}

// WizardStep возвращает активный шаг анкеты.
func (f *Flow) WizardStep() (wizard.Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRental || f.wiz == nil {
		return 0, ErrNoApplication
	}
	return f.wiz.Step(), nil
}

// AdvanceApplication передаёт данные текущего шага анкеты и продвигает её вперёд.
func (f *Flow) AdvanceApplication(section wizard.Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRental || f.wiz == nil {
		return ErrNoApplication
	}
	return f.wiz.Advance(section)
}

// RetreatApplication возвращает анкету на предыдущий шаг.
func (f *Flow) RetreatApplication() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRental || f.wiz == nil {
		return ErrNoApplication
	}
	f.wiz.Retreat()
	return nil
}

// SubmitApplication отправляет заполненную анкету и переводит сценарий к оплате.
// Назначение платежа принудительно выставляется в rental; сама анкета
// после передачи получателю не сохраняется.
func (f *Flow) SubmitApplication(ctx context.Context, review wizard.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateRental || f.wiz == nil {
		return fmt.Errorf("%w: submit application in state %s", ErrInvalidTransition, f.state)
	}

	app, err := f.wiz.Submit(review)
	if err != nil {
		return err
	}

	if err := f.sink.SubmitApplication(ctx, f.listingID, app); err != nil {
		return fmt.Errorf("submit application: %w", err)
	}

	f.wiz = nil
	f.purpose = model.PurposeRental
	f.setStateLocked(StatePayment)
	return nil
}

// CompletedPayment содержит итог успешного списания вместе с объявлением
// и назначением, зафиксированными в момент списания. Вызывающая сторона
// использует эти значения, а не более поздний снимок состояния:
// сценарий мог уже уйти с экрана подтверждения.
type CompletedPayment struct {
	ListingID string
	Purpose   model.PaymentPurpose
	Result    *model.PaymentResult
}

// CompletePayment проводит списание и переводит сценарий к подтверждению.
// Сумма определяется в момент завершения по текущим данным каталога:
// плата за просмотр или месячная цена в зависимости от назначения.
// Подтверждение, пришедшее после ухода с экрана оплаты, отбрасывается.
func (f *Flow) CompletePayment(ctx context.Context, method model.PaymentMethod) (*CompletedPayment, error) {
	f.mu.Lock()
	if f.state != StatePayment {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: complete payment in state %s", ErrInvalidTransition, f.state)
	}

	listing, err := f.catalog.GetListing(ctx, f.listingID)
	if err != nil {
		f.resetLocked()
		f.mu.Unlock()
		return nil, err
	}

	var amount float64
	switch f.purpose {
	case model.PurposeViewing:
		amount = listing.ViewingFee
	case model.PurposeRental:
		amount = listing.Price
	default:
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownPurpose, f.purpose)
	}

	gen := f.generation
	listingID := f.listingID
	purpose := f.purpose
	key := uuid.NewString()
	f.mu.Unlock()

	conf, err := f.gateway.Charge(ctx, key, amount, method)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		// Состояние остаётся payment: пользователю доступна повторная попытка.
		return nil, err
	}

	if f.state != StatePayment || f.generation != gen {
		return nil, ErrStaleConfirmation
	}

	f.result = &model.PaymentResult{ConfirmationID: conf, Amount: amount}
	f.setStateLocked(StateSuccess)
	return &CompletedPayment{
		ListingID: listingID,
		Purpose:   purpose,
		Result:    f.result,
	}, nil
}

// ReturnToBrowsing возвращает сценарий к списку объявлений,
// сбрасывая выбранное объявление, назначение платежа и результат оплаты.
func (f *Flow) ReturnToBrowsing() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSuccess && f.state != StateDetails {
		return fmt.Errorf("%w: return to browsing in state %s", ErrInvalidTransition, f.state)
	}

	f.resetLocked()
	return nil
}

// ReturnToDetails возвращает сценарий с экрана оплаты или анкеты к деталям,
// не сбрасывая выбранное объявление.
func (f *Flow) ReturnToDetails() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePayment && f.state != StateRental {
		return fmt.Errorf("%w: return to details in state %s", ErrInvalidTransition, f.state)
	}

	f.wiz = nil
	f.setStateLocked(StateDetails)
	return nil
}

func (f *Flow) setStateLocked(s State) {
	f.state = s
	f.generation++
}

func (f *Flow) clearProgressLocked() {
	f.result = nil
	f.wiz = nil
}

func (f *Flow) resetLocked() {
	f.listingID = ""
	f.purpose = ""
	f.clearProgressLocked()
	f.setStateLocked(StateBrowsing)
}
