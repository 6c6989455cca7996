package models

import "encoding/json"

const (
	SourceDialogCodeHook      = "DialogCodeHook"
	SourceFulfillmentCodeHook = "FulfillmentCodeHook"

	FulfillmentStateFulfilled = "Fulfilled"
	FulfillmentStateFailed    = "Failed"

	ContentTypePlainText = "PlainText"
)

// Request описывает событие, которое Lex присылает code hook'у.
// См. https://docs.aws.amazon.com/lex/latest/dg/lambda-input-response-format.html
type Request struct {
	CurrentIntent     Intent            `json:"currentIntent"`
	Bot               Bot               `json:"bot"`
	UserID            string            `json:"userId"`
	InputTranscript   string            `json:"inputTranscript"`
	InvocationSource  string            `json:"invocationSource"`
	OutputDialogMode  string            `json:"outputDialogMode"`
	MessageVersion    string            `json:"messageVersion"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
}

// Intent описывает распознанное намерение пользователя вместе со слотами.
type Intent struct {
	Name string `json:"name"`
	// значение слота равно nil, пока Lex его не заполнил
	Slots              Slots  `json:"slots"`
	ConfirmationStatus string `json:"confirmationStatus,omitempty"`
}

type Bot struct {
	Name    string `json:"name"`
	Alias   string `json:"alias"`
	Version string `json:"version"`
}

// Slots отображает имя слота в его значение.
type Slots map[string]*string

// Clone возвращает копию слотов, изменение которой не затрагивает исходный запрос.
func (s Slots) Clone() Slots {
	out := make(Slots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Phase определяет, на каком шаге диалога вызван code hook.
type Phase int

const (
	PhaseValidating Phase = iota
	PhaseFulfilling
)

// PhaseOf переводит invocationSource в фазу. Всё, кроме DialogCodeHook, считается выполнением.
func PhaseOf(source string) Phase {
	if source == SourceDialogCodeHook {
		return PhaseValidating
	}
	return PhaseFulfilling
}

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseFulfilling:
		return "fulfilling"
	}
	return "unknown"
}

// Message описывает текст, который Lex покажет пользователю.
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// PlainText возвращает сообщение с типом PlainText.
func PlainText(content string) *Message {
	return &Message{ContentType: ContentTypePlainText, Content: content}
}

// ValidationResult описывает результат проверки слотов.
// ViolatedSlot и Message заполнены тогда и только тогда, когда IsValid == false.
type ValidationResult struct {
	IsValid      bool
	ViolatedSlot string
	Message      *Message
}

// Valid возвращает успешный результат проверки.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid возвращает результат с нарушением в слоте slot.
func Invalid(slot, content string) ValidationResult {
	return ValidationResult{ViolatedSlot: slot, Message: PlainText(content)}
}

// Response описывает ответ code hook'а.
type Response struct {
	SessionAttributes map[string]string `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// DialogAction реализуют ровно три типа: ElicitSlot, Delegate и Close.
type DialogAction interface {
	Type() string
	dialogAction()
}

// ElicitSlot просит Lex переспросить пользователя значение одного слота.
type ElicitSlot struct {
	IntentName   string
	Slots        Slots
	SlotToElicit string
	Message      *Message
}

// Delegate передаёт управление диалогом обратно Lex.
type Delegate struct {
	Slots Slots
}

// Close завершает диалог итоговым сообщением.
type Close struct {
	FulfillmentState string
	Message          *Message
}

func (ElicitSlot) Type() string { return "ElicitSlot" }
func (Delegate) Type() string   { return "Delegate" }
func (Close) Type() string      { return "Close" }

func (ElicitSlot) dialogAction() {}
func (Delegate) dialogAction()   {}
func (Close) dialogAction()      {}

func (a ElicitSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         string   `json:"type"`
		IntentName   string   `json:"intentName"`
		Slots        Slots    `json:"slots"`
		SlotToElicit string   `json:"slotToElicit"`
		Message      *Message `json:"message,omitempty"`
	}{a.Type(), a.IntentName, a.Slots, a.SlotToElicit, a.Message})
}

func (a Delegate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Slots Slots  `json:"slots"`
	}{a.Type(), a.Slots})
}

func (a Close) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type             string   `json:"type"`
		FulfillmentState string   `json:"fulfillmentState"`
		Message          *Message `json:"message,omitempty"`
	}{a.Type(), a.FulfillmentState, a.Message})
}
