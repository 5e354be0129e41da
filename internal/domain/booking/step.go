package booking

// ===============================
// Workflow Step
// ===============================

// Step é o estado da conversa de agendamento. Enumeração fechada:
// toda transição acontece na tabela do engine, nunca por string solta.
type Step int

const (
	StepInitial Step = iota
	StepAwaitingDay
	StepAwaitingTime
	StepAwaitingNameConfirmation
	StepAwaitingNameInput
	StepAwaitingFinalConfirmation
	StepAwaitingCancelSelection
	StepAwaitingRescheduleSelection
	StepAwaitingNewDay
	StepAwaitingNewTime
)

func (s Step) String() string {
	switch s {
	case StepInitial:
		return "initial"
	case StepAwaitingDay:
		return "awaiting_day"
	case StepAwaitingTime:
		return "awaiting_time"
	case StepAwaitingNameConfirmation:
		return "awaiting_name_confirmation"
	case StepAwaitingNameInput:
		return "awaiting_name_input"
	case StepAwaitingFinalConfirmation:
		return "awaiting_final_confirmation"
	case StepAwaitingCancelSelection:
		return "awaiting_cancel_selection"
	case StepAwaitingRescheduleSelection:
		return "awaiting_reschedule_selection"
	case StepAwaitingNewDay:
		return "awaiting_new_day"
	case StepAwaitingNewTime:
		return "awaiting_new_time"
	}
	return "unknown"
}
