package booking

import "time"

// ===============================
// Session State
// ===============================

// SlotOption é um horário apresentado ao cliente em uma lista numerada.
type SlotOption struct {
	ID   uint      `json:"id"`
	Time time.Time `json:"time"`
}

// DayGroup agrupa os horários disponíveis de um mesmo dia.
type DayGroup struct {
	Date  time.Time    `json:"date"`
	Slots []SlotOption `json:"slots"`
}

// ActiveAppointment é a projeção usada nas listas de cancelamento
// e reagendamento.
type ActiveAppointment struct {
	ID       uint      `json:"id"`
	SlotID   uint      `json:"slot_id"`
	SlotTime time.Time `json:"slot_time"`
	Services []string  `json:"services"`
}

// PendingBooking é o fluxo em andamento de uma sessão. No máximo um
// por sessão; destruído na transição terminal ou por expiração de TTL.
type PendingBooking struct {
	Step Step `json:"step"`

	ServiceIDs   []uint   `json:"service_ids,omitempty"`
	ServiceNames []string `json:"service_names,omitempty"`

	// Dias mostrados ao cliente e o excedente atrás do "mais".
	Days     []DayGroup `json:"days,omitempty"`
	MoreDays []DayGroup `json:"more_days,omitempty"`

	// Horários do dia escolhido.
	DaySlots []SlotOption `json:"day_slots,omitempty"`

	SlotID   uint      `json:"slot_id,omitempty"`
	SlotTime time.Time `json:"slot_time,omitempty"`

	// Listas das trilhas de cancelamento/reagendamento.
	Active       []ActiveAppointment `json:"active,omitempty"`
	RescheduleID uint                `json:"reschedule_id,omitempty"`
}

func (p *PendingBooking) HasService(id uint) bool {
	for _, s := range p.ServiceIDs {
		if s == id {
			return true
		}
	}
	return false
}

// ===============================
// Conversation Log
// ===============================

const (
	SpeakerClient = "client"
	SpeakerBot    = "bot"
)

type Turn struct {
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// Session é o registro completo de uma sessão: fluxo pendente mais o
// histórico limitado de turnos.
type Session struct {
	Pending *PendingBooking `json:"pending,omitempty"`
	Log     []Turn          `json:"log,omitempty"`
}

// AppendTurn registra um turno mantendo o log limitado a max entradas.
func (s *Session) AppendTurn(speaker, text string, max int) {
	s.Log = append(s.Log, Turn{Speaker: speaker, Text: text, At: time.Now()})
	if max > 0 && len(s.Log) > max {
		s.Log = s.Log[len(s.Log)-max:]
	}
}

// Empty indica que a sessão não carrega mais nada e pode ser removida.
func (s *Session) Empty() bool {
	return s.Pending == nil && len(s.Log) == 0
}
