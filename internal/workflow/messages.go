package workflow

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
)

// ======================================================
// Mensagens (pt-BR)
// ======================================================

const (
	msgWelcome = "Olá! Bem-vindo à barbearia. Qual serviço deseja agendar? (Corte, Barba ou Sobrancelha)"

	msgFallback = "Desculpe, não entendi sua mensagem. Poderia reformular?"

	msgInvalidService = "Por favor, informe um serviço válido: Corte, Barba ou Sobrancelha."

	msgNoSlots = "Nenhum horário disponível no momento. Tente mais tarde."

	msgNoActive = "Você não possui agendamentos ativos."

	msgAskName = "Qual nome devo usar para o agendamento?"

	msgBookingDiscarded = "Tudo bem, agendamento não realizado. Se precisar, é só chamar!"

	msgSlotTaken = "Esse horário acabou de ser reservado por outro cliente. Por favor, comece de novo e escolha outro horário."

	msgScheduleFailed = "Ops, algo deu errado ao agendar. Tente novamente."

	msgCancelFailed = "Agendamento não encontrado ou já cancelado."

	msgCancelled = "Agendamento cancelado com sucesso. O horário foi liberado."

	msgRescheduleFailed = "Ops, algo deu errado ao reagendar. Tente novamente."

	msgNewSlotTaken = "O novo horário não está mais disponível. Seu agendamento original foi mantido."
)

var weekdaysPT = [...]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// FormatDate escreve o instante como o bot fala: dia da semana por
// extenso, data e hora (ex: "Sexta-feira, 05/09/2026 10:00").
func FormatDate(t time.Time) string {
	return fmt.Sprintf(
		"%s, %s",
		weekdaysPT[int(t.Weekday())],
		t.Format("02/01/2006 15:04"),
	)
}

// FormatDay escreve só o dia (ex: "Sexta-feira, 05/09").
func FormatDay(t time.Time) string {
	return fmt.Sprintf(
		"%s, %s",
		weekdaysPT[int(t.Weekday())],
		t.Format("02/01"),
	)
}

func dayListMessage(p *domain.PendingBooking) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Serviço escolhido: *%s*\nDias disponíveis:\n\n",
		strings.Join(p.ServiceNames, ", "))

	for i, d := range p.Days {
		fmt.Fprintf(&b, "%d. %s\n", i+1, FormatDay(d.Date))
	}

	b.WriteString("\nEscolha um número.")
	if len(p.MoreDays) > 0 {
		b.WriteString(" Envie *0* para ver mais dias.")
	}

	return b.String()
}

func newDayListMessage(p *domain.PendingBooking) string {
	var b strings.Builder

	b.WriteString("Dias disponíveis para remarcar:\n\n")
	for i, d := range p.Days {
		fmt.Fprintf(&b, "%d. %s\n", i+1, FormatDay(d.Date))
	}

	b.WriteString("\nEscolha um número.")
	if len(p.MoreDays) > 0 {
		b.WriteString(" Envie *0* para ver mais dias.")
	}

	return b.String()
}

func timeListMessage(p *domain.PendingBooking) string {
	var b strings.Builder

	if len(p.DaySlots) > 0 {
		fmt.Fprintf(&b, "Horários de %s:\n\n", FormatDay(p.DaySlots[0].Time))
	}

	for i, s := range p.DaySlots {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Time.Format("15:04"))
	}

	b.WriteString("\nEscolha um número.")
	return b.String()
}

func nameConfirmMessage(name string) string {
	return fmt.Sprintf(
		"Posso agendar no nome de *%s*?\n1. Sim\n2. Não (ou envie o nome correto)",
		name,
	)
}

func finalConfirmMessage(p *domain.PendingBooking, name string) string {
	return fmt.Sprintf(
		"Confirmar agendamento de *%s* em %s no nome de *%s*?\n1. Sim\n2. Não",
		strings.Join(p.ServiceNames, ", "),
		FormatDate(p.SlotTime),
		name,
	)
}

func confirmedMessage(p *domain.PendingBooking, name string) string {
	return fmt.Sprintf(
		"✅ Agendamento confirmado: *%s* em %s no nome de *%s*. Até lá!",
		strings.Join(p.ServiceNames, ", "),
		FormatDate(p.SlotTime),
		name,
	)
}

func activeListMessage(active []domain.ActiveAppointment, verb string) string {
	var b strings.Builder

	b.WriteString("Você tem os seguintes agendamentos:\n\n")
	for i, a := range active {
		fmt.Fprintf(&b, "%d. %s em %s\n",
			i+1,
			strings.Join(a.Services, ", "),
			FormatDate(a.SlotTime),
		)
	}

	fmt.Fprintf(&b, "\nResponda com o número do agendamento que deseja %s.", verb)
	return b.String()
}

func rescheduledMessage(t time.Time) string {
	return fmt.Sprintf("✅ Reagendamento confirmado para %s.", FormatDate(t))
}
