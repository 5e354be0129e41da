package workflow

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/identity"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/nlu"
	"github.com/BruksfildServices01/barber-bot/internal/session"
	ucbooking "github.com/BruksfildServices01/barber-bot/internal/usecase/booking"
)

// ======================================================
// ENGINE
// ======================================================

// Engine conduz o diálogo de agendamento: uma máquina de estados por
// sessão, com as transições amarradas em uma tabela passo → handler.
type Engine struct {
	detector nlu.Detector
	clients  identity.Service
	sessions session.Store

	availability *ucbooking.GetAvailability
	catalog      *ucbooking.Catalog
	schedule     *ucbooking.Schedule
	cancel       *ucbooking.Cancel
	reschedule   *ucbooking.Reschedule
	listActive   *ucbooking.ListActive

	log *zap.Logger

	shownDays int
	logCap    int

	steps map[domain.Step]stepFn
}

// stepFn avança um passo. terminal=true destrói o estado da sessão.
type stepFn func(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (reply string, terminal bool, err error)

type Options struct {
	ShownDays int // dias exibidos por página (excedente atrás do "mais")
	LogCap    int // turnos mantidos no histórico da sessão
}

func New(
	detector nlu.Detector,
	clients identity.Service,
	sessions session.Store,
	availability *ucbooking.GetAvailability,
	catalog *ucbooking.Catalog,
	schedule *ucbooking.Schedule,
	cancel *ucbooking.Cancel,
	reschedule *ucbooking.Reschedule,
	listActive *ucbooking.ListActive,
	log *zap.Logger,
	opts Options,
) *Engine {

	if opts.ShownDays <= 0 {
		opts.ShownDays = 5
	}
	if opts.LogCap <= 0 {
		opts.LogCap = 20
	}

	e := &Engine{
		detector:     detector,
		clients:      clients,
		sessions:     sessions,
		availability: availability,
		catalog:      catalog,
		schedule:     schedule,
		cancel:       cancel,
		reschedule:   reschedule,
		listActive:   listActive,
		log:          log,
		shownDays:    opts.ShownDays,
		logCap:       opts.LogCap,
	}

	e.steps = map[domain.Step]stepFn{
		domain.StepAwaitingDay:                 e.stepAwaitingDay,
		domain.StepAwaitingTime:                e.stepAwaitingTime,
		domain.StepAwaitingNameConfirmation:    e.stepAwaitingNameConfirmation,
		domain.StepAwaitingNameInput:           e.stepAwaitingNameInput,
		domain.StepAwaitingFinalConfirmation:   e.stepAwaitingFinalConfirmation,
		domain.StepAwaitingCancelSelection:     e.stepAwaitingCancelSelection,
		domain.StepAwaitingRescheduleSelection: e.stepAwaitingRescheduleSelection,
		domain.StepAwaitingNewDay:              e.stepAwaitingNewDay,
		domain.StepAwaitingNewTime:             e.stepAwaitingNewTime,
	}

	return e
}

// HandleTurn processa uma mensagem e devolve a resposta do bot. A
// sessão fica travada durante todo o turno: mensagens simultâneas da
// mesma sessão são serializadas pelo store.
func (e *Engine) HandleTurn(
	ctx context.Context,
	sessionID string,
	text string,
	displayName string,
) (string, error) {

	var reply string

	err := e.sessions.WithSession(ctx, sessionID, func(sess *domain.Session) error {

		client, err := e.clients.FindOrCreate(ctx, sessionID, displayName)
		if err != nil {
			return err
		}

		r, terminal, err := e.advance(ctx, sess, client, text)
		if err != nil {
			return err
		}
		reply = r

		if terminal {
			// Transição terminal: fluxo e histórico morrem juntos.
			sess.Pending = nil
			sess.Log = nil
			return nil
		}

		sess.AppendTurn(domain.SpeakerClient, text, e.logCap)
		sess.AppendTurn(domain.SpeakerBot, reply, e.logCap)
		return nil
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}

func (e *Engine) advance(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	if sess.Pending != nil {
		if h, ok := e.steps[sess.Pending.Step]; ok {
			return h(ctx, sess, client, text)
		}
	}

	return e.handleIntent(ctx, sess, client, text)
}

// ======================================================
// INTENTS (estado Initial)
// ======================================================

func (e *Engine) handleIntent(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	intent, err := e.detector.Detect(ctx, client.Address, text)
	if err != nil {
		return "", false, err
	}

	switch intent.Name {

	case nlu.IntentWelcome:
		return msgWelcome, false, nil

	case nlu.IntentService:
		return e.startBooking(ctx, sess, intent.Parameters["servico"])

	case nlu.IntentCancel:
		return e.startSelection(ctx, sess, client,
			domain.StepAwaitingCancelSelection, "cancelar")

	case nlu.IntentReschedule:
		return e.startSelection(ctx, sess, client,
			domain.StepAwaitingRescheduleSelection, "remarcar")

	default:
		return msgFallback, false, nil
	}
}

func (e *Engine) startBooking(
	ctx context.Context,
	sess *domain.Session,
	serviceName string,
) (string, bool, error) {

	if serviceName == "" {
		return msgInvalidService, false, nil
	}

	// NLU externo pode mandar o texto cru; normaliza para o catálogo.
	if canonical, ok := nlu.ResolveService(serviceName); ok {
		serviceName = canonical
	}

	svc, err := e.catalog.GetByName(ctx, serviceName)
	if err != nil {
		if _, ok := httperr.BusinessCode(err); ok {
			return msgInvalidService, false, nil
		}
		return "", false, err
	}

	days, err := e.availability.Execute(ctx)
	if err != nil {
		return "", false, err
	}
	if len(days) == 0 {
		return msgNoSlots, false, nil
	}

	p := &domain.PendingBooking{
		Step:         domain.StepAwaitingDay,
		ServiceIDs:   []uint{svc.ID},
		ServiceNames: []string{svc.Name},
	}
	p.Days, p.MoreDays = splitDays(days, e.shownDays)

	sess.Pending = p
	return dayListMessage(p), false, nil
}

func (e *Engine) startSelection(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	step domain.Step,
	verb string,
) (string, bool, error) {

	active, err := e.listActive.Execute(ctx, client.ID)
	if err != nil {
		return "", false, err
	}
	if len(active) == 0 {
		return msgNoActive, false, nil
	}

	sess.Pending = &domain.PendingBooking{
		Step:   step,
		Active: active,
	}

	return activeListMessage(active, verb), false, nil
}

// ======================================================
// BOOKING TRACK
// ======================================================

func (e *Engine) stepAwaitingDay(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	if IsMoreToken(text) && len(p.MoreDays) > 0 {
		p.Days, p.MoreDays = splitDays(p.MoreDays, e.shownDays)
		return dayListMessage(p), false, nil
	}

	// Mais um serviço no mesmo agendamento ("Barba" no meio da escolha).
	if name, ok := nlu.ResolveService(text); ok {
		if svc, err := e.catalog.GetByName(ctx, name); err == nil && !p.HasService(svc.ID) {
			p.ServiceIDs = append(p.ServiceIDs, svc.ID)
			p.ServiceNames = append(p.ServiceNames, svc.Name)
		}
		return dayListMessage(p), false, nil
	}

	idx, ok := ParseIndex(text, len(p.Days))
	if !ok {
		return dayListMessage(p), false, nil
	}

	p.DaySlots = p.Days[idx].Slots
	p.Step = domain.StepAwaitingTime
	return timeListMessage(p), false, nil
}

func (e *Engine) stepAwaitingTime(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	idx, ok := ParseIndex(text, len(p.DaySlots))
	if !ok {
		return timeListMessage(p), false, nil
	}

	p.SlotID = p.DaySlots[idx].ID
	p.SlotTime = p.DaySlots[idx].Time
	p.Step = domain.StepAwaitingNameConfirmation
	return nameConfirmMessage(client.Name), false, nil
}

func (e *Engine) stepAwaitingNameConfirmation(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	switch {
	case IsAffirmative(text):
		p.Step = domain.StepAwaitingFinalConfirmation
		return finalConfirmMessage(p, client.Name), false, nil

	case IsNegative(text):
		p.Step = domain.StepAwaitingNameInput
		return msgAskName, false, nil

	default:
		// Qualquer outro texto é o nome correto.
		return e.applyName(ctx, sess, client, text)
	}
}

func (e *Engine) stepAwaitingNameInput(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {
	return e.applyName(ctx, sess, client, text)
}

func (e *Engine) applyName(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	name string,
) (string, bool, error) {

	updated, err := e.clients.Rename(ctx, client.ID, name)
	if err != nil {
		// Falha no rename não derruba o fluxo; segue com o nome enviado.
		e.log.Warn("rename failed",
			zap.Uint("client_id", client.ID),
			zap.Error(err))
	} else {
		name = updated.Name
	}

	p := sess.Pending
	p.Step = domain.StepAwaitingFinalConfirmation
	return finalConfirmMessage(p, name), false, nil
}

func (e *Engine) stepAwaitingFinalConfirmation(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	switch {
	case IsAffirmative(text):
		_, err := e.schedule.Execute(ctx, ucbooking.ScheduleInput{
			ClientID:   client.ID,
			SlotID:     p.SlotID,
			ServiceIDs: p.ServiceIDs,
		})
		if err != nil {
			if httperr.IsBusiness(err, "slot_unavailable") {
				return msgSlotTaken, true, nil
			}
			e.log.Error("schedule failed",
				zap.Uint("client_id", client.ID),
				zap.Uint("slot_id", p.SlotID),
				zap.Error(err))
			return msgScheduleFailed, true, nil
		}
		return confirmedMessage(p, client.Name), true, nil

	case IsNegative(text):
		// Nada foi reservado até aqui; basta descartar o fluxo.
		return msgBookingDiscarded, true, nil

	default:
		return finalConfirmMessage(p, client.Name), false, nil
	}
}

// ======================================================
// CANCEL TRACK
// ======================================================

func (e *Engine) stepAwaitingCancelSelection(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	idx, ok := ParseIndex(text, len(p.Active))
	if !ok {
		return activeListMessage(p.Active, "cancelar"), false, nil
	}

	target := p.Active[idx]

	if err := e.cancel.Execute(ctx, target.ID, client.ID); err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			return msgCancelFailed, true, nil
		}
		e.log.Error("cancel failed",
			zap.Uint("appointment_id", target.ID),
			zap.Error(err))
		return msgScheduleFailed, true, nil
	}

	return msgCancelled, true, nil
}

// ======================================================
// RESCHEDULE TRACK
// ======================================================

func (e *Engine) stepAwaitingRescheduleSelection(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	idx, ok := ParseIndex(text, len(p.Active))
	if !ok {
		return activeListMessage(p.Active, "remarcar"), false, nil
	}

	days, err := e.availability.Execute(ctx)
	if err != nil {
		return "", false, err
	}
	if len(days) == 0 {
		return msgNoSlots, true, nil
	}

	p.RescheduleID = p.Active[idx].ID
	p.Days, p.MoreDays = splitDays(days, e.shownDays)
	p.Step = domain.StepAwaitingNewDay
	return newDayListMessage(p), false, nil
}

func (e *Engine) stepAwaitingNewDay(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	if IsMoreToken(text) && len(p.MoreDays) > 0 {
		p.Days, p.MoreDays = splitDays(p.MoreDays, e.shownDays)
		return newDayListMessage(p), false, nil
	}

	idx, ok := ParseIndex(text, len(p.Days))
	if !ok {
		return newDayListMessage(p), false, nil
	}

	p.DaySlots = p.Days[idx].Slots
	p.Step = domain.StepAwaitingNewTime
	return timeListMessage(p), false, nil
}

func (e *Engine) stepAwaitingNewTime(
	ctx context.Context,
	sess *domain.Session,
	client *models.Client,
	text string,
) (string, bool, error) {

	p := sess.Pending

	idx, ok := ParseIndex(text, len(p.DaySlots))
	if !ok {
		return timeListMessage(p), false, nil
	}

	chosen := p.DaySlots[idx]

	err := e.reschedule.Execute(ctx, p.RescheduleID, client.ID, chosen.ID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_unavailable"):
			return msgNewSlotTaken, true, nil
		case httperr.IsBusiness(err, "appointment_not_found"):
			return msgCancelFailed, true, nil
		}
		e.log.Error("reschedule failed",
			zap.Uint("appointment_id", p.RescheduleID),
			zap.Error(err))
		return msgRescheduleFailed, true, nil
	}

	return rescheduledMessage(chosen.Time), true, nil
}

// ======================================================
// HELPERS
// ======================================================

// splitDays corta a janela exibida; o resto fica atrás do "mais".
func splitDays(
	days []domain.DayGroup,
	shown int,
) ([]domain.DayGroup, []domain.DayGroup) {

	if len(days) <= shown {
		return days, nil
	}
	return days[:shown], days[shown:]
}
