package ladder

import (
	"errors"
	dto "ladder_backend/internal/api/dto/ladder"
	"ladder_backend/internal/converter"
	ladderCore "ladder_backend/internal/ladder"
	"ladder_backend/internal/model"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/service"
	"ladder_backend/pkg/req"
	"ladder_backend/pkg/resp"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

type HandlerDeps struct {
	Serv service.LadderService
	Log  *zap.Logger
}

type Handler struct {
	serv service.LadderService
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.State(r.Context())
	h.writeState(w, r, st, err)
}

func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ClickRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Click(r.Context(), payload.Row, payload.Col)
	if err != nil {
		var st *model.LadderState
		if result != nil {
			st = &result.State
		}
		h.writeError(w, r, err, st)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToClickResponse(*result))
}

func (h *Handler) Land(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.LandRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.serv.Land(r.Context(), converter.ToHop(payload))
	h.writeState(w, r, st, err)
}

func (h *Handler) Collect(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.Collect(r.Context())
	h.writeState(w, r, st, err)
}

func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.Settle(r.Context())
	h.writeState(w, r, st, err)
}

func (h *Handler) SetBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.serv.SetBet(r.Context(), payload.Index)
	h.writeState(w, r, st, err)
}

func (h *Handler) IncrementBet(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.IncrementBet(r.Context())
	h.writeState(w, r, st, err)
}

func (h *Handler) DecrementBet(w http.ResponseWriter, r *http.Request) {
	st, err := h.serv.DecrementBet(r.Context())
	h.writeState(w, r, st, err)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := converter.ToDepositAmount(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.serv.Deposit(r.Context(), amount)
	h.writeState(w, r, st, err)
}

func (h *Handler) Sound(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SoundRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.serv.Sound(r.Context(), converter.ToSoundSettings(payload))
	h.writeState(w, r, st, err)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			resp.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rounds, err := h.serv.History(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundsResponse(rounds))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats(r.Context())))
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, st *model.LadderState, err error) {
	if err != nil {
		h.writeError(w, r, err, st)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(*st))
}

// writeError переводит ошибки игры в HTTP-статусы. Отказ в переходе
// состояния - 409, состояние игры при этом не изменилось. Если сервис
// вернул состояние, оно уходит в теле ответа вместе со звуками.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, st *model.LadderState) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, repository.ErrUserNotFound):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, ladderCore.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, ladderCore.ErrInvalidAmount),
		errors.Is(err, ladderCore.ErrBalanceLimit),
		errors.Is(err, ladderCore.ErrBadColumn):
		status = http.StatusBadRequest
	case errors.Is(err, ladderCore.ErrNotPlaying),
		errors.Is(err, ladderCore.ErrFinishing),
		errors.Is(err, ladderCore.ErrNotFinishing),
		errors.Is(err, ladderCore.ErrStaleRun),
		errors.Is(err, ladderCore.ErrLadderComplete),
		errors.Is(err, ladderCore.ErrRunActive),
		errors.Is(err, ladderCore.ErrRowLocked),
		errors.Is(err, ladderCore.ErrNoHop),
		errors.Is(err, ladderCore.ErrStaleHop),
		errors.Is(err, ladderCore.ErrHopInFlight),
		errors.Is(err, ladderCore.ErrRevealPending):
		status = http.StatusConflict
	default:
		h.log.Error("ladder request failed", zap.String("path", r.URL.Path), zap.Error(err))
		resp.WriteError(w, status, "internal error")
		return
	}

	resp.WriteJSONResponse(w, status, converter.ToErrorResponse(err, st))
}
