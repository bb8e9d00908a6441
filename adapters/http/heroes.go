package http

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/artpar/superheroes/adapters/metrics"
	"github.com/artpar/superheroes/app"
	"github.com/artpar/superheroes/domain/hero"
)

// Error messages returned by POST /hero_powers.
const (
	msgMissingKeys   = "Validation error: Include all required keys"
	msgMissingEntity = "Validation error: Power or Hero doesn't exist"
	msgBadStrength   = "Validation error: Strength must be a value either 'Strong', 'Weak' or 'Average'"
)

const maxBodyBytes = 1 << 20

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message string `json:"message" example:"WELCOME TO THE SUPER HEROES API."`
}

// HeroResponse is a hero without its powers.
type HeroResponse struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"Kamala Khan"`
	SuperName string `json:"super_name" example:"Ms. Marvel"`
}

// PowerResponse is a power.
type PowerResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"super strength"`
	Description string `json:"description" example:"gives the wielder super-human strengths"`
}

// HeroDetailResponse is a hero with the powers reached through its hero_powers rows.
type HeroDetailResponse struct {
	ID        int64           `json:"id" example:"1"`
	Name      string          `json:"name" example:"Kamala Khan"`
	SuperName string          `json:"super_name" example:"Ms. Marvel"`
	Powers    []PowerResponse `json:"powers"`
}

// CreateHeroPowerRequest is the body of POST /hero_powers.
// A key counts as present whenever it appears in the object, even with a
// null or zero value.
type CreateHeroPowerRequest struct {
	Strength json.RawMessage `json:"strength" validate:"required" swaggertype:"string" example:"Average"`
	HeroID   json.RawMessage `json:"hero_id" validate:"required" swaggertype:"integer" example:"1"`
	PowerID  json.RawMessage `json:"power_id" validate:"required" swaggertype:"integer" example:"2"`
}

// ErrorResponse carries a single error message.
type ErrorResponse struct {
	Error string `json:"error" example:"Hero not found"`
}

// ValidationErrorResponse carries one or more validation messages.
type ValidationErrorResponse struct {
	Errors []string `json:"errors" example:"Validation error: Include all required keys"`
}

// HeroHandler serves the heroes, powers and hero_powers endpoints.
type HeroHandler struct {
	service  *app.HeroService
	validate *validator.Validate
	logger   zerolog.Logger
	metrics  *metrics.Collector
}

// NewHeroHandler creates a new hero handler. m may be nil.
func NewHeroHandler(service *app.HeroService, logger zerolog.Logger, m *metrics.Collector) *HeroHandler {
	return &HeroHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		metrics:  m,
	}
}

// Routes mounts the handler's endpoints on r.
func (h *HeroHandler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/heroes", h.ListHeroes)
	r.Get("/heroes/{id:[0-9]+}", h.GetHero)
	r.Get("/powers", h.ListPowers)
	r.Post("/hero_powers", h.CreateHeroPower)
}

// Home returns the welcome message.
//
//	@Summary		Welcome message
//	@Tags			Heroes
//	@Produce		json
//	@Success		200	{object}	WelcomeResponse
//	@Router			/ [get]
func (h *HeroHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WelcomeResponse{Message: "WELCOME TO THE SUPER HEROES API."})
}

// ListHeroes returns every hero without powers.
//
//	@Summary		List heroes
//	@Tags			Heroes
//	@Produce		json
//	@Success		200	{array}		HeroResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/heroes [get]
func (h *HeroHandler) ListHeroes(w http.ResponseWriter, r *http.Request) {
	heroes, err := h.service.ListHeroes(r.Context())
	if err != nil {
		h.internalError(w, r, "list_heroes", err)
		return
	}

	resp := make([]HeroResponse, 0, len(heroes))
	for _, hr := range heroes {
		resp = append(resp, heroResponse(hr))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHero returns one hero with its powers.
//
//	@Summary		Get hero
//	@Tags			Heroes
//	@Produce		json
//	@Param			id	path		int	true	"Hero ID"
//	@Success		200	{object}	HeroDetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/heroes/{id} [get]
func (h *HeroHandler) GetHero(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// Digits only, so this is an int64 overflow: no such hero.
		writeError(w, http.StatusNotFound, "Hero not found")
		return
	}

	detail, err := h.service.GetHero(r.Context(), id)
	if errors.Is(err, app.ErrHeroNotFound) {
		writeError(w, http.StatusNotFound, "Hero not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "get_hero", err)
		return
	}

	resp := HeroDetailResponse{
		ID:        detail.Hero.ID,
		Name:      detail.Hero.Name,
		SuperName: detail.Hero.SuperName,
		Powers:    make([]PowerResponse, 0, len(detail.Powers)),
	}
	for _, ap := range detail.Powers {
		resp.Powers = append(resp.Powers, powerResponse(ap.Power))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListPowers returns every power.
//
//	@Summary		List powers
//	@Tags			Powers
//	@Produce		json
//	@Success		200	{array}		PowerResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/powers [get]
func (h *HeroHandler) ListPowers(w http.ResponseWriter, r *http.Request) {
	powers, err := h.service.ListPowers(r.Context())
	if err != nil {
		h.internalError(w, r, "list_powers", err)
		return
	}

	resp := make([]PowerResponse, 0, len(powers))
	for _, p := range powers {
		resp = append(resp, powerResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateHeroPower assigns a power to a hero.
//
//	@Summary		Assign a power to a hero
//	@Description	Checks run in order: all keys present, hero and power exist, strength is Strong, Weak or Average.
//	@Tags			Powers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateHeroPowerRequest	true	"Hero power"
//	@Success		201		{object}	PowerResponse
//	@Failure		400		{object}	ValidationErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/hero_powers [post]
func (h *HeroHandler) CreateHeroPower(w http.ResponseWriter, r *http.Request) {
	var req CreateHeroPowerRequest
	if err := decodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		h.rejected(w, metrics.ReasonMalformedInput, msgMissingKeys)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.rejected(w, metrics.ReasonMissingKeys, msgMissingKeys)
		return
	}

	heroID, heroOK := decodeID(req.HeroID)
	powerID, powerOK := decodeID(req.PowerID)
	if !heroOK || !powerOK {
		h.rejected(w, metrics.ReasonMissingEntity, msgMissingEntity)
		return
	}

	p, err := h.service.CreateHeroPower(r.Context(), decodeStrength(req.Strength), heroID, powerID)
	var verr *hero.ValidationError
	switch {
	case err == nil:
	case errors.Is(err, app.ErrReferenceNotFound):
		h.rejected(w, metrics.ReasonMissingEntity, msgMissingEntity)
		return
	case errors.As(err, &verr):
		h.rejected(w, metrics.ReasonBadStrength, msgBadStrength)
		return
	default:
		h.internalError(w, r, "create_hero_power", err)
		return
	}

	if h.metrics != nil {
		h.metrics.HeroPowersCreated.Inc()
	}
	writeJSON(w, http.StatusCreated, powerResponse(p))
}

func (h *HeroHandler) rejected(w http.ResponseWriter, reason, message string) {
	if h.metrics != nil {
		h.metrics.ValidationFailures.WithLabelValues(reason).Inc()
	}
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: []string{message}})
}

func (h *HeroHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error().Err(err).
		Str("operation", op).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("request failed")
	if h.metrics != nil {
		h.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody decodes exactly one JSON value from body. Trailing data after
// the value is an error.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeID reads a row ID. Integral JSON numbers (1, 1.0, 1e2) and strings
// holding a base-10 integer ("1") are accepted. Anything else (null,
// fractions, non-numeric strings) cannot name an existing row.
func decodeID(raw json.RawMessage) (int64, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		id, err := strconv.ParseInt(s, 10, 64)
		return id, err == nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if id, err := n.Int64(); err == nil {
		return id, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// decodeStrength reads a JSON string. Other JSON values are passed through
// in their literal form so they fail strength validation.
func decodeStrength(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

func heroResponse(h hero.Hero) HeroResponse {
	return HeroResponse{ID: h.ID, Name: h.Name, SuperName: h.SuperName}
}

func powerResponse(p hero.Power) PowerResponse {
	return PowerResponse{ID: p.ID, Name: p.Name, Description: p.Description}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
