package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
	"github.com/custodia-labs/lapak/internal/logger"
)

// Error messages returned verbatim to clients.
const (
	msgQuestionRequired = "Question field is required."
	msgTooManyRequests  = "Too many requests, try again later."
)

// maxBodyBytes bounds JSON and form bodies.
const maxBodyBytes = 1 << 20

// App holds the services behind the assistant routes.
type App struct {
	catalog   driving.CatalogService
	assistant driving.AssistantService
	limiter   *rate.Limiter
}

// NewApp creates the assistant handlers. askRate is the sustained number of
// model-backed requests per second; zero or negative disables throttling.
func NewApp(catalog driving.CatalogService, assistant driving.AssistantService, askRate float64) *App {
	app := &App{catalog: catalog, assistant: assistant}
	if askRate > 0 {
		app.limiter = rate.NewLimiter(rate.Limit(askRate), 1)
	}
	return app
}

// NewRouter registers the assistant routes and wraps them in middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", app.homeHandler)
	mux.HandleFunc("POST /{$}", app.homeHandler)
	mux.HandleFunc("POST /ask", app.askHandler)
	mux.HandleFunc("GET /favicon.ico", faviconHandler)
	return WithRequestID(WithLogging(WithRecovery(mux)))
}

// waitTurn blocks until the limiter admits a model call.
func (a *App) waitTurn(r *http.Request) error {
	if a.limiter == nil {
		return nil
	}
	return a.limiter.Wait(r.Context())
}

func (a *App) homeHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.catalog.Snapshot(r.Context())
	if err != nil {
		logger.Error("load catalog: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := newPageData(snapshot)
	status := http.StatusOK

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if query := r.PostFormValue("search_query"); query != "" {
			results, err := a.catalog.SearchProducts(r.Context(), query)
			if err != nil {
				data.Error = err.Error()
				status = http.StatusInternalServerError
			}
			data.SearchResults = results
		}

		if question := strings.TrimSpace(r.PostFormValue("question")); question != "" {
			answer, err := a.ask(r, question)
			switch {
			case err != nil:
				data.Error = err.Error()
				status = statusFor(err)
			default:
				data.Answer = answer.Text
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Error("render page: %v", err)
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (a *App) askHandler(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteJSONError(w, http.StatusBadRequest, msgQuestionRequired)
		return
	}

	answer, err := a.ask(r, req.Question)
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if errors.Is(err, domain.ErrInvalidInput) {
			msg = msgQuestionRequired
		}
		WriteJSONError(w, status, msg)
		return
	}

	WriteJSON(w, http.StatusOK, askResponse{Question: req.Question, Answer: answer.Text})
}

func (a *App) ask(r *http.Request, question string) (*domain.Answer, error) {
	if err := a.waitTurn(r); err != nil {
		return nil, errTooManyRequests
	}
	return a.assistant.Ask(r.Context(), question)
}

var errTooManyRequests = errors.New(msgTooManyRequests)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func faviconHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
