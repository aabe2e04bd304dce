package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driving"
)

// Sensor ingest responses.
const (
	msgNoData      = "No data received"
	msgStored      = "Data stored successfully"
	sensorGreeting = "Hello World"
)

// SensorApp holds the sensor ingest handlers.
type SensorApp struct {
	telemetry driving.TelemetryService
}

// NewSensorApp creates the sensor ingest handlers.
func NewSensorApp(telemetry driving.TelemetryService) *SensorApp {
	return &SensorApp{telemetry: telemetry}
}

// NewSensorRouter registers the sensor ingest routes.
func NewSensorRouter(app *SensorApp) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", helloHandler)
	mux.HandleFunc("POST /ambatukam", app.ingestHandler)
	return WithRequestID(WithLogging(WithRecovery(mux)))
}

func helloHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, sensorGreeting)
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *SensorApp) ingestHandler(w http.ResponseWriter, r *http.Request) {
	var reading domain.Reading
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&reading); err != nil {
		if errors.Is(err, io.EOF) {
			WriteJSONError(w, http.StatusBadRequest, msgNoData)
			return
		}
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.telemetry.Record(r.Context(), reading); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			WriteJSONError(w, http.StatusBadRequest, msgNoData)
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: msgStored})
}
