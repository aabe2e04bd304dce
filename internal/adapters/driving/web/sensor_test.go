package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lapak/internal/core/domain"
)

func TestSensor_Ingest(t *testing.T) {
	telemetry := &mockTelemetry{}
	h := NewSensorRouter(NewSensorApp(telemetry))

	rr := postJSON(t, h, "/ambatukam", `{"temp":21.5,"device":"esp32"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Data stored successfully"}`, rr.Body.String())
	require.Len(t, telemetry.readings, 1)
	assert.Equal(t, domain.Reading{"temp": 21.5, "device": "esp32"}, telemetry.readings[0])
}

func TestSensor_NoData(t *testing.T) {
	for _, body := range []string{"", "{}", "null"} {
		t.Run(body, func(t *testing.T) {
			h := NewSensorRouter(NewSensorApp(&mockTelemetry{}))

			rr := postJSON(t, h, "/ambatukam", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"No data received"}`, rr.Body.String())
		})
	}
}

func TestSensor_NotAnObject(t *testing.T) {
	h := NewSensorRouter(NewSensorApp(&mockTelemetry{}))

	rr := postJSON(t, h, "/ambatukam", `[1,2,3]`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSensor_StoreFailure(t *testing.T) {
	h := NewSensorRouter(NewSensorApp(&mockTelemetry{err: errors.New("store reading: timeout")}))

	rr := postJSON(t, h, "/ambatukam", `{"temp":1}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"store reading: timeout"}`, rr.Body.String())
}

func TestSensor_Hello(t *testing.T) {
	h := NewSensorRouter(NewSensorApp(&mockTelemetry{}))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello World", rr.Body.String())
}
