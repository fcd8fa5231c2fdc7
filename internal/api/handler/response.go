package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON serializa o payload com o campo success ao lado dos campos do próprio payload
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := successBody(payload)
	if err != nil {
		logrus.WithError(err).Error("handler: failed to encode response")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logrus.WithError(err).Warn("handler: failed to write response")
	}
}

func successBody(payload any) ([]byte, error) {
	fields := map[string]any{}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}

	fields["success"] = true
	return json.Marshal(fields)
}

// writeList devolve coleções sob a chave data
func writeList(w http.ResponseWriter, items any) {
	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}
