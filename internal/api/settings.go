package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homehub-core/internal/events"
	"github.com/nerrad567/homehub-core/internal/setting"
)

var (
	opListSettings  = operation{name: "settings.list", failed: "Failed to fetch settings"}
	opGetSetting    = operation{name: "settings.get", notFound: "Setting not found", failed: "Failed to fetch setting"}
	opUpsertSetting = operation{name: "settings.upsert", failed: "Failed to update setting"}
)

const msgInvalidSettingKey = "Invalid setting key"

// handleListSettings returns all settings ordered by key.
func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.List(r.Context())
	if err != nil {
		s.fail(w, r, opListSettings, "", err)
		return
	}
	writeData(w, http.StatusOK, settings)
}

// settingKey returns the decoded {key} path segment. chi hands back the
// raw segment when the path carries escapes such as %2F.
func settingKey(r *http.Request) (string, bool) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil {
		return "", false
	}
	return key, true
}

// handleGetSetting returns a single setting by key.
func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key, ok := settingKey(r)
	if !ok {
		writeError(w, http.StatusNotFound, opGetSetting.notFound)
		return
	}

	st, err := s.settings.Get(r.Context(), key)
	if err != nil {
		s.fail(w, r, opGetSetting, key, err)
		return
	}
	writeData(w, http.StatusOK, st)
}

// handleUpsertSetting creates the key or overwrites its value and
// description. Repeating the same request yields the same row.
func (s *Server) handleUpsertSetting(w http.ResponseWriter, r *http.Request) {
	key, ok := settingKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidSettingKey)
		return
	}

	var in setting.Input
	if err := decodeJSON(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	st, err := s.settings.Upsert(r.Context(), key, in)
	if err != nil {
		s.fail(w, r, opUpsertSetting, key, err)
		return
	}

	s.events.Publish(events.New(events.EntitySetting, events.ActionUpserted, st.Key, st))
	writeData(w, http.StatusOK, st)
}
