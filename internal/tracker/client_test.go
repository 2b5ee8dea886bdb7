package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.TrackerConfig{
		BaseURL:        server.URL,
		Token:          "test-token",
		TimeoutSeconds: 5,
	}, zap.NewNop())
	return client, server
}

func TestUpdateCustomFieldSendsPatch(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody issuePatch

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateCustomField(context.Background(), "4821", 70, "Status", "homologado")
	if err != nil {
		t.Fatalf("UpdateCustomField: %v", err)
	}

	if gotMethod != http.MethodPatch || gotPath != "/api/rest/issues/4821" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotAuth != "test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotBody.CustomFields) != 1 {
		t.Fatalf("custom_fields = %+v", gotBody.CustomFields)
	}
	field := gotBody.CustomFields[0]
	if field.Field.ID != 70 || field.Field.Name != "Status" || field.Value != "homologado" {
		t.Errorf("custom field update = %+v", field)
	}
}

func TestUpdateHandlerSendsName(t *testing.T) {
	var gotBody issuePatch
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.UpdateHandler(context.Background(), "77", "fulano.s"); err != nil {
		t.Fatalf("UpdateHandler: %v", err)
	}
	if gotBody.Handler == nil || gotBody.Handler.Name != "fulano.s" {
		t.Errorf("handler = %+v", gotBody.Handler)
	}
	if gotBody.CustomFields != nil {
		t.Errorf("unexpected custom_fields in handler patch: %+v", gotBody.CustomFields)
	}
}

func TestAddNotePostsPublicNote(t *testing.T) {
	var gotPath string
	var gotBody notePayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})

	if err := client.AddNote(context.Background(), "305", "atualizado via painel"); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if gotPath != "/api/rest/issues/305/notes" {
		t.Errorf("path = %s", gotPath)
	}
	if gotBody.Text != "atualizado via painel" || gotBody.ViewState.Name != "public" {
		t.Errorf("note payload = %+v", gotBody)
	}
}

func TestRemoteErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Access denied"}`))
	})

	err := client.UpdateHandler(context.Background(), "9", "alguem")
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want *RemoteError", err)
	}
	if remote.Status != http.StatusForbidden || remote.Message != "Access denied" {
		t.Errorf("remote error = %+v", remote)
	}
}

func TestRemoteErrorNonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream timeout</html>"))
	})

	err := client.AddNote(context.Background(), "9", "nota")
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want *RemoteError", err)
	}
	if remote.Status != http.StatusBadGateway || remote.Message != "" {
		t.Errorf("remote error = %+v", remote)
	}
}
