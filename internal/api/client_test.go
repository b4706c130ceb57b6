package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"tier":"tier_2","to_be_mastered":[],"teacher_assigned":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithToken("secret-token"))
	if _, err := c.Summary(context.Background()); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("auth header = %q, want bearer token", gotAuth)
	}
}

func TestClient_SummaryDefaultsTier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"to_be_mastered":["apple"]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	s, err := c.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Tier != "tier_3" {
		t.Errorf("tier = %q, want default tier_3", s.Tier)
	}
}

func TestQueueEntry_StringOrObject(t *testing.T) {
	var s DashboardSummary
	payload := `{"tier":"tier_1","to_be_mastered":["apple",{"word":"banana"},{"word":""}]}`
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	queue := s.LearnQueue()
	if len(queue) != 2 || queue[0] != "apple" || queue[1] != "banana" {
		t.Errorf("queue = %v, want [apple banana]", queue)
	}
}

func TestDashboardSummary_TeacherAssignedFirst(t *testing.T) {
	s := DashboardSummary{
		ToBeMastered: []QueueEntry{
			{Word: "apple"}, {Word: "banana"}, {Word: "cherry"},
		},
		TeacherAssigned: []string{"cherry"},
	}
	queue := s.LearnQueue()
	if queue[0] != "cherry" {
		t.Errorf("queue = %v, want teacher-assigned word first", queue)
	}
	if queue[1] != "apple" || queue[2] != "banana" {
		t.Errorf("queue = %v, want remaining order preserved", queue)
	}
}

func TestClient_FetchPracticeSession(t *testing.T) {
	records := `[
		{"word": "apple", "word_root": "apple", "definition": {"cn": "苹果"}},
		{"word": "banana", "word_root": "banana", "definition": {"cn": ""}}
	]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/student/practice-session" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req struct {
			WordList []string `json:"word_list"`
			Tier     string   `json:"tier"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Tier != "tier_2" {
			t.Errorf("tier = %q", req.Tier)
		}
		_, _ = w.Write([]byte(records))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	sess, err := c.FetchPracticeSession(context.Background(), []string{"apple", "banana", "ghost"}, "tier_2")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// banana fails validation (empty definition), ghost was never returned.
	if len(sess.Items) != 1 || sess.Items[0].Word != "apple" {
		t.Errorf("items = %v, want only the valid record", sess.Items)
	}
	if len(sess.Missing) != 2 {
		t.Errorf("missing = %v, want banana and ghost", sess.Missing)
	}
}

func TestClient_ReportMastered(t *testing.T) {
	var gotWords []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Words []string `json:"words"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotWords = req.Words
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if err := c.ReportMastered(context.Background(), []string{"apple", "banana"}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(gotWords) != 2 {
		t.Errorf("reported %v", gotWords)
	}
	// Empty set: no request at all.
	if err := c.ReportMastered(context.Background(), nil); err != nil {
		t.Errorf("empty report errored: %v", err)
	}
}

func TestClient_ReviewWordsCleaned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["apple","bank②"]`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	words, err := c.ReviewWords(context.Background())
	if err != nil {
		t.Fatalf("review words: %v", err)
	}
	if len(words) != 2 || words[1] != "bank" {
		t.Errorf("words = %v, want cleaned forms", words)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Summary(context.Background()); err == nil {
		t.Error("5xx response should error")
	}
}

func TestClient_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tts/say" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, _ = w.Write([]byte("AUDIO:" + req.Text))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	data, err := c.Synthesize(context.Background(), "apple")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(data) != "AUDIO:apple" {
		t.Errorf("data = %q", data)
	}
}
