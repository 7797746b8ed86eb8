package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/config"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	result *models.GeneratedResult
	err    error
	ideas  []string
	cfgs   []models.Configuration
}

func (f *fakeGenerator) Generate(_ context.Context, idea string, cfg models.Configuration) (*models.GeneratedResult, error) {
	f.ideas = append(f.ideas, idea)
	f.cfgs = append(f.cfgs, cfg)
	return f.result, f.err
}

func setupRouter(generator *fakeGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := NewSessionStore(&config.Config{SessionSecret: "test-secret-test-secret-test-sec"})
	handler := NewWebHandler(generator, store, "gemini-2.5-flash")

	router := gin.New()
	router.GET("/", handler.Home)
	router.POST("/generate", handler.Generate)
	return router
}

func postForm(router http.Handler, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validForm(idea string) url.Values {
	return url.Values{
		"idea":              {idea},
		"tone":              {"Professional"},
		"format":            {"Structured (Markdown)"},
		"include_reasoning": {"false", "true"},
		"action":            {"generate"},
	}
}

func TestHome_Defaults(t *testing.T) {
	router := setupRouter(&fakeGenerator{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<option value="Professional" selected>`)
	assert.Contains(t, body, `<option value="Structured (Markdown)" selected>`)
	assert.Contains(t, body, "Try an example:")
	assert.Contains(t, body, `<button type="submit" name="action" value="generate">`)
}

func TestHome_TypedIdeaGenerates(t *testing.T) {
	generator := &fakeGenerator{result: &models.GeneratedResult{
		OptimizedPrompt: "You are a data engineer",
		Explanation:     "Names the libraries",
		Tags:            []string{"Coding"},
	}}
	router := setupRouter(generator)

	home := httptest.NewRecorder()
	router.ServeHTTP(home, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, home.Code)
	assert.NotContains(t, home.Body.String(), `value="generate" disabled`)

	idea := "A python script to scrape stock data and chart it"
	w := postForm(router, validForm(idea), home.Result().Cookies()...)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, generator.ideas, 1)
	assert.Equal(t, idea, generator.ideas[0])
	assert.Contains(t, w.Body.String(), "You are a data engineer")
}

func TestGenerate_Success(t *testing.T) {
	generator := &fakeGenerator{result: &models.GeneratedResult{
		OptimizedPrompt: "You are a physics teacher",
		Explanation:     "Adds a persona",
		Tags:            []string{"Education"},
	}}
	router := setupRouter(generator)

	idea := "Explain quantum entanglement to a 12-year-old"
	w := postForm(router, validForm(idea))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, generator.ideas, 1)
	assert.Equal(t, idea, generator.ideas[0])
	assert.Equal(t, models.Configuration{
		Tone:             models.ToneProfessional,
		Format:           models.FormatStructured,
		IncludeReasoning: true,
	}, generator.cfgs[0])

	body := w.Body.String()
	assert.Contains(t, body, "Optimized Prompt")
	assert.Contains(t, body, "You are a physics teacher")
	assert.Contains(t, body, "<li>Education</li>")
	assert.NotEmpty(t, w.Result().Cookies(), "form state is kept in the session")
}

func TestGenerate_BlankIdeaNeverCallsGenerator(t *testing.T) {
	generator := &fakeGenerator{}
	router := setupRouter(generator)

	w := postForm(router, validForm("   "))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, generator.ideas)
	assert.Contains(t, w.Body.String(), blankIdeaMessage)
}

func TestGenerate_UnknownTone(t *testing.T) {
	generator := &fakeGenerator{}
	router := setupRouter(generator)

	form := validForm("idea")
	form.Set("tone", "Sarcastic")
	w := postForm(router, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, generator.ideas)
	assert.Contains(t, w.Body.String(), "Sarcastic")
}

func TestGenerate_ReasoningUnchecked(t *testing.T) {
	generator := &fakeGenerator{result: &models.GeneratedResult{Tags: []string{}}}
	router := setupRouter(generator)

	form := validForm("idea")
	form["include_reasoning"] = []string{"false"}
	postForm(router, form)

	require.Len(t, generator.cfgs, 1)
	assert.False(t, generator.cfgs[0].IncludeReasoning)
}

func TestGenerate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{
			name:       "configuration",
			err:        &services.GenerationError{Kind: services.KindConfiguration, Message: "API key is missing. Please check your environment configuration"},
			wantStatus: http.StatusServiceUnavailable,
			wantText:   "API key is missing",
		},
		{
			name:       "empty response",
			err:        &services.GenerationError{Kind: services.KindGeneration, Message: "no response received from gemini"},
			wantStatus: http.StatusBadGateway,
			wantText:   "no response received from gemini",
		},
		{
			name:       "no message",
			err:        errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantText:   "Something went wrong while generating the prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(&fakeGenerator{err: tt.err})
			w := postForm(router, validForm("idea"))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantText)
			assert.NotContains(t, w.Body.String(), "Optimized Prompt")
		})
	}
}

func TestGenerate_ExampleFillsIdeaWithoutGenerating(t *testing.T) {
	generator := &fakeGenerator{}
	router := setupRouter(generator)

	example := models.ExampleIdeas()[0].Text
	w := postForm(router, url.Values{"example": {example}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, generator.ideas)
	assert.Contains(t, w.Body.String(), ">"+example+"</textarea>")
}

func TestSessionRestoresForm(t *testing.T) {
	generator := &fakeGenerator{result: &models.GeneratedResult{Tags: []string{}}}
	router := setupRouter(generator)

	form := validForm("Plan a trip")
	form.Set("tone", "Playful")
	form.Set("format", "Paragraph")
	w := postForm(router, form)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	home := httptest.NewRecorder()
	router.ServeHTTP(home, req)

	body := home.Body.String()
	assert.Contains(t, body, ">Plan a trip</textarea>")
	assert.Contains(t, body, `<option value="Playful" selected>`)
	assert.Contains(t, body, `<option value="Paragraph" selected>`)
	assert.NotContains(t, body, `value="generate" disabled`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	// "é" is two bytes; cutting inside it drops the whole rune
	assert.Equal(t, "a", truncate("aé", 2))
}

func TestChecked(t *testing.T) {
	assert.True(t, checked([]string{"false", "true"}))
	assert.True(t, checked([]string{"on"}))
	assert.False(t, checked([]string{"false"}))
	assert.False(t, checked(nil))
}
