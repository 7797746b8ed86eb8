package handlers

import (
	"bytes"
	"net/http"
	"unicode/utf8"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/collector"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/config"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/logger"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/services"
	"github.com/Conceptual-Machines/promptarchitect-api/internal/web/templates"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "promptarchitect_form"

	sessionKeyIdea      = "idea"
	sessionKeyTone      = "tone"
	sessionKeyFormat    = "format"
	sessionKeyReasoning = "include_reasoning"

	// keeps the signed cookie under the 4KB browser limit
	maxSessionIdeaBytes = 2048

	sessionMaxAgeSeconds = 60 * 60 * 24 * 7

	blankIdeaMessage = "Please describe your idea before generating a prompt."
)

// NewSessionStore creates the cookie store that remembers the form between visits
func NewSessionStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.IsProduction() // Use secure cookies in production
	store.Options.MaxAge = sessionMaxAgeSeconds
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

type WebHandler struct {
	generator  collector.Generator
	store      sessions.Store
	modelLabel string
}

func NewWebHandler(generator collector.Generator, store sessions.Store, modelLabel string) *WebHandler {
	return &WebHandler{
		generator:  generator,
		store:      store,
		modelLabel: modelLabel,
	}
}

// Home renders the prompt form, restoring the last idea and configuration from the session
func (h *WebHandler) Home(c *gin.Context) {
	session := h.session(c)
	form := collector.New(restoreForm(session))

	h.render(c, http.StatusOK, form.State(), "")
}

// Generate handles a form submission. Example buttons only fill the idea;
// the generate button submits it, and a blank idea is rejected here.
func (h *WebHandler) Generate(c *gin.Context) {
	session := h.session(c)
	form := collector.New(restoreForm(session))
	form.OnChange(func(state collector.State) {
		storeForm(session, state)
	})

	if example := c.PostForm("example"); example != "" {
		form.SetIdea(example)
		h.save(c, session)
		h.render(c, http.StatusOK, form.State(), "")
		return
	}

	if message := applyPostedForm(c, form); message != "" {
		h.save(c, session)
		h.render(c, http.StatusBadRequest, form.State(), message)
		return
	}

	if !form.CanSubmit() {
		h.save(c, session)
		h.render(c, http.StatusBadRequest, form.State(), blankIdeaMessage)
		return
	}

	err := form.Submit(c.Request.Context(), h.generator)
	h.save(c, session)

	state := form.State()
	if err != nil {
		fields := logger.WithContext(c)
		fields["error_kind"] = string(services.KindOf(err))
		logger.Warn("Form generation failed: "+err.Error(), fields)

		h.render(c, services.HTTPStatus(err), state, services.UserMessage(err))
		return
	}

	h.render(c, http.StatusOK, state, "")
}

// applyPostedForm copies the posted fields into the form and returns a message for invalid values
func applyPostedForm(c *gin.Context, form *collector.Collector) string {
	form.SetIdea(c.PostForm("idea"))

	tone, err := models.ParseTone(c.PostForm("tone"))
	if err != nil {
		return err.Error()
	}
	form.SetTone(tone)

	format, err := models.ParseFormat(c.PostForm("format"))
	if err != nil {
		return err.Error()
	}
	form.SetFormat(format)

	form.SetIncludeReasoning(checked(c.PostFormArray("include_reasoning")))
	return ""
}

// checked reads a checkbox posted after a hidden "false" fallback
func checked(values []string) bool {
	for _, value := range values {
		if value == "true" || value == "on" {
			return true
		}
	}
	return false
}

func (h *WebHandler) render(c *gin.Context, status int, state collector.State, errorMessage string) {
	data := templates.NewPageData(state.Idea, state.Configuration)
	data.ModelLabel = h.modelLabel
	data.Busy = state.Busy
	data.Result = state.Result
	data.ErrorMessage = errorMessage

	var buf bytes.Buffer
	if err := templates.PromptPage(data).Render(c.Request.Context(), &buf); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *WebHandler) session(c *gin.Context) *sessions.Session {
	session, err := h.store.Get(c.Request, sessionName)
	if err != nil {
		// A cookie signed with an old secret decodes to a fresh session
		logger.Debug("Discarding unreadable form session", logger.Fields{"error": err.Error()})
	}
	return session
}

func (h *WebHandler) save(c *gin.Context, session *sessions.Session) {
	if err := session.Save(c.Request, c.Writer); err != nil {
		logger.Warn("Failed to save form session: "+err.Error(), logger.WithContext(c))
	}
}

// restoreForm reads the saved form, falling back to defaults for anything missing or stale
func restoreForm(session *sessions.Session) (string, models.Configuration) {
	cfg := models.DefaultConfiguration()
	if session == nil {
		return "", cfg
	}

	idea, _ := session.Values[sessionKeyIdea].(string)
	if value, ok := session.Values[sessionKeyTone].(string); ok {
		if tone, err := models.ParseTone(value); err == nil {
			cfg.Tone = tone
		}
	}
	if value, ok := session.Values[sessionKeyFormat].(string); ok {
		if format, err := models.ParseFormat(value); err == nil {
			cfg.Format = format
		}
	}
	if value, ok := session.Values[sessionKeyReasoning].(bool); ok {
		cfg.IncludeReasoning = value
	}
	return idea, cfg
}

func storeForm(session *sessions.Session, state collector.State) {
	if session == nil {
		return
	}
	session.Values[sessionKeyIdea] = truncate(state.Idea, maxSessionIdeaBytes)
	session.Values[sessionKeyTone] = string(state.Configuration.Tone)
	session.Values[sessionKeyFormat] = string(state.Configuration.Format)
	session.Values[sessionKeyReasoning] = state.Configuration.IncludeReasoning
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
