package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func slashForm(token, command, userID, text string) *strings.Reader {
	v := url.Values{}
	v.Set("token", token)
	v.Set("command", command)
	v.Set("user_id", userID)
	v.Set("text", text)
	return strings.NewReader(v.Encode())
}

func postForm(r http.Handler, path string, body *strings.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestSlackTokenVerifier_RejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SlackTokenVerifier("secret"))
	r.POST("/cmd", func(c *gin.Context) {
		t.Fatalf("handler must not run on token mismatch")
	})

	w := postForm(r, "/cmd", slashForm("wrong", "/poke", "U1", ""))

	// Slack expects a 200 with a plain-text body, not a 401.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "Sorry, incorrect token" {
		t.Fatalf("body = %q", got)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q, want text/plain", ct)
	}
}

func TestSlackTokenVerifier_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SlackTokenVerifier("secret"))
	r.POST("/cmd", func(c *gin.Context) {
		t.Fatalf("handler must not run without a token")
	})

	w := postForm(r, "/cmd", strings.NewReader("user_id=U1"))
	if w.Code != http.StatusOK || w.Body.String() != "Sorry, incorrect token" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestSlackTokenVerifier_PassesAndStoresCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SlackTokenVerifier("secret"))
	r.POST("/cmd", func(c *gin.Context) {
		scmd, ok := SlashCommandFrom(c)
		if !ok {
			t.Errorf("SlashCommandFrom should find the parsed command")
		}
		if scmd.Command != "/poke" || scmd.UserID != "U1" || scmd.Text != "<@U2|bob>" {
			t.Errorf("unexpected slash command: %+v", scmd)
		}
		c.String(http.StatusOK, "handled")
	})

	w := postForm(r, "/cmd", slashForm("secret", "/poke", "U1", "<@U2|bob>"))
	if w.Code != http.StatusOK || w.Body.String() != "handled" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestSlashCommandFrom_MissingContextValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := SlashCommandFrom(c); ok {
		t.Fatalf("expected ok=false without verifier")
	}
}
