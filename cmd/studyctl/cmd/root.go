package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhall/studyhall/pkg/studysdk"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "studyctl",
	Short: "Command line client for a StudyHall server",
	Long: `studyctl talks to a StudyHall learning platform: sign in, manage
courses, and take adaptive quizzes from the terminal.

The session is kept in your user config directory, so signing in once
is enough until the refresh token expires.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	def := os.Getenv("STUDYCTL_SERVER")
	if def == "" {
		def = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", def,
		"Base URL of the StudyHall server")
}

// savedSession is what survives between invocations: the opaque refresh
// token, scoped to the server it came from.
type savedSession struct {
	Server       string `json:"server"`
	RefreshToken string `json:"refresh_token"`
}

func sessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studyctl", "session.json"), nil
}

func loadSession() (savedSession, error) {
	var s savedSession
	path, err := sessionPath()
	if err != nil {
		return s, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	err = json.Unmarshal(data, &s)
	return s, err
}

func storeSession(s savedSession) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func removeSession() {
	if path, err := sessionPath(); err == nil {
		os.Remove(path)
	}
}

// newClient builds an SDK client whose cookie jar is seeded from the
// saved session, so a previous sign-in can be restored.
func newClient() (*studysdk.Client, http.CookieJar) {
	jar, _ := cookiejar.New(nil)
	httpc := &http.Client{Timeout: 30 * time.Second, Jar: jar}
	c := studysdk.New(serverURL, studysdk.WithHTTPClient(httpc))

	if s, err := loadSession(); err == nil && s.Server == serverURL && s.RefreshToken != "" {
		if u, err := url.Parse(serverURL + "/api/auth/"); err == nil {
			jar.SetCookies(u, []*http.Cookie{{
				Name:  "refresh_token",
				Value: s.RefreshToken,
				Path:  "/api/auth/",
			}})
		}
	}
	return c, jar
}

// authedClient restores the saved session and fails with a sign-in hint
// when there is none.
func authedClient(ctx context.Context) (*studysdk.Client, http.CookieJar, error) {
	c, jar := newClient()
	if err := c.Bootstrap(ctx); err != nil {
		return nil, nil, errors.New("not signed in (or session expired): run `studyctl login`")
	}
	return c, jar, nil
}

// persistSession writes the jar's current refresh cookie back to disk.
// Refresh tokens rotate on use, so this runs after every command.
func persistSession(jar http.CookieJar) {
	u, err := url.Parse(serverURL + "/api/auth/token/refresh/")
	if err != nil {
		return
	}
	for _, ck := range jar.Cookies(u) {
		if ck.Name == "refresh_token" && ck.Value != "" {
			if err := storeSession(savedSession{Server: serverURL, RefreshToken: ck.Value}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
			}
			return
		}
	}
}
