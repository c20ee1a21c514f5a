package main

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/vectorrocks/internal/config"
	"github.com/tomz197/vectorrocks/internal/logging"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := logging.New(os.Stderr, "web", config.GetEnv(config.EnvLogLevel, "info"))

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	page := renderPage(
		config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		config.GetEnv("SPECTATE_URL", ""),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// renderPage fills the landing page placeholders.
func renderPage(sshHost, spectateURL string) string {
	return strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SpectateURL}}", spectateURL,
	).Replace(htmlPage)
}
