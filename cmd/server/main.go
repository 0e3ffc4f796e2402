package main

import (
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dbytex91/stremthru-search/internal/addon"
	"github.com/dbytex91/stremthru-search/internal/static"
)

type config struct {
	Port            int           `env:"PORT" envDefault:"7000"`
	StremThruURL    string        `env:"STREMTHRU_URL" envDefault:"https://stremthru.13377001.xyz"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"60s"`
	CacheTTL        int           `env:"CACHE_TTL" envDefault:"300"`
	CacheSizeMB     int           `env:"CACHE_SIZE_MB" envDefault:"50"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	SSLEnabled  bool   `env:"SSL_ENABLED" envDefault:"false"`
	SSLPort     int    `env:"SSL_PORT" envDefault:"7443"`
	SSLCertFile string `env:"SSL_CERT_FILE" envDefault:"/etc/ssl/local-ip-co/server.pem"`
	SSLKeyFile  string `env:"SSL_KEY_FILE" envDefault:"/etc/ssl/local-ip-co/server.key"`
	SSLDomain   string `env:"SSL_DOMAIN"`
}

var (
	maskedPathPattern = regexp.MustCompile(`^/([^/]+)/(?:configure|catalog|meta|stream|manifest)`)
	version           = "1.2.0"
)

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if level, ok := logLevels[strings.ToLower(cfg.LogLevel)]; ok {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	add := addon.New(
		addon.WithID("community.stremthru.search"),
		addon.WithName("StremThru Search"),
		addon.WithVersion(version),
		addon.WithStremThru(cfg.StremThruURL, cfg.UpstreamTimeout),
		addon.WithCache(cfg.CacheSizeMB*1024*1024, cfg.CacheTTL),
		addon.WithMetrics(cfg.MetricsEnabled),
	)

	app := newApp("StremThru Search", add)

	var apps []*fiber.App
	apps = append(apps, app)

	if cfg.SSLEnabled {
		httpsApp := newApp("StremThru Search SSL", add)
		apps = append(apps, httpsApp)

		go func() {
			log.Infof("Starting HTTPS server on :%d with SSL domain: %s", cfg.SSLPort, cfg.SSLDomain)
			if err := httpsApp.ListenTLS(fmt.Sprintf(":%d", cfg.SSLPort), cfg.SSLCertFile, cfg.SSLKeyFile); err != nil {
				log.Fatal(err)
			}
		}()
	}

	go func() {
		log.Infof("Starting HTTP server on :%d, forwarding to %s", cfg.Port, cfg.StremThruURL)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Fatal(err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Infof("Received %s, shutting down", sig)

	for _, a := range apps {
		if err := a.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}
}

func newApp(name string, add *addon.Addon) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		CustomTags: map[string]logger.LogFunc{
			"maskedPath": func(output logger.Buffer, c *fiber.Ctx, data *logger.Data, extraParam string) (int, error) {
				return output.WriteString(maskPath(c.Path()))
			},
		},
		Format:        "${time} | ${status} | ${latency} | ${ip} | ${method} | ${maskedPath} | ${error}\n",
		TimeFormat:    "15:04:05",
		TimeZone:      "Local",
		TimeInterval:  500 * time.Millisecond,
		Output:        os.Stdout,
		DisableColors: false,
	}))

	add.Register(app)
	static.Register(app)

	return app
}

// maskPath hides the user config segment, which carries StremThru credentials.
func maskPath(urlPath string) string {
	loc := maskedPathPattern.FindStringSubmatchIndex(urlPath)
	if len(loc) > 3 {
		return urlPath[:loc[2]] + "***" + urlPath[loc[3]:]
	}

	return urlPath
}
