package deps

import (
	"time"

	"github.com/MrSnakeDoc/poetry/internal/catalog"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/storage"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	AllowedHosts    []string             // Host headers allowed to access the server
	AllowedCIDRS    []string             // IPs allowed to access the probe endpoints
	TrustProxy      bool                 // true if running behind a trusted reverse proxy
	RateLimitBurst  int                  // mutating requests per client IP in a burst
	RateLimitPerMin int                  // token refill per client IP
	Catalog         *catalog.Store       // the poem collection
	Prefs           *storage.Preferences // theme preference
	Storage         storage.KV           // backend behind Catalog and Prefs, pinged by readyz
}
