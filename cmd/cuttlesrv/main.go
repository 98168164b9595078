// Command cuttlesrv serves the cuttle session API over HTTP+JSON.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cuttlegame/cuttle/internal/httpapi"
	"github.com/cuttlegame/cuttle/internal/logger"
	"github.com/cuttlegame/cuttle/internal/store"
	"github.com/cuttlegame/cuttle/internal/store/sqlite"
	"github.com/cuttlegame/cuttle/pkg/cuttle"
)

func main() {
	var (
		dbPath     string
		host       string
		port       int
		portFile   string
		seed       int64
		debugLevel string
	)
	flag.StringVar(&dbPath, "db", "", "path to the SQLite session database (created if missing)")
	flag.StringVar(&host, "host", "127.0.0.1", "host to listen on")
	flag.IntVar(&port, "port", 8080, "port to listen on (0 for a random free port)")
	flag.StringVar(&portFile, "portfile", "", "if set, write the selected port to this file")
	flag.Int64Var(&seed, "seed", 0, "deterministic RNG seed for new matches (0 = random)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "logging level: trace, debug, info, warn, error")
	flag.Parse()

	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "cuttle_sessions.sqlite")
	}

	logBackend, err := logger.New(logger.Config{DebugLevel: debugLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logging: %v\n", err)
		os.Exit(1)
	}
	log := logBackend.Logger("SRV")

	db, err := sqlite.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	sessionStore := store.New(db, logBackend.Logger("STORE"))

	warmCfg := cuttle.Config{Rng: rand.New(rand.NewSource(1)), Log: logBackend.Logger("ENGINE")}
	if err := sessionStore.LoadAll(warmCfg); err != nil {
		log.Warnf("failed to load persisted sessions: %v", err)
	}

	newConfig := func() cuttle.Config {
		s := seed
		if s == 0 {
			s = rand.Int63()
		}
		return cuttle.Config{Rng: rand.New(rand.NewSource(s)), Log: logBackend.Logger("ENGINE")}
	}

	srv := httpapi.NewServer(sessionStore, logBackend.Logger("HTTP"), newConfig)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen: %v\n", err)
		os.Exit(1)
	}

	if portFile != "" {
		_, p, _ := net.SplitHostPort(lis.Addr().String())
		_ = os.WriteFile(portFile, []byte(p), 0600)
	}

	log.Infof("listening on %s", lis.Addr())
	if err := http.Serve(lis, srv.Handler()); err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
