// Command chainsim serves the in-memory chain gateway for local play
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/lixenwraith/blockrooms/config"
	"github.com/lixenwraith/blockrooms/network/gateway"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5050", "Listen address")
	key := flag.String("key", "", "Session key for bearer tokens; defaults to the client default")
	failRate := flag.Float64("fail-rate", 0, "Probability in [0,1] that a move is reverted")
	latency := flag.Duration("latency", 0, "Delay added to every reply")
	seed := flag.Int64("seed", 0, "Failure injection seed; zero uses the clock")
	flag.Parse()

	logger := log.New(os.Stderr, "[chainsim] ", log.LstdFlags|log.Lmicroseconds)

	if *failRate < 0 || *failRate > 1 {
		logger.Fatalf("fail-rate %v outside [0,1]", *failRate)
	}
	if *key == "" {
		*key = config.Default().Network.SessionKey
	}

	gw := gateway.New(gateway.Options{
		Key:      []byte(*key),
		FailRate: *failRate,
		Latency:  *latency,
		Seed:     *seed,
		Logger:   logger,
	})

	mux := http.NewServeMux()
	mux.Handle("/rpc", gw)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Printf("listening on ws://%s/rpc (fail-rate %.2f, latency %v)", *addr, *failRate, *latency)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal(err)
	}
}
