package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"stock-quote-proxy/internal/bootstrap"
	"stock-quote-proxy/internal/config"
	"stock-quote-proxy/internal/domain"
	"stock-quote-proxy/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

// fetch is a one-shot probe against the configured quote provider. It is
// handy for checking an API key or inspecting raw payloads without starting
// the server.
func main() {
	log := logx.L()

	var symbolsCSV string
	var timeout time.Duration
	flag.StringVar(&symbolsCSV, "symbols", "AAPL", "comma-separated ticker symbols")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	prov, err := bootstrap.BuildProvider(cfg)
	if err != nil {
		log.Fatal("provider", zap.Error(err))
	}

	symbols := splitCSV(symbolsCSV)
	if len(symbols) == 0 {
		log.Fatal("no symbols provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := map[string]json.RawMessage{}
	for _, s := range symbols {
		sym := domain.NormalizeSymbol(s)
		if !domain.ValidSymbol(sym) {
			log.Fatal("invalid symbol", zap.String("symbol", s))
		}
		payload, err := prov.Get(ctx, sym)
		if err != nil {
			log.Warn("fetch failed", zap.String("symbol", sym), zap.Error(err))
			continue
		}
		out[sym] = payload
	}
	if len(out) == 0 {
		log.Fatal("no quotes received")
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
