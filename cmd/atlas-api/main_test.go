package main

import (
	"testing"
	"time"

	"atlas/internal/config"
)

func TestWriteTimeoutCoversEveryOutboundCall(t *testing.T) {
	var cfg config.Config
	cfg.Enrichment.Timeout = 20 * time.Second
	cfg.LLM.GenerationTimeout = 60 * time.Second

	got := writeTimeout(cfg)
	if worst := 3*cfg.Enrichment.Timeout + cfg.LLM.GenerationTimeout; got <= worst {
		t.Fatalf("write timeout %v does not exceed the worst-case request time %v", got, worst)
	}
}
