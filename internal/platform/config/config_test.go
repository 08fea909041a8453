package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile("does-not-exist.env"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Fatalf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if !cfg.Store.SeedOnBoot {
		t.Fatal("Store.SeedOnBoot should default to true")
	}
	if cfg.Telegram.CountryCode != "218" {
		t.Fatalf("Telegram.CountryCode = %q, want 218", cfg.Telegram.CountryCode)
	}
	if cfg.Delivery.DefaultPrice != 20 {
		t.Fatalf("Delivery.DefaultPrice = %v, want 20", cfg.Delivery.DefaultPrice)
	}
	if cfg.Features.StrictStatusTransitions {
		t.Fatal("strict transitions should default to off")
	}
	if cfg.PubSub.Enabled() {
		t.Fatal("PubSub should be disabled without a topic")
	}
	if cfg.Telegram.Enabled() {
		t.Fatal("Telegram should be disabled without a token")
	}
}

func TestLoadEnvMapOverrides(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile("does-not-exist.env"), WithEnvMap(map[string]string{
		"SERVER_PORT":                "9090",
		"SERVER_READ_TIMEOUT":        "5s",
		"STORE_BACKEND":              "Firestore",
		"FIRESTORE_PROJECT_ID":       "demo-project",
		"PUBSUB_ORDER_TOPIC":         "order-events",
		"TELEGRAM_BOT_TOKEN":         "123:abc",
		"DELIVERY_DEFAULT_PRICE":     "25.5",
		"FEATURE_STRICT_TRANSITIONS": "true",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Backend != StoreBackendFirestore {
		t.Fatalf("Store.Backend = %q, want firestore", cfg.Store.Backend)
	}
	if !cfg.PubSub.Enabled() {
		t.Fatal("PubSub should inherit the Firestore project and enable")
	}
	if cfg.PubSub.ProjectID != "demo-project" {
		t.Fatalf("PubSub.ProjectID = %q, want demo-project", cfg.PubSub.ProjectID)
	}
	if !cfg.Telegram.Enabled() {
		t.Fatal("Telegram should be enabled with a token")
	}
	if cfg.Delivery.DefaultPrice != 25.5 {
		t.Fatalf("Delivery.DefaultPrice = %v, want 25.5", cfg.Delivery.DefaultPrice)
	}
	if !cfg.Features.StrictStatusTransitions {
		t.Fatal("strict transitions flag should be on")
	}
}
