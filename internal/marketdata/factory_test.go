package marketdata

import (
	"testing"

	"stock-news-advisor/internal/store"
)

func TestFactory(t *testing.T) {
	cfg := &store.Config{DataSource: "STATIC"}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New(STATIC): %v", err)
	}
	if _, ok := p.(*Static); !ok {
		t.Errorf("provider type = %T, want *Static", p)
	}

	cfg.DataSource = "YAHOO"
	p, err = New(cfg)
	if err != nil {
		t.Fatalf("New(YAHOO): %v", err)
	}
	if _, ok := p.(*Yahoo); !ok {
		t.Errorf("provider type = %T, want *Yahoo", p)
	}

	cfg.DataSource = "BLOOMBERG"
	if _, err := New(cfg); err == nil {
		t.Error("expected error for unknown data source")
	}
}

func TestFactoryKiteRequiresCredentials(t *testing.T) {
	t.Setenv("KITE_API_KEY", "")
	t.Setenv("KITE_ACCESS_TOKEN", "")
	cfg := &store.Config{DataSource: "KITE"}
	if _, err := New(cfg); err == nil {
		t.Error("expected error without kite credentials")
	}

	t.Setenv("KITE_API_KEY", "key")
	t.Setenv("KITE_ACCESS_TOKEN", "token")
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New(KITE): %v", err)
	}
	if _, ok := p.(*Kite); !ok {
		t.Errorf("provider type = %T, want *Kite", p)
	}
}
